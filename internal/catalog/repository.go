package catalog

import (
	"strings"

	"gorm.io/gorm"

	"terminal-terrace/foodgram/internal/model/recipe"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListTags 按 slug 排序
func (r *CatalogRepository) ListTags() ([]recipe.Tag, error) {
	var tags []recipe.Tag
	err := r.db.Order("slug ASC").Find(&tags).Error
	return tags, err
}

func (r *CatalogRepository) GetTagByID(id uint) (*recipe.Tag, error) {
	var tag recipe.Tag
	err := r.db.First(&tag, id).Error
	return &tag, err
}

// FindTagConflict 查找颜色或 slug 相同的标签（颜色不区分大小写）
func (r *CatalogRepository) FindTagConflict(color, slug string) (*recipe.Tag, error) {
	var tag recipe.Tag
	err := r.db.Where("LOWER(color) = ? OR slug = ?", strings.ToLower(color), slug).First(&tag).Error
	return &tag, err
}

func (r *CatalogRepository) CreateTag(tag *recipe.Tag) error {
	return r.db.Create(tag).Error
}

// ListIngredients 名称前缀过滤, 按名称排序
func (r *CatalogRepository) ListIngredients(prefix string) ([]recipe.Ingredient, error) {
	var ingredients []recipe.Ingredient
	query := r.db.Order("name ASC").Order("id ASC")
	if prefix != "" {
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\'`, escapeLike(strings.ToLower(prefix))+"%")
	}
	err := query.Find(&ingredients).Error
	return ingredients, err
}

func (r *CatalogRepository) GetIngredientByID(id uint) (*recipe.Ingredient, error) {
	var ingredient recipe.Ingredient
	err := r.db.First(&ingredient, id).Error
	return &ingredient, err
}

// escapeLike 转义 LIKE 通配符
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
