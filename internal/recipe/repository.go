package recipe

import (
	"gorm.io/gorm"

	"terminal-terrace/foodgram/internal/dto"
	recipeModel "terminal-terrace/foodgram/internal/model/recipe"
	"terminal-terrace/foodgram/internal/model/user"
)

// IngredientLine 购物车中某个菜谱的一行食材
type IngredientLine struct {
	Name            string
	MeasurementUnit string
	Amount          int
}

// ListFilter 仓库层的列表过滤条件, UserID 为 0 时忽略收藏/购物车过滤
type ListFilter struct {
	TagSlugs         []string
	AuthorID         uint
	UserID           uint
	IsFavorited      bool
	IsInShoppingCart bool
}

type RecipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

func (r *RecipeRepository) GetByID(id uint) (*recipeModel.Recipe, error) {
	var rec recipeModel.Recipe
	err := r.db.First(&rec, id).Error
	return &rec, err
}

func (r *RecipeRepository) Create(rec *recipeModel.Recipe) error {
	return r.db.Create(rec).Error
}

// UpdateContent 更新菜谱正文字段
func (r *RecipeRepository) UpdateContent(rec *recipeModel.Recipe) error {
	return r.db.Model(rec).Select("name", "text", "cooking_time", "image").Updates(rec).Error
}

// Delete 删除菜谱及其关联行、收藏与购物车记录
func (r *RecipeRepository) Delete(id uint) error {
	if err := r.clearJoins(id); err != nil {
		return err
	}
	if err := r.db.Where("recipe_id = ?", id).Delete(&recipeModel.Favorite{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("recipe_id = ?", id).Delete(&recipeModel.ShoppingCartItem{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&recipeModel.Recipe{}, id).Error
}

// MissingTagIDs 返回不存在的标签 ID
func (r *RecipeRepository) MissingTagIDs(ids []uint) ([]uint, error) {
	var found []uint
	if err := r.db.Model(&recipeModel.Tag{}).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	return missing(ids, found), nil
}

// MissingIngredientIDs 返回不存在的食材 ID
func (r *RecipeRepository) MissingIngredientIDs(ids []uint) ([]uint, error) {
	var found []uint
	if err := r.db.Model(&recipeModel.Ingredient{}).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	return missing(ids, found), nil
}

// ReplaceJoins 清空并重新写入标签与食材关联
func (r *RecipeRepository) ReplaceJoins(recipeID uint, tagIDs []uint, ingredients []IngredientInput) error {
	if err := r.clearJoins(recipeID); err != nil {
		return err
	}

	tags := make([]recipeModel.RecipeTag, 0, len(tagIDs))
	for _, id := range tagIDs {
		tags = append(tags, recipeModel.RecipeTag{RecipeID: recipeID, TagID: id})
	}
	if err := r.db.Create(&tags).Error; err != nil {
		return err
	}

	rows := make([]recipeModel.RecipeIngredient, 0, len(ingredients))
	for i, item := range ingredients {
		rows = append(rows, recipeModel.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: item.ID,
			Amount:       item.Amount,
			Position:     i,
		})
	}
	return r.db.Create(&rows).Error
}

func (r *RecipeRepository) clearJoins(recipeID uint) error {
	if err := r.db.Where("recipe_id = ?", recipeID).Delete(&recipeModel.RecipeTag{}).Error; err != nil {
		return err
	}
	return r.db.Where("recipe_id = ?", recipeID).Delete(&recipeModel.RecipeIngredient{}).Error
}

// filtered 构造带过滤条件的查询, 每次调用返回新的语句
func (r *RecipeRepository) filtered(f ListFilter) *gorm.DB {
	q := r.db.Model(&recipeModel.Recipe{})

	if len(f.TagSlugs) > 0 {
		sub := r.db.Model(&recipeModel.RecipeTag{}).
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", f.TagSlugs)
		q = q.Where("recipes.id IN (?)", sub)
	}
	if f.AuthorID != 0 {
		q = q.Where("recipes.author_id = ?", f.AuthorID)
	}
	if f.UserID != 0 && f.IsFavorited {
		sub := r.db.Model(&recipeModel.Favorite{}).Select("recipe_id").Where("user_id = ?", f.UserID)
		q = q.Where("recipes.id IN (?)", sub)
	}
	if f.UserID != 0 && f.IsInShoppingCart {
		sub := r.db.Model(&recipeModel.ShoppingCartItem{}).Select("recipe_id").Where("user_id = ?", f.UserID)
		q = q.Where("recipes.id IN (?)", sub)
	}
	return q
}

// List 分页查询, 最新发布的在前
func (r *RecipeRepository) List(f ListFilter, offset, limit int) ([]recipeModel.Recipe, int64, error) {
	var total int64
	if err := r.filtered(f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipes []recipeModel.Recipe
	err := r.filtered(f).
		Order("recipes.created_at DESC").Order("recipes.id DESC").
		Offset(offset).Limit(limit).
		Find(&recipes).Error
	return recipes, total, err
}

// TagsByRecipe 批量加载标签
func (r *RecipeRepository) TagsByRecipe(recipeIDs []uint) (map[uint][]recipeModel.Tag, error) {
	type row struct {
		RecipeID uint
		ID       uint
		Name     string
		Color    string
		Slug     string
	}
	var rows []row
	err := r.db.Model(&recipeModel.RecipeTag{}).
		Select("recipe_tags.recipe_id, tags.id, tags.name, tags.color, tags.slug").
		Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
		Where("recipe_tags.recipe_id IN ?", recipeIDs).
		Order("tags.slug ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[uint][]recipeModel.Tag, len(recipeIDs))
	for _, row := range rows {
		result[row.RecipeID] = append(result[row.RecipeID], recipeModel.Tag{
			ID:    row.ID,
			Name:  row.Name,
			Color: row.Color,
			Slug:  row.Slug,
		})
	}
	return result, nil
}

// IngredientsByRecipe 批量加载食材及用量, 保持作者填写顺序
func (r *RecipeRepository) IngredientsByRecipe(recipeIDs []uint) (map[uint][]dto.IngredientAmountView, error) {
	type row struct {
		RecipeID        uint
		ID              uint
		Name            string
		MeasurementUnit string
		Amount          int
	}
	var rows []row
	err := r.db.Model(&recipeModel.RecipeIngredient{}).
		Select("recipe_ingredients.recipe_id, ingredients.id, ingredients.name, ingredients.measurement_unit, recipe_ingredients.amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("recipe_ingredients.recipe_id IN ?", recipeIDs).
		Order("recipe_ingredients.position ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[uint][]dto.IngredientAmountView, len(recipeIDs))
	for _, row := range rows {
		result[row.RecipeID] = append(result[row.RecipeID], dto.IngredientAmountView{
			ID:              row.ID,
			Name:            row.Name,
			MeasurementUnit: row.MeasurementUnit,
			Amount:          row.Amount,
		})
	}
	return result, nil
}

// UsersByID 批量加载作者
func (r *RecipeRepository) UsersByID(ids []uint) (map[uint]*user.User, error) {
	var users []user.User
	if err := r.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	result := make(map[uint]*user.User, len(users))
	for i := range users {
		result[users[i].ID] = &users[i]
	}
	return result, nil
}

// FavoritedSet 用户收藏了哪些菜谱
func (r *RecipeRepository) FavoritedSet(userID uint, recipeIDs []uint) (map[uint]bool, error) {
	var ids []uint
	err := r.db.Model(&recipeModel.Favorite{}).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error
	return toSet(ids), err
}

// CartSet 用户购物车中有哪些菜谱
func (r *RecipeRepository) CartSet(userID uint, recipeIDs []uint) (map[uint]bool, error) {
	var ids []uint
	err := r.db.Model(&recipeModel.ShoppingCartItem{}).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error
	return toSet(ids), err
}

// SubscribedSet 用户关注了哪些作者
func (r *RecipeRepository) SubscribedSet(userID uint, authorIDs []uint) (map[uint]bool, error) {
	var ids []uint
	err := r.db.Model(&user.Follow{}).
		Where("user_id = ? AND author_id IN ?", userID, authorIDs).
		Pluck("author_id", &ids).Error
	return toSet(ids), err
}

// LedgerEntryExists 收藏/购物车记录是否存在
func (r *RecipeRepository) LedgerEntryExists(entry any, userID, recipeID uint) (bool, error) {
	var count int64
	err := r.db.Model(entry).Where("user_id = ? AND recipe_id = ?", userID, recipeID).Count(&count).Error
	return count > 0, err
}

func (r *RecipeRepository) CreateLedgerEntry(entry any) error {
	return r.db.Create(entry).Error
}

// DeleteLedgerEntry 返回删除的行数
func (r *RecipeRepository) DeleteLedgerEntry(entry any, userID, recipeID uint) (int64, error) {
	result := r.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(entry)
	return result.RowsAffected, result.Error
}

// CartIngredientLines 购物车中所有菜谱的食材行
func (r *RecipeRepository) CartIngredientLines(userID uint) ([]IngredientLine, error) {
	var lines []IngredientLine
	err := r.db.Model(&recipeModel.ShoppingCartItem{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, recipe_ingredients.amount AS amount").
		Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = shopping_cart_items.recipe_id").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("shopping_cart_items.user_id = ?", userID).
		Scan(&lines).Error
	return lines, err
}

func missing(want, found []uint) []uint {
	present := toSet(found)
	var result []uint
	for _, id := range want {
		if !present[id] {
			result = append(result, id)
		}
	}
	return result
}

func toSet(ids []uint) map[uint]bool {
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
