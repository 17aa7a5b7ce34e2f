package catalog

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"terminal-terrace/foodgram/internal/model/recipe"
	"terminal-terrace/foodgram/internal/pkg/validation"
	"terminal-terrace/foodgram/packages/response"
)

type CatalogService struct {
	repo      *CatalogRepository
	validator *validation.Validator
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{
		repo:      NewCatalogRepository(db),
		validator: validation.New(),
	}
}

func (s *CatalogService) ListTags() ([]recipe.Tag, error) {
	tags, err := s.repo.ListTags()
	if err != nil {
		return nil, response.NewInternalError("获取标签列表失败", err)
	}
	return tags, nil
}

func (s *CatalogService) GetTag(id uint) (*recipe.Tag, error) {
	tag, err := s.repo.GetTagByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("标签不存在")
		}
		return nil, response.NewInternalError("获取标签失败", err)
	}
	return tag, nil
}

// CreateTag 创建标签, 颜色与 slug 均需唯一
func (s *CatalogService) CreateTag(req CreateTagRequest) (*recipe.Tag, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Slug = strings.TrimSpace(req.Slug)
	req.Color = strings.ToUpper(strings.TrimSpace(req.Color))

	if fields := s.validator.Struct(req); fields != nil {
		return nil, response.NewValidationError(fields)
	}

	existing, err := s.repo.FindTagConflict(req.Color, req.Slug)
	if err == nil {
		if existing.Slug == req.Slug {
			return nil, response.NewConflictError("slug 已被使用")
		}
		return nil, response.NewConflictError("颜色已被使用")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewInternalError("检查标签失败", err)
	}

	tag := &recipe.Tag{Name: req.Name, Color: req.Color, Slug: req.Slug}
	if err := s.repo.CreateTag(tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.NewConflictError("标签已存在")
		}
		return nil, response.NewInternalError("创建标签失败", err)
	}
	return tag, nil
}

func (s *CatalogService) ListIngredients(query IngredientQuery) ([]recipe.Ingredient, error) {
	ingredients, err := s.repo.ListIngredients(strings.TrimSpace(query.Name))
	if err != nil {
		return nil, response.NewInternalError("获取食材列表失败", err)
	}
	return ingredients, nil
}

func (s *CatalogService) GetIngredient(id uint) (*recipe.Ingredient, error) {
	ingredient, err := s.repo.GetIngredientByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("食材不存在")
		}
		return nil, response.NewInternalError("获取食材失败", err)
	}
	return ingredient, nil
}
