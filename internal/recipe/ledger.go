package recipe

import (
	"errors"

	"gorm.io/gorm"

	"terminal-terrace/foodgram/internal/dto"
	"terminal-terrace/foodgram/internal/metrics"
	recipeModel "terminal-terrace/foodgram/internal/model/recipe"
	"terminal-terrace/foodgram/packages/response"
)

// ledger 收藏与购物车共用的增删逻辑
type ledger struct {
	name     string
	label    string
	newEntry func(userID, recipeID uint) any
}

var (
	favorites = ledger{
		name:  "收藏",
		label: "favorites",
		newEntry: func(userID, recipeID uint) any {
			return &recipeModel.Favorite{UserID: userID, RecipeID: recipeID}
		},
	}
	shoppingCart = ledger{
		name:  "购物车",
		label: "shopping_cart",
		newEntry: func(userID, recipeID uint) any {
			return &recipeModel.ShoppingCartItem{UserID: userID, RecipeID: recipeID}
		},
	}
)

func (s *RecipeService) AddFavorite(userID, recipeID uint) (*dto.RecipeShortView, error) {
	return s.addEntry(favorites, userID, recipeID)
}

func (s *RecipeService) RemoveFavorite(userID, recipeID uint) error {
	return s.removeEntry(favorites, userID, recipeID)
}

func (s *RecipeService) AddToCart(userID, recipeID uint) (*dto.RecipeShortView, error) {
	return s.addEntry(shoppingCart, userID, recipeID)
}

func (s *RecipeService) RemoveFromCart(userID, recipeID uint) error {
	return s.removeEntry(shoppingCart, userID, recipeID)
}

func (s *RecipeService) addEntry(l ledger, userID, recipeID uint) (*dto.RecipeShortView, error) {
	rec, err := s.repo.GetByID(recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFoundError("菜谱不存在")
		}
		return nil, response.NewInternalError("获取菜谱失败", err)
	}

	entry := l.newEntry(userID, recipeID)
	exists, err := s.repo.LedgerEntryExists(entry, userID, recipeID)
	if err != nil {
		return nil, response.NewInternalError("查询"+l.name+"失败", err)
	}
	if exists {
		return nil, response.NewConflictError("菜谱已在" + l.name + "中")
	}

	// 并发插入时由唯一约束与外键兜底
	if err := s.repo.CreateLedgerEntry(entry); err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, response.NewConflictError("菜谱已在" + l.name + "中")
		case errors.Is(err, gorm.ErrForeignKeyViolated):
			return nil, response.NewNotFoundError("菜谱不存在")
		}
		return nil, response.NewInternalError("添加"+l.name+"失败", err)
	}

	metrics.LedgerChanges.WithLabelValues(l.label, "add").Inc()
	view := dto.NewRecipeShortView(rec)
	return &view, nil
}

func (s *RecipeService) removeEntry(l ledger, userID, recipeID uint) error {
	if _, err := s.repo.GetByID(recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("菜谱不存在")
		}
		return response.NewInternalError("获取菜谱失败", err)
	}

	affected, err := s.repo.DeleteLedgerEntry(l.newEntry(0, 0), userID, recipeID)
	if err != nil {
		return response.NewInternalError("移除"+l.name+"失败", err)
	}
	if affected == 0 {
		return response.NewNotFoundError("菜谱不在" + l.name + "中")
	}
	metrics.LedgerChanges.WithLabelValues(l.label, "remove").Inc()
	return nil
}
