package model

import (
	"gorm.io/gorm"

	"terminal-terrace/foodgram/internal/model/recipe"
	"terminal-terrace/foodgram/internal/model/user"
)

func InitTable(db *gorm.DB) error {
	// 自动迁移数据库表结构
	return db.AutoMigrate(
		// 用户相关模型
		&user.User{},
		&user.Follow{},
		// 参考数据
		&recipe.Tag{},
		&recipe.Ingredient{},
		// 菜谱聚合
		&recipe.Recipe{},
		&recipe.RecipeTag{},
		&recipe.RecipeIngredient{},
		// 收藏 / 购物车
		&recipe.Favorite{},
		&recipe.ShoppingCartItem{},
	)
}
