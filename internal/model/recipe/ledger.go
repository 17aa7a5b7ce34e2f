package recipe

import (
	"time"

	"terminal-terrace/foodgram/internal/model/user"
)

// Favorite 收藏表
type Favorite struct {
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	RecipeID  uint      `gorm:"primaryKey;index" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`

	User   *user.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Recipe *Recipe    `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Favorite) TableName() string {
	return "favorites"
}

// ShoppingCartItem 购物车表
type ShoppingCartItem struct {
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	RecipeID  uint      `gorm:"primaryKey;index" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`

	User   *user.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Recipe *Recipe    `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ShoppingCartItem) TableName() string {
	return "shopping_cart_items"
}
