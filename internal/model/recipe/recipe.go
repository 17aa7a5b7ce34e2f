package recipe

import (
	"time"

	"terminal-terrace/foodgram/internal/model/user"
)

// Recipe 菜谱基础信息表
// 标签和食材通过关联表保存，删除菜谱时关联行与收藏/购物车记录级联删除
type Recipe struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AuthorID    uint      `gorm:"not null;index" json:"author_id"`
	Name        string    `gorm:"type:varchar(200);not null" json:"name"`
	Image       string    `gorm:"type:varchar(500);not null" json:"image"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	CookingTime int       `gorm:"not null;check:chk_recipe_cooking_time,cooking_time >= 1" json:"cooking_time"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`

	Author *user.User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// RecipeTag 菜谱-标签关联表
type RecipeTag struct {
	RecipeID uint `gorm:"primaryKey" json:"recipe_id"`
	TagID    uint `gorm:"primaryKey;index" json:"tag_id"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	Tag    *Tag    `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE" json:"-"`
}

func (RecipeTag) TableName() string {
	return "recipe_tags"
}

// RecipeIngredient 菜谱-食材关联表，带用量
// Position 记录作者填写时的顺序
type RecipeIngredient struct {
	RecipeID     uint `gorm:"primaryKey" json:"recipe_id"`
	IngredientID uint `gorm:"primaryKey;index" json:"ingredient_id"`
	Amount       int  `gorm:"not null;check:chk_recipe_ingredient_amount,amount >= 1" json:"amount"`
	Position     int  `gorm:"not null;default:0" json:"position"`

	Recipe     *Recipe     `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	Ingredient *Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE" json:"-"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}
