// Package recipe 菜谱相关模型
package recipe

import "time"

// Tag 标签表（参考数据）
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(200);not null" json:"name"`
	Color     string    `gorm:"type:varchar(7);not null;uniqueIndex" json:"color"` // #RGB 或 #RRGGBB
	Slug      string    `gorm:"type:varchar(200);not null;uniqueIndex" json:"slug"`
	CreatedAt time.Time `json:"-"`
}

func (Tag) TableName() string {
	return "tags"
}

// Ingredient 食材表（参考数据）
type Ingredient struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"type:varchar(200);not null;index" json:"name"`
	MeasurementUnit string    `gorm:"type:varchar(200);not null" json:"measurement_unit"`
	CreatedAt       time.Time `json:"-"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}
