package catalog

// CreateTagRequest 创建标签请求（仅管理员）
type CreateTagRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Color string `json:"color" validate:"required,hexcolor_short"`
	Slug  string `json:"slug" validate:"required,max=200,slug"`
}

// IngredientQuery 食材搜索条件, name 为不区分大小写的前缀
type IngredientQuery struct {
	Name string `form:"name"`
}
