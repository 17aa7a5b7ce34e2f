package dto

import "terminal-terrace/foodgram/internal/model/user"

// UserView 对外展示的用户信息, is_subscribed 相对当前访问者计算
type UserView struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// NewUserView 由模型构造视图
func NewUserView(u *user.User, subscribed bool) UserView {
	return UserView{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: subscribed,
	}
}

// FollowView 订阅列表中的作者, 附带其菜谱摘要
type FollowView struct {
	UserView
	RecipesCount int64             `json:"recipes_count"`
	Recipes      []RecipeShortView `json:"recipes"`
}

// Page 分页结果
type Page[T any] struct {
	Count   int64 `json:"count"`
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Results []T   `json:"results"`
}

const (
	DefaultPageSize = 6
	MaxPageSize     = 100
)

// Pagination 规范化页码与每页数量
func Pagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}

// Offset 页码对应的偏移
func Offset(page, limit int) int {
	return (page - 1) * limit
}
