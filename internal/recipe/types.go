package recipe

import (
	"fmt"
	"strings"

	"terminal-terrace/foodgram/internal/pkg/validation"
	"terminal-terrace/foodgram/packages/response"
)

// IngredientInput 请求中的食材及用量
type IngredientInput struct {
	ID     uint `json:"id"`
	Amount int  `json:"amount"`
}

// RecipeWriteRequest 创建/更新菜谱请求
type RecipeWriteRequest struct {
	Ingredients []IngredientInput `json:"ingredients"`
	Tags        []uint            `json:"tags"`
	Image       string            `json:"image"`
	Name        string            `json:"name" validate:"required,max=200"`
	Text        string            `json:"text" validate:"required"`
	CookingTime int               `json:"cooking_time" validate:"gte=1"`
}

// RecipeDraft 校验通过的菜谱内容
// Image 为原始图片数据, 更新时可以为空表示保留原图
type RecipeDraft struct {
	Name        string
	Text        string
	CookingTime int
	Image       string
	Tags        []uint
	Ingredients []IngredientInput
}

// ListQuery 菜谱列表过滤条件
type ListQuery struct {
	Tags             []string
	Author           uint
	IsFavorited      bool
	IsInShoppingCart bool
	Page             int
	Limit            int
}

var requestValidator = validation.New()

// ParseWriteRequest 校验请求并收集所有字段错误
// requireImage 为 true 时（创建）图片必填
func ParseWriteRequest(req RecipeWriteRequest, requireImage bool) (RecipeDraft, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Text = strings.TrimSpace(req.Text)
	req.Image = strings.TrimSpace(req.Image)

	fields := requestValidator.Struct(req)

	if requireImage && req.Image == "" {
		fields = validation.Merge(fields, map[string][]string{"image": {"该字段是必填项"}})
	}
	fields = validation.Merge(fields, checkIngredients(req.Ingredients))
	fields = validation.Merge(fields, checkTags(req.Tags))

	if len(fields) > 0 {
		return RecipeDraft{}, response.NewValidationError(fields)
	}

	return RecipeDraft{
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		Image:       req.Image,
		Tags:        req.Tags,
		Ingredients: req.Ingredients,
	}, nil
}

func checkIngredients(items []IngredientInput) map[string][]string {
	fields := make(map[string][]string)
	if len(items) == 0 {
		fields["ingredients"] = append(fields["ingredients"], "至少需要一个食材")
		return fields
	}

	seen := make(map[uint]struct{}, len(items))
	for _, item := range items {
		if item.ID == 0 {
			fields["ingredients"] = append(fields["ingredients"], "食材 ID 无效")
			continue
		}
		if _, dup := seen[item.ID]; dup {
			fields["ingredients"] = append(fields["ingredients"], fmt.Sprintf("食材 %d 重复", item.ID))
		}
		seen[item.ID] = struct{}{}
		if item.Amount < 1 {
			fields["amount"] = append(fields["amount"], fmt.Sprintf("食材 %d 的数量必须大于 0", item.ID))
		}
	}
	return fields
}

func checkTags(tags []uint) map[string][]string {
	fields := make(map[string][]string)
	if len(tags) == 0 {
		fields["tags"] = append(fields["tags"], "至少需要一个标签")
		return fields
	}

	seen := make(map[uint]struct{}, len(tags))
	for _, id := range tags {
		if id == 0 {
			fields["tags"] = append(fields["tags"], "标签 ID 无效")
			continue
		}
		if _, dup := seen[id]; dup {
			fields["tags"] = append(fields["tags"], fmt.Sprintf("标签 %d 重复", id))
		}
		seen[id] = struct{}{}
	}
	return fields
}
