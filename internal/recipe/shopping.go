package recipe

import (
	"fmt"
	"sort"
	"strings"

	"terminal-terrace/foodgram/internal/dto"
	"terminal-terrace/foodgram/packages/response"
)

type shoppingKey struct {
	name string
	unit string
}

// AggregateShoppingList 按 (名称, 单位) 合并数量, 按名称再按单位排序
func AggregateShoppingList(lines []IngredientLine) []dto.ShoppingListItem {
	totals := make(map[shoppingKey]int, len(lines))
	for _, line := range lines {
		totals[shoppingKey{name: line.Name, unit: line.MeasurementUnit}] += line.Amount
	}

	items := make([]dto.ShoppingListItem, 0, len(totals))
	for key, amount := range totals {
		items = append(items, dto.ShoppingListItem{
			Name:            key.name,
			MeasurementUnit: key.unit,
			Amount:          amount,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].MeasurementUnit < items[j].MeasurementUnit
	})
	return items
}

// ShoppingList 用户购物车中所有菜谱的合并清单
func (s *RecipeService) ShoppingList(userID uint) ([]dto.ShoppingListItem, error) {
	lines, err := s.repo.CartIngredientLines(userID)
	if err != nil {
		return nil, response.NewInternalError("获取购物清单失败", err)
	}
	return AggregateShoppingList(lines), nil
}

// RenderShoppingList 纯文本格式的购物清单
func RenderShoppingList(items []dto.ShoppingListItem) string {
	var b strings.Builder
	b.WriteString("购物清单\n")
	if len(items) == 0 {
		b.WriteString("(空)\n")
		return b.String()
	}
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s (%s): %d\n", i+1, item.Name, item.MeasurementUnit, item.Amount)
	}
	return b.String()
}
