package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"terminal-terrace/foodgram/internal/dto"
)

func TestAggregateShoppingList(t *testing.T) {
	tests := []struct {
		name  string
		lines []IngredientLine
		want  []dto.ShoppingListItem
	}{
		{
			name:  "空购物车",
			lines: nil,
			want:  []dto.ShoppingListItem{},
		},
		{
			name: "同名同单位合并",
			lines: []IngredientLine{
				{Name: "sugar", MeasurementUnit: "g", Amount: 100},
				{Name: "sugar", MeasurementUnit: "g", Amount: 50},
			},
			want: []dto.ShoppingListItem{{Name: "sugar", MeasurementUnit: "g", Amount: 150}},
		},
		{
			name: "同名不同单位分开",
			lines: []IngredientLine{
				{Name: "sugar", MeasurementUnit: "tbsp", Amount: 2},
				{Name: "sugar", MeasurementUnit: "g", Amount: 100},
			},
			want: []dto.ShoppingListItem{
				{Name: "sugar", MeasurementUnit: "g", Amount: 100},
				{Name: "sugar", MeasurementUnit: "tbsp", Amount: 2},
			},
		},
		{
			name: "按名称排序",
			lines: []IngredientLine{
				{Name: "milk", MeasurementUnit: "ml", Amount: 200},
				{Name: "eggs", MeasurementUnit: "pcs", Amount: 2},
				{Name: "milk", MeasurementUnit: "ml", Amount: 300},
			},
			want: []dto.ShoppingListItem{
				{Name: "eggs", MeasurementUnit: "pcs", Amount: 2},
				{Name: "milk", MeasurementUnit: "ml", Amount: 500},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AggregateShoppingList(tt.lines)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderShoppingList(t *testing.T) {
	text := RenderShoppingList([]dto.ShoppingListItem{
		{Name: "eggs", MeasurementUnit: "pcs", Amount: 2},
		{Name: "milk", MeasurementUnit: "ml", Amount: 500},
	})
	assert.Equal(t, "购物清单\n1. eggs (pcs): 2\n2. milk (ml): 500\n", text)

	assert.Equal(t, "购物清单\n(空)\n", RenderShoppingList(nil))
}
