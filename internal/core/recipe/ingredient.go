package recipe

import (
	"fmt"
	"strings"
)

// MaxIngredientIndex TheMealDB 每筆紀錄最多 20 組食材欄位
const MaxIngredientIndex = 20

// IngredientField 第 i 組食材欄位名稱
func IngredientField(i int) string {
	return fmt.Sprintf("strIngredient%d", i)
}

// MeasureField 第 i 組份量欄位名稱
func MeasureField(i int) string {
	return fmt.Sprintf("strMeasure%d", i)
}

// ExtractIngredients 依欄位順序取出非空白的食材，Price 尚未填入
func ExtractIngredients(rec Record) []IngredientRow {
	rows := make([]IngredientRow, 0, MaxIngredientIndex)
	for i := 1; i <= MaxIngredientIndex; i++ {
		name, ok := rec.Field(IngredientField(i))
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			continue
		}

		measure, _ := rec.Field(MeasureField(i))
		rows = append(rows, IngredientRow{
			Ingredient: name,
			Measure:    strings.TrimSpace(measure),
		})
	}
	return rows
}

// AttachPrices 為每一列填入估價
func AttachPrices(rows []IngredientRow) []IngredientRow {
	priced := make([]IngredientRow, len(rows))
	for i, row := range rows {
		row.Price = ApproxPrice(row.Ingredient)
		priced[i] = row
	}
	return priced
}
