package recipe

import (
	"context"

	"cookmate/internal/core/mealdb"
)

// Record 以欄位名稱讀取的食譜紀錄
type Record interface {
	Field(name string) (string, bool)
}

// Recipe 回覆格式化所需的食譜欄位
type Recipe interface {
	Record
	Name() string
	Area() string
	Instructions() string
	Thumbnail() string
}

// Finder 以菜名查詢食譜，查無結果時回傳 nil, nil
type Finder interface {
	SearchByName(ctx context.Context, dish string) (*mealdb.Meal, error)
}

// IngredientRow 食材、份量與估價
type IngredientRow struct {
	Ingredient string  `json:"ingredient"`
	Measure    string  `json:"measure"`
	Price      float64 `json:"price"`
}

// Summary 命中食譜的基本資料，隨回覆一併輸出
type Summary struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Category  string   `json:"category,omitempty"`
	Area      string   `json:"area,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Thumbnail string   `json:"thumbnail,omitempty"`
	Youtube   string   `json:"youtube,omitempty"`
	Source    string   `json:"source,omitempty"`
}

// NewSummary 由 TheMealDB 紀錄建立摘要
func NewSummary(meal *mealdb.Meal) *Summary {
	if meal == nil {
		return nil
	}
	return &Summary{
		ID:        meal.ID(),
		Name:      meal.Name(),
		Category:  meal.Category(),
		Area:      meal.Area(),
		Tags:      meal.Tags(),
		Thumbnail: meal.Thumbnail(),
		Youtube:   meal.Youtube(),
		Source:    meal.Source(),
	}
}

// Outcome 一次查詢的結果類型
type Outcome string

const (
	OutcomeRecipe       Outcome = "recipe"
	OutcomeEmptyDish    Outcome = "empty_dish"
	OutcomeNotFound     Outcome = "not_found"
	OutcomeServiceError Outcome = "service_error"
)
