package mealdb

import (
	"encoding/json"
	"strconv"
	"strings"

	"cookmate/internal/pkg/common"
)

// 欄位名稱
const (
	FieldID           = "idMeal"
	FieldName         = "strMeal"
	FieldCategory     = "strCategory"
	FieldArea         = "strArea"
	FieldInstructions = "strInstructions"
	FieldThumbnail    = "strMealThumb"
	FieldTags         = "strTags"
	FieldYoutube      = "strYoutube"
	FieldSource       = "strSource"
)

// Meal TheMealDB 回傳的單一食譜紀錄，唯讀
type Meal struct {
	fields map[string]string
}

// NewMeal 由欄位建立食譜紀錄
func NewMeal(fields map[string]string) *Meal {
	copied := make(map[string]string, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return &Meal{fields: copied}
}

// Field 讀取欄位，null 或缺少的欄位回傳 false
func (m *Meal) Field(name string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.fields[name]
	return v, ok
}

func (m *Meal) get(name string) string {
	v, _ := m.Field(name)
	return v
}

// ID 食譜編號
func (m *Meal) ID() string { return m.get(FieldID) }

// Name 菜名
func (m *Meal) Name() string { return m.get(FieldName) }

// Category 分類
func (m *Meal) Category() string { return m.get(FieldCategory) }

// Area 菜系
func (m *Meal) Area() string { return m.get(FieldArea) }

// Instructions 以換行分隔的做法
func (m *Meal) Instructions() string { return m.get(FieldInstructions) }

// Thumbnail 縮圖網址
func (m *Meal) Thumbnail() string { return m.get(FieldThumbnail) }

// Youtube 影片網址
func (m *Meal) Youtube() string { return m.get(FieldYoutube) }

// Source 原始食譜網址
func (m *Meal) Source() string { return m.get(FieldSource) }

// Tags 以逗號分隔的標籤，去除空白項
func (m *Meal) Tags() []string {
	var tags []string
	for _, tag := range strings.Split(m.get(FieldTags), ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// UnmarshalJSON 接受字串、數字與 null 欄位
func (m *Meal) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := common.ParseJSONBytes(data, &raw); err != nil {
		return err
	}

	m.fields = make(map[string]string, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case nil:
			// null 視為缺少
		case string:
			m.fields[k] = val
		case json.Number:
			m.fields[k] = val.String()
		case bool:
			m.fields[k] = strconv.FormatBool(val)
		}
	}
	return nil
}

// MarshalJSON 輸出原始欄位
func (m *Meal) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.fields)
}

// searchResponse search.php 回應
type searchResponse struct {
	Meals []*Meal `json:"meals"`
}
