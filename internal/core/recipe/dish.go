package recipe

import (
	"strings"
	"unicode"

	"cookmate/internal/pkg/common"
)

// triggerPhrases 依優先順序檢查，先命中者勝出（與出現在句中的位置無關）
var triggerPhrases = []string{"how to make", "recipe for", "make", "cook"}

// asciiPunctuation 全部 ASCII 標點符號
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// ErrEmptyDishName 擷取後沒有可用的菜名
var ErrEmptyDishName = common.NewValidationError("no valid dish name")

// ExtractDishName 從使用者輸入擷取菜名
func ExtractDishName(input string) (string, error) {
	lower := strings.ToLower(input)

	dish := ""
	for _, trigger := range triggerPhrases {
		if idx := strings.LastIndex(lower, trigger); idx >= 0 {
			dish = trimDish(lower[idx+len(trigger):])
			break
		}
	}

	// 沒有觸發詞，或觸發詞後面是空的
	if dish == "" {
		dish = trimDish(input)
	}

	if dish == "" {
		return "", ErrEmptyDishName
	}
	return dish, nil
}

// trimDish 一次去除頭尾的空白與 ASCII 標點，兩者交錯時也會一併去除
func trimDish(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(asciiPunctuation, r)
	})
}
