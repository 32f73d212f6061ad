package recipe

import (
	"strconv"
	"strings"

	"cookmate/internal/pkg/pyrand"
)

// 估價範圍（含上下限）
const (
	MinPrice = 50.0
	MaxPrice = 500.0
)

// ApproxPrice 以小寫食材名稱為種子產生固定的示意價格，四捨五入到小數一位。
// 每次呼叫都重新播種，因此同名食材（不分大小寫）永遠得到同一個價格。
func ApproxPrice(ingredient string) float64 {
	src := pyrand.NewFromString(strings.ToLower(ingredient))
	return roundTenths(src.Uniform(MinPrice, MaxPrice))
}

// roundTenths 依浮點數的精確十進位值捨入到小數一位
func roundTenths(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// FormatPrice 價格固定顯示一位小數
func FormatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64)
}
