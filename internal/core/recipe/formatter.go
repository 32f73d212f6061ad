package recipe

import (
	"fmt"
	"strings"

	"cookmate/internal/infrastructure/config"

	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

// 預設格式
const (
	DefaultMaxSteps  = 5
	DefaultWrapWidth = 90
	DefaultCurrency  = "₨"
)

// 固定回覆文字
const (
	MessageEmptyDish    = "❗ Please enter a valid dish name."
	MessageNotFound     = "🙈 Sorry, I couldn't find a recipe for **'%s'**. Try another specific dish name!"
	MessageServiceError = "⚠️ The recipe service is unavailable right now. Please try again in a moment."
)

// Formatter 將食譜組成聊天回覆
type Formatter struct {
	maxSteps  int
	wrapWidth int
	currency  string
}

// NewFormatter 創建回覆格式器，未設定的值使用預設
func NewFormatter(cfg config.ChatConfig) *Formatter {
	f := &Formatter{
		maxSteps:  cfg.MaxSteps,
		wrapWidth: cfg.WrapWidth,
		currency:  cfg.CurrencySymbol,
	}
	if f.maxSteps <= 0 {
		f.maxSteps = DefaultMaxSteps
	}
	if f.wrapWidth <= 0 {
		f.wrapWidth = DefaultWrapWidth
	}
	if f.currency == "" {
		f.currency = DefaultCurrency
	}
	return f
}

// Format 組成問候、食材價格清單與前幾個步驟
func (f *Formatter) Format(rec Recipe, rows []IngredientRow) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("👨‍🍳 Let's make **%s** from **%s cuisine**!\n\n", rec.Name(), rec.Area()))

	sb.WriteString("🛒 **Ingredients & Prices:**\n")
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("- %s: %s (%s%s)\n", row.Ingredient, row.Measure, f.currency, FormatPrice(row.Price)))
	}

	steps := SplitSteps(rec.Instructions())
	if len(steps) > 0 {
		sb.WriteString("\n📝 **Step-by-step Instructions:**\n")
		for i, step := range steps {
			if i >= f.maxSteps {
				break
			}
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, WrapText(step, f.wrapWidth)))
		}
	}

	return sb.String()
}

// NotFound 查無食譜的回覆
func (f *Formatter) NotFound(dish string) string {
	return fmt.Sprintf(MessageNotFound, dish)
}

// SplitSteps 依換行切分步驟，去除空白行
func SplitSteps(instructions string) []string {
	lines := strings.FieldsFunc(instructions, isLineBreak)
	steps := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			steps = append(steps, line)
		}
	}
	return steps
}

// isLineBreak 所有視為換行的字元，含 Unicode 行分隔符
func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// WrapText 只在空白處換行（連字號不視為斷點），過長的單字再硬切
func WrapText(s string, width int) string {
	w := wordwrap.NewWriter(width)
	w.Breakpoints = nil
	_, _ = w.Write([]byte(s))
	_ = w.Close()
	return wrap.String(w.String(), width)
}
