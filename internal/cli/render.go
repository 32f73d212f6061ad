package cli

import (
	"strings"

	"cookmate/internal/core/chat"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	userLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#22D3EE")).
			Bold(true)

	botLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B")).
			Bold(true)

	imageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF")).
			Italic(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9CA3AF"))
)

// Renderer 將聊天訊息轉為終端輸出
type Renderer struct {
	markdown *glamour.TermRenderer
}

// NewRenderer markdown 為 false 時輸出原始文字，適合管線輸出
func NewRenderer(markdown bool, width int) *Renderer {
	r := &Renderer{}
	if !markdown {
		return r
	}

	md, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		r.markdown = md
	}
	return r
}

// Message 渲染一則訊息，含說話者標籤與圖片網址
func (r *Renderer) Message(msg chat.Message) string {
	var b strings.Builder

	if msg.Sender == chat.SenderUser {
		b.WriteString(userLabelStyle.Render("You"))
	} else {
		b.WriteString(botLabelStyle.Render("CookMate"))
	}
	b.WriteString("\n")
	b.WriteString(r.body(msg.Text))

	if msg.ImageURL != "" {
		b.WriteString(imageStyle.Render("🖼  " + msg.ImageURL))
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Renderer) body(text string) string {
	if r.markdown != nil {
		if rendered, err := r.markdown.Render(text); err == nil {
			return rendered
		}
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return text
}

// Info 提示文字
func (r *Renderer) Info(text string) string {
	return infoStyle.Render(text) + "\n"
}
