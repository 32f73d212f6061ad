package cli

import (
	"os"

	"golang.org/x/term"
)

const (
	// DefaultTerminalWidth 無法偵測時的寬度
	DefaultTerminalWidth = 80
	// MinTerminalWidth 換行寬度下限
	MinTerminalWidth = 40
)

// IsStdoutTTY stdout 是否為終端機
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// TerminalWidth 目前終端機寬度
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return DefaultTerminalWidth
	}
	if width < MinTerminalWidth {
		return MinTerminalWidth
	}
	return width
}
