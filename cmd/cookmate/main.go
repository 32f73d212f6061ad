package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"cookmate/internal/cli"
	"cookmate/internal/core/chat"
	"cookmate/internal/core/mealdb"
	"cookmate/internal/core/recipe"
	"cookmate/internal/infrastructure/config"
	"cookmate/internal/pkg/common"

	"github.com/peterh/liner"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 終端模式只寫日誌檔，避免干擾對話畫面
	if err := common.InitLoggerWithOptions(common.LoggerOptions{
		Level:   cfg.LogLevel,
		Console: false,
		Service: "cookmate-cli",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	store := chat.NewMemoryStore(cfg.Session.TTL, cfg.Session.CleanupInterval)
	defer store.Close()

	client := mealdb.NewClient(cfg.MealDB)
	defer client.Close()

	svc := recipe.NewService(client, recipe.NewFormatter(cfg.Chat), store)

	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	historyFile := historyPath()
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	tty := cli.IsStdoutTTY()
	renderer := cli.NewRenderer(tty, cli.TerminalWidth())

	runErr := cli.NewChat(svc, store, line, os.Stdout, renderer).Run(ctx)

	saveHistory(line, historyFile)
	line.Close()

	if runErr != nil {
		common.LogError("終端聊天異常結束", zap.Error(runErr))
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		common.Sync()
		os.Exit(1)
	}
}

// historyPath 輸入歷史檔位置
func historyPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "cookmate", "history")
}

func saveHistory(line *liner.State, path string) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = line.WriteHistory(f)
}
