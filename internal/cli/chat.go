package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cookmate/internal/core/chat"
	"cookmate/internal/core/recipe"
	"cookmate/internal/pkg/common"

	"github.com/peterh/liner"
	"go.uber.org/zap"
)

const (
	prompt = "cookmate> "

	welcome = "👋 Hi! Ask me how to make a dish, for example \"How to make Pizza\".\n" +
		"Commands: /history, /new, /quit"
)

// LineReader 逐行讀取使用者輸入，liner.State 即符合
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// Chat 終端聊天迴圈
type Chat struct {
	service  *recipe.Service
	store    chat.Store
	input    LineReader
	out      io.Writer
	renderer *Renderer
}

// NewChat 創建終端聊天
func NewChat(service *recipe.Service, store chat.Store, input LineReader, out io.Writer, renderer *Renderer) *Chat {
	return &Chat{
		service:  service,
		store:    store,
		input:    input,
		out:      out,
		renderer: renderer,
	}
}

// Run 執行聊天迴圈直到 /quit、EOF、Ctrl+C 或 ctx 結束
func (c *Chat) Run(ctx context.Context) error {
	session, err := c.store.Create(ctx)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	common.LogInfo("終端會話開始", zap.String("session_id", session.ID()))

	fmt.Fprintln(c.out, c.renderer.Info(welcome))

	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := c.input.Prompt(prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(c.out)
				return nil
			}
			return err
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		c.input.AppendHistory(input)

		if strings.HasPrefix(input, "/") {
			next, quit, err := c.command(ctx, session, input)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
			session = next
			continue
		}

		updated, reply, err := c.service.Submit(ctx, session.ID(), input)
		if errors.Is(err, common.ErrSessionNotFound) {
			// 閒置過久，會話已過期
			fmt.Fprintln(c.out, c.renderer.Info("Session expired, starting a new conversation."))
			if session, err = c.store.Create(ctx); err != nil {
				return fmt.Errorf("failed to create session: %w", err)
			}
			updated, reply, err = c.service.Submit(ctx, session.ID(), input)
		}
		if err != nil {
			return fmt.Errorf("failed to submit message: %w", err)
		}
		session = updated
		fmt.Fprintln(c.out, c.renderer.Message(reply.Message))
	}
}

// command 處理斜線指令，回傳之後使用的會話
func (c *Chat) command(ctx context.Context, session *chat.Session, input string) (*chat.Session, bool, error) {
	switch strings.ToLower(input) {
	case "/quit", "/exit":
		return session, true, nil

	case "/history":
		current, err := c.store.Get(ctx, session.ID())
		if err != nil {
			return nil, false, err
		}
		if current.Empty() {
			fmt.Fprintln(c.out, c.renderer.Info("No messages yet."))
			return current, false, nil
		}
		for _, msg := range current.Messages() {
			fmt.Fprintln(c.out, c.renderer.Message(msg))
		}
		fmt.Fprintln(c.out, c.renderer.Info(fmt.Sprintf("%d messages, last updated %s",
			current.Len(), current.UpdatedAt().Local().Format("15:04"))))
		return current, false, nil

	case "/new":
		if err := c.store.Delete(ctx, session.ID()); err != nil && !errors.Is(err, common.ErrSessionNotFound) {
			return nil, false, err
		}
		next, err := c.store.Create(ctx)
		if err != nil {
			return nil, false, err
		}
		fmt.Fprintln(c.out, c.renderer.Info("Started a new conversation."))
		return next, false, nil

	default:
		fmt.Fprintln(c.out, c.renderer.Info("Unknown command "+input+". Try /history, /new or /quit."))
		return session, false, nil
	}
}
