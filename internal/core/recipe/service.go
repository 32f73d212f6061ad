package recipe

import (
	"context"
	"errors"
	"sync"

	"cookmate/internal/core/chat"
	"cookmate/internal/pkg/common"

	"go.uber.org/zap"
)

// Reply 一次使用者輸入的處理結果
type Reply struct {
	Outcome     Outcome         `json:"outcome"`
	Dish        string          `json:"dish,omitempty"`
	Message     chat.Message    `json:"message"`
	Ingredients []IngredientRow `json:"ingredients,omitempty"`
	Recipe      *Summary        `json:"recipe,omitempty"`
	Err         error           `json:"-"`
}

// Service 聊天食譜服務
type Service struct {
	finder    Finder
	formatter *Formatter
	store     chat.Store
	locks     *sessionLocks
}

// NewService 創建聊天食譜服務，store 只有 Submit 需要
func NewService(finder Finder, formatter *Formatter, store chat.Store) *Service {
	return &Service{
		finder:    finder,
		formatter: formatter,
		store:     store,
		locks:     newSessionLocks(),
	}
}

// 儲存衝突時重新讀取會話的次數上限
const maxSaveAttempts = 3

// Reply 附加使用者訊息與恰好一則機器人回覆，回傳同一個會話
func (s *Service) Reply(ctx context.Context, session *chat.Session, input string) (*chat.Session, *Reply) {
	reply := s.answer(ctx, input)
	s.record(session, input, reply)
	return session, reply
}

// record 將使用者訊息與回覆依序附加到會話
func (s *Service) record(session *chat.Session, input string, reply *Reply) {
	session.AppendUser(input)
	reply.Message = session.AppendBot(reply.Message.Text, reply.Message.ImageURL)

	common.LogInfo("聊天回覆完成",
		zap.String("session_id", session.ID()),
		zap.String("outcome", string(reply.Outcome)),
		zap.String("dish", reply.Dish),
		zap.Int("ingredients", len(reply.Ingredients)),
		zap.Int("messages", session.Len()),
	)
}

// answer 產生回覆內容，不修改會話
func (s *Service) answer(ctx context.Context, input string) *Reply {
	dish, err := ExtractDishName(input)
	if err != nil {
		return &Reply{
			Outcome: OutcomeEmptyDish,
			Message: chat.Message{Text: MessageEmptyDish},
			Err:     err,
		}
	}

	meal, err := s.finder.SearchByName(ctx, dish)
	if err != nil {
		common.LogError("食譜服務錯誤",
			zap.String("dish", dish),
			zap.Error(err),
		)
		return &Reply{
			Outcome: OutcomeServiceError,
			Dish:    dish,
			Message: chat.Message{Text: MessageServiceError},
			Err:     err,
		}
	}

	if meal == nil {
		return &Reply{
			Outcome: OutcomeNotFound,
			Dish:    dish,
			Message: chat.Message{Text: s.formatter.NotFound(dish)},
		}
	}

	rows := AttachPrices(ExtractIngredients(meal))
	return &Reply{
		Outcome:     OutcomeRecipe,
		Dish:        dish,
		Ingredients: rows,
		Recipe:      NewSummary(meal),
		Message: chat.Message{
			Text:     s.formatter.Format(meal, rows),
			ImageURL: meal.Thumbnail(),
		},
	}
}

// Submit 讀取已儲存的會話、回覆後寫回；同一行程內同一會話的請求依序處理，
// 跨實例的並行寫入由儲存層的版本檢查擋下，衝突時以最新會話重新附加
func (s *Service) Submit(ctx context.Context, sessionID, input string) (*chat.Session, *Reply, error) {
	if s.store == nil {
		return nil, nil, errors.New("session store is not configured")
	}

	unlock := s.locks.lock(sessionID)
	defer unlock()

	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	// 查詢只做一次，重試時沿用同一份回覆
	reply := s.answer(ctx, input)
	text, imageURL := reply.Message.Text, reply.Message.ImageURL

	for attempt := 1; ; attempt++ {
		reply.Message = chat.Message{Text: text, ImageURL: imageURL}
		s.record(session, input, reply)

		err = s.store.Save(ctx, session)
		if err == nil {
			return session, reply, nil
		}
		if !errors.Is(err, common.ErrSessionConflict) || attempt == maxSaveAttempts {
			break
		}

		common.LogWarn("會話已被其他請求更新，重新讀取",
			zap.String("session_id", sessionID),
			zap.Int("attempt", attempt),
		)
		if session, err = s.store.Get(ctx, sessionID); err != nil {
			break
		}
	}

	common.LogError("會話儲存失敗",
		zap.String("session_id", sessionID),
		zap.Error(err),
	)
	return nil, nil, err
}

// sessionLocks 以會話編號為鍵的互斥鎖，無人使用時釋放
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sessionLock)}
}

func (l *sessionLocks) lock(id string) func() {
	l.mu.Lock()
	entry, ok := l.locks[id]
	if !ok {
		entry = &sessionLock{}
		l.locks[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

func (l *sessionLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
