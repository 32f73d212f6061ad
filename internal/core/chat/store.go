package chat

import (
	"context"
	"sync"
	"time"

	"cookmate/internal/infrastructure/config"
	"cookmate/internal/pkg/common"

	"go.uber.org/zap"
)

// Store 會話儲存
type Store interface {
	// Create 建立並儲存新的空會話
	Create(ctx context.Context) (*Session, error)
	// Get 取得會話副本，不存在或過期時回傳 common.ErrSessionNotFound
	Get(ctx context.Context, id string) (*Session, error)
	// Save 覆寫會話並延長存活時間；讀取後已被他人寫入時回傳 common.ErrSessionConflict，
	// 成功後 session 的版本加一
	Save(ctx context.Context, session *Session) error
	// Delete 結束會話
	Delete(ctx context.Context, id string) error
	// Close 釋放資源
	Close() error
}

// NewStore 依設定建立會話儲存
func NewStore(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		store, err := NewRedisStore(ctx, cfg.Redis, cfg.Session.TTL)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return NewMemoryStore(cfg.Session.TTL, cfg.Session.CleanupInterval), nil
	}
}

type memoryEntry struct {
	session   *Session
	expiresAt time.Time
}

// MemoryStore 行程內會話儲存
type MemoryStore struct {
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	done     chan struct{}
	once     sync.Once
	now      func() time.Time
}

// NewMemoryStore 創建記憶體會話儲存，cleanupInterval <= 0 時不啟動清理協程
func NewMemoryStore(ttl, cleanupInterval time.Duration) *MemoryStore {
	s := &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]memoryEntry),
		done:     make(chan struct{}),
		now:      time.Now,
	}

	if cleanupInterval > 0 {
		go s.startCleanup(cleanupInterval)
	}

	common.LogInfo("會話儲存已初始化",
		zap.String("store", "memory"),
		zap.Duration("存活時間", ttl),
		zap.Duration("清理間隔", cleanupInterval),
	)
	return s
}

// Create 建立新會話
func (s *MemoryStore) Create(_ context.Context) (*Session, error) {
	session := NewSession()

	s.mu.Lock()
	s.sessions[session.ID()] = memoryEntry{
		session:   session.Clone(),
		expiresAt: s.now().Add(s.ttl),
	}
	s.mu.Unlock()

	return session, nil
}

// Get 取得會話
func (s *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok || s.now().After(entry.expiresAt) {
		return nil, common.ErrSessionNotFound
	}
	return entry.session.Clone(), nil
}

// Save 儲存會話
func (s *MemoryStore) Save(_ context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[session.ID()]
	if !ok || s.now().After(entry.expiresAt) {
		return common.ErrSessionNotFound
	}
	if entry.session.version != session.version {
		return common.ErrSessionConflict
	}

	session.version++
	s.sessions[session.ID()] = memoryEntry{
		session:   session.Clone(),
		expiresAt: s.now().Add(s.ttl),
	}
	return nil
}

// Delete 刪除會話
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return common.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Len 目前保存的會話數（含尚未清理的過期會話）
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// startCleanup 定期清理過期會話
func (s *MemoryStore) startCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.done:
			return
		}
	}
}

// cleanup 清理過期會話
func (s *MemoryStore) cleanup() int {
	now := s.now()
	count := 0

	s.mu.Lock()
	for id, entry := range s.sessions {
		if now.After(entry.expiresAt) {
			delete(s.sessions, id)
			count++
		}
	}
	remaining := len(s.sessions)
	s.mu.Unlock()

	if count > 0 {
		common.LogInfo("Cleaned up expired sessions",
			zap.Int("count", count),
			zap.Int("remaining_size", remaining),
		)
	}
	return count
}

// Close 關閉儲存並清空會話
func (s *MemoryStore) Close() error {
	s.once.Do(func() {
		close(s.done)

		s.mu.Lock()
		count := len(s.sessions)
		s.sessions = make(map[string]memoryEntry)
		s.mu.Unlock()

		common.LogInfo("會話儲存已關閉", zap.Int("會話數", count))
	})
	return nil
}
