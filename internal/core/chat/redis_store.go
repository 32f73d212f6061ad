package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cookmate/internal/infrastructure/config"
	"cookmate/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisStore 以 Redis 保存會話，key 存活時間即會話存活時間
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore 創建 Redis 會話儲存並測試連線
func NewRedisStore(ctx context.Context, cfg config.RedisConfig, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 測試連接
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("會話儲存已初始化",
		zap.String("store", "redis"),
		zap.String("addr", cfg.Addr),
		zap.Duration("存活時間", ttl),
	)

	return &RedisStore{
		client: client,
		prefix: cfg.KeyPrefix,
		ttl:    ttl,
	}, nil
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

// Create 建立新會話
func (s *RedisStore) Create(ctx context.Context) (*Session, error) {
	session := NewSession()

	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}

	ok, err := s.client.SetNX(ctx, s.key(session.ID()), data, s.ttl).Result()
	if err != nil {
		return nil, common.ErrSessionStoreError.Wrap(err)
	}
	if !ok {
		return nil, common.ErrSessionStoreError.Wrap(fmt.Errorf("session id collision"))
	}
	return session, nil
}

// Get 取得會話
func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.ErrSessionNotFound
		}
		return nil, common.ErrSessionStoreError.Wrap(err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, common.ErrSessionStoreError.Wrap(fmt.Errorf("failed to unmarshal session: %w", err))
	}
	return &session, nil
}

// Save 儲存會話，以 WATCH 確認讀取後沒有其他實例寫入
func (s *RedisStore) Save(ctx context.Context, session *Session) error {
	key := s.key(session.ID())

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return common.ErrSessionNotFound
			}
			return common.ErrSessionStoreError.Wrap(err)
		}

		var stored Session
		if err := json.Unmarshal(data, &stored); err != nil {
			return common.ErrSessionStoreError.Wrap(fmt.Errorf("failed to unmarshal session: %w", err))
		}
		if stored.version != session.version {
			return common.ErrSessionConflict
		}

		next := session.Clone()
		next.version++
		data, err = json.Marshal(next)
		if err != nil {
			return fmt.Errorf("failed to marshal session: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.SetXX(ctx, key, data, s.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		session.version = next.version
		return nil
	}, key)

	if err == nil {
		return nil
	}
	// EXEC 前 key 被改動
	if errors.Is(err, redis.TxFailedErr) {
		return common.ErrSessionConflict
	}
	var customErr *common.CustomError
	if errors.As(err, &customErr) {
		return err
	}
	return common.ErrSessionStoreError.Wrap(err)
}

// Delete 刪除會話
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, s.key(id)).Result()
	if err != nil {
		return common.ErrSessionStoreError.Wrap(err)
	}
	if n == 0 {
		return common.ErrSessionNotFound
	}
	return nil
}

// Ping 檢查 Redis 連線
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close 關閉連線
func (s *RedisStore) Close() error {
	return s.client.Close()
}
