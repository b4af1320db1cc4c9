package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists admin sessions in Redis so they survive restarts and
// are shared across instances.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore connects using a redis:// URL and verifies the connection.
func NewRedisStore(url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis url tidak valid: %w", err)
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("gagal konek ke redis: %w", err)
	}

	return &RedisStore{rdb: rdb}, nil
}

func sessionKey(sid string) string {
	return "admin_session:" + sid
}

func (s *RedisStore) Create(ctx context.Context, sess AdminSession) (string, error) {
	sid := newSessionID()
	if err := s.write(ctx, sid, sess); err != nil {
		return "", err
	}
	return sid, nil
}

func (s *RedisStore) Get(ctx context.Context, sid string) (AdminSession, error) {
	var sess AdminSession
	raw, err := s.rdb.Get(ctx, sessionKey(sid)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return sess, ErrNotFound
		}
		return sess, err
	}
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return sess, err
	}
	return sess, nil
}

func (s *RedisStore) Refresh(ctx context.Context, sid string, sess AdminSession) error {
	if _, err := s.Get(ctx, sid); err != nil {
		return err
	}
	return s.write(ctx, sid, sess)
}

func (s *RedisStore) Delete(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, sessionKey(sid)).Err()
}

func (s *RedisStore) write(ctx context.Context, sid string, sess AdminSession) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, sessionKey(sid), raw, TTL).Err()
}

// Close releases the underlying connection.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
