package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// TokenStore persists per-session credentials in Redis under fixed,
// well-known keys:
//
//	session:<sid>:token  – the bearer credential
//	session:<sid>:uid    – the backend's numeric user id
//	session:<sid>:name   – the cached display name
//
// Storage failures never reach the caller: writes degrade to no-ops and
// reads to zero values, logged at warn level. Keys expire after the
// configured TTL so abandoned sessions clean themselves up.
type TokenStore struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewTokenStore wraps a connected Redis client. A non-positive ttl disables
// key expiry.
func NewTokenStore(client *redis.Client, ttl time.Duration, log zerolog.Logger) *TokenStore {
	return &TokenStore{client: client, ttl: ttl, log: log}
}

func (s *TokenStore) SaveToken(ctx context.Context, sid, token string) {
	s.set(ctx, s.key(sid, "token"), token)
}

func (s *TokenStore) Token(ctx context.Context, sid string) string {
	return s.get(ctx, s.key(sid, "token"))
}

func (s *TokenStore) SaveUserID(ctx context.Context, sid string, userID int64) {
	s.set(ctx, s.key(sid, "uid"), fmt.Sprintf("%d", userID))
}

func (s *TokenStore) UserID(ctx context.Context, sid string) int64 {
	raw := s.get(ctx, s.key(sid, "uid"))
	if raw == "" {
		return 0
	}
	var id int64
	if _, err := fmt.Sscanf(raw, "%d", &id); err != nil {
		return 0
	}
	return id
}

func (s *TokenStore) SaveDisplayName(ctx context.Context, sid, name string) {
	s.set(ctx, s.key(sid, "name"), name)
}

func (s *TokenStore) DisplayName(ctx context.Context, sid string) string {
	return s.get(ctx, s.key(sid, "name"))
}

func (s *TokenStore) Clear(ctx context.Context, sid string) {
	keys := []string{s.key(sid, "token"), s.key(sid, "uid"), s.key(sid, "name")}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		s.log.Warn().Err(err).Str("sid", sid).Msg("token store clear failed")
	}
}

func (s *TokenStore) set(ctx context.Context, key, value string) {
	if err := s.client.Set(ctx, key, value, s.expiry()).Err(); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("token store write failed")
	}
}

func (s *TokenStore) get(ctx context.Context, key string) string {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Str("key", key).Msg("token store read failed")
		}
		return ""
	}
	return val
}

func (s *TokenStore) expiry() time.Duration {
	if s.ttl <= 0 {
		return 0
	}
	return s.ttl
}

func (s *TokenStore) key(sid, field string) string {
	return fmt.Sprintf("session:%s:%s", sid, field)
}
