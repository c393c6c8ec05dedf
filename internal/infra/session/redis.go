package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"frontdesk/internal/domain/auth"
	"frontdesk/internal/domain/user"
)

// RedisStore keeps sessions in Redis with a TTL matching the session
// expiry, plus a per-user index set so blocking a staff member can
// revoke every token they hold.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

type sessionRecord struct {
	Token     string   `json:"token"`
	UserID    string   `json:"user_id"`
	Roles     []string `json:"roles"`
	CreatedAt int64    `json:"created_at"`
	ExpiresAt int64    `json:"expires_at"`
}

func (s *RedisStore) Save(ctx context.Context, session *auth.Session) error {
	record := sessionRecord{
		Token:     string(session.Token),
		UserID:    string(session.UserID),
		CreatedAt: session.CreatedAt.UnixMilli(),
		ExpiresAt: session.ExpiresAt.UnixMilli(),
	}
	for _, r := range session.Roles {
		record.Roles = append(record.Roles, string(r))
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return auth.ErrTTLInvalid
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, sessionKey(session.Token), payload, ttl)
	pipe.SAdd(ctx, userKey(session.UserID), string(session.Token))
	pipe.Expire(ctx, userKey(session.UserID), ttl)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Get(ctx context.Context, token auth.Token) (*auth.Session, error) {
	payload, err := s.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, auth.ErrSessionNotFound
		}
		return nil, err
	}
	var record sessionRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("session: decode: %w", err)
	}
	session := &auth.Session{
		Token:     auth.Token(record.Token),
		UserID:    user.ID(record.UserID),
		CreatedAt: time.UnixMilli(record.CreatedAt).UTC(),
		ExpiresAt: time.UnixMilli(record.ExpiresAt).UTC(),
	}
	for _, r := range record.Roles {
		session.Roles = append(session.Roles, user.Role(r))
	}
	if session.Expired(time.Now()) {
		// Redis may still hold the record when its TTL clock lags the
		// app clock; drop the keys directly rather than via Delete,
		// whose own Get would see the same stale record.
		pipe := s.client.TxPipeline()
		pipe.Del(ctx, sessionKey(token))
		pipe.SRem(ctx, userKey(session.UserID), string(token))
		_, _ = pipe.Exec(ctx)
		return nil, auth.ErrSessionNotFound
	}
	return session, nil
}

func (s *RedisStore) Delete(ctx context.Context, token auth.Token) error {
	session, err := s.Get(ctx, token)
	if err != nil {
		if errors.Is(err, auth.ErrSessionNotFound) {
			return nil
		}
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, sessionKey(token))
	pipe.SRem(ctx, userKey(session.UserID), string(token))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisStore) DeleteByUser(ctx context.Context, userID user.ID) error {
	tokens, err := s.client.SMembers(ctx, userKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	}
	if len(tokens) == 0 {
		return nil
	}
	keys := make([]string, 0, len(tokens)+1)
	for _, t := range tokens {
		keys = append(keys, sessionKey(auth.Token(t)))
	}
	keys = append(keys, userKey(userID))
	return s.client.Del(ctx, keys...).Err()
}

func sessionKey(token auth.Token) string {
	return "frontdesk:session:" + string(token)
}

func userKey(userID user.ID) string {
	return "frontdesk:user_sessions:" + string(userID)
}
