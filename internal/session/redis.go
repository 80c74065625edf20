package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/batch26/keepsake/internal/model"
)

// SIDCookie carries the opaque id of a server-side slot.
const SIDCookie = "batch26_sid"

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// RedisStore keeps slots server-side under "batch26_mock_user:<sid>".
type RedisStore struct {
	client *redis.Client
	expiry time.Duration
	secure bool
}

func NewRedisStore(client *redis.Client, expiry time.Duration, secure bool) *RedisStore {
	return &RedisStore{client: client, expiry: expiry, secure: secure}
}

func (s *RedisStore) Slot(w http.ResponseWriter, r *http.Request) Slot {
	slot := &redisSlot{store: s, w: w}
	if cookie, err := r.Cookie(SIDCookie); err == nil {
		slot.sid = cookie.Value
	}
	return slot
}

// Ping reports whether the server is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func redisKey(sid string) string {
	return Key + ":" + sid
}

type redisSlot struct {
	store *RedisStore
	w     http.ResponseWriter
	sid   string
}

func (s *redisSlot) Load(ctx context.Context) (*model.User, error) {
	if s.sid == "" {
		return nil, nil
	}

	data, err := s.store.client.Get(ctx, redisKey(s.sid)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return decode(data), nil
}

func (s *redisSlot) Save(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if s.sid == "" {
		s.sid = uuid.NewString()
	}

	err = s.store.client.Set(ctx, redisKey(s.sid), data, s.store.expiry).Err()
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	http.SetCookie(s.w, &http.Cookie{
		Name:     SIDCookie,
		Value:    s.sid,
		Expires:  time.Now().Add(s.store.expiry),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.store.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *redisSlot) Clear(ctx context.Context) error {
	if s.sid == "" {
		return nil
	}

	err := s.store.client.Del(ctx, redisKey(s.sid)).Err()
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	http.SetCookie(s.w, &http.Cookie{
		Name:     SIDCookie,
		Value:    "",
		Expires:  time.Unix(0, 0),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.store.secure,
		SameSite: http.SameSiteLaxMode,
	})
	s.sid = ""
	return nil
}
