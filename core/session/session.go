// Package session stores login sessions: an opaque token mapped to the principal
// that logged in.
//
// Sessions live in Redis when session.redis_url is configured, and in process
// memory otherwise (single instance and tests).
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"race-admin/core/models"
	"race-admin/core/policy"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyTpl     = "session:%s"           // session:${token}
	accountTpl = "session:account:%s:%s" // session:account:${kind}:${account}
)

// ErrNotFound is returned for unknown or expired tokens.
var ErrNotFound = errors.New("session not found")

// Store persists sessions.
type Store interface {
	Create(ctx context.Context, p policy.Principal) (string, error)
	Get(ctx context.Context, token string) (*policy.Principal, error)
	Delete(ctx context.Context, token string) error
	// DeleteAccount drops every session of one account.
	DeleteAccount(ctx context.Context, kind models.Kind, account string) error
	Ping(ctx context.Context) error
}

// NewStore builds the store selected by cfg.
func NewStore(cfg Config) (Store, error) {
	ttl := time.Duration(cfg.TTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	if cfg.RedisURL == "" {
		return NewMemoryStore(ttl), nil
	}
	return NewRedisStore(cfg.RedisURL, ttl)
}

func newToken() string {
	return uuid.NewString()
}

// RedisStore keeps sessions as Redis hashes with a TTL.
type RedisStore struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(url string, ttl time.Duration) (*RedisStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{redis: client, ttl: ttl}, nil
}

// Create stores p under a fresh token.
func (s *RedisStore) Create(ctx context.Context, p policy.Principal) (string, error) {
	token := newToken()
	key := fmt.Sprintf(keyTpl, token)
	index := fmt.Sprintf(accountTpl, p.Identity, p.Account)

	pipe := s.redis.TxPipeline()
	pipe.HSet(ctx, key, map[string]any{
		"account":  p.Account,
		"identity": string(p.Identity),
		"role_id":  p.RoleID,
	})
	pipe.Expire(ctx, key, s.ttl)
	pipe.SAdd(ctx, index, token)
	pipe.Expire(ctx, index, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return token, nil
}

// Get resolves a token.
func (s *RedisStore) Get(ctx context.Context, token string) (*policy.Principal, error) {
	values, err := s.redis.HGetAll(ctx, fmt.Sprintf(keyTpl, token)).Result()
	if err == redis.Nil || (err == nil && len(values) == 0) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}

	kind, ok := models.ParseKind(values["identity"])
	if !ok {
		return nil, ErrNotFound
	}
	roleID, _ := strconv.Atoi(values["role_id"])

	return &policy.Principal{
		Account:  values["account"],
		Identity: kind,
		RoleID:   roleID,
	}, nil
}

// Delete drops a token. Unknown tokens are not an error.
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.redis.Del(ctx, fmt.Sprintf(keyTpl, token)).Err()
}

// DeleteAccount drops the account's sessions along with its token index.
func (s *RedisStore) DeleteAccount(ctx context.Context, kind models.Kind, account string) error {
	index := fmt.Sprintf(accountTpl, kind, account)
	tokens, err := s.redis.SMembers(ctx, index).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("failed to list account sessions: %w", err)
	}

	keys := make([]string, 0, len(tokens)+1)
	for _, token := range tokens {
		keys = append(keys, fmt.Sprintf(keyTpl, token))
	}
	keys = append(keys, index)
	if err := s.redis.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete account sessions: %w", err)
	}
	return nil
}

// Ping checks the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.redis.Ping(ctx).Err()
}

// Close releases the Redis connection pool.
func (s *RedisStore) Close() error {
	return s.redis.Close()
}

type memoryEntry struct {
	principal policy.Principal
	expires   time.Time
}

// MemoryStore keeps sessions in a map.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore returns an empty in-process store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Create stores p under a fresh token. Expired entries are swept on the way.
func (s *MemoryStore) Create(_ context.Context, p policy.Principal) (string, error) {
	token := newToken()
	now := s.now()
	s.mu.Lock()
	for key, entry := range s.entries {
		if now.After(entry.expires) {
			delete(s.entries, key)
		}
	}
	s.entries[token] = memoryEntry{principal: p, expires: now.Add(s.ttl)}
	s.mu.Unlock()
	return token, nil
}

// Get resolves a token, evicting it if expired.
func (s *MemoryStore) Get(_ context.Context, token string) (*policy.Principal, error) {
	s.mu.RLock()
	entry, ok := s.entries[token]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if s.now().After(entry.expires) {
		s.mu.Lock()
		delete(s.entries, token)
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	p := entry.principal
	return &p, nil
}

// Delete drops a token.
func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.entries, token)
	s.mu.Unlock()
	return nil
}

// DeleteAccount drops every session of one account.
func (s *MemoryStore) DeleteAccount(_ context.Context, kind models.Kind, account string) error {
	s.mu.Lock()
	for key, entry := range s.entries {
		if entry.principal.Is(kind, account) {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()
	return nil
}

// Ping always succeeds.
func (s *MemoryStore) Ping(context.Context) error {
	return nil
}
