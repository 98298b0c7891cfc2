package memcache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrStateStoreFull is returned by Set when the in-memory store holds MaxOAuthStates live entries.
var ErrStateStoreFull = errors.New("oauth state store is full")

// MaxOAuthStates bounds pending sign-ins kept in process memory.
const MaxOAuthStates = 10000

type StateStore interface {
	Set(ctx context.Context, state string, redirect string, ttl time.Duration) error

	// Consume returns the redirect target stored for state if not expired
	// and removes the state (single-use). ok is false when missing/expired.
	Consume(ctx context.Context, state string) (redirect string, ok bool)
}

type entry struct {
	redirect  string
	expiresAt time.Time
}

type OAuthStates struct {
	mu   sync.Mutex
	data map[string]entry
	max  int
	now  func() time.Time
}

func NewOAuthStates() *OAuthStates {
	return &OAuthStates{
		data: make(map[string]entry),
		max:  MaxOAuthStates,
		now:  time.Now,
	}
}

func (s *OAuthStates) Set(_ context.Context, state string, redirect string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.data) >= s.max {
		s.sweepLocked()
		if len(s.data) >= s.max {
			return ErrStateStoreFull
		}
	}
	s.data[state] = entry{
		redirect:  redirect,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

func (s *OAuthStates) Consume(_ context.Context, state string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[state]
	if !ok {
		return "", false
	}
	delete(s.data, state) // single-use
	if s.now().After(e.expiresAt) {
		return "", false
	}
	return e.redirect, true
}

// sweepLocked runs only once the store is full, so Set stays O(1) otherwise.
func (s *OAuthStates) sweepLocked() {
	now := s.now()
	for k, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, k)
		}
	}
}

// RedisStates shares pending sign-ins between instances. Expiry is left to redis.
type RedisStates struct {
	client *redis.Client
	prefix string
}

func NewRedisStates(client *redis.Client, prefix string) *RedisStates {
	return &RedisStates{client: client, prefix: prefix}
}

func (s *RedisStates) Set(ctx context.Context, state string, redirect string, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+state, redirect, ttl).Err()
}

func (s *RedisStates) Consume(ctx context.Context, state string) (string, bool) {
	redirect, err := s.client.GetDel(ctx, s.prefix+state).Result()
	if err != nil {
		return "", false
	}
	return redirect, true
}
