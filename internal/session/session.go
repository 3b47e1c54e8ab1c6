package session

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ospteam/marketplace/internal/model"
	"github.com/ospteam/marketplace/pkg/redis"
)

var (
	// ErrNotFound is returned when a token does not map to a live session.
	ErrNotFound = errors.New("session not found")
)

// Principal is what a session token resolves to. The role is captured at
// sign-in time; route gating trusts it without re-reading the user row.
type Principal struct {
	UserUID string     `json:"user_uid"`
	Role    model.Role `json:"role"`
	Name    string     `json:"name"`
	Email   string     `json:"email"`
}

// Store keeps sessions in redis under opaque uuid tokens. Each token expires
// after the configured TTL; there is no sliding renewal.
type Store struct {
	redis redis.RedisAdapter
	ttl   time.Duration
}

func NewStore(adapter redis.RedisAdapter, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Store{
		redis: adapter,
		ttl:   ttl,
	}
}

// Create allocates a fresh token for the principal and stores it with the TTL.
func (s *Store) Create(p Principal) (string, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return "", err
	}

	token := uuid.NewString()
	if err := s.redis.Set(sessionKey(token), payload, s.ttl); err != nil {
		return "", err
	}
	return token, nil
}

// Get resolves a token to its principal. Expired and unknown tokens are
// indistinguishable: both return ErrNotFound.
func (s *Store) Get(token string) (*Principal, error) {
	payload, err := s.redis.Get(sessionKey(token))
	if err != nil {
		if errors.Is(err, redis.NilError) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var p Principal
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Destroy removes the session. Destroying an unknown token is not an error.
func (s *Store) Destroy(token string) error {
	return s.redis.Del(sessionKey(token))
}

func sessionKey(token string) string {
	return "session:" + token
}
