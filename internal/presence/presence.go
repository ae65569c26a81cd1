package presence

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store keeps online markers in redis so ordinary HTTP handlers can
// answer presence queries without reaching into the realtime registry.
// The TTL covers a crashed process that never wrote the offline marker.
type Store struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewStore(client *redis.Client, prefix string, ttl time.Duration) *Store {
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &Store{client: client, prefix: prefix, ttl: ttl}
}

func (s *Store) key(userID string) string {
	return s.prefix + ":presence:" + userID
}

func (s *Store) Online(ctx context.Context, userID string) error {
	return s.client.Set(ctx, s.key(userID), "online", s.ttl).Err()
}

func (s *Store) Offline(ctx context.Context, userID string) error {
	return s.client.Del(ctx, s.key(userID)).Err()
}

func (s *Store) IsOnline(ctx context.Context, userID string) bool {
	v, err := s.client.Get(ctx, s.key(userID)).Result()
	return err == nil && v == "online"
}
