// Package redisstore is the gateway's advisory throttle. The authoritative
// limiter lives in the backend chat function; this layer only sheds obvious
// floods before they cost a backend call, and it fails open when redis is
// unreachable.
package redisstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type Store struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

func New(addr, password string, db, perMinute int) *Store {
	if perMinute <= 0 {
		perMinute = 20
	}
	return &Store{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		limit:  perMinute,
		window: time.Minute,
	}
}

// Allow counts a request against the key's fixed one-minute window. The
// error is returned alongside allowed=true so callers can log it and
// continue.
func (s *Store) Allow(ctx context.Context, key string) (bool, error) {
	k := "chat:rl:" + key
	n, err := s.rdb.Incr(ctx, k).Result()
	if err != nil {
		return true, err
	}
	if n == 1 {
		// first hit in the window starts the clock
		if err := s.rdb.Expire(ctx, k, s.window).Err(); err != nil {
			return true, err
		}
	}
	return n <= int64(s.limit), nil
}

func (s *Store) Close() error {
	return s.rdb.Close()
}
