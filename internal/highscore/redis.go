// internal/highscore/redis.go
//
// Redis-backed Store: a plain string under Key.
// Raise uses optimistic WATCH/MULTI and retries when another client wins.

package highscore

import (
	"context"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// RedisStore keeps the high score in a Redis string.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to addr and checks it with a short Ping.
func NewRedisStore(ctx context.Context, addr, password string, db int) (*RedisStore, error) {
	if addr == "" {
		return nil, errors.New("redis: empty address")
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return &RedisStore{client: client}, nil
}

func (r *RedisStore) Read(ctx context.Context) (int, error) {
	v, err := r.client.Get(ctx, Key).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read high score: %w", err)
	}
	return v, nil
}

func (r *RedisStore) Write(ctx context.Context, score int) error {
	if err := r.client.Set(ctx, Key, score, 0).Err(); err != nil {
		return fmt.Errorf("write high score: %w", err)
	}
	return nil
}

const raiseRetries = 5

func (r *RedisStore) Raise(ctx context.Context, score int) (int, error) {
	var prev int
	raise := func(tx *redis.Tx) error {
		v, err := tx.Get(ctx, Key).Int()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		prev = v
		if score <= v {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, Key, score, 0)
			return nil
		})
		return err
	}
	for i := 0; i < raiseRetries; i++ {
		err := r.client.Watch(ctx, raise, Key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("raise high score: %w", err)
		}
		return prev, nil
	}
	return 0, fmt.Errorf("raise high score: %w", redis.TxFailedErr)
}

// Close releases the connection pool.
func (r *RedisStore) Close() error { return r.client.Close() }
