// README: Redis-backed daily cache so multiple instances share one recomputation per day.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis keys a Daily value on "<name>:<bucket>". Values persist a little
// past the day boundary and then expire on their own. Any redis failure
// falls through to compute so the cache never blocks a response.
type Redis[T any] struct {
	client *redis.Client
	name   string
	logger *slog.Logger
	now    func() time.Time
}

const redisTTL = 48 * time.Hour

func NewRedis[T any](client *redis.Client, name string, logger *slog.Logger) *Redis[T] {
	return &Redis[T]{client: client, name: name, logger: logger, now: time.Now}
}

func (r *Redis[T]) Get(ctx context.Context, compute func(context.Context) (T, error)) (T, error) {
	key := r.name + ":" + bucketKey(r.now())

	if raw, err := r.client.Get(ctx, key).Bytes(); err == nil {
		var v T
		if json.Unmarshal(raw, &v) == nil {
			return v, nil
		}
	} else if err != redis.Nil {
		r.logger.Warn("daily cache read failed", "key", key, "err", err)
	}

	v, err := compute(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	if raw, err := json.Marshal(v); err == nil {
		if err := r.client.Set(ctx, key, raw, redisTTL).Err(); err != nil {
			r.logger.Warn("daily cache write failed", "key", key, "err", err)
		}
	}
	return v, nil
}
