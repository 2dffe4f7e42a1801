// README: Day-bucketed memoization for derived views (banner, trending).
package cache

import (
	"context"
	"sync"
	"time"
)

// bucketKey identifies the current calendar day in the process-local zone.
// A cached value is valid only while its bucket matches.
func bucketKey(now time.Time) string {
	return now.Format("2006-01-02")
}

// Daily computes a value at most once per calendar day. Checks are lazy, on
// access; there are no expiry timers.
type Daily[T any] interface {
	Get(ctx context.Context, compute func(context.Context) (T, error)) (T, error)
}

// Memory is the in-process Daily backend. The mutex serializes the
// read-check-write sequence so concurrent callers on a fresh day trigger a
// single recomputation.
type Memory[T any] struct {
	mu     sync.Mutex
	bucket string
	value  T
	now    func() time.Time
}

func NewMemory[T any]() *Memory[T] {
	return &Memory[T]{now: time.Now}
}

func (m *Memory[T]) Get(ctx context.Context, compute func(context.Context) (T, error)) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := bucketKey(m.now())
	if m.bucket == key {
		return m.value, nil
	}
	v, err := compute(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	m.bucket = key
	m.value = v
	return v, nil
}
