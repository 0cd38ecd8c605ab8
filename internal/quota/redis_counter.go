package quota

import (
	"context"
	"time"

	"github.com/redis/rueidis"
)

// RedisCounter keeps the month counters in redis so every instance of the
// service sees the same numbers. Keys expire shortly after the month ends.
type RedisCounter struct {
	client rueidis.Client
}

const keyTTL = 40 * 24 * time.Hour

func NewRedisCounter(client rueidis.Client) *RedisCounter {
	return &RedisCounter{client: client}
}

func (r *RedisCounter) Reserve(ctx context.Context, userID string, limit int) error {
	key := monthKey(userID, time.Now())

	n, err := r.client.Do(
		ctx,
		r.client.B().Incr().Key(key).Build(),
	).AsInt64()
	if err != nil {
		return err
	}

	if err := r.client.Do(
		ctx,
		r.client.B().Expire().Key(key).Seconds(int64(keyTTL.Seconds())).Build(),
	).Error(); err != nil {
		return err
	}

	if n > int64(limit) {
		if err := r.Release(ctx, userID); err != nil {
			return err
		}
		return ErrLimitReached
	}

	return nil
}

func (r *RedisCounter) Release(ctx context.Context, userID string) error {
	key := monthKey(userID, time.Now())
	return r.client.Do(
		ctx,
		r.client.B().Decr().Key(key).Build(),
	).Error()
}

func (r *RedisCounter) Used(ctx context.Context, userID string) (int, error) {
	key := monthKey(userID, time.Now())

	n, err := r.client.Do(
		ctx,
		r.client.B().Get().Key(key).Build(),
	).AsInt64()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return 0, nil
		}
		return 0, err
	}

	return int(n), nil
}
