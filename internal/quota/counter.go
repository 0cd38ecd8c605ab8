package quota

import (
	"context"
	"errors"
	"time"
)

// Counter tracks how many tasks a user has posted in the current calendar
// month. Reserve must be atomic: two concurrent posts against a full quota
// may not both succeed.
type Counter interface {
	// Reserve claims one slot for the user, failing with ErrLimitReached
	// when the month's count would exceed limit.
	Reserve(ctx context.Context, userID string, limit int) error

	// Release returns a previously reserved slot, used when the task
	// insert fails after the reservation.
	Release(ctx context.Context, userID string) error

	// Used reports the slots consumed by the user this month.
	Used(ctx context.Context, userID string) (int, error)
}

var ErrLimitReached = errors.New("monthly task limit reached")

// monthKey yields the calendar bucket a reservation counts against.
// Keys roll over at month boundaries, so counters reset themselves.
func monthKey(userID string, now time.Time) string {
	return "quota:" + userID + ":" + now.UTC().Format("2006-01")
}
