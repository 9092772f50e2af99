package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a lock obtained from a DistributedLocker.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker serializes access to a session across server replicas that
// share one StateStore, so two instances never rebuild the same component at once.
type DistributedLocker interface {
	// Lock blocks until the lock for key is held or ctx is done. The lock
	// expires after ttl if the holder never releases it. The returned
	// UnlockFunc must be called once the session has been saved.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
