package gate

import "context"

// Gate keeps double-submits apart: at most one in-flight send attempt per
// key. Acquire before dispatching, release after the attempt settles. A
// TTL bounds locks whose holder died before releasing.
type Gate interface {
	TryAcquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}
