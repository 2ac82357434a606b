package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTimeout bounds a unit test that passes a zero timeout to Context.
const DefaultTimeout = 5 * time.Second

// Context returns a context that ends with the test or after timeout. The
// timeout is shortened to leave a second before the test binary's deadline.
func Context(t testing.TB, timeout time.Duration) context.Context {
	t.Helper()
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if withDeadline, ok := t.(interface{ Deadline() (time.Time, bool) }); ok {
		if deadline, ok := withDeadline.Deadline(); ok {
			if remaining := time.Until(deadline) - time.Second; remaining > 0 && remaining < timeout {
				timeout = remaining
			}
		}
	}
	ctx, cancel := context.WithTimeout(t.Context(), timeout)
	t.Cleanup(cancel)
	return ctx
}
