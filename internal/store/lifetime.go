package store

import "context"

// withLifetime derives a context that ends when either the request or the
// owning view ends
func withLifetime(ctx, lifetime context.Context) (context.Context, context.CancelFunc) {
	merged, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(lifetime, cancel)
	return merged, func() {
		stop()
		cancel()
	}
}
