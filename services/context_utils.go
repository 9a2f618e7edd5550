package services

import "context"

// persistentContext keeps ctx's values but outlives its cancellation, so
// work started by a request can finish after the response is sent.
func persistentContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return context.WithoutCancel(ctx)
}
