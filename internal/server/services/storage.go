package services

import (
	"context"
	"time"
)

// storageContext bounds a single store operation. A non-positive timeout
// leaves ctx as is.
func storageContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
