package sigctx

import (
	"context"
	"os/signal"
	"syscall"
	"time"
)

// NotifyContext returns a context cancelled on the usual
// termination signals.
func NotifyContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
}

// CloseContext bounds graceful shutdown after the signal context
// is done.
func CloseContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}
