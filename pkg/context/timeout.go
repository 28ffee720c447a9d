// Package context provides signal-aware context helpers for the CLI.
package context

import (
	"context"
	"os"
	"os/signal"
	"time"
)

// WithSignal returns a context cancelled when any of the given signals
// arrives. The cancel function releases the signal registration; always
// call it.
//
//	ctx, cancel := WithSignal(context.Background(), os.Interrupt)
//	defer cancel()
func WithSignal(parent context.Context, sigs ...os.Signal) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, sigs...)
}

// WithSignalTimeout returns a context cancelled by a signal or after
// timeout, whichever comes first. It keeps batch runs from hanging forever
// on a stuck network call even when nobody hits Ctrl-C.
func WithSignalTimeout(parent context.Context, timeout time.Duration, sigs ...os.Signal) (context.Context, context.CancelFunc) {
	ctx, timeoutCancel := context.WithTimeout(parent, timeout)
	sigCtx, sigCancel := signal.NotifyContext(ctx, sigs...)
	return sigCtx, func() {
		sigCancel()
		timeoutCancel()
	}
}
