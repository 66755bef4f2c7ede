package util

import (
	"context"
)

// WaitReady waits for the ready channel to close or the context to be cancelled.
// Returns nil if ready closed, even when the context was cancelled at the same time.
func WaitReady(ctx context.Context, ready <-chan struct{}) error {
	select {
	case <-ctx.Done():
		select {
		case <-ready:
			return nil
		default:
		}
		return ctx.Err()
	case <-ready:
		return nil
	}
}

// WaitError waits for an error on errChan or for done to close. An error that is
// available when done closes is still returned.
func WaitError(errChan <-chan error, done <-chan struct{}) error {
	select {
	case err := <-errChan:
		return err
	case <-done:
		select {
		case err := <-errChan:
			return err
		default:
		}
		return nil
	}
}
