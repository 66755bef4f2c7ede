// Package irrecoverable lets long running workers report errors they cannot handle
// to the owner of their context, instead of panicking.
package irrecoverable

import (
	"context"
	"runtime"
	"sync"
)

// Signaler sends the first thrown error to its error channel.
type Signaler struct {
	errChan   chan error
	throwOnce sync.Once
}

func NewSignaler() (*Signaler, <-chan error) {
	errChan := make(chan error, 1)
	return &Signaler{errChan: errChan}, errChan
}

// Throw sends err to the owner and terminates the calling goroutine.
// Only the first error is delivered, later calls only exit the goroutine.
func (s *Signaler) Throw(err error) {
	defer runtime.Goexit()
	s.throwOnce.Do(func() {
		s.errChan <- err
		close(s.errChan)
	})
}

// SignalerContext is a context.Context that can also throw irrecoverable errors.
type SignalerContext interface {
	context.Context
	Throw(err error)
	sealed() // constrains implementations to WithSignaler and the test mock
}

type signalerCtx struct {
	context.Context
	signaler *Signaler
}

func (sc *signalerCtx) sealed() {}

func (sc *signalerCtx) Throw(err error) {
	sc.signaler.Throw(err)
}

// WithSignaler returns a SignalerContext derived from parent and the channel thrown errors are sent on.
func WithSignaler(parent context.Context) (SignalerContext, <-chan error) {
	sig, errChan := NewSignaler()
	return &signalerCtx{parent, sig}, errChan
}
