package unittest

import (
	"sync"
	"testing"
)

// Loggers are created while loggers of other tests still write, which the race detector
// checks here.
func TestLogger_ConcurrentUse(t *testing.T) {
	running := Logger()

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				running.Info().Msg("request served")
			}
		}
	}()

	for i := 0; i < 100; i++ {
		l := Logger()
		l.Debug().Int("i", i).Msg("new logger")
	}
	close(done)
	wg.Wait()
}
