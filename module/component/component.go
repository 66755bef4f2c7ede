package component

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/atomic"

	"github.com/onflow/dao-dashboard/module"
	"github.com/onflow/dao-dashboard/module/irrecoverable"
	"github.com/onflow/dao-dashboard/module/util"
)

// ErrComponentShutdown is returned by a component which has already been shut down.
var ErrComponentShutdown = fmt.Errorf("component has already shut down")

// Component represents a component which can be started and stopped, and exposes
// channels that close when startup and shutdown have completed.
// Once Start has been called, the channel returned by Done must close eventually,
// whether that be because of a graceful shutdown or an irrecoverable error.
type Component interface {
	module.Startable
	module.ReadyDoneAware
}

type ComponentFactory func() (Component, error)

// OnError inspects an irrecoverable error and decides whether RunComponent restarts the component.
type OnError = func(err error) ErrorHandlingResult

type ErrorHandlingResult int

const (
	ErrorHandlingRestart ErrorHandlingResult = iota
	ErrorHandlingStop
)

// RunComponent starts components returned from the factory, shutting them down when they
// throw irrecoverable errors and passing those errors to the handler.
// The returned error is either:
// - the context error if the context was canceled
// - the last handled error if the handler returns ErrorHandlingStop
// - an error returned from componentFactory
func RunComponent(ctx context.Context, componentFactory ComponentFactory, handler OnError) error {
	var component Component
	var cancel context.CancelFunc
	var done <-chan struct{}
	var irrecoverableErr <-chan error

	start := func() error {
		var err error

		component, err = componentFactory()
		if err != nil {
			return err // a restart won't help
		}

		var runCtx context.Context
		runCtx, cancel = context.WithCancel(ctx)

		var signalCtx irrecoverable.SignalerContext
		signalCtx, irrecoverableErr = irrecoverable.WithSignaler(runCtx)

		// Throw terminates the calling goroutine
		go component.Start(signalCtx)

		done = component.Done()
		return nil
	}

	stop := func() {
		cancel()
		<-done
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := start(); err != nil {
			return err
		}

		if err := util.WaitError(irrecoverableErr, done); err != nil {
			stop()

			switch result := handler(err); result {
			case ErrorHandlingRestart:
				continue
			case ErrorHandlingStop:
				return err
			default:
				panic(fmt.Sprintf("invalid error handling result: %v", result))
			}
		} else if ctx.Err() != nil {
			stop()
			return ctx.Err()
		}

		cancel()
		return nil
	}
}

// ReadyFunc is called by a ComponentWorker to indicate that it is ready.
// The ComponentManager's Ready channel closes when all workers are ready.
type ReadyFunc func()

// ComponentWorker is a worker routine of a component. It throws irrecoverable errors with ctx
// and must call ready once it has started.
type ComponentWorker func(ctx irrecoverable.SignalerContext, ready ReadyFunc)

// ChildWorker returns a worker which starts the child with the worker context, is ready
// once the child is ready and returns after the child shut down.
func ChildWorker(child Component) ComponentWorker {
	return func(ctx irrecoverable.SignalerContext, ready ReadyFunc) {
		child.Start(ctx)
		if err := util.WaitReady(ctx, child.Ready()); err != nil {
			<-child.Done()
			return
		}
		ready()
		<-child.Done()
	}
}

// ComponentManagerBuilder provides a mechanism for building a ComponentManager
type ComponentManagerBuilder interface {
	// AddWorker adds a worker routine for the ComponentManager
	AddWorker(ComponentWorker) ComponentManagerBuilder

	// Build builds and returns a new ComponentManager instance
	Build() *ComponentManager
}

type componentManagerBuilderImpl struct {
	workers []ComponentWorker
}

func NewComponentManagerBuilder() ComponentManagerBuilder {
	return &componentManagerBuilderImpl{}
}

// AddWorker is not concurrency-safe.
func (c *componentManagerBuilderImpl) AddWorker(worker ComponentWorker) ComponentManagerBuilder {
	c.workers = append(c.workers, worker)
	return c
}

func (c *componentManagerBuilderImpl) Build() *ComponentManager {
	return &ComponentManager{
		started:     atomic.NewBool(false),
		ready:       make(chan struct{}),
		done:        make(chan struct{}),
		workersDone: make(chan struct{}),
		workers:     c.workers,
	}
}

var _ Component = (*ComponentManager)(nil)

// ComponentManager runs the worker routines of a Component and implements the Component
// interface for it. Ready closes when every worker has called its ReadyFunc, Done closes
// after every worker has returned.
//
// Shutdown is signalled by cancelling the context passed to Start. An error thrown by any
// worker shuts down the others and is propagated to the parent context.
type ComponentManager struct {
	started     *atomic.Bool
	ready       chan struct{}
	done        chan struct{}
	workersDone chan struct{}

	workers []ComponentWorker
}

// Start launches all worker routines. It panics if called more than once.
func (c *ComponentManager) Start(parent irrecoverable.SignalerContext) {
	if !c.started.CompareAndSwap(false, true) {
		panic(module.ErrMultipleStartup)
	}

	ctx, cancel := context.WithCancel(parent)
	signalerCtx, errChan := irrecoverable.WithSignaler(ctx)

	go func() {
		// done closes only after the error reached the parent
		defer func() {
			<-c.workersDone
			close(c.done)
		}()

		if err := util.WaitError(errChan, c.workersDone); err != nil {
			cancel()
			parent.Throw(err)
		}
		cancel()
	}()

	var workersReady sync.WaitGroup
	var workersDone sync.WaitGroup
	workersReady.Add(len(c.workers))
	workersDone.Add(len(c.workers))

	for _, worker := range c.workers {
		worker := worker
		go func() {
			defer workersDone.Done()
			var readyOnce sync.Once
			worker(signalerCtx, func() {
				readyOnce.Do(func() {
					workersReady.Done()
				})
			})
		}()
	}

	go c.waitForReady(&workersReady)
	go c.waitForDone(&workersDone)
}

func (c *ComponentManager) waitForReady(workersReady *sync.WaitGroup) {
	workersReady.Wait()
	close(c.ready)
}

func (c *ComponentManager) waitForDone(workersDone *sync.WaitGroup) {
	workersDone.Wait()
	close(c.workersDone)
}

// Ready returns a channel which is closed once all the worker routines are ready.
// If a worker exits before it is ready, the channel never closes.
func (c *ComponentManager) Ready() <-chan struct{} {
	return c.ready
}

// Done returns a channel which is closed once all worker routines have returned.
func (c *ComponentManager) Done() <-chan struct{} {
	return c.done
}
