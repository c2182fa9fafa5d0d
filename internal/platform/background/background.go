package background

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Task is work running detached from the request which started it.
type Task struct {
	done chan struct{}
	err  error
}

// Wait blocks until task is finished and returns its error.
// Waiting on nil task returns immediately.
func (t *Task) Wait() error {
	if t == nil {
		return nil
	}
	<-t.done
	return t.err
}

// Group runs background tasks and lets the owner drain them on shutdown.
type Group struct {
	logger *zerolog.Logger
	wg     sync.WaitGroup
}

// NewGroup returns new Group.
func NewGroup(logger *zerolog.Logger) *Group {
	return &Group{
		logger: logger,
	}
}

// Go runs fn in background with ctx values but without its cancellation.
// Task failures are logged and never propagated to the caller.
func (g *Group) Go(ctx context.Context, name string, fn func(ctx context.Context) error) *Task {
	task := &Task{done: make(chan struct{})}
	detached := context.WithoutCancel(ctx)

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		defer close(task.done)

		task.err = fn(detached)
		if task.err != nil {
			g.logger.Error().Err(task.err).Str("task", name).Msg("background task failed")
			return
		}
		g.logger.Debug().Str("task", name).Msg("background task finished")
	}()

	return task
}

// Wait waits for all started tasks or until ctx is done.
func (g *Group) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
