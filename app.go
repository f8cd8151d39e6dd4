package kli

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// QueueRender requests a render pass. It is safe to call from any goroutine;
// requests made while one is already pending are dropped.
func (r *Renderer) QueueRender() {
	select {
	case r.requests <- struct{}{}:
	default:
		// Already a render pending
	}
}

// Post schedules fn to run on the render loop, between passes. Scene
// mutations from other goroutines should go through Post.
func (r *Renderer) Post(fn func()) {
	r.tasksMu.Lock()
	r.tasks = append(r.tasks, fn)
	r.tasksMu.Unlock()
	select {
	case r.wake <- struct{}{}:
	default:
	}
}

func (r *Renderer) runTasks() {
	r.tasksMu.Lock()
	tasks := r.tasks
	r.tasks = nil
	r.tasksMu.Unlock()
	for _, fn := range tasks {
		fn()
	}
}

// RenderOnce runs a complete pass synchronously at the terminal's size.
func (r *Renderer) RenderOnce(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.prepare()
	return r.EndRender()
}

// Run is the render loop. It draws once at start, then redraws when the
// scene changes or the terminal is resized, until ctx is done or a frame
// write fails. Each pass's write completes before the next pass begins.
func (r *Renderer) Run(ctx context.Context) error {
	type written struct {
		size, n int
		err     error
	}
	done := make(chan written, 1)
	inFlight, pending := false, false

	start := func() {
		r.prepare()
		inFlight = true
		frame := r.out
		go func() {
			n, err := r.term.Write(frame)
			done <- written{size: len(frame), n: n, err: err}
		}()
	}
	request := func() {
		if inFlight {
			pending = true
			return
		}
		start()
	}

	r.QueueRender()
	for {
		select {
		case <-ctx.Done():
			if inFlight {
				<-done
			}
			return ctx.Err()

		case <-r.requests:
			request()

		case sz := <-r.term.Resize():
			r.log.Debug("terminal resized", zap.Int("width", sz.Width), zap.Int("height", sz.Height))
			request()

		case <-r.wake:
			r.runTasks()

		case w := <-done:
			inFlight = false
			if err := r.finishWrite(w.size, w.n, w.err); err != nil {
				return fmt.Errorf("kli: render loop: %w", err)
			}
			if pending {
				pending = false
				start()
			}
		}
	}
}
