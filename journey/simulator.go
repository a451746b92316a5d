package journey

import (
	"context"
	"time"
)

// StepExecutor produces the latency of a committed transition. The engine's
// control flow does not care how the delay is made; a real backend call can
// slot in behind the same interface.
type StepExecutor interface {
	// Schedule arranges for done to run after the declared delay. It must
	// return promptly; whether done runs on another goroutine is up to the
	// implementation. A cancelled context (session teardown) drops the call
	// without running done.
	Schedule(ctx context.Context, delay time.Duration, done func())
}

// SimulatedExecutor waits out the declared delay on a timer, modeling the
// "agent is working" latency without a real backend.
type SimulatedExecutor struct{}

func (SimulatedExecutor) Schedule(ctx context.Context, delay time.Duration, done func()) {
	if delay <= 0 {
		done()
		return
	}
	go func() {
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-t.C:
			done()
		case <-ctx.Done():
		}
	}()
}

// ImmediateExecutor runs the step with no waiting. Used by tests and by
// surfaces that render their own progress animation.
type ImmediateExecutor struct{}

func (ImmediateExecutor) Schedule(ctx context.Context, delay time.Duration, done func()) {
	if ctx.Err() != nil {
		return
	}
	done()
}
