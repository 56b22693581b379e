package playback

import (
	"context"
	"errors"
	"time"
)

var ErrLoopClosed = errors.New("playback loop is not running")

// Loop serialises commands and timer ticks onto a single goroutine. It implements Scheduler
// so a Controller driven through Do never sees concurrent calls.
type Loop struct {
	commands chan func()
	done     chan struct{}
}

func NewLoop() *Loop {
	return &Loop{
		commands: make(chan func()),
		done:     make(chan struct{}),
	}
}

// Run processes commands until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.done)

	for {
		select {
		case <-ctx.Done():
			return
		case command := <-l.commands:
			command()
		}
	}
}

// Do runs fn on the loop goroutine and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	wrapped := func() {
		defer close(finished)
		fn()
	}

	select {
	case l.commands <- wrapped:
	case <-l.done:
		return ErrLoopClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrLoopClosed
	}
}

// Every starts a ticker whose ticks are delivered onto the loop goroutine. Stop must be
// called from the loop goroutine, after which no further tick of this timer runs, even one
// that was already queued.
func (l *Loop) Every(interval time.Duration, tick func()) Timer {
	timer := &loopTimer{quit: make(chan struct{})}
	deliver := func() {
		if timer.stopped {
			return
		}

		tick()
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-timer.quit:
				return
			case <-l.done:
				return
			case <-ticker.C:
				select {
				case l.commands <- deliver:
				case <-timer.quit:
					return
				case <-l.done:
					return
				}
			}
		}
	}()

	return timer
}

type loopTimer struct {
	// stopped is only read and written on the loop goroutine.
	stopped bool
	quit    chan struct{}
}

func (t *loopTimer) Stop() {
	if t.stopped {
		return
	}

	t.stopped = true
	close(t.quit)
}
