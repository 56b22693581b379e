package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/leighmacdonald/gridiron-tui/internal/playback"
)

// teaScheduler implements playback.Scheduler on top of tea.Tick. Every timer gets a new
// generation and only the newest live one is ever run, so a tick already in flight for a
// stopped timer is dropped when it arrives.
type teaScheduler struct {
	gen     int
	live    *teaTimer
	pending []tea.Cmd
}

type teaTimer struct {
	scheduler *teaScheduler
	gen       int
	interval  time.Duration
	tick      func()
	stopped   bool
}

func (s *teaScheduler) Every(interval time.Duration, tick func()) playback.Timer {
	s.gen++
	timer := &teaTimer{scheduler: s, gen: s.gen, interval: interval, tick: tick}
	s.live = timer
	s.pending = append(s.pending, timer.next())

	return timer
}

// handle runs the tick of the live timer and schedules its next one.
func (s *teaScheduler) handle(msg tickMsg) {
	timer := s.live
	if timer == nil || timer.stopped || timer.gen != msg.gen {
		return
	}

	timer.tick()

	if !timer.stopped {
		s.pending = append(s.pending, timer.next())
	}
}

// drain returns the commands scheduled since the last call.
func (s *teaScheduler) drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}

	cmds := s.pending
	s.pending = nil

	return tea.Batch(cmds...)
}

func (t *teaTimer) next() tea.Cmd {
	gen := t.gen

	return tea.Tick(t.interval, func(_ time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (t *teaTimer) Stop() {
	t.stopped = true
	if t.scheduler.live == t {
		t.scheduler.live = nil
	}
}
