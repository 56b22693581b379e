// Package playback implements the play/pause/step state machine that advances through the
// frames of the selected week.
package playback

import (
	"log/slog"
	"time"

	"github.com/leighmacdonald/gridiron-tui/internal/play"
)

// DefaultInterval is used when no valid interval has been configured.
const DefaultInterval = 400 * time.Millisecond

// Timer is a handle to a repeating timer.
type Timer interface {
	Stop()
}

// Scheduler creates repeating timers. The tick function must be invoked on the same
// goroutine that drives the Controller.
type Scheduler interface {
	Every(interval time.Duration, tick func()) Timer
}

// Renderer draws a frame given its predecessor. Either may be nil.
type Renderer interface {
	Render(prev *play.Frame, cur *play.Frame)
}

// FrameSource builds the ordered frames for a week.
type FrameSource func(week string) []play.Frame

// Direction is a single step backwards or forwards.
type Direction int

const (
	Prev Direction = -1
	Next Direction = 1
)

// State is a snapshot of the controller, handed to change listeners.
type State struct {
	Week     string
	Index    int
	Count    int
	Playing  bool
	Interval time.Duration
	Current  *play.Frame
}

// Controller owns the frames, the playback index and the single active timer. It is not
// safe for concurrent use; every method and every tick must run on one goroutine.
type Controller struct {
	renderer  Renderer
	scheduler Scheduler
	source    FrameSource
	frames    []play.Frame
	week      string
	index     int
	current   int
	playing   bool
	timer     Timer
	interval  time.Duration
	listeners []func(State)
}

func NewController(renderer Renderer, scheduler Scheduler, source FrameSource, interval time.Duration) *Controller {
	ctrl := &Controller{
		renderer:  renderer,
		scheduler: scheduler,
		source:    source,
		current:   -1,
	}
	ctrl.interval = normaliseInterval(interval)

	return ctrl
}

// OnChange registers fn to be called after every state change.
func (c *Controller) OnChange(fn func(State)) {
	c.listeners = append(c.listeners, fn)
}

func (c *Controller) State() State {
	state := State{
		Week:     c.week,
		Index:    c.index,
		Count:    len(c.frames),
		Playing:  c.playing,
		Interval: c.interval,
	}

	if c.current >= 0 && c.current < len(c.frames) {
		frame := c.frames[c.current]
		state.Current = &frame
	}

	return state
}

// Frames returns the frames of the selected week.
func (c *Controller) Frames() []play.Frame {
	return c.frames
}

// SelectWeek rebuilds the frames for week, rewinds and clears the display. A running timer is
// left alone and continues with the new frames.
func (c *Controller) SelectWeek(week string) {
	c.week = week
	c.frames = c.source(week)
	c.index = 0
	c.current = -1
	c.renderer.Render(nil, nil)

	slog.Debug("Selected week", slog.String("week", week), slog.Int("frames", len(c.frames)))
	c.notify()
}

// TogglePlay starts playback when stopped and stops it when playing.
func (c *Controller) TogglePlay() {
	if c.playing {
		c.Pause()

		return
	}

	c.Play()
}

// Play starts the timer. Any previous timer is cancelled first so only one is ever live.
func (c *Controller) Play() {
	if len(c.frames) == 0 {
		return
	}

	c.stopTimer()
	c.playing = true
	c.timer = c.scheduler.Every(c.interval, c.tick)
	c.notify()
}

func (c *Controller) Pause() {
	if !c.playing {
		return
	}

	c.stopTimer()
	c.playing = false
	c.notify()
}

// Step pauses playback, moves one frame in dir and renders it, clamped to the frame bounds.
func (c *Controller) Step(dir Direction) {
	c.Seek(c.index + int(dir))
}

// Seek pauses playback and renders the frame at index, clamped to the frame bounds. It is a
// no-op when there are no frames.
func (c *Controller) Seek(index int) {
	c.Pause()

	if len(c.frames) == 0 {
		return
	}

	c.index = max(0, min(len(c.frames)-1, index))
	c.render(c.index)
	c.notify()
}

// SetInterval changes the tick rate. Values of zero or less fall back to DefaultInterval. A
// running timer is restarted at the new rate.
func (c *Controller) SetInterval(interval time.Duration) {
	c.interval = normaliseInterval(interval)
	if c.playing {
		c.stopTimer()
		c.timer = c.scheduler.Every(c.interval, c.tick)
	}

	c.notify()
}

func (c *Controller) tick() {
	if !c.playing {
		return
	}

	if c.index >= len(c.frames) {
		c.stopTimer()
		c.playing = false
		c.notify()

		return
	}

	c.render(c.index)
	c.index++
	c.notify()
}

func (c *Controller) render(index int) {
	var prev *play.Frame
	if index > 0 {
		prev = &c.frames[index-1]
	}

	c.current = index
	c.renderer.Render(prev, &c.frames[index])
}

func (c *Controller) stopTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) notify() {
	state := c.State()
	for _, listener := range c.listeners {
		listener(state)
	}
}

func normaliseInterval(interval time.Duration) time.Duration {
	if interval <= 0 {
		return DefaultInterval
	}

	return interval
}
