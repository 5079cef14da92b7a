// Package timer runs the wait-then-focus countdown and renders it in the
// terminal
package timer

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/ctdp-app/ctdp/internal/logging"
	"github.com/ctdp-app/ctdp/internal/models"
)

const (
	DefaultTickInterval    = time.Second
	DefaultTransitionDelay = 100 * time.Millisecond
)

// Recorder persists a completed session.
type Recorder interface {
	RecordSession(
		ctx context.Context,
		userID string,
		req models.SessionRequest,
	) (*models.SessionResult, error)
}

// Engine owns the single timer of a user. All methods are safe for
// concurrent use; subscribers are notified outside the engine's lock.
type Engine struct {
	clock      clockwork.Clock
	recorder   Recorder
	st         state
	log        *slog.Logger
	stopTick   chan struct{}
	transition clockwork.Timer
	subs       map[int]func(Snapshot)
	userID     string
	tick       time.Duration
	delay      time.Duration
	// gen changes whenever the ticker or transition is discarded so that
	// callbacks already in flight become no-ops.
	gen     uint64
	nextSub int
	mu      sync.Mutex
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

func WithClock(c clockwork.Clock) EngineOption {
	return func(e *Engine) {
		e.clock = c
	}
}

func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithTickInterval sets how often a running phase is re-evaluated.
func WithTickInterval(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.tick = d
		}
	}
}

// WithTransitionDelay sets the pause between the end of the wait and the
// start of focus.
func WithTransitionDelay(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.delay = max(0, d)
	}
}

// NewEngine returns an idle engine that saves sessions for userID through
// recorder.
func NewEngine(recorder Recorder, userID string, opts ...EngineOption) *Engine {
	e := &Engine{
		recorder: recorder,
		userID:   userID,
		clock:    clockwork.NewRealClock(),
		tick:     DefaultTickInterval,
		delay:    DefaultTransitionDelay,
		st:       idleState{},
		subs:     make(map[int]func(Snapshot)),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.log = logging.OrDefault(e.log)

	return e
}

// Snapshot returns the current state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	return snapshotOf(e.st)
}

// Subscribe registers fn to receive a snapshot after every change. The
// returned func removes the subscription.
func (e *Engine) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()

		delete(e.subs, id)
	}
}

// update runs fn under the lock and notifies subscribers if fn reports a
// change.
func (e *Engine) update(fn func() (bool, error)) error {
	e.mu.Lock()

	changed, err := fn()

	var (
		snap Snapshot
		subs []func(Snapshot)
	)

	if changed {
		snap = snapshotOf(e.st)

		for _, s := range e.subs {
			subs = append(subs, s)
		}
	}

	e.mu.Unlock()

	for _, s := range subs {
		s(snap)
	}

	return err
}

// Schedule starts a session for the selected tasks. Minutes below zero
// count as zero. With no wait the focus phase starts immediately.
// Scheduling while a phase is running is rejected and leaves the state
// unchanged.
func (e *Engine) Schedule(selected []models.SelectedTask, waitMinutes, focusMinutes int) error {
	return e.update(func() (bool, error) {
		if p := e.st.phase(); p == Waiting || p == Focusing {
			return false, errAlreadyRunning.Fmt(p)
		}

		if len(selected) == 0 {
			return false, errNothingSelected
		}

		selected = slices.Clone(selected)
		waitSeconds := max(0, waitMinutes) * 60
		focusSeconds := max(0, focusMinutes) * 60
		now := e.clock.Now()

		if waitSeconds == 0 {
			e.st = &focusingState{
				selected:  selected,
				countdown: newCountdown(now, focusSeconds),
			}
		} else {
			e.st = &waitingState{
				selected:     selected,
				countdown:    newCountdown(now, waitSeconds),
				plannedFocus: focusSeconds,
			}
		}

		e.startTicking()
		e.evaluate()

		return true, nil
	})
}

// Refresh re-evaluates the running phase against the clock. Call it when
// the process regains the foreground to catch up on skipped ticks.
func (e *Engine) Refresh() {
	_ = e.update(func() (bool, error) {
		return e.evaluate(), nil
	})
}

// Pause freezes the running phase. It does nothing if no phase is running
// or the phase is already paused.
func (e *Engine) Pause() {
	_ = e.update(func() (bool, error) {
		c := e.activeCountdown()
		if c == nil || c.paused() {
			return false, nil
		}

		if w, ok := e.st.(*waitingState); ok && w.transitioning {
			return false, nil
		}

		// the phase may have run out since the last tick
		before := e.st
		e.evaluate()

		if e.st != before {
			return true, nil
		}

		if w, ok := e.st.(*waitingState); ok && w.transitioning {
			return true, nil
		}

		c.pause(e.clock.Now())
		e.stopTicking()

		return true, nil
	})
}

// Resume continues a paused phase.
func (e *Engine) Resume() {
	_ = e.update(func() (bool, error) {
		c := e.activeCountdown()
		if c == nil || !c.paused() {
			return false, nil
		}

		c.resume(e.clock.Now())
		e.startTicking()
		e.evaluate()

		return true, nil
	})
}

// TogglePause pauses a running phase or resumes a paused one.
func (e *Engine) TogglePause() {
	if e.Snapshot().Paused {
		e.Resume()
		return
	}

	e.Pause()
}

// CompleteEarly ends the focus phase now. The focus time recorded is the
// time actually spent.
func (e *Engine) CompleteEarly() error {
	return e.update(func() (bool, error) {
		f, ok := e.st.(*focusingState)
		if !ok {
			return false, errInvalidTransition.Fmt("complete early", e.st.phase())
		}

		f.countdown.evaluate(e.clock.Now())
		e.complete(f)

		return true, nil
	})
}

// CancelWait discards a waiting session. No lingering tick or transition
// fires after it returns.
func (e *Engine) CancelWait() error {
	return e.discard(Waiting, "cancel the wait")
}

// Abort discards a focusing session without recording it.
func (e *Engine) Abort() error {
	return e.discard(Focusing, "abort")
}

// Dismiss drops a completed session without saving it.
func (e *Engine) Dismiss() error {
	return e.discard(Completed, "dismiss")
}

func (e *Engine) discard(want Phase, action string) error {
	return e.update(func() (bool, error) {
		if e.st.phase() != want {
			return false, errInvalidTransition.Fmt(action, e.st.phase())
		}

		e.stopTicking()
		e.st = idleState{}

		return true, nil
	})
}

// Save records the completed session with an optional note. On success the
// engine returns to Idle. On failure it stays Completed so that the caller
// can retry. A Save issued while another one is recording the same session
// fails with a Conflict error and records nothing.
func (e *Engine) Save(ctx context.Context, note string) (*models.SessionResult, error) {
	e.mu.Lock()

	c, ok := e.st.(*completedState)
	if !ok {
		p := e.st.phase()
		e.mu.Unlock()

		return nil, errInvalidTransition.Fmt("save", p)
	}

	if c.saving {
		e.mu.Unlock()
		return nil, errSaveInProgress
	}

	c.saving = true

	req := models.SessionRequest{
		TodoTitle:    models.SessionTitle(c.selected),
		Note:         note,
		SubtaskIDs:   models.SubtaskIDs(c.selected),
		WaitSeconds:  c.waitSeconds,
		FocusSeconds: c.focusSeconds,
	}

	e.mu.Unlock()

	res, err := e.recorder.RecordSession(ctx, e.userID, req)
	if err != nil {
		e.log.ErrorContext(ctx, "saving session failed",
			slog.String("user_id", e.userID),
			slog.Int("focus_seconds", req.FocusSeconds),
			slog.Any("error", err),
		)

		e.mu.Lock()
		c.saving = false
		e.mu.Unlock()

		return nil, err
	}

	_ = e.update(func() (bool, error) {
		if e.st != state(c) {
			return false, nil
		}

		e.st = idleState{}

		return true, nil
	})

	return res, nil
}

func (e *Engine) activeCountdown() *countdown {
	switch s := e.st.(type) {
	case *waitingState:
		return &s.countdown
	case *focusingState:
		return &s.countdown
	default:
		return nil
	}
}

// evaluate advances the current phase and reports whether the snapshot
// changed. Callers hold the lock.
func (e *Engine) evaluate() bool {
	now := e.clock.Now()

	switch s := e.st.(type) {
	case *waitingState:
		before := s.countdown.remaining
		s.countdown.evaluate(now)

		if s.countdown.remaining == 0 && !s.transitioning {
			s.transitioning = true
			e.scheduleFocus(s)

			return true
		}

		return before != s.countdown.remaining
	case *focusingState:
		before := s.countdown.remaining
		s.countdown.evaluate(now)

		if s.countdown.remaining == 0 {
			e.complete(s)
			return true
		}

		return before != s.countdown.remaining
	default:
		return false
	}
}

// complete moves a focusing phase to Completed. Callers hold the lock.
func (e *Engine) complete(f *focusingState) {
	e.stopTicking()

	e.st = &completedState{
		selected:     f.selected,
		waitSeconds:  f.waitSeconds,
		focusSeconds: f.countdown.planned - f.countdown.remaining,
	}
}

// scheduleFocus swaps the finished wait for the focus phase after the
// transition delay. Callers hold the lock.
func (e *Engine) scheduleFocus(w *waitingState) {
	e.stopTicking()

	gen := e.gen

	e.transition = e.clock.AfterFunc(e.delay, func() {
		_ = e.update(func() (bool, error) {
			if e.gen != gen || e.st != state(w) {
				return false, nil
			}

			e.transition = nil
			e.st = &focusingState{
				selected:    w.selected,
				countdown:   newCountdown(e.clock.Now(), w.plannedFocus),
				waitSeconds: w.countdown.planned,
			}

			e.startTicking()
			e.evaluate()

			return true, nil
		})
	})
}

// startTicking replaces the ticker goroutine. Callers hold the lock.
func (e *Engine) startTicking() {
	e.stopTicking()

	gen := e.gen
	stop := make(chan struct{})
	ticker := e.clock.NewTicker(e.tick)

	e.stopTick = stop

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.Chan():
				_ = e.update(func() (bool, error) {
					if e.gen != gen {
						return false, nil
					}

					return e.evaluate(), nil
				})
			}
		}
	}()
}

// stopTicking stops the ticker and any pending transition. Callers hold the
// lock.
func (e *Engine) stopTicking() {
	e.gen++

	if e.stopTick != nil {
		close(e.stopTick)
		e.stopTick = nil
	}

	if e.transition != nil {
		e.transition.Stop()
		e.transition = nil
	}
}

// Close stops the ticker. The engine keeps its state.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopTicking()
}
