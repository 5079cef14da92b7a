package timer

import (
	"time"

	"github.com/ctdp-app/ctdp/internal/models"
)

// Phase is the stage of a scheduled session.
type Phase int

const (
	Idle Phase = iota
	Waiting
	Focusing
	Completed
)

func (p Phase) String() string {
	switch p {
	case Waiting:
		return "waiting"
	case Focusing:
		return "focusing"
	case Completed:
		return "completed"
	default:
		return "idle"
	}
}

// countdown tracks a running phase by wall-clock start time rather than by
// decrementing on every tick, so missed ticks never cause drift.
type countdown struct {
	phaseStart  time.Time
	pauseStart  time.Time
	pausedTotal time.Duration
	planned     int
	remaining   int
}

func newCountdown(now time.Time, seconds int) countdown {
	return countdown{
		phaseStart: now,
		planned:    seconds,
		remaining:  seconds,
	}
}

func (c *countdown) paused() bool {
	return !c.pauseStart.IsZero()
}

// evaluate recomputes remaining from the clock. A paused countdown keeps its
// value.
func (c *countdown) evaluate(now time.Time) {
	if c.paused() {
		return
	}

	elapsed := int((now.Sub(c.phaseStart) - c.pausedTotal) / time.Second)
	c.remaining = max(0, c.planned-elapsed)
}

func (c *countdown) pause(now time.Time) {
	c.pauseStart = now
}

// resume moves phaseStart forward by the time spent paused so that evaluate
// needs no paused branch.
func (c *countdown) resume(now time.Time) {
	c.pausedTotal += now.Sub(c.pauseStart)
	c.pauseStart = time.Time{}
	c.phaseStart = c.phaseStart.Add(c.pausedTotal)
	c.pausedTotal = 0
}

// state is one of idleState, *waitingState, *focusingState or
// *completedState.
type state interface {
	phase() Phase
}

type idleState struct{}

func (idleState) phase() Phase { return Idle }

type waitingState struct {
	selected     []models.SelectedTask
	countdown    countdown
	plannedFocus int
	// transitioning is set once the wait reached zero and the switch to
	// focusing is scheduled.
	transitioning bool
}

func (*waitingState) phase() Phase { return Waiting }

type focusingState struct {
	selected    []models.SelectedTask
	countdown   countdown
	waitSeconds int
}

func (*focusingState) phase() Phase { return Focusing }

type completedState struct {
	selected     []models.SelectedTask
	waitSeconds  int
	focusSeconds int
	// saving is set while a Save call is recording the session.
	saving bool
}

func (*completedState) phase() Phase { return Completed }

// Snapshot is an immutable view of the engine.
type Snapshot struct {
	Title    string
	Selected []models.SelectedTask
	Phase    Phase
	// Remaining and Total are the seconds left and planned in the current
	// phase.
	Remaining   int
	Total       int
	WaitSeconds int
	// FocusSeconds is the focus time actually spent. It is set once the
	// phase is Completed.
	FocusSeconds int
	Paused       bool
}

// Active reports whether a wait or focus phase is in progress.
func (s Snapshot) Active() bool {
	return s.Phase == Waiting || s.Phase == Focusing
}

func snapshotOf(st state) Snapshot {
	switch s := st.(type) {
	case *waitingState:
		return Snapshot{
			Phase:     Waiting,
			Selected:  s.selected,
			Title:     models.SessionTitle(s.selected),
			Remaining: s.countdown.remaining,
			Total:     s.countdown.planned,
			Paused:    s.countdown.paused(),
		}
	case *focusingState:
		return Snapshot{
			Phase:       Focusing,
			Selected:    s.selected,
			Title:       models.SessionTitle(s.selected),
			Remaining:   s.countdown.remaining,
			Total:       s.countdown.planned,
			WaitSeconds: s.waitSeconds,
			Paused:      s.countdown.paused(),
		}
	case *completedState:
		return Snapshot{
			Phase:        Completed,
			Selected:     s.selected,
			Title:        models.SessionTitle(s.selected),
			WaitSeconds:  s.waitSeconds,
			FocusSeconds: s.focusSeconds,
		}
	default:
		return Snapshot{Phase: Idle}
	}
}
