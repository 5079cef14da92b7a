package timer

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ctdp-app/ctdp/board"
	"github.com/ctdp-app/ctdp/internal/config"
	"github.com/ctdp-app/ctdp/internal/hook"
	"github.com/ctdp-app/ctdp/internal/logging"
	"github.com/ctdp-app/ctdp/internal/models"
)

// Service is what the terminal UI needs from the tracker.
type Service interface {
	Recorder
	board.SubtaskUpdater
	ListActiveTodos(ctx context.Context, userID string) ([]models.Todo, error)
	AutoArchive(ctx context.Context, userID string) (int, error)
}

// row is one subtask line of the board.
type row struct {
	todo    models.Todo
	subtask models.Subtask
}

type (
	changedMsg struct{}

	todosMsg struct {
		err   error
		todos []models.Todo
	}

	toggledMsg struct {
		err error
	}

	savedMsg struct {
		err   error
		res   *models.SessionResult
		event hook.Event
	}

	hookMsg struct {
		err error
	}
)

// Model is the bubbletea model for the board and the running session.
type Model struct {
	ctx        context.Context
	svc        Service
	engine     *Engine
	board      *board.Board
	log        *slog.Logger
	changed    chan struct{}
	unsub      func()
	selected   map[string]bool
	runner     hook.Runner
	userID     string
	status     string
	rows       []row
	styles     styles
	snap       Snapshot
	note       textinput.Model
	progress   progress.Model
	help       help.Model
	cursor     int
	wait       int
	focus      int
	width      int
	statusErr  bool
	twentyFour bool
}

// NewModel wires a timer engine and a board for the configured user.
func NewModel(
	ctx context.Context,
	cfg *config.Config,
	svc Service,
	log *slog.Logger,
) *Model {
	log = logging.OrDefault(log)

	m := &Model{
		ctx:        ctx,
		svc:        svc,
		log:        log,
		userID:     cfg.User.ID,
		wait:       cfg.Timer.WaitMinutes,
		focus:      cfg.Timer.FocusMinutes,
		twentyFour: cfg.Display.TwentyFourHour,
		styles:     newStyles(cfg.Display.DarkTheme),
		changed:    make(chan struct{}, 1),
		selected:   make(map[string]bool),
		runner: hook.Runner{
			Cmd:    cfg.Settings.Cmd,
			Notify: cfg.Notifications.Enabled,
		},
		progress: progress.New(progress.WithDefaultGradient()),
		help:     help.New(),
	}

	m.engine = NewEngine(svc, cfg.User.ID,
		WithTickInterval(cfg.Timer.TickInterval),
		WithTransitionDelay(cfg.Timer.TransitionDelay),
		WithLogger(log),
	)

	m.board = board.New(cfg.User.ID, svc, svc,
		board.WithFadeDelay(cfg.Archive.FadeDelay),
		board.WithLogger(log),
		board.WithArchivedHook(func(int) { m.signal() }),
	)

	m.unsub = m.engine.Subscribe(func(Snapshot) { m.signal() })

	m.note = textinput.New()
	m.note.Placeholder = "How did it go? (optional)"
	m.note.CharLimit = 280

	return m
}

// signal wakes the UI without blocking the caller. Pending signals are
// coalesced since the UI always reads the latest state.
func (m *Model) signal() {
	select {
	case m.changed <- struct{}{}:
	default:
	}
}

func (m *Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.changed:
			return changedMsg{}
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m *Model) loadTodos(mount bool) tea.Cmd {
	return func() tea.Msg {
		if mount {
			m.board.Mount(m.ctx)
		} else {
			m.board.Reconcile(m.ctx)
		}

		todos, err := m.svc.ListActiveTodos(m.ctx, m.userID)

		return todosMsg{todos: todos, err: err}
	}
}

func (m *Model) toggle(subtaskID string) tea.Cmd {
	return func() tea.Msg {
		return toggledMsg{err: m.board.Toggle(m.ctx, subtaskID)}
	}
}

func (m *Model) save(note string) tea.Cmd {
	e := eventOf(m.snap, note)

	return func() tea.Msg {
		res, err := m.engine.Save(m.ctx, note)
		return savedMsg{res: res, err: err, event: e}
	}
}

func (m *Model) runHook(e hook.Event) tea.Cmd {
	return func() tea.Msg {
		return hookMsg{err: m.runner.Run(m.ctx, e)}
	}
}

func (m *Model) notifyCompleted(e hook.Event) tea.Cmd {
	return func() tea.Msg {
		return hookMsg{err: m.runner.NotifyCompleted(e)}
	}
}

// selection groups the selected subtasks by todo in board order.
func (m *Model) selection() []models.SelectedTask {
	var out []models.SelectedTask

	for _, todo := range m.board.Todos() {
		st := models.SelectedTask{TodoID: todo.ID, TodoTitle: todo.Title}

		for _, sub := range todo.Subtasks {
			if m.selected[sub.ID] {
				st.Subtasks = append(st.Subtasks, models.SubtaskRef{
					ID:    sub.ID,
					Label: sub.Label,
				})
			}
		}

		if len(st.Subtasks) > 0 {
			out = append(out, st)
		}
	}

	return out
}

// refreshRows rebuilds the flattened board and drops selections of
// subtasks that are gone.
func (m *Model) refreshRows() {
	m.rows = m.rows[:0]
	present := make(map[string]bool)

	for _, todo := range m.board.Todos() {
		for _, sub := range todo.Subtasks {
			m.rows = append(m.rows, row{todo: todo, subtask: sub})
			present[sub.ID] = true
		}
	}

	for id := range m.selected {
		if !present[id] {
			delete(m.selected, id)
		}
	}

	m.cursor = min(m.cursor, max(0, len(m.rows)-1))
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}

// Close releases the engine, the board and the subscription.
func (m *Model) Close() {
	m.unsub()
	m.engine.Close()
	m.board.Close()
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadTodos(true), m.waitForChange())
}
