// Package board holds the client-side todo list shown next to the timer. It
// applies subtask toggles optimistically and archives todos that become
// fully done after a fade delay that the user can interrupt.
package board

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/ctdp-app/ctdp/archive"
	"github.com/ctdp-app/ctdp/internal/apperr"
	"github.com/ctdp-app/ctdp/internal/logging"
	"github.com/ctdp-app/ctdp/internal/models"
)

// DefaultFadeDelay is how long a finished todo stays visible before it is
// archived.
const DefaultFadeDelay = 3 * time.Second

var errUnknownSubtask = &apperr.Error{
	Message: "subtask %s is not on the board",
	Kind:    apperr.NotFound,
}

// SubtaskUpdater persists subtask changes.
type SubtaskUpdater interface {
	UpdateSubtask(
		ctx context.Context,
		userID, subtaskID string,
		upd models.SubtaskUpdate,
	) (*models.Subtask, error)
}

// Board is safe for concurrent use. Fade timers fire on their own
// goroutines.
type Board struct {
	clock      clockwork.Clock
	updater    SubtaskUpdater
	archiver   archive.Archiver
	log        *slog.Logger
	pending    map[string]clockwork.Timer
	onArchived func(n int)
	userID     string
	todos      []models.Todo
	fadeDelay  time.Duration
	mu         sync.Mutex
	mounted    bool
}

// Option configures a Board.
type Option func(*Board)

func WithClock(c clockwork.Clock) Option {
	return func(b *Board) {
		b.clock = c
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(b *Board) {
		b.log = l
	}
}

// WithFadeDelay overrides DefaultFadeDelay. Negative values are treated as
// zero.
func WithFadeDelay(d time.Duration) Option {
	return func(b *Board) {
		b.fadeDelay = max(0, d)
	}
}

// WithArchivedHook registers fn to be called after an auto-archive pass
// archived at least one todo.
func WithArchivedHook(fn func(n int)) Option {
	return func(b *Board) {
		b.onArchived = fn
	}
}

// New returns an empty board for userID.
func New(
	userID string,
	updater SubtaskUpdater,
	archiver archive.Archiver,
	opts ...Option,
) *Board {
	b := &Board{
		userID:    userID,
		updater:   updater,
		archiver:  archiver,
		clock:     clockwork.NewRealClock(),
		fadeDelay: DefaultFadeDelay,
		pending:   make(map[string]clockwork.Timer),
	}

	for _, opt := range opts {
		opt(b)
	}

	b.log = logging.OrDefault(b.log)

	return b
}

// Load replaces the todos on the board.
func (b *Board) Load(todos []models.Todo) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.todos = cloneTodos(todos)
}

// Todos returns a copy of the todos currently on the board.
func (b *Board) Todos() []models.Todo {
	b.mu.Lock()
	defer b.mu.Unlock()

	return cloneTodos(b.todos)
}

// Fading reports whether todoID has a pending archive.
func (b *Board) Fading(todoID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, ok := b.pending[todoID]

	return ok
}

// Mount runs the auto-archive pass the first time it is called with a
// signed-in user. Later calls do nothing.
func (b *Board) Mount(ctx context.Context) {
	b.mu.Lock()

	if b.mounted || b.userID == "" {
		b.mu.Unlock()
		return
	}

	b.mounted = true
	b.mu.Unlock()

	b.autoArchive(ctx)
}

// Reconcile runs the auto-archive pass, for example after a session was
// saved.
func (b *Board) Reconcile(ctx context.Context) {
	if b.userID == "" {
		return
	}

	b.autoArchive(ctx)
}

// Toggle flips the done flag of a subtask. The change is visible
// immediately and rolled back if persisting it fails. Once the request has
// resolved, a todo whose subtasks are now all done is scheduled for
// archiving, and any pending archive of a todo with an unchecked subtask is
// cancelled.
func (b *Board) Toggle(ctx context.Context, subtaskID string) error {
	b.mu.Lock()

	ti, si, ok := b.locate(subtaskID)
	if !ok {
		b.mu.Unlock()
		return errUnknownSubtask.Fmt(subtaskID)
	}

	todoID := b.todos[ti].ID
	prev := b.todos[ti].Subtasks[si].Done
	next := !prev

	b.mu.Unlock()

	cmd := &Command{
		apply: func() { b.setDone(subtaskID, next) },
		persist: func(ctx context.Context) error {
			_, err := b.updater.UpdateSubtask(ctx, b.userID, subtaskID, models.SubtaskUpdate{
				Done: &next,
			})

			return err
		},
		undo: func() { b.setDone(subtaskID, prev) },
	}

	err := cmd.Execute(ctx)

	b.syncFade(todoID)

	return err
}

// Close cancels every pending archive.
func (b *Board) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, t := range b.pending {
		t.Stop()
		delete(b.pending, id)
	}
}

func (b *Board) locate(subtaskID string) (todoIdx, subtaskIdx int, ok bool) {
	for i := range b.todos {
		for j := range b.todos[i].Subtasks {
			if b.todos[i].Subtasks[j].ID == subtaskID {
				return i, j, true
			}
		}
	}

	return 0, 0, false
}

func (b *Board) setDone(subtaskID string, done bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ti, si, ok := b.locate(subtaskID); ok {
		b.todos[ti].Subtasks[si].Done = done
	}
}

// syncFade starts or cancels the fade timer of todoID based on the current
// state of its subtasks.
func (b *Board) syncFade(todoID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	idx := slices.IndexFunc(b.todos, func(t models.Todo) bool {
		return t.ID == todoID
	})
	if idx < 0 {
		return
	}

	timer, fading := b.pending[todoID]

	if !b.todos[idx].AllDone() {
		if fading {
			timer.Stop()
			delete(b.pending, todoID)
		}

		return
	}

	if fading {
		return
	}

	var t clockwork.Timer

	t = b.clock.AfterFunc(b.fadeDelay, func() {
		b.mu.Lock()

		// stopped and replaced while this callback was being scheduled
		if b.pending[todoID] != t {
			b.mu.Unlock()
			return
		}

		delete(b.pending, todoID)
		b.mu.Unlock()

		b.autoArchive(context.Background())
	})

	b.pending[todoID] = t
}

// autoArchive runs the archive pass. Failures are logged and otherwise
// ignored since the pass is retried on the next trigger.
func (b *Board) autoArchive(ctx context.Context) {
	n, err := b.archiver.AutoArchive(ctx, b.userID)
	if err != nil {
		b.log.WarnContext(ctx, "auto-archive failed",
			slog.String("user_id", b.userID),
			slog.Any("error", err),
		)

		return
	}

	if n == 0 {
		return
	}

	b.mu.Lock()
	b.todos = slices.DeleteFunc(b.todos, func(t models.Todo) bool {
		return archive.IsEligible(&t)
	})
	b.mu.Unlock()

	if b.onArchived != nil {
		b.onArchived(n)
	}
}

func cloneTodos(todos []models.Todo) []models.Todo {
	out := make([]models.Todo, len(todos))

	for i := range todos {
		out[i] = todos[i]
		out[i].Subtasks = slices.Clone(todos[i].Subtasks)
	}

	return out
}
