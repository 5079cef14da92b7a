// Package archive decides which todos are finished and moves them in and
// out of the archive.
package archive

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/ctdp-app/ctdp/internal/apperr"
	"github.com/ctdp-app/ctdp/internal/logging"
	"github.com/ctdp-app/ctdp/internal/models"
	"github.com/ctdp-app/ctdp/store"
)

var (
	errListTodos = &apperr.Error{
		Message: "loading active todos failed",
		Kind:    apperr.Persistence,
	}

	errArchive = &apperr.Error{
		Message: "archiving todos failed",
		Kind:    apperr.Persistence,
	}

	errRestore = &apperr.Error{
		Message: "restoring todo failed",
		Kind:    apperr.Persistence,
	}

	// ErrNotArchived is returned when restoring a todo that is missing or
	// still active.
	ErrNotArchived = &apperr.Error{
		Message: "todo %s is not archived",
		Kind:    apperr.NotFound,
	}
)

// Archiver runs the auto-archive pass for a user.
type Archiver interface {
	AutoArchive(ctx context.Context, userID string) (int, error)
}

// Store is the persistence needed for archive reconciliation.
type Store interface {
	ListTodos(ctx context.Context, userID string, archived bool) ([]models.Todo, error)
	ArchiveTodos(ctx context.Context, userID string, todoIDs []string, at time.Time) (int, error)
	RestoreTodo(ctx context.Context, userID, todoID string) error
	ResetSubtasks(ctx context.Context, userID, todoID string) error
}

// Reconciler archives finished todos and restores archived ones.
type Reconciler struct {
	store Store
	clock clockwork.Clock
	log   *slog.Logger
}

// New returns a Reconciler. A nil clock uses the wall clock and a nil
// logger uses slog.Default.
func New(s Store, clock clockwork.Clock, log *slog.Logger) *Reconciler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Reconciler{
		store: s,
		clock: clock,
		log:   logging.OrDefault(log),
	}
}

// IsEligible reports whether an active todo should be archived: it has no
// subtasks, or every subtask is done.
func IsEligible(t *models.Todo) bool {
	return len(t.Subtasks) == 0 || t.AllDone()
}

// Eligible returns the ids of the todos that qualify for archiving, in
// input order. Archived todos are skipped.
func Eligible(todos []models.Todo) []string {
	var ids []string

	for i := range todos {
		if todos[i].Archived() {
			continue
		}

		if IsEligible(&todos[i]) {
			ids = append(ids, todos[i].ID)
		}
	}

	return ids
}

// AutoArchive archives every eligible active todo of the user in one batch
// and returns how many were archived. Calling it again with nothing newly
// eligible archives zero.
func (r *Reconciler) AutoArchive(ctx context.Context, userID string) (int, error) {
	todos, err := r.store.ListTodos(ctx, userID, false)
	if err != nil {
		return 0, errListTodos.Wrap(err)
	}

	ids := Eligible(todos)
	if len(ids) == 0 {
		return 0, nil
	}

	n, err := r.store.ArchiveTodos(ctx, userID, ids, r.clock.Now())
	if err != nil {
		return 0, errArchive.Wrap(err)
	}

	r.log.InfoContext(ctx, "archived todos",
		slog.String("user_id", userID),
		slog.Int("count", n),
	)

	return n, nil
}

// Restore un-archives a todo and marks all of its subtasks as not done.
// A failure to reset the subtasks is logged and does not fail the restore.
func (r *Reconciler) Restore(ctx context.Context, userID, todoID string) error {
	err := r.store.RestoreTodo(ctx, userID, todoID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotArchived.Fmt(todoID)
	}

	if err != nil {
		return errRestore.Wrap(err)
	}

	if err := r.store.ResetSubtasks(ctx, userID, todoID); err != nil {
		r.log.WarnContext(ctx, "resetting subtasks after restore failed",
			slog.String("user_id", userID),
			slog.String("todo_id", todoID),
			slog.Any("error", err),
		)
	}

	return nil
}
