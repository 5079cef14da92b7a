package store

import (
	"context"
	"time"

	"github.com/ctdp-app/ctdp/internal/apperr"
	"github.com/ctdp-app/ctdp/internal/models"
)

// ErrNotFound is returned when a record does not exist or is not owned by
// the requesting user.
var ErrNotFound = &apperr.Error{
	Message: "record not found",
	Kind:    apperr.NotFound,
}

var errStoreLocked = &apperr.Error{
	Message: "is ctdp already running? Only one instance can open the bolt database at a time",
	Kind:    apperr.Persistence,
}

// DB is the persistence collaborator. Every method is scoped to a user id;
// records owned by another user behave as if they did not exist.
type DB interface {
	// ListTodos returns the user's active todos ordered by creation time
	// (newest first), or the archived ones ordered by archive time (most
	// recent first). Subtasks are attached in creation order.
	ListTodos(ctx context.Context, userID string, archived bool) ([]models.Todo, error)
	// GetTodo returns a single todo with its subtasks.
	GetTodo(ctx context.Context, userID, todoID string) (*models.Todo, error)
	CreateTodo(ctx context.Context, todo *models.Todo) error
	UpdateTodoTitle(ctx context.Context, userID, todoID, title string) error
	// DeleteTodo removes a todo together with its subtasks, the sessions
	// recorded against it and their attribution records.
	DeleteTodo(ctx context.Context, userID, todoID string) error
	// ArchiveTodos sets archivedAt on every listed todo that is still active,
	// in a single atomic update, and returns how many were archived.
	ArchiveTodos(ctx context.Context, userID string, todoIDs []string, at time.Time) (int, error)
	// RestoreTodo clears archivedAt. It returns ErrNotFound unless the todo
	// exists and is archived.
	RestoreTodo(ctx context.Context, userID, todoID string) error
	// ResetSubtasks marks every subtask of the todo as not done.
	ResetSubtasks(ctx context.Context, userID, todoID string) error

	// CreateSubtask returns ErrNotFound if the parent todo does not exist.
	CreateSubtask(ctx context.Context, subtask *models.Subtask) error
	GetSubtask(ctx context.Context, userID, subtaskID string) (*models.Subtask, error)
	UpdateSubtask(ctx context.Context, userID, subtaskID string, upd models.SubtaskUpdate) (*models.Subtask, error)
	DeleteSubtask(ctx context.Context, userID, subtaskID string) error
	// IncrementSubtaskSeconds atomically adds delta to totalSeconds.
	IncrementSubtaskSeconds(ctx context.Context, userID, subtaskID string, delta int) error
	// SetSubtaskSeconds overwrites totalSeconds.
	SetSubtaskSeconds(ctx context.Context, userID, subtaskID string, total int) error

	CreateSession(ctx context.Context, sess *models.FocusSession) error
	CreateSubtaskSession(ctx context.Context, ss *models.SubtaskSession) error
	// ListSessions returns sessions created at or after since, oldest first.
	ListSessions(ctx context.Context, userID string, since time.Time) ([]models.FocusSession, error)
	// RecentSessions returns at most limit sessions, newest first.
	RecentSessions(ctx context.Context, userID string, limit int) ([]models.FocusSession, error)
	ListSubtaskSessions(ctx context.Context, userID string) ([]models.SubtaskSession, error)
	// SessionTotals returns the number of sessions and the sum of their
	// focus seconds.
	SessionTotals(ctx context.Context, userID string) (count, focusSeconds int, err error)

	// ClearAll deletes every session, subtask and todo owned by the user.
	ClearAll(ctx context.Context, userID string) error
	Close() error
}
