// Package tracker implements the todo, subtask, session and statistics
// operations on top of a store.DB. Every operation is scoped to a user and
// fails with ErrUnauthorized when called without one.
package tracker

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/ctdp-app/ctdp/archive"
	"github.com/ctdp-app/ctdp/internal/apperr"
	"github.com/ctdp-app/ctdp/internal/logging"
	"github.com/ctdp-app/ctdp/internal/models"
	"github.com/ctdp-app/ctdp/stats"
	"github.com/ctdp-app/ctdp/store"
)

// recentLogs is the number of sessions returned by Bootstrap.
const recentLogs = 5

// Service is the boundary used by the CLI, the TUI and the HTTP API.
type Service struct {
	db       store.DB
	archiver *archive.Reconciler
	clock    clockwork.Clock
	log      *slog.Logger
	newID    func() string
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the clock used for timestamps.
func WithClock(c clockwork.Clock) Option {
	return func(s *Service) {
		s.clock = c
	}
}

// WithLogger sets the logger for tolerated failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.log = l
	}
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		s.newID = fn
	}
}

// New returns a Service backed by db.
func New(db store.DB, opts ...Option) *Service {
	s := &Service{
		db:    db,
		clock: clockwork.NewRealClock(),
		newID: uuid.NewString,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.log = logging.OrDefault(s.log)
	s.archiver = archive.New(db, s.clock, s.log)

	return s
}

func authorize(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrUnauthorized
	}

	return nil
}

// storageErr maps a store error to a NotFound error for id when the record
// is missing, and to a Persistence error otherwise.
func storageErr(err error, notFound *apperr.Error, id string) error {
	if notFound != nil && errors.Is(err, store.ErrNotFound) {
		return notFound.Fmt(id)
	}

	return errPersistence.Wrap(err)
}

// ListActiveTodos returns the user's active todos, newest first.
func (s *Service) ListActiveTodos(ctx context.Context, userID string) ([]models.Todo, error) {
	if err := authorize(userID); err != nil {
		return nil, err
	}

	todos, err := s.db.ListTodos(ctx, userID, false)
	if err != nil {
		return nil, storageErr(err, nil, "")
	}

	return todos, nil
}

// ListArchivedTodos returns the user's archived todos, most recently
// archived first.
func (s *Service) ListArchivedTodos(ctx context.Context, userID string) ([]models.Todo, error) {
	if err := authorize(userID); err != nil {
		return nil, err
	}

	todos, err := s.db.ListTodos(ctx, userID, true)
	if err != nil {
		return nil, storageErr(err, nil, "")
	}

	return todos, nil
}

// GetTodo returns one todo with its subtasks.
func (s *Service) GetTodo(ctx context.Context, userID, todoID string) (*models.Todo, error) {
	if err := authorize(userID); err != nil {
		return nil, err
	}

	todo, err := s.db.GetTodo(ctx, userID, todoID)
	if err != nil {
		return nil, storageErr(err, errTodoNotFound, todoID)
	}

	return todo, nil
}

func (s *Service) CreateTodo(ctx context.Context, userID, title string) (*models.Todo, error) {
	if err := authorize(userID); err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errTitleRequired
	}

	todo := &models.Todo{
		ID:        s.newID(),
		UserID:    userID,
		Title:     title,
		CreatedAt: s.clock.Now(),
		Subtasks:  []models.Subtask{},
	}

	if err := s.db.CreateTodo(ctx, todo); err != nil {
		return nil, storageErr(err, nil, "")
	}

	return todo, nil
}

func (s *Service) UpdateTodoTitle(
	ctx context.Context,
	userID, todoID, title string,
) (*models.Todo, error) {
	if err := authorize(userID); err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errTitleRequired
	}

	if err := s.db.UpdateTodoTitle(ctx, userID, todoID, title); err != nil {
		return nil, storageErr(err, errTodoNotFound, todoID)
	}

	return s.GetTodo(ctx, userID, todoID)
}

// DeleteTodo removes a todo with its subtasks and sessions.
func (s *Service) DeleteTodo(ctx context.Context, userID, todoID string) error {
	if err := authorize(userID); err != nil {
		return err
	}

	if err := s.db.DeleteTodo(ctx, userID, todoID); err != nil {
		return storageErr(err, errTodoNotFound, todoID)
	}

	return nil
}

func (s *Service) AddSubtask(
	ctx context.Context,
	userID, todoID, label string,
) (*models.Subtask, error) {
	if err := authorize(userID); err != nil {
		return nil, err
	}

	label = strings.TrimSpace(label)
	if label == "" {
		return nil, errLabelRequired
	}

	st := &models.Subtask{
		ID:        s.newID(),
		TodoID:    todoID,
		UserID:    userID,
		Label:     label,
		CreatedAt: s.clock.Now(),
	}

	if err := s.db.CreateSubtask(ctx, st); err != nil {
		return nil, storageErr(err, errTodoNotFound, todoID)
	}

	return st, nil
}

// UpdateSubtask sets done and/or label. A label that is blank after
// trimming is ignored; an update with no remaining field is rejected.
func (s *Service) UpdateSubtask(
	ctx context.Context,
	userID, subtaskID string,
	upd models.SubtaskUpdate,
) (*models.Subtask, error) {
	if err := authorize(userID); err != nil {
		return nil, err
	}

	if upd.Label != nil {
		label := strings.TrimSpace(*upd.Label)
		if label == "" {
			upd.Label = nil
		} else {
			upd.Label = &label
		}
	}

	if upd.Done == nil && upd.Label == nil {
		return nil, errNoSubtaskFields
	}

	st, err := s.db.UpdateSubtask(ctx, userID, subtaskID, upd)
	if err != nil {
		return nil, storageErr(err, errSubtaskNotFound, subtaskID)
	}

	return st, nil
}

func (s *Service) DeleteSubtask(ctx context.Context, userID, subtaskID string) error {
	if err := authorize(userID); err != nil {
		return err
	}

	if err := s.db.DeleteSubtask(ctx, userID, subtaskID); err != nil {
		return storageErr(err, errSubtaskNotFound, subtaskID)
	}

	return nil
}

// AutoArchive archives every finished active todo and returns the count.
func (s *Service) AutoArchive(ctx context.Context, userID string) (int, error) {
	if err := authorize(userID); err != nil {
		return 0, err
	}

	return s.archiver.AutoArchive(ctx, userID)
}

// RestoreTodo un-archives a todo and resets its subtasks to not done.
func (s *Service) RestoreTodo(ctx context.Context, userID, todoID string) error {
	if err := authorize(userID); err != nil {
		return err
	}

	return s.archiver.Restore(ctx, userID, todoID)
}

// Totals returns the all-time session count and rounded minutes.
func (s *Service) Totals(ctx context.Context, userID string) (models.Totals, error) {
	if err := authorize(userID); err != nil {
		return models.Totals{}, err
	}

	count, secs, err := s.db.SessionTotals(ctx, userID)
	if err != nil {
		return models.Totals{}, storageErr(err, nil, "")
	}

	return stats.Totals(count, secs), nil
}

// Stats returns the daily and hourly breakdown as of now.
func (s *Service) Stats(ctx context.Context, userID string) (*stats.Report, error) {
	return s.StatsAt(ctx, userID, s.clock.Now())
}

// StatsAt returns the breakdown for the seven days ending on the day of at.
func (s *Service) StatsAt(ctx context.Context, userID string, at time.Time) (*stats.Report, error) {
	if err := authorize(userID); err != nil {
		return nil, err
	}

	sessions, err := s.db.ListSessions(ctx, userID, stats.Since(at))
	if err != nil {
		return nil, storageErr(err, nil, "")
	}

	r := stats.Compute(sessions, at)

	return &r, nil
}

// Bootstrap loads the dashboard: active todos, totals and recent sessions.
func (s *Service) Bootstrap(ctx context.Context, userID string) (*models.Bootstrap, error) {
	todos, err := s.ListActiveTodos(ctx, userID)
	if err != nil {
		return nil, err
	}

	totals, err := s.Totals(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent, err := s.db.RecentSessions(ctx, userID, recentLogs)
	if err != nil {
		return nil, storageErr(err, nil, "")
	}

	logs := make([]models.SessionLog, 0, len(recent))
	for i := range recent {
		logs = append(logs, sessionLog(&recent[i]))
	}

	return &models.Bootstrap{
		Todos:  todos,
		Logs:   logs,
		Totals: totals,
	}, nil
}

// ClearAll deletes all sessions, subtasks and todos of the user.
func (s *Service) ClearAll(ctx context.Context, userID string) error {
	if err := authorize(userID); err != nil {
		return err
	}

	if err := s.db.ClearAll(ctx, userID); err != nil {
		return storageErr(err, nil, "")
	}

	return nil
}
