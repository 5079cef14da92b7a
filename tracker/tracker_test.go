package tracker

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctdp-app/ctdp/internal/apperr"
	"github.com/ctdp-app/ctdp/internal/mocks"
	"github.com/ctdp-app/ctdp/internal/models"
	"github.com/ctdp-app/ctdp/store"
)

const user = "user-1"

var start = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

func sequentialIDs() func() string {
	n := 0

	return func() string {
		n++
		return fmt.Sprintf("id-%02d", n)
	}
}

func newService(t *testing.T) (*Service, store.DB, *clockwork.FakeClock) {
	t.Helper()

	db, err := store.NewBoltDB(filepath.Join(t.TempDir(), "ctdp.db"))
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	clock := clockwork.NewFakeClockAt(start)

	return New(db, WithClock(clock), WithIDGenerator(sequentialIDs())), db, clock
}

func newMockService(t *testing.T) (*Service, *mocks.MockDB) {
	t.Helper()

	db := mocks.NewMockDB(gomock.NewController(t))

	return New(
		db,
		WithClock(clockwork.NewFakeClockAt(start)),
		WithIDGenerator(sequentialIDs()),
	), db
}

func TestUnauthorized(t *testing.T) {
	svc, _ := newMockService(t)
	ctx := context.Background()

	ops := map[string]func() error{
		"ListActiveTodos": func() error { _, err := svc.ListActiveTodos(ctx, ""); return err },
		"ListArchivedTodos": func() error {
			_, err := svc.ListArchivedTodos(ctx, " ")
			return err
		},
		"CreateTodo":      func() error { _, err := svc.CreateTodo(ctx, "", "x"); return err },
		"UpdateTodoTitle": func() error { _, err := svc.UpdateTodoTitle(ctx, "", "t", "x"); return err },
		"DeleteTodo":      func() error { return svc.DeleteTodo(ctx, "", "t") },
		"AddSubtask":      func() error { _, err := svc.AddSubtask(ctx, "", "t", "x"); return err },
		"UpdateSubtask": func() error {
			done := true
			_, err := svc.UpdateSubtask(ctx, "", "s", models.SubtaskUpdate{Done: &done})
			return err
		},
		"DeleteSubtask": func() error { return svc.DeleteSubtask(ctx, "", "s") },
		"AutoArchive":   func() error { _, err := svc.AutoArchive(ctx, ""); return err },
		"RestoreTodo":   func() error { return svc.RestoreTodo(ctx, "", "t") },
		"RecordSession": func() error {
			_, err := svc.RecordSession(ctx, "", models.SessionRequest{TodoTitle: "x", FocusSeconds: 60})
			return err
		},
		"Stats":     func() error { _, err := svc.Stats(ctx, ""); return err },
		"Bootstrap": func() error { _, err := svc.Bootstrap(ctx, ""); return err },
		"ClearAll":  func() error { return svc.ClearAll(ctx, "") },
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			err := op()
			assert.ErrorIs(t, err, ErrUnauthorized)
			assert.Equal(t, apperr.Unauthorized, apperr.KindOf(err))
		})
	}
}

func TestValidationHappensBeforePersistence(t *testing.T) {
	// the mock has no expectations, so any storage call fails the test
	svc, _ := newMockService(t)
	ctx := context.Background()

	_, err := svc.CreateTodo(ctx, user, "   ")
	assert.ErrorIs(t, err, errTitleRequired)

	_, err = svc.UpdateTodoTitle(ctx, user, "t1", "")
	assert.ErrorIs(t, err, errTitleRequired)

	_, err = svc.AddSubtask(ctx, user, "t1", "\t")
	assert.ErrorIs(t, err, errLabelRequired)

	blank := "  "
	_, err = svc.UpdateSubtask(ctx, user, "s1", models.SubtaskUpdate{Label: &blank})
	assert.ErrorIs(t, err, errNoSubtaskFields)

	_, err = svc.RecordSession(ctx, user, models.SessionRequest{TodoTitle: " ", FocusSeconds: 60})
	assert.ErrorIs(t, err, errSessionTitleRequired)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestTodoAndSubtaskOperations(t *testing.T) {
	svc, _, clock := newService(t)
	ctx := context.Background()

	todo, err := svc.CreateTodo(ctx, user, "  Write report ")
	require.NoError(t, err)
	assert.Equal(t, "Write report", todo.Title)
	assert.Equal(t, start, todo.CreatedAt)

	clock.Advance(time.Minute)

	second, err := svc.CreateTodo(ctx, user, "Email")
	require.NoError(t, err)

	st, err := svc.AddSubtask(ctx, user, todo.ID, " outline ")
	require.NoError(t, err)
	assert.Equal(t, "outline", st.Label)
	assert.False(t, st.Done)
	assert.Zero(t, st.TotalSeconds)

	_, err = svc.AddSubtask(ctx, user, "missing", "x")
	assert.ErrorIs(t, err, errTodoNotFound)

	todos, err := svc.ListActiveTodos(ctx, user)
	require.NoError(t, err)
	require.Len(t, todos, 2)
	assert.Equal(t, second.ID, todos[0].ID)
	assert.Len(t, todos[1].Subtasks, 1)

	renamed, err := svc.UpdateTodoTitle(ctx, user, todo.ID, "Write final report")
	require.NoError(t, err)
	assert.Equal(t, "Write final report", renamed.Title)

	_, err = svc.UpdateTodoTitle(ctx, user, "missing", "x")
	assert.ErrorIs(t, err, errTodoNotFound)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	done := true
	blank := " "

	updated, err := svc.UpdateSubtask(ctx, user, st.ID, models.SubtaskUpdate{Done: &done, Label: &blank})
	require.NoError(t, err)
	assert.True(t, updated.Done)
	assert.Equal(t, "outline", updated.Label)

	label := " intro "

	updated, err = svc.UpdateSubtask(ctx, user, st.ID, models.SubtaskUpdate{Label: &label})
	require.NoError(t, err)
	assert.Equal(t, "intro", updated.Label)

	_, err = svc.UpdateSubtask(ctx, user, "missing", models.SubtaskUpdate{Done: &done})
	assert.ErrorIs(t, err, errSubtaskNotFound)

	require.NoError(t, svc.DeleteSubtask(ctx, user, st.ID))
	assert.ErrorIs(t, svc.DeleteSubtask(ctx, user, st.ID), errSubtaskNotFound)

	require.NoError(t, svc.DeleteTodo(ctx, user, todo.ID))
	assert.ErrorIs(t, svc.DeleteTodo(ctx, user, todo.ID), errTodoNotFound)
}

func TestArchiveFlow(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	todo, err := svc.CreateTodo(ctx, user, "Write report")
	require.NoError(t, err)

	st, err := svc.AddSubtask(ctx, user, todo.ID, "outline")
	require.NoError(t, err)

	n, err := svc.AutoArchive(ctx, user)
	require.NoError(t, err)
	assert.Zero(t, n)

	done := true
	_, err = svc.UpdateSubtask(ctx, user, st.ID, models.SubtaskUpdate{Done: &done})
	require.NoError(t, err)

	n, err = svc.AutoArchive(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	archived, err := svc.ListArchivedTodos(ctx, user)
	require.NoError(t, err)
	require.Len(t, archived, 1)

	require.NoError(t, svc.RestoreTodo(ctx, user, todo.ID))

	restored, err := svc.GetTodo(ctx, user, todo.ID)
	require.NoError(t, err)
	assert.Nil(t, restored.ArchivedAt)
	assert.False(t, restored.Subtasks[0].Done)

	err = svc.RestoreTodo(ctx, user, todo.ID)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestRecordSessionDistributesTime(t *testing.T) {
	svc, db, _ := newService(t)
	ctx := context.Background()

	todo, err := svc.CreateTodo(ctx, user, "Write report")
	require.NoError(t, err)

	var ids []string

	for _, label := range []string{"a", "b", "c"} {
		st, err := svc.AddSubtask(ctx, user, todo.ID, label)
		require.NoError(t, err)

		ids = append(ids, st.ID)
	}

	res, err := svc.RecordSession(ctx, user, models.SessionRequest{
		TodoID:       &todo.ID,
		TodoTitle:    " Write report (a, b, c) ",
		Note:         " went well ",
		FocusSeconds: 100,
		WaitSeconds:  60,
		SubtaskIDs:   ids,
	})
	require.NoError(t, err)

	assert.Equal(t, "Write report (a, b, c)", res.Log.TodoTitle)
	assert.Equal(t, "went well", res.Log.Note)
	assert.Equal(t, start, res.Log.CreatedAt)
	assert.Equal(t, models.Totals{SessionsCount: 1, TotalMinutes: 2}, res.Totals)

	for _, id := range ids {
		st, err := db.GetSubtask(ctx, user, id)
		require.NoError(t, err)
		assert.Equal(t, 33, st.TotalSeconds)
	}

	records, err := db.ListSubtaskSessions(ctx, user)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestRecordSessionNormalises(t *testing.T) {
	svc, db, _ := newService(t)
	ctx := context.Background()

	_, err := svc.RecordSession(ctx, user, models.SessionRequest{
		TodoTitle:    "Focus Session",
		FocusSeconds: 0,
		WaitSeconds:  -30,
	})
	require.NoError(t, err)

	sessions, err := db.ListSessions(ctx, user, time.Time{})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, 1, sessions[0].FocusSeconds)
	assert.Equal(t, 0, sessions[0].WaitSeconds)
	assert.Nil(t, sessions[0].TodoID)
}

func TestRecordSessionSkipsZeroShare(t *testing.T) {
	svc, db, _ := newService(t)
	ctx := context.Background()

	todo, err := svc.CreateTodo(ctx, user, "Write report")
	require.NoError(t, err)

	var ids []string

	for _, label := range []string{"a", "b", "c"} {
		st, err := svc.AddSubtask(ctx, user, todo.ID, label)
		require.NoError(t, err)

		ids = append(ids, st.ID)
	}

	_, err = svc.RecordSession(ctx, user, models.SessionRequest{
		TodoTitle:    "Write report",
		FocusSeconds: 2,
		SubtaskIDs:   ids,
	})
	require.NoError(t, err)

	records, err := db.ListSubtaskSessions(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRecordSessionFallbackIncrement(t *testing.T) {
	svc, db := newMockService(t)
	ctx := context.Background()

	gomock.InOrder(
		db.EXPECT().CreateSession(ctx, gomock.Any()).Return(nil),
		db.EXPECT().CreateSubtaskSession(ctx, gomock.Any()).Return(nil),
		db.EXPECT().IncrementSubtaskSeconds(ctx, user, "s1", 90).Return(errors.New("rpc unavailable")),
		db.EXPECT().GetSubtask(ctx, user, "s1").Return(&models.Subtask{ID: "s1", TotalSeconds: 10}, nil),
		db.EXPECT().SetSubtaskSeconds(ctx, user, "s1", 100).Return(nil),
		db.EXPECT().SessionTotals(ctx, user).Return(1, 90, nil),
	)

	res, err := svc.RecordSession(ctx, user, models.SessionRequest{
		TodoTitle:    "x",
		FocusSeconds: 90,
		SubtaskIDs:   []string{"s1"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.Totals{SessionsCount: 1, TotalMinutes: 2}, res.Totals)
}

func TestRecordSessionAttributionFailureIsSwallowed(t *testing.T) {
	svc, db := newMockService(t)
	ctx := context.Background()

	db.EXPECT().CreateSession(ctx, gomock.Any()).Return(nil)
	db.EXPECT().CreateSubtaskSession(ctx, gomock.Any()).Return(errors.New("constraint failed"))
	db.EXPECT().IncrementSubtaskSeconds(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	db.EXPECT().SessionTotals(ctx, user).Return(1, 60, nil)

	res, err := svc.RecordSession(ctx, user, models.SessionRequest{
		TodoTitle:    "x",
		FocusSeconds: 60,
		SubtaskIDs:   []string{"s1", "s2"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Totals.SessionsCount)
}

func TestRecordSessionPersistenceFailure(t *testing.T) {
	svc, db := newMockService(t)
	ctx := context.Background()

	db.EXPECT().CreateSession(ctx, gomock.Any()).Return(errors.New("disk full"))

	_, err := svc.RecordSession(ctx, user, models.SessionRequest{TodoTitle: "x", FocusSeconds: 60})
	assert.ErrorIs(t, err, errPersistence)
	assert.Equal(t, apperr.Persistence, apperr.KindOf(err))
}

func TestBootstrap(t *testing.T) {
	svc, _, clock := newService(t)
	ctx := context.Background()

	_, err := svc.CreateTodo(ctx, user, "Write report")
	require.NoError(t, err)

	for i := 0; i < 6; i++ {
		clock.Advance(time.Minute)

		_, err := svc.RecordSession(ctx, user, models.SessionRequest{
			TodoTitle:    fmt.Sprintf("session %d", i),
			FocusSeconds: 60,
		})
		require.NoError(t, err)
	}

	b, err := svc.Bootstrap(ctx, user)
	require.NoError(t, err)

	assert.Len(t, b.Todos, 1)
	assert.Equal(t, models.Totals{SessionsCount: 6, TotalMinutes: 6}, b.Totals)
	require.Len(t, b.Logs, 5)
	assert.Equal(t, "session 5", b.Logs[0].TodoTitle)
	assert.Equal(t, "session 1", b.Logs[4].TodoTitle)
}

func TestStats(t *testing.T) {
	svc, _, clock := newService(t)
	ctx := context.Background()

	_, err := svc.RecordSession(ctx, user, models.SessionRequest{TodoTitle: "x", FocusSeconds: 1500})
	require.NoError(t, err)

	clock.Advance(2 * time.Hour)

	r, err := svc.Stats(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 1, r.TodayTotals.SessionsCount)
	assert.Equal(t, 25, r.Hourly[9].TotalMinutes)
}

func TestClearAll(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	_, err := svc.CreateTodo(ctx, user, "Write report")
	require.NoError(t, err)
	_, err = svc.RecordSession(ctx, user, models.SessionRequest{TodoTitle: "x", FocusSeconds: 60})
	require.NoError(t, err)

	require.NoError(t, svc.ClearAll(ctx, user))

	b, err := svc.Bootstrap(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, b.Todos)
	assert.Empty(t, b.Logs)
	assert.Zero(t, b.Totals.SessionsCount)
}
