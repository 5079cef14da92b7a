package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctdp-app/ctdp/internal/models"
)

const user = "user-1"

var base = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

type dbFactory func(t *testing.T) DB

func backends() map[string]dbFactory {
	return map[string]dbFactory{
		"bolt": func(t *testing.T) DB {
			t.Helper()

			db, err := NewBoltDB(filepath.Join(t.TempDir(), "ctdp.db"))
			require.NoError(t, err)

			t.Cleanup(func() { _ = db.Close() })

			return db
		},
		"sqlite": func(t *testing.T) DB {
			t.Helper()

			db, err := NewSQLite(context.Background(), ":memory:")
			require.NoError(t, err)

			t.Cleanup(func() { _ = db.Close() })

			return db
		},
	}
}

func runBackends(t *testing.T, fn func(t *testing.T, db DB)) {
	t.Helper()

	for name, factory := range backends() {
		t.Run(name, func(t *testing.T) {
			fn(t, factory(t))
		})
	}
}

func seedTodo(t *testing.T, db DB, id string, createdAt time.Time, doneFlags ...bool) {
	t.Helper()

	ctx := context.Background()

	require.NoError(t, db.CreateTodo(ctx, &models.Todo{
		ID:        id,
		UserID:    user,
		Title:     "todo " + id,
		CreatedAt: createdAt,
	}))

	for i, done := range doneFlags {
		require.NoError(t, db.CreateSubtask(ctx, &models.Subtask{
			ID:        id + "-s" + string(rune('a'+i)),
			TodoID:    id,
			UserID:    user,
			Label:     "step",
			Done:      done,
			CreatedAt: createdAt.Add(time.Duration(i) * time.Second),
		}))
	}
}

func todoIDs(todos []models.Todo) []string {
	ids := make([]string, 0, len(todos))
	for _, t := range todos {
		ids = append(ids, t.ID)
	}

	return ids
}

func TestTodoLifecycle(t *testing.T) {
	runBackends(t, func(t *testing.T, db DB) {
		ctx := context.Background()

		seedTodo(t, db, "t1", base, false, true)
		seedTodo(t, db, "t2", base.Add(time.Hour))

		todos, err := db.ListTodos(ctx, user, false)
		require.NoError(t, err)
		assert.Equal(t, []string{"t2", "t1"}, todoIDs(todos))
		require.Len(t, todos[1].Subtasks, 2)
		assert.Equal(t, "t1-sa", todos[1].Subtasks[0].ID)
		assert.NotNil(t, todos[0].Subtasks)
		assert.Empty(t, todos[0].Subtasks)

		require.NoError(t, db.UpdateTodoTitle(ctx, user, "t1", "renamed"))

		todo, err := db.GetTodo(ctx, user, "t1")
		require.NoError(t, err)
		assert.Equal(t, "renamed", todo.Title)
		assert.True(t, todo.CreatedAt.Equal(base))

		assert.ErrorIs(t, db.UpdateTodoTitle(ctx, user, "missing", "x"), ErrNotFound)
		assert.ErrorIs(t, db.UpdateTodoTitle(ctx, "other-user", "t1", "x"), ErrNotFound)

		_, err = db.GetTodo(ctx, "other-user", "t1")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDeleteTodoCascades(t *testing.T) {
	runBackends(t, func(t *testing.T, db DB) {
		ctx := context.Background()

		seedTodo(t, db, "t1", base, false)
		seedTodo(t, db, "t2", base, false)

		todoID := "t1"

		require.NoError(t, db.CreateSession(ctx, &models.FocusSession{
			ID: "sess1", UserID: user, TodoID: &todoID, TodoTitle: "t1",
			FocusSeconds: 60, CreatedAt: base,
		}))
		require.NoError(t, db.CreateSession(ctx, &models.FocusSession{
			ID: "sess2", UserID: user, TodoTitle: "t2",
			FocusSeconds: 60, CreatedAt: base.Add(time.Minute),
		}))
		require.NoError(t, db.CreateSubtaskSession(ctx, &models.SubtaskSession{
			ID: "a1", UserID: user, SubtaskID: "t1-sa", SessionID: "sess1",
			Seconds: 60, CreatedAt: base,
		}))
		require.NoError(t, db.CreateSubtaskSession(ctx, &models.SubtaskSession{
			ID: "a2", UserID: user, SubtaskID: "t2-sa", SessionID: "sess2",
			Seconds: 60, CreatedAt: base,
		}))

		require.NoError(t, db.DeleteTodo(ctx, user, "t1"))
		assert.ErrorIs(t, db.DeleteTodo(ctx, user, "t1"), ErrNotFound)

		_, err := db.GetSubtask(ctx, user, "t1-sa")
		assert.ErrorIs(t, err, ErrNotFound)

		sessions, err := db.ListSessions(ctx, user, time.Time{})
		require.NoError(t, err)
		require.Len(t, sessions, 1)
		assert.Equal(t, "sess2", sessions[0].ID)

		records, err := db.ListSubtaskSessions(ctx, user)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "a2", records[0].ID)
	})
}

func TestArchiveAndRestore(t *testing.T) {
	runBackends(t, func(t *testing.T, db DB) {
		ctx := context.Background()

		seedTodo(t, db, "t1", base, true, true)
		seedTodo(t, db, "t2", base.Add(time.Minute))
		seedTodo(t, db, "t3", base.Add(2*time.Minute), true, false)

		n, err := db.ArchiveTodos(ctx, user, []string{"t1", "t2", "missing"}, base.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		// already archived todos are not counted again
		n, err = db.ArchiveTodos(ctx, user, []string{"t1"}, base.Add(2*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 0, n)

		n, err = db.ArchiveTodos(ctx, user, nil, base)
		require.NoError(t, err)
		assert.Equal(t, 0, n)

		active, err := db.ListTodos(ctx, user, false)
		require.NoError(t, err)
		assert.Equal(t, []string{"t3"}, todoIDs(active))

		archived, err := db.ListTodos(ctx, user, true)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"t1", "t2"}, todoIDs(archived))
		require.NotNil(t, archived[0].ArchivedAt)
		assert.True(t, archived[0].ArchivedAt.Equal(base.Add(time.Hour)))

		assert.ErrorIs(t, db.RestoreTodo(ctx, user, "t3"), ErrNotFound)
		assert.ErrorIs(t, db.RestoreTodo(ctx, user, "missing"), ErrNotFound)

		require.NoError(t, db.RestoreTodo(ctx, user, "t1"))
		require.NoError(t, db.ResetSubtasks(ctx, user, "t1"))

		todo, err := db.GetTodo(ctx, user, "t1")
		require.NoError(t, err)
		assert.Nil(t, todo.ArchivedAt)

		for _, st := range todo.Subtasks {
			assert.False(t, st.Done)
		}
	})
}

func TestArchivedOrder(t *testing.T) {
	runBackends(t, func(t *testing.T, db DB) {
		ctx := context.Background()

		seedTodo(t, db, "t1", base)
		seedTodo(t, db, "t2", base.Add(time.Minute))

		_, err := db.ArchiveTodos(ctx, user, []string{"t2"}, base.Add(time.Hour))
		require.NoError(t, err)
		_, err = db.ArchiveTodos(ctx, user, []string{"t1"}, base.Add(2*time.Hour))
		require.NoError(t, err)

		archived, err := db.ListTodos(ctx, user, true)
		require.NoError(t, err)
		assert.Equal(t, []string{"t1", "t2"}, todoIDs(archived))
	})
}

func TestSubtaskOperations(t *testing.T) {
	runBackends(t, func(t *testing.T, db DB) {
		ctx := context.Background()

		seedTodo(t, db, "t1", base, false)

		err := db.CreateSubtask(ctx, &models.Subtask{
			ID: "orphan", TodoID: "missing", UserID: user, Label: "x", CreatedAt: base,
		})
		assert.ErrorIs(t, err, ErrNotFound)

		done := true
		label := "renamed"

		st, err := db.UpdateSubtask(ctx, user, "t1-sa", models.SubtaskUpdate{Done: &done, Label: &label})
		require.NoError(t, err)
		assert.True(t, st.Done)
		assert.Equal(t, "renamed", st.Label)

		_, err = db.UpdateSubtask(ctx, user, "missing", models.SubtaskUpdate{Done: &done})
		assert.ErrorIs(t, err, ErrNotFound)

		require.NoError(t, db.IncrementSubtaskSeconds(ctx, user, "t1-sa", 33))
		require.NoError(t, db.IncrementSubtaskSeconds(ctx, user, "t1-sa", 33))
		assert.ErrorIs(t, db.IncrementSubtaskSeconds(ctx, user, "missing", 1), ErrNotFound)

		st, err = db.GetSubtask(ctx, user, "t1-sa")
		require.NoError(t, err)
		assert.Equal(t, 66, st.TotalSeconds)

		require.NoError(t, db.SetSubtaskSeconds(ctx, user, "t1-sa", 100))

		st, err = db.GetSubtask(ctx, user, "t1-sa")
		require.NoError(t, err)
		assert.Equal(t, 100, st.TotalSeconds)

		require.NoError(t, db.DeleteSubtask(ctx, user, "t1-sa"))
		assert.ErrorIs(t, db.DeleteSubtask(ctx, user, "t1-sa"), ErrNotFound)
	})
}

func TestSubtasksWithEqualTimestampsKeepInsertionOrder(t *testing.T) {
	runBackends(t, func(t *testing.T, db DB) {
		ctx := context.Background()

		seedTodo(t, db, "t1", base)

		// ids sort opposite to insertion order
		for _, id := range []string{"z", "m", "a"} {
			require.NoError(t, db.CreateSubtask(ctx, &models.Subtask{
				ID: id, TodoID: "t1", UserID: user, Label: "label " + id, CreatedAt: base,
			}))
		}

		todo, err := db.GetTodo(ctx, user, "t1")
		require.NoError(t, err)

		labels := make([]string, 0, len(todo.Subtasks))
		for _, st := range todo.Subtasks {
			labels = append(labels, st.Label)
		}

		assert.Equal(t, []string{"label z", "label m", "label a"}, labels)

		todos, err := db.ListTodos(ctx, user, false)
		require.NoError(t, err)
		require.Len(t, todos, 1)
		assert.Equal(t, "z", todos[0].Subtasks[0].ID)
		assert.Equal(t, "a", todos[0].Subtasks[2].ID)
	})
}

func TestSessions(t *testing.T) {
	runBackends(t, func(t *testing.T, db DB) {
		ctx := context.Background()

		for i, id := range []string{"s1", "s2", "s3"} {
			require.NoError(t, db.CreateSession(ctx, &models.FocusSession{
				ID:           id,
				UserID:       user,
				TodoTitle:    "Focus Session",
				FocusSeconds: 60 * (i + 1),
				CreatedAt:    base.Add(time.Duration(i) * time.Hour),
			}))
		}

		count, secs, err := db.SessionTotals(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
		assert.Equal(t, 360, secs)

		since, err := db.ListSessions(ctx, user, base.Add(time.Hour))
		require.NoError(t, err)
		require.Len(t, since, 2)
		assert.Equal(t, "s2", since[0].ID)
		assert.Nil(t, since[0].TodoID)

		recent, err := db.RecentSessions(ctx, user, 2)
		require.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, "s3", recent[0].ID)
		assert.Equal(t, "s2", recent[1].ID)

		count, _, err = db.SessionTotals(ctx, "nobody")
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestClearAll(t *testing.T) {
	runBackends(t, func(t *testing.T, db DB) {
		ctx := context.Background()

		seedTodo(t, db, "t1", base, true)
		require.NoError(t, db.CreateSession(ctx, &models.FocusSession{
			ID: "s1", UserID: user, TodoTitle: "x", FocusSeconds: 1, CreatedAt: base,
		}))

		require.NoError(t, db.ClearAll(ctx, user))
		require.NoError(t, db.ClearAll(ctx, user))

		todos, err := db.ListTodos(ctx, user, false)
		require.NoError(t, err)
		assert.Empty(t, todos)

		count, _, err := db.SessionTotals(ctx, user)
		require.NoError(t, err)
		assert.Zero(t, count)

		// the store is still writable afterwards
		seedTodo(t, db, "t2", base)
	})
}

func TestRebind(t *testing.T) {
	q := "SELECT 1 FROM todos WHERE user_id = ? AND id IN (?, ?)"

	assert.Equal(t, q, sqliteDialect.rebind(q))
	assert.Equal(
		t,
		"SELECT 1 FROM todos WHERE user_id = $1 AND id IN ($2, $3)",
		postgresDialect.rebind(q),
	)
	assert.Equal(t, "?, ?, ?", placeholders(3))
}
