// Package store persists todos, subtasks and focus sessions. BoltDB is the
// embedded default; SQLDB serves SQLite and PostgreSQL.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"slices"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ctdp-app/ctdp/internal/models"
	"github.com/ctdp-app/ctdp/internal/osutil"
)

const (
	usersBucket           = "users"
	todoBucket            = "todos"
	subtaskBucket         = "subtasks"
	sessionBucket         = "sessions"
	subtaskSessionsBucket = "subtask_sessions"
)

// keyLayout is fixed width so that session keys sort chronologically.
const keyLayout = "2006-01-02T15:04:05.000000000Z"

// BoltDB is a BoltDB database client. Each user owns a bucket holding one
// sub-bucket per record type; values are JSON encoded.
type BoltDB struct {
	db *bolt.DB
}

type userBuckets struct {
	todos           *bolt.Bucket
	subtasks        *bolt.Bucket
	sessions        *bolt.Bucket
	subtaskSessions *bolt.Bucket
}

// NewBoltDB creates or opens the database file at path and locks it.
func NewBoltDB(path string) (*BoltDB, error) {
	if err := osutil.EnsureParentDir(path); err != nil {
		return nil, err
	}

	db, err := bolt.Open(
		path,
		osutil.FilePermission,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, errStoreLocked.Wrap(err)
		}

		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(usersBucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &BoltDB{db: db}, nil
}

func (b *BoltDB) Close() error {
	return b.db.Close()
}

// readBuckets returns nil if the user has never written anything.
func readBuckets(tx *bolt.Tx, userID string) *userBuckets {
	ub := tx.Bucket([]byte(usersBucket)).Bucket([]byte(userID))
	if ub == nil {
		return nil
	}

	return &userBuckets{
		todos:           ub.Bucket([]byte(todoBucket)),
		subtasks:        ub.Bucket([]byte(subtaskBucket)),
		sessions:        ub.Bucket([]byte(sessionBucket)),
		subtaskSessions: ub.Bucket([]byte(subtaskSessionsBucket)),
	}
}

func writeBuckets(tx *bolt.Tx, userID string) (*userBuckets, error) {
	ub, err := tx.Bucket([]byte(usersBucket)).CreateBucketIfNotExists([]byte(userID))
	if err != nil {
		return nil, err
	}

	var bks [4]*bolt.Bucket

	for i, name := range []string{todoBucket, subtaskBucket, sessionBucket, subtaskSessionsBucket} {
		bks[i], err = ub.CreateBucketIfNotExists([]byte(name))
		if err != nil {
			return nil, err
		}
	}

	return &userBuckets{
		todos:           bks[0],
		subtasks:        bks[1],
		sessions:        bks[2],
		subtaskSessions: bks[3],
	}, nil
}

func put(bk *bolt.Bucket, key string, v any) error {
	value, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return bk.Put([]byte(key), value)
}

// get decodes the value at key into v, returning ErrNotFound if absent.
func get(bk *bolt.Bucket, key string, v any) error {
	if bk == nil {
		return ErrNotFound
	}

	value := bk.Get([]byte(key))
	if value == nil {
		return ErrNotFound
	}

	return json.Unmarshal(value, v)
}

func sessionKey(createdAt time.Time, id string) string {
	return createdAt.UTC().Format(keyLayout) + "_" + id
}

func (ub *userBuckets) subtasksByTodo() (map[string][]models.Subtask, error) {
	subs := make(map[string][]models.Subtask)

	err := ub.subtasks.ForEach(func(_, v []byte) error {
		var s models.Subtask
		if err := json.Unmarshal(v, &s); err != nil {
			return err
		}

		subs[s.TodoID] = append(subs[s.TodoID], s)

		return nil
	})

	for id := range subs {
		sortSubtasks(subs[id])
	}

	return subs, err
}

func (ub *userBuckets) todo(todoID string) (*models.Todo, error) {
	var t models.Todo
	if err := get(ub.todos, todoID, &t); err != nil {
		return nil, err
	}

	subs, err := ub.subtasksByTodo()
	if err != nil {
		return nil, err
	}

	t.Subtasks = withSubtasks(subs[t.ID])

	return &t, nil
}

func (ub *userBuckets) putTodo(t *models.Todo) error {
	stored := *t
	stored.Subtasks = nil

	return put(ub.todos, t.ID, &stored)
}

// deleteAttributions removes the attribution records matching fn.
func (ub *userBuckets) deleteAttributions(fn func(ss *models.SubtaskSession) bool) error {
	var keys [][]byte

	err := ub.subtaskSessions.ForEach(func(k, v []byte) error {
		var ss models.SubtaskSession
		if err := json.Unmarshal(v, &ss); err != nil {
			return err
		}

		if fn(&ss) {
			keys = append(keys, bytes.Clone(k))
		}

		return nil
	})
	if err != nil {
		return err
	}

	for _, k := range keys {
		if err := ub.subtaskSessions.Delete(k); err != nil {
			return err
		}
	}

	return nil
}

func (b *BoltDB) ListTodos(
	_ context.Context,
	userID string,
	archived bool,
) ([]models.Todo, error) {
	todos := []models.Todo{}

	err := b.db.View(func(tx *bolt.Tx) error {
		ub := readBuckets(tx, userID)
		if ub == nil {
			return nil
		}

		subs, err := ub.subtasksByTodo()
		if err != nil {
			return err
		}

		return ub.todos.ForEach(func(_, v []byte) error {
			var t models.Todo
			if err := json.Unmarshal(v, &t); err != nil {
				return err
			}

			if t.Archived() != archived {
				return nil
			}

			t.Subtasks = withSubtasks(subs[t.ID])
			todos = append(todos, t)

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sortTodos(todos, archived)

	return todos, nil
}

func (b *BoltDB) GetTodo(
	_ context.Context,
	userID, todoID string,
) (*models.Todo, error) {
	var todo *models.Todo

	err := b.db.View(func(tx *bolt.Tx) error {
		ub := readBuckets(tx, userID)
		if ub == nil {
			return ErrNotFound
		}

		var err error
		todo, err = ub.todo(todoID)

		return err
	})

	return todo, err
}

func (b *BoltDB) CreateTodo(_ context.Context, todo *models.Todo) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		ub, err := writeBuckets(tx, todo.UserID)
		if err != nil {
			return err
		}

		return ub.putTodo(todo)
	})
}

func (b *BoltDB) UpdateTodoTitle(
	_ context.Context,
	userID, todoID, title string,
) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		ub := readBuckets(tx, userID)
		if ub == nil {
			return ErrNotFound
		}

		var t models.Todo
		if err := get(ub.todos, todoID, &t); err != nil {
			return err
		}

		t.Title = title

		return ub.putTodo(&t)
	})
}

func (b *BoltDB) DeleteTodo(_ context.Context, userID, todoID string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		ub := readBuckets(tx, userID)
		if ub == nil || ub.todos.Get([]byte(todoID)) == nil {
			return ErrNotFound
		}

		subs, err := ub.subtasksByTodo()
		if err != nil {
			return err
		}

		subtaskIDs := make([]string, 0, len(subs[todoID]))
		for _, s := range subs[todoID] {
			subtaskIDs = append(subtaskIDs, s.ID)
		}

		var sessionKeys [][]byte

		sessionIDs := make(map[string]bool)

		err = ub.sessions.ForEach(func(k, v []byte) error {
			var s models.FocusSession
			if err := json.Unmarshal(v, &s); err != nil {
				return err
			}

			if s.TodoID != nil && *s.TodoID == todoID {
				sessionKeys = append(sessionKeys, bytes.Clone(k))
				sessionIDs[s.ID] = true
			}

			return nil
		})
		if err != nil {
			return err
		}

		err = ub.deleteAttributions(func(ss *models.SubtaskSession) bool {
			return sessionIDs[ss.SessionID] || slices.Contains(subtaskIDs, ss.SubtaskID)
		})
		if err != nil {
			return err
		}

		for _, k := range sessionKeys {
			if err := ub.sessions.Delete(k); err != nil {
				return err
			}
		}

		for _, id := range subtaskIDs {
			if err := ub.subtasks.Delete([]byte(id)); err != nil {
				return err
			}
		}

		return ub.todos.Delete([]byte(todoID))
	})
}

func (b *BoltDB) ArchiveTodos(
	_ context.Context,
	userID string,
	todoIDs []string,
	at time.Time,
) (int, error) {
	var archived int

	err := b.db.Update(func(tx *bolt.Tx) error {
		ub := readBuckets(tx, userID)
		if ub == nil {
			return nil
		}

		for _, id := range todoIDs {
			var t models.Todo

			err := get(ub.todos, id, &t)
			if errors.Is(err, ErrNotFound) {
				continue
			}

			if err != nil {
				return err
			}

			if t.Archived() {
				continue
			}

			archivedAt := at
			t.ArchivedAt = &archivedAt

			if err := ub.putTodo(&t); err != nil {
				return err
			}

			archived++
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return archived, nil
}

func (b *BoltDB) RestoreTodo(_ context.Context, userID, todoID string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		ub := readBuckets(tx, userID)
		if ub == nil {
			return ErrNotFound
		}

		var t models.Todo
		if err := get(ub.todos, todoID, &t); err != nil {
			return err
		}

		if !t.Archived() {
			return ErrNotFound
		}

		t.ArchivedAt = nil

		return ub.putTodo(&t)
	})
}

func (b *BoltDB) ResetSubtasks(_ context.Context, userID, todoID string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		ub := readBuckets(tx, userID)
		if ub == nil {
			return nil
		}

		subs, err := ub.subtasksByTodo()
		if err != nil {
			return err
		}

		for _, s := range subs[todoID] {
			if !s.Done {
				continue
			}

			s.Done = false

			if err := put(ub.subtasks, s.ID, &s); err != nil {
				return err
			}
		}

		return nil
	})
}

func (b *BoltDB) CreateSubtask(_ context.Context, subtask *models.Subtask) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		ub := readBuckets(tx, subtask.UserID)
		if ub == nil || ub.todos.Get([]byte(subtask.TodoID)) == nil {
			return ErrNotFound
		}

		seq, err := ub.subtasks.NextSequence()
		if err != nil {
			return err
		}

		subtask.Seq = int64(seq)

		return put(ub.subtasks, subtask.ID, subtask)
	})
}

func (b *BoltDB) GetSubtask(
	_ context.Context,
	userID, subtaskID string,
) (*models.Subtask, error) {
	var s models.Subtask

	err := b.db.View(func(tx *bolt.Tx) error {
		ub := readBuckets(tx, userID)
		if ub == nil {
			return ErrNotFound
		}

		return get(ub.subtasks, subtaskID, &s)
	})
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// updateSubtask applies fn to the stored subtask and writes it back.
func (b *BoltDB) updateSubtask(
	userID, subtaskID string,
	fn func(s *models.Subtask),
) (*models.Subtask, error) {
	var s models.Subtask

	err := b.db.Update(func(tx *bolt.Tx) error {
		ub := readBuckets(tx, userID)
		if ub == nil {
			return ErrNotFound
		}

		if err := get(ub.subtasks, subtaskID, &s); err != nil {
			return err
		}

		fn(&s)

		return put(ub.subtasks, s.ID, &s)
	})
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (b *BoltDB) UpdateSubtask(
	_ context.Context,
	userID, subtaskID string,
	upd models.SubtaskUpdate,
) (*models.Subtask, error) {
	return b.updateSubtask(userID, subtaskID, func(s *models.Subtask) {
		if upd.Done != nil {
			s.Done = *upd.Done
		}

		if upd.Label != nil {
			s.Label = *upd.Label
		}
	})
}

func (b *BoltDB) IncrementSubtaskSeconds(
	_ context.Context,
	userID, subtaskID string,
	delta int,
) error {
	_, err := b.updateSubtask(userID, subtaskID, func(s *models.Subtask) {
		s.TotalSeconds += delta
	})

	return err
}

func (b *BoltDB) SetSubtaskSeconds(
	_ context.Context,
	userID, subtaskID string,
	total int,
) error {
	_, err := b.updateSubtask(userID, subtaskID, func(s *models.Subtask) {
		s.TotalSeconds = total
	})

	return err
}

func (b *BoltDB) DeleteSubtask(_ context.Context, userID, subtaskID string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		ub := readBuckets(tx, userID)
		if ub == nil || ub.subtasks.Get([]byte(subtaskID)) == nil {
			return ErrNotFound
		}

		err := ub.deleteAttributions(func(ss *models.SubtaskSession) bool {
			return ss.SubtaskID == subtaskID
		})
		if err != nil {
			return err
		}

		return ub.subtasks.Delete([]byte(subtaskID))
	})
}

func (b *BoltDB) CreateSession(_ context.Context, sess *models.FocusSession) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		ub, err := writeBuckets(tx, sess.UserID)
		if err != nil {
			return err
		}

		return put(ub.sessions, sessionKey(sess.CreatedAt, sess.ID), sess)
	})
}

func (b *BoltDB) CreateSubtaskSession(_ context.Context, ss *models.SubtaskSession) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		ub, err := writeBuckets(tx, ss.UserID)
		if err != nil {
			return err
		}

		return put(ub.subtaskSessions, ss.ID, ss)
	})
}

func (b *BoltDB) ListSessions(
	_ context.Context,
	userID string,
	since time.Time,
) ([]models.FocusSession, error) {
	sessions := []models.FocusSession{}

	err := b.db.View(func(tx *bolt.Tx) error {
		ub := readBuckets(tx, userID)
		if ub == nil {
			return nil
		}

		c := ub.sessions.Cursor()
		minKey := []byte(since.UTC().Format(keyLayout))

		for k, v := c.Seek(minKey); k != nil; k, v = c.Next() {
			var s models.FocusSession
			if err := json.Unmarshal(v, &s); err != nil {
				return err
			}

			sessions = append(sessions, s)
		}

		return nil
	})

	return sessions, err
}

func (b *BoltDB) RecentSessions(
	_ context.Context,
	userID string,
	limit int,
) ([]models.FocusSession, error) {
	sessions := []models.FocusSession{}

	err := b.db.View(func(tx *bolt.Tx) error {
		ub := readBuckets(tx, userID)
		if ub == nil {
			return nil
		}

		c := ub.sessions.Cursor()

		for k, v := c.Last(); k != nil && len(sessions) < limit; k, v = c.Prev() {
			var s models.FocusSession
			if err := json.Unmarshal(v, &s); err != nil {
				return err
			}

			sessions = append(sessions, s)
		}

		return nil
	})

	return sessions, err
}

func (b *BoltDB) ListSubtaskSessions(
	_ context.Context,
	userID string,
) ([]models.SubtaskSession, error) {
	records := []models.SubtaskSession{}

	err := b.db.View(func(tx *bolt.Tx) error {
		ub := readBuckets(tx, userID)
		if ub == nil {
			return nil
		}

		return ub.subtaskSessions.ForEach(func(_, v []byte) error {
			var ss models.SubtaskSession
			if err := json.Unmarshal(v, &ss); err != nil {
				return err
			}

			records = append(records, ss)

			return nil
		})
	})

	slices.SortStableFunc(records, func(a, b models.SubtaskSession) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	return records, err
}

func (b *BoltDB) SessionTotals(
	_ context.Context,
	userID string,
) (count, focusSeconds int, err error) {
	err = b.db.View(func(tx *bolt.Tx) error {
		ub := readBuckets(tx, userID)
		if ub == nil {
			return nil
		}

		return ub.sessions.ForEach(func(_, v []byte) error {
			var s models.FocusSession
			if err := json.Unmarshal(v, &s); err != nil {
				return err
			}

			count++
			focusSeconds += s.FocusSeconds

			return nil
		})
	})

	return count, focusSeconds, err
}

func (b *BoltDB) ClearAll(_ context.Context, userID string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		users := tx.Bucket([]byte(usersBucket))

		ub := users.Bucket([]byte(userID))
		if ub == nil {
			return nil
		}

		for _, name := range []string{subtaskSessionsBucket, sessionBucket, subtaskBucket, todoBucket} {
			if ub.Bucket([]byte(name)) == nil {
				continue
			}

			if err := ub.DeleteBucket([]byte(name)); err != nil {
				return err
			}
		}

		return users.DeleteBucket([]byte(userID))
	})
}
