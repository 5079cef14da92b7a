package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/ctdp-app/ctdp/internal/models"
	"github.com/ctdp-app/ctdp/internal/osutil"
)

// dialect captures the differences between the SQL backends. Queries are
// written with ? placeholders and rebound for PostgreSQL.
type dialect struct {
	driver       string
	gooseDialect string
	dollar       bool
}

var (
	sqliteDialect   = dialect{driver: "sqlite", gooseDialect: "sqlite3"}
	postgresDialect = dialect{driver: "pgx", gooseDialect: "postgres", dollar: true}
)

func (d dialect) rebind(query string) string {
	if !d.dollar {
		return query
	}

	var (
		b strings.Builder
		n int
	)

	for _, r := range query {
		if r == '?' {
			n++

			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))

			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}

// SQLDB is a DB backed by database/sql. Timestamps are stored as Unix
// nanoseconds so that both dialects share one schema.
type SQLDB struct {
	db *sql.DB
	d  dialect
}

// NewSQLite opens (or creates) the SQLite database at path and runs
// migrations. Use ":memory:" for a throwaway database.
func NewSQLite(ctx context.Context, path string) (*SQLDB, error) {
	if path != ":memory:" {
		if err := osutil.EnsureParentDir(path); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open(sqliteDialect.driver, path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}

	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	return newSQLDB(ctx, db, sqliteDialect)
}

// NewPostgres connects to PostgreSQL through the pgx stdlib driver and runs
// migrations.
func NewPostgres(ctx context.Context, dsn string) (*SQLDB, error) {
	db, err := sql.Open(postgresDialect.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return newSQLDB(ctx, db, postgresDialect)
}

func newSQLDB(ctx context.Context, db *sql.DB, d dialect) (*SQLDB, error) {
	if err := migrate(ctx, db, d); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &SQLDB{db: db, d: d}, nil
}

func (s *SQLDB) Close() error {
	return s.db.Close()
}

func (s *SQLDB) exec(ctx context.Context, q DBTX, query string, args ...any) (int64, error) {
	res, err := q.ExecContext(ctx, s.d.rebind(query), args...)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

// execOne runs a statement that must touch at least one row.
func (s *SQLDB) execOne(ctx context.Context, q DBTX, query string, args ...any) error {
	n, err := s.exec(ctx, q, query, args...)
	if err != nil {
		return err
	}

	if n == 0 {
		return ErrNotFound
	}

	return nil
}

func nanos(t time.Time) int64 {
	return t.UnixNano()
}

func fromNanos(n int64) time.Time {
	return time.Unix(0, n)
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

const todoColumns = "id, user_id, title, created_at, archived_at"

func scanTodo(row interface{ Scan(...any) error }) (models.Todo, error) {
	var (
		t          models.Todo
		createdAt  int64
		archivedAt sql.NullInt64
	)

	if err := row.Scan(&t.ID, &t.UserID, &t.Title, &createdAt, &archivedAt); err != nil {
		return t, err
	}

	t.CreatedAt = fromNanos(createdAt)

	if archivedAt.Valid {
		at := fromNanos(archivedAt.Int64)
		t.ArchivedAt = &at
	}

	return t, nil
}

const subtaskColumns = "id, todo_id, user_id, label, done, total_seconds, created_at, seq"

func scanSubtask(row interface{ Scan(...any) error }) (models.Subtask, error) {
	var (
		st        models.Subtask
		createdAt int64
	)

	err := row.Scan(
		&st.ID,
		&st.TodoID,
		&st.UserID,
		&st.Label,
		&st.Done,
		&st.TotalSeconds,
		&createdAt,
		&st.Seq,
	)
	st.CreatedAt = fromNanos(createdAt)

	return st, err
}

func (s *SQLDB) subtasks(
	ctx context.Context,
	q DBTX,
	where string,
	args ...any,
) (map[string][]models.Subtask, error) {
	rows, err := q.QueryContext(
		ctx,
		s.d.rebind("SELECT "+subtaskColumns+" FROM subtasks WHERE "+where+" ORDER BY created_at, seq, id"),
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := make(map[string][]models.Subtask)

	for rows.Next() {
		st, err := scanSubtask(rows)
		if err != nil {
			return nil, err
		}

		subs[st.TodoID] = append(subs[st.TodoID], st)
	}

	return subs, rows.Err()
}

func (s *SQLDB) ListTodos(
	ctx context.Context,
	userID string,
	archived bool,
) ([]models.Todo, error) {
	query := "SELECT " + todoColumns + " FROM todos WHERE user_id = ? AND archived_at IS NULL ORDER BY created_at DESC, id"
	if archived {
		query = "SELECT " + todoColumns + " FROM todos WHERE user_id = ? AND archived_at IS NOT NULL ORDER BY archived_at DESC, created_at DESC, id"
	}

	rows, err := s.db.QueryContext(ctx, s.d.rebind(query), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := []models.Todo{}

	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}

		todos = append(todos, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	subs, err := s.subtasks(ctx, s.db, "user_id = ?", userID)
	if err != nil {
		return nil, err
	}

	for i := range todos {
		todos[i].Subtasks = withSubtasks(subs[todos[i].ID])
	}

	return todos, nil
}

func (s *SQLDB) GetTodo(
	ctx context.Context,
	userID, todoID string,
) (*models.Todo, error) {
	row := s.db.QueryRowContext(
		ctx,
		s.d.rebind("SELECT "+todoColumns+" FROM todos WHERE user_id = ? AND id = ?"),
		userID,
		todoID,
	)

	t, err := scanTodo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	subs, err := s.subtasks(ctx, s.db, "user_id = ? AND todo_id = ?", userID, todoID)
	if err != nil {
		return nil, err
	}

	t.Subtasks = withSubtasks(subs[t.ID])

	return &t, nil
}

func (s *SQLDB) CreateTodo(ctx context.Context, todo *models.Todo) error {
	var archivedAt *int64

	if todo.ArchivedAt != nil {
		n := nanos(*todo.ArchivedAt)
		archivedAt = &n
	}

	_, err := s.exec(
		ctx,
		s.db,
		"INSERT INTO todos ("+todoColumns+") VALUES (?, ?, ?, ?, ?)",
		todo.ID,
		todo.UserID,
		todo.Title,
		nanos(todo.CreatedAt),
		archivedAt,
	)

	return err
}

func (s *SQLDB) UpdateTodoTitle(
	ctx context.Context,
	userID, todoID, title string,
) error {
	return s.execOne(
		ctx,
		s.db,
		"UPDATE todos SET title = ? WHERE user_id = ? AND id = ?",
		title,
		userID,
		todoID,
	)
}

func (s *SQLDB) DeleteTodo(ctx context.Context, userID, todoID string) error {
	return withTx(ctx, s.db, func(ctx context.Context, tx DBTX) error {
		stmts := []string{
			`DELETE FROM subtask_sessions WHERE user_id = ? AND (
				subtask_id IN (SELECT id FROM subtasks WHERE todo_id = ?) OR
				session_id IN (SELECT id FROM sessions WHERE todo_id = ?))`,
			"DELETE FROM sessions WHERE user_id = ? AND todo_id = ?",
			"DELETE FROM subtasks WHERE user_id = ? AND todo_id = ?",
		}

		if _, err := s.exec(ctx, tx, stmts[0], userID, todoID, todoID); err != nil {
			return err
		}

		for _, stmt := range stmts[1:] {
			if _, err := s.exec(ctx, tx, stmt, userID, todoID); err != nil {
				return err
			}
		}

		return s.execOne(ctx, tx, "DELETE FROM todos WHERE user_id = ? AND id = ?", userID, todoID)
	})
}

func (s *SQLDB) ArchiveTodos(
	ctx context.Context,
	userID string,
	todoIDs []string,
	at time.Time,
) (int, error) {
	if len(todoIDs) == 0 {
		return 0, nil
	}

	args := make([]any, 0, len(todoIDs)+2)
	args = append(args, nanos(at), userID)

	for _, id := range todoIDs {
		args = append(args, id)
	}

	n, err := s.exec(
		ctx,
		s.db,
		"UPDATE todos SET archived_at = ? WHERE user_id = ? AND archived_at IS NULL AND id IN ("+placeholders(len(todoIDs))+")",
		args...,
	)

	return int(n), err
}

func (s *SQLDB) RestoreTodo(ctx context.Context, userID, todoID string) error {
	return s.execOne(
		ctx,
		s.db,
		"UPDATE todos SET archived_at = NULL WHERE user_id = ? AND id = ? AND archived_at IS NOT NULL",
		userID,
		todoID,
	)
}

func (s *SQLDB) ResetSubtasks(ctx context.Context, userID, todoID string) error {
	_, err := s.exec(
		ctx,
		s.db,
		"UPDATE subtasks SET done = ? WHERE user_id = ? AND todo_id = ?",
		false,
		userID,
		todoID,
	)

	return err
}

func (s *SQLDB) CreateSubtask(ctx context.Context, st *models.Subtask) error {
	return withTx(ctx, s.db, func(ctx context.Context, tx DBTX) error {
		var one int

		err := tx.QueryRowContext(
			ctx,
			s.d.rebind("SELECT 1 FROM todos WHERE user_id = ? AND id = ?"),
			st.UserID,
			st.TodoID,
		).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}

		if err != nil {
			return err
		}

		err = tx.QueryRowContext(
			ctx,
			s.d.rebind("SELECT COALESCE(MAX(seq), 0) + 1 FROM subtasks WHERE user_id = ? AND todo_id = ?"),
			st.UserID,
			st.TodoID,
		).Scan(&st.Seq)
		if err != nil {
			return err
		}

		_, err = s.exec(
			ctx,
			tx,
			"INSERT INTO subtasks ("+subtaskColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			st.ID,
			st.TodoID,
			st.UserID,
			st.Label,
			st.Done,
			st.TotalSeconds,
			nanos(st.CreatedAt),
			st.Seq,
		)

		return err
	})
}

func (s *SQLDB) getSubtask(
	ctx context.Context,
	q DBTX,
	userID, subtaskID string,
) (*models.Subtask, error) {
	row := q.QueryRowContext(
		ctx,
		s.d.rebind("SELECT "+subtaskColumns+" FROM subtasks WHERE user_id = ? AND id = ?"),
		userID,
		subtaskID,
	)

	st, err := scanSubtask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	return &st, nil
}

func (s *SQLDB) GetSubtask(
	ctx context.Context,
	userID, subtaskID string,
) (*models.Subtask, error) {
	return s.getSubtask(ctx, s.db, userID, subtaskID)
}

func (s *SQLDB) UpdateSubtask(
	ctx context.Context,
	userID, subtaskID string,
	upd models.SubtaskUpdate,
) (*models.Subtask, error) {
	var st *models.Subtask

	err := withTx(ctx, s.db, func(ctx context.Context, tx DBTX) error {
		var (
			sets []string
			args []any
		)

		if upd.Done != nil {
			sets = append(sets, "done = ?")
			args = append(args, *upd.Done)
		}

		if upd.Label != nil {
			sets = append(sets, "label = ?")
			args = append(args, *upd.Label)
		}

		if len(sets) > 0 {
			args = append(args, userID, subtaskID)

			err := s.execOne(
				ctx,
				tx,
				"UPDATE subtasks SET "+strings.Join(sets, ", ")+" WHERE user_id = ? AND id = ?",
				args...,
			)
			if err != nil {
				return err
			}
		}

		var err error
		st, err = s.getSubtask(ctx, tx, userID, subtaskID)

		return err
	})
	if err != nil {
		return nil, err
	}

	return st, nil
}

func (s *SQLDB) DeleteSubtask(ctx context.Context, userID, subtaskID string) error {
	return withTx(ctx, s.db, func(ctx context.Context, tx DBTX) error {
		_, err := s.exec(
			ctx,
			tx,
			"DELETE FROM subtask_sessions WHERE user_id = ? AND subtask_id = ?",
			userID,
			subtaskID,
		)
		if err != nil {
			return err
		}

		return s.execOne(
			ctx,
			tx,
			"DELETE FROM subtasks WHERE user_id = ? AND id = ?",
			userID,
			subtaskID,
		)
	})
}

func (s *SQLDB) IncrementSubtaskSeconds(
	ctx context.Context,
	userID, subtaskID string,
	delta int,
) error {
	return s.execOne(
		ctx,
		s.db,
		"UPDATE subtasks SET total_seconds = total_seconds + ? WHERE user_id = ? AND id = ?",
		delta,
		userID,
		subtaskID,
	)
}

func (s *SQLDB) SetSubtaskSeconds(
	ctx context.Context,
	userID, subtaskID string,
	total int,
) error {
	return s.execOne(
		ctx,
		s.db,
		"UPDATE subtasks SET total_seconds = ? WHERE user_id = ? AND id = ?",
		total,
		userID,
		subtaskID,
	)
}

const sessionColumns = "id, user_id, todo_id, todo_title, wait_seconds, focus_seconds, note, created_at"

func (s *SQLDB) CreateSession(ctx context.Context, sess *models.FocusSession) error {
	_, err := s.exec(
		ctx,
		s.db,
		"INSERT INTO sessions ("+sessionColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		sess.ID,
		sess.UserID,
		sess.TodoID,
		sess.TodoTitle,
		sess.WaitSeconds,
		sess.FocusSeconds,
		sess.Note,
		nanos(sess.CreatedAt),
	)

	return err
}

func (s *SQLDB) CreateSubtaskSession(ctx context.Context, ss *models.SubtaskSession) error {
	_, err := s.exec(
		ctx,
		s.db,
		"INSERT INTO subtask_sessions (id, user_id, subtask_id, session_id, seconds, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		ss.ID,
		ss.UserID,
		ss.SubtaskID,
		ss.SessionID,
		ss.Seconds,
		nanos(ss.CreatedAt),
	)

	return err
}

func (s *SQLDB) querySessions(
	ctx context.Context,
	query string,
	args ...any,
) ([]models.FocusSession, error) {
	rows, err := s.db.QueryContext(ctx, s.d.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []models.FocusSession{}

	for rows.Next() {
		var (
			sess      models.FocusSession
			todoID    sql.NullString
			createdAt int64
		)

		err := rows.Scan(
			&sess.ID,
			&sess.UserID,
			&todoID,
			&sess.TodoTitle,
			&sess.WaitSeconds,
			&sess.FocusSeconds,
			&sess.Note,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		if todoID.Valid {
			id := todoID.String
			sess.TodoID = &id
		}

		sess.CreatedAt = fromNanos(createdAt)
		sessions = append(sessions, sess)
	}

	return sessions, rows.Err()
}

func (s *SQLDB) ListSessions(
	ctx context.Context,
	userID string,
	since time.Time,
) ([]models.FocusSession, error) {
	return s.querySessions(
		ctx,
		"SELECT "+sessionColumns+" FROM sessions WHERE user_id = ? AND created_at >= ? ORDER BY created_at, id",
		userID,
		nanos(since),
	)
}

func (s *SQLDB) RecentSessions(
	ctx context.Context,
	userID string,
	limit int,
) ([]models.FocusSession, error) {
	return s.querySessions(
		ctx,
		"SELECT "+sessionColumns+" FROM sessions WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?",
		userID,
		limit,
	)
}

func (s *SQLDB) ListSubtaskSessions(
	ctx context.Context,
	userID string,
) ([]models.SubtaskSession, error) {
	rows, err := s.db.QueryContext(
		ctx,
		s.d.rebind("SELECT id, user_id, subtask_id, session_id, seconds, created_at FROM subtask_sessions WHERE user_id = ? ORDER BY created_at, id"),
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []models.SubtaskSession{}

	for rows.Next() {
		var (
			ss        models.SubtaskSession
			createdAt int64
		)

		err := rows.Scan(&ss.ID, &ss.UserID, &ss.SubtaskID, &ss.SessionID, &ss.Seconds, &createdAt)
		if err != nil {
			return nil, err
		}

		ss.CreatedAt = fromNanos(createdAt)
		records = append(records, ss)
	}

	return records, rows.Err()
}

func (s *SQLDB) SessionTotals(
	ctx context.Context,
	userID string,
) (count, focusSeconds int, err error) {
	err = s.db.QueryRowContext(
		ctx,
		s.d.rebind("SELECT COUNT(*), COALESCE(SUM(focus_seconds), 0) FROM sessions WHERE user_id = ?"),
		userID,
	).Scan(&count, &focusSeconds)

	return count, focusSeconds, err
}

func (s *SQLDB) ClearAll(ctx context.Context, userID string) error {
	return withTx(ctx, s.db, func(ctx context.Context, tx DBTX) error {
		for _, table := range []string{"subtask_sessions", "sessions", "subtasks", "todos"} {
			if _, err := s.exec(ctx, tx, "DELETE FROM "+table+" WHERE user_id = ?", userID); err != nil {
				return err
			}
		}

		return nil
	})
}
