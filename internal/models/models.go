// Package models defines the data shared between the timer, the tracker
// service and the storage layer
package models

import (
	"strings"
	"time"
)

// DefaultSessionTitle is used when no selected task contributes a title.
const DefaultSessionTitle = "Focus Session"

// Todo is a top-level task. ArchivedAt is nil while the todo is active.
type Todo struct {
	CreatedAt  time.Time  `json:"created_at"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	Title      string     `json:"title"`
	Subtasks   []Subtask  `json:"subtasks"`
}

// Archived reports whether the todo is archived.
func (t *Todo) Archived() bool {
	return t.ArchivedAt != nil
}

// AllDone reports whether the todo has at least one subtask and all of them
// are done.
func (t *Todo) AllDone() bool {
	if len(t.Subtasks) == 0 {
		return false
	}

	for i := range t.Subtasks {
		if !t.Subtasks[i].Done {
			return false
		}
	}

	return true
}

// Subtask is a checkable item of a Todo that accumulates focus time.
type Subtask struct {
	CreatedAt    time.Time `json:"created_at"`
	ID           string    `json:"id"`
	TodoID       string    `json:"todo_id"`
	UserID       string    `json:"user_id"`
	Label        string    `json:"label"`
	TotalSeconds int       `json:"total_seconds"`
	// Seq is assigned by the store in insertion order. It orders subtasks
	// created within the same clock reading.
	Seq  int64 `json:"seq"`
	Done bool  `json:"done"`
}

// FocusSession is a persisted record of completed focus time. TodoID is nil
// for sessions that span a selection of tasks.
type FocusSession struct {
	CreatedAt    time.Time `json:"created_at"`
	TodoID       *string   `json:"todo_id,omitempty"`
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	TodoTitle    string    `json:"todo_title"`
	Note         string    `json:"note"`
	WaitSeconds  int       `json:"wait_seconds"`
	FocusSeconds int       `json:"focus_seconds"`
}

// SubtaskSession attributes part of a session's focus time to a subtask.
type SubtaskSession struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	SubtaskID string    `json:"subtask_id"`
	SessionID string    `json:"session_id"`
	Seconds   int       `json:"seconds"`
}

// SubtaskRef identifies a selected subtask and carries its label for
// session title synthesis.
type SubtaskRef struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// SelectedTask is a todo and the subtasks chosen from it for a session.
type SelectedTask struct {
	TodoID    string       `json:"todo_id"`
	TodoTitle string       `json:"todo_title"`
	Subtasks  []SubtaskRef `json:"subtasks"`
}

// SessionTitle builds the display title for a selection, e.g.
// "Write report (outline, intro); Email".
func SessionTitle(selected []SelectedTask) string {
	parts := make([]string, 0, len(selected))

	for _, st := range selected {
		if st.TodoTitle == "" {
			continue
		}

		labels := make([]string, 0, len(st.Subtasks))

		for _, sub := range st.Subtasks {
			if sub.Label != "" {
				labels = append(labels, sub.Label)
			}
		}

		if len(labels) > 0 {
			parts = append(parts, st.TodoTitle+" ("+strings.Join(labels, ", ")+")")
		} else {
			parts = append(parts, st.TodoTitle)
		}
	}

	if len(parts) == 0 {
		return DefaultSessionTitle
	}

	return strings.Join(parts, "; ")
}

// SubtaskIDs flattens the subtask ids of a selection.
func SubtaskIDs(selected []SelectedTask) []string {
	var ids []string

	for _, st := range selected {
		for _, sub := range st.Subtasks {
			ids = append(ids, sub.ID)
		}
	}

	return ids
}

// SessionRequest is the input of recordSession.
type SessionRequest struct {
	TodoID       *string  `json:"todoId"`
	TodoTitle    string   `json:"todoTitle"`
	Note         string   `json:"note,omitempty"`
	SubtaskIDs   []string `json:"subtaskIds"`
	WaitSeconds  int      `json:"waitSeconds"`
	FocusSeconds int      `json:"focusSeconds"`
}

// Totals is the all-time session aggregate.
type Totals struct {
	SessionsCount int `json:"sessionsCount"`
	TotalMinutes  int `json:"totalMinutes"`
}

// SessionLog is the summary of a recorded session.
type SessionLog struct {
	CreatedAt time.Time `json:"createdAt"`
	ID        string    `json:"id"`
	TodoTitle string    `json:"todoTitle"`
	Note      string    `json:"note"`
}

// SessionResult is the output of recordSession.
type SessionResult struct {
	Log    SessionLog `json:"log"`
	Totals Totals     `json:"stats"`
}

// SubtaskUpdate holds the optional fields of updateSubtask.
type SubtaskUpdate struct {
	Done  *bool   `json:"done,omitempty"`
	Label *string `json:"label,omitempty"`
}

// Bootstrap is the dashboard payload loaded on start.
type Bootstrap struct {
	Todos  []Todo       `json:"todos"`
	Logs   []SessionLog `json:"logs"`
	Totals Totals       `json:"stats"`
}
