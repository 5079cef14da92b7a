package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ctdp-app/ctdp/internal/apperr"
	"github.com/ctdp-app/ctdp/internal/models"
	"github.com/ctdp-app/ctdp/internal/timeutil"
	"github.com/ctdp-app/ctdp/internal/ui"
)

const (
	noTodosMsg    = "No active todos. Create one with 'ctdp todo add <title>'"
	noArchivedMsg = "No archived todos"

	shortIDLen = 8
	dateLayout = "Jan 02, 2006 03:04 PM"
)

var (
	errUnknownRef = &apperr.Error{
		Message: "no %s matches %q",
		Kind:    apperr.NotFound,
	}

	errAmbiguousRef = &apperr.Error{
		Message: "%q matches more than one %s; use a longer id",
		Kind:    apperr.Validation,
	}

	errMissingArgs = &apperr.Error{
		Message: "expected %s",
		Kind:    apperr.Validation,
	}
)

// sortTodos orders todos naturally by title. The positions printed by the
// list commands refer to this order.
func sortTodos(todos []models.Todo) {
	ui.SortNatural(todos, func(t models.Todo) string {
		return t.Title
	})
}

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}

	return id
}

func todoSeconds(t *models.Todo) int {
	var total int

	for i := range t.Subtasks {
		total += t.Subtasks[i].TotalSeconds
	}

	return total
}

// printTodosTable prints todos with their subtasks. Subtasks are numbered
// "<todo>.<subtask>" so that they can be addressed by position.
func printTodosTable(w io.Writer, todos []models.Todo) {
	tableBody := [][]string{
		{"#", "TODO", "SUBTASK", "FOCUS", "ID"},
	}

	for i := range todos {
		t := &todos[i]

		tableBody = append(tableBody, []string{
			strconv.Itoa(i + 1),
			ui.Highlight(t.Title),
			"",
			timeutil.Clock(todoSeconds(t)),
			ui.Muted(shortID(t.ID)),
		})

		for j := range t.Subtasks {
			sub := &t.Subtasks[j]

			tableBody = append(tableBody, []string{
				fmt.Sprintf("%d.%d", i+1, j+1),
				"",
				ui.Check(sub.Done) + " " + sub.Label,
				timeutil.Clock(sub.TotalSeconds),
				ui.Muted(shortID(sub.ID)),
			})
		}
	}

	ui.PrintTable(tableBody, w)
}

// printArchivedTable prints archived todos in the order given.
func printArchivedTable(w io.Writer, todos []models.Todo) {
	tableBody := [][]string{
		{"#", "TODO", "SUBTASKS", "FOCUS", "ARCHIVED", "ID"},
	}

	for i := range todos {
		t := &todos[i]

		archived := ""
		if t.ArchivedAt != nil {
			archived = t.ArchivedAt.Format(dateLayout)
		}

		tableBody = append(tableBody, []string{
			strconv.Itoa(i + 1),
			t.Title,
			strconv.Itoa(len(t.Subtasks)),
			timeutil.Clock(todoSeconds(t)),
			archived,
			ui.Muted(shortID(t.ID)),
		})
	}

	ui.PrintTable(tableBody, w)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

// resolveTodo finds a todo by its 1-based position in todos, by id, or by a
// unique id prefix.
func resolveTodo(todos []models.Todo, ref string) (*models.Todo, error) {
	ref = strings.TrimSpace(ref)

	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(todos) {
		return &todos[n-1], nil
	}

	var found *models.Todo

	for i := range todos {
		if todos[i].ID == ref {
			return &todos[i], nil
		}

		if ref != "" && strings.HasPrefix(todos[i].ID, ref) {
			if found != nil {
				return nil, errAmbiguousRef.Fmt(ref, "todo")
			}

			found = &todos[i]
		}
	}

	if found == nil {
		return nil, errUnknownRef.Fmt("todo", ref)
	}

	return found, nil
}

// resolveSubtask finds a subtask by "<todo>.<subtask>" position, by id, or
// by a unique id prefix across all todos.
func resolveSubtask(todos []models.Todo, ref string) (*models.Subtask, error) {
	ref = strings.TrimSpace(ref)

	if todoPos, subPos, ok := strings.Cut(ref, "."); ok {
		ti, err1 := strconv.Atoi(todoPos)
		si, err2 := strconv.Atoi(subPos)

		if err1 == nil && err2 == nil &&
			ti >= 1 && ti <= len(todos) &&
			si >= 1 && si <= len(todos[ti-1].Subtasks) {
			return &todos[ti-1].Subtasks[si-1], nil
		}
	}

	var found *models.Subtask

	for i := range todos {
		for j := range todos[i].Subtasks {
			sub := &todos[i].Subtasks[j]

			if sub.ID == ref {
				return sub, nil
			}

			if ref != "" && strings.HasPrefix(sub.ID, ref) {
				if found != nil {
					return nil, errAmbiguousRef.Fmt(ref, "subtask")
				}

				found = sub
			}
		}
	}

	if found == nil {
		return nil, errUnknownRef.Fmt("subtask", ref)
	}

	return found, nil
}

// selectionOf groups subtasks by their todo in the order they were given,
// which is the order used for the session title.
func selectionOf(todos []models.Todo, subtasks []*models.Subtask) []models.SelectedTask {
	var selected []models.SelectedTask

	index := make(map[string]int)

	for _, sub := range subtasks {
		i, ok := index[sub.TodoID]
		if !ok {
			title := ""

			for j := range todos {
				if todos[j].ID == sub.TodoID {
					title = todos[j].Title
					break
				}
			}

			selected = append(selected, models.SelectedTask{
				TodoID:    sub.TodoID,
				TodoTitle: title,
			})
			i = len(selected) - 1
			index[sub.TodoID] = i
		}

		selected[i].Subtasks = append(selected[i].Subtasks, models.SubtaskRef{
			ID:    sub.ID,
			Label: sub.Label,
		})
	}

	return selected
}
