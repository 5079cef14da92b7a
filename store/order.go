package store

import (
	"cmp"
	"slices"

	"github.com/ctdp-app/ctdp/internal/models"
)

// sortTodos orders active todos newest first and archived todos by most
// recent archive time.
func sortTodos(todos []models.Todo, archived bool) {
	slices.SortStableFunc(todos, func(a, b models.Todo) int {
		if archived && a.ArchivedAt != nil && b.ArchivedAt != nil {
			if c := b.ArchivedAt.Compare(*a.ArchivedAt); c != 0 {
				return c
			}
		}

		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}

		return compareIDs(a.ID, b.ID)
	})
}

func sortSubtasks(subs []models.Subtask) {
	slices.SortStableFunc(subs, func(a, b models.Subtask) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}

		if c := cmp.Compare(a.Seq, b.Seq); c != 0 {
			return c
		}

		return compareIDs(a.ID, b.ID)
	})
}

func compareIDs(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// withSubtasks never returns nil so that todos encode with an empty list.
func withSubtasks(subs []models.Subtask) []models.Subtask {
	if subs == nil {
		return []models.Subtask{}
	}

	return subs
}
