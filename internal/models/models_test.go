package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionTitle(t *testing.T) {
	testCases := []struct {
		Name     string
		Selected []SelectedTask
		Expected string
	}{
		{
			Name:     "empty selection falls back to default",
			Expected: DefaultSessionTitle,
		},
		{
			Name: "todo without labelled subtasks",
			Selected: []SelectedTask{
				{TodoID: "1", TodoTitle: "Email"},
			},
			Expected: "Email",
		},
		{
			Name: "multiple todos with subtasks",
			Selected: []SelectedTask{
				{
					TodoID:    "1",
					TodoTitle: "Write report",
					Subtasks: []SubtaskRef{
						{ID: "a", Label: "outline"},
						{ID: "b", Label: "intro"},
					},
				},
				{TodoID: "2", TodoTitle: "Email"},
				{TodoID: "3"},
			},
			Expected: "Write report (outline, intro); Email",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, SessionTitle(tc.Selected))
		})
	}
}

func TestSubtaskIDs(t *testing.T) {
	selected := []SelectedTask{
		{TodoID: "1", Subtasks: []SubtaskRef{{ID: "a"}, {ID: "b"}}},
		{TodoID: "2", Subtasks: []SubtaskRef{{ID: "c"}}},
	}

	assert.Equal(t, []string{"a", "b", "c"}, SubtaskIDs(selected))
}

func TestTodoAllDone(t *testing.T) {
	todo := Todo{}
	assert.False(t, todo.AllDone())

	todo.Subtasks = []Subtask{{Done: true}, {Done: false}}
	assert.False(t, todo.AllDone())

	todo.Subtasks[1].Done = true
	assert.True(t, todo.AllDone())
}
