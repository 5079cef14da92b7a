package timer

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctdp-app/ctdp/internal/config"
	"github.com/ctdp-app/ctdp/internal/models"
)

type fakeService struct {
	fakeRecorder
	todos   []models.Todo
	updates []models.SubtaskUpdate
	umu     sync.Mutex
}

func (f *fakeService) ListActiveTodos(context.Context, string) ([]models.Todo, error) {
	return f.todos, nil
}

func (f *fakeService) AutoArchive(context.Context, string) (int, error) {
	return 0, nil
}

func (f *fakeService) UpdateSubtask(
	_ context.Context,
	_, subtaskID string,
	upd models.SubtaskUpdate,
) (*models.Subtask, error) {
	f.umu.Lock()
	defer f.umu.Unlock()

	f.updates = append(f.updates, upd)

	return &models.Subtask{ID: subtaskID, Done: *upd.Done}, nil
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T) (*Model, *fakeService) {
	t.Helper()

	svc := &fakeService{
		todos: []models.Todo{
			{
				ID:    "t1",
				Title: "Write report",
				Subtasks: []models.Subtask{
					{ID: "s1", TodoID: "t1", Label: "outline"},
					{ID: "s2", TodoID: "t1", Label: "intro", TotalSeconds: 90},
				},
			},
		},
	}

	cfg := &config.Config{
		User: config.UserConfig{ID: user},
		Timer: config.TimerConfig{
			FocusMinutes: 25,
			TickInterval: time.Second,
		},
		Archive: config.ArchiveConfig{FadeDelay: time.Hour},
	}

	m := NewModel(context.Background(), cfg, svc, nil)
	t.Cleanup(m.Close)

	m.Update(m.loadTodos(true)())

	return m, svc
}

func TestModelBoard(t *testing.T) {
	m, _ := newTestModel(t)

	require.Len(t, m.rows, 2)

	view := m.View()
	assert.Contains(t, view, "Write report")
	assert.Contains(t, view, "outline")
	assert.Contains(t, view, "01:30")
}

func TestModelScheduleRequiresSelection(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, Idle, m.engine.Snapshot().Phase)
	assert.True(t, m.statusErr)
}

func TestModelSessionFlow(t *testing.T) {
	m, svc := newTestModel(t)

	m.Update(keyRunes("j"))
	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.True(t, m.selected["s2"])

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(changedMsg{})

	assert.Equal(t, Focusing, m.snap.Phase)
	assert.Contains(t, m.View(), "Write report (intro)")

	m.Update(keyRunes("c"))
	m.Update(changedMsg{})
	require.Equal(t, Completed, m.snap.Phase)

	m.Update(keyRunes("o"))
	m.Update(keyRunes("k"))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	saved, ok := msg.(savedMsg)
	require.True(t, ok)
	require.NoError(t, saved.err)

	m.Update(saved)

	require.Len(t, svc.reqs, 1)
	assert.Equal(t, "ok", svc.reqs[0].Note)
	assert.Equal(t, []string{"s2"}, svc.reqs[0].SubtaskIDs)
	assert.Equal(t, "Write report (intro)", svc.reqs[0].TodoTitle)
	assert.Empty(t, m.selected)
	assert.Equal(t, Idle, m.engine.Snapshot().Phase)
}

func TestModelToggleDone(t *testing.T) {
	m, svc := newTestModel(t)

	_, cmd := m.Update(keyRunes("x"))
	require.NotNil(t, cmd)

	m.Update(cmd())

	require.Len(t, svc.updates, 1)
	assert.True(t, *svc.updates[0].Done)
	assert.True(t, m.rows[0].subtask.Done)
}

func TestModelAbort(t *testing.T) {
	m, svc := newTestModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(changedMsg{})
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m.Update(changedMsg{})

	assert.Equal(t, Idle, m.snap.Phase)
	assert.Empty(t, svc.reqs)
}
