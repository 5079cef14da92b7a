package timer

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/davecgh/go-spew/spew"

	"github.com/ctdp-app/ctdp/internal/hook"
)

func eventOf(s Snapshot, note string) hook.Event {
	return hook.Event{
		Title:        s.Title,
		Note:         note,
		FocusSeconds: s.FocusSeconds,
		WaitSeconds:  s.WaitSeconds,
	}
}

// handleChange syncs the model with the engine and the board.
func (m *Model) handleChange() (tea.Model, tea.Cmd) {
	prev := m.snap
	m.snap = m.engine.Snapshot()
	m.refreshRows()

	cmds := []tea.Cmd{m.waitForChange()}

	if prev.Phase != Completed && m.snap.Phase == Completed {
		m.note.Reset()
		cmds = append(cmds, m.note.Focus(), m.notifyCompleted(eventOf(m.snap, "")))
	}

	if m.snap.Phase != Completed {
		m.note.Blur()
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	if errors.Is(msg.err, errSaveInProgress) {
		return m, nil
	}

	if msg.err != nil {
		m.setStatus("Saving failed, press enter to retry: "+msg.err.Error(), true)
		return m, nil
	}

	clear(m.selected)
	m.note.Reset()
	m.setStatus(fmt.Sprintf(
		"Session saved. %d sessions, %d minutes in total",
		msg.res.Totals.SessionsCount,
		msg.res.Totals.TotalMinutes,
	), false)

	return m, tea.Batch(m.runHook(msg.event), m.loadTodos(false))
}

func (m *Model) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, defaultKeymap.up):
		m.cursor = max(0, m.cursor-1)

	case key.Matches(msg, defaultKeymap.down):
		m.cursor = min(len(m.rows)-1, m.cursor+1)
		m.cursor = max(0, m.cursor)

	case key.Matches(msg, defaultKeymap.sel):
		if len(m.rows) == 0 {
			break
		}

		id := m.rows[m.cursor].subtask.ID
		if m.selected[id] {
			delete(m.selected, id)
		} else {
			m.selected[id] = true
		}

	case key.Matches(msg, defaultKeymap.done):
		if len(m.rows) == 0 {
			break
		}

		return m, m.toggle(m.rows[m.cursor].subtask.ID)

	case key.Matches(msg, defaultKeymap.schedule):
		err := m.engine.Schedule(m.selection(), m.wait, m.focus)
		if err != nil {
			m.setStatus(err.Error(), true)
		} else {
			m.setStatus("", false)
		}
	}

	return m, nil
}

func (m *Model) handleRunningKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var err error

	switch {
	case key.Matches(msg, defaultKeymap.pause):
		m.engine.TogglePause()

	case key.Matches(msg, defaultKeymap.finish):
		err = m.engine.CompleteEarly()

	case key.Matches(msg, defaultKeymap.cancel):
		if m.snap.Phase == Waiting {
			err = m.engine.CancelWait()
		} else {
			err = m.engine.Abort()
		}
	}

	if err != nil {
		m.setStatus(err.Error(), true)
	}

	return m, nil
}

func (m *Model) handleCompletedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, defaultKeymap.save):
		return m, m.save(m.note.Value())

	case key.Matches(msg, defaultKeymap.cancel):
		if err := m.engine.Dismiss(); err != nil {
			m.setStatus(err.Error(), true)
		}

		return m, nil
	}

	var cmd tea.Cmd
	m.note, cmd = m.note.Update(msg)

	return m, cmd
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case changedMsg:
		return m.handleChange()

	case tea.FocusMsg:
		// ticks may have been skipped while the terminal was in the
		// background
		m.engine.Refresh()
		return m, nil

	case todosMsg:
		if msg.err != nil {
			m.setStatus(msg.err.Error(), true)
			return m, nil
		}

		m.board.Load(msg.todos)
		m.refreshRows()

		return m, nil

	case toggledMsg:
		if msg.err != nil {
			m.setStatus("Update failed: "+msg.err.Error(), true)
		}

		m.refreshRows()

		return m, nil

	case savedMsg:
		return m.handleSaved(msg)

	case hookMsg:
		if msg.err != nil {
			m.log.Warn("post-session hook failed", slog.Any("error", msg.err))
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(msg.Width-padding*2-4, maxWidth)

		return m, nil

	case progress.FrameMsg:
		pm, cmd := m.progress.Update(msg)
		m.progress, _ = pm.(progress.Model)

		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" ||
			(m.snap.Phase != Completed && key.Matches(msg, defaultKeymap.quit)) {
			m.Close()
			return m, tea.Quit
		}

		switch m.snap.Phase {
		case Idle:
			return m.handleBoardKey(msg)
		case Waiting, Focusing:
			return m.handleRunningKey(msg)
		case Completed:
			return m.handleCompletedKey(msg)
		}
	}

	if m.snap.Phase == Completed {
		var cmd tea.Cmd
		m.note, cmd = m.note.Update(msg)

		return m, cmd
	}

	m.log.Debug("unhandled message", slog.String("msg", spew.Sdump(msg)))

	return m, nil
}
