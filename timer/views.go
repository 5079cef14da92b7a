package timer

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/x/ansi"

	"github.com/ctdp-app/ctdp/internal/timeutil"
)

// truncate shortens s to the usable width of the terminal.
func (m *Model) truncate(s string, indent int) string {
	width := maxWidth
	if m.width > 0 {
		width = min(width, m.width-padding*2)
	}

	width -= indent
	if width <= 0 || ansi.StringWidth(s) <= width {
		return s
	}

	return ansi.Truncate(s, width, "…")
}

func (m *Model) boardView() string {
	var s strings.Builder

	s.WriteString(m.styles.main.Render("Todos"))
	s.WriteString(m.styles.hint.Render(
		fmt.Sprintf("  %d selected · %dm wait · %dm focus", len(m.selected), m.wait, m.focus),
	))
	s.WriteString("\n\n")

	if len(m.rows) == 0 {
		s.WriteString(m.styles.hint.Render("No active todos. Add one with `ctdp todo add`."))
	}

	var lastTodo string

	for i, r := range m.rows {
		if r.todo.ID != lastTodo {
			if lastTodo != "" {
				s.WriteString("\n")
			}

			title := m.truncate(r.todo.Title, 0)
			if m.board.Fading(r.todo.ID) {
				title = m.styles.done.Render(title) + m.styles.hint.Render("  archiving…")
			} else {
				title = m.styles.main.Render(title)
			}

			s.WriteString(title + "\n")
			lastTodo = r.todo.ID
		}

		cursor := "  "
		if i == m.cursor {
			cursor = m.styles.selected.Render("> ")
		}

		mark := "○"
		if m.selected[r.subtask.ID] {
			mark = m.styles.selected.Render("●")
		}

		check := "[ ]"
		label := m.truncate(r.subtask.Label, 16)

		if r.subtask.Done {
			check = "[x]"
			label = m.styles.done.Render(label)
		}

		spent := ""
		if r.subtask.TotalSeconds > 0 {
			spent = m.styles.hint.Render("  " + timeutil.Clock(r.subtask.TotalSeconds))
		}

		fmt.Fprintf(&s, "%s%s %s %s%s\n", cursor, mark, check, label, spent)
	}

	s.WriteString(m.statusView())
	s.WriteString("\n\n" + m.help.ShortHelpView([]key.Binding{
		defaultKeymap.up,
		defaultKeymap.down,
		defaultKeymap.sel,
		defaultKeymap.done,
		defaultKeymap.schedule,
		defaultKeymap.quit,
	}))

	return s.String()
}

func (m *Model) countdownView() string {
	var s strings.Builder

	if m.snap.Phase == Waiting {
		s.WriteString(m.styles.waiting.Render())
	} else {
		s.WriteString(m.styles.focusing.Render())
	}

	if m.snap.Paused {
		s.WriteString(m.styles.secondary.Render("[Paused]"))
	} else {
		timeFormat := "03:04:05 PM"
		if m.twentyFour {
			timeFormat = "15:04:05"
		}

		end := time.Now().Add(time.Duration(m.snap.Remaining) * time.Second)
		s.WriteString(m.styles.hint.Render("until " + end.Format(timeFormat)))
	}

	s.WriteString("\n\n" + m.styles.secondary.Render(m.truncate(m.snap.Title, 0)))
	s.WriteString("\n\n" + m.styles.main.Render(timeutil.Clock(m.snap.Remaining)))

	var percent float64
	if m.snap.Total > 0 {
		percent = 1 - float64(m.snap.Remaining)/float64(m.snap.Total)
	}

	s.WriteString("\n\n" + m.progress.ViewAs(percent))
	s.WriteString(m.statusView())

	bindings := []key.Binding{defaultKeymap.pause}
	if m.snap.Phase == Focusing {
		bindings = append(bindings, defaultKeymap.finish)
	}

	bindings = append(bindings, defaultKeymap.cancel, defaultKeymap.quit)

	s.WriteString("\n\n" + m.help.ShortHelpView(bindings))

	return s.String()
}

func (m *Model) completedView() string {
	var s strings.Builder

	mins, secs := timeutil.SecsToMinsAndSecs(m.snap.FocusSeconds)

	s.WriteString(m.styles.main.Render("Your focus session is complete"))
	s.WriteString("\n\n" + m.styles.secondary.Render(
		fmt.Sprintf("%dm %02ds on %s", mins, secs, m.truncate(m.snap.Title, 12)),
	))
	s.WriteString("\n\n" + m.note.View())
	s.WriteString(m.statusView())
	s.WriteString("\n\n" + m.help.ShortHelpView([]key.Binding{
		defaultKeymap.save,
		withHelp(defaultKeymap.cancel, "discard"),
	}))

	return s.String()
}

func (m *Model) statusView() string {
	if m.status == "" {
		return ""
	}

	if m.statusErr {
		return "\n\n" + m.styles.errText.Render(m.status)
	}

	return "\n\n" + m.styles.hint.Render(m.status)
}

func withHelp(b key.Binding, desc string) key.Binding {
	b.SetHelp(b.Help().Key, desc)
	return b
}

func (m *Model) View() string {
	var view string

	switch m.snap.Phase {
	case Waiting, Focusing:
		view = m.countdownView()
	case Completed:
		view = m.completedView()
	default:
		view = m.boardView()
	}

	return m.styles.base.Render(view)
}
