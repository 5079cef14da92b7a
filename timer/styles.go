package timer

import "github.com/charmbracelet/lipgloss"

const (
	padding  = 2
	maxWidth = 80
)

type styles struct {
	base      lipgloss.Style
	main      lipgloss.Style
	secondary lipgloss.Style
	hint      lipgloss.Style
	waiting   lipgloss.Style
	focusing  lipgloss.Style
	selected  lipgloss.Style
	done      lipgloss.Style
	errText   lipgloss.Style
}

func newStyles(dark bool) styles {
	accent := lipgloss.Color("#6C63FF")
	fg := lipgloss.Color("#1A1B26")
	muted := lipgloss.Color("#666666")

	if dark {
		accent = lipgloss.Color("#7AA2F7")
		fg = lipgloss.Color("#C0CAF5")
		muted = lipgloss.Color("#565F89")
	}

	label := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		MarginRight(1).
		Foreground(lipgloss.Color("#FFFFFF"))

	return styles{
		base:      lipgloss.NewStyle().Padding(1, padding),
		main:      lipgloss.NewStyle().Bold(true).Foreground(fg),
		secondary: lipgloss.NewStyle().Foreground(accent),
		hint:      lipgloss.NewStyle().Foreground(muted),
		waiting:   label.Background(lipgloss.Color("#F39C12")).SetString("GET READY"),
		focusing:  label.Background(lipgloss.Color("#2ECC71")).SetString("FOCUS"),
		selected:  lipgloss.NewStyle().Foreground(accent).Bold(true),
		done:      lipgloss.NewStyle().Foreground(muted).Strikethrough(true),
		errText:   lipgloss.NewStyle().Foreground(lipgloss.Color("#E74C3C")),
	}
}
