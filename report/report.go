// Package report prints command outcomes and failures to the console
package report

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pterm/pterm"

	"github.com/ctdp-app/ctdp/internal/apperr"
)

const signInHint = "sign in required: set user.id in the config file or the CTDP_USER environment variable"

func Success(format string, args ...any) {
	pterm.Success.Printfln(format, args...)
}

func Info(format string, args ...any) {
	pterm.Info.Printfln(format, args...)
}

// Error prints err with a hint that depends on its kind. Unauthorized errors
// are never presented as retryable.
func Error(err error) {
	if err == nil {
		return
	}

	pterm.Error.Println(err)

	if hint := Hint(err); hint != "" {
		pterm.Info.Println(hint)
	}
}

// Hint returns the follow-up advice shown under an error.
func Hint(err error) string {
	switch apperr.KindOf(err) {
	case apperr.Unauthorized:
		return signInHint
	case apperr.Persistence:
		return "the storage backend failed; try again"
	default:
		return ""
	}
}

func Fatal(err error) tea.Cmd {
	pterm.Error.Println(err)
	return tea.Quit
}

func Quit(err error) {
	Error(err)
	os.Exit(1)
}
