// Package hook runs the side effects that follow a saved focus session: the
// user's post-session command and a desktop notification.
package hook

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/adrg/xdg"
	"github.com/gen2brain/beeep"
	"github.com/kballard/go-shellquote"

	"github.com/ctdp-app/ctdp/internal/apperr"
)

var errParseCmd = &apperr.Error{
	Message: "unable to parse settings.cmd option",
	Kind:    apperr.Validation,
}

// notify is swapped out in tests.
var notify = func(title, msg, icon string) error {
	return beeep.Notify(title, msg, icon)
}

// Event describes a finished session.
type Event struct {
	Title        string
	Note         string
	FocusSeconds int
	WaitSeconds  int
}

// Env returns the variables exported to the post-session command.
func (e Event) Env() []string {
	return []string{
		"CTDP_SESSION_TITLE=" + e.Title,
		"CTDP_SESSION_NOTE=" + e.Note,
		"CTDP_FOCUS_SECONDS=" + strconv.Itoa(e.FocusSeconds),
		"CTDP_WAIT_SECONDS=" + strconv.Itoa(e.WaitSeconds),
	}
}

// Runner holds the configured side effects.
type Runner struct {
	Cmd    string
	Notify bool
}

// Run executes the post-session command, if any. The command line is split
// with shell quoting rules but is not run through a shell.
func (r Runner) Run(ctx context.Context, e Event) error {
	if r.Cmd == "" {
		return nil
	}

	cmdSlice, err := shellquote.Split(r.Cmd)
	if err != nil {
		return errParseCmd.Wrap(err)
	}

	if len(cmdSlice) == 0 {
		return nil
	}

	cmd := exec.CommandContext(ctx, cmdSlice[0], cmdSlice[1:]...)
	cmd.Env = append(os.Environ(), e.Env()...)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running session command: %w", err)
	}

	return nil
}

// NotifyCompleted shows a desktop notification for a completed focus phase.
func (r Runner) NotifyCompleted(e Event) error {
	if !r.Notify {
		return nil
	}

	// pathToIcon will be an empty string if file is not found
	pathToIcon, _ := xdg.SearchDataFile(filepath.Join("ctdp", "icon.svg"))

	msg := fmt.Sprintf("%s: %d min focused", e.Title, (e.FocusSeconds+30)/60)

	return notify("Focus session complete", msg, pathToIcon)
}
