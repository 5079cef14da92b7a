package hook

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunEmptyCommand(t *testing.T) {
	assert.NoError(t, Runner{}.Run(context.Background(), Event{}))
}

func TestRunUnbalancedQuotes(t *testing.T) {
	err := Runner{Cmd: `echo "unterminated`}.Run(context.Background(), Event{})
	assert.ErrorIs(t, err, errParseCmd)
}

func TestRunExportsSessionEnv(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	out := filepath.Join(t.TempDir(), "out.txt")

	r := Runner{Cmd: `sh -c 'printf "%s|%s" "$CTDP_SESSION_TITLE" "$CTDP_FOCUS_SECONDS" > "$0"' ` + out}

	err := r.Run(context.Background(), Event{Title: "Write report", FocusSeconds: 120})
	require.NoError(t, err)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Write report|120", string(b))
}

func TestNotifyCompleted(t *testing.T) {
	var gotTitle, gotMsg string

	orig := notify
	t.Cleanup(func() { notify = orig })

	notify = func(title, msg, _ string) error {
		gotTitle, gotMsg = title, msg
		return nil
	}

	require.NoError(t, Runner{}.NotifyCompleted(Event{Title: "x"}))
	assert.Empty(t, gotTitle)

	require.NoError(t, Runner{Notify: true}.NotifyCompleted(Event{Title: "Write report", FocusSeconds: 1500}))
	assert.Equal(t, "Focus session complete", gotTitle)
	assert.Equal(t, "Write report: 25 min focused", gotMsg)
}
