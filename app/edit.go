package app

import (
	"os"
	"os/exec"
	"runtime"

	"github.com/urfave/cli/v2"

	"github.com/ctdp-app/ctdp/internal/osutil"
	"github.com/ctdp-app/ctdp/internal/pathutil"
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

func editor() string {
	defaultEditor := "nano"

	if runtime.GOOS == osutil.Windows {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	return firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)
}

// editConfigAction opens the config file in the user's default text editor.
func editConfigAction(ctx *cli.Context) error {
	cmd := exec.CommandContext(ctx.Context, editor(), pathutil.ConfigFilePath())

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}
