// Package osutil holds platform constants shared by the filesystem users
package osutil

import (
	"io/fs"
	"os"
	"path/filepath"
)

const Windows = "windows"

type ExitCode int

const (
	ExitOK    ExitCode = 0
	ExitError ExitCode = 1
)

const (
	DirPermission  fs.FileMode = 0o755
	FilePermission fs.FileMode = 0o600
)

// EnsureParentDir creates the directory that will hold path.
func EnsureParentDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), DirPermission)
}
