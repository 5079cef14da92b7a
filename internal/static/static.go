// Package static embeds the notification assets and copies them to the data
// directory
package static

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/ctdp-app/ctdp/internal/osutil"
	"github.com/ctdp-app/ctdp/internal/pathutil"
)

const (
	filesDir = "files"

	// IconName is the file name of the notification icon.
	IconName = "icon.svg"
)

//go:embed files/*
var embeddedFiles embed.FS

// Install writes every embedded file under the data directory. Existing
// files are left alone so that users can replace them.
func Install() error {
	return installTo(func(rel string) (string, error) {
		return xdg.DataFile(filepath.Join(pathutil.Dir(), rel))
	})
}

func installTo(dest func(rel string) (string, error)) error {
	return fs.WalkDir(
		embeddedFiles,
		filesDir,
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				return nil
			}

			b, err := embeddedFiles.ReadFile(path)
			if err != nil {
				return err
			}

			// embed paths always use forward slashes
			stripped := strings.TrimPrefix(path, filesDir+"/")

			destPath, err := dest(stripped)
			if err != nil {
				return err
			}

			if _, err := os.Stat(destPath); os.IsNotExist(err) {
				if err := osutil.EnsureParentDir(destPath); err != nil {
					return err
				}

				if err := os.WriteFile(destPath, b, osutil.FilePermission); err != nil {
					return err
				}
			}

			return nil
		},
	)
}
