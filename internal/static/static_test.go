package static

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstallWritesMissingFiles(t *testing.T) {
	dir := t.TempDir()

	dest := func(rel string) (string, error) {
		return filepath.Join(dir, "ctdp", rel), nil
	}

	require.NoError(t, installTo(dest))

	b, err := os.ReadFile(filepath.Join(dir, "ctdp", IconName))
	require.NoError(t, err)
	assert.Contains(t, string(b), "<svg")
}

func TestInstallKeepsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, IconName)

	require.NoError(t, os.WriteFile(path, []byte("custom"), 0o600))

	require.NoError(t, installTo(func(rel string) (string, error) {
		return filepath.Join(dir, rel), nil
	}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "custom", string(b))
}
