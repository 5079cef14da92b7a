// Package testutil holds helpers shared by package tests
package testutil

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/ctdp-app/ctdp/internal/osutil"
)

// GoldenTest produces the output to compare and the golden file name.
type GoldenTest interface {
	Output() ([]byte, string)
}

// CompareGoldenFile verifies that the output of an operation matches
// the expected output. A nil output asserts that no golden file exists.
func CompareGoldenFile(t *testing.T, tc GoldenTest) {
	t.Helper()

	if runtime.GOOS == osutil.Windows {
		// TODO: golden files are stored with LF line endings
		t.Skip("skipping golden file test in Windows")
	}

	g := goldie.New(
		t,
		goldie.WithFixtureDir("testdata"),
	)

	output, golden := tc.Output()

	if output != nil {
		g.Assert(t, golden, output)
		return
	}

	f := filepath.Join("testdata", golden+".golden")
	if _, err := os.Stat(f); err == nil || errors.Is(err, os.ErrExist) {
		t.Fatalf("expected no output, but golden file exists: %s", f)
	}
}

// Golden is a GoldenTest with fixed output.
type Golden struct {
	Name string
	Data []byte
}

func (g Golden) Output() ([]byte, string) {
	return g.Data, g.Name
}
