// Package testutil loads the shared CSS fixtures under test/fixtures.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// FixtureRoot returns the path to the test fixtures directory
func FixtureRoot() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "test", "fixtures")
}

// LoadCSSFixture loads a CSS fixture file and returns the content
func LoadCSSFixture(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(FixtureRoot(), "css", name)
	data, err := os.ReadFile(path) //nolint:gosec // G304: Test fixture path - test code only
	require.NoError(t, err, "Failed to load CSS fixture: %s", name)
	return string(data)
}

// CSSFixtures lists the names of all CSS fixtures.
func CSSFixtures(t *testing.T) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(FixtureRoot(), "css", "*.css"))
	require.NoError(t, err)
	require.NotEmpty(t, matches, "no CSS fixtures found")
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = filepath.Base(m)
	}
	return names
}
