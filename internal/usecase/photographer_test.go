package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/naka-gawa/github-harvest/internal/browser"
)

func TestPhotographer_Run(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "gul")
	driver := &fakeDriver{}
	opts := FacesOptions{URL: "https://thispersondoesnotexist.com/", Selector: "#face", Dir: dir, Count: 3}

	paths, err := NewPhotographer(driver, opts, zap.NewNop()).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "0.png"),
		filepath.Join(dir, "1.png"),
		filepath.Join(dir, "2.png"),
	}, paths)
	for i, path := range paths {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, []byte{'p', 'n', 'g', '-', byte('1' + i)}, data)
	}

	expected := []string{
		"navigate https://thispersondoesnotexist.com/",
		"maximize",
		"screenshot css=#face", "reload",
		"screenshot css=#face", "reload",
		"screenshot css=#face", "reload",
	}
	if diff := cmp.Diff(expected, driver.steps); diff != "" {
		t.Errorf("steps mismatch (-want +got):\n%s", diff)
	}
}

func TestPhotographer_RunStopsOnMissingElement(t *testing.T) {
	dir := t.TempDir()
	driver := &fakeDriver{failOn: "screenshot css=#face"}
	opts := FacesOptions{URL: "https://example.com/", Selector: "#face", Dir: dir, Count: 4}

	paths, err := NewPhotographer(driver, opts, zap.NewNop()).Run(context.Background())
	assert.ErrorIs(t, err, browser.ErrElementTimeout)
	assert.Empty(t, paths)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPhotographer_RunRejectsNegativeCount(t *testing.T) {
	dir := t.TempDir()
	driver := &fakeDriver{}
	opts := FacesOptions{URL: "https://example.com/", Selector: "#face", Dir: dir, Count: -1}

	paths, err := NewPhotographer(driver, opts, zap.NewNop()).Run(context.Background())
	assert.ErrorIs(t, err, ErrInvalidCount)
	assert.Nil(t, paths)
	assert.Empty(t, driver.steps)
}
