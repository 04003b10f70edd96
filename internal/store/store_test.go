package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-harvest/internal/domain"
)

func TestAppendLines(t *testing.T) {
	testCases := []struct {
		name     string
		existing string
		lines    []string
		expected string
	}{
		{
			name:     "new file gets one line per entry in order",
			lines:    []string{"github.com/foo/bar,1100", "github.com/baz/qux,500"},
			expected: "github.com/foo/bar,1100\ngithub.com/baz/qux,500\n",
		},
		{
			name:     "existing content is preserved",
			existing: "github.com/old/one,42\n",
			lines:    []string{"github.com/new/one,7"},
			expected: "github.com/old/one,42\ngithub.com/new/one,7\n",
		},
		{
			name:     "empty collection leaves file unchanged",
			existing: "github.com/old/one,42\n",
			expected: "github.com/old/one,42\n",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "repos.csv")
			if tc.existing != "" {
				require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
				require.NoError(t, os.WriteFile(path, []byte(tc.existing), 0o644))
			}

			require.NoError(t, AppendLines(path, tc.lines))

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, string(got))
		})
	}
}

func TestReadEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repos.csv")
	require.NoError(t, AppendLines(path, []string{"github.com/foo/bar,1100", "", "github.com/baz/qux,500"}))

	entries, err := ReadEntries(path)
	require.NoError(t, err)
	assert.Equal(t, []domain.Entry{
		{Name: "github.com/foo/bar", Stars: 1100},
		{Name: "github.com/baz/qux", Stars: 500},
	}, entries)
}

func TestReadEntries_LongLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repos.csv")
	name := "github.com/" + strings.Repeat("a", 100<<10)
	require.NoError(t, AppendLines(path, []string{name + ",7", "github.com/baz/qux,500"}))

	entries, err := ReadEntries(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.Entry{Name: name, Stars: 7}, entries[0])
}

func TestReadEntries_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := ReadEntries(filepath.Join(t.TempDir(), "absent.csv"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
	t.Run("malformed line reports its number", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "repos.csv")
		require.NoError(t, os.WriteFile(path, []byte("github.com/a/b,1\nbroken\n"), 0o644))
		_, err := ReadEntries(path)
		assert.ErrorIs(t, err, domain.ErrMalformedEntry)
		assert.Contains(t, err.Error(), "line 2")
	})
}

func TestWriteScreenshot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "gul")

	path, err := WriteScreenshot(dir, 0, []byte("first"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "0.png"), path)

	_, err = WriteScreenshot(dir, 0, []byte("second"))
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))
}
