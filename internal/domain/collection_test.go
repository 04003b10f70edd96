package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollection_Merge(t *testing.T) {
	testCases := []struct {
		name          string
		pages         [][2][]string
		expectedLines []string
		expectError   bool
	}{
		{
			name: "happy path - names and labels paired by position",
			pages: [][2][]string{
				{{"foo/bar", "baz/qux"}, {"1.1k", "500"}},
			},
			expectedLines: []string{"github.com/foo/bar,1100", "github.com/baz/qux,500"},
		},
		{
			name: "duplicate across pages is stored once",
			pages: [][2][]string{
				{{"foo/bar"}, {"40"}},
				{{"foo/bar"}, {"40"}},
			},
			expectedLines: []string{"github.com/foo/bar,40"},
		},
		{
			name: "first seen star count wins",
			pages: [][2][]string{
				{{"foo/bar"}, {"40"}},
				{{"foo/bar"}, {"41"}},
			},
			expectedLines: []string{"github.com/foo/bar,40"},
		},
		{
			name: "insertion order is kept regardless of star count",
			pages: [][2][]string{
				{{"small/one", "big/one"}, {"45", "2.5k"}},
				{{"mid/one"}, {"600"}},
			},
			expectedLines: []string{"github.com/small/one,45", "github.com/big/one,2500", "github.com/mid/one,600"},
		},
		{
			name: "more names than labels uses the overlapping prefix",
			pages: [][2][]string{
				{{"a/a", "b/b", "c/c"}, {"1", "2"}},
			},
			expectedLines: []string{"github.com/a/a,1", "github.com/b/b,2"},
		},
		{
			name: "more labels than names uses the overlapping prefix",
			pages: [][2][]string{
				{{"a/a"}, {"1", "oops"}},
			},
			expectedLines: []string{"github.com/a/a,1"},
		},
		{
			name: "empty page leaves the collection untouched",
			pages: [][2][]string{
				{nil, nil},
			},
			expectedLines: []string{},
		},
		{
			name: "unparsable label aborts and keeps earlier entries",
			pages: [][2][]string{
				{{"a/a", "b/b", "c/c"}, {"1", "n/a", "3"}},
			},
			expectedLines: []string{"github.com/a/a,1"},
			expectError:   true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCollection(DefaultHostPrefix)
			var err error
			for _, page := range tc.pages {
				if err = c.Merge(page[0], page[1]); err != nil {
					break
				}
			}
			if tc.expectError {
				assert.ErrorIs(t, err, ErrInvalidStarLabel)
			} else {
				require.NoError(t, err)
			}
			if diff := cmp.Diff(tc.expectedLines, c.Lines()); diff != "" {
				t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, len(tc.expectedLines), c.Len())
		})
	}
}

func TestCollection_DuplicateSuppressionIsExact(t *testing.T) {
	c := NewCollection(DefaultHostPrefix)
	require.NoError(t, c.Merge([]string{"Foo/Bar", "foo/bar", "foo/bar "}, []string{"1", "2", "3"}))
	assert.Equal(t, 3, c.Len())
}

func TestCollection_EntriesReturnsCopy(t *testing.T) {
	c := NewCollection("example.org/")
	require.NoError(t, c.Merge([]string{"x/y"}, []string{"2k"}))

	entries := c.Entries()
	entries[0].Stars = 0

	assert.Equal(t, []Entry{{Name: "example.org/x/y", Stars: 2000}}, c.Entries())
	assert.Equal(t, "example.org/", c.Prefix())
}
