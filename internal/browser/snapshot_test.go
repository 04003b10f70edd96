package browser

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultsPage = `<html><body>
<ul class="repo-list">
  <li><a class="v-align-middle" href="/foo/bar">foo/bar</a>
      <a class="Link--muted" href="/foo/bar/stargazers"> 1.1k </a></li>
  <li><a class="v-align-middle" href="/baz/qux">baz/qux</a>
      <a class="Link--muted" href="/baz/qux/stargazers">500</a></li>
  <li><a class="v-align-middle extra" href="/not/matched">not/matched</a></li>
  <li><a class="v-align-middle" href="/nested/repo">
        nested/<em>repo</em>
      </a>
      <a class="Link--muted" href="/nested/repo/stargazers">
        2k
      </a></li>
</ul>
</body></html>`

func TestSnapshot_Texts(t *testing.T) {
	snap, err := NewSnapshot(strings.NewReader(resultsPage))
	require.NoError(t, err)

	testCases := []struct {
		name     string
		selector string
		expected []string
	}{
		{name: "exact class match on names", selector: "[class='v-align-middle']", expected: []string{"foo/bar", "baz/qux", "nested/repo"}},
		{name: "star labels are trimmed", selector: "[class='Link--muted']", expected: []string{"1.1k", "500", "2k"}},
		{name: "no match yields empty slice", selector: "#missing", expected: []string{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			texts, err := snap.Texts(context.Background(), tc.selector)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, texts)
		})
	}
}

func TestLocator_String(t *testing.T) {
	assert.Equal(t, "id=login_field", ID("login_field").String())
	assert.Equal(t, "name=commit", Name("commit").String())
	assert.Equal(t, `link="Sign in"`, LinkText("Sign in").String())
	assert.Equal(t, "xpath=//span[text()='Best match']", XPath("//span[text()='Best match']").String())
	assert.Equal(t, "css=#face", CSS("#face").String())
}
