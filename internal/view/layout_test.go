package view

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

func renderNode(t *testing.T, n g.Node) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, n.Render(&b))
	return b.String()
}

func TestPage(t *testing.T) {
	html := renderNode(t, Page("Ask", FlashData{Error: []string{"oops"}}, h.P(g.Text("body"))))

	assert.Contains(t, html, "<title>Ask - askby</title>")
	assert.Contains(t, html, `lang="zh-TW"`)
	assert.Contains(t, html, htmxSrc)
	assert.Contains(t, html, "<p>body</p>")
	assert.Contains(t, html, "oops")
	assert.Less(t, strings.Index(html, "oops"), strings.Index(html, "<p>body</p>"))
}

func TestFlashes_Empty(t *testing.T) {
	assert.Nil(t, Flashes(FlashData{}))
}

func TestPageTitle(t *testing.T) {
	assert.Equal(t, "askby", PageTitle(""))
	assert.Equal(t, "Home - askby", PageTitle("Home"))
}
