package examples

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects every value passed to the select callback.
type recorder struct {
	calls []string
}

func (r *recorder) selectFn(v string) { r.calls = append(r.calls, v) }

func renderString(t *testing.T, l *List) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, l.Render().Render(&b))
	return b.String()
}

func TestNewList_RequiresCallback(t *testing.T) {
	l, err := NewList(nil)
	assert.Nil(t, l)
	assert.ErrorIs(t, err, ErrNilSelect)
}

func TestDefaults(t *testing.T) {
	got := Defaults()
	require.Len(t, got, 3)
	assert.Equal(t, "請告訴我展碁國際的公司概況", got[0].Text)
	assert.Equal(t, "展碁國際的核心價值?", got[1].Text)
	assert.Equal(t, "展碁國際的負責人是?", got[2].Text)
	for _, e := range got {
		assert.Equal(t, e.Text, e.Value)
	}

	// Callers get a copy.
	got[0].Value = "changed"
	assert.Equal(t, "請告訴我展碁國際的公司概況", Defaults()[0].Value)
}

func TestList_ItemsFollowCollectionOrder(t *testing.T) {
	rec := &recorder{}
	l, err := NewList(rec.selectFn)
	require.NoError(t, err)

	items := l.Items()
	require.Len(t, items, 3)
	for i, e := range Defaults() {
		assert.Equal(t, i, items[i].Index)
		assert.Equal(t, e.Text, items[i].Text)
	}
	assert.Empty(t, rec.calls, "building items must not select anything")
}

func TestList_ActivateSecondItem(t *testing.T) {
	rec := &recorder{}
	l, err := NewList(rec.selectFn)
	require.NoError(t, err)

	l.Items()[1].Activate()

	assert.Equal(t, []string{"展碁國際的核心價值?"}, rec.calls)
}

func TestList_EachActivationForwardsOnce(t *testing.T) {
	rec := &recorder{}
	entries := NewCollection(
		Entry{Text: "first", Value: "v1"},
		Entry{Text: "second", Value: "v2"},
	)
	l, err := NewList(rec.selectFn, WithEntries(entries))
	require.NoError(t, err)

	items := l.Items()
	items[0].Activate()
	items[1].Activate()
	items[1].Activate()

	assert.Equal(t, []string{"v1", "v2", "v2"}, rec.calls)
}

func TestList_ActivateByIndex(t *testing.T) {
	rec := &recorder{}
	l, err := NewList(rec.selectFn)
	require.NoError(t, err)

	require.NoError(t, l.Activate(2))
	assert.Equal(t, []string{"展碁國際的負責人是?"}, rec.calls)

	assert.ErrorIs(t, l.Activate(3), ErrNoSuchExample)
	assert.ErrorIs(t, l.Activate(-1), ErrNoSuchExample)
	assert.Len(t, rec.calls, 1)
}

func TestList_Render(t *testing.T) {
	l, err := NewList(func(string) {}, WithAction("/x/examples"), WithTarget("#out"))
	require.NoError(t, err)

	html := renderString(t, l)

	assert.True(t, strings.HasPrefix(html, `<ul id="example-list"`))
	assert.Equal(t, 3, strings.Count(html, "<li>"))
	assert.Contains(t, html, `hx-post="/x/examples/0"`)
	assert.Contains(t, html, `hx-post="/x/examples/2"`)
	assert.Contains(t, html, `hx-target="#out"`)

	// Items appear in collection order.
	prev := -1
	for _, e := range Defaults() {
		pos := strings.Index(html, e.Text)
		require.NotEqual(t, -1, pos, "missing %q", e.Text)
		assert.Greater(t, pos, prev)
		prev = pos
	}
}

func TestList_RenderIsIdempotent(t *testing.T) {
	rec := &recorder{}
	l, err := NewList(rec.selectFn)
	require.NoError(t, err)

	first := renderString(t, l)
	l.Items()[0].Activate()
	second := renderString(t, l)

	assert.Equal(t, first, second)
}

func TestList_RenderEscapesText(t *testing.T) {
	l, err := NewList(func(string) {}, WithEntries(NewCollection(NewEntry("<b>bold</b>"))))
	require.NoError(t, err)

	html := renderString(t, l)
	assert.Contains(t, html, "&lt;b&gt;bold&lt;/b&gt;")
	assert.NotContains(t, html, "<b>")
}

func TestCollection_All(t *testing.T) {
	c := NewCollection(NewEntry("a"), NewEntry("b"), NewEntry("c"))

	var got []string
	for _, e := range c.All() {
		got = append(got, e.Value)
		if e.Value == "b" {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, got)

	_, ok := c.At(3)
	assert.False(t, ok)
}
