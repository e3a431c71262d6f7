package examples

import (
	"errors"
	"strconv"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	h "maragu.dev/gomponents/html"
)

var (
	// ErrNilSelect is returned when a List is built without a callback.
	ErrNilSelect = errors.New("examples: select callback is required")
	// ErrNoSuchExample is returned when activating an index outside the list.
	ErrNoSuchExample = errors.New("examples: no example at index")
)

// SelectFunc receives the value of the example the user picked.
type SelectFunc func(value string)

const (
	defaultAction = "/ask/examples"
	defaultTarget = "#answer"
)

// List renders a Collection as clickable items and forwards activations to
// its SelectFunc. It holds no mutable state, so it is safe to render from
// several goroutines.
type List struct {
	entries  Collection
	onSelect SelectFunc
	action   string
	target   string
}

// Option configures a List.
type Option func(*List)

// WithEntries replaces the default collection.
func WithEntries(c Collection) Option {
	return func(l *List) { l.entries = c }
}

// WithAction sets the URL prefix each item posts to. The item index is
// appended as the last path segment.
func WithAction(action string) Option {
	return func(l *List) { l.action = action }
}

// WithTarget sets the htmx target that receives the response to a click.
func WithTarget(selector string) Option {
	return func(l *List) { l.target = selector }
}

// NewList builds a list over the default collection.
func NewList(onSelect SelectFunc, opts ...Option) (*List, error) {
	if onSelect == nil {
		return nil, ErrNilSelect
	}
	l := &List{
		entries:  Default(),
		onSelect: onSelect,
		action:   defaultAction,
		target:   defaultTarget,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Item is one selectable row of a rendered List.
type Item struct {
	Index int
	Text  string

	value    string
	onSelect SelectFunc
}

// Activate forwards the item's value to the list callback, once per call.
func (it Item) Activate() {
	it.onSelect(it.value)
}

// Items returns one Item per entry, in collection order.
func (l *List) Items() []Item {
	items := make([]Item, 0, l.entries.Len())
	for i, e := range l.entries.All() {
		items = append(items, Item{Index: i, Text: e.Text, value: e.Value, onSelect: l.onSelect})
	}
	return items
}

// Activate activates the item at index i.
func (l *List) Activate(i int) error {
	e, ok := l.entries.At(i)
	if !ok {
		return ErrNoSuchExample
	}
	l.onSelect(e.Value)
	return nil
}

// Render returns the list as an htmx-enabled <ul>.
func (l *List) Render() g.Node {
	items := l.Items()
	nodes := make([]g.Node, 0, len(items))
	for _, it := range items {
		nodes = append(nodes, l.renderItem(it))
	}
	return h.Ul(
		h.ID("example-list"),
		h.Class("grid gap-4 sm:grid-cols-3"),
		g.Group(nodes),
	)
}

func (l *List) renderItem(it Item) g.Node {
	idx := strconv.Itoa(it.Index)
	return h.Li(
		h.Button(
			h.Type("button"),
			h.Class("w-full rounded-lg bg-gray-100 p-4 text-left hover:bg-indigo-50"),
			h.Data("index", idx),
			hx.Post(l.action+"/"+idx),
			hx.Target(l.target),
			hx.Swap("innerHTML"),
			g.Text(it.Text),
		),
	)
}
