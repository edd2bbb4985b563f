// Package layout models the ordered arrangement of dashboard widgets and the
// drag-and-drop reorder operation.
package layout

import "strconv"

// WidgetID identifies a dashboard widget. The set of widgets is fixed; a
// layout is a permutation of it.
type WidgetID string

const (
	WidgetCharts    WidgetID = "charts"
	WidgetOrders    WidgetID = "orders"
	WidgetPortfolio WidgetID = "portfolio"
	WidgetNews      WidgetID = "news"
)

// Layout is an ordered sequence of widget ids with no duplicates.
type Layout []WidgetID

// Default returns the initial widget arrangement.
func Default() Layout {
	return Layout{WidgetCharts, WidgetOrders, WidgetPortfolio, WidgetNews}
}

// Move removes the widget at from and inserts it at to in the post-removal
// sequence (splice-out, splice-in). When to > from the effective final
// position therefore differs by one from to in the original sequence; that is
// the intended reorder convention, not an off-by-one. An out-of-range from is
// a silent no-op; to is clamped into range. Move never mutates its input.
func Move(l Layout, from, to int) Layout {
	if from < 0 || from >= len(l) {
		return l
	}

	moved := l[from]
	rest := make(Layout, 0, len(l))
	rest = append(rest, l[:from]...)
	rest = append(rest, l[from+1:]...)

	if to < 0 {
		to = 0
	}
	if to > len(rest) {
		to = len(rest)
	}

	out := make(Layout, 0, len(l))
	out = append(out, rest[:to]...)
	out = append(out, moved)
	out = append(out, rest[to:]...)
	return out
}

// MoveFromPayload applies Move with a source index carried as a drag payload
// string. A non-numeric payload is a silent no-op, matching the behavior for
// an out-of-range source.
func MoveFromPayload(l Layout, payload string, to int) Layout {
	from, err := strconv.Atoi(payload)
	if err != nil {
		return l
	}
	return Move(l, from, to)
}

// Strings returns the layout as plain strings for view models and events.
func (l Layout) Strings() []string {
	out := make([]string, len(l))
	for i, id := range l {
		out[i] = string(id)
	}
	return out
}
