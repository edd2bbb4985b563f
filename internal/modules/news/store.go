// Package news holds the append-only news feed backing the news widget. Items
// are locally generated placeholders; a real feed would append through the
// same store.
package news

import "fmt"

const (
	// CompactLimit is how many items the compact widget view shows.
	CompactLimit = 6

	// LoadMoreBatch is how many items each "load more" request appends.
	LoadMoreBatch = 5

	// freshLabel is the timestamp label stamped on newly appended items.
	freshLabel = "just now"

	placeholderBody = "Details are still coming in. Analysts expect continued " +
		"volatility across the major pairs while volume stays elevated."
)

// Item is a single news entry. IDs increase monotonically and are never
// reused.
type Item struct {
	ID             int    `json:"id"`
	Title          string `json:"title"`
	TimestampLabel string `json:"timestamp_label"`
	Body           string `json:"body"`
}

// Store is the append-only news feed. Items are never evicted; unbounded
// growth over a session is an accepted characteristic of the mock feed.
type Store struct {
	items  []Item
	nextID int
}

// NewStore creates an empty news store.
func NewStore() *Store {
	return &Store{}
}

// AppendBatch appends n freshly generated items and returns them. IDs
// continue from the store's counter; labels are always "just now".
func (s *Store) AppendBatch(n int) []Item {
	if n <= 0 {
		return nil
	}

	added := make([]Item, 0, n)
	for i := 0; i < n; i++ {
		item := Item{
			ID:             s.nextID,
			Title:          fmt.Sprintf("Market update #%d", s.nextID+1),
			TimestampLabel: freshLabel,
			Body:           placeholderBody,
		}
		s.nextID++
		s.items = append(s.items, item)
		added = append(added, item)
	}
	return added
}

// Visible returns the first min(limit, len) items for the compact display.
func (s *Store) Visible(limit int) []Item {
	if limit < 0 {
		limit = 0
	}
	if limit > len(s.items) {
		limit = len(s.items)
	}
	out := make([]Item, limit)
	copy(out, s.items[:limit])
	return out
}

// All returns a copy of every item, oldest first.
func (s *Store) All() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of items in the store.
func (s *Store) Len() int {
	return len(s.items)
}
