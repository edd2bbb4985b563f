// Package events provides the in-process event bus that decouples the state
// engine from its consumers. Every mutation of dashboard state publishes a
// typed event; renderers and stream handlers subscribe instead of polling.
package events

import "time"

// EventType identifies a category of dashboard event
type EventType string

const (
	// SeriesAdvanced fires when the synthetic price series gains a point.
	SeriesAdvanced EventType = "series_advanced"

	// PortfolioRevalued fires when holdings receive fresh simulated prices.
	PortfolioRevalued EventType = "portfolio_revalued"

	// OrderCommitted fires when a confirmed order is applied to the portfolio.
	OrderCommitted EventType = "order_committed"

	// LayoutChanged fires when a widget is moved to a new position.
	LayoutChanged EventType = "layout_changed"

	// NewsAppended fires when new items are added to the news feed.
	NewsAppended EventType = "news_appended"

	// StateChanged fires on every mutation, carrying the new revision. It is
	// the coarse-grained "re-render now" signal for the presentation layer.
	StateChanged EventType = "state_changed"
)

// AllTypes lists every event type, for stream subscribers that want the
// whole firehose.
func AllTypes() []EventType {
	return []EventType{
		SeriesAdvanced,
		PortfolioRevalued,
		OrderCommitted,
		LayoutChanged,
		NewsAppended,
		StateChanged,
	}
}

// Event is a published event instance
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      EventData `json:"data,omitempty"`
}

// EventData is the interface that all event data types must implement
type EventData interface {
	// EventType returns the event type this data is associated with
	EventType() EventType
}

// SeriesAdvancedData contains data for SeriesAdvanced events
type SeriesAdvancedData struct {
	Time      int     `json:"time"`
	Price     float64 `json:"price"`
	Volume    int     `json:"volume"`
	Evicted   bool    `json:"evicted"`
	SeriesLen int     `json:"series_len"`
}

// EventType returns the event type for SeriesAdvancedData
func (d *SeriesAdvancedData) EventType() EventType { return SeriesAdvanced }

// PortfolioRevaluedData contains data for PortfolioRevalued events
type PortfolioRevaluedData struct {
	Holdings   int     `json:"holdings"`
	TotalValue float64 `json:"total_value"`
}

// EventType returns the event type for PortfolioRevaluedData
func (d *PortfolioRevaluedData) EventType() EventType { return PortfolioRevalued }

// OrderCommittedData contains data for OrderCommitted events
type OrderCommittedData struct {
	OrderID    string  `json:"order_id"`
	Side       string  `json:"side"`
	Symbol     string  `json:"symbol"`
	Amount     float64 `json:"amount"`
	LimitPrice float64 `json:"limit_price"`
}

// EventType returns the event type for OrderCommittedData
func (d *OrderCommittedData) EventType() EventType { return OrderCommitted }

// LayoutChangedData contains data for LayoutChanged events
type LayoutChangedData struct {
	From    int      `json:"from"`
	To      int      `json:"to"`
	Widgets []string `json:"widgets"`
}

// EventType returns the event type for LayoutChangedData
func (d *LayoutChangedData) EventType() EventType { return LayoutChanged }

// NewsAppendedData contains data for NewsAppended events
type NewsAppendedData struct {
	Added int `json:"added"`
	Total int `json:"total"`
}

// EventType returns the event type for NewsAppendedData
func (d *NewsAppendedData) EventType() EventType { return NewsAppended }

// StateChangedData contains data for StateChanged events
type StateChangedData struct {
	Revision uint64 `json:"revision"`
}

// EventType returns the event type for StateChangedData
func (d *StateChangedData) EventType() EventType { return StateChanged }
