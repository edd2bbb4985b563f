// Package orders implements the order-entry state machine and the in-session
// trade log. Orders are simulated: committing one mutates the portfolio and
// nothing else.
package orders

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tickerdeck/internal/catalog"
	"tickerdeck/internal/modules/portfolio"
)

// MaxAmount is the upper bound the entry form enforces on order size.
const MaxAmount = 5.0

// Side is the order direction.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// ParseSide validates a side string.
func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case SideBuy, SideSell:
		return Side(s), nil
	default:
		return "", fmt.Errorf("invalid order side: %q", s)
	}
}

// State is the order-entry lifecycle state.
type State string

const (
	// StateEditing is the initial state; draft fields are mutable.
	StateEditing State = "editing"

	// StateConfirming means the confirmation step is showing; the draft is
	// frozen until committed or cancelled.
	StateConfirming State = "confirming"

	// StateCommitted is terminal for a single order; the intake must be
	// reset before the next one.
	StateCommitted State = "committed"
)

var (
	ErrNotEditing    = errors.New("order draft is not editable in this state")
	ErrNotConfirming = errors.New("no order is awaiting confirmation")
	ErrUnknownSymbol = errors.New("symbol is not in the asset catalog")
	ErrAmountRange   = fmt.Errorf("amount must be between 0 and %v", MaxAmount)
	ErrNegativeLimit = errors.New("limit price must be non-negative")
)

// Draft holds the mutable order-entry fields.
type Draft struct {
	Side       Side    `json:"side"`
	Symbol     string  `json:"symbol"`
	Amount     float64 `json:"amount"`
	LimitPrice float64 `json:"limit_price"`
}

// Trade records a committed order.
type Trade struct {
	ID         string    `json:"id"`
	Side       Side      `json:"side"`
	Symbol     string    `json:"symbol"`
	Amount     float64   `json:"amount"`
	LimitPrice float64   `json:"limit_price"`
	// Applied is false when a sell targeted a symbol with no holding and was
	// silently dropped.
	Applied     bool      `json:"applied"`
	CommittedAt time.Time `json:"committed_at"`
}

// Intake is the order-entry state machine: Editing -> Confirming ->
// Committed, with Cancel returning from Confirming to Editing. Not safe for
// concurrent use; the dashboard session serializes access.
type Intake struct {
	cat   *catalog.Catalog
	state State
	draft Draft
}

// NewIntake creates an intake in the editing state with a default draft on
// the first catalog asset.
func NewIntake(cat *catalog.Catalog) *Intake {
	return &Intake{
		cat:   cat,
		state: StateEditing,
		draft: defaultDraft(cat),
	}
}

func defaultDraft(cat *catalog.Catalog) Draft {
	symbol := ""
	if assets := cat.Assets(); len(assets) > 0 {
		symbol = assets[0].Symbol
	}
	return Draft{Side: SideBuy, Symbol: symbol}
}

// State returns the current lifecycle state.
func (in *Intake) State() State {
	return in.state
}

// Draft returns the current draft fields.
func (in *Intake) Draft() Draft {
	return in.draft
}

// UpdateDraft replaces the draft fields. Only legal while editing; the field
// constraints the form enforces are validated here.
func (in *Intake) UpdateDraft(d Draft) error {
	if in.state != StateEditing {
		return ErrNotEditing
	}
	if _, err := ParseSide(string(d.Side)); err != nil {
		return err
	}
	if !in.cat.Has(d.Symbol) {
		return ErrUnknownSymbol
	}
	if d.Amount < 0 || d.Amount > MaxAmount {
		return ErrAmountRange
	}
	if d.LimitPrice < 0 {
		return ErrNegativeLimit
	}

	in.draft = d
	return nil
}

// OpenConfirmation freezes the draft and moves to the confirming state. The
// draft was validated field by field while editing, so no further checks
// apply here.
func (in *Intake) OpenConfirmation() error {
	if in.state != StateEditing {
		return ErrNotEditing
	}
	in.state = StateConfirming
	return nil
}

// Cancel abandons the confirmation step and returns to editing. No portfolio
// state is touched; the draft is preserved for further edits.
func (in *Intake) Cancel() error {
	if in.state != StateConfirming {
		return ErrNotConfirming
	}
	in.state = StateEditing
	return nil
}

// Commit applies the confirmed order to the portfolio and returns the trade
// record. The state leaves Confirming before the portfolio is touched, so a
// commit fires exactly once per confirmed order; a second call fails with
// ErrNotConfirming.
func (in *Intake) Commit(p *portfolio.Portfolio) (Trade, error) {
	if in.state != StateConfirming {
		return Trade{}, ErrNotConfirming
	}
	in.state = StateCommitted

	d := in.draft
	applied := true
	switch d.Side {
	case SideBuy:
		p.ApplyBuy(d.Symbol, d.Amount, d.LimitPrice)
	case SideSell:
		applied = p.ApplySell(d.Symbol, d.Amount)
	}

	return Trade{
		ID:          uuid.NewString(),
		Side:        d.Side,
		Symbol:      d.Symbol,
		Amount:      d.Amount,
		LimitPrice:  d.LimitPrice,
		Applied:     applied,
		CommittedAt: time.Now().UTC(),
	}, nil
}

// Reset returns a committed intake to the editing state with a fresh default
// draft, ready for the next order.
func (in *Intake) Reset() {
	in.state = StateEditing
	in.draft = defaultDraft(in.cat)
}

// TradeLog is the append-only record of committed orders for the session.
type TradeLog struct {
	trades []Trade
}

// Record appends a trade to the log.
func (l *TradeLog) Record(t Trade) {
	l.trades = append(l.trades, t)
}

// All returns a copy of the recorded trades, oldest first.
func (l *TradeLog) All() []Trade {
	out := make([]Trade, len(l.trades))
	copy(out, l.trades)
	return out
}

// Len returns the number of recorded trades.
func (l *TradeLog) Len() int {
	return len(l.trades)
}
