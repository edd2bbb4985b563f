// Package portfolio holds the in-memory portfolio aggregate: holdings keyed
// by symbol, their simulated valuation, and the derived chart projections.
package portfolio

import (
	"math"
	"math/rand"

	"tickerdeck/internal/catalog"
)

// revaluePct bounds each simulated revaluation to ±3% of average cost.
const revaluePct = 0.03

// Holding is a single asset position.
type Holding struct {
	Symbol      string   `json:"symbol"`
	Quantity    float64  `json:"quantity"`
	AverageCost float64  `json:"average_cost"`
	// CurrentPrice is nil until the first valuation tick.
	CurrentPrice *float64 `json:"current_price,omitempty"`
}

// EffectivePrice is the price a holding is valued at: the latest simulated
// price when present, otherwise the average cost.
func (h Holding) EffectivePrice() float64 {
	if h.CurrentPrice != nil {
		return *h.CurrentPrice
	}
	return h.AverageCost
}

// MarketValue is the holding's contribution to total portfolio value.
func (h Holding) MarketValue() float64 {
	return h.Quantity * h.EffectivePrice()
}

// UnrealizedPL is the holding's unrealized profit or loss.
func (h Holding) UnrealizedPL() float64 {
	return (h.EffectivePrice() - h.AverageCost) * h.Quantity
}

// UnrealizedPLPercent is the unrealized profit or loss relative to cost
// basis. A zero-cost holding has no meaningful percentage and reports 0.
func (h Holding) UnrealizedPLPercent() float64 {
	basis := h.AverageCost * h.Quantity
	if basis == 0 {
		return 0
	}
	return h.UnrealizedPL() / basis * 100
}

// PieSlice is one wedge of the allocation chart.
type PieSlice struct {
	Symbol string  `json:"symbol"`
	Value  float64 `json:"value"`
	Color  string  `json:"color"`
}

// Portfolio owns the holdings in insertion order. Symbols are unique;
// holdings are never removed, even at zero quantity. The portfolio is not
// safe for concurrent use on its own — the dashboard session serializes all
// access.
type Portfolio struct {
	holdings []Holding
	index    map[string]int

	// version bumps on every mutation; derived projections memoize on it.
	version uint64

	pieCache   []PieSlice
	pieVersion uint64
	pieValid   bool
}

// New creates a portfolio seeded with the given holdings. Average costs are
// clamped at zero on construction, matching the price non-negativity policy.
func New(initial []Holding) *Portfolio {
	p := &Portfolio{index: make(map[string]int)}
	for _, h := range initial {
		if _, exists := p.index[h.Symbol]; exists {
			continue
		}
		h.Quantity = math.Max(0, h.Quantity)
		h.AverageCost = math.Max(0, h.AverageCost)
		p.index[h.Symbol] = len(p.holdings)
		p.holdings = append(p.holdings, h)
	}
	return p
}

// Holdings returns a copy of the holdings in insertion order.
func (p *Portfolio) Holdings() []Holding {
	out := make([]Holding, len(p.holdings))
	copy(out, p.holdings)
	return out
}

// Lookup returns the holding for a symbol.
func (p *Portfolio) Lookup(symbol string) (Holding, bool) {
	i, ok := p.index[symbol]
	if !ok {
		return Holding{}, false
	}
	return p.holdings[i], true
}

// Version returns the mutation counter. It changes whenever holdings change.
func (p *Portfolio) Version() uint64 {
	return p.version
}

// ApplyBuy adds amount to an existing holding, or creates a new one priced at
// the order's limit price (clamped at zero).
func (p *Portfolio) ApplyBuy(symbol string, amount, limitPrice float64) {
	if i, ok := p.index[symbol]; ok {
		p.holdings[i].Quantity += amount
	} else {
		p.index[symbol] = len(p.holdings)
		p.holdings = append(p.holdings, Holding{
			Symbol:      symbol,
			Quantity:    amount,
			AverageCost: math.Max(0, limitPrice),
		})
	}
	p.version++
}

// ApplySell reduces a holding's quantity, clamped at zero. Selling a symbol
// with no holding is a silent no-op (the holding is not created) and returns
// false. Zero-quantity holdings are kept, not pruned.
func (p *Portfolio) ApplySell(symbol string, amount float64) bool {
	i, ok := p.index[symbol]
	if !ok {
		return false
	}
	p.holdings[i].Quantity = math.Max(0, p.holdings[i].Quantity-amount)
	p.version++
	return true
}

// Revalue assigns every holding a fresh simulated price: average cost
// perturbed by up to ±3%, rounded to cents. A zero-cost holding always
// revalues to zero.
func (p *Portfolio) Revalue(rng *rand.Rand) {
	for i := range p.holdings {
		perturbed := p.holdings[i].AverageCost * (1 + (rng.Float64()*2-1)*revaluePct)
		price := math.Max(0, round2(perturbed))
		p.holdings[i].CurrentPrice = &price
	}
	p.version++
}

// TotalValue sums quantity times effective price over all holdings. An empty
// portfolio totals zero.
func (p *Portfolio) TotalValue() float64 {
	total := 0.0
	for _, h := range p.holdings {
		total += h.MarketValue()
	}
	return total
}

// PieSlices projects holdings onto allocation-chart wedges in insertion
// order. The projection is pure and memoized on the portfolio version, so
// repeated reads between mutations reuse the cached result.
func (p *Portfolio) PieSlices(cat *catalog.Catalog) []PieSlice {
	if !p.pieValid || p.pieVersion != p.version {
		slices := make([]PieSlice, 0, len(p.holdings))
		for _, h := range p.holdings {
			slices = append(slices, PieSlice{
				Symbol: h.Symbol,
				Value:  h.MarketValue(),
				Color:  cat.Color(h.Symbol),
			})
		}
		p.pieCache = slices
		p.pieVersion = p.version
		p.pieValid = true
	}

	out := make([]PieSlice, len(p.pieCache))
	copy(out, p.pieCache)
	return out
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
