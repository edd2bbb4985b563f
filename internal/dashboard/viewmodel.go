package dashboard

import (
	"time"

	"tickerdeck/internal/modules/market"
	"tickerdeck/internal/modules/news"
	"tickerdeck/internal/modules/orders"
	"tickerdeck/internal/modules/portfolio"
)

// ViewModel is the combined read model handed to the presentation layer. It
// is a pure-data snapshot: renderers consume it without reaching back into
// the session.
type ViewModel struct {
	Revision    uint64         `json:"revision"`
	GeneratedAt time.Time      `json:"generated_at"`
	Series      SeriesView     `json:"series"`
	Portfolio   PortfolioView  `json:"portfolio"`
	OrderEntry  OrderEntryView `json:"order_entry"`
	Layout      []string       `json:"layout"`
	News        NewsView       `json:"news"`
}

// SeriesView carries the chart data plus the derived axis scale and ticker
// figures.
type SeriesView struct {
	Points    []market.Point `json:"points"`
	LastPrice float64        `json:"last_price"`
	Change    float64        `json:"change"`
	ChangePct float64        `json:"change_pct"`
	Min       float64        `json:"min"`
	Max       float64        `json:"max"`
	Mean      float64        `json:"mean"`
}

// HoldingView is one row of the portfolio table.
type HoldingView struct {
	Symbol          string   `json:"symbol"`
	Name            string   `json:"name"`
	Quantity        float64  `json:"quantity"`
	AverageCost     float64  `json:"average_cost"`
	CurrentPrice    *float64 `json:"current_price,omitempty"`
	MarketValue     float64  `json:"market_value"`
	UnrealizedPL    float64  `json:"unrealized_pl"`
	UnrealizedPLPct float64  `json:"unrealized_pl_pct"`
}

// PortfolioView carries the valuation table and the allocation chart slices.
type PortfolioView struct {
	Holdings   []HoldingView        `json:"holdings"`
	TotalValue float64              `json:"total_value"`
	Slices     []portfolio.PieSlice `json:"slices"`
}

// OrderEntryView exposes the order-entry state machine to the form renderer.
type OrderEntryView struct {
	State     string       `json:"state"`
	Draft     orders.Draft `json:"draft"`
	MaxAmount float64      `json:"max_amount"`
}

// NewsView carries the compact prefix of the feed.
type NewsView struct {
	Items   []news.Item `json:"items"`
	Total   int         `json:"total"`
	HasMore bool        `json:"has_more"`
}

// Snapshot assembles the full view model from the current state.
func (s *Session) Snapshot() ViewModel {
	s.mu.Lock()
	defer s.mu.Unlock()

	return ViewModel{
		Revision:    s.revision,
		GeneratedAt: time.Now().UTC(),
		Series:      s.seriesView(),
		Portfolio:   s.portfolioView(),
		OrderEntry: OrderEntryView{
			State:     string(s.intake.State()),
			Draft:     s.intake.Draft(),
			MaxAmount: orders.MaxAmount,
		},
		Layout: s.layout.Strings(),
		News: NewsView{
			Items:   s.news.Visible(news.CompactLimit),
			Total:   s.news.Len(),
			HasMore: s.news.Len() > news.CompactLimit,
		},
	}
}

func (s *Session) seriesView() SeriesView {
	min, max, mean := s.series.Scale()
	change, changePct := s.series.Change()

	view := SeriesView{
		Points:    s.series.Points(),
		Change:    change,
		ChangePct: changePct,
		Min:       min,
		Max:       max,
		Mean:      mean,
	}
	if last, ok := s.series.Last(); ok {
		view.LastPrice = last.Price
	}
	return view
}

func (s *Session) portfolioView() PortfolioView {
	holdings := s.port.Holdings()
	rows := make([]HoldingView, 0, len(holdings))
	for _, h := range holdings {
		name := h.Symbol
		if asset, ok := s.cat.Lookup(h.Symbol); ok {
			name = asset.Name
		}
		rows = append(rows, HoldingView{
			Symbol:          h.Symbol,
			Name:            name,
			Quantity:        h.Quantity,
			AverageCost:     h.AverageCost,
			CurrentPrice:    h.CurrentPrice,
			MarketValue:     h.MarketValue(),
			UnrealizedPL:    h.UnrealizedPL(),
			UnrealizedPLPct: h.UnrealizedPLPercent(),
		})
	}

	return PortfolioView{
		Holdings:   rows,
		TotalValue: s.port.TotalValue(),
		Slices:     s.port.PieSlices(s.cat),
	}
}
