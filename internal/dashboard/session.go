// Package dashboard composes the state engine: the synthetic price series,
// the portfolio, order entry, widget layout, and news feed, all owned by one
// session with explicit lifecycle and change notifications.
package dashboard

import (
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"tickerdeck/internal/catalog"
	"tickerdeck/internal/events"
	"tickerdeck/internal/modules/layout"
	"tickerdeck/internal/modules/market"
	"tickerdeck/internal/modules/news"
	"tickerdeck/internal/modules/orders"
	"tickerdeck/internal/modules/portfolio"
)

// initialNewsItems seeds the feed so the widget is populated on first render.
const initialNewsItems = 8

// Config wires a session's dependencies. All state is constructor-injected;
// there is no ambient shared state.
type Config struct {
	Catalog *catalog.Catalog
	Bus     *events.Bus
	Log     zerolog.Logger

	SeriesPoints    int
	SeriesBasePrice float64

	// Seed fixes the random walk; 0 means seed from the clock.
	Seed int64

	// Holdings overrides the demo seed positions when non-nil.
	Holdings []portfolio.Holding
}

// Session owns all dashboard state for one client session. Every mutation is
// serialized through one mutex so each operation runs to completion before
// the next, matching the original single-threaded update model; scheduler
// goroutines and HTTP handlers all pass through here.
type Session struct {
	mu  sync.Mutex
	log zerolog.Logger
	cat *catalog.Catalog
	bus *events.Bus
	rng *rand.Rand

	series   market.Series
	port     *portfolio.Portfolio
	intake   *orders.Intake
	trades   orders.TradeLog
	layout   layout.Layout
	news     *news.Store
	revision uint64
}

// NewSession constructs a fully initialized session: seeded series, demo
// holdings, default layout, and a pre-populated news feed.
func NewSession(cfg Config) *Session {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	holdings := cfg.Holdings
	if holdings == nil {
		holdings = defaultHoldings()
	}

	s := &Session{
		log:    cfg.Log.With().Str("component", "dashboard").Logger(),
		cat:    cfg.Catalog,
		bus:    cfg.Bus,
		rng:    rng,
		series: market.NewSeries(rng, cfg.SeriesPoints, cfg.SeriesBasePrice),
		port:   portfolio.New(holdings),
		intake: orders.NewIntake(cfg.Catalog),
		layout: layout.Default(),
		news:   news.NewStore(),
	}
	s.news.AppendBatch(initialNewsItems)

	s.log.Info().
		Int("series_points", s.series.Len()).
		Int("holdings", len(holdings)).
		Msg("Session initialized")

	return s
}

// defaultHoldings is the demo portfolio a fresh session starts with.
func defaultHoldings() []portfolio.Holding {
	return []portfolio.Holding{
		{Symbol: "BTC", Quantity: 0.25, AverageCost: 42000},
		{Symbol: "ETH", Quantity: 1.5, AverageCost: 2600},
		{Symbol: "SOL", Quantity: 30, AverageCost: 95},
	}
}

// touch bumps the revision and publishes the coarse state-changed signal.
// Callers must hold the mutex.
func (s *Session) touch() {
	s.revision++
	s.bus.Publish(&events.StateChangedData{Revision: s.revision})
}

// Revision returns the current mutation counter.
func (s *Session) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// AdvanceSeries extends the price series by one point, evicting the oldest
// at the cap. Driven by the fast refresh job.
func (s *Session) AdvanceSeries() {
	s.mu.Lock()
	defer s.mu.Unlock()

	prevLen := s.series.Len()
	s.series = market.Advance(s.rng, s.series)
	last, _ := s.series.Last()

	s.bus.Publish(&events.SeriesAdvancedData{
		Time:      last.Time,
		Price:     last.Price,
		Volume:    last.Volume,
		Evicted:   s.series.Len() == prevLen,
		SeriesLen: s.series.Len(),
	})
	s.touch()
}

// RevaluePortfolio refreshes the simulated price of every holding. Driven by
// the slow refresh job.
func (s *Session) RevaluePortfolio() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.port.Revalue(s.rng)

	s.bus.Publish(&events.PortfolioRevaluedData{
		Holdings:   len(s.port.Holdings()),
		TotalValue: s.port.TotalValue(),
	})
	s.touch()
}

// MoveWidget reorders the layout. Invalid source indices are silently
// ignored; nothing is published when the layout is unchanged.
func (s *Session) MoveWidget(from, to int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyMove(layout.Move(s.layout, from, to), from, to)
}

// MoveWidgetPayload reorders the layout with the source index carried as a
// drag payload string. A malformed payload is a silent no-op.
func (s *Session) MoveWidgetPayload(payload string, to int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyMove(layout.MoveFromPayload(s.layout, payload, to), -1, to)
}

func (s *Session) applyMove(next layout.Layout, from, to int) {
	if equalLayouts(next, s.layout) {
		return
	}
	s.layout = next

	s.bus.Publish(&events.LayoutChangedData{
		From:    from,
		To:      to,
		Widgets: next.Strings(),
	})
	s.touch()
}

func equalLayouts(a, b layout.Layout) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// UpdateOrderDraft replaces the order-entry draft fields.
func (s *Session) UpdateOrderDraft(d orders.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.intake.UpdateDraft(d); err != nil {
		return err
	}
	s.touch()
	return nil
}

// OpenOrderConfirmation moves order entry into the confirmation step.
func (s *Session) OpenOrderConfirmation() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.intake.OpenConfirmation(); err != nil {
		return err
	}
	s.touch()
	return nil
}

// CancelOrder abandons the confirmation step; no portfolio state changes.
func (s *Session) CancelOrder() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.intake.Cancel(); err != nil {
		return err
	}
	s.touch()
	return nil
}

// CommitOrder applies the confirmed order to the portfolio, records it in
// the trade log, and resets order entry for the next order. The commit is
// synchronous and fires exactly once per confirmed order.
func (s *Session) CommitOrder() (orders.Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trade, err := s.intake.Commit(s.port)
	if err != nil {
		return orders.Trade{}, err
	}
	s.trades.Record(trade)
	s.intake.Reset()

	s.log.Info().
		Str("order_id", trade.ID).
		Str("side", string(trade.Side)).
		Str("symbol", trade.Symbol).
		Float64("amount", trade.Amount).
		Bool("applied", trade.Applied).
		Msg("Order committed")

	s.bus.Publish(&events.OrderCommittedData{
		OrderID:    trade.ID,
		Side:       string(trade.Side),
		Symbol:     trade.Symbol,
		Amount:     trade.Amount,
		LimitPrice: trade.LimitPrice,
	})
	s.touch()
	return trade, nil
}

// LoadMoreNews appends a batch of items to the feed and returns them.
func (s *Session) LoadMoreNews() []news.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := s.news.AppendBatch(news.LoadMoreBatch)

	s.bus.Publish(&events.NewsAppendedData{
		Added: len(added),
		Total: s.news.Len(),
	})
	s.touch()
	return added
}

// Trades returns the committed orders of this session, oldest first.
func (s *Session) Trades() []orders.Trade {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trades.All()
}
