package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"tickerdeck/internal/dashboard"
	"tickerdeck/internal/modules/news"
	"tickerdeck/internal/modules/orders"
)

// Handlers serves the dashboard state endpoints.
type Handlers struct {
	session *dashboard.Session
	log     zerolog.Logger
}

// NewHandlers creates the dashboard handlers
func NewHandlers(session *dashboard.Session, log zerolog.Logger) *Handlers {
	return &Handlers{
		session: session,
		log:     log.With().Str("handler", "dashboard").Logger(),
	}
}

// HandleGetDashboard returns the combined view model.
func (h *Handlers) HandleGetDashboard(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.session.Snapshot())
}

// HandleGetSeries returns the chart series view.
func (h *Handlers) HandleGetSeries(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.session.Snapshot().Series)
}

// HandleGetPortfolio returns the portfolio valuation view.
func (h *Handlers) HandleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.session.Snapshot().Portfolio)
}

// HandleUpdateDraft replaces the order-entry draft fields.
func (h *Handlers) HandleUpdateDraft(w http.ResponseWriter, r *http.Request) {
	var draft orders.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.session.UpdateOrderDraft(draft); err != nil {
		h.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, h.session.Snapshot().OrderEntry)
}

// HandleOpenConfirmation moves order entry to the confirmation step.
func (h *Handlers) HandleOpenConfirmation(w http.ResponseWriter, r *http.Request) {
	if err := h.session.OpenOrderConfirmation(); err != nil {
		h.writeError(w, http.StatusConflict, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, h.session.Snapshot().OrderEntry)
}

// HandleCommit applies the confirmed order to the portfolio.
func (h *Handlers) HandleCommit(w http.ResponseWriter, r *http.Request) {
	trade, err := h.session.CommitOrder()
	if err != nil {
		h.writeError(w, http.StatusConflict, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, trade)
}

// HandleCancel abandons the confirmation step.
func (h *Handlers) HandleCancel(w http.ResponseWriter, r *http.Request) {
	if err := h.session.CancelOrder(); err != nil {
		h.writeError(w, http.StatusConflict, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, h.session.Snapshot().OrderEntry)
}

// HandleGetTrades returns the session trade log.
func (h *Handlers) HandleGetTrades(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.session.Trades())
}

// moveRequest is the drag-and-drop reorder payload. From arrives as a string
// because it is lifted straight out of the browser's drag payload.
type moveRequest struct {
	From string `json:"from"`
	To   int    `json:"to"`
}

// HandleMoveWidget reorders the widget layout. An unparseable or
// out-of-range source index is silently ignored, so this always succeeds.
func (h *Handlers) HandleMoveWidget(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.session.MoveWidgetPayload(req.From, req.To)

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"layout": h.session.Snapshot().Layout,
	})
}

// HandleGetNews returns the compact news view.
func (h *Handlers) HandleGetNews(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.session.Snapshot().News)
}

// HandleLoadMoreNews appends a batch of items to the feed.
func (h *Handlers) HandleLoadMoreNews(w http.ResponseWriter, r *http.Request) {
	added := h.session.LoadMoreNews()
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"added": added,
		"total": h.session.Snapshot().News.Total,
		"batch": news.LoadMoreBatch,
	})
}

// writeJSON writes a JSON response
func (h *Handlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}

// writeError writes a JSON error response
func (h *Handlers) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
