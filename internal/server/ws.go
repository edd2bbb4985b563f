package server

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"tickerdeck/internal/events"
)

// wsWriteTimeout bounds each outgoing frame write.
const wsWriteTimeout = 10 * time.Second

// WSHandler pushes dashboard events to WebSocket clients. It is the push
// alternative to the SSE stream for clients that prefer a socket.
type WSHandler struct {
	bus *events.Bus
	log zerolog.Logger
}

// NewWSHandler creates a new WebSocket stream handler
func NewWSHandler(bus *events.Bus, log zerolog.Logger) *WSHandler {
	return &WSHandler{
		bus: bus,
		log: log.With().Str("component", "ws_stream").Logger(),
	}
}

// ServeHTTP handles GET /api/ws requests, upgrading to a WebSocket and
// streaming every dashboard event as a JSON frame until the client leaves.
func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "session over")

	h.log.Info().Msg("WebSocket client connected")

	eventChan := make(chan *events.Event, streamBufferSize)
	unsubscribe := h.bus.SubscribeAll(events.AllTypes(), func(event *events.Event) {
		select {
		case eventChan <- event:
		default:
			h.log.Warn().Msg("WebSocket channel full, dropping event")
		}
	})
	defer unsubscribe()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			h.log.Info().Msg("WebSocket client disconnected")
			return

		case event := <-eventChan:
			writeCtx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
			err := wsjson.Write(writeCtx, conn, event)
			cancel()
			if err != nil {
				h.log.Info().Err(err).Msg("WebSocket write failed, closing")
				return
			}
		}
	}
}
