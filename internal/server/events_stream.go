package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"tickerdeck/internal/events"
)

// streamBufferSize buffers events per connection so a slow client drops
// events instead of blocking the publisher.
const streamBufferSize = 100

// heartbeatInterval keeps idle SSE connections from being reaped by proxies.
const heartbeatInterval = 15 * time.Second

// EventsStreamHandler streams dashboard events over Server-Sent Events.
type EventsStreamHandler struct {
	bus *events.Bus
	log zerolog.Logger
}

// NewEventsStreamHandler creates a new events stream handler
func NewEventsStreamHandler(bus *events.Bus, log zerolog.Logger) *EventsStreamHandler {
	return &EventsStreamHandler{
		bus: bus,
		log: log.With().Str("component", "events_stream").Logger(),
	}
}

// ServeHTTP handles GET /api/events/stream requests (SSE). The optional
// "types" query parameter is a comma-separated filter of event types.
func (h *EventsStreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	types := parseTypesFilter(r.URL.Query().Get("types"))

	h.log.Info().
		Int("types", len(types)).
		Msg("Client connected to event stream")

	eventChan := make(chan *events.Event, streamBufferSize)
	unsubscribe := h.bus.SubscribeAll(types, func(event *events.Event) {
		// Non-blocking send; drop when the client cannot keep up.
		select {
		case eventChan <- event:
		default:
			h.log.Warn().
				Str("event_type", string(event.Type)).
				Msg("Event channel full, dropping event")
		}
	})
	defer unsubscribe()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			h.log.Info().Msg("Client disconnected from event stream")
			return

		case <-heartbeat.C:
			fmt.Fprint(w, ": heartbeat\n\n")
			flusher.Flush()

		case event := <-eventChan:
			payload, err := json.Marshal(event)
			if err != nil {
				h.log.Error().Err(err).Msg("Failed to marshal event")
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, payload)
			flusher.Flush()
		}
	}
}

// parseTypesFilter resolves the types query parameter against the known
// event types; an empty or fully unknown filter means everything.
func parseTypesFilter(raw string) []events.EventType {
	if raw == "" {
		return events.AllTypes()
	}

	known := make(map[events.EventType]bool)
	for _, et := range events.AllTypes() {
		known[et] = true
	}

	var out []events.EventType
	for _, part := range strings.Split(raw, ",") {
		et := events.EventType(strings.TrimSpace(part))
		if known[et] {
			out = append(out, et)
		}
	}
	if len(out) == 0 {
		return events.AllTypes()
	}
	return out
}
