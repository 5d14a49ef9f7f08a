package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkaminski/lakiernia/internal/events"
)

// EventsHandler streams order row changes over SSE. Consumers treat every
// event as a cue to re-fetch; no deltas are carried beyond the row identity.
type EventsHandler struct{ Bus *events.Bus }

func NewEventsHandler(bus *events.Bus) *EventsHandler { return &EventsHandler{Bus: bus} }

// Stream: GET /orders/events
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch, cancel := h.Bus.Subscribe()
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case change, open := <-ch:
			if !open {
				return
			}
			payload, err := json.Marshal(change)
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
