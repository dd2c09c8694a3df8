package sse

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"
)

var ErrStreamingUnsupported = errors.New("streaming not supported")

// KeepaliveInterval is how often an idle stream sends a ping event.
const KeepaliveInterval = 15 * time.Second

// Event represents one server-sent event
type Event struct {
	Event string
	Data  interface{}
}

// Stream writes server-sent events to a single response. It is safe for concurrent use.
type Stream struct {
	mu      sync.Mutex
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewStream sets the SSE headers and commits a 200 response.
func NewStream(w http.ResponseWriter) (*Stream, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, ErrStreamingUnsupported
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &Stream{w: w, flusher: flusher}, nil
}

func (s *Stream) Send(event Event) error {
	data, err := json.Marshal(event.Data)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", event.Event, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event.Event, data); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// Ping keeps proxies from closing an idle stream
func (s *Stream) Ping(now time.Time) error {
	return s.Send(Event{Event: "ping", Data: map[string]int64{"timestamp": now.Unix()}})
}
