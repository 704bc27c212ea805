package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Writer emits records in the framing Decoder understands. It exists so test
// backends and local stubs can produce protocol-correct streams.
type Writer struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewWriter prepares w for event streaming and returns a Writer over it.
func NewWriter(w http.ResponseWriter) (*Writer, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	return &Writer{w: w, flusher: flusher}, nil
}

// WriteEvent sends one record with the given event type and JSON-encoded data.
func (s *Writer) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\n", event); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteError sends an `error` record carrying a detail message.
func (s *Writer) WriteError(detail string) {
	s.WriteEvent("error", map[string]string{"detail": detail}) //nolint:errcheck
}

// WriteKeepAlive sends a comment record that decoders discard.
func (s *Writer) WriteKeepAlive() {
	fmt.Fprint(s.w, ": keep-alive\n\n") //nolint:errcheck
	s.flusher.Flush()
}
