// Package sse implements the Server-Sent-Events framing used by the content
// generation stream: UTF-8 text records separated by a blank line, each made
// of an optional "event:" line and a "data:" line.
package sse

import (
	"bytes"
	"errors"
	"strings"
)

// DefaultEvent is the event type assigned to records without an "event:" line.
const DefaultEvent = "message"

const (
	eventPrefix = "event: "
	dataPrefix  = "data: "
)

var recordSep = []byte("\n\n")

// ErrTruncated reports that the stream ended with bytes still buffered,
// meaning the final record was cut off mid-frame.
var ErrTruncated = errors.New("sse: stream ended inside a partial record")

// Record is one decoded event/data frame.
type Record struct {
	Event string
	Data  string
}

// Decoder reassembles records from an incrementally delivered byte stream.
// Chunks may split records, lines, or multi-byte UTF-8 sequences at any
// position; the decoder buffers raw bytes and converts only complete records
// to text, so the output is independent of chunk boundaries.
//
// The decoder is a pure framing layer: it knows nothing about event
// semantics.
type Decoder struct {
	buf []byte
}

// NewDecoder returns a Decoder with an empty buffer.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Push appends a chunk and returns every complete record it unlocked, in
// arrival order. Records with no data line (keep-alives and comments) are
// dropped.
func (d *Decoder) Push(chunk []byte) []Record {
	d.buf = append(d.buf, chunk...)

	var records []Record
	for {
		idx := bytes.Index(d.buf, recordSep)
		if idx < 0 {
			return records
		}
		raw := string(d.buf[:idx])
		d.buf = d.buf[idx+len(recordSep):]

		if rec, ok := parseRecord(raw); ok {
			records = append(records, rec)
		}
	}
}

// Finish reports whether the stream ended cleanly. It must be called exactly
// once, after the last chunk. A non-blank remainder means the sender was cut
// off mid-record, which is a protocol error rather than something to drop
// silently.
func (d *Decoder) Finish() error {
	if len(bytes.TrimSpace(d.buf)) > 0 {
		return ErrTruncated
	}
	d.buf = nil
	return nil
}

// parseRecord splits one raw record into its event type and data payload.
// The event type defaults to DefaultEvent; if multiple data lines appear the
// last one wins. Records without a data line report ok=false.
func parseRecord(raw string) (Record, bool) {
	rec := Record{Event: DefaultEvent}
	hasData := false
	for _, line := range strings.Split(raw, "\n") {
		switch {
		case strings.HasPrefix(line, eventPrefix):
			rec.Event = strings.TrimPrefix(line, eventPrefix)
		case strings.HasPrefix(line, dataPrefix):
			rec.Data = strings.TrimPrefix(line, dataPrefix)
			hasData = true
		}
	}
	if !hasData {
		return Record{}, false
	}
	return rec, true
}
