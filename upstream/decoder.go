//
// Copyright (C) 2026 Newsraven.  All rights reserved.
//
// newsbridge is licensed under the Apache License Version 2.0.
//
//

package upstream

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/newsraven/newsbridge/log"
)

// dataPrefix marks payload-bearing lines within a frame.
const dataPrefix = "data:"

// readChunkSize is the read granularity for the underlying stream.
const readChunkSize = 4096

// Decoder incrementally splits the backend's SSE byte stream into events.
// Bytes are buffered as they arrive, so frame boundaries and multi-byte
// characters may span any number of reads. Not safe for concurrent use;
// one decoder per stream.
type Decoder struct {
	r     io.ReadCloser
	buf   []byte
	chunk []byte
	queue []Event
	err   error
}

// NewDecoder wraps a stream body.
func NewDecoder(r io.ReadCloser) *Decoder {
	return &Decoder{r: r, chunk: make([]byte, readChunkSize)}
}

// Next returns the next decoded event. io.EOF means the stream ended;
// unterminated trailing bytes are discarded at that point, since they can
// never form a complete frame.
func (d *Decoder) Next() (Event, error) {
	for {
		if len(d.queue) > 0 {
			ev := d.queue[0]
			d.queue = d.queue[1:]
			return ev, nil
		}
		if d.err != nil {
			return Event{}, d.err
		}
		n, err := d.r.Read(d.chunk)
		if n > 0 {
			d.buf = append(d.buf, d.chunk[:n]...)
			d.drain()
		}
		if err != nil {
			d.err = err
		}
	}
}

// Close releases the underlying stream.
func (d *Decoder) Close() error {
	return d.r.Close()
}

// drain extracts every complete frame currently buffered.
func (d *Decoder) drain() {
	for {
		segment, rest, ok := splitFrame(d.buf)
		if !ok {
			return
		}
		d.buf = rest
		if ev, ok := parseFrame(segment); ok {
			d.queue = append(d.queue, ev)
		}
	}
}

// splitFrame finds the first blank-line boundary. CRLF line endings are
// tolerated; the scan is byte-wise over ASCII delimiters, so UTF-8
// sequences inside the segment are never split.
func splitFrame(buf []byte) (segment, rest []byte, ok bool) {
	for i := 0; i < len(buf); i++ {
		if buf[i] != '\n' {
			continue
		}
		j := i + 1
		if j < len(buf) && buf[j] == '\r' {
			j++
		}
		if j < len(buf) && buf[j] == '\n' {
			return buf[:i], buf[j+1:], true
		}
	}
	return nil, nil, false
}

// parseFrame pulls the data payload out of one frame segment. Segments with
// no data line, or whose payload is not a valid event object, yield nothing:
// the stream favors availability over completeness, so bad frames are
// dropped and later ones still flow.
func parseFrame(segment []byte) (Event, bool) {
	var payload []string
	for _, line := range strings.Split(string(segment), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if !strings.HasPrefix(line, dataPrefix) {
			continue
		}
		payload = append(payload, strings.TrimSpace(line[len(dataPrefix):]))
	}
	if len(payload) == 0 {
		return Event{}, false
	}
	var ev Event
	if err := json.Unmarshal([]byte(strings.Join(payload, "\n")), &ev); err != nil {
		log.Debugf("dropping malformed frame payload: %v", err)
		return Event{}, false
	}
	if ev.Type == "" {
		log.Debugf("dropping frame without event type")
		return Event{}, false
	}
	return ev, true
}
