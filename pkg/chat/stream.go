package chat

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
)

// Event is one unit of a streamed turn as seen by the client.
type Event struct {
	Text string
	Err  string
	Done bool
}

// Sink receives turn output incrementally. Implementations report a
// non-nil error when the consumer is gone; the engine stops without
// treating that as a turn failure.
type Sink interface {
	Text(chunk string) error
	Fail(message string) error
	Done() error
}

// ErrSinkClosed is returned by ChannelSink once its consumer has gone
// away.
var ErrSinkClosed = errors.New("sink closed")

// ChannelSink forwards events onto a channel. It decouples turn
// execution from the HTTP response writer so that a failure before the
// first increment can still become a regular error response, and so that
// a consumer disconnect stops the producer instead of blocking it.
type ChannelSink struct {
	events chan Event
	done   <-chan struct{}
}

// NewChannelSink creates a sink whose sends abort once done is closed.
func NewChannelSink(done <-chan struct{}, buffer int) *ChannelSink {
	return &ChannelSink{events: make(chan Event, buffer), done: done}
}

func (s *ChannelSink) Events() <-chan Event {
	return s.events
}

// Close signals that no further events will be produced.
func (s *ChannelSink) Close() {
	close(s.events)
}

func (s *ChannelSink) send(ev Event) error {
	select {
	case s.events <- ev:
		return nil
	case <-s.done:
		return ErrSinkClosed
	}
}

func (s *ChannelSink) Text(chunk string) error {
	return s.send(Event{Text: chunk})
}

func (s *ChannelSink) Fail(message string) error {
	return s.send(Event{Err: message})
}

func (s *ChannelSink) Done() error {
	return s.send(Event{Done: true})
}

// NullSink discards all events. Used by the non-streaming chat path,
// where the accumulated turn text is the only output that matters.
type NullSink struct{}

func (NullSink) Text(string) error { return nil }
func (NullSink) Fail(string) error { return nil }
func (NullSink) Done() error       { return nil }

type textFrame struct {
	Text string `json:"text"`
}

type errorFrame struct {
	Error string `json:"error"`
}

// WriteEvent frames a single event as a server-sent event and flushes
// it. A flush error means the client disconnected.
func WriteEvent(w *bufio.Writer, ev Event) error {
	var payload []byte

	switch {
	case ev.Done:
		payload = []byte("[DONE]")
	case ev.Err != "":
		payload, _ = json.Marshal(errorFrame{Error: ev.Err})
	default:
		payload, _ = json.Marshal(textFrame{Text: ev.Text})
	}

	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return err
	}
	return w.Flush()
}
