// Package notify delivers fire-and-forget user-visible messages. The core
// reports session events through a Sink and never blocks on delivery.
package notify

import (
	"fmt"
	"io"
)

// Sink receives user-facing notifications.
type Sink interface {
	Success(msg string)
	Error(msg string)
}

// ConsoleSink prints notifications to a writer, one line each.
type ConsoleSink struct {
	w io.Writer
}

func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{w: w}
}

func (s *ConsoleSink) Success(msg string) {
	fmt.Fprintf(s.w, "✓ %s\n", msg)
}

func (s *ConsoleSink) Error(msg string) {
	fmt.Fprintf(s.w, "✗ %s\n", msg)
}
