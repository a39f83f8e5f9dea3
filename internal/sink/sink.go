// Package sink dispatches confirmed floor selections to an elevator
// command endpoint. The state machine treats the sink as an external
// collaborator: a dispatch failure is reported back but never stops
// frame processing.
package sink

import (
	"log"
	"time"
)

// Request carries one completed floor selection.
type Request struct {
	Floor       string    `json:"floor"`
	RequestedAt time.Time `json:"requested_at"`
}

// Response is the acknowledgement an external controller returns.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Sink accepts completed floor selections.
type Sink interface {
	Dispatch(req Request) error
}

// LogSink logs dispatched selections without driving a car. It is the
// default when no controller executable is configured.
type LogSink struct{}

// NewLogSink creates a new LogSink.
func NewLogSink() *LogSink {
	return &LogSink{}
}

// Dispatch logs the request.
func (s *LogSink) Dispatch(req Request) error {
	log.Printf("sink: floor %s requested", req.Floor)
	return nil
}
