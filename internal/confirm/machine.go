// Package confirm accumulates per-frame gesture tokens into a
// confirmed floor selection using hold-time logic.
//
// A gesture only counts once it has been observed continuously for its
// hold threshold; any change of token restarts the clock. This is the
// debounce that turns a noisy frame-by-frame token stream into a
// deliberate, at-most-once command.
package confirm

import (
	"fmt"
	"time"

	"github.com/ayusman/handlift/internal/gesture"
	"github.com/ayusman/handlift/internal/sink"
)

// Mode is the listening state of the machine.
type Mode int

const (
	// Idle waits for the start-entry gesture.
	Idle Mode = iota
	// PositiveListen accumulates digits for a new floor entry.
	PositiveListen
	// NegativeListen is the reserved cancel/erase entry path.
	NegativeListen
	// Accept is the transient state in which the pending digits are
	// dispatched; the machine resets to Idle within the same frame.
	Accept
)

// String returns a short name for logging and wire payloads.
func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case PositiveListen:
		return "positive-listen"
	case NegativeListen:
		return "negative-listen"
	case Accept:
		return "accept"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Config holds the hold-time thresholds. All durations are externally
// supplied; the machine assumes no hidden defaults.
type Config struct {
	// HoldTime confirms ordinary digits and the start-entry gesture.
	HoldTime time.Duration

	// HoldTimeZero confirms the fist-shaped tokens (digit 0 and the
	// two-fist accept gesture). It is longer than HoldTime to bias
	// against misreading a thumb-extended 1 as a fist 0.
	HoldTimeZero time.Duration

	// UndefinedHoldTime is how long tracking must stay unrecognized
	// before an Undefined token may abandon a stalled entry attempt.
	UndefinedHoldTime time.Duration

	// NeutralHoldTime confirms the resting pose between digits, and is
	// also the minimum quiet period after a dispatch before a new
	// entry can start.
	NeutralHoldTime time.Duration
}

// DefaultConfig returns thresholds tuned for a 15 FPS pipeline.
func DefaultConfig() Config {
	return Config{
		HoldTime:          1200 * time.Millisecond,
		HoldTimeZero:      2 * time.Second,
		UndefinedHoldTime: 3 * time.Second,
		NeutralHoldTime:   500 * time.Millisecond,
	}
}

// Result reports what one frame's observation did. Floor is non-empty
// exactly when a completed selection was dispatched this frame; Err
// carries the sink failure if the dispatch was rejected. The dispatch
// still counts as done either way.
type Result struct {
	Floor string
	Err   error
}

// Machine is the confirmation state machine. It is the only component
// with cross-frame memory, it is owned by a single processing loop,
// and it must observe frames in timestamp order.
type Machine struct {
	config Config
	sink   sink.Sink

	mode           Mode
	pending        []byte
	candidate      gesture.Token
	hasCandidate   bool
	candidateSince time.Time
	lastDispatchAt time.Time

	// needNeutral blocks further digit appends until the resting pose
	// has been held, so one long hold cannot read as repeated digits.
	needNeutral bool
}

// New creates a Machine with the given thresholds and command sink.
func New(config Config, s sink.Sink) *Machine {
	return &Machine{
		config: config,
		sink:   s,
	}
}

// Mode returns the current listening state.
func (m *Machine) Mode() Mode {
	return m.mode
}

// Pending returns the digits confirmed so far for the in-progress
// entry.
func (m *Machine) Pending() string {
	return string(m.pending)
}

// Reset returns the machine to Idle and clears any in-progress entry.
func (m *Machine) Reset() {
	m.mode = Idle
	m.pending = nil
	m.hasCandidate = false
	m.needNeutral = false
}

// holdFor returns the hold threshold for a token.
func (m *Machine) holdFor(token gesture.Token) time.Duration {
	switch token {
	case gesture.Undefined:
		return m.config.UndefinedHoldTime
	case gesture.Neutral:
		return m.config.NeutralHoldTime
	case gesture.Digit0, gesture.BothFist:
		return m.config.HoldTimeZero
	default:
		return m.config.HoldTime
	}
}

// Observe is the per-frame transition function: given the frame's
// token and timestamp, it advances the machine and reports any
// dispatch. A token change only restarts the hold clock; no hold
// carries partial credit over to a different token.
func (m *Machine) Observe(token gesture.Token, t time.Time) Result {
	if !m.hasCandidate || token != m.candidate {
		m.candidate = token
		m.hasCandidate = true
		m.candidateSince = t
		return Result{}
	}

	if t.Sub(m.candidateSince) <= m.holdFor(token) {
		return Result{}
	}

	switch m.mode {
	case Idle:
		return m.observeIdle(token, t)
	case PositiveListen:
		return m.observePositive(token, t)
	case NegativeListen:
		return m.observeNegative(token, t)
	}
	return Result{}
}

func (m *Machine) observeIdle(token gesture.Token, t time.Time) Result {
	// Enforce the quiet period after a dispatch before any new entry.
	if !m.lastDispatchAt.IsZero() && t.Sub(m.lastDispatchAt) < m.config.NeutralHoldTime {
		return Result{}
	}

	switch token {
	case gesture.BothOpen:
		m.mode = PositiveListen
		m.pending = nil
		m.needNeutral = false
	case gesture.BothFist:
		m.mode = NegativeListen
		m.pending = nil
	}
	return Result{}
}

func (m *Machine) observePositive(token gesture.Token, t time.Time) Result {
	if d, ok := token.Digit(); ok {
		if m.needNeutral {
			return Result{}
		}
		m.pending = append(m.pending, byte('0'+d))
		m.needNeutral = true
		return Result{}
	}

	switch token {
	case gesture.Neutral:
		m.needNeutral = false
	case gesture.BothFist:
		if len(m.pending) > 0 {
			return m.accept(t)
		}
	case gesture.Undefined:
		// Abandon a stalled attempt, but never a non-empty entry.
		if len(m.pending) == 0 {
			m.Reset()
		}
	}
	return Result{}
}

func (m *Machine) observeNegative(token gesture.Token, t time.Time) Result {
	switch token {
	case gesture.BothOpen:
		m.mode = PositiveListen
		m.pending = nil
		m.needNeutral = false
	case gesture.Undefined:
		if len(m.pending) == 0 {
			m.Reset()
		}
	}
	return Result{}
}

// accept dispatches the pending digits exactly once and resets the
// machine. The reset happens regardless of the sink outcome, so a
// failing sink can never cause a second dispatch of the same entry.
func (m *Machine) accept(t time.Time) Result {
	m.mode = Accept
	floor := string(m.pending)

	err := m.sink.Dispatch(sink.Request{Floor: floor, RequestedAt: t})

	m.Reset()
	m.lastDispatchAt = t

	if err != nil {
		return Result{Floor: floor, Err: fmt.Errorf("dispatch floor %s: %w", floor, err)}
	}
	return Result{Floor: floor}
}
