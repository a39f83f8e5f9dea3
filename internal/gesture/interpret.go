package gesture

import "github.com/ayusman/handlift/internal/detector"

// Observed pairs a finger state with the handedness it was derived
// from, as reported for one hand in one frame.
type Observed struct {
	State      State  `json:"state"`
	Handedness string `json:"handedness"`
}

// Observe derives the Observed value for one hand.
func Observe(hand *detector.HandLandmarks, tolerance float64) Observed {
	return Observed{
		State:      Fingers(hand, tolerance),
		Handedness: hand.Handedness,
	}
}

// Finger patterns, five bits ordered thumb, index, middle, ring, pinky.
const (
	fistPattern uint8 = 0b00000
	openPattern uint8 = 0b11111
	// restPattern is the quiescent pinky-only pose: easy to hold, and
	// distinct from every digit and from both composite gestures.
	restPattern uint8 = 0b00001
)

// countPatterns maps the counting-family poses to their finger count.
// Counts 1-3 accept both the index-first school and the thumb-first
// one, so either habit reads correctly.
var countPatterns = map[uint8]int{
	fistPattern: 0,
	0b10000:     1, // thumb only
	0b01000:     1, // index only
	0b11000:     2,
	0b01100:     2,
	0b11100:     3,
	0b01110:     3,
	0b01111:     4,
	openPattern: 5,
}

// digitPatterns is the full single-hand digit table. It extends the
// counting family with poses for 6-9: the shaka for 6, then fingers
// folded back in from the index side for 7 and 8, and everything but
// the pinky for 9. Patterns absent from the table read as Undefined.
var digitPatterns = func() map[uint8]int {
	m := map[uint8]int{
		0b10001: 6, // thumb + pinky
		0b10011: 7, // thumb + ring + pinky
		0b10111: 8, // thumb + middle + ring + pinky
		0b11110: 9, // all but pinky
	}
	for bits, n := range countPatterns {
		m[bits] = n
	}
	return m
}()

// Interpret reduces the hands observed in one frame to exactly one
// token. It is deterministic and stateless: the same input always
// yields the same token, and every one of the 32 single-hand patterns
// resolves to something (a digit, Neutral, or Undefined).
func Interpret(hands []Observed) Token {
	switch len(hands) {
	case 1:
		return singleToken(hands[0].State)
	case 2:
		return fusedToken(hands[0].State, hands[1].State)
	default:
		// No hands, or more than the single user's pair.
		return Undefined
	}
}

func singleToken(s State) Token {
	bits := s.bits()
	if bits == restPattern {
		return Neutral
	}
	if d, ok := digitPatterns[bits]; ok {
		return DigitToken(d)
	}
	return Undefined
}

// fusedToken combines two hands. The composite poses win first; after
// that, two counting-family hands fuse by summing their counts, which
// is how 6-9 are usually shown (one open hand plus a 1-4 count).
func fusedToken(a, b State) Token {
	ab, bb := a.bits(), b.bits()

	switch {
	case ab == openPattern && bb == openPattern:
		return BothOpen
	case ab == fistPattern && bb == fistPattern:
		return BothFist
	case ab == restPattern && bb == restPattern:
		return Neutral
	}

	ca, aOK := countPatterns[ab]
	cb, bOK := countPatterns[bb]
	if aOK && bOK {
		// Both-open resolved above, so the sum is at most 9.
		return DigitToken(ca + cb)
	}

	return Undefined
}
