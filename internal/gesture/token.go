package gesture

import "fmt"

// Token is the single gesture reading produced for one frame. Exactly
// one token exists per frame; frames with no recognizable gesture are
// Undefined, and the deliberately inert resting pose is Neutral.
type Token int

const (
	Digit0 Token = iota
	Digit1
	Digit2
	Digit3
	Digit4
	Digit5
	Digit6
	Digit7
	Digit8
	Digit9
	// BothOpen is two fully open hands, the start-entry gesture.
	BothOpen
	// BothFist is two fists, the accept/cancel gesture.
	BothFist
	// Neutral is the designated resting pose between digit entries.
	Neutral
	// Undefined is no hands, or a finger pattern with no mapping.
	Undefined
)

// DigitToken returns the token for digit n. It panics on values
// outside 0-9; callers derive n from the total lookup tables, which
// never produce an out-of-range digit.
func DigitToken(n int) Token {
	if n < 0 || n > 9 {
		panic(fmt.Sprintf("gesture: digit out of range: %d", n))
	}
	return Digit0 + Token(n)
}

// Digit returns the digit value of a digit token, and whether the
// token is one.
func (t Token) Digit() (int, bool) {
	if t >= Digit0 && t <= Digit9 {
		return int(t - Digit0), true
	}
	return 0, false
}

// String returns a short name for logging and wire payloads.
func (t Token) String() string {
	if d, ok := t.Digit(); ok {
		return fmt.Sprintf("digit-%d", d)
	}
	switch t {
	case BothOpen:
		return "both-open"
	case BothFist:
		return "both-fist"
	case Neutral:
		return "neutral"
	case Undefined:
		return "undefined"
	}
	return fmt.Sprintf("token(%d)", int(t))
}
