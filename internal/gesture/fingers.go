// Package gesture turns per-frame hand landmarks into the discrete
// tokens the floor-entry state machine consumes.
package gesture

import (
	"fmt"
	"log"

	"github.com/ayusman/handlift/internal/detector"
)

// DefaultTolerance is the default openness margin as a fraction of
// palm size. Larger values demand more pronounced extension before a
// finger counts as open.
const DefaultTolerance = 0.10

// minPalmSize is the palm size below which the landmark geometry is
// considered degenerate (e.g. a collapsed detection box).
const minPalmSize = 1e-6

// State is the per-hand finger openness vector, computed independently
// for every frame and never persisted across frames.
type State struct {
	Thumb  bool `json:"thumb"`
	Index  bool `json:"index"`
	Middle bool `json:"middle"`
	Ring   bool `json:"ring"`
	Pinky  bool `json:"pinky"`
}

// Count returns the number of extended fingers.
func (s State) Count() int {
	n := 0
	for _, open := range [5]bool{s.Thumb, s.Index, s.Middle, s.Ring, s.Pinky} {
		if open {
			n++
		}
	}
	return n
}

// bits packs the state into five bits, thumb highest.
func (s State) bits() uint8 {
	var b uint8
	for i, open := range [5]bool{s.Thumb, s.Index, s.Middle, s.Ring, s.Pinky} {
		if open {
			b |= 1 << (4 - i)
		}
	}
	return b
}

// String renders the state as a five-bit pattern, thumb first.
func (s State) String() string {
	return fmt.Sprintf("%05b", s.bits())
}

// Fingers classifies each finger of the hand as extended or curled.
// The tolerance is a fraction of palm size, which normalizes the
// comparison for hand size and distance from the camera. Degenerate
// geometry degrades to all-closed instead of failing the frame.
func Fingers(hand *detector.HandLandmarks, tolerance float64) State {
	if hand == nil {
		return State{}
	}

	palm := hand.PalmSize()
	if palm < minPalmSize {
		log.Printf("gesture: degenerate palm size %.2g for %s hand, treating fingers as closed",
			palm, hand.Handedness)
		return State{}
	}

	wrist := hand.Points[detector.Wrist]
	margin := tolerance * palm

	// A non-thumb finger is open when its tip sits farther from the
	// wrist than its PIP joint does, by more than the margin.
	open := func(tip, pip int) bool {
		return detector.Distance(wrist, hand.Points[tip])-
			detector.Distance(wrist, hand.Points[pip]) > margin
	}

	return State{
		Thumb:  thumbOpen(hand, margin),
		Index:  open(detector.IndexTip, detector.IndexPIP),
		Middle: open(detector.MiddleTip, detector.MiddlePIP),
		Ring:   open(detector.RingTip, detector.RingPIP),
		Pinky:  open(detector.PinkyTip, detector.PinkyPIP),
	}
}

// thumbOpen decides thumb extension with a hybrid heuristic. The thumb
// extends laterally rather than radially, so the tip-past-joint test
// used for the other fingers misreads it. The lateral test instead
// needs to know which image direction is outward for this hand: that
// depends on the handedness label and on whether the palm or the back
// of the hand faces the camera, estimated from the cross product of
// the two palm-edge vectors. A radial check against the opposite palm
// edge then rejects a thumb folded across the palm.
func thumbOpen(hand *detector.HandLandmarks, margin float64) bool {
	wrist := hand.Points[detector.Wrist]
	indexMCP := hand.Points[detector.IndexMCP]
	pinkyMCP := hand.Points[detector.PinkyMCP]

	cross := (indexMCP.X-wrist.X)*(pinkyMCP.Y-wrist.Y) -
		(indexMCP.Y-wrist.Y)*(pinkyMCP.X-wrist.X)

	facingCamera := (cross > 0) == (hand.Handedness == "Right")

	// In selfie view an open right-hand thumb moves toward low X and
	// an open left-hand thumb toward high X. Showing the back of the
	// hand flips the direction.
	dir := 1.0
	if hand.Handedness == "Right" {
		dir = -1.0
	}
	if !facingCamera {
		dir = -dir
	}

	lateral := dir*(hand.Points[detector.ThumbTip].X-hand.Points[detector.ThumbMCP].X) > margin
	radial := detector.Distance(hand.Points[detector.ThumbTip], pinkyMCP) >
		detector.Distance(hand.Points[detector.ThumbIP], pinkyMCP)

	return lateral && radial
}
