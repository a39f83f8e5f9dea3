package gesture

import (
	"testing"

	"github.com/ayusman/handlift/internal/detector"
)

// stateFromBits expands a five-bit pattern (thumb highest) into a State.
func stateFromBits(bits uint8) State {
	return State{
		Thumb:  bits&0b10000 != 0,
		Index:  bits&0b01000 != 0,
		Middle: bits&0b00100 != 0,
		Ring:   bits&0b00010 != 0,
		Pinky:  bits&0b00001 != 0,
	}
}

func TestFingers_AllPatterns(t *testing.T) {
	// Every one of the 32 openness patterns, synthesized for both
	// hands, must classify back to itself.
	for _, handedness := range []string{"Right", "Left"} {
		for bits := uint8(0); bits < 32; bits++ {
			want := stateFromBits(bits)
			pose := detector.PatternPose(
				[5]bool{want.Thumb, want.Index, want.Middle, want.Ring, want.Pinky},
				handedness,
			)

			got := Fingers(&pose, DefaultTolerance)
			if got != want {
				t.Errorf("%s hand pattern %05b: got %v, want %v", handedness, bits, got, want)
			}
		}
	}
}

func TestFingers_ToleranceParametrized(t *testing.T) {
	pose := detector.OpenHandPose("Right")

	for _, tolerance := range []float64{0.05, 0.10, 0.25} {
		got := Fingers(&pose, tolerance)
		if got.Count() != 5 {
			t.Errorf("tolerance %.2f: open hand classified as %v", tolerance, got)
		}
	}

	// A margin wider than any finger's reach closes everything.
	got := Fingers(&pose, 3.0)
	if got.Count() != 0 {
		t.Errorf("tolerance 3.0: expected all fingers closed, got %v", got)
	}
}

func TestFingers_ThumbVsFist(t *testing.T) {
	for _, handedness := range []string{"Right", "Left"} {
		thumb := detector.ThumbPose(handedness)
		if got := Fingers(&thumb, DefaultTolerance); got != (State{Thumb: true}) {
			t.Errorf("%s thumb pose: got %v, want thumb only", handedness, got)
		}

		fist := detector.FistPose(handedness)
		if got := Fingers(&fist, DefaultTolerance); got != (State{}) {
			t.Errorf("%s fist pose: got %v, want all closed", handedness, got)
		}
	}
}

func TestFingers_BackOfHand(t *testing.T) {
	// Right-hand geometry labeled "Left" is what the detector reports
	// when the user shows the back of the left hand: the palm-facing
	// estimate must flip the thumb direction so the open thumb still
	// reads as open.
	pose := detector.ThumbPose("Right")
	pose.Handedness = "Left"

	got := Fingers(&pose, DefaultTolerance)
	if !got.Thumb {
		t.Errorf("back-of-hand thumb pose: got %v, want thumb open", got)
	}
}

func TestFingers_DegenerateGeometry(t *testing.T) {
	// All landmarks collapsed onto one point: zero palm size must
	// degrade to all-closed, not panic.
	var hand detector.HandLandmarks
	hand.Handedness = "Right"
	for i := range hand.Points {
		hand.Points[i] = detector.Point3D{X: 0.5, Y: 0.5}
	}

	got := Fingers(&hand, DefaultTolerance)
	if got != (State{}) {
		t.Errorf("degenerate hand: got %v, want all closed", got)
	}
}

func TestFingers_NilHand(t *testing.T) {
	if got := Fingers(nil, DefaultTolerance); got != (State{}) {
		t.Errorf("nil hand: got %v, want zero state", got)
	}
}

func TestState_Count(t *testing.T) {
	if got := (State{}).Count(); got != 0 {
		t.Errorf("empty state count = %d, want 0", got)
	}
	if got := (State{Thumb: true, Pinky: true}).Count(); got != 2 {
		t.Errorf("two-finger count = %d, want 2", got)
	}
	if got := stateFromBits(0b11111).Count(); got != 5 {
		t.Errorf("full state count = %d, want 5", got)
	}
}
