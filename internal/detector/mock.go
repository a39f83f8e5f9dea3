package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []HandLandmarks
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Synthetic pose fixtures.
//
// The geometry below describes a right hand in selfie view: wrist near
// the bottom of the frame, fingers pointing up, thumb on the low-X
// side. Left-hand poses are produced by mirroring X, which also flips
// the palm-edge cross product the thumb heuristic relies on, so the
// fixtures exercise the same code paths the live detector does.

// fingerGeometry holds the MCP anchor and the joint offsets for one
// non-thumb finger in the canonical right-hand pose.
type fingerGeometry struct {
	mcp        Point3D
	openJoints [3]Point3D // PIP, DIP, TIP when extended
}

var rightHandFingers = map[int]fingerGeometry{
	IndexMCP: {
		mcp:        Point3D{X: 0.44, Y: 0.60},
		openJoints: [3]Point3D{{X: 0.43, Y: 0.47}, {X: 0.42, Y: 0.37}, {X: 0.42, Y: 0.30}},
	},
	MiddleMCP: {
		mcp:        Point3D{X: 0.50, Y: 0.58},
		openJoints: [3]Point3D{{X: 0.50, Y: 0.44}, {X: 0.50, Y: 0.34}, {X: 0.50, Y: 0.26}},
	},
	RingMCP: {
		mcp:        Point3D{X: 0.56, Y: 0.60},
		openJoints: [3]Point3D{{X: 0.57, Y: 0.47}, {X: 0.58, Y: 0.37}, {X: 0.58, Y: 0.30}},
	},
	PinkyMCP: {
		mcp:        Point3D{X: 0.62, Y: 0.63},
		openJoints: [3]Point3D{{X: 0.63, Y: 0.53}, {X: 0.64, Y: 0.45}, {X: 0.64, Y: 0.39}},
	},
}

// PatternPose builds a synthetic hand whose fingers match the given
// openness pattern, ordered thumb, index, middle, ring, pinky.
func PatternPose(open [5]bool, handedness string) HandLandmarks {
	lm := HandLandmarks{
		Handedness: handedness,
		Score:      0.95,
	}

	lm.Points[Wrist] = Point3D{X: 0.50, Y: 0.85}

	// Thumb extends laterally toward low X when open, tucks against
	// the palm when closed.
	lm.Points[ThumbCMC] = Point3D{X: 0.46, Y: 0.80}
	lm.Points[ThumbMCP] = Point3D{X: 0.40, Y: 0.76}
	if open[0] {
		lm.Points[ThumbIP] = Point3D{X: 0.33, Y: 0.73}
		lm.Points[ThumbTip] = Point3D{X: 0.28, Y: 0.70}
	} else {
		lm.Points[ThumbIP] = Point3D{X: 0.44, Y: 0.74}
		lm.Points[ThumbTip] = Point3D{X: 0.44, Y: 0.70}
	}

	for i, mcpIdx := range []int{IndexMCP, MiddleMCP, RingMCP, PinkyMCP} {
		geo := rightHandFingers[mcpIdx]
		lm.Points[mcpIdx] = geo.mcp

		if open[i+1] {
			lm.Points[mcpIdx+1] = geo.openJoints[0]
			lm.Points[mcpIdx+2] = geo.openJoints[1]
			lm.Points[mcpIdx+3] = geo.openJoints[2]
		} else {
			// Curled: PIP slightly above the knuckle, tip folded back
			// toward the palm below it.
			lm.Points[mcpIdx+1] = Point3D{X: geo.mcp.X, Y: geo.mcp.Y - 0.05}
			lm.Points[mcpIdx+2] = Point3D{X: geo.mcp.X, Y: geo.mcp.Y + 0.01}
			lm.Points[mcpIdx+3] = Point3D{X: geo.mcp.X + 0.01, Y: geo.mcp.Y + 0.06}
		}
	}

	if handedness == "Left" {
		for i := range lm.Points {
			lm.Points[i].X = 1.0 - lm.Points[i].X
		}
	}

	return lm
}

// CountPose returns a hand showing the given finger count, 0 through 5.
// Counting opens the index first and the thumb last, matching how the
// digit patterns are assigned.
func CountPose(n int, handedness string) HandLandmarks {
	var open [5]bool
	order := []int{1, 2, 3, 4, 0} // index, middle, ring, pinky, thumb
	for i := 0; i < n && i < len(order); i++ {
		open[order[i]] = true
	}
	return PatternPose(open, handedness)
}

// OpenHandPose returns a hand with all five fingers extended.
func OpenHandPose(handedness string) HandLandmarks {
	return CountPose(5, handedness)
}

// FistPose returns a hand with all fingers curled.
func FistPose(handedness string) HandLandmarks {
	return CountPose(0, handedness)
}

// ThumbPose returns a hand with only the thumb extended, the pose most
// easily confused with a fist.
func ThumbPose(handedness string) HandLandmarks {
	return PatternPose([5]bool{true, false, false, false, false}, handedness)
}

// RestPose returns the quiescent pinky-only pose used to separate
// consecutive digit entries.
func RestPose(handedness string) HandLandmarks {
	return PatternPose([5]bool{false, false, false, false, true}, handedness)
}
