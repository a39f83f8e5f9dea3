package app

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/handlift/internal/detector"
	"github.com/ayusman/handlift/internal/gesture"
)

// Snapshot is one frame of recognition output, published to the panel
// UI over the landmarks WebSocket.
type Snapshot struct {
	Hands     []detector.HandLandmarks `json:"hands"`
	Fingers   []gesture.State          `json:"fingers"`
	Token     string                   `json:"token"`
	Mode      string                   `json:"mode"`
	Pending   string                   `json:"pending"`
	LastFloor string                   `json:"last_floor"`
}

// Snapshot returns the most recent recognition state.
func (a *App) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snapshot
}

func newTripID() string {
	return uuid.New().String()
}

// runPipeline is the main loop that processes frames from the camera.
//
// Pipeline logic:
// 1. Start in idle mode (IdleFPS)
// 2. On motion detected, switch to active mode (ActiveFPS)
// 3. Run hand detection, drop low-confidence hands, keep at most two
// 4. Read finger states and interpret the frame's gesture token
// 5. Feed the token to the confirmation machine
// 6. On a confirmed selection, record the trip and notify
// 7. After 2s without motion, drop back to idle mode
func (a *App) runPipeline(stopCh chan struct{}) {
	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				// Drop any half-entered floor while disabled.
				a.machine.Reset()
				continue
			}

			frame, err := a.Camera().ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				if !activeMode {
					activeMode = true
					a.Camera().SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.Camera().SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			if !activeMode {
				frame.Close()
				continue
			}

			hands, err := a.Detector().Detect(frame)
			frame.Close()

			if err != nil {
				log.Printf("Error detecting hands: %v", err)
				continue
			}

			a.processHands(hands, time.Now())
		}
	}
}

// processHands runs one frame's detections through interpretation and
// the confirmation machine, then publishes the snapshot.
func (a *App) processHands(hands []detector.HandLandmarks, now time.Time) {
	tracked := hands[:0:0]
	for i := range hands {
		if hands[i].Score < a.config.MinConfidence {
			continue
		}
		tracked = append(tracked, hands[i])
		if len(tracked) == MaxTrackedHands {
			break
		}
	}

	observed := make([]gesture.Observed, len(tracked))
	fingers := make([]gesture.State, len(tracked))
	for i := range tracked {
		observed[i] = gesture.Observe(&tracked[i], a.config.Runtime.FingerTolerance)
		fingers[i] = observed[i].State
	}

	token := gesture.Interpret(observed)

	// The machine is only touched from the pipeline goroutine, so the
	// dispatch (which can block on the controller) runs unlocked.
	result := a.machine.Observe(token, now)

	a.mu.Lock()
	a.snapshot.Hands = tracked
	a.snapshot.Fingers = fingers
	a.snapshot.Token = token.String()
	a.snapshot.Mode = a.machine.Mode().String()
	a.snapshot.Pending = a.machine.Pending()
	var fn func(string)
	if result.Floor != "" {
		a.snapshot.LastFloor = result.Floor
		fn = a.onDispatch
	}
	a.mu.Unlock()

	if result.Floor == "" {
		return
	}

	if result.Err != nil {
		log.Printf("Dispatch to floor %s failed: %v", result.Floor, result.Err)
	} else {
		log.Printf("Dispatched car to floor %s", result.Floor)
	}
	a.recordTrip(result.Floor, result.Err, now)
	if fn != nil {
		fn(result.Floor)
	}
}
