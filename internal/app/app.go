// Package app provides the main application logic for the HandLift floor selection system.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/ayusman/handlift/internal/capture"
	"github.com/ayusman/handlift/internal/confirm"
	"github.com/ayusman/handlift/internal/detector"
	"github.com/ayusman/handlift/internal/gesture"
	"github.com/ayusman/handlift/internal/sink"
	"github.com/ayusman/handlift/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate while nobody is moving in front of the panel.
	IdleFPS = 5
	// ActiveFPS is the frame rate while a rider is being tracked.
	ActiveFPS = 15
	// IdleTimeoutMs is how long without motion before dropping back to idle.
	IdleTimeoutMs = 2000
	// MaxTrackedHands caps how many detected hands feed the interpreter.
	MaxTrackedHands = 2
)

// Config holds configuration options for the application.
type Config struct {
	Store    *store.Store
	CameraID int
	Runtime  RuntimeConfig

	// MinConfidence drops detected hands below this score before
	// interpretation.
	MinConfidence float64

	// SinkExecutable is the path to the car controller executable. When
	// empty, dispatches are logged instead of sent.
	SinkExecutable string
	SinkTimeoutMs  int
}

// App orchestrates the capture, detection, and confirmation pipeline.
type App struct {
	config   Config
	camera   capture.Camera
	motion   *capture.MotionDetector
	detector detector.Detector
	machine  *confirm.Machine
	sink     sink.Sink

	enabled    bool
	mu         sync.RWMutex
	stopCh     chan struct{}
	snapshot   Snapshot
	onDispatch func(floor string)
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	if config.Runtime.MotionThreshold <= 0 {
		config.Runtime.MotionThreshold = 1.0
	}
	if config.Runtime.FingerTolerance <= 0 {
		config.Runtime.FingerTolerance = gesture.DefaultTolerance
	}
	if config.Runtime.Confirm.HoldTime == 0 {
		config.Runtime.Confirm = confirm.DefaultConfig()
	}
	if config.MinConfidence <= 0 {
		config.MinConfidence = 0.5
	}

	var commandSink sink.Sink
	if config.SinkExecutable != "" {
		timeoutMs := config.SinkTimeoutMs
		if timeoutMs <= 0 {
			timeoutMs = 5000
		}
		commandSink = sink.NewExecSink(config.SinkExecutable, timeoutMs)
		log.Printf("Dispatching floor commands to %s", config.SinkExecutable)
	} else {
		commandSink = sink.NewLogSink()
		log.Println("No car controller configured, logging floor commands")
	}

	a := &App{
		config:  config,
		camera:  capture.NewCamera(config.CameraID),
		motion:  capture.NewMotionDetector(config.Runtime.MotionThreshold),
		machine: confirm.New(config.Runtime.Confirm, commandSink),
		sink:    commandSink,
		enabled: false,
		stopCh:  nil,
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables floor selection. While disabled the
// pipeline drops any entry in progress so a half-entered floor cannot
// linger.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether floor selection is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetCamera replaces the camera, e.g. with a recorded frame source.
// Only valid before Start.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// OnDispatch sets a callback invoked after every confirmed dispatch,
// successful or not. Used to update the tray.
func (a *App) OnDispatch(fn func(floor string)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onDispatch = fn
}

// Start begins the recognition pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	a.camera.SetFPS(IdleFPS)

	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Floor selection pipeline started")
	return nil
}

// Stop halts the pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.motion.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Floor selection pipeline stopped")
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// recordTrip persists a confirmed dispatch to the trip history.
func (a *App) recordTrip(floor string, dispatchErr error, at time.Time) {
	if a.config.Store == nil {
		return
	}

	trip := &store.Trip{
		Floor:        floor,
		Digits:       len(floor),
		Status:       store.TripStatusOK,
		DispatchedAt: at,
	}
	trip.ID = newTripID()
	if dispatchErr != nil {
		trip.Status = store.TripStatusFailed
		trip.Error = dispatchErr.Error()
	}

	if err := a.config.Store.Trips().Create(trip); err != nil {
		log.Printf("Failed to record trip to floor %s: %v", floor, err)
	}
}
