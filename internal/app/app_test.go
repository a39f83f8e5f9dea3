package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ayusman/handlift/internal/confirm"
	"github.com/ayusman/handlift/internal/detector"
	"github.com/ayusman/handlift/internal/store"
)

func testAppStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

// testApp builds an App with short hold times so a full selection fits
// in a few simulated frames. The pipeline goroutine is never started;
// tests drive processHands directly with explicit timestamps.
func testApp(t *testing.T, s *store.Store) *App {
	t.Helper()

	return New(Config{
		Store: s,
		Runtime: RuntimeConfig{
			Confirm: confirm.Config{
				HoldTime:          100 * time.Millisecond,
				HoldTimeZero:      150 * time.Millisecond,
				UndefinedHoldTime: 300 * time.Millisecond,
				NeutralHoldTime:   50 * time.Millisecond,
			},
			FingerTolerance: 0.10,
			MotionThreshold: 1.0,
		},
	})
}

// feed presents the same hands every 25ms until the given duration has
// elapsed, returning the timestamp after the last frame.
func feed(a *App, hands []detector.HandLandmarks, from time.Time, d time.Duration) time.Time {
	end := from.Add(d)
	t := from
	for !t.After(end) {
		a.processHands(hands, t)
		t = t.Add(25 * time.Millisecond)
	}
	return t
}

func TestApp_CompleteSelection(t *testing.T) {
	s := testAppStore(t)
	a := testApp(t, s)

	var dispatched string
	a.OnDispatch(func(floor string) { dispatched = floor })

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	bothOpen := []detector.HandLandmarks{
		detector.OpenHandPose("Right"),
		detector.OpenHandPose("Left"),
	}
	digit3 := []detector.HandLandmarks{detector.CountPose(3, "Right")}
	bothFist := []detector.HandLandmarks{
		detector.FistPose("Right"),
		detector.FistPose("Left"),
	}

	now := feed(a, bothOpen, base, 200*time.Millisecond)
	if got := a.Snapshot().Mode; got != "positive-listen" {
		t.Fatalf("mode after start entry = %q, want %q", got, "positive-listen")
	}

	now = feed(a, digit3, now, 200*time.Millisecond)
	if got := a.Snapshot().Pending; got != "3" {
		t.Fatalf("pending after digit hold = %q, want %q", got, "3")
	}

	feed(a, bothFist, now, 250*time.Millisecond)

	if dispatched != "3" {
		t.Errorf("dispatch callback floor = %q, want %q", dispatched, "3")
	}
	if got := a.Snapshot().LastFloor; got != "3" {
		t.Errorf("snapshot last floor = %q, want %q", got, "3")
	}

	trips, err := s.Trips().List(0)
	if err != nil {
		t.Fatalf("failed to list trips: %v", err)
	}
	if len(trips) != 1 {
		t.Fatalf("got %d trips, want 1", len(trips))
	}
	if trips[0].Floor != "3" {
		t.Errorf("trip floor = %q, want %q", trips[0].Floor, "3")
	}
	if trips[0].Status != store.TripStatusOK {
		t.Errorf("trip status = %q, want %q", trips[0].Status, store.TripStatusOK)
	}
	if trips[0].Digits != 1 {
		t.Errorf("trip digits = %d, want 1", trips[0].Digits)
	}
}

func TestApp_DropsLowConfidenceHands(t *testing.T) {
	a := testApp(t, nil)

	faint := detector.OpenHandPose("Right")
	faint.Score = 0.2

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	a.processHands([]detector.HandLandmarks{faint}, base)

	snap := a.Snapshot()
	if len(snap.Hands) != 0 {
		t.Errorf("got %d tracked hands, want 0", len(snap.Hands))
	}
	if snap.Token != "undefined" {
		t.Errorf("token = %q, want %q", snap.Token, "undefined")
	}
}

func TestApp_CapsTrackedHands(t *testing.T) {
	a := testApp(t, nil)

	hands := []detector.HandLandmarks{
		detector.OpenHandPose("Right"),
		detector.OpenHandPose("Left"),
		detector.OpenHandPose("Right"),
	}

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	a.processHands(hands, base)

	if got := len(a.Snapshot().Hands); got != MaxTrackedHands {
		t.Errorf("got %d tracked hands, want %d", got, MaxTrackedHands)
	}
}

func TestApp_SetEnabled(t *testing.T) {
	a := testApp(t, nil)

	if a.IsEnabled() {
		t.Error("app should start disabled")
	}

	a.SetEnabled(true)
	if !a.IsEnabled() {
		t.Error("app should be enabled after SetEnabled(true)")
	}

	a.SetEnabled(false)
	if a.IsEnabled() {
		t.Error("app should be disabled after SetEnabled(false)")
	}
}

func TestApp_SnapshotReflectsFingers(t *testing.T) {
	a := testApp(t, nil)

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	a.processHands([]detector.HandLandmarks{detector.CountPose(2, "Right")}, base)

	snap := a.Snapshot()
	if len(snap.Fingers) != 1 {
		t.Fatalf("got %d finger states, want 1", len(snap.Fingers))
	}
	if got := snap.Fingers[0].Count(); got != 2 {
		t.Errorf("finger count = %d, want 2", got)
	}
	if snap.Token != "digit-2" {
		t.Errorf("token = %q, want %q", snap.Token, "digit-2")
	}
}

func TestLoadRuntimeConfig_Defaults(t *testing.T) {
	cfg, err := LoadRuntimeConfig(nil)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	want := DefaultRuntimeConfig()
	if cfg != want {
		t.Errorf("config = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoadRuntimeConfig_Overrides(t *testing.T) {
	s := testAppStore(t)
	settings := s.Settings()

	if err := settings.Set(SettingHoldTimeMs, "800"); err != nil {
		t.Fatalf("failed to set setting: %v", err)
	}
	if err := settings.Set(SettingFingerTolerance, "0.2"); err != nil {
		t.Fatalf("failed to set setting: %v", err)
	}

	cfg, err := LoadRuntimeConfig(settings)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Confirm.HoldTime != 800*time.Millisecond {
		t.Errorf("HoldTime = %v, want 800ms", cfg.Confirm.HoldTime)
	}
	if cfg.FingerTolerance != 0.2 {
		t.Errorf("FingerTolerance = %v, want 0.2", cfg.FingerTolerance)
	}

	// Untouched keys keep their defaults.
	if cfg.Confirm.HoldTimeZero != confirm.DefaultConfig().HoldTimeZero {
		t.Errorf("HoldTimeZero = %v, want default", cfg.Confirm.HoldTimeZero)
	}
}

func TestLoadRuntimeConfig_RejectsMalformedValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{SettingHoldTimeMs, "fast"},
		{SettingHoldTimeMs, "-100"},
		{SettingFingerTolerance, "lots"},
		{SettingFingerTolerance, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			s := testAppStore(t)
			if err := s.Settings().Set(tt.key, tt.value); err != nil {
				t.Fatalf("failed to set setting: %v", err)
			}

			if _, err := LoadRuntimeConfig(s.Settings()); err == nil {
				t.Error("expected error for malformed setting")
			}
		})
	}
}
