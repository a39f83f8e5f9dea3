package app

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ayusman/handlift/internal/confirm"
	"github.com/ayusman/handlift/internal/gesture"
	"github.com/ayusman/handlift/internal/store"
)

// Setting keys recognized in the settings table. Values stored under
// these keys override the built-in defaults at startup.
const (
	SettingHoldTimeMs          = "hold_time_ms"
	SettingHoldTimeZeroMs      = "hold_time_zero_ms"
	SettingUndefinedHoldTimeMs = "undefined_hold_time_ms"
	SettingNeutralHoldTimeMs   = "neutral_hold_time_ms"
	SettingFingerTolerance     = "finger_tolerance"
	SettingMotionThreshold     = "motion_threshold"
)

// RuntimeConfig bundles the tunable recognition parameters. The
// recognition core reads these once at startup; changing a setting
// takes effect on the next restart.
type RuntimeConfig struct {
	Confirm         confirm.Config
	FingerTolerance float64
	MotionThreshold float64
}

// DefaultRuntimeConfig returns the built-in parameter defaults.
func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		Confirm:         confirm.DefaultConfig(),
		FingerTolerance: gesture.DefaultTolerance,
		MotionThreshold: 1.0,
	}
}

// LoadRuntimeConfig overlays stored settings on the defaults. Unset
// keys keep their default; a malformed stored value is an error so a
// bad write does not silently change hold behavior.
func LoadRuntimeConfig(settings *store.SettingsRepository) (RuntimeConfig, error) {
	cfg := DefaultRuntimeConfig()
	if settings == nil {
		return cfg, nil
	}

	stored, err := settings.All()
	if err != nil {
		return cfg, fmt.Errorf("failed to load settings: %w", err)
	}

	durations := map[string]*time.Duration{
		SettingHoldTimeMs:          &cfg.Confirm.HoldTime,
		SettingHoldTimeZeroMs:      &cfg.Confirm.HoldTimeZero,
		SettingUndefinedHoldTimeMs: &cfg.Confirm.UndefinedHoldTime,
		SettingNeutralHoldTimeMs:   &cfg.Confirm.NeutralHoldTime,
	}
	for key, dst := range durations {
		value, ok := stored[key]
		if !ok {
			continue
		}
		ms, err := strconv.Atoi(value)
		if err != nil || ms <= 0 {
			return cfg, fmt.Errorf("invalid setting %s=%q", key, value)
		}
		*dst = time.Duration(ms) * time.Millisecond
	}

	floats := map[string]*float64{
		SettingFingerTolerance: &cfg.FingerTolerance,
		SettingMotionThreshold: &cfg.MotionThreshold,
	}
	for key, dst := range floats {
		value, ok := stored[key]
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return cfg, fmt.Errorf("invalid setting %s=%q", key, value)
		}
		*dst = f
	}

	return cfg, nil
}
