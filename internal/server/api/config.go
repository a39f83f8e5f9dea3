package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ayusman/handlift/internal/app"
	"github.com/ayusman/handlift/internal/store"
)

// ConfigHandler exposes the tunable recognition parameters. Updates are
// persisted to the settings table and take effect on the next restart.
type ConfigHandler struct {
	store *store.Store
}

// NewConfigHandler creates a new ConfigHandler with the given store.
func NewConfigHandler(s *store.Store) *ConfigHandler {
	return &ConfigHandler{store: s}
}

// ServeHTTP implements the http.Handler interface.
func (h *ConfigHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type configResponse struct {
	HoldTimeMs          int     `json:"hold_time_ms"`
	HoldTimeZeroMs      int     `json:"hold_time_zero_ms"`
	UndefinedHoldTimeMs int     `json:"undefined_hold_time_ms"`
	NeutralHoldTimeMs   int     `json:"neutral_hold_time_ms"`
	FingerTolerance     float64 `json:"finger_tolerance"`
	MotionThreshold     float64 `json:"motion_threshold"`
}

// updateConfigRequest uses pointer fields so a PUT can change a subset
// of parameters without resetting the rest.
type updateConfigRequest struct {
	HoldTimeMs          *int     `json:"hold_time_ms"`
	HoldTimeZeroMs      *int     `json:"hold_time_zero_ms"`
	UndefinedHoldTimeMs *int     `json:"undefined_hold_time_ms"`
	NeutralHoldTimeMs   *int     `json:"neutral_hold_time_ms"`
	FingerTolerance     *float64 `json:"finger_tolerance"`
	MotionThreshold     *float64 `json:"motion_threshold"`
}

func toConfigResponse(cfg app.RuntimeConfig) configResponse {
	return configResponse{
		HoldTimeMs:          int(cfg.Confirm.HoldTime / time.Millisecond),
		HoldTimeZeroMs:      int(cfg.Confirm.HoldTimeZero / time.Millisecond),
		UndefinedHoldTimeMs: int(cfg.Confirm.UndefinedHoldTime / time.Millisecond),
		NeutralHoldTimeMs:   int(cfg.Confirm.NeutralHoldTime / time.Millisecond),
		FingerTolerance:     cfg.FingerTolerance,
		MotionThreshold:     cfg.MotionThreshold,
	}
}

// get handles GET /api/config and returns the effective parameters.
func (h *ConfigHandler) get(w http.ResponseWriter, r *http.Request) {
	cfg, err := app.LoadRuntimeConfig(h.store.Settings())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load config")
		return
	}

	writeJSON(w, http.StatusOK, toConfigResponse(cfg))
}

// update handles PUT /api/config and persists the provided parameters.
func (h *ConfigHandler) update(w http.ResponseWriter, r *http.Request) {
	var req updateConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Collect and validate everything before writing so an invalid field
	// cannot leave a half-applied update behind.
	updates := make(map[string]string)

	durations := []struct {
		key   string
		value *int
	}{
		{app.SettingHoldTimeMs, req.HoldTimeMs},
		{app.SettingHoldTimeZeroMs, req.HoldTimeZeroMs},
		{app.SettingUndefinedHoldTimeMs, req.UndefinedHoldTimeMs},
		{app.SettingNeutralHoldTimeMs, req.NeutralHoldTimeMs},
	}
	for _, d := range durations {
		if d.value == nil {
			continue
		}
		if *d.value <= 0 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("%s must be positive", d.key))
			return
		}
		updates[d.key] = strconv.Itoa(*d.value)
	}

	floats := []struct {
		key   string
		value *float64
	}{
		{app.SettingFingerTolerance, req.FingerTolerance},
		{app.SettingMotionThreshold, req.MotionThreshold},
	}
	for _, f := range floats {
		if f.value == nil {
			continue
		}
		if *f.value <= 0 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("%s must be positive", f.key))
			return
		}
		updates[f.key] = strconv.FormatFloat(*f.value, 'f', -1, 64)
	}

	settings := h.store.Settings()
	for key, value := range updates {
		if err := settings.Set(key, value); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save config")
			return
		}
	}

	cfg, err := app.LoadRuntimeConfig(settings)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load config")
		return
	}

	writeJSON(w, http.StatusOK, toConfigResponse(cfg))
}
