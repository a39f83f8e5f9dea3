package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/handlift/internal/store"
)

func TestAPI_TripHistoryWorkflow(t *testing.T) {
	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer s.Close()

	// Seed a dispatched trip the way the pipeline records them.
	trip := &store.Trip{
		ID:           uuid.New().String(),
		Floor:        "12",
		Digits:       2,
		Status:       store.TripStatusOK,
		DispatchedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := s.Trips().Create(trip); err != nil {
		t.Fatalf("failed to seed trip: %v", err)
	}

	srv := New(Config{Store: s})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	// 1. List trips
	resp, err := client.Get(ts.URL + "/api/trips")
	if err != nil {
		t.Fatalf("GET /api/trips error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/trips status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var listed struct {
		Trips []struct {
			ID    string `json:"id"`
			Floor string `json:"floor"`
		} `json:"trips"`
	}
	json.NewDecoder(resp.Body).Decode(&listed)
	resp.Body.Close()

	if len(listed.Trips) != 1 {
		t.Fatalf("len(trips) = %d, want 1", len(listed.Trips))
	}
	if listed.Trips[0].Floor != "12" {
		t.Errorf("trip floor = %s, want 12", listed.Trips[0].Floor)
	}

	// 2. Get single trip
	resp, _ = client.Get(ts.URL + "/api/trips/" + trip.ID)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/trips/%s status = %d, want %d", trip.ID, resp.StatusCode, http.StatusOK)
	}
	resp.Body.Close()

	// 3. Unknown trip returns 404
	resp, _ = client.Get(ts.URL + "/api/trips/" + uuid.New().String())
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("GET unknown trip status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
	resp.Body.Close()
}

func TestAPI_ConfigWorkflow(t *testing.T) {
	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer s.Close()

	srv := New(Config{Store: s})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	// 1. Update a parameter
	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/config",
		strings.NewReader(`{"hold_time_ms": 1500}`))
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("PUT /api/config error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT /api/config status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	resp.Body.Close()

	// 2. Read it back
	resp, _ = client.Get(ts.URL + "/api/config")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/config status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var cfg struct {
		HoldTimeMs int `json:"hold_time_ms"`
	}
	json.NewDecoder(resp.Body).Decode(&cfg)
	resp.Body.Close()

	if cfg.HoldTimeMs != 1500 {
		t.Errorf("hold_time_ms = %d, want 1500", cfg.HoldTimeMs)
	}
}

func TestAPI_HealthCheck(t *testing.T) {
	srv := New(Config{})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	resp, err := ts.Client().Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET /api/health error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var health struct {
		Status string `json:"status"`
		Uptime string `json:"uptime"`
	}
	json.NewDecoder(resp.Body).Decode(&health)

	if health.Status != "ok" {
		t.Errorf("status = %s, want ok", health.Status)
	}
}
