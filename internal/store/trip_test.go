package store

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestTrip(floor string) *Trip {
	return &Trip{
		ID:     uuid.New().String(),
		Floor:  floor,
		Digits: len(floor),
		Status: TripStatusOK,
	}
}

func TestTripRepository_Create(t *testing.T) {
	repo := testStore(t).Trips()

	trip := newTestTrip("12")
	if err := repo.Create(trip); err != nil {
		t.Fatalf("failed to create trip: %v", err)
	}

	if trip.DispatchedAt.IsZero() {
		t.Error("Create should set DispatchedAt when unset")
	}

	got, err := repo.GetByID(trip.ID)
	if err != nil {
		t.Fatalf("failed to get trip: %v", err)
	}

	if got.Floor != "12" {
		t.Errorf("Floor = %q, want %q", got.Floor, "12")
	}
	if got.Digits != 2 {
		t.Errorf("Digits = %d, want 2", got.Digits)
	}
	if got.Status != TripStatusOK {
		t.Errorf("Status = %q, want %q", got.Status, TripStatusOK)
	}
}

func TestTripRepository_CreateFailed(t *testing.T) {
	repo := testStore(t).Trips()

	trip := newTestTrip("7")
	trip.Status = TripStatusFailed
	trip.Error = "door blocked"
	if err := repo.Create(trip); err != nil {
		t.Fatalf("failed to create trip: %v", err)
	}

	got, err := repo.GetByID(trip.ID)
	if err != nil {
		t.Fatalf("failed to get trip: %v", err)
	}

	if got.Status != TripStatusFailed {
		t.Errorf("Status = %q, want %q", got.Status, TripStatusFailed)
	}
	if got.Error != "door blocked" {
		t.Errorf("Error = %q, want %q", got.Error, "door blocked")
	}
}

func TestTripRepository_GetByID_NotFound(t *testing.T) {
	repo := testStore(t).Trips()

	_, err := repo.GetByID("no-such-trip")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestTripRepository_List(t *testing.T) {
	repo := testStore(t).Trips()

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, floor := range []string{"3", "12", "7"} {
		trip := newTestTrip(floor)
		trip.DispatchedAt = base.Add(time.Duration(i) * time.Minute)
		if err := repo.Create(trip); err != nil {
			t.Fatalf("failed to create trip %d: %v", i, err)
		}
	}

	trips, err := repo.List(0)
	if err != nil {
		t.Fatalf("failed to list trips: %v", err)
	}

	if len(trips) != 3 {
		t.Fatalf("got %d trips, want 3", len(trips))
	}

	// Newest first
	if trips[0].Floor != "7" || trips[2].Floor != "3" {
		t.Errorf("trips not ordered newest first: %q, %q, %q",
			trips[0].Floor, trips[1].Floor, trips[2].Floor)
	}
}

func TestTripRepository_ListLimit(t *testing.T) {
	repo := testStore(t).Trips()

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		trip := newTestTrip("4")
		trip.DispatchedAt = base.Add(time.Duration(i) * time.Minute)
		if err := repo.Create(trip); err != nil {
			t.Fatalf("failed to create trip %d: %v", i, err)
		}
	}

	trips, err := repo.List(2)
	if err != nil {
		t.Fatalf("failed to list trips: %v", err)
	}

	if len(trips) != 2 {
		t.Errorf("got %d trips, want 2", len(trips))
	}
}

func TestTripRepository_ListEmpty(t *testing.T) {
	repo := testStore(t).Trips()

	trips, err := repo.List(0)
	if err != nil {
		t.Fatalf("failed to list trips: %v", err)
	}
	if len(trips) != 0 {
		t.Errorf("got %d trips, want 0", len(trips))
	}
}

func TestTripRepository_DeleteBefore(t *testing.T) {
	repo := testStore(t).Trips()

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		trip := newTestTrip("9")
		trip.DispatchedAt = base.Add(time.Duration(i) * time.Hour)
		if err := repo.Create(trip); err != nil {
			t.Fatalf("failed to create trip %d: %v", i, err)
		}
	}

	deleted, err := repo.DeleteBefore(base.Add(2 * time.Hour))
	if err != nil {
		t.Fatalf("failed to delete trips: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}

	trips, err := repo.List(0)
	if err != nil {
		t.Fatalf("failed to list trips: %v", err)
	}
	if len(trips) != 2 {
		t.Errorf("got %d trips after cleanup, want 2", len(trips))
	}
}
