package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// TripStatus represents the outcome of a floor dispatch.
type TripStatus string

const (
	// TripStatusOK means the car controller accepted the request.
	TripStatusOK TripStatus = "ok"
	// TripStatusFailed means the dispatch was rejected or errored.
	TripStatusFailed TripStatus = "failed"
)

// Trip represents one confirmed floor selection recorded in the database.
type Trip struct {
	ID           string
	Floor        string
	Digits       int
	Status       TripStatus
	Error        string
	DispatchedAt time.Time
}

// TripRepository provides CRUD operations for trips.
type TripRepository struct {
	db *sql.DB
}

// Trips returns the trip repository for this store.
func (s *Store) Trips() *TripRepository {
	return &TripRepository{db: s.db}
}

// Create inserts a new trip into the database.
func (r *TripRepository) Create(t *Trip) error {
	if t.DispatchedAt.IsZero() {
		t.DispatchedAt = time.Now()
	}

	_, err := r.db.Exec(
		`INSERT INTO trips (id, floor, digits, status, error, dispatched_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.Floor, t.Digits, string(t.Status), t.Error, t.DispatchedAt,
	)
	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves a trip by its ID.
func (r *TripRepository) GetByID(id string) (*Trip, error) {
	t := &Trip{}
	var status string

	err := r.db.QueryRow(
		`SELECT id, floor, digits, status, error, dispatched_at
		 FROM trips WHERE id = ?`,
		id,
	).Scan(&t.ID, &t.Floor, &t.Digits, &status, &t.Error, &t.DispatchedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	t.Status = TripStatus(status)
	return t, nil
}

// List retrieves the most recent trips, newest first. A limit of zero
// or less returns the full history.
func (r *TripRepository) List(limit int) ([]*Trip, error) {
	query := `SELECT id, floor, digits, status, error, dispatched_at
	 FROM trips ORDER BY dispatched_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*Trip
	for rows.Next() {
		t := &Trip{}
		var status string

		err := rows.Scan(&t.ID, &t.Floor, &t.Digits, &status, &t.Error, &t.DispatchedAt)
		if err != nil {
			return nil, err
		}

		t.Status = TripStatus(status)
		trips = append(trips, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return trips, nil
}

// DeleteBefore removes trips dispatched before the cutoff and returns
// the number of rows deleted. Used to keep the history bounded.
func (r *TripRepository) DeleteBefore(cutoff time.Time) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM trips WHERE dispatched_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
