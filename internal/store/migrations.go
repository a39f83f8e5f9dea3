package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Trips table - one row per confirmed floor dispatch
		`CREATE TABLE IF NOT EXISTS trips (
			id TEXT PRIMARY KEY,
			floor TEXT NOT NULL,
			digits INTEGER NOT NULL DEFAULT 1,
			status TEXT NOT NULL CHECK(status IN ('ok', 'failed')),
			error TEXT NOT NULL DEFAULT '',
			dispatched_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Settings table - stores application settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Index for the trip history listing, newest first
		`CREATE INDEX IF NOT EXISTS idx_trips_dispatched_at ON trips(dispatched_at)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
