package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Profiles table - named sets of recognition tuning knobs
		`CREATE TABLE IF NOT EXISTS profiles (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			settings TEXT NOT NULL DEFAULT '{}',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Custom poses table - user letter definitions layered over the
		// built-in library
		`CREATE TABLE IF NOT EXISTS custom_poses (
			id TEXT PRIMARY KEY,
			letter TEXT NOT NULL UNIQUE,
			require_pinch INTEGER NOT NULL DEFAULT 0,
			require_circle INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Per-finger curl requirements for custom poses
		`CREATE TABLE IF NOT EXISTS pose_fingers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			pose_id TEXT NOT NULL REFERENCES custom_poses(id) ON DELETE CASCADE,
			finger INTEGER NOT NULL,
			requirement TEXT NOT NULL CHECK(requirement IN ('any', 'open', 'closed'))
		)`,

		// Optional canonical direction vectors for custom poses,
		// in hand-frame coordinates
		`CREATE TABLE IF NOT EXISTS pose_directions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			pose_id TEXT NOT NULL REFERENCES custom_poses(id) ON DELETE CASCADE,
			finger INTEGER NOT NULL,
			x REAL NOT NULL,
			y REAL NOT NULL,
			z REAL NOT NULL
		)`,

		// Practice sessions
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			ended_at DATETIME
		)`,

		// Recognition events logged during a session
		`CREATE TABLE IF NOT EXISTS recognition_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			letter TEXT NOT NULL,
			confidence REAL NOT NULL,
			at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Indexes for better query performance
		`CREATE INDEX IF NOT EXISTS idx_pose_fingers_pose_id ON pose_fingers(pose_id)`,
		`CREATE INDEX IF NOT EXISTS idx_pose_directions_pose_id ON pose_directions(pose_id)`,
		`CREATE INDEX IF NOT EXISTS idx_recognition_events_session_id ON recognition_events(session_id)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
