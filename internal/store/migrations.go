package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Transcripts table - stores saved text buffer snapshots
		`CREATE TABLE IF NOT EXISTS transcripts (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Label thresholds table - per-sign confidence threshold overrides
		`CREATE TABLE IF NOT EXISTS label_thresholds (
			label TEXT PRIMARY KEY,
			threshold REAL NOT NULL CHECK(threshold >= 0 AND threshold <= 1)
		)`,

		// Action bindings table - maps sign labels to buffer actions
		`CREATE TABLE IF NOT EXISTS action_bindings (
			label TEXT PRIMARY KEY,
			action TEXT NOT NULL CHECK(action IN ('SPACE', 'BACKSPACE', 'DELETE'))
		)`,

		// Settings table - stores application settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Index for transcript listing
		`CREATE INDEX IF NOT EXISTS idx_transcripts_created_at ON transcripts(created_at)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
