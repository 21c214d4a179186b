package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Rounds table - one row per settled round
		`CREATE TABLE IF NOT EXISTS rounds (
			id TEXT PRIMARY KEY,
			mode TEXT NOT NULL CHECK(mode IN ('pvp', 'pve')),
			player_one TEXT NOT NULL,
			player_two TEXT NOT NULL,
			outcome TEXT NOT NULL CHECK(outcome IN ('invalid', 'tie', 'player_one', 'player_two')),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_rounds_created_at ON rounds(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_mode ON rounds(mode)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
