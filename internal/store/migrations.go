package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Matches table - one row per started match
		`CREATE TABLE IF NOT EXISTS matches (
			id TEXT PRIMARY KEY,
			target_wins INTEGER NOT NULL,
			difficulty TEXT NOT NULL CHECK(difficulty IN ('random', 'adaptive')),
			player_wins INTEGER NOT NULL DEFAULT 0,
			opponent_wins INTEGER NOT NULL DEFAULT 0,
			winner TEXT NOT NULL DEFAULT '',
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			ended_at DATETIME
		)`,

		// Rounds table - the per-round log of each match
		`CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
			round_number INTEGER NOT NULL,
			player_move TEXT NOT NULL,
			opponent_move TEXT NOT NULL,
			outcome TEXT NOT NULL CHECK(outcome IN ('win', 'lose', 'draw')),
			played_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Indexes for better query performance
		`CREATE INDEX IF NOT EXISTS idx_rounds_match_id ON rounds(match_id)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
