package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/ayusman/mudra/internal/game"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Match represents a match row. Winner is empty while the match is still
// in progress.
type Match struct {
	ID           string
	TargetWins   int
	Difficulty   string
	PlayerWins   int
	OpponentWins int
	Winner       string
	StartedAt    time.Time
	EndedAt      sql.NullTime
}

// Round represents one logged round of a match.
type Round struct {
	ID       int64
	MatchID  string
	Number   int
	Player   game.Move
	Opponent game.Move
	Outcome  game.Outcome
	PlayedAt time.Time
}

// MatchRepository provides persistence for matches and their round logs.
type MatchRepository struct {
	db *sql.DB
}

// Matches returns the match repository for this store.
func (s *Store) Matches() *MatchRepository {
	return &MatchRepository{db: s.db}
}

// MatchStarted inserts a new in-progress match.
func (r *MatchRepository) MatchStarted(id string, targetWins int, difficulty string) error {
	_, err := r.db.Exec(
		`INSERT INTO matches (id, target_wins, difficulty, started_at)
		 VALUES (?, ?, ?, ?)`,
		id, targetWins, difficulty, time.Now(),
	)
	return err
}

// RoundPlayed appends one round to a match's round log.
func (r *MatchRepository) RoundPlayed(matchID string, rec game.RoundRecord) error {
	_, err := r.db.Exec(
		`INSERT INTO rounds (match_id, round_number, player_move, opponent_move, outcome, played_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		matchID, rec.Round, rec.Player.String(), rec.Opponent.String(), rec.Outcome.String(), time.Now(),
	)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(
		`UPDATE matches
		 SET player_wins = player_wins + ?, opponent_wins = opponent_wins + ?
		 WHERE id = ?`,
		boolToInt(rec.Outcome == game.Win), boolToInt(rec.Outcome == game.Lose), matchID,
	)
	return err
}

// MatchFinished records the final score and winner of a match.
func (r *MatchRepository) MatchFinished(matchID string, score game.MatchScore, winner string) error {
	result, err := r.db.Exec(
		`UPDATE matches
		 SET player_wins = ?, opponent_wins = ?, winner = ?, ended_at = ?
		 WHERE id = ?`,
		score.PlayerWins, score.OpponentWins, winner, time.Now(), matchID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// GetByID retrieves a match by its ID.
func (r *MatchRepository) GetByID(id string) (*Match, error) {
	m := &Match{}

	err := r.db.QueryRow(
		`SELECT id, target_wins, difficulty, player_wins, opponent_wins, winner, started_at, ended_at
		 FROM matches WHERE id = ?`,
		id,
	).Scan(&m.ID, &m.TargetWins, &m.Difficulty, &m.PlayerWins, &m.OpponentWins, &m.Winner, &m.StartedAt, &m.EndedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return m, nil
}

// List retrieves all matches, most recent first.
func (r *MatchRepository) List() ([]*Match, error) {
	rows, err := r.db.Query(
		`SELECT id, target_wins, difficulty, player_wins, opponent_wins, winner, started_at, ended_at
		 FROM matches ORDER BY started_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []*Match
	for rows.Next() {
		m := &Match{}

		err := rows.Scan(&m.ID, &m.TargetWins, &m.Difficulty, &m.PlayerWins, &m.OpponentWins, &m.Winner, &m.StartedAt, &m.EndedAt)
		if err != nil {
			return nil, err
		}

		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return matches, nil
}

// Rounds retrieves a match's round log in play order.
func (r *MatchRepository) Rounds(matchID string) ([]*Round, error) {
	rows, err := r.db.Query(
		`SELECT id, match_id, round_number, player_move, opponent_move, outcome, played_at
		 FROM rounds WHERE match_id = ? ORDER BY round_number ASC`,
		matchID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rounds []*Round
	for rows.Next() {
		rd := &Round{}
		var playerMove, opponentMove, outcome string

		err := rows.Scan(&rd.ID, &rd.MatchID, &rd.Number, &playerMove, &opponentMove, &outcome, &rd.PlayedAt)
		if err != nil {
			return nil, err
		}

		if rd.Player, err = game.ParseMove(playerMove); err != nil {
			return nil, err
		}
		if rd.Opponent, err = game.ParseMove(opponentMove); err != nil {
			return nil, err
		}
		switch outcome {
		case "win":
			rd.Outcome = game.Win
		case "lose":
			rd.Outcome = game.Lose
		default:
			rd.Outcome = game.Draw
		}

		rounds = append(rounds, rd)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rounds, nil
}

// Delete removes a match and, via cascade, its round log.
func (r *MatchRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM matches WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
