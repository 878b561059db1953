package game

import (
	"encoding/json"
	"fmt"
)

// Outcome is the result of a round from the player's perspective.
type Outcome int

const (
	// Draw means both sides threw the same move.
	Draw Outcome = iota
	// Win means the player's move beat the opponent's.
	Win
	// Lose means the opponent's move beat the player's.
	Lose
)

// String returns the lowercase name of the outcome.
func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Lose:
		return "lose"
	}
	return "draw"
}

// MarshalJSON encodes the outcome as its lowercase name.
func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// UnmarshalJSON decodes an outcome from its lowercase name.
func (o *Outcome) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "win":
		*o = Win
	case "lose":
		*o = Lose
	case "draw":
		*o = Draw
	default:
		return fmt.Errorf("invalid outcome %q", s)
	}
	return nil
}

// Resolve computes the round outcome for the given player and opponent moves.
func Resolve(player, opponent Move) Outcome {
	switch {
	case player == opponent:
		return Draw
	case player.Beats(opponent):
		return Win
	default:
		return Lose
	}
}

// RoundRecord captures one completed round. Immutable once created.
type RoundRecord struct {
	Round    int     `json:"round"`
	Player   Move    `json:"player"`
	Opponent Move    `json:"opponent"`
	Outcome  Outcome `json:"outcome"`
}

// MatchScore tracks cumulative wins for both sides against a target.
type MatchScore struct {
	PlayerWins   int `json:"player_wins"`
	OpponentWins int `json:"opponent_wins"`
	TargetWins   int `json:"target_wins"`
}

// Apply updates the score for an outcome and reports whether the match is
// over. A draw never advances either counter and never ends the match;
// match-over is evaluated strictly after the increment for this round.
func (s *MatchScore) Apply(o Outcome) bool {
	switch o {
	case Win:
		s.PlayerWins++
	case Lose:
		s.OpponentWins++
	default:
		return false
	}
	return s.PlayerWins >= s.TargetWins || s.OpponentWins >= s.TargetWins
}

// String renders the score as "player-opponent", e.g. "3-0".
func (s MatchScore) String() string {
	return fmt.Sprintf("%d-%d", s.PlayerWins, s.OpponentWins)
}

// SessionStats tallies round outcomes for the session. The counters always
// equal the tallies over the session's round records.
type SessionStats struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

// Add records one outcome in the tallies.
func (st *SessionStats) Add(o Outcome) {
	switch o {
	case Win:
		st.Wins++
	case Lose:
		st.Losses++
	default:
		st.Draws++
	}
}
