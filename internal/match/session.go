package match

import (
	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/game"
	"github.com/ayusman/mudra/internal/opponent"
)

// Settings are accepted at match start only; changes mid-match are not
// honored until the next start.
type Settings struct {
	TargetWins int                 `json:"target_wins"`
	Difficulty opponent.Difficulty `json:"difficulty"`
}

// MoveChooser selects the opponent's move for a round. opponent.Selector is
// the production implementation; tests substitute deterministic choosers.
type MoveChooser interface {
	Choose(prev game.Move, model *opponent.Model) game.Move
}

// Recorder persists match progress. All methods are called from the engine
// loop; failures are logged and never fatal to the match.
type Recorder interface {
	MatchStarted(id string, targetWins int, difficulty string) error
	RoundPlayed(matchID string, rec game.RoundRecord) error
	MatchFinished(matchID string, score game.MatchScore, winner string) error
}

// session is the mutable context of one match. Every start allocates a
// fresh session, so state from a previous match can never leak into the
// next one.
type session struct {
	id       string
	settings Settings
	score    game.MatchScore
	prev     game.Move
	history  []game.Move
	model    *opponent.Model
	records  []game.RoundRecord
	stats    game.SessionStats
	round    int
	chooser  MoveChooser
}

func newSession(settings Settings, chooser MoveChooser) *session {
	return &session{
		id:       uuid.NewString(),
		settings: settings,
		score:    game.MatchScore{TargetWins: settings.TargetWins},
		prev:     game.Unknown,
		model:    opponent.NewModel(),
		round:    1,
		chooser:  chooser,
	}
}
