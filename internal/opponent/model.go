// Package opponent selects the computer's move. An adaptive selector learns
// a first-order transition model of the human player's throws and counters
// the predicted next throw, mixed with uniform randomization so the model
// stays unexploitable once learned.
package opponent

import (
	"fmt"
	"math/rand"

	"github.com/ayusman/mudra/internal/game"
)

// Difficulty selects the opponent strategy.
type Difficulty string

const (
	// DifficultyRandom plays uniformly random moves.
	DifficultyRandom Difficulty = "random"
	// DifficultyAdaptive predicts the player's next move from the
	// transition model and counters it.
	DifficultyAdaptive Difficulty = "adaptive"
)

// ParseDifficulty validates a difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case DifficultyRandom, DifficultyAdaptive:
		return Difficulty(s), nil
	}
	return "", fmt.Errorf("invalid difficulty %q", s)
}

// DefaultExplorationRate is the probability of playing a uniformly random
// move instead of the model's counter under adaptive difficulty.
const DefaultExplorationRate = 0.3

// Model is a first-order transition model of the player's move sequence:
// observation counts of "next move" keyed by "previous move". Row 0 is the
// no-history sentinel. Counts start at zero and only ever increase within
// a session.
type Model struct {
	counts [game.NumMoves + 1][game.NumMoves]int
}

// NewModel returns an empty transition model.
func NewModel() *Model {
	return &Model{}
}

func row(prev game.Move) int {
	if !prev.Valid() {
		return 0
	}
	return int(prev) + 1
}

// Record adds one observation of cur following prev. An invalid prev files
// the observation under the no-history sentinel.
func (m *Model) Record(prev, cur game.Move) {
	if !cur.Valid() {
		return
	}
	m.counts[row(prev)][cur]++
}

// Count returns the number of times cur has been observed following prev.
func (m *Model) Count(prev, cur game.Move) int {
	if !cur.Valid() {
		return 0
	}
	return m.counts[row(prev)][cur]
}

// Predict returns the most frequent move observed after prev. Ties keep the
// first maximum in enumeration order (Rock, Paper, Scissors). It reports
// false when prev is invalid or no observation exists under that key.
func (m *Model) Predict(prev game.Move) (game.Move, bool) {
	if !prev.Valid() {
		return game.Unknown, false
	}

	counts := m.counts[row(prev)]
	best := game.Unknown
	bestCount := 0
	for _, mv := range game.Moves {
		if counts[mv] > bestCount {
			best = mv
			bestCount = counts[mv]
		}
	}
	if bestCount == 0 {
		return game.Unknown, false
	}
	return best, true
}

// Selector chooses the opponent's move for a round.
type Selector struct {
	difficulty  Difficulty
	exploration float64
	rng         *rand.Rand
}

// NewSelector creates a Selector. A nil rng falls back to a source seeded
// from the global generator; tests pass a seeded source for reproducible
// draws. A non-positive exploration rate falls back to the default.
func NewSelector(d Difficulty, exploration float64, rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	if exploration <= 0 || exploration >= 1 {
		exploration = DefaultExplorationRate
	}
	return &Selector{difficulty: d, exploration: exploration, rng: rng}
}

// Choose picks the opponent's move given the player's previous confirmed
// move and the session's transition model.
//
// Random difficulty, or no prior player move, yields a uniform move. Under
// adaptive difficulty a uniform move is played with the exploration
// probability; otherwise the model's prediction for the player's next
// throw is countered. An unseen transition key also falls back to uniform.
func (s *Selector) Choose(prev game.Move, model *Model) game.Move {
	if s.difficulty == DifficultyRandom || !prev.Valid() {
		return s.random()
	}

	if s.rng.Float64() < s.exploration {
		return s.random()
	}

	predicted, ok := model.Predict(prev)
	if !ok {
		return s.random()
	}
	return predicted.Counter()
}

func (s *Selector) random() game.Move {
	return game.Moves[s.rng.Intn(game.NumMoves)]
}
