// Package game defines the core Rock-Paper-Scissors rules: moves, the
// beats-relation, round outcomes, and match scoring.
package game

import (
	"encoding/json"
	"fmt"
)

// Move represents a player's throw. Unknown marks a frame whose hand pose
// did not resolve to any of the three signs.
type Move int

const (
	// Unknown is not a playable move; it is the classifier's result for
	// ambiguous or missing hand poses.
	Unknown Move = iota - 1
	// Rock beats Scissors.
	Rock
	// Paper beats Rock.
	Paper
	// Scissors beats Paper.
	Scissors

	// NumMoves is the number of playable moves.
	NumMoves = 3
)

// Moves lists the playable moves in enumeration order. Tie-breaking scans
// in this order, keeping the first maximum found.
var Moves = [NumMoves]Move{Rock, Paper, Scissors}

// Valid reports whether m is one of the three playable moves.
func (m Move) Valid() bool {
	return m >= Rock && m <= Scissors
}

// Beats reports whether m beats other per the fixed beats-relation.
func (m Move) Beats(other Move) bool {
	switch m {
	case Rock:
		return other == Scissors
	case Paper:
		return other == Rock
	case Scissors:
		return other == Paper
	}
	return false
}

// Counter returns the move that beats m.
func (m Move) Counter() Move {
	switch m {
	case Rock:
		return Paper
	case Paper:
		return Scissors
	case Scissors:
		return Rock
	}
	return Unknown
}

// String returns the lowercase name of the move.
func (m Move) String() string {
	switch m {
	case Rock:
		return "rock"
	case Paper:
		return "paper"
	case Scissors:
		return "scissors"
	}
	return "unknown"
}

// ParseMove converts a move name back into a Move.
func ParseMove(s string) (Move, error) {
	switch s {
	case "rock":
		return Rock, nil
	case "paper":
		return Paper, nil
	case "scissors":
		return Scissors, nil
	case "unknown":
		return Unknown, nil
	}
	return Unknown, fmt.Errorf("invalid move %q", s)
}

// MarshalJSON encodes the move as its lowercase name.
func (m Move) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON decodes a move from its lowercase name.
func (m *Move) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMove(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
