// Package match sequences rounds through countdown, detection, and
// resolution, coordinating the classifier, stability filter, and opponent
// model, and publishing transition events for presentation collaborators.
package match

import "github.com/ayusman/mudra/internal/game"

// Phase is a state of the match state machine.
type Phase string

const (
	// PhaseIdle is the initial state, before any match has started.
	PhaseIdle Phase = "idle"
	// PhaseCountdown is the timed lead-in before detection begins.
	PhaseCountdown Phase = "countdown"
	// PhaseDetecting consumes landmark frames until a move is confirmed.
	PhaseDetecting Phase = "detecting"
	// PhaseResolving covers round resolution and the result display hold.
	PhaseResolving Phase = "resolving"
	// PhaseMatchOver is terminal until an external restart.
	PhaseMatchOver Phase = "match_over"
)

// Event is a discrete notification for the presentation layer. Events carry
// no rendering instructions; the engine is render-agnostic.
type Event interface {
	// Name returns the wire identifier of the event type.
	Name() string
}

// PhaseChanged announces a state machine transition.
type PhaseChanged struct {
	Phase Phase `json:"phase"`
	Round int   `json:"round"`
}

// CountdownTick announces one countdown step with the ticks remaining.
type CountdownTick struct {
	Remaining int `json:"remaining"`
}

// DetectionLabel carries the current per-frame best guess while the
// stability filter accumulates confirmation.
type DetectionLabel struct {
	Move game.Move `json:"move"`
}

// RoundResolved carries one completed round with the updated score and
// session tallies.
type RoundResolved struct {
	Record game.RoundRecord  `json:"record"`
	Score  game.MatchScore   `json:"score"`
	Stats  game.SessionStats `json:"stats"`
}

// MatchEnded announces the terminal result of a match.
type MatchEnded struct {
	Winner string          `json:"winner"`
	Score  game.MatchScore `json:"score"`
}

func (PhaseChanged) Name() string   { return "phase_changed" }
func (CountdownTick) Name() string  { return "countdown_tick" }
func (DetectionLabel) Name() string { return "detection_label" }
func (RoundResolved) Name() string  { return "round_resolved" }
func (MatchEnded) Name() string     { return "match_ended" }

// EventSink receives engine events. Publish is always called from the
// engine's single loop goroutine, in order.
type EventSink interface {
	Publish(Event)
}

// SinkFunc adapts a function to the EventSink interface.
type SinkFunc func(Event)

// Publish calls f(e).
func (f SinkFunc) Publish(e Event) { f(e) }
