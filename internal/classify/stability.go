package classify

import "github.com/ayusman/mudra/internal/game"

// DefaultThreshold is the consecutive-frame count a candidate must exceed
// before it is confirmed. With the default, the 11th matching frame in a
// row confirms the move.
const DefaultThreshold = 10

// Filter debounces a stream of per-frame classifications into a single
// confirmed move. State is scoped to one detection phase; the state machine
// calls Reset before each new round.
//
// Counting convention: the first frame of a new candidate counts as
// occurrence 1, each matching frame increments, and the candidate is
// confirmed once the count strictly exceeds the threshold. An Unknown frame
// zeroes the count and clears the candidate; there is no leniency window.
type Filter struct {
	threshold int
	candidate game.Move
	count     int
	done      bool
}

// NewFilter creates a Filter with the given confirmation threshold.
// Non-positive thresholds fall back to DefaultThreshold.
func NewFilter(threshold int) *Filter {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Filter{threshold: threshold, candidate: game.Unknown}
}

// Observe feeds one frame's classification into the filter. It returns the
// confirmed move and true exactly once per detection phase, on the frame
// whose consecutive count first exceeds the threshold. After confirming,
// the filter latches and ignores further frames until Reset, so a
// continuing stable streak cannot double-fire.
func (f *Filter) Observe(c game.Move) (game.Move, bool) {
	if f.done {
		return game.Unknown, false
	}

	if !c.Valid() {
		f.candidate = game.Unknown
		f.count = 0
		return game.Unknown, false
	}

	if c == f.candidate {
		f.count++
	} else {
		f.candidate = c
		f.count = 1
	}

	if f.count > f.threshold {
		f.done = true
		return f.candidate, true
	}
	return game.Unknown, false
}

// Candidate returns the current best-effort candidate, if any. The manual
// override path uses this to resolve a round below the confirmation
// threshold, and the live overlay uses it as the detection label.
func (f *Filter) Candidate() (game.Move, bool) {
	if !f.candidate.Valid() {
		return game.Unknown, false
	}
	return f.candidate, true
}

// Reset clears all progress for the next detection phase.
func (f *Filter) Reset() {
	f.candidate = game.Unknown
	f.count = 0
	f.done = false
}
