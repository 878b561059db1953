package match

import (
	"testing"
	"time"

	"github.com/ayusman/mudra/internal/game"
	"github.com/ayusman/mudra/internal/landmark"
	"github.com/ayusman/mudra/internal/opponent"
)

const waitTimeout = 2 * time.Second

// collector buffers published events for assertions.
type collector struct {
	ch chan Event
}

func newCollector() *collector {
	return &collector{ch: make(chan Event, 256)}
}

func (c *collector) Publish(e Event) {
	c.ch <- e
}

// waitFor drains events until pred matches one or the timeout expires.
func (c *collector) waitFor(t *testing.T, desc string, pred func(Event) bool) Event {
	t.Helper()
	deadline := time.After(waitTimeout)
	for {
		select {
		case e := <-c.ch:
			if pred(e) {
				return e
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s", desc)
			return nil
		}
	}
}

func (c *collector) waitForPhase(t *testing.T, p Phase) {
	t.Helper()
	c.waitFor(t, "phase "+string(p), func(e Event) bool {
		pc, ok := e.(PhaseChanged)
		return ok && pc.Phase == p
	})
}

// expectQuiet asserts no event arrives within d.
func (c *collector) expectQuiet(t *testing.T, d time.Duration) {
	t.Helper()
	select {
	case e := <-c.ch:
		t.Fatalf("unexpected event %s: %+v", e.Name(), e)
	case <-time.After(d):
	}
}

// fixedChooser always plays the same move.
type fixedChooser struct {
	move game.Move
}

func (f fixedChooser) Choose(prev game.Move, model *opponent.Model) game.Move {
	return f.move
}

// barrier flushes the engine's command queue.
func barrier(e *Engine) {
	done := make(chan struct{})
	e.post(func() { close(done) })
	<-done
}

// inspect runs fn on the loop goroutine and waits for it, giving tests a
// race-free view of loop-owned state.
func inspect(e *Engine, fn func()) {
	done := make(chan struct{})
	e.post(func() {
		fn()
		close(done)
	})
	<-done
}

func newTestEngine(t *testing.T, cfg Config) (*Engine, *collector) {
	t.Helper()

	sink := newCollector()
	cfg.Sink = sink
	if cfg.StabilityThreshold == 0 {
		cfg.StabilityThreshold = 2
	}
	if cfg.CountdownTicks == 0 {
		cfg.CountdownTicks = 2
	}
	if cfg.TickInterval == 0 {
		cfg.TickInterval = 5 * time.Millisecond
	}
	if cfg.ResultHold == 0 {
		cfg.ResultHold = 5 * time.Millisecond
	}

	e := New(cfg)
	if err := e.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(e.Stop)

	return e, sink
}

// frames feeds n copies of the hand into the engine.
func frames(e *Engine, h landmark.Hand, n int) {
	for i := 0; i < n; i++ {
		hh := h
		e.Frame(&hh)
	}
}

func TestEngine_CountdownSequence(t *testing.T) {
	e, sink := newTestEngine(t, Config{CountdownTicks: 3})

	e.StartMatch(Settings{TargetWins: 3, Difficulty: opponent.DifficultyRandom})

	for want := 3; want >= 1; want-- {
		ev := sink.waitFor(t, "countdown tick", func(e Event) bool {
			_, ok := e.(CountdownTick)
			return ok
		})
		if tick := ev.(CountdownTick); tick.Remaining != want {
			t.Errorf("tick remaining = %d, want %d", tick.Remaining, want)
		}
	}

	sink.waitForPhase(t, PhaseDetecting)
}

func TestEngine_FullMatch(t *testing.T) {
	// The opponent always throws scissors, so every confirmed rock wins.
	e, sink := newTestEngine(t, Config{Chooser: fixedChooser{move: game.Scissors}})

	e.StartMatch(Settings{TargetWins: 3, Difficulty: opponent.DifficultyRandom})

	for round := 1; round <= 3; round++ {
		sink.waitForPhase(t, PhaseDetecting)

		frames(e, landmark.FistHand(), 3) // threshold 2: third frame confirms

		ev := sink.waitFor(t, "round resolved", func(e Event) bool {
			_, ok := e.(RoundResolved)
			return ok
		})
		rr := ev.(RoundResolved)

		if rr.Record.Round != round {
			t.Errorf("round number = %d, want %d", rr.Record.Round, round)
		}
		if rr.Record.Player != game.Rock || rr.Record.Opponent != game.Scissors {
			t.Errorf("round %d: %v vs %v, want rock vs scissors", round, rr.Record.Player, rr.Record.Opponent)
		}
		if rr.Record.Outcome != game.Win {
			t.Errorf("round %d outcome = %v, want Win", round, rr.Record.Outcome)
		}
		if rr.Score.PlayerWins != round || rr.Score.OpponentWins != 0 {
			t.Errorf("round %d score = %s, want %d-0", round, rr.Score, round)
		}
		if rr.Stats.Wins != round || rr.Stats.Losses != 0 || rr.Stats.Draws != 0 {
			t.Errorf("round %d stats = %+v", round, rr.Stats)
		}
	}

	ev := sink.waitFor(t, "match ended", func(e Event) bool {
		_, ok := e.(MatchEnded)
		return ok
	})
	ended := ev.(MatchEnded)

	if ended.Winner != "player" {
		t.Errorf("winner = %q, want player", ended.Winner)
	}
	if ended.Score.String() != "3-0" {
		t.Errorf("final score = %s, want 3-0", ended.Score)
	}
}

func TestEngine_DetectionLabelWhileStabilizing(t *testing.T) {
	e, sink := newTestEngine(t, Config{StabilityThreshold: 5, Chooser: fixedChooser{move: game.Rock}})

	e.StartMatch(Settings{TargetWins: 3, Difficulty: opponent.DifficultyRandom})
	sink.waitForPhase(t, PhaseDetecting)

	frames(e, landmark.OpenPalmHand(), 2)

	ev := sink.waitFor(t, "detection label", func(e Event) bool {
		_, ok := e.(DetectionLabel)
		return ok
	})
	if label := ev.(DetectionLabel); label.Move != game.Paper {
		t.Errorf("label = %v, want Paper", label.Move)
	}
}

func TestEngine_EmptyFrameResetsStreak(t *testing.T) {
	e, sink := newTestEngine(t, Config{StabilityThreshold: 3, Chooser: fixedChooser{move: game.Paper}})

	e.StartMatch(Settings{TargetWins: 3, Difficulty: opponent.DifficultyRandom})
	sink.waitForPhase(t, PhaseDetecting)

	// Three frames, a dropout, three more: never four in a row.
	frames(e, landmark.ScissorsHand(), 3)
	e.Frame(nil)
	frames(e, landmark.ScissorsHand(), 3)
	barrier(e)

	inspect(e, func() {
		if e.phase != PhaseDetecting {
			t.Errorf("phase = %s, want detecting", e.phase)
		}
	})

	// The fourth consecutive frame confirms.
	frames(e, landmark.ScissorsHand(), 1)
	ev := sink.waitFor(t, "round resolved", func(e Event) bool {
		_, ok := e.(RoundResolved)
		return ok
	})
	if rr := ev.(RoundResolved); rr.Record.Player != game.Scissors {
		t.Errorf("player move = %v, want Scissors", rr.Record.Player)
	}
}

func TestEngine_ForceResolve(t *testing.T) {
	e, sink := newTestEngine(t, Config{StabilityThreshold: 10, Chooser: fixedChooser{move: game.Paper}})

	t.Run("ignored outside detecting", func(t *testing.T) {
		e.ForceResolve()
		barrier(e)
		inspect(e, func() {
			if e.phase != PhaseIdle {
				t.Errorf("phase = %s, want idle", e.phase)
			}
		})
	})

	e.StartMatch(Settings{TargetWins: 3, Difficulty: opponent.DifficultyRandom})
	sink.waitForPhase(t, PhaseDetecting)

	t.Run("ignored without a candidate", func(t *testing.T) {
		e.ForceResolve()
		barrier(e)
		inspect(e, func() {
			if e.phase != PhaseDetecting {
				t.Errorf("phase = %s, want detecting", e.phase)
			}
		})
	})

	t.Run("resolves the best-effort candidate", func(t *testing.T) {
		frames(e, landmark.OpenPalmHand(), 2) // well below threshold 10
		e.ForceResolve()

		ev := sink.waitFor(t, "round resolved", func(e Event) bool {
			_, ok := e.(RoundResolved)
			return ok
		})
		rr := ev.(RoundResolved)
		if rr.Record.Player != game.Paper {
			t.Errorf("player move = %v, want Paper", rr.Record.Player)
		}
		if rr.Record.Outcome != game.Draw {
			t.Errorf("outcome = %v, want Draw", rr.Record.Outcome)
		}
	})
}

func TestEngine_FramesIgnoredOutsideDetecting(t *testing.T) {
	e, sink := newTestEngine(t, Config{TickInterval: 50 * time.Millisecond})

	// Idle: frames do nothing.
	frames(e, landmark.FistHand(), 5)
	barrier(e)
	sink.expectQuiet(t, 20*time.Millisecond)

	// Countdown: frames are ignored until detection begins.
	e.StartMatch(Settings{TargetWins: 3, Difficulty: opponent.DifficultyRandom})
	frames(e, landmark.FistHand(), 5)
	barrier(e)

	inspect(e, func() {
		if _, ok := e.filter.Candidate(); ok {
			t.Error("filter accumulated frames during countdown")
		}
	})
}

func TestEngine_InvalidSettingsSubstituted(t *testing.T) {
	e, _ := newTestEngine(t, Config{})

	e.StartMatch(Settings{TargetWins: -1, Difficulty: "impossible"})

	inspect(e, func() {
		if e.sess.settings.TargetWins != DefaultTargetWins {
			t.Errorf("target wins = %d, want %d", e.sess.settings.TargetWins, DefaultTargetWins)
		}
		if e.sess.settings.Difficulty != opponent.DifficultyAdaptive {
			t.Errorf("difficulty = %q, want adaptive", e.sess.settings.Difficulty)
		}
	})
}

func TestEngine_ModelAndHistoryAcrossRounds(t *testing.T) {
	e, sink := newTestEngine(t, Config{Chooser: fixedChooser{move: game.Scissors}})

	e.StartMatch(Settings{TargetWins: 5, Difficulty: opponent.DifficultyAdaptive})

	plays := []landmark.Hand{landmark.FistHand(), landmark.OpenPalmHand()}
	for _, hand := range plays {
		sink.waitForPhase(t, PhaseDetecting)
		frames(e, hand, 3)
		sink.waitFor(t, "round resolved", func(e Event) bool {
			_, ok := e.(RoundResolved)
			return ok
		})
	}

	inspect(e, func() {
		sess := e.sess
		if len(sess.history) != 2 || sess.history[0] != game.Rock || sess.history[1] != game.Paper {
			t.Errorf("history = %v, want [rock paper]", sess.history)
		}
		// First round had no previous move; only rock->paper is recorded.
		if got := sess.model.Count(game.Rock, game.Paper); got != 1 {
			t.Errorf("model count(rock, paper) = %d, want 1", got)
		}
		if got := sess.model.Count(game.Paper, game.Rock); got != 0 {
			t.Errorf("model count(paper, rock) = %d, want 0", got)
		}
		if sess.prev != game.Paper {
			t.Errorf("prev = %v, want Paper", sess.prev)
		}
	})
}

func TestEngine_RestartInvalidatesTimers(t *testing.T) {
	e, sink := newTestEngine(t, Config{TickInterval: 20 * time.Millisecond, CountdownTicks: 3})

	e.StartMatch(Settings{TargetWins: 3, Difficulty: opponent.DifficultyRandom})
	sink.waitFor(t, "first countdown tick", func(e Event) bool {
		_, ok := e.(CountdownTick)
		return ok
	})

	e.Restart()
	sink.waitForPhase(t, PhaseIdle)

	// Stale countdown timers from the abandoned match must not fire.
	sink.expectQuiet(t, 100*time.Millisecond)

	inspect(e, func() {
		if e.phase != PhaseIdle {
			t.Errorf("phase = %s, want idle", e.phase)
		}
		if e.sess != nil {
			t.Error("session should be cleared after restart")
		}
	})
}

func TestEngine_StartResetsSessionState(t *testing.T) {
	e, sink := newTestEngine(t, Config{Chooser: fixedChooser{move: game.Scissors}})

	// Win one full match.
	e.StartMatch(Settings{TargetWins: 1, Difficulty: opponent.DifficultyRandom})
	sink.waitForPhase(t, PhaseDetecting)
	frames(e, landmark.FistHand(), 3)
	sink.waitFor(t, "match ended", func(e Event) bool {
		_, ok := e.(MatchEnded)
		return ok
	})

	var firstID string
	inspect(e, func() { firstID = e.sess.id })

	// Starting again replaces every piece of session state.
	e.StartMatch(Settings{TargetWins: 3, Difficulty: opponent.DifficultyRandom})

	inspect(e, func() {
		sess := e.sess
		if sess.id == firstID {
			t.Error("new match should have a fresh id")
		}
		if len(sess.history) != 0 || len(sess.records) != 0 {
			t.Error("history and records should be empty after start")
		}
		if sess.score.PlayerWins != 0 || sess.score.OpponentWins != 0 {
			t.Errorf("score = %s, want 0-0", sess.score)
		}
		if sess.stats != (game.SessionStats{}) {
			t.Errorf("stats = %+v, want zero", sess.stats)
		}
		if got := sess.model.Count(game.Rock, game.Rock); got != 0 {
			t.Error("transition model should be empty after start")
		}
		if sess.round != 1 {
			t.Errorf("round = %d, want 1", sess.round)
		}
	})
}

// recorderStub captures recorder calls.
type recorderStub struct {
	started  []string
	rounds   []game.RoundRecord
	finished []string
}

func (r *recorderStub) MatchStarted(id string, targetWins int, difficulty string) error {
	r.started = append(r.started, id)
	return nil
}

func (r *recorderStub) RoundPlayed(matchID string, rec game.RoundRecord) error {
	r.rounds = append(r.rounds, rec)
	return nil
}

func (r *recorderStub) MatchFinished(matchID string, score game.MatchScore, winner string) error {
	r.finished = append(r.finished, winner)
	return nil
}

func TestEngine_RecorderReceivesLifecycle(t *testing.T) {
	rec := &recorderStub{}
	e, sink := newTestEngine(t, Config{Chooser: fixedChooser{move: game.Rock}, Recorder: rec})

	e.StartMatch(Settings{TargetWins: 1, Difficulty: opponent.DifficultyRandom})
	sink.waitForPhase(t, PhaseDetecting)
	frames(e, landmark.OpenPalmHand(), 3) // paper beats rock
	sink.waitFor(t, "match ended", func(e Event) bool {
		_, ok := e.(MatchEnded)
		return ok
	})
	barrier(e)

	if len(rec.started) != 1 {
		t.Fatalf("recorded %d match starts, want 1", len(rec.started))
	}
	if len(rec.rounds) != 1 || rec.rounds[0].Outcome != game.Win {
		t.Fatalf("recorded rounds = %+v, want one win", rec.rounds)
	}
	if len(rec.finished) != 1 || rec.finished[0] != "player" {
		t.Fatalf("recorded finishes = %v, want [player]", rec.finished)
	}
}
