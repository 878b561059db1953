package match

import (
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/ayusman/mudra/internal/classify"
	"github.com/ayusman/mudra/internal/game"
	"github.com/ayusman/mudra/internal/landmark"
	"github.com/ayusman/mudra/internal/opponent"
)

// Engine defaults.
const (
	// DefaultTargetWins substitutes for a non-positive target at match start.
	DefaultTargetWins = 3
	// DefaultCountdownTicks is the number of countdown steps before detection.
	DefaultCountdownTicks = 3
	// DefaultTickInterval is the delay between countdown steps.
	DefaultTickInterval = time.Second
	// DefaultResultHold is how long a round result stays on display before
	// the next countdown starts.
	DefaultResultHold = 2 * time.Second

	cmdQueueSize = 64
)

// Config holds engine configuration. Zero values fall back to the defaults
// above.
type Config struct {
	StabilityThreshold int
	CountdownTicks     int
	TickInterval       time.Duration
	ResultHold         time.Duration
	ExplorationRate    float64

	Sink     EventSink
	Recorder Recorder

	// Rand seeds opponent selection; nil uses a random seed.
	Rand *rand.Rand

	// Chooser overrides the difficulty-derived selector when set.
	Chooser MoveChooser
}

// Engine runs the match state machine. All session state is owned by a
// single loop goroutine; frames, timer ticks, and control signals are
// serialized through one queue, so no callback ever observes a half-applied
// transition. Timer callbacks are stamped with a generation counter and a
// restart bumps the generation, so a stale timer from a previous match can
// never mutate freshly reset state.
type Engine struct {
	cfg Config

	mu     sync.Mutex
	cmds   chan func()
	stopCh chan struct{}

	// Loop-owned state. Only the run goroutine touches these.
	phase  Phase
	gen    uint64
	filter *classify.Filter
	sess   *session
}

// New creates an Engine in the Idle phase.
func New(cfg Config) *Engine {
	if cfg.CountdownTicks <= 0 {
		cfg.CountdownTicks = DefaultCountdownTicks
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	if cfg.ResultHold <= 0 {
		cfg.ResultHold = DefaultResultHold
	}

	return &Engine{
		cfg:    cfg,
		cmds:   make(chan func(), cmdQueueSize),
		phase:  PhaseIdle,
		filter: classify.NewFilter(cfg.StabilityThreshold),
	}
}

// Start launches the engine loop.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopCh != nil {
		return nil
	}
	e.stopCh = make(chan struct{})
	go e.run(e.stopCh)

	log.Println("Match engine started")
	return nil
}

// Stop halts the engine loop. Pending commands are dropped.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopCh != nil {
		close(e.stopCh)
		e.stopCh = nil
		log.Println("Match engine stopped")
	}
}

func (e *Engine) run(stopCh <-chan struct{}) {
	for {
		select {
		case <-stopCh:
			return
		case fn := <-e.cmds:
			fn()
		}
	}
}

// post queues fn for the loop goroutine. It drops the command when the
// engine is stopped instead of blocking the caller.
func (e *Engine) post(fn func()) {
	e.mu.Lock()
	stopCh := e.stopCh
	e.mu.Unlock()
	if stopCh == nil {
		return
	}

	select {
	case e.cmds <- fn:
	case <-stopCh:
	}
}

// StartMatch begins a new match with the given settings, from any phase.
// Invalid settings are substituted with defaults rather than rejected.
func (e *Engine) StartMatch(s Settings) {
	e.post(func() { e.handleStart(s) })
}

// Frame feeds one video frame's first detected hand, or nil when the frame
// contains no hand. Ignored outside the Detecting phase.
func (e *Engine) Frame(h *landmark.Hand) {
	e.post(func() { e.handleFrame(h) })
}

// ForceResolve resolves the current best-effort candidate even below the
// confirmation threshold. Ignored outside Detecting or without a candidate.
func (e *Engine) ForceResolve() {
	e.post(func() { e.handleForce() })
}

// Restart abandons the current match and returns to Idle, invalidating any
// in-flight timers.
func (e *Engine) Restart() {
	e.post(func() { e.handleRestart() })
}

// after schedules fn on the loop goroutine, stamped with the current
// generation. If a new match starts or a restart lands before the timer
// fires, the generation no longer matches and the callback is dropped.
func (e *Engine) after(d time.Duration, fn func()) {
	gen := e.gen
	time.AfterFunc(d, func() {
		e.post(func() {
			if e.gen == gen {
				fn()
			}
		})
	})
}

func (e *Engine) publish(ev Event) {
	if e.cfg.Sink != nil {
		e.cfg.Sink.Publish(ev)
	}
}

func (e *Engine) setPhase(p Phase) {
	e.phase = p
	round := 0
	if e.sess != nil {
		round = e.sess.round
	}
	e.publish(PhaseChanged{Phase: p, Round: round})
}

func (e *Engine) handleStart(s Settings) {
	e.gen++

	if s.TargetWins <= 0 {
		s.TargetWins = DefaultTargetWins
	}
	if _, err := opponent.ParseDifficulty(string(s.Difficulty)); err != nil {
		log.Printf("Invalid difficulty %q, using %s", s.Difficulty, opponent.DifficultyAdaptive)
		s.Difficulty = opponent.DifficultyAdaptive
	}

	chooser := e.cfg.Chooser
	if chooser == nil {
		chooser = opponent.NewSelector(s.Difficulty, e.cfg.ExplorationRate, e.cfg.Rand)
	}

	e.sess = newSession(s, chooser)
	e.filter = classify.NewFilter(e.cfg.StabilityThreshold)

	if e.cfg.Recorder != nil {
		if err := e.cfg.Recorder.MatchStarted(e.sess.id, s.TargetWins, string(s.Difficulty)); err != nil {
			log.Printf("Failed to record match start: %v", err)
		}
	}

	log.Printf("Match %s started: first to %d, difficulty %s", e.sess.id, s.TargetWins, s.Difficulty)
	e.beginCountdown()
}

func (e *Engine) handleRestart() {
	e.gen++
	e.sess = nil
	e.filter.Reset()
	e.setPhase(PhaseIdle)
}

func (e *Engine) beginCountdown() {
	e.setPhase(PhaseCountdown)
	e.countdown(e.cfg.CountdownTicks)
}

func (e *Engine) countdown(remaining int) {
	if remaining <= 0 {
		e.filter.Reset()
		e.setPhase(PhaseDetecting)
		return
	}

	e.publish(CountdownTick{Remaining: remaining})
	e.after(e.cfg.TickInterval, func() { e.countdown(remaining - 1) })
}

func (e *Engine) handleFrame(h *landmark.Hand) {
	if e.phase != PhaseDetecting {
		return
	}

	label := classify.Classify(h)
	if label.Valid() {
		e.publish(DetectionLabel{Move: label})
	}

	if confirmed, ok := e.filter.Observe(label); ok {
		e.resolveRound(confirmed)
	}
}

func (e *Engine) handleForce() {
	if e.phase != PhaseDetecting {
		return
	}

	if candidate, ok := e.filter.Candidate(); ok {
		e.resolveRound(candidate)
	}
}

// resolveRound runs the round pipeline for a confirmed player move: choose
// the opponent's move off the pre-round model state, fold the player's move
// into the transition model, resolve, score, publish, and either end the
// match or schedule the next countdown.
func (e *Engine) resolveRound(player game.Move) {
	sess := e.sess
	e.setPhase(PhaseResolving)

	opp := sess.chooser.Choose(sess.prev, sess.model)

	if sess.prev.Valid() {
		sess.model.Record(sess.prev, player)
	}
	sess.prev = player
	sess.history = append(sess.history, player)

	outcome := game.Resolve(player, opp)
	over := sess.score.Apply(outcome)
	sess.stats.Add(outcome)

	rec := game.RoundRecord{
		Round:    sess.round,
		Player:   player,
		Opponent: opp,
		Outcome:  outcome,
	}
	sess.records = append(sess.records, rec)

	log.Printf("Round %d: %s vs %s -> %s (%s)", rec.Round, player, opp, outcome, sess.score)
	e.publish(RoundResolved{Record: rec, Score: sess.score, Stats: sess.stats})

	if e.cfg.Recorder != nil {
		if err := e.cfg.Recorder.RoundPlayed(sess.id, rec); err != nil {
			log.Printf("Failed to record round: %v", err)
		}
	}

	if over {
		e.finishMatch()
		return
	}

	sess.round++
	e.after(e.cfg.ResultHold, e.beginCountdown)
}

func (e *Engine) finishMatch() {
	sess := e.sess
	e.setPhase(PhaseMatchOver)

	winner := "player"
	if sess.score.OpponentWins > sess.score.PlayerWins {
		winner = "opponent"
	}

	log.Printf("Match %s over: %s wins %s", sess.id, winner, sess.score)
	e.publish(MatchEnded{Winner: winner, Score: sess.score})

	if e.cfg.Recorder != nil {
		if err := e.cfg.Recorder.MatchFinished(sess.id, sess.score, winner); err != nil {
			log.Printf("Failed to record match result: %v", err)
		}
	}
}
