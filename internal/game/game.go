// internal/game/game.go
package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	engine "github.com/jason-s-yu/klondike/engine"
	"github.com/jason-s-yu/klondike/engine/agent"
	"github.com/sirupsen/logrus"
)

// DefaultMaxTurns is the turn ceiling used when Options.MaxTurns is zero.
const DefaultMaxTurns = 1000

// recentTags is how many of the last action tags a Result keeps.
const recentTags = 10

// ctxCheckEvery controls how often Run polls the context for cancellation.
const ctxCheckEvery = 64

// ErrGameOver is returned by Step once the game has ended.
var ErrGameOver = errors.New("game is over")

// Outcome classifies how a game finished.
type Outcome string

const (
	OutcomeWin       Outcome = "win"
	OutcomeStalemate Outcome = "stalemate"
	OutcomeTimeout   Outcome = "timeout"
)

// Cause records the specific reason a game ended.
type Cause string

const (
	CauseVictory     Cause = "victory"       // All 52 cards on the foundations.
	CauseNoLegalMove Cause = "no_legal_move" // The detector found no productive move.
	CauseNoAction    Cause = "no_action"     // The agent found nothing to do.
	CauseLoopForced  Cause = "loop_forced"   // The agent gave up after too many diversions.
	CauseTurnLimit   Cause = "turn_limit"    // The turn ceiling was reached.
)

// OnGameEndFunc is executed once when a game finishes.
type OnGameEndFunc func(res Result)

// GameEventType identifies an event fired during play.
type GameEventType string

const (
	EventGameStart GameEventType = "game_start" // The deal is ready.
	EventMove      GameEventType = "move"       // The agent performed a move.
	EventGameEnd   GameEventType = "game_end"   // Game has ended, includes results.
)

// GameEvent is fired to the BroadcastFn for every state change.
type GameEvent struct {
	Type        GameEventType          `json:"type"`
	GameID      uuid.UUID              `json:"gameId"`
	Turn        int                    `json:"turn"`
	Tag         agent.Tag              `json:"tag,omitempty"`
	Description string                 `json:"description,omitempty"`
	State       *BoardView             `json:"state,omitempty"`
	Payload     map[string]interface{} `json:"payload,omitempty"`
}

// Options configures a single game.
type Options struct {
	Rules    engine.Rules
	Agent    agent.Config
	MaxTurns int
	// VerifyInvariants runs CheckInvariants after every move.
	VerifyInvariants bool
	// SyncState attaches a BoardView to every move event.
	SyncState bool
}

// Result summarises one finished game.
type Result struct {
	ID              uuid.UUID         `json:"id"`
	Seed            uint64            `json:"seed"`
	Outcome         Outcome           `json:"outcome"`
	Cause           Cause             `json:"cause"`
	Turns           int               `json:"turns"`
	Moves           uint32            `json:"moves"`
	Reshuffles      uint16            `json:"reshuffles"`
	FoundationCards int               `json:"foundationCards"`
	Elapsed         time.Duration     `json:"elapsed"`
	LastActions     []agent.Tag       `json:"lastActions"`
	TagCounts       map[agent.Tag]int `json:"tagCounts"`
}

// Won reports whether the game ended in victory.
func (r Result) Won() bool { return r.Outcome == OutcomeWin }

// KlondikeGame drives one deal with one agent from start to finish.
// It is not safe for concurrent use; run one game per goroutine.
type KlondikeGame struct {
	ID   uuid.UUID
	Seed uint64

	Engine engine.GameState // The authoritative game state.
	Agent  *agent.Agent

	Options Options

	Turn     int  // Number of agent moves performed.
	Started  bool // Has Start been called?
	GameOver bool // Has the game finished?

	outcome   Outcome
	cause     Cause
	recent    []agent.Tag
	tagCounts map[agent.Tag]int
	started   time.Time
	elapsed   time.Duration

	Log logrus.FieldLogger

	// Communication Callbacks
	BroadcastFn func(ev GameEvent) // Receives every game event.
	OnGameEnd   OnGameEndFunc      // Callback executed when the game finishes.
}

// NewKlondikeGame deals a fresh game from seed.
func NewKlondikeGame(seed uint64, opts Options) *KlondikeGame {
	id, _ := uuid.NewRandom()
	if opts.MaxTurns <= 0 {
		opts.MaxTurns = DefaultMaxTurns
	}
	g := &KlondikeGame{
		ID:        id,
		Seed:      seed,
		Engine:    engine.NewDealtGame(seed, opts.Rules),
		Agent:     agent.New(opts.Agent),
		Options:   opts,
		tagCounts: make(map[agent.Tag]int),
		Log:       logrus.StandardLogger(),
	}
	return g
}

// Start marks the game as running and fires EventGameStart. It is called
// implicitly by Step and Run.
func (g *KlondikeGame) Start() {
	if g.Started {
		return
	}
	g.Started = true
	g.started = time.Now()
	g.logger().Debugf("Game %s: Starting with seed %d.", g.ID, g.Seed)
	view := g.View()
	g.fireEvent(GameEvent{Type: EventGameStart, State: &view})
}

// Step performs one turn: it checks for a finished position, then asks the
// agent for a move. It returns ErrGameOver after the game has ended and a
// wrapped engine.ErrInvariant when verification is enabled and fails.
func (g *KlondikeGame) Step() error {
	if g.GameOver {
		return ErrGameOver
	}
	g.Start()

	switch {
	case g.Engine.IsWon():
		g.EndGame(OutcomeWin, CauseVictory)
		return nil
	case !g.Engine.HasLegalMove():
		g.EndGame(OutcomeStalemate, CauseNoLegalMove)
		return nil
	case g.Turn >= g.Options.MaxTurns:
		g.EndGame(OutcomeTimeout, CauseTurnLimit)
		return nil
	}

	tag, desc := g.Agent.ChooseMove(&g.Engine)
	switch tag {
	case agent.TagNone:
		g.EndGame(OutcomeStalemate, CauseNoAction)
		return nil
	case agent.TagForcedEnd:
		g.logger().Debugf("Game %s: %s", g.ID, desc)
		g.EndGame(OutcomeStalemate, CauseLoopForced)
		return nil
	}

	g.Turn++
	g.recordTag(tag)

	if g.Options.VerifyInvariants {
		if err := g.Engine.CheckInvariants(); err != nil {
			g.logger().Errorf("Game %s: Invariant violated after turn %d (%s): %v", g.ID, g.Turn, desc, err)
			return fmt.Errorf("game %s turn %d: %w", g.ID, g.Turn, err)
		}
	}

	ev := GameEvent{Type: EventMove, Turn: g.Turn, Tag: tag, Description: desc}
	if g.Options.SyncState {
		view := g.View()
		ev.State = &view
	}
	g.fireEvent(ev)

	if g.Engine.IsWon() {
		g.EndGame(OutcomeWin, CauseVictory)
	}
	return nil
}

// Run plays the game to completion. Cancelling ctx abandons the game and
// returns the context's error.
func (g *KlondikeGame) Run(ctx context.Context) (Result, error) {
	for !g.GameOver {
		if g.Turn%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return g.Result(), err
			}
		}
		if err := g.Step(); err != nil {
			return g.Result(), err
		}
	}
	return g.Result(), nil
}

// EndGame records the outcome, fires EventGameEnd and triggers OnGameEnd.
func (g *KlondikeGame) EndGame(outcome Outcome, cause Cause) {
	if g.GameOver {
		g.logger().Debugf("Game %s: EndGame called, but game is already over.", g.ID)
		return
	}
	g.GameOver = true
	g.outcome = outcome
	g.cause = cause
	if !g.started.IsZero() {
		g.elapsed = time.Since(g.started)
	}

	res := g.Result()
	g.fireEvent(GameEvent{
		Type: EventGameEnd,
		Turn: g.Turn,
		Payload: map[string]interface{}{
			"outcome":         string(outcome),
			"cause":           string(cause),
			"foundationCards": res.FoundationCards,
			"completion":      g.Engine.Completion(),
		},
	})

	if g.OnGameEnd != nil {
		g.OnGameEnd(res)
	}

	g.logger().WithFields(logrus.Fields{
		"game_id": g.ID,
		"seed":    g.Seed,
		"outcome": outcome,
		"cause":   cause,
		"turns":   g.Turn,
	}).Debugf("Game %s: Ended with %d card(s) on the foundations.", g.ID, res.FoundationCards)
}

// Result returns the game's summary. Outcome and Cause are empty until the
// game has ended.
func (g *KlondikeGame) Result() Result {
	counts := make(map[agent.Tag]int, len(g.tagCounts))
	for k, v := range g.tagCounts {
		counts[k] = v
	}
	elapsed := g.elapsed
	if !g.GameOver && !g.started.IsZero() {
		elapsed = time.Since(g.started)
	}
	return Result{
		ID:              g.ID,
		Seed:            g.Seed,
		Outcome:         g.outcome,
		Cause:           g.cause,
		Turns:           g.Turn,
		Moves:           g.Engine.Moves,
		Reshuffles:      g.Engine.Reshuffles,
		FoundationCards: g.Engine.CountFoundationCards(),
		Elapsed:         elapsed,
		LastActions:     append([]agent.Tag(nil), g.recent...),
		TagCounts:       counts,
	}
}

func (g *KlondikeGame) recordTag(tag agent.Tag) {
	g.tagCounts[tag]++
	g.recent = append(g.recent, tag)
	if len(g.recent) > recentTags {
		g.recent = g.recent[len(g.recent)-recentTags:]
	}
}

// fireEvent sends an event to BroadcastFn when one is set.
func (g *KlondikeGame) fireEvent(ev GameEvent) {
	if g.BroadcastFn == nil {
		return
	}
	ev.GameID = g.ID
	g.BroadcastFn(ev)
}

func (g *KlondikeGame) logger() logrus.FieldLogger {
	if g.Log == nil {
		return logrus.StandardLogger()
	}
	return g.Log
}
