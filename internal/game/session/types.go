// Package session implements the two-player Truco match state machine:
// dealing, trick resolution, hand scoring and the bet-escalation protocol.
package session

import (
	"sync"
	"time"

	"github.com/brisado/truco-server/internal/game/card"
	"github.com/brisado/truco-server/internal/game/truco"
	"github.com/brisado/truco-server/internal/protocol"
)

// State is the match lifecycle state.
type State int

const (
	StateInit State = iota
	// StatePlaying accepts card plays and bet actions.
	StatePlaying
	// StateHandOver is the quiescent window between a hand completing and
	// the next deal; every action is an invalid move here.
	StateHandOver
	// StateEnded accepts nothing; the match is decided or torn down.
	StateEnded
)

// RoomContext is what the session needs from its room: identity and event
// delivery. The transport owns actual message framing and fan-out.
type RoomContext interface {
	GetCode() string
	Broadcast(msg *protocol.Message)
	SendTo(playerID string, msg *protocol.Message)
}

// Recorder persists match outcomes. Implementations must tolerate being
// called from the session goroutine; failures are logged, never fatal.
type Recorder interface {
	RecordMatchResult(playerID, playerName string, won bool, pointsFor, pointsAgainst int) error
}

// Config carries the rules knobs the session needs.
type Config struct {
	TurnTimeout   time.Duration // 0 disables the auto-play timer
	NextHandDelay time.Duration
	TargetScore   int
}

// PlayerData seeds a session player.
type PlayerData struct {
	ID   string
	Name string
}

// GamePlayer is one seated player. Seat 0 is dealt first and leads the
// first trick of every hand.
type GamePlayer struct {
	ID   string
	Name string
	Seat int
	Hand []card.Card
}

// GameSession is the aggregate root for one match. All mutation happens
// under mu; at most one action is in flight at any time.
type GameSession struct {
	room     RoomContext
	recorder Recorder // optional
	cfg      Config

	state       State
	players     [2]*GamePlayer
	scores      map[string]int // cumulative across hands
	roundWins   map[string]int // tricks won in the current hand
	cardsInPlay map[string]card.Card
	handValue   int
	bet         truco.Escalation
	turn        int // seat of the player to act
	trickLeader int // seat that led the trick in progress

	nextHandTimer *time.Timer
	turnTimer     *time.Timer
	timerMu       sync.Mutex

	mu sync.RWMutex
}

// NewGameSession seats two players. The match does not deal until Start.
func NewGameSession(room RoomContext, recorder Recorder, cfg Config, seat0, seat1 PlayerData) *GameSession {
	if cfg.TargetScore <= 0 {
		cfg.TargetScore = truco.MaxValue
	}
	gs := &GameSession{
		room:     room,
		recorder: recorder,
		cfg:      cfg,
		state:    StateInit,
		scores:   map[string]int{seat0.ID: 0, seat1.ID: 0},
	}
	gs.players[0] = &GamePlayer{ID: seat0.ID, Name: seat0.Name, Seat: 0}
	gs.players[1] = &GamePlayer{ID: seat1.ID, Name: seat1.Name, Seat: 1}
	return gs
}

// State returns the lifecycle state.
func (gs *GameSession) State() State {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.state
}

// Scores returns a copy of the cumulative scores.
func (gs *GameSession) Scores() map[string]int {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return copyCounts(gs.scores)
}

// CurrentTurn returns the ID of the player to act.
func (gs *GameSession) CurrentTurn() string {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.players[gs.turn].ID
}

// HandValue returns what the current hand is worth.
func (gs *GameSession) HandValue() int {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.handValue
}

// playerByID returns the seated player or nil.
func (gs *GameSession) playerByID(id string) *GamePlayer {
	for _, p := range gs.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// opponentSeat flips a seat index.
func opponentSeat(seat int) int {
	return 1 - seat
}

func copyCounts(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
