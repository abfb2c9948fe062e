// Package room holds two-seat match rooms and the registry that pairs
// incoming players into them.
package room

import (
	"sync"
	"time"

	"github.com/brisado/truco-server/internal/game/session"
	"github.com/brisado/truco-server/internal/protocol"
	"github.com/brisado/truco-server/internal/types"
)

// Capacity is fixed: Truco here is strictly heads-up.
const Capacity = 2

// Player is one seated client.
type Player struct {
	Client types.ClientInterface
	Seat   int
}

// Room is a two-seat table. Seat 0 belongs to whoever arrived first.
type Room struct {
	Code      string
	CreatedAt time.Time

	players map[string]*Player
	order   []string // seat order, index == seat

	game *session.GameSession
	mu   sync.RWMutex
}

func newRoom(code string) *Room {
	return &Room{
		Code:      code,
		CreatedAt: time.Now(),
		players:   make(map[string]*Player, Capacity),
		order:     make([]string, 0, Capacity),
	}
}

// seat places the client on the next free seat.
func (r *Room) seat(client types.ClientInterface) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.players) >= Capacity {
		return 0, protocol.ErrNoSuchRoom
	}
	seat := len(r.players)
	r.players[client.GetID()] = &Player{Client: client, Seat: seat}
	r.order = append(r.order, client.GetID())
	return seat, nil
}

// GetCode returns the room code.
func (r *Room) GetCode() string { return r.Code }

// Broadcast sends a message to both seats.
func (r *Room) Broadcast(msg *protocol.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.players {
		p.Client.SendMessage(msg)
	}
}

// SendTo sends a message to one seat only.
func (r *Room) SendTo(playerID string, msg *protocol.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.players[playerID]; ok {
		p.Client.SendMessage(msg)
	}
}

// IsFull reports whether both seats are taken.
func (r *Room) IsFull() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players) >= Capacity
}

// PlayerCount returns the number of seated players.
func (r *Room) PlayerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}

// Seated returns the players in seat order.
func (r *Room) Seated() []*Player {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Player, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.players[id])
	}
	return out
}

// Opponent returns the other seat's client, or nil.
func (r *Room) Opponent(playerID string) types.ClientInterface {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for id, p := range r.players {
		if id != playerID {
			return p.Client
		}
	}
	return nil
}

// SetGame attaches the match session once both seats are filled.
func (r *Room) SetGame(gs *session.GameSession) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.game = gs
}

// Game returns the attached session, nil while waiting for an opponent.
func (r *Room) Game() *session.GameSession {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.game
}
