package server

import (
	"log"
	"sync"

	"github.com/brisado/truco-server/internal/game/room"
	"github.com/brisado/truco-server/internal/game/session"
	"github.com/brisado/truco-server/internal/protocol"
	"github.com/brisado/truco-server/internal/protocol/codec"
	"github.com/brisado/truco-server/internal/types"
)

// Matcher seats joining players and starts a match the moment a room
// fills up.
type Matcher struct {
	registry   *room.Registry
	recorder   session.Recorder
	sessionCfg session.Config

	mu sync.Mutex
}

// NewMatcher wires the matcher to a registry and result recorder.
func NewMatcher(registry *room.Registry, recorder session.Recorder, sessionCfg session.Config) *Matcher {
	return &Matcher{
		registry:   registry,
		recorder:   recorder,
		sessionCfg: sessionCfg,
	}
}

// Match seats the client. A lone player hears they are waiting; a full
// room starts playing immediately. Returns the room error, if any.
func (m *Matcher) Match(client types.ClientInterface) error {
	// Serialized so two simultaneous joiners cannot both open rooms.
	m.mu.Lock()
	defer m.mu.Unlock()

	r, err := m.registry.JoinAny(client)
	if err != nil {
		return err
	}

	if !r.IsFull() {
		client.SendMessage(codec.MustNewMessage(protocol.MsgWaitingForOpponent, nil))
		return nil
	}

	m.startMatch(r)
	return nil
}

// startMatch builds the session for a full room and deals the first hand.
func (m *Matcher) startMatch(r *room.Room) {
	seated := r.Seated()
	if len(seated) != room.Capacity {
		return
	}

	seat0 := session.PlayerData{ID: seated[0].Client.GetID(), Name: seated[0].Client.GetName()}
	seat1 := session.PlayerData{ID: seated[1].Client.GetID(), Name: seated[1].Client.GetName()}

	gs := session.NewGameSession(r, m.recorder, m.sessionCfg, seat0, seat1)
	r.SetGame(gs)

	log.Printf("🎮 match on! room %s: %s vs %s", r.Code, seat0.Name, seat1.Name)
	gs.Start()
}
