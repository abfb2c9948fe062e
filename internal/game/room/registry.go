package room

import (
	"log"
	"math/rand"
	"sync"

	"github.com/brisado/truco-server/internal/protocol"
	"github.com/brisado/truco-server/internal/types"
)

const (
	roomCodeLength = 6
	roomCodeChars  = "0123456789"
)

// Registry owns every live room and the first-come queue of rooms still
// waiting for a second player.
type Registry struct {
	rooms    map[string]*Room
	waiting  []string          // codes of half-full rooms, oldest first
	byPlayer map[string]string // player ID -> room code

	mu sync.Mutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		rooms:    make(map[string]*Room),
		byPlayer: make(map[string]string),
	}
}

// JoinAny seats the client in the oldest half-full room, or opens a new
// one when nobody is waiting. The caller checks IsFull on the returned
// room to know whether a match can start.
func (reg *Registry) JoinAny(client types.ClientInterface) (*Room, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if _, ok := reg.byPlayer[client.GetID()]; ok {
		return nil, protocol.ErrAlreadyInRoom
	}

	// Oldest waiting room first.
	if len(reg.waiting) > 0 {
		code := reg.waiting[0]
		reg.waiting = reg.waiting[1:]
		room := reg.rooms[code]
		if room != nil {
			if _, err := room.seat(client); err != nil {
				return nil, err
			}
			client.SetRoom(code)
			reg.byPlayer[client.GetID()] = code
			log.Printf("👤 player %s seated in room %s", client.GetName(), code)
			return room, nil
		}
	}

	code := reg.generateCode()
	room := newRoom(code)
	if _, err := room.seat(client); err != nil {
		return nil, err
	}
	reg.rooms[code] = room
	reg.waiting = append(reg.waiting, code)
	client.SetRoom(code)
	reg.byPlayer[client.GetID()] = code
	log.Printf("🏠 room %s opened by %s", code, client.GetName())
	return room, nil
}

// Get returns the room with the given code, or nil.
func (reg *Registry) Get(code string) *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.rooms[code]
}

// ByPlayer returns the room the player sits in, or nil.
func (reg *Registry) ByPlayer(playerID string) *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if code, ok := reg.byPlayer[playerID]; ok {
		return reg.rooms[code]
	}
	return nil
}

// RemoveByPlayer tears the player's room out of the registry and detaches
// both seats. It returns the removed room so the caller can notify the
// opponent and stop the session; nil if the player sat nowhere.
func (reg *Registry) RemoveByPlayer(playerID string) *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	code, ok := reg.byPlayer[playerID]
	if !ok {
		return nil
	}
	room := reg.rooms[code]
	if room == nil {
		delete(reg.byPlayer, playerID)
		return nil
	}

	for _, p := range room.Seated() {
		delete(reg.byPlayer, p.Client.GetID())
		p.Client.SetRoom("")
	}
	delete(reg.rooms, code)
	reg.dropWaiting(code)

	log.Printf("🏠 room %s dismantled", code)
	return room
}

// RoomCount returns the number of live rooms.
func (reg *Registry) RoomCount() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.rooms)
}

// WaitingCount returns the number of rooms still missing an opponent.
func (reg *Registry) WaitingCount() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.waiting)
}

// dropWaiting removes a code from the waiting queue. Caller holds mu.
func (reg *Registry) dropWaiting(code string) {
	for i, c := range reg.waiting {
		if c == code {
			reg.waiting = append(reg.waiting[:i], reg.waiting[i+1:]...)
			return
		}
	}
}

// generateCode returns an unused numeric code. Caller holds mu.
func (reg *Registry) generateCode() string {
	for {
		code := make([]byte, roomCodeLength)
		for i := range code {
			code[i] = roomCodeChars[rand.Intn(len(roomCodeChars))]
		}
		if _, exists := reg.rooms[string(code)]; !exists {
			return string(code)
		}
	}
}
