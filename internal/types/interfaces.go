package types

import (
	"github.com/brisado/truco-server/internal/protocol"
)

// ServerInterface is the narrow view of the server that message handlers
// need (breaks the import cycle with the transport).
type ServerInterface interface {
	GetOnlineCount() int
}

// ClientInterface is one connected player as seen by rooms and handlers.
type ClientInterface interface {
	GetID() string
	GetName() string
	GetRoom() string
	SetRoom(code string)
	SendMessage(msg *protocol.Message)
	Close()
}
