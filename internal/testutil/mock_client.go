//go:build !production

package testutil

import (
	"github.com/stretchr/testify/mock"

	"github.com/brisado/truco-server/internal/protocol"
)

// MockClient is a testify mock of types.ClientInterface.
type MockClient struct {
	mock.Mock
}

func (m *MockClient) GetID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) GetName() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) GetRoom() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockClient) SetRoom(roomCode string) {
	m.Called(roomCode)
}

func (m *MockClient) SendMessage(msg *protocol.Message) {
	m.Called(msg)
}

func (m *MockClient) Close() {
	m.Called()
}

// SimpleClient is a plain recording client for tests that only need to
// inspect what was sent.
type SimpleClient struct {
	ID       string
	Name     string
	RoomCode string
	Messages []*protocol.Message
	Closed   bool
}

func (c *SimpleClient) GetID() string                     { return c.ID }
func (c *SimpleClient) GetName() string                   { return c.Name }
func (c *SimpleClient) GetRoom() string                   { return c.RoomCode }
func (c *SimpleClient) SetRoom(code string)               { c.RoomCode = code }
func (c *SimpleClient) SendMessage(msg *protocol.Message) { c.Messages = append(c.Messages, msg) }
func (c *SimpleClient) Close()                            { c.Closed = true }

// LastOfType returns the most recent message of the given type, or nil.
func (c *SimpleClient) LastOfType(t protocol.MessageType) *protocol.Message {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Type == t {
			return c.Messages[i]
		}
	}
	return nil
}
