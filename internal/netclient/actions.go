package netclient

import (
	"time"

	"github.com/brisado/truco-server/internal/protocol"
	"github.com/brisado/truco-server/internal/protocol/codec"
)

// Join asks to be matched into a room.
func (c *Client) Join() error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgJoin, nil))
}

// Leave abandons the current room.
func (c *Client) Leave() error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgLeave, nil))
}

// PlayCard plays one card from the hand.
func (c *Client) PlayCard(card protocol.CardInfo) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgPlayCard, protocol.PlayCardPayload{
		Card: card,
	}))
}

// RequestTruco proposes raising the stake.
func (c *Client) RequestTruco() error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgRequestTruco, nil))
}

// RespondTruco answers a pending proposal with accept, raise or quit.
func (c *Client) RespondTruco(action string) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgRespondTruco, protocol.RespondTrucoPayload{
		Action: action,
	}))
}

// GetStats requests the player's own record.
func (c *Client) GetStats() error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgGetStats, nil))
}

// GetLeaderboard requests a ranking window.
func (c *Client) GetLeaderboard(window string, limit int) error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgGetLeaderboard, protocol.GetLeaderboardPayload{
		Type:  window,
		Limit: limit,
	}))
}

// GetOnlineCount requests the online player count.
func (c *Client) GetOnlineCount() error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgGetOnlineCount, nil))
}

// Ping sends a heartbeat carrying the current time.
func (c *Client) Ping() error {
	return c.SendMessage(codec.MustNewMessage(protocol.MsgPing, protocol.PingPayload{
		Timestamp: time.Now().UnixMilli(),
	}))
}
