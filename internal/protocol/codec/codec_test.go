package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brisado/truco-server/internal/protocol"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	msg := MustNewMessage(protocol.MsgCardPlayed, protocol.CardPlayedPayload{
		PlayerID: "p1",
		Card:     protocol.CardInfo{Suit: 0, Rank: 9},
	})

	data, err := Encode(msg)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, protocol.MsgCardPlayed, decoded.Type)

	payload, err := ParsePayload[protocol.CardPlayedPayload](decoded)
	require.NoError(t, err)
	assert.Equal(t, "p1", payload.PlayerID)
	assert.Equal(t, 9, payload.Card.Rank)
}

func TestDecode_InvalidBytes(t *testing.T) {
	_, err := Decode([]byte("{not json"))
	assert.Error(t, err)
}

func TestNewMessage_NilPayload(t *testing.T) {
	msg, err := NewMessage(protocol.MsgWaitingForOpponent, nil)
	require.NoError(t, err)
	assert.Equal(t, protocol.MsgWaitingForOpponent, msg.Type)
	assert.Empty(t, msg.Payload)
}

func TestParsePayload_EmptyPayload(t *testing.T) {
	msg := &protocol.Message{Type: protocol.MsgJoin}
	payload, err := ParsePayload[protocol.PingPayload](msg)
	require.NoError(t, err)
	assert.Zero(t, payload.Timestamp)
}

func TestNewErrorMessage_KnownCode(t *testing.T) {
	msg := NewErrorMessage(protocol.ErrCodeInvalidMsg)
	payload, err := ParsePayload[protocol.ErrorPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, protocol.ErrCodeInvalidMsg, payload.Code)
	assert.Equal(t, protocol.ErrorMessages[protocol.ErrCodeInvalidMsg], payload.Message)
}

func TestMessagePool_Reuse(t *testing.T) {
	msg := MustNewMessage(protocol.MsgPong, protocol.PongPayload{ServerTimestamp: 1})
	PutMessage(msg)

	fresh := GetMessage()
	assert.Empty(t, fresh.Type)
	assert.Nil(t, fresh.Payload)
}
