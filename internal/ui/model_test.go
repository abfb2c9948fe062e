package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brisado/truco-server/internal/protocol"
	"github.com/brisado/truco-server/internal/protocol/codec"
)

func serverMsg(t *testing.T, msgType protocol.MessageType, payload any) *protocol.Message {
	t.Helper()
	msg, err := codec.NewMessage(msgType, payload)
	require.NoError(t, err)
	return msg
}

func TestHandleServer_ConnectedSetsIdentity(t *testing.T) {
	m := NewModel("ws://localhost:3001/ws")

	m.handleServer(serverMsg(t, protocol.MsgConnected, protocol.ConnectedPayload{
		PlayerID:   "p1",
		PlayerName: "Tatu Valente",
	}))

	assert.Equal(t, "p1", m.playerID)
	assert.Equal(t, "Tatu Valente", m.playerName)
}

func TestHandleServer_HandDealtEntersPlaying(t *testing.T) {
	m := NewModel("ws://localhost:3001/ws")
	m.playerID = "p1"

	m.handleServer(serverMsg(t, protocol.MsgHandDealt, protocol.HandDealtPayload{
		Cards:      []protocol.CardInfo{{Suit: 0, Rank: 9}, {Suit: 1, Rank: 0}, {Suit: 2, Rank: 4}},
		Scores:     map[string]int{"p1": 0, "p2": 0},
		RoundWins:  map[string]int{"p1": 0, "p2": 0},
		FirstToAct: "p1",
		HandValue:  1,
	}))

	assert.Equal(t, PhasePlaying, m.phase)
	assert.Len(t, m.game.hand, 3)
	assert.True(t, m.isMyTurn())
	assert.Equal(t, 1, m.game.handValue)
}

func TestHandleServer_OwnCardPlayedLeavesHand(t *testing.T) {
	m := NewModel("ws://localhost:3001/ws")
	m.playerID = "p1"
	m.game.hand = []protocol.CardInfo{{Suit: 0, Rank: 9}, {Suit: 1, Rank: 0}}

	m.handleServer(serverMsg(t, protocol.MsgCardPlayed, protocol.CardPlayedPayload{
		PlayerID: "p1",
		Card:     protocol.CardInfo{Suit: 0, Rank: 9},
	}))

	assert.Equal(t, []protocol.CardInfo{{Suit: 1, Rank: 0}}, m.game.hand)
	assert.Len(t, m.game.table, 1)
}

func TestHandleServer_OpponentCardKeepsHand(t *testing.T) {
	m := NewModel("ws://localhost:3001/ws")
	m.playerID = "p1"
	m.game.hand = []protocol.CardInfo{{Suit: 1, Rank: 0}}

	m.handleServer(serverMsg(t, protocol.MsgCardPlayed, protocol.CardPlayedPayload{
		PlayerID: "p2",
		Card:     protocol.CardInfo{Suit: 2, Rank: 3},
	}))

	assert.Len(t, m.game.hand, 1)
	assert.Len(t, m.game.table, 1)
}

func TestHandleServer_TrickResultClearsTable(t *testing.T) {
	m := NewModel("ws://localhost:3001/ws")
	m.playerID = "p1"
	m.game.table = []tableCard{{PlayerID: "p1"}, {PlayerID: "p2"}}

	m.handleServer(serverMsg(t, protocol.MsgTrickResult, protocol.TrickResultPayload{
		WinnerID:  "p2",
		RoundWins: map[string]int{"p1": 0, "p2": 1},
	}))

	assert.Empty(t, m.game.table)
	assert.Equal(t, 1, m.game.roundWins["p2"])
}

func TestHandleServer_TrucoFlow(t *testing.T) {
	m := NewModel("ws://localhost:3001/ws")
	m.playerID = "p1"
	m.phase = PhasePlaying

	m.handleServer(serverMsg(t, protocol.MsgTrucoRequested, protocol.TrucoRequestedPayload{
		RequestedBy: "p2",
		Value:       3,
	}))
	assert.True(t, m.game.trucoPending)
	assert.Equal(t, 3, m.game.trucoValue)

	m.handleServer(serverMsg(t, protocol.MsgTrucoAccepted, protocol.TrucoAcceptedPayload{Value: 3}))
	assert.False(t, m.game.trucoPending)
	assert.Equal(t, 3, m.game.handValue)
}

func TestHandleServer_MatchOver(t *testing.T) {
	m := NewModel("ws://localhost:3001/ws")
	m.playerID = "p1"

	m.handleServer(serverMsg(t, protocol.MsgMatchOver, protocol.MatchOverPayload{
		WinnerID: "p1",
		Scores:   map[string]int{"p1": 12, "p2": 4},
	}))

	assert.Equal(t, PhaseMatchOver, m.phase)
	require.NotNil(t, m.matchOver)
	assert.Equal(t, "p1", m.matchOver.WinnerID)
}

func TestHandleServer_OpponentLeftBackToLobby(t *testing.T) {
	m := NewModel("ws://localhost:3001/ws")
	m.phase = PhasePlaying
	m.game.hand = []protocol.CardInfo{{Suit: 0, Rank: 1}}

	m.handleServer(serverMsg(t, protocol.MsgOpponentLeft, nil))

	assert.Equal(t, PhaseLobby, m.phase)
	assert.Empty(t, m.game.hand)
}

func TestView_DoesNotPanicAcrossPhases(t *testing.T) {
	m := NewModel("ws://localhost:3001/ws")
	for _, phase := range []Phase{PhaseConnecting, PhaseLobby, PhaseMatching, PhasePlaying, PhaseMatchOver, PhaseLeaderboard, PhaseStats} {
		m.phase = phase
		assert.NotEmpty(t, m.View())
	}
}
