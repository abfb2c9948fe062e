package ui

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/brisado/truco-server/internal/logger"
	"github.com/brisado/truco-server/internal/protocol"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ConnectedMsg:
		m.phase = PhaseLobby
		return m, m.listen()

	case ConnectionErrorMsg:
		m.errText = fmt.Sprintf("connection failed: %v", msg.Err)
		return m, tea.Quit

	case DisconnectedMsg:
		m.errText = "disconnected from server"
		return m, tea.Quit

	case LatencyMsg:
		m.latency = msg.Millis
		return m, m.listen()

	case ServerMessage:
		m.handleServer(msg.Msg)
		return m, m.listen()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.client.Close()
		return m, tea.Quit
	}

	switch m.phase {
	case PhaseLobby:
		return m.handleLobbyKey(msg)
	case PhasePlaying:
		return m.handlePlayingKey(msg)
	case PhaseMatchOver, PhaseLeaderboard, PhaseStats:
		// Any key back to the lobby.
		m.phase = PhaseLobby
		m.errText = ""
		return m, nil
	}
	return m, nil
}

func (m *Model) handleLobbyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "j":
		if err := m.client.Join(); err != nil {
			m.errText = err.Error()
			return m, nil
		}
		m.phase = PhaseMatching
	case "l":
		_ = m.client.GetLeaderboard(protocol.WindowTotal, 10)
	case "s":
		_ = m.client.GetStats()
	case "o":
		_ = m.client.GetOnlineCount()
	case "q":
		m.client.Close()
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handlePlayingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "1", "2", "3":
		idx := int(msg.String()[0] - '1')
		if idx >= len(m.game.hand) {
			return m, nil
		}
		if !m.isMyTurn() {
			m.statusLine = "not your turn"
			return m, nil
		}
		_ = m.client.PlayCard(m.game.hand[idx])

	case "t":
		_ = m.client.RequestTruco()

	case "a":
		if m.game.trucoPending && m.game.trucoBy != m.playerID {
			_ = m.client.RespondTruco(protocol.TrucoAccept)
		}
	case "r":
		if m.game.trucoPending && m.game.trucoBy != m.playerID {
			_ = m.client.RespondTruco(protocol.TrucoRaise)
		}
	case "f":
		if m.game.trucoPending && m.game.trucoBy != m.playerID {
			_ = m.client.RespondTruco(protocol.TrucoQuit)
		}
	}
	return m, nil
}

// handleServer folds a server broadcast into the model.
func (m *Model) handleServer(msg *protocol.Message) {
	switch msg.Type {
	case protocol.MsgConnected:
		var p protocol.ConnectedPayload
		if unmarshal(msg, &p) {
			m.playerID = p.PlayerID
			m.playerName = p.PlayerName
		}

	case protocol.MsgWaitingForOpponent:
		m.phase = PhaseMatching
		m.statusLine = "waiting for an opponent..."

	case protocol.MsgHandDealt:
		var p protocol.HandDealtPayload
		if unmarshal(msg, &p) {
			m.phase = PhasePlaying
			m.game = gameState{
				hand:        p.Cards,
				scores:      p.Scores,
				roundWins:   p.RoundWins,
				handValue:   p.HandValue,
				currentTurn: p.FirstToAct,
			}
			m.statusLine = "new hand dealt"
		}

	case protocol.MsgCardPlayed:
		var p protocol.CardPlayedPayload
		if unmarshal(msg, &p) {
			m.game.table = append(m.game.table, tableCard{PlayerID: p.PlayerID, Card: p.Card})
			if p.PlayerID == m.playerID {
				m.game.hand = removeCard(m.game.hand, p.Card)
			}
			m.statusLine = fmt.Sprintf("%s played a card", m.nameFor(p.PlayerID))
		}

	case protocol.MsgTrickResult:
		var p protocol.TrickResultPayload
		if unmarshal(msg, &p) {
			m.game.roundWins = p.RoundWins
			m.game.table = nil
			m.statusLine = fmt.Sprintf("trick to %s", m.nameFor(p.WinnerID))
		}

	case protocol.MsgChangeTurn:
		var p protocol.ChangeTurnPayload
		if unmarshal(msg, &p) {
			m.game.currentTurn = p.CurrentPlayer
		}

	case protocol.MsgHandComplete:
		var p protocol.HandCompletePayload
		if unmarshal(msg, &p) {
			m.game.scores = p.Scores
			m.game.table = nil
			m.statusLine = fmt.Sprintf("hand to %s (+%d)", m.nameFor(p.WinnerID), p.HandValue)
		}

	case protocol.MsgTrucoRequested:
		var p protocol.TrucoRequestedPayload
		if unmarshal(msg, &p) {
			m.game.trucoPending = true
			m.game.trucoBy = p.RequestedBy
			m.game.trucoValue = p.Value
			m.statusLine = fmt.Sprintf("TRUCO! %s proposes %d", m.nameFor(p.RequestedBy), p.Value)
		}

	case protocol.MsgTrucoAccepted:
		var p protocol.TrucoAcceptedPayload
		if unmarshal(msg, &p) {
			m.game.trucoPending = false
			m.game.handValue = p.Value
			m.statusLine = fmt.Sprintf("truco accepted, hand worth %d", p.Value)
		}

	case protocol.MsgTrucoRaised:
		var p protocol.TrucoRaisedPayload
		if unmarshal(msg, &p) {
			m.game.trucoBy = p.RaisedBy
			m.game.trucoValue = p.Value
			m.statusLine = fmt.Sprintf("%s raises to %d!", m.nameFor(p.RaisedBy), p.Value)
		}

	case protocol.MsgTrucoQuit:
		var p protocol.TrucoQuitPayload
		if unmarshal(msg, &p) {
			m.game.trucoPending = false
			m.game.scores = p.Scores
			m.statusLine = fmt.Sprintf("%s ran from the truco (+%d)", m.nameFor(p.QuitBy), p.Points)
		}

	case protocol.MsgMatchOver:
		var p protocol.MatchOverPayload
		if unmarshal(msg, &p) {
			m.matchOver = &p
			m.phase = PhaseMatchOver
		}

	case protocol.MsgOpponentLeft:
		m.phase = PhaseLobby
		m.statusLine = "opponent left the match"
		m.game = gameState{}

	case protocol.MsgStatsResult:
		var p protocol.StatsResultPayload
		if unmarshal(msg, &p) {
			m.stats = &p
			m.phase = PhaseStats
		}

	case protocol.MsgLeaderboardResult:
		var p protocol.LeaderboardResultPayload
		if unmarshal(msg, &p) {
			m.leaderboard = &p
			m.phase = PhaseLeaderboard
		}

	case protocol.MsgOnlineCount:
		var p protocol.OnlineCountPayload
		if unmarshal(msg, &p) {
			m.onlineCount = p.Count
		}

	case protocol.MsgError:
		var p protocol.ErrorPayload
		if unmarshal(msg, &p) {
			m.errText = p.Message
		}
	}
}

func unmarshal(msg *protocol.Message, out any) bool {
	if err := json.Unmarshal(msg.Payload, out); err != nil {
		logger.LogError("bad %s payload: %v", msg.Type, err)
		return false
	}
	return true
}

func removeCard(hand []protocol.CardInfo, c protocol.CardInfo) []protocol.CardInfo {
	for i, h := range hand {
		if h == c {
			return append(hand[:i], hand[i+1:]...)
		}
	}
	return hand
}
