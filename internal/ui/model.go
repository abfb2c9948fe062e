// Package ui is the Bubble Tea terminal client.
package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/brisado/truco-server/internal/netclient"
	"github.com/brisado/truco-server/internal/protocol"
)

// Phase is the screen the client is on.
type Phase int

const (
	PhaseConnecting Phase = iota
	PhaseLobby
	PhaseMatching
	PhasePlaying
	PhaseMatchOver
	PhaseLeaderboard
	PhaseStats
)

// ServerMessage wraps a protocol message for the Bubble Tea loop.
type ServerMessage struct {
	Msg *protocol.Message
}

// ConnectedMsg signals the WebSocket is up.
type ConnectedMsg struct{}

// ConnectionErrorMsg signals the dial or the connection failed.
type ConnectionErrorMsg struct {
	Err error
}

// DisconnectedMsg signals the server went away.
type DisconnectedMsg struct{}

// LatencyMsg carries a fresh round-trip measurement.
type LatencyMsg struct {
	Millis int64
}

// tableCard is one card lying on the table this trick.
type tableCard struct {
	PlayerID string
	Card     protocol.CardInfo
}

// gameState mirrors what the server has broadcast about the match.
type gameState struct {
	hand        []protocol.CardInfo
	scores      map[string]int
	roundWins   map[string]int
	handValue   int
	currentTurn string
	table       []tableCard

	trucoPending bool
	trucoBy      string
	trucoValue   int
}

// Model is the root Bubble Tea model.
type Model struct {
	client *netclient.Client
	phase  Phase

	playerID   string
	playerName string
	latency    int64

	game        gameState
	matchOver   *protocol.MatchOverPayload
	stats       *protocol.StatsResultPayload
	leaderboard *protocol.LeaderboardResultPayload
	onlineCount int

	statusLine string
	errText    string

	spinner spinner.Model
	msgChan chan tea.Msg
	width   int
	height  int
}

// NewModel builds the client model for the given server URL.
func NewModel(serverURL string) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	c := netclient.NewClient(serverURL)
	m := &Model{
		client:  c,
		phase:   PhaseConnecting,
		spinner: sp,
		msgChan: make(chan tea.Msg, 64),
	}

	c.OnMessage = func(msg *protocol.Message) {
		select {
		case m.msgChan <- ServerMessage{Msg: msg}:
		default:
		}
	}
	c.OnClose = func() {
		select {
		case m.msgChan <- DisconnectedMsg{}:
		default:
		}
	}
	c.OnLatencyUpdate = func(ms int64) {
		select {
		case m.msgChan <- LatencyMsg{Millis: ms}:
		default:
		}
	}

	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.connect(), m.listen(), m.spinner.Tick)
}

// connect dials the server off the UI goroutine.
func (m *Model) connect() tea.Cmd {
	return func() tea.Msg {
		if err := m.client.Connect(); err != nil {
			return ConnectionErrorMsg{Err: err}
		}
		m.client.StartHeartbeat()
		return ConnectedMsg{}
	}
}

// listen forwards one queued server event into the Bubble Tea loop.
func (m *Model) listen() tea.Cmd {
	return func() tea.Msg {
		return <-m.msgChan
	}
}

// isMyTurn reports whether the local player acts next.
func (m *Model) isMyTurn() bool {
	return m.game.currentTurn != "" && m.game.currentTurn == m.playerID
}

// nameFor renders a player ID as "you" or "opponent".
func (m *Model) nameFor(playerID string) string {
	if playerID == m.playerID {
		return "you"
	}
	return "opponent"
}
