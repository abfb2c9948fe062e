package protocol

// --- Client request payloads ---

// PingPayload carries the client timestamp for latency measurement.
type PingPayload struct {
	Timestamp int64 `json:"timestamp"` // milliseconds
}

// PlayCardPayload identifies the card to play.
type PlayCardPayload struct {
	Card CardInfo `json:"card"`
}

// RespondTrucoPayload answers a pending stake proposal.
type RespondTrucoPayload struct {
	Action string `json:"action"` // accept / raise / quit
}

// Leaderboard window names carried in GetLeaderboardPayload.Type.
const (
	WindowTotal  = "total"
	WindowDaily  = "daily"
	WindowWeekly = "weekly"
)

// GetLeaderboardPayload selects a ranking window.
type GetLeaderboardPayload struct {
	Type  string `json:"type"` // total/daily/weekly
	Limit int    `json:"limit"`
}

// --- Server response payloads ---

// ConnectedPayload confirms the connection.
type ConnectedPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

// PongPayload echoes the client timestamp.
type PongPayload struct {
	ClientTimestamp int64 `json:"client_timestamp"`
	ServerTimestamp int64 `json:"server_timestamp"`
}

// HandDealtPayload is sent per player at every deal: only that player's own
// cards plus the shared public state.
type HandDealtPayload struct {
	Cards      []CardInfo     `json:"cards"`
	Scores     map[string]int `json:"scores"`
	RoundWins  map[string]int `json:"round_wins"`
	FirstToAct string         `json:"first_to_act"`
	HandValue  int            `json:"hand_value"`
}

// CardPlayedPayload announces a card hitting the table.
type CardPlayedPayload struct {
	PlayerID string   `json:"player_id"`
	Card     CardInfo `json:"card"`
}

// TrickResultPayload announces a resolved trick.
type TrickResultPayload struct {
	WinnerID  string         `json:"winner_id"`
	RoundWins map[string]int `json:"round_wins"`
}

// ChangeTurnPayload names the next player to act.
type ChangeTurnPayload struct {
	CurrentPlayer string `json:"current_player"`
}

// HandCompletePayload announces a resolved hand.
type HandCompletePayload struct {
	WinnerID  string         `json:"winner_id"`
	Scores    map[string]int `json:"scores"`
	HandValue int            `json:"hand_value"` // points the hand was worth
}

// MatchOverPayload announces the end of the match.
type MatchOverPayload struct {
	WinnerID string         `json:"winner_id"`
	Scores   map[string]int `json:"scores"`
}

// TrucoRequestedPayload announces a stake proposal.
type TrucoRequestedPayload struct {
	RequestedBy string `json:"requested_by"`
	Value       int    `json:"value"` // proposed, not yet accepted
}

// TrucoAcceptedPayload announces the new accepted stake.
type TrucoAcceptedPayload struct {
	Value int `json:"value"`
}

// TrucoRaisedPayload announces a counter-raise.
type TrucoRaisedPayload struct {
	RaisedBy string `json:"raised_by"`
	Value    int    `json:"value"`
}

// TrucoQuitPayload announces a concession.
type TrucoQuitPayload struct {
	QuitBy string         `json:"quit_by"`
	Points int            `json:"points"` // awarded to the requester
	Scores map[string]int `json:"scores"`
}

// OnlineCountPayload reports the online player count.
type OnlineCountPayload struct {
	Count int `json:"count"`
}

// StatsResultPayload is a player's own record.
type StatsResultPayload struct {
	PlayerID      string  `json:"player_id"`
	PlayerName    string  `json:"player_name"`
	Matches       int     `json:"matches"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	WinRate       float64 `json:"win_rate"`
	PointsFor     int     `json:"points_for"`
	PointsAgainst int     `json:"points_against"`
	CurrentStreak int     `json:"current_streak"`
	MaxWinStreak  int     `json:"max_win_streak"`
	Rank          int     `json:"rank"`
}

// LeaderboardResultPayload is a ranking window.
type LeaderboardResultPayload struct {
	Type    string             `json:"type"`
	Entries []LeaderboardEntry `json:"entries"`
}

// LeaderboardEntry is one ranking row.
type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name"`
	Wins       int     `json:"wins"`
	WinRate    float64 `json:"win_rate"`
}

// ErrorPayload reports a request failure.
type ErrorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// --- Shared structures ---

// CardInfo is the wire form of a card.
type CardInfo struct {
	Suit int `json:"suit"` // 0=♠ 1=♥ 2=♣ 3=♦
	Rank int `json:"rank"` // 0=4 ... 9=3, Truco strength order is separate
}
