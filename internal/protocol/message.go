package protocol

import "encoding/json"

// Message is the envelope for every frame on the wire.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType identifies a frame.
type MessageType string

// Client → server message types.
const (
	MsgPing MessageType = "ping" // heartbeat ping

	MsgJoin  MessageType = "join"  // enter matchmaking
	MsgLeave MessageType = "leave" // leave the current match

	MsgPlayCard     MessageType = "play_card"     // play a card from hand
	MsgRequestTruco MessageType = "request_truco" // propose raising the stakes
	MsgRespondTruco MessageType = "respond_truco" // accept / raise / quit

	MsgGetStats       MessageType = "get_stats"        // own stats
	MsgGetLeaderboard MessageType = "get_leaderboard"  // ranking
	MsgGetOnlineCount MessageType = "get_online_count" // online player count
)

// Server → client message types.
const (
	MsgConnected MessageType = "connected" // connection established
	MsgPong      MessageType = "pong"      // heartbeat pong

	MsgWaitingForOpponent MessageType = "waiting_for_opponent" // seated alone
	MsgOpponentLeft       MessageType = "opponent_left"        // opponent disconnected

	MsgHandDealt    MessageType = "hand_dealt"    // per-player deal, own cards only
	MsgCardPlayed   MessageType = "card_played"   // a card hit the table
	MsgTrickResult  MessageType = "trick_result"  // trick resolved
	MsgChangeTurn   MessageType = "change_turn"   // next player to act
	MsgHandComplete MessageType = "hand_complete" // hand resolved, scores updated
	MsgMatchOver    MessageType = "match_over"    // a player reached the target score

	MsgTrucoRequested MessageType = "truco_requested" // stake raise proposed
	MsgTrucoAccepted  MessageType = "truco_accepted"  // stake raise accepted
	MsgTrucoRaised    MessageType = "truco_raised"    // counter-raise proposed
	MsgTrucoQuit      MessageType = "truco_quit"      // hand conceded

	MsgStatsResult       MessageType = "stats_result"
	MsgLeaderboardResult MessageType = "leaderboard_result"
	MsgOnlineCount       MessageType = "online_count"

	MsgError MessageType = "error"
)

// Truco response actions.
const (
	TrucoAccept = "accept"
	TrucoRaise  = "raise"
	TrucoQuit   = "quit"
)
