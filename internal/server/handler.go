package server

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/brisado/truco-server/internal/game/room"
	"github.com/brisado/truco-server/internal/game/session"
	"github.com/brisado/truco-server/internal/protocol"
	"github.com/brisado/truco-server/internal/protocol/codec"
	"github.com/brisado/truco-server/internal/storage"
	"github.com/brisado/truco-server/internal/types"
)

// HandlerDeps collects what the message handler needs.
type HandlerDeps struct {
	Server   types.ServerInterface
	Registry *room.Registry
	Matcher  *Matcher
	Store    *storage.RedisStore
}

// Handler routes client messages to game and query logic.
type Handler struct {
	server   types.ServerInterface
	registry *room.Registry
	matcher  *Matcher
	store    *storage.RedisStore
	handlers map[protocol.MessageType]handlerFunc
}

type handlerFunc func(client types.ClientInterface, msg *protocol.Message)

// NewHandler builds the dispatch table.
func NewHandler(deps HandlerDeps) *Handler {
	h := &Handler{
		server:   deps.Server,
		registry: deps.Registry,
		matcher:  deps.Matcher,
		store:    deps.Store,
	}
	h.initHandlers()
	return h
}

func (h *Handler) initHandlers() {
	h.handlers = map[protocol.MessageType]handlerFunc{
		protocol.MsgPing: h.handlePing,

		protocol.MsgJoin:  func(c types.ClientInterface, _ *protocol.Message) { h.handleJoin(c) },
		protocol.MsgLeave: func(c types.ClientInterface, _ *protocol.Message) { h.handleLeave(c) },

		protocol.MsgPlayCard:     h.handlePlayCard,
		protocol.MsgRequestTruco: func(c types.ClientInterface, _ *protocol.Message) { h.handleRequestTruco(c) },
		protocol.MsgRespondTruco: h.handleRespondTruco,

		protocol.MsgGetStats:       func(c types.ClientInterface, _ *protocol.Message) { h.handleGetStats(c) },
		protocol.MsgGetLeaderboard: h.handleGetLeaderboard,
		protocol.MsgGetOnlineCount: func(c types.ClientInterface, _ *protocol.Message) { h.handleGetOnlineCount(c) },
	}
}

// Handle dispatches one decoded message.
func (h *Handler) Handle(client types.ClientInterface, msg *protocol.Message) {
	if handler, ok := h.handlers[msg.Type]; ok {
		handler(client, msg)
		return
	}

	log.Printf("⚠️ unknown message type '%s' from %s (%s)", msg.Type, client.GetName(), client.GetID())
	client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
}

// --- Connection ---

func (h *Handler) handlePing(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.PingPayload](msg)
	if err != nil {
		payload = &protocol.PingPayload{}
	}
	client.SendMessage(codec.MustNewMessage(protocol.MsgPong, protocol.PongPayload{
		ClientTimestamp: payload.Timestamp,
		ServerTimestamp: time.Now().UnixMilli(),
	}))
}

// --- Matchmaking ---

func (h *Handler) handleJoin(client types.ClientInterface) {
	if err := h.matcher.Match(client); err != nil {
		var gameErr *protocol.GameError
		if errors.As(err, &gameErr) {
			client.SendMessage(codec.NewErrorMessage(gameErr.Code))
		} else {
			client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, err.Error()))
		}
	}
}

func (h *Handler) handleLeave(client types.ClientInterface) {
	h.teardownRoomOf(client)
}

// HandleDisconnect is called by the transport when the connection drops.
func (h *Handler) HandleDisconnect(client types.ClientInterface) {
	h.teardownRoomOf(client)
}

// teardownRoomOf dissolves the player's room: the opponent is told, the
// session stopped, both seats freed.
func (h *Handler) teardownRoomOf(client types.ClientInterface) {
	r := h.registry.ByPlayer(client.GetID())
	if r == nil {
		return
	}

	opp := r.Opponent(client.GetID())
	removed := h.registry.RemoveByPlayer(client.GetID())
	if removed == nil {
		return
	}

	if gs := removed.Game(); gs != nil {
		gs.Teardown()
	}
	if opp != nil {
		opp.SendMessage(codec.MustNewMessage(protocol.MsgOpponentLeft, nil))
	}
}

// --- Game actions ---

// gameOf returns the client's room and live session, or nils. Moves
// arriving with no session are dropped quietly; the client is either
// racing the matchmaker or poking around.
func (h *Handler) gameOf(client types.ClientInterface) (*room.Room, *session.GameSession) {
	r := h.registry.ByPlayer(client.GetID())
	if r == nil {
		return nil, nil
	}
	gs := r.Game()
	if gs == nil {
		return nil, nil
	}
	return r, gs
}

func (h *Handler) handlePlayCard(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.PlayCardPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	r, gs := h.gameOf(client)
	if gs == nil {
		log.Printf("🃏 play_card from %s with no live match", client.GetName())
		return
	}

	if err := gs.HandlePlayCard(client.GetID(), payload.Card); err != nil {
		// Invalid moves are dropped without a reply; the client's view
		// stays consistent through the broadcasts it already receives.
		log.Printf("🃏 rejected play from %s in room %s: %v", client.GetName(), r.Code, err)
	}
}

func (h *Handler) handleRequestTruco(client types.ClientInterface) {
	r, gs := h.gameOf(client)
	if gs == nil {
		log.Printf("📣 truco request from %s with no live match", client.GetName())
		return
	}

	if err := gs.HandleTrucoRequest(client.GetID()); err != nil {
		log.Printf("📣 rejected truco request from %s in room %s: %v", client.GetName(), r.Code, err)
	}
}

func (h *Handler) handleRespondTruco(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.RespondTrucoPayload](msg)
	if err != nil {
		client.SendMessage(codec.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	r, gs := h.gameOf(client)
	if gs == nil {
		log.Printf("📣 truco response from %s with no live match", client.GetName())
		return
	}

	if err := gs.HandleTrucoResponse(client.GetID(), payload.Action); err != nil {
		log.Printf("📣 rejected truco response %q from %s in room %s: %v",
			payload.Action, client.GetName(), r.Code, err)
	}
}

// --- Queries ---

func (h *Handler) handleGetStats(client types.ClientInterface) {
	ctx := context.Background()
	stats, err := h.store.GetPlayerStats(ctx, client.GetID())
	if err != nil {
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, "stats lookup failed"))
		return
	}

	if stats == nil {
		// Fresh player, empty record.
		client.SendMessage(codec.MustNewMessage(protocol.MsgStatsResult, protocol.StatsResultPayload{
			PlayerID:   client.GetID(),
			PlayerName: client.GetName(),
		}))
		return
	}

	rank, _ := h.store.GetPlayerRank(ctx, client.GetID())

	client.SendMessage(codec.MustNewMessage(protocol.MsgStatsResult, protocol.StatsResultPayload{
		PlayerID:      stats.PlayerID,
		PlayerName:    stats.PlayerName,
		Matches:       stats.Matches,
		Wins:          stats.Wins,
		Losses:        stats.Losses,
		WinRate:       stats.WinRate(),
		PointsFor:     stats.PointsFor,
		PointsAgainst: stats.PointsAgainst,
		CurrentStreak: stats.CurrentStreak,
		MaxWinStreak:  stats.MaxWinStreak,
		Rank:          int(rank),
	}))
}

func (h *Handler) handleGetLeaderboard(client types.ClientInterface, msg *protocol.Message) {
	payload, err := codec.ParsePayload[protocol.GetLeaderboardPayload](msg)
	if err != nil {
		payload = &protocol.GetLeaderboardPayload{Type: protocol.WindowTotal, Limit: 10}
	}
	if payload.Limit <= 0 || payload.Limit > 50 {
		payload.Limit = 10
	}
	if payload.Type == "" {
		payload.Type = protocol.WindowTotal
	}

	entries, err := h.store.GetLeaderboard(context.Background(), payload.Type, payload.Limit)
	if err != nil {
		client.SendMessage(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, "leaderboard lookup failed"))
		return
	}

	result := make([]protocol.LeaderboardEntry, 0, len(entries))
	for _, entry := range entries {
		result = append(result, protocol.LeaderboardEntry{
			Rank:       entry.Rank,
			PlayerID:   entry.PlayerID,
			PlayerName: entry.PlayerName,
			Wins:       entry.Wins,
			WinRate:    entry.WinRate,
		})
	}

	client.SendMessage(codec.MustNewMessage(protocol.MsgLeaderboardResult, protocol.LeaderboardResultPayload{
		Type:    payload.Type,
		Entries: result,
	}))
}

func (h *Handler) handleGetOnlineCount(client types.ClientInterface) {
	client.SendMessage(codec.MustNewMessage(protocol.MsgOnlineCount, protocol.OnlineCountPayload{
		Count: h.server.GetOnlineCount(),
	}))
}
