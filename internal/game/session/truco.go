package session

import (
	"github.com/brisado/truco-server/internal/protocol"
	"github.com/brisado/truco-server/internal/protocol/codec"
)

// HandleTrucoRequest proposes raising the hand's stake. The proposer does
// not need to hold the trick turn; the bet protocol runs independently of
// trick order. A request while one is pending, or past the ladder cap, is
// an invalid move.
func (gs *GameSession) HandleTrucoRequest(playerID string) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.state != StatePlaying || gs.playerByID(playerID) == nil {
		return protocol.ErrInvalidMove
	}

	value, ok := gs.bet.Request(playerID)
	if !ok {
		return protocol.ErrInvalidMove
	}

	gs.room.Broadcast(codec.MustNewMessage(protocol.MsgTrucoRequested, protocol.TrucoRequestedPayload{
		RequestedBy: playerID,
		Value:       value,
	}))
	return nil
}

// HandleTrucoResponse answers a pending proposal. Only the player who did
// not make the proposal may respond.
func (gs *GameSession) HandleTrucoResponse(playerID, action string) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.state != StatePlaying || gs.playerByID(playerID) == nil {
		return protocol.ErrInvalidMove
	}
	if !gs.bet.Awaiting() || gs.bet.RequestedBy() == playerID {
		return protocol.ErrInvalidMove
	}

	switch action {
	case protocol.TrucoAccept:
		value, ok := gs.bet.Accept()
		if !ok {
			return protocol.ErrInvalidMove
		}
		// Play resumes at the elevated stake.
		gs.handValue = value
		gs.room.Broadcast(codec.MustNewMessage(protocol.MsgTrucoAccepted, protocol.TrucoAcceptedPayload{
			Value: value,
		}))

	case protocol.TrucoRaise:
		value, ok := gs.bet.Raise(playerID)
		if !ok {
			return protocol.ErrInvalidMove
		}
		gs.room.Broadcast(codec.MustNewMessage(protocol.MsgTrucoRaised, protocol.TrucoRaisedPayload{
			RaisedBy: playerID,
			Value:    value,
		}))

	case protocol.TrucoQuit:
		points, winnerID, ok := gs.bet.Quit()
		if !ok {
			return protocol.ErrInvalidMove
		}
		gs.scores[winnerID] += points
		gs.room.Broadcast(codec.MustNewMessage(protocol.MsgTrucoQuit, protocol.TrucoQuitPayload{
			QuitBy: playerID,
			Points: points,
			Scores: copyCounts(gs.scores),
		}))

		winner := gs.playerByID(winnerID)
		if gs.scores[winnerID] >= gs.cfg.TargetScore {
			gs.endMatchLocked(winner)
			return nil
		}
		// The hand is conceded; deal again immediately.
		gs.stopTurnTimer()
		gs.startHandLocked()

	default:
		return protocol.ErrInvalidMove
	}
	return nil
}
