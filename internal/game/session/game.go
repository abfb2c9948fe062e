package session

import (
	"github.com/brisado/truco-server/internal/game/card"
	"github.com/brisado/truco-server/internal/protocol"
	"github.com/brisado/truco-server/internal/protocol/codec"
	"github.com/brisado/truco-server/internal/protocol/convert"
)

// HandlePlayCard plays a card for the given player. Out-of-turn plays,
// cards not in hand and plays outside StatePlaying are invalid moves; the
// caller drops them silently per the permissive real-time protocol.
func (gs *GameSession) HandlePlayCard(playerID string, info protocol.CardInfo) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.state != StatePlaying {
		return protocol.ErrInvalidMove
	}

	p := gs.playerByID(playerID)
	if p == nil || gs.players[gs.turn].ID != playerID {
		return protocol.ErrInvalidMove
	}

	c := convert.InfoToCard(info)
	hand, ok := card.Remove(p.Hand, c)
	if !ok {
		return protocol.ErrInvalidMove
	}

	gs.stopTurnTimer()
	p.Hand = hand
	gs.cardsInPlay[playerID] = c

	gs.room.Broadcast(codec.MustNewMessage(protocol.MsgCardPlayed, protocol.CardPlayedPayload{
		PlayerID: playerID,
		Card:     info,
	}))

	// Trick resolves synchronously the instant both cards are down.
	if len(gs.cardsInPlay) == 2 {
		gs.resolveTrickLocked()
		return nil
	}

	gs.advanceTurnLocked(opponentSeat(p.Seat))
	return nil
}

// resolveTrickLocked compares the two cards in play, credits the winner
// and, on the third trick, resolves the hand.
func (gs *GameSession) resolveTrickLocked() {
	c0 := gs.cardsInPlay[gs.players[0].ID]
	c1 := gs.cardsInPlay[gs.players[1].ID]

	winnerSeat := gs.trickLeader // unreachable tie falls to the leader
	if cmp := card.Compare(c0, c1); cmp > 0 {
		winnerSeat = 0
	} else if cmp < 0 {
		winnerSeat = 1
	}
	winner := gs.players[winnerSeat]

	gs.roundWins[winner.ID]++
	gs.cardsInPlay = make(map[string]card.Card, 2)

	gs.room.Broadcast(codec.MustNewMessage(protocol.MsgTrickResult, protocol.TrickResultPayload{
		WinnerID:  winner.ID,
		RoundWins: copyCounts(gs.roundWins),
	}))

	if len(gs.players[0].Hand) == 0 && len(gs.players[1].Hand) == 0 {
		gs.resolveHandLocked()
		return
	}

	// Trick winner leads the next one.
	gs.trickLeader = winnerSeat
	gs.advanceTurnLocked(winnerSeat)
}

// advanceTurnLocked hands the turn to the given seat and rearms the timer.
func (gs *GameSession) advanceTurnLocked(seat int) {
	gs.turn = seat
	gs.room.Broadcast(codec.MustNewMessage(protocol.MsgChangeTurn, protocol.ChangeTurnPayload{
		CurrentPlayer: gs.players[seat].ID,
	}))
	gs.startTurnTimer()
}
