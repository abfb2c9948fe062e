package session

import (
	"log"

	"github.com/brisado/truco-server/internal/game/card"
	"github.com/brisado/truco-server/internal/game/truco"
	"github.com/brisado/truco-server/internal/protocol"
	"github.com/brisado/truco-server/internal/protocol/codec"
	"github.com/brisado/truco-server/internal/protocol/convert"
)

// Start deals the first hand. Call exactly once, after both seats are
// filled.
func (gs *GameSession) Start() {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.state != StateInit {
		return
	}
	gs.startHandLocked()
}

// startHandLocked resets all per-hand state and deals. Seat 0 is dealt
// first and acts first.
func (gs *GameSession) startHandLocked() {
	deck := card.NewShuffledDeck()
	gs.players[0].Hand = deck.Draw(3)
	gs.players[1].Hand = deck.Draw(3)
	// The remaining 34 cards are discarded for this hand.

	gs.cardsInPlay = make(map[string]card.Card, 2)
	gs.roundWins = map[string]int{gs.players[0].ID: 0, gs.players[1].ID: 0}
	gs.handValue = truco.BaseHandValue
	gs.bet.Reset()
	gs.turn = 0
	gs.trickLeader = 0
	gs.state = StatePlaying

	// Each player sees only their own cards.
	for _, p := range gs.players {
		gs.room.SendTo(p.ID, codec.MustNewMessage(protocol.MsgHandDealt, protocol.HandDealtPayload{
			Cards:      convert.CardsToInfos(p.Hand),
			Scores:     copyCounts(gs.scores),
			RoundWins:  copyCounts(gs.roundWins),
			FirstToAct: gs.players[0].ID,
			HandValue:  gs.handValue,
		}))
	}

	gs.startTurnTimer()
}

// resolveHandLocked scores a finished hand and either ends the match or
// schedules the next deal.
func (gs *GameSession) resolveHandLocked() {
	winner := gs.players[0]
	if gs.roundWins[gs.players[1].ID] > gs.roundWins[winner.ID] {
		winner = gs.players[1]
	}
	gs.scores[winner.ID] += gs.handValue

	gs.room.Broadcast(codec.MustNewMessage(protocol.MsgHandComplete, protocol.HandCompletePayload{
		WinnerID:  winner.ID,
		Scores:    copyCounts(gs.scores),
		HandValue: gs.handValue,
	}))

	log.Printf("🃏 room %s: hand worth %d to %s (%d x %d)",
		gs.room.GetCode(), gs.handValue, winner.Name,
		gs.scores[gs.players[0].ID], gs.scores[gs.players[1].ID])

	if gs.scores[winner.ID] >= gs.cfg.TargetScore {
		gs.endMatchLocked(winner)
		return
	}

	// Quiescent window so clients can render the result before the deal.
	gs.state = StateHandOver
	gs.scheduleNextHand()
}

// scheduleNextHand arms the delayed re-deal. The callback re-checks state:
// a teardown during the delay wins.
func (gs *GameSession) scheduleNextHand() {
	gs.timerMu.Lock()
	defer gs.timerMu.Unlock()

	gs.nextHandTimer = timeAfterFunc(gs.cfg.NextHandDelay, func() {
		gs.mu.Lock()
		defer gs.mu.Unlock()
		if gs.state != StateHandOver {
			return
		}
		gs.startHandLocked()
	})
}

// endMatchLocked finishes the match and records the outcome.
func (gs *GameSession) endMatchLocked(winner *GamePlayer) {
	gs.state = StateEnded
	gs.stopTimers()

	gs.room.Broadcast(codec.MustNewMessage(protocol.MsgMatchOver, protocol.MatchOverPayload{
		WinnerID: winner.ID,
		Scores:   copyCounts(gs.scores),
	}))

	log.Printf("🏆 room %s: match over, %s wins %d x %d",
		gs.room.GetCode(), winner.Name,
		gs.scores[winner.ID], gs.scores[gs.players[opponentSeat(winner.Seat)].ID])

	gs.recordResultsLocked(winner)
}

// recordResultsLocked persists both players' results.
func (gs *GameSession) recordResultsLocked(winner *GamePlayer) {
	if gs.recorder == nil {
		return
	}
	for _, p := range gs.players {
		opp := gs.players[opponentSeat(p.Seat)]
		err := gs.recorder.RecordMatchResult(p.ID, p.Name, p == winner, gs.scores[p.ID], gs.scores[opp.ID])
		if err != nil {
			log.Printf("failed to record match result for %s: %v", p.Name, err)
		}
	}
}

// Teardown stops the session unconditionally: timers cancelled, no further
// action accepted. Called when either player disconnects.
func (gs *GameSession) Teardown() {
	gs.mu.Lock()
	gs.state = StateEnded
	gs.mu.Unlock()

	gs.stopTimers()
}
