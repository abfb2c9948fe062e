package session

import (
	"log"
	"time"

	"github.com/brisado/truco-server/internal/protocol/convert"
)

// timeAfterFunc is swapped out by tests that need instant timers.
var timeAfterFunc = time.AfterFunc

// startTurnTimer arms the auto-play timer for the player on turn. A zero
// timeout disables it.
func (gs *GameSession) startTurnTimer() {
	if gs.cfg.TurnTimeout <= 0 {
		return
	}

	gs.timerMu.Lock()
	defer gs.timerMu.Unlock()

	if gs.turnTimer != nil {
		gs.turnTimer.Stop()
	}
	gs.turnTimer = timeAfterFunc(gs.cfg.TurnTimeout, gs.handleTurnTimeout)
}

// stopTurnTimer cancels a pending auto-play.
func (gs *GameSession) stopTurnTimer() {
	gs.timerMu.Lock()
	defer gs.timerMu.Unlock()

	if gs.turnTimer != nil {
		gs.turnTimer.Stop()
		gs.turnTimer = nil
	}
}

// stopTimers cancels every scheduled task the session owns.
func (gs *GameSession) stopTimers() {
	gs.timerMu.Lock()
	defer gs.timerMu.Unlock()

	if gs.turnTimer != nil {
		gs.turnTimer.Stop()
		gs.turnTimer = nil
	}
	if gs.nextHandTimer != nil {
		gs.nextHandTimer.Stop()
		gs.nextHandTimer = nil
	}
}

// handleTurnTimeout plays the stalled player's first card for them.
func (gs *GameSession) handleTurnTimeout() {
	gs.mu.RLock()
	if gs.state != StatePlaying {
		gs.mu.RUnlock()
		return
	}
	p := gs.players[gs.turn]
	if len(p.Hand) == 0 {
		gs.mu.RUnlock()
		return
	}
	playerID := p.ID
	info := convert.CardToInfo(p.Hand[0])
	name := p.Name
	gs.mu.RUnlock()

	log.Printf("⏰ room %s: %s timed out, auto-playing", gs.room.GetCode(), name)
	_ = gs.HandlePlayCard(playerID, info)
}
