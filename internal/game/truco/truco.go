// Package truco implements the bet-escalation protocol that raises the
// point value of a hand along the fixed ladder 3, 6, 9, 12.
package truco

// BaseHandValue is what an un-bet hand is worth.
const BaseHandValue = 1

// MaxValue caps the ladder.
const MaxValue = 12

// ladder holds the permissible stakes in ascending order.
var ladder = [...]int{3, 6, 9, 12}

// nextValue returns the ladder value strictly above v, or 0 when the
// ladder is exhausted.
func nextValue(v int) int {
	for _, step := range ladder {
		if step > v {
			return step
		}
	}
	return 0
}

// Phase is the protocol state.
type Phase int

const (
	// PhaseIdle means no bet is in flight.
	PhaseIdle Phase = iota
	// PhaseAwaitingResponse means one player proposed a value and the
	// other must accept, raise or quit.
	PhaseAwaitingResponse
)

// Escalation is the bet state machine overlaid on a hand. The proposed
// value and the proposing player only exist while a response is pending,
// so a stale requester can never leak into the idle state. The zero value
// is ready to use. Not safe for concurrent use; the owning session
// serializes access.
type Escalation struct {
	phase       Phase
	accepted    int    // last accepted stake, 0 until the first accept
	proposed    int    // value on the table, valid only while awaiting
	requestedBy string // proposing player, valid only while awaiting
}

// Reset returns the escalation to idle at the base stake. Called at the
// start of every hand.
func (e *Escalation) Reset() {
	*e = Escalation{}
}

// Awaiting reports whether a proposal is pending a response.
func (e *Escalation) Awaiting() bool {
	return e.phase == PhaseAwaitingResponse
}

// RequestedBy returns the player whose proposal is pending, or "".
func (e *Escalation) RequestedBy() string {
	if e.phase != PhaseAwaitingResponse {
		return ""
	}
	return e.requestedBy
}

// AcceptedValue returns the last accepted stake, 0 before any accept.
func (e *Escalation) AcceptedValue() int {
	return e.accepted
}

// ProposedValue returns the value on the table while awaiting, else 0.
func (e *Escalation) ProposedValue() int {
	if e.phase != PhaseAwaitingResponse {
		return 0
	}
	return e.proposed
}

// Request proposes the next stake on the ladder. It returns the proposed
// value, or ok=false when a bet is already in flight or the ladder is
// exhausted. The proposer does not need to hold the trick turn.
func (e *Escalation) Request(playerID string) (value int, ok bool) {
	if e.phase == PhaseAwaitingResponse || e.accepted >= MaxValue {
		return 0, false
	}
	e.phase = PhaseAwaitingResponse
	e.proposed = nextValue(e.accepted)
	e.requestedBy = playerID
	return e.proposed, true
}

// Accept locks in the proposed value as the new stake and returns to idle.
// ok=false when nothing is pending.
func (e *Escalation) Accept() (value int, ok bool) {
	if e.phase != PhaseAwaitingResponse {
		return 0, false
	}
	e.accepted = e.proposed
	e.phase = PhaseIdle
	e.proposed = 0
	e.requestedBy = ""
	return e.accepted, true
}

// Raise counters a pending proposal with the next ladder value, inverting
// roles: the original requester must now respond. ok=false when nothing is
// pending or the proposal already sits at the cap.
func (e *Escalation) Raise(playerID string) (value int, ok bool) {
	if e.phase != PhaseAwaitingResponse || e.proposed >= MaxValue {
		return 0, false
	}
	e.proposed = nextValue(e.proposed)
	e.requestedBy = playerID
	return e.proposed, true
}

// Quit concedes the hand to the current requester. The payout is the last
// accepted stake, or the base 1 when nothing was ever accepted: fleeing a
// first, unanswered truco concedes only the un-bet hand value. ok=false
// when nothing is pending.
func (e *Escalation) Quit() (points int, winner string, ok bool) {
	if e.phase != PhaseAwaitingResponse {
		return 0, "", false
	}
	points = e.accepted
	if points < BaseHandValue {
		points = BaseHandValue
	}
	winner = e.requestedBy
	e.Reset()
	return points, winner, true
}
