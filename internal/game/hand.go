package game

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/lox/holdem-trainer/internal/deck"
	"github.com/lox/holdem-trainer/internal/evaluator"
)

// HandState holds everything about the hand in progress. It is created by
// the table at hand start, mutated by every action and street advance, and
// becomes read-only once the pot is awarded.
type HandState struct {
	Players []*Player
	Button  int
	Street  Street
	Board   []deck.Card
	Deck    *deck.Deck

	// Pot is the sum of all committed chips across all streets. Chips move
	// from stacks into the pot the moment they are committed, so
	// sum(stacks) + Pot is constant for the whole hand.
	Pot        int
	CurrentBet int // table bet level this street
	MinRaiseTo int // smallest legal raise-to amount
	BigBlind   int

	Active   int // seat whose turn it is, -1 once the hand resolves
	Complete bool
	Winner   int // seat awarded the pot, -1 until resolved

	Log []LogEntry

	logger *log.Logger
}

// apply validates, clamps and commits one action for the given seat.
// Illegal input degrades to a no-op. It returns whether anything was
// committed plus the action and chip amount actually applied, which can
// differ from the request when clamping kicks in.
func (h *HandState) apply(seat int, action Action, amount int) (bool, Action, int) {
	if h.Complete || seat < 0 || seat >= len(h.Players) || seat != h.Active {
		h.logger.Debug("ignoring action from non-active seat",
			"seat", seat, "active", h.Active, "action", action)
		return false, action, 0
	}

	p := h.Players[seat]
	if p.Status == AllIn {
		// An all-in seat has no decision to make; never consume one.
		h.logger.Debug("auto-advancing all-in seat", "seat", seat)
		h.afterAction()
		return false, action, 0
	}

	applied := action
	committed := 0

	switch action {
	case Fold:
		p.Status = Folded

	case Check:
		if h.CurrentBet != p.Bet {
			h.logger.Debug("ignoring check while a bet is owed",
				"seat", seat, "owed", h.CurrentBet-p.Bet)
			return false, action, 0
		}
		p.Status = Called

	case Call:
		gap := h.CurrentBet - p.Bet
		if gap <= 0 {
			h.logger.Debug("ignoring call with nothing owed", "seat", seat)
			return false, action, 0
		}
		committed = h.commit(p, gap)
		if p.Chips == 0 {
			p.Status = AllIn
		} else {
			p.Status = Called
		}

	case Raise:
		applied, committed = h.applyRaise(p, amount)
		if committed == 0 {
			return false, action, 0
		}
	}

	h.afterAction()
	return true, applied, committed
}

// applyRaise clamps the requested raise-to amount and commits it. A raise
// capped below the table bet degrades to an all-in call.
func (h *HandState) applyRaise(p *Player, raiseTo int) (Action, int) {
	max := p.Chips + p.Bet
	if raiseTo > max {
		raiseTo = max
	}
	if raiseTo < h.MinRaiseTo && raiseTo < max {
		// Short of the minimum without being all-in: clamp up, not out.
		raiseTo = h.MinRaiseTo
		if raiseTo > max {
			raiseTo = max
		}
	}

	if raiseTo <= h.CurrentBet {
		// The whole stack cannot exceed the table bet, so this is a call.
		gap := h.CurrentBet - p.Bet
		if gap <= 0 {
			return Raise, 0
		}
		committed := h.commit(p, gap)
		if p.Chips == 0 {
			p.Status = AllIn
		} else {
			p.Status = Called
		}
		return Call, committed
	}

	committed := h.commit(p, raiseTo-p.Bet)
	h.MinRaiseTo = raiseTo + (raiseTo - h.CurrentBet)
	h.CurrentBet = raiseTo
	if p.Chips == 0 {
		p.Status = AllIn
	} else {
		p.Status = Raised
	}

	// A raise re-opens the action: every other live seat owes a decision.
	for _, q := range h.Players {
		if q.Seat != p.Seat && q.InHand() && q.Status != AllIn {
			q.Status = ToAct
		}
	}

	return Raise, committed
}

// commit moves up to amount chips from the player's stack into the pot,
// capped at the stack (capacity overflow recovers by clamping to all-in).
func (h *HandState) commit(p *Player, amount int) int {
	if amount > p.Chips {
		amount = p.Chips
	}
	if amount <= 0 {
		return 0
	}
	p.Chips -= amount
	p.Bet += amount
	p.TotalBet += amount
	h.Pot += amount
	return amount
}

// afterAction resolves the hand, advances the street, or passes the turn.
func (h *HandState) afterAction() {
	if h.Complete {
		return
	}

	if h.Contenders() == 1 {
		h.resolveFoldOut()
		return
	}

	if h.roundComplete() {
		h.advanceStreet()
		return
	}

	h.Active = h.nextToAct(h.Active + 1)
	if h.Active == -1 {
		// Should be unreachable: the round is incomplete but no seat owes
		// action. Recover by rescanning from the button.
		h.logger.Warn("no active seat with round incomplete, rescanning",
			"street", h.Street, "pot", h.Pot)
		h.Active = h.nextToAct(h.Button + 1)
		if h.Active == -1 {
			h.advanceStreet()
		}
	}
}

// roundComplete reports whether the street can close: every seat still in
// the hand has either acted and matched the table bet, or is all-in.
func (h *HandState) roundComplete() bool {
	for _, p := range h.Players {
		if !p.InHand() || p.Status == AllIn {
			continue
		}
		if !p.Status.Acted() || p.Bet != h.CurrentBet {
			return false
		}
	}
	return true
}

// advanceStreet deals the next community cards and reopens betting, or
// resolves the hand at showdown. When one or zero seats can still bet, the
// remaining streets run out automatically with no further betting.
func (h *HandState) advanceStreet() {
	if h.Complete {
		return
	}

	if h.Street >= River {
		h.Street = Showdown
		h.resolveShowdown()
		return
	}

	h.Street++
	switch h.Street {
	case Flop:
		h.Board = append(h.Board, h.Deck.DealN(3)...)
	case Turn, River:
		h.Board = append(h.Board, h.Deck.DealN(1)...)
	}

	for _, p := range h.Players {
		p.Bet = 0
		if p.InHand() && p.Status != AllIn {
			p.Status = ToAct
		}
	}
	h.CurrentBet = 0
	h.MinRaiseTo = h.BigBlind

	if h.bettable() <= 1 {
		h.Active = -1
		h.advanceStreet()
		return
	}

	h.Active = h.nextToAct((h.Button + 1) % len(h.Players))
}

// resolveFoldOut awards the whole pot to the last seat standing.
func (h *HandState) resolveFoldOut() {
	for _, p := range h.Players {
		if p.InHand() {
			h.award(p, fmt.Sprintf("%s wins %d, all other players folded", p.Name, h.Pot))
			return
		}
	}
}

// resolveShowdown awards the pot to the single seat with the strictly
// highest heuristic board strength. Equal scores are not split: the first
// seat in scan order keeps the pot.
func (h *HandState) resolveShowdown() {
	best := -1
	bestScore := -1.0
	for _, p := range h.Players {
		if !p.InHand() {
			continue
		}
		score := evaluator.BoardStrength(p.HoleCards[0], p.HoleCards[1], h.Board)
		if score > bestScore {
			bestScore = score
			best = p.Seat
		}
	}
	if best == -1 {
		// No contenders at showdown should be impossible; log and bail.
		h.logger.Warn("showdown with no contenders", "pot", h.Pot)
		h.Complete = true
		h.Active = -1
		return
	}
	winner := h.Players[best]
	h.appendLog(LogEntry{
		Message:  fmt.Sprintf("%s wins %d at showdown", winner.Name, h.Pot),
		Position: winner.Position,
		Strength: bestScore,
	})
	winner.Chips += h.Pot
	h.Pot = 0
	h.Winner = best
	h.Complete = true
	h.Active = -1
	h.logger.Debug("hand resolved at showdown", "winner", winner.Name, "score", bestScore)
}

func (h *HandState) award(p *Player, message string) {
	h.appendLog(LogEntry{
		Message:  message,
		Position: p.Position,
	})
	p.Chips += h.Pot
	h.Pot = 0
	h.Winner = p.Seat
	h.Complete = true
	h.Active = -1
	h.logger.Debug("hand resolved by fold-out", "winner", p.Name)
}

// Contenders counts seats still contesting the pot.
func (h *HandState) Contenders() int {
	n := 0
	for _, p := range h.Players {
		if p.InHand() {
			n++
		}
	}
	return n
}

// bettable counts seats that can still put chips in.
func (h *HandState) bettable() int {
	n := 0
	for _, p := range h.Players {
		if p.CanBet() {
			n++
		}
	}
	return n
}

// nextToAct returns the first seat at or after from (wrapping, bounded by
// the seat count) whose status is ToAct, or -1.
func (h *HandState) nextToAct(from int) int {
	n := len(h.Players)
	for i := 0; i < n; i++ {
		seat := ((from + i) % n + n) % n
		if h.Players[seat].Status == ToAct {
			return seat
		}
	}
	return -1
}

// LegalActions returns the actions the active seat may take. Advisory: the
// state machine clamps rather than rejects, but the UI should only offer
// these.
func (h *HandState) LegalActions() []Action {
	if h.Complete || h.Active < 0 {
		return nil
	}
	p := h.Players[h.Active]
	actions := []Action{Fold}
	if h.CurrentBet == p.Bet {
		actions = append(actions, Check)
	} else {
		actions = append(actions, Call)
	}
	if p.Chips > 0 && p.Chips+p.Bet > h.CurrentBet {
		actions = append(actions, Raise)
	}
	return actions
}

// ToCall returns the amount the seat owes to match the table bet, capped at
// its stack.
func (h *HandState) ToCall(seat int) int {
	p := h.Players[seat]
	gap := h.CurrentBet - p.Bet
	if gap < 0 {
		gap = 0
	}
	if gap > p.Chips {
		gap = p.Chips
	}
	return gap
}
