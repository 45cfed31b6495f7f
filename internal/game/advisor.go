package game

import (
	"fmt"

	"github.com/lox/holdem-trainer/internal/evaluator"
)

// Recommend returns the advisory action for a seat plus a short rationale
// for the coaching overlay. Pure function of the hand state; it never
// mutates anything and uses no randomness, so advice is reproducible.
func Recommend(h *HandState, seat int) (Action, string) {
	if h == nil || h.Complete || seat < 0 || seat >= len(h.Players) {
		return Check, "no action pending"
	}
	p := h.Players[seat]
	if !p.InHand() || p.Status == AllIn {
		return Check, "no action pending"
	}

	strength := evaluator.BoardStrength(p.HoleCards[0], p.HoleCards[1], h.Board)
	draws := evaluator.DrawEquity(p.HoleCards[0], p.HoleCards[1], h.Board)
	toCall := h.ToCall(seat)

	if toCall == 0 {
		switch {
		case strength >= 70:
			return Raise, fmt.Sprintf("strong hand (%.0f), bet for value", strength)
		case draws.TotalOuts >= 8:
			return Raise, fmt.Sprintf("%d outs, semi-bluff your draw", draws.TotalOuts)
		default:
			return Check, "take the free card"
		}
	}

	// Required win equity from pot odds, as a percentage.
	required := float64(toCall) / float64(h.Pot+toCall) * 100

	switch {
	case strength >= 85:
		return Raise, fmt.Sprintf("near-nut strength (%.0f), raise for value", strength)
	case strength >= required+10:
		return Call, fmt.Sprintf("strength %.0f clears the %.0f%% pot odds", strength, required)
	case draws.ImpliedOdds >= required:
		return Call, fmt.Sprintf("draw equity %.0f%% justifies the call", draws.Equity)
	default:
		return Fold, fmt.Sprintf("strength %.0f below the %.0f%% needed", strength, required)
	}
}
