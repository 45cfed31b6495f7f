// Package ai turns evaluator output, table context, and tracked opponent
// tendencies into betting decisions for the computer seats.
package ai

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/holdem-trainer/internal/evaluator"
	"github.com/lox/holdem-trainer/internal/game"
	"github.com/lox/holdem-trainer/internal/stats"
)

// Decision is the policy's output: an action, a raise-to amount when the
// action is a raise, and a rationale string for logging.
type Decision struct {
	Action    game.Action
	Amount    int
	Rationale string
}

// Profile tunes a policy's personality.
type Profile struct {
	Aggression     float64 // scales bet and raise sizing
	BluffFrequency float64 // base pure-bluff rate when checked to
}

// DefaultProfile is a reasonably balanced opponent.
func DefaultProfile() Profile {
	return Profile{Aggression: 1.0, BluffFrequency: 0.08}
}

// Policy decides actions for AI seats. The single rng is the only source of
// randomness, covering both the strength perturbation and mixing
// frequencies.
type Policy struct {
	rng     *rand.Rand
	logger  *log.Logger
	profile Profile
}

// NewPolicy creates a decision policy.
func NewPolicy(rng *rand.Rand, logger *log.Logger, profile Profile) *Policy {
	return &Policy{
		rng:     rng,
		logger:  logger.WithPrefix("ai"),
		profile: profile,
	}
}

// Nominal opening-range width per position, expressed as the strength a
// hand must beat to be "above range". Later positions open wider, so their
// threshold is lower.
var openingThreshold = map[game.Position]float64{
	game.Button:           45,
	game.Cutoff:           47,
	game.Hijack:           49,
	game.MiddlePosition:   52,
	game.UnderTheGunPlus1: 54,
	game.UnderTheGun:      56,
	game.SmallBlind:       50,
	game.BigBlind:         50,
}

// Decide produces an action for the seat. The opponent snapshot is the
// tracked human player's tendencies, used for exploit adjustments.
func (pl *Policy) Decide(h *game.HandState, seat int, opp stats.PlayerStats) Decision {
	p := h.Players[seat]
	strength := evaluator.BoardStrength(p.HoleCards[0], p.HoleCards[1], h.Board)
	texture := evaluator.BoardTexture(h.Board)
	draws := evaluator.DrawEquity(p.HoleCards[0], p.HoleCards[1], h.Board)
	toCall := h.ToCall(seat)
	live := h.Contenders()

	s := pl.adjustedStrength(h, p, strength, texture, draws, live, opp)

	pl.logger.Debug("evaluating spot",
		"seat", seat, "street", h.Street, "strength", fmt.Sprintf("%.1f", strength),
		"adjusted", fmt.Sprintf("%.1f", s), "toCall", toCall, "pot", h.Pot)

	if toCall == 0 {
		return pl.decideUnopened(h, p, s, draws, opp)
	}
	return pl.decideFacingBet(h, p, s, draws, toCall, opp)
}

// adjustedStrength runs the strength pipeline: position range adjustment,
// opponent looseness, draw equity, board texture, multi-way tightening,
// commitment at low SPR, and a bounded random perturbation.
func (pl *Policy) adjustedStrength(h *game.HandState, p *game.Player, strength float64,
	texture evaluator.Texture, draws evaluator.DrawInfo, live int, opp stats.PlayerStats) float64 {

	s := strength

	if s > openingThreshold[p.Position] {
		s += 4
	} else {
		s -= 4
	}

	// Loose opponents continue wide, so thin value bets gain strength.
	if opp.HandsDealt >= 10 && opp.VPIP() > 0.35 {
		s += 3
	}

	if h.Street == game.Flop || h.Street == game.Turn {
		s += draws.Equity * 0.7
	}

	switch {
	case texture.Wetness > 60:
		if draws.TotalOuts >= 8 {
			s += 6
		} else {
			s -= 8
		}
	case texture.Wetness < 30:
		s += 3 // dry boards are good bluffing boards
	}

	if live > 2 {
		s -= 4 * float64(live-2)
	}

	// Commitment: at low stack-to-pot ratios, polarize.
	if h.Pot > 0 && float64(p.Chips)/float64(h.Pot) < 3 {
		if s > 65 {
			s += 10
		} else {
			s -= 8
		}
	}

	s += pl.rng.Float64()*10 - 5

	return s
}

// decideUnopened picks an action when no bet is owed.
func (pl *Policy) decideUnopened(h *game.HandState, p *game.Player, s float64,
	draws evaluator.DrawInfo, opp stats.PlayerStats) Decision {

	pot := h.Pot

	if s >= 75 {
		// Polarized sizing: near-nut hands bet bigger.
		frac := 0.5 + pl.rng.Float64()*0.25
		rationale := "value bet"
		if s >= 90 {
			frac = 0.9 + pl.rng.Float64()*0.5
			rationale = "big value bet with near-nut strength"
		}
		return pl.raise(h, p, betSize(pot, frac*pl.profile.Aggression), rationale)
	}

	if draws.TotalOuts >= 8 && (h.Street == game.Flop || h.Street == game.Turn) {
		if pl.rng.Float64() < 0.6 {
			return pl.raise(h, p, betSize(pot, 0.6*pl.profile.Aggression),
				fmt.Sprintf("semi-bluff with %d outs", draws.TotalOuts))
		}
		return Decision{Action: game.Check, Rationale: "check the draw"}
	}

	if s < 40 {
		freq := pl.profile.BluffFrequency * streetBluffFactor(h.Street)
		if opp.CBetsFaced >= 4 && opp.FoldToCBet() > 0.6 {
			// Exploit: opponent gives up against flop pressure.
			freq *= 1.5
		}
		if pl.rng.Float64() < freq {
			return pl.raise(h, p, betSize(pot, 0.66*pl.profile.Aggression), "bluff")
		}
	}

	return Decision{Action: game.Check, Rationale: "nothing worth betting"}
}

// decideFacingBet picks an action when chips are owed.
func (pl *Policy) decideFacingBet(h *game.HandState, p *game.Player, s float64,
	draws evaluator.DrawInfo, toCall int, opp stats.PlayerStats) Decision {

	required := float64(toCall) / float64(h.Pot+toCall) * 100

	if s >= 85 {
		return pl.raise(h, p, h.CurrentBet+betSize(h.Pot, pl.profile.Aggression),
			"raise big with near-nut strength")
	}

	if s >= 70 {
		if pl.rng.Float64() < 0.5 {
			return pl.raise(h, p, h.CurrentBet+betSize(h.Pot, 0.5*pl.profile.Aggression),
				"raise strong hand")
		}
		return Decision{Action: game.Call, Rationale: "call strong hand, keep the pot controlled"}
	}

	if s >= required+10 {
		return Decision{Action: game.Call,
			Rationale: fmt.Sprintf("strength clears the %.0f%% pot odds", required)}
	}

	if draws.TotalOuts > 0 && draws.ImpliedOdds >= required {
		if pl.rng.Float64() < 0.25 {
			return pl.raise(h, p, h.CurrentBet+betSize(h.Pot, 0.6*pl.profile.Aggression),
				"semi-bluff raise with a live draw")
		}
		return Decision{Action: game.Call,
			Rationale: fmt.Sprintf("implied odds %.0f%% cover the price", draws.ImpliedOdds)}
	}

	// Bluff-catch wider against opponents who bet at everything.
	if opp.HandsDealt >= 10 && opp.AggressionFactor > 3 && s >= required-8 {
		return Decision{Action: game.Call, Rationale: "bluff-catch against an over-aggressive opponent"}
	}

	// Razor-thin spots: mix in calls so folds can't be bought too cheap.
	if s >= required-3 {
		if pl.rng.Float64() < 0.5 {
			return Decision{Action: game.Call, Rationale: "marginal defend"}
		}
		return Decision{Action: game.Fold, Rationale: "marginal spot, fold this time"}
	}

	if s < 35 && pl.rng.Float64() < 0.04 {
		return pl.raise(h, p, h.CurrentBet+betSize(h.Pot, 0.75),
			"low-frequency bluff-raise")
	}

	return Decision{Action: game.Fold,
		Rationale: fmt.Sprintf("strength below the %.0f%% needed", required)}
}

// raise builds a raise decision with the amount capped to the seat's
// available chips before submission.
func (pl *Policy) raise(h *game.HandState, p *game.Player, raiseTo int, rationale string) Decision {
	if raiseTo < h.MinRaiseTo {
		raiseTo = h.MinRaiseTo
	}
	if max := p.Chips + p.Bet; raiseTo > max {
		raiseTo = max
	}
	if raiseTo <= h.CurrentBet {
		// Too shallow to raise at all; calling is the honest equivalent.
		return Decision{Action: game.Call, Rationale: rationale}
	}
	return Decision{Action: game.Raise, Amount: raiseTo, Rationale: rationale}
}

func betSize(pot int, frac float64) int {
	size := int(float64(pot) * frac)
	if size < 1 {
		size = 1
	}
	return size
}

// streetBluffFactor scales the pure-bluff frequency down on later streets.
func streetBluffFactor(s game.Street) float64 {
	switch s {
	case game.Flop:
		return 1.0
	case game.Turn:
		return 0.8
	case game.River:
		return 0.6
	default:
		return 0.5
	}
}
