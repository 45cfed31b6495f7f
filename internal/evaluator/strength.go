// Package evaluator scores hold'em hands with a fast additive heuristic.
//
// The scores are deliberately NOT a canonical 5-card hand ranking: two
// distinct true hand categories can receive overlapping scores. The trainer
// only needs a monotone-ish strength signal for AI decisions and coaching,
// and the additive form keeps every call allocation-free and branch-cheap.
package evaluator

import (
	"github.com/lox/holdem-trainer/internal/deck"
)

// Preflop scoring constants. Pairs score from a base of 50; unpaired hands
// build up from their raw rank values.
const (
	pairBase         = 50.0
	pairRankScale    = 2.0
	premiumPairBonus = 10.0 // QQ+
	topPairBonus     = 10.0 // KK and AA on top of the premium bonus
	suitedBonus      = 6.0
	broadwayBonus    = 10.0 // both cards T or higher
)

// PreflopStrength scores two hole cards on a 0-100 scale.
func PreflopStrength(a, b deck.Card) float64 {
	high, low := a.Rank, b.Rank
	if low > high {
		high, low = low, high
	}

	if high == low {
		score := pairBase + float64(high)*pairRankScale
		if high >= deck.Queen {
			score += premiumPairBonus
		}
		if high >= deck.King {
			score += topPairBonus
		}
		return clamp(score)
	}

	score := float64(high) + 0.5*float64(low)

	if a.Suit == b.Suit {
		score += suitedBonus
	}

	// Connectivity: smaller gaps are worth more.
	switch int(high) - int(low) {
	case 1:
		score += 8
	case 2:
		score += 4
	case 3:
		score += 2
	}

	if low >= deck.Ten {
		score += broadwayBonus
	}

	// Ace-high hands improve with kicker quality.
	if high == deck.Ace {
		score += 0.5 * float64(low)
	}

	return clamp(score)
}

// Postflop bonuses for the best rank-multiplicity pattern found across
// hole+community. Strictly ordered so a better pattern always adds more.
const (
	quadsBonus     = 45.0
	fullHouseBonus = 38.0
	tripsBonus     = 25.0
	twoPairBonus   = 15.0
	onePairBonus   = 8.0
	flushBonus     = 30.0
	straightBonus  = 25.0
)

// BoardStrength scores hole cards against the community cards on a 0-100
// scale. It starts from PreflopStrength and layers on made-hand bonuses.
// Board-only patterns count toward the score: this is part of the documented
// approximation, not an oversight.
func BoardStrength(a, b deck.Card, community []deck.Card) float64 {
	score := PreflopStrength(a, b)
	if len(community) == 0 {
		return score
	}

	all := make([]deck.Card, 0, 7)
	all = append(all, a, b)
	all = append(all, community...)

	var rankCounts [15]int
	var suitCounts [4]int
	for _, c := range all {
		rankCounts[c.Rank]++
		suitCounts[c.Suit]++
	}

	score += multiplicityBonus(rankCounts)

	for _, n := range suitCounts {
		if n >= 5 {
			score += flushBonus
			break
		}
	}

	if hasStraight(rankCounts) {
		score += straightBonus
	}

	return clamp(score)
}

// multiplicityBonus returns the bonus for the single best pattern present.
func multiplicityBonus(rankCounts [15]int) float64 {
	pairs, trips, quads := 0, 0, 0
	for _, n := range rankCounts {
		switch {
		case n >= 4:
			quads++
		case n == 3:
			trips++
		case n == 2:
			pairs++
		}
	}

	switch {
	case quads > 0:
		return quadsBonus
	case trips > 0 && (pairs > 0 || trips > 1):
		return fullHouseBonus
	case trips > 0:
		return tripsBonus
	case pairs >= 2:
		return twoPairBonus
	case pairs == 1:
		return onePairBonus
	}
	return 0
}

// hasStraight reports whether 5 consecutive distinct ranks exist.
// Aces count both high and low (wheel).
func hasStraight(rankCounts [15]int) bool {
	present := func(r int) bool {
		if r == 1 {
			return rankCounts[int(deck.Ace)] > 0
		}
		return rankCounts[r] > 0
	}
	for low := 1; low <= 10; low++ {
		run := true
		for r := low; r < low+5; r++ {
			if !present(r) {
				run = false
				break
			}
		}
		if run {
			return true
		}
	}
	return false
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
