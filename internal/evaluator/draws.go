package evaluator

import (
	"github.com/lox/holdem-trainer/internal/deck"
)

// DrawInfo estimates how many unseen cards improve the hand and what that
// is worth. Out counts use the standard rule-of-2-and-4 shortcut rather
// than enumeration.
type DrawInfo struct {
	FlushOuts    int
	StraightOuts int
	TotalOuts    int
	Equity       float64
	ImpliedOdds  float64
}

// DrawEquity estimates draw outs and equity for hole cards against the
// community. Returns the zero value before the flop and once all five
// community cards are out.
func DrawEquity(a, b deck.Card, community []deck.Card) DrawInfo {
	if len(community) == 0 || len(community) >= 5 {
		return DrawInfo{}
	}

	all := make([]deck.Card, 0, 6)
	all = append(all, a, b)
	all = append(all, community...)

	var info DrawInfo
	info.FlushOuts = flushOuts(all, len(community))
	info.StraightOuts = straightOuts(all)

	info.TotalOuts = info.FlushOuts + info.StraightOuts
	if info.FlushOuts > 0 && info.StraightOuts > 0 {
		// The draws share outs; knock a couple off instead of enumerating.
		info.TotalOuts -= 2
	}

	multiplier := 2.0
	if len(community) == 3 {
		multiplier = 4.0 // two cards to come
	}
	info.Equity = float64(info.TotalOuts) * multiplier
	if info.Equity > 60 {
		info.Equity = 60
	}
	info.ImpliedOdds = info.Equity * 1.2

	return info
}

func flushOuts(all []deck.Card, boardSize int) int {
	var suitCounts [4]int
	for _, c := range all {
		suitCounts[c.Suit]++
	}
	for _, n := range suitCounts {
		if n == 4 {
			return 9
		}
	}
	if boardSize <= 3 {
		for _, n := range suitCounts {
			if n == 3 {
				return 2 // backdoor
			}
		}
	}
	return 0
}

func straightOuts(all []deck.Card) int {
	// Rank presence with the ace counted both high (14) and low (1).
	var present [15]bool
	for _, c := range all {
		present[c.Rank] = true
		if c.Rank == deck.Ace {
			present[1] = true
		}
	}

	// Open-ended: four consecutive ranks.
	for low := 1; low <= 11; low++ {
		if present[low] && present[low+1] && present[low+2] && present[low+3] {
			return 8
		}
	}

	// Gutshot: a 5-card run missing exactly one interior rank,
	// including the wheel wrap A-2-3-4-5.
	for low := 1; low <= 10; low++ {
		missing := 0
		for r := low; r < low+5; r++ {
			if !present[r] {
				missing++
			}
		}
		if missing == 1 {
			return 4
		}
	}

	return 0
}
