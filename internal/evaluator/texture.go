package evaluator

import (
	"sort"

	"github.com/lox/holdem-trainer/internal/deck"
)

// Texture classifies the community cards. All scores are 0-100.
type Texture struct {
	Wetness         float64
	Connectedness   float64
	Pairedness      float64
	Suitedness      float64
	HasFlushDraw    bool
	HasStraightDraw bool
	IsMonotone      bool
	IsRainbow       bool
}

// BoardTexture classifies the community cards. An empty board yields a
// fixed neutral default.
func BoardTexture(community []deck.Card) Texture {
	if len(community) == 0 {
		return Texture{Wetness: 50, Connectedness: 50, IsRainbow: true}
	}

	var suitCounts [4]int
	var rankCounts [15]int
	for _, c := range community {
		suitCounts[c.Suit]++
		rankCounts[c.Rank]++
	}

	maxSuit, suitsSeen := 0, 0
	for _, n := range suitCounts {
		if n > maxSuit {
			maxSuit = n
		}
		if n > 0 {
			suitsSeen++
		}
	}

	uniqueRanks := make([]int, 0, len(community))
	for r := int(deck.Two); r <= int(deck.Ace); r++ {
		if rankCounts[r] > 0 {
			uniqueRanks = append(uniqueRanks, r)
		}
	}
	sort.Ints(uniqueRanks)

	t := Texture{
		IsMonotone: suitsSeen == 1 && len(community) >= 3,
		IsRainbow:  suitsSeen == len(community),
	}

	// Suitedness grows with the dominant suit's count.
	t.Suitedness = clamp(float64(maxSuit-1) * 34)
	t.HasFlushDraw = maxSuit >= 2

	// Connectedness accumulates proximity bonuses between adjacent unique
	// ranks (gap of 2 or less), plus a wheel bonus for ace-with-low boards.
	for i := 1; i < len(uniqueRanks); i++ {
		switch uniqueRanks[i] - uniqueRanks[i-1] {
		case 1:
			t.Connectedness += 30
			t.HasStraightDraw = true
		case 2:
			t.Connectedness += 15
			t.HasStraightDraw = true
		}
	}
	if rankCounts[int(deck.Ace)] > 0 {
		for r := int(deck.Two); r <= int(deck.Five); r++ {
			if rankCounts[r] > 0 {
				t.Connectedness += 20
				break
			}
		}
	}
	t.Connectedness = clamp(t.Connectedness)

	// Each duplicated card pairs the board further.
	t.Pairedness = clamp(float64(len(community)-len(uniqueRanks)) * 50)

	wetness := 20.0
	if t.HasFlushDraw {
		wetness += 25
	}
	if t.HasStraightDraw {
		wetness += 25
	}
	wetness += float64(maxSuit-1) * 10
	if t.Pairedness > 0 {
		// Paired boards kill many draw combinations.
		wetness *= 0.7
	}
	t.Wetness = clamp(wetness)

	return t
}
