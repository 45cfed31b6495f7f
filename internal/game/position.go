package game

// Position is a seat's turn-order label relative to the dealer button.
type Position int

const (
	Button Position = iota
	SmallBlind
	BigBlind
	UnderTheGun
	UnderTheGunPlus1
	MiddlePosition
	Hijack
	Cutoff
)

func (p Position) String() string {
	return [...]string{"BTN", "SB", "BB", "UTG", "UTG+1", "MP", "HJ", "CO"}[p]
}

// IsLate reports whether the position acts last or near-last postflop.
func (p Position) IsLate() bool {
	return p == Button || p == Cutoff || p == Hijack
}

// positionOrder is the fixed clockwise order of labels from the button.
var positionOrder = [...]Position{
	Button, SmallBlind, BigBlind, UnderTheGun,
	UnderTheGunPlus1, MiddlePosition, Hijack, Cutoff,
}

// positionForOffset maps a seat's offset from the dealer (counted over
// seats dealt into the hand) to its label. Heads-up the dealer is the
// small blind, so the other seat is labelled the big blind.
func positionForOffset(offset, ringSize int) Position {
	if ringSize == 2 && offset == 1 {
		return BigBlind
	}
	return positionOrder[offset%len(positionOrder)]
}
