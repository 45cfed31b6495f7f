package game

import (
	"github.com/lox/holdem-trainer/internal/deck"
)

// Player represents one seat at the table. Seat indices are stable across
// hands; position labels are derived per hand from the dealer offset.
type Player struct {
	Seat     int
	Name     string
	Human    bool
	Chips    int
	Position Position
	Status   Status

	HoleCards [2]deck.Card
	HasCards  bool // folded players keep their last cards for display

	Bet      int // committed this street
	TotalBet int // committed this hand
}

// InHand reports whether the seat still contests the pot.
func (p *Player) InHand() bool {
	return p.Status != Folded && p.HasCards
}

// CanBet reports whether the seat can still put chips in.
func (p *Player) CanBet() bool {
	return p.InHand() && p.Status != AllIn && p.Chips > 0
}

func (p *Player) resetForHand() {
	p.Status = Waiting
	p.HasCards = false
	p.Bet = 0
	p.TotalBet = 0
	p.Position = Button
}
