package game

// Street represents the betting phase within a hand
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
)

func (s Street) String() string {
	return [...]string{"preflop", "flop", "turn", "river", "showdown"}[s]
}

// Action represents a player action. Going all-in is not a separate action:
// calls and raises that consume the whole stack flip the seat to AllIn.
type Action int

const (
	Fold Action = iota
	Check
	Call
	Raise
)

func (a Action) String() string {
	return [...]string{"fold", "check", "call", "raise"}[a]
}

// Status is the explicit per-seat state within a betting round. It replaces
// the hasActed/isFolded/isAllIn flag combinations: a seat owes action exactly
// when its status is ToAct.
type Status int

const (
	Waiting Status = iota // dealt in, round not started
	ToAct                 // owes a decision this round
	Called                // acted and matched the table bet (includes checks)
	Raised                // acted by betting or raising
	AllIn                 // stack fully committed, exempt from matching
	Folded                // out of the hand
)

func (s Status) String() string {
	return [...]string{"waiting", "to-act", "called", "raised", "all-in", "folded"}[s]
}

// Acted reports whether the seat has already acted this round.
func (s Status) Acted() bool {
	return s == Called || s == Raised || s == AllIn || s == Folded
}
