// Package stats accumulates per-player frequency statistics across hands.
// The tracker outlives individual hands and is only cleared on an explicit
// new-game reset.
package stats

// PlayerStats holds the running counters for one player. The derived
// AggressionFactor is recomputed after every update so it is always defined.
type PlayerStats struct {
	PlayerID   string
	HandsDealt int

	// Preflop tendencies
	VPIPHands int // hands entered voluntarily (call/raise, not a forced blind)
	PFRHands  int // hands with at least one preflop raise

	// Raw action counters
	Bets   int
	Raises int
	Calls  int
	Folds  int

	// Continuation-bet defense
	CBetsFaced  int
	FoldsToCBet int

	// Derived
	AggressionFactor float64
	AvgBetFraction   float64 // average bet size as a fraction of the pot

	betSamples int
}

// VPIP returns the fraction of dealt hands the player voluntarily entered.
func (s PlayerStats) VPIP() float64 {
	if s.HandsDealt == 0 {
		return 0
	}
	return float64(s.VPIPHands) / float64(s.HandsDealt)
}

// PFR returns the fraction of dealt hands the player raised preflop.
func (s PlayerStats) PFR() float64 {
	if s.HandsDealt == 0 {
		return 0
	}
	return float64(s.PFRHands) / float64(s.HandsDealt)
}

// FoldToCBet returns how often the player folded when facing a c-bet.
func (s PlayerStats) FoldToCBet() float64 {
	if s.CBetsFaced == 0 {
		return 0
	}
	return float64(s.FoldsToCBet) / float64(s.CBetsFaced)
}

func (s *PlayerStats) recompute() {
	calls := s.Calls
	if calls < 1 {
		calls = 1
	}
	s.AggressionFactor = float64(s.Bets+s.Raises) / float64(calls)
}

func (s *PlayerStats) addBetSample(amount, pot int) {
	if pot < 1 {
		pot = 1
	}
	frac := float64(amount) / float64(pot)
	s.betSamples++
	s.AvgBetFraction += (frac - s.AvgBetFraction) / float64(s.betSamples)
}

// Tracker owns the per-player stats map. Keyed by player id; history is
// never removed by gameplay, only by Reset.
type Tracker struct {
	players []*PlayerStats
	index   map[string]*PlayerStats

	// Per-hand latches so VPIP/PFR count at most once per hand.
	entered   map[string]bool
	raisedPre map[string]bool
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		index:     make(map[string]*PlayerStats),
		entered:   make(map[string]bool),
		raisedPre: make(map[string]bool),
	}
}

func (t *Tracker) get(id string) *PlayerStats {
	if s, ok := t.index[id]; ok {
		return s
	}
	s := &PlayerStats{PlayerID: id}
	t.index[id] = s
	t.players = append(t.players, s)
	return s
}

// BeginHand marks the given players as dealt into a new hand and clears the
// per-hand VPIP/PFR latches.
func (t *Tracker) BeginHand(ids []string) {
	clear(t.entered)
	clear(t.raisedPre)
	for _, id := range ids {
		s := t.get(id)
		s.HandsDealt++
		s.recompute()
	}
}

// RecordFold counts a fold.
func (t *Tracker) RecordFold(id string) {
	s := t.get(id)
	s.Folds++
	s.recompute()
}

// RecordCall counts a call. Preflop calls count as a voluntary entry.
func (t *Tracker) RecordCall(id string, preflop bool) {
	s := t.get(id)
	s.Calls++
	if preflop && !t.entered[id] {
		t.entered[id] = true
		s.VPIPHands++
	}
	s.recompute()
}

// RecordBet counts an opening bet of amount into pot.
func (t *Tracker) RecordBet(id string, amount, pot int) {
	s := t.get(id)
	s.Bets++
	s.addBetSample(amount, pot)
	s.recompute()
}

// RecordRaise counts a raise of amount into pot. Preflop raises count as a
// voluntary entry and toward PFR.
func (t *Tracker) RecordRaise(id string, amount, pot int, preflop bool) {
	s := t.get(id)
	s.Raises++
	s.addBetSample(amount, pot)
	if preflop {
		if !t.entered[id] {
			t.entered[id] = true
			s.VPIPHands++
		}
		if !t.raisedPre[id] {
			t.raisedPre[id] = true
			s.PFRHands++
		}
	}
	s.recompute()
}

// RecordCBetFaced counts the player facing a continuation bet and whether
// they folded to it.
func (t *Tracker) RecordCBetFaced(id string, folded bool) {
	s := t.get(id)
	s.CBetsFaced++
	if folded {
		s.FoldsToCBet++
	}
	s.recompute()
}

// StatsFor returns a read-only snapshot for the player id. Unknown players
// yield a zero-valued snapshot.
func (t *Tracker) StatsFor(id string) PlayerStats {
	if s, ok := t.index[id]; ok {
		return *s
	}
	return PlayerStats{PlayerID: id}
}

// Reset drops all history. Called on explicit new-game only.
func (t *Tracker) Reset() {
	t.players = t.players[:0]
	clear(t.index)
	clear(t.entered)
	clear(t.raisedPre)
}
