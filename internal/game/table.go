package game

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/holdem-trainer/internal/deck"
)

// BlindLevel is one step of the escalating blind schedule.
type BlindLevel struct {
	Small int
	Big   int
}

// Table owns the player collection and the active hand. It rotates the
// dealer, posts blinds, escalates the blind schedule, and detects the end
// of the game.
type Table struct {
	Players []*Player
	Dealer  int
	HandNum int
	Hand    *HandState

	Schedule      []BlindLevel
	HandsPerLevel int

	rng    *rand.Rand
	logger *log.Logger
}

// TableConfig configures a new table.
type TableConfig struct {
	Stacks        []int // starting stack per seat, index = seat
	HumanSeat     int   // seat controlled by the human player, -1 for none
	Names         []string
	Schedule      []BlindLevel
	HandsPerLevel int
	DealerSeat    int
}

// NewTable seats the players and prepares the first blind level. No hand is
// dealt until StartHand.
func NewTable(rng *rand.Rand, logger *log.Logger, cfg TableConfig) *Table {
	players := make([]*Player, len(cfg.Stacks))
	for seat, chips := range cfg.Stacks {
		name := fmt.Sprintf("Player %d", seat+1)
		if seat < len(cfg.Names) && cfg.Names[seat] != "" {
			name = cfg.Names[seat]
		}
		players[seat] = &Player{
			Seat:  seat,
			Name:  name,
			Human: seat == cfg.HumanSeat,
			Chips: chips,
		}
	}

	schedule := cfg.Schedule
	if len(schedule) == 0 {
		schedule = []BlindLevel{{Small: 25, Big: 50}}
	}

	return &Table{
		Players:       players,
		Dealer:        cfg.DealerSeat,
		Schedule:      schedule,
		HandsPerLevel: cfg.HandsPerLevel,
		rng:           rng,
		logger:        logger.WithPrefix("table"),
	}
}

// Blinds returns the blind level for the current hand count.
func (t *Table) Blinds() BlindLevel {
	level := 0
	if t.HandsPerLevel > 0 && t.HandNum > 0 {
		level = (t.HandNum - 1) / t.HandsPerLevel
	}
	if level >= len(t.Schedule) {
		level = len(t.Schedule) - 1
	}
	return t.Schedule[level]
}

// GameOver reports whether at most one seat retains a positive stack.
func (t *Table) GameOver() bool {
	funded := 0
	for _, p := range t.Players {
		if p.Chips > 0 {
			funded++
		}
	}
	return funded <= 1
}

// Champion returns the last funded seat once the game is over, or nil.
func (t *Table) Champion() *Player {
	if !t.GameOver() {
		return nil
	}
	for _, p := range t.Players {
		if p.Chips > 0 {
			return p
		}
	}
	return nil
}

// StartHand rotates the button (after the first hand), shuffles a fresh
// deck, deals every funded seat in, posts blinds, and activates the first
// seat to act. Returns nil once the game is over.
func (t *Table) StartHand() *HandState {
	if t.GameOver() {
		return nil
	}

	if t.HandNum > 0 {
		t.Dealer = t.nextFunded(t.Dealer + 1)
	}
	t.HandNum++
	blinds := t.Blinds()

	h := &HandState{
		Players:    t.Players,
		Button:     t.Dealer,
		Street:     Preflop,
		Board:      make([]deck.Card, 0, 5),
		Deck:       deck.New(t.rng),
		BigBlind:   blinds.Big,
		MinRaiseTo: blinds.Big * 2,
		Winner:     -1,
		logger:     t.logger,
	}
	t.Hand = h

	// Deal funded seats in; eliminated seats sit the hand out pre-folded.
	ring := t.fundedRing()
	for _, p := range t.Players {
		p.resetForHand()
		if p.Chips <= 0 {
			p.Status = Folded
		}
	}
	for offset, seat := range ring {
		p := t.Players[seat]
		cards := h.Deck.DealN(2)
		p.HoleCards = [2]deck.Card{cards[0], cards[1]}
		p.HasCards = true
		p.Status = ToAct
		p.Position = positionForOffset(offset, len(ring))
	}

	t.postBlinds(h, ring, blinds)

	// Preflop action starts three positions after the dealer (UTG), skipping
	// seats that cannot act. Heads-up the dealer posts the small blind and
	// opens the preflop action itself.
	start := ring[3%len(ring)]
	if len(ring) == 2 {
		start = ring[0]
	}
	h.Active = h.nextToAct(start)

	t.logger.Debug("hand started",
		"hand", t.HandNum, "dealer", t.Dealer,
		"blinds", fmt.Sprintf("%d/%d", blinds.Small, blinds.Big),
		"players", len(ring))

	return h
}

// postBlinds commits the small and big blinds. A blind is skipped outright
// when the seat cannot cover it; the table bet level is still set to the big
// blind either way. Heads-up the dealer posts the small blind and the other
// seat posts the big blind.
func (t *Table) postBlinds(h *HandState, ring []int, blinds BlindLevel) {
	if len(ring) < 2 {
		return
	}
	sbSeat, bbSeat := ring[1], ring[2%len(ring)]
	if len(ring) == 2 {
		sbSeat, bbSeat = ring[0], ring[1]
	}
	sb := t.Players[sbSeat]
	bb := t.Players[bbSeat]

	if sb.Chips >= blinds.Small {
		h.commit(sb, blinds.Small)
		if sb.Chips == 0 {
			sb.Status = AllIn
		}
		h.appendLog(LogEntry{
			Message:  fmt.Sprintf("%s posts small blind %d", sb.Name, blinds.Small),
			Position: sb.Position,
			Amount:   blinds.Small,
		})
	}
	if bb.Chips >= blinds.Big {
		h.commit(bb, blinds.Big)
		if bb.Chips == 0 {
			bb.Status = AllIn
		}
		h.appendLog(LogEntry{
			Message:  fmt.Sprintf("%s posts big blind %d", bb.Name, blinds.Big),
			Position: bb.Position,
			Amount:   blinds.Big,
		})
	}
	h.CurrentBet = blinds.Big
}

// fundedRing returns the funded seats in clockwise order starting at the
// dealer.
func (t *Table) fundedRing() []int {
	n := len(t.Players)
	ring := make([]int, 0, n)
	for i := 0; i < n; i++ {
		seat := (t.Dealer + i) % n
		if t.Players[seat].Chips > 0 {
			ring = append(ring, seat)
		}
	}
	return ring
}

// nextFunded returns the first seat at or after from with chips behind,
// wrapping with a bounded search.
func (t *Table) nextFunded(from int) int {
	n := len(t.Players)
	for i := 0; i < n; i++ {
		seat := ((from + i) % n + n) % n
		if t.Players[seat].Chips > 0 {
			return seat
		}
	}
	return from % n
}

// TotalChips sums all stacks plus the live pot; constant across a game.
func (t *Table) TotalChips() int {
	total := 0
	for _, p := range t.Players {
		total += p.Chips
	}
	if t.Hand != nil {
		total += t.Hand.Pot
	}
	return total
}
