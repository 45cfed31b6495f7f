package game

import (
	"fmt"
	rand "math/rand/v2"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lox/holdem-trainer/internal/deck"
	"github.com/lox/holdem-trainer/internal/evaluator"
	"github.com/lox/holdem-trainer/internal/stats"
)

// Engine is the surface the presentation layer talks to. It owns the table,
// feeds the opponent statistics tracker from every applied action, and keeps
// the per-hand audit log. Every exported method applies as one atomic
// transition under the engine mutex, so a scheduled AI tick can never
// observe a partial update.
type Engine struct {
	mu     sync.Mutex
	table  *Table
	stats  *stats.Tracker
	logger *log.Logger

	// generation increases on every hand start and game reset. Deferred AI
	// decisions carry the generation they were scheduled under and are
	// dropped when it is stale.
	generation uint64

	preflopAggressor int
	cbetPending      bool
}

// NewEngine creates an engine for a fresh game.
func NewEngine(rng *rand.Rand, logger *log.Logger, cfg TableConfig) *Engine {
	return &Engine{
		table:            NewTable(rng, logger, cfg),
		stats:            stats.NewTracker(),
		logger:           logger.WithPrefix("engine"),
		preflopAggressor: -1,
	}
}

// Table exposes the underlying table for read-only display purposes.
func (e *Engine) Table() *Table {
	return e.table
}

// Hand returns the hand in progress, or nil.
func (e *Engine) Hand() *HandState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.table.Hand
}

// Generation identifies the current hand/game epoch for stale-timer checks.
func (e *Engine) Generation() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.generation
}

// ActiveSeat returns the seat whose turn it is, or -1.
func (e *Engine) ActiveSeat() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.table.Hand == nil {
		return -1
	}
	return e.table.Hand.Active
}

// StartHand deals the next hand. Returns nil once the game is over.
func (e *Engine) StartHand() *HandState {
	e.mu.Lock()
	defer e.mu.Unlock()

	h := e.table.StartHand()
	if h == nil {
		return nil
	}
	e.generation++
	e.preflopAggressor = -1
	e.cbetPending = false

	dealt := make([]string, 0, len(e.table.Players))
	for _, p := range e.table.Players {
		if p.HasCards {
			dealt = append(dealt, p.Name)
		}
	}
	e.stats.BeginHand(dealt)
	return h
}

// ApplyAction applies one action for the seat. Illegal actions are silent
// no-ops; amounts are clamped rather than rejected. Applied actions update
// the opponent statistics and the hand's audit log.
func (e *Engine) ApplyAction(seat int, action Action, amount int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	h := e.table.Hand
	if h == nil || h.Complete || seat != h.Active {
		return
	}
	p := h.Players[seat]

	preflop := h.Street == Preflop
	street := h.Street
	potBefore := h.Pot

	// Preflop the blinds always set a live bet level, so a raise there is
	// never an opening bet, even for the big blind exercising its option
	// (Bet == CurrentBet) behind limpers.
	opening := h.CurrentBet == p.Bet && !preflop

	advice, _ := Recommend(h, seat)
	strength := evaluator.BoardStrength(p.HoleCards[0], p.HoleCards[1], h.Board)

	applied, actual, committed := h.apply(seat, action, amount)
	if !applied {
		return
	}

	e.recordStats(p, actual, committed, potBefore, preflop, opening, street)

	if e.cbetPending && h.Street != Flop {
		// The betting round the continuation bet belonged to is over.
		e.cbetPending = false
	}

	h.appendLog(LogEntry{
		Message:  actionMessage(p, actual, committed, h.CurrentBet),
		Position: p.Position,
		Action:   actual,
		Amount:   committed,
		Advice:   advice,
		Strength: strength,
	})

	// Track the preflop aggressor for c-bet statistics.
	if preflop && actual == Raise {
		e.preflopAggressor = seat
	}
}

func (e *Engine) recordStats(p *Player, action Action, committed, potBefore int, preflop, opening bool, street Street) {
	switch action {
	case Fold:
		e.stats.RecordFold(p.Name)
		if e.cbetPending && street == Flop {
			// The latch stays set so every later defender is counted too.
			e.stats.RecordCBetFaced(p.Name, true)
		}
	case Check:
		// Checks are free and tracked only through the aggression ratio's
		// denominator staying put.
	case Call:
		e.stats.RecordCall(p.Name, preflop)
		if e.cbetPending && street == Flop {
			e.stats.RecordCBetFaced(p.Name, false)
		}
	case Raise:
		if opening {
			e.stats.RecordBet(p.Name, committed, potBefore)
		} else {
			e.stats.RecordRaise(p.Name, committed, potBefore, preflop)
		}
		if e.cbetPending && street == Flop {
			// A raise replaces the continuation bet; seats behind now face
			// the raise instead.
			e.stats.RecordCBetFaced(p.Name, false)
			e.cbetPending = false
		}
		if street == Flop && opening && p.Seat == e.preflopAggressor {
			e.cbetPending = true
		}
	}
}

func actionMessage(p *Player, action Action, committed, tableBet int) string {
	switch action {
	case Fold:
		return fmt.Sprintf("%s folds", p.Name)
	case Check:
		return fmt.Sprintf("%s checks", p.Name)
	case Call:
		if p.Status == AllIn {
			return fmt.Sprintf("%s calls %d and is all-in", p.Name, committed)
		}
		return fmt.Sprintf("%s calls %d", p.Name, committed)
	case Raise:
		if p.Status == AllIn {
			return fmt.Sprintf("%s raises to %d and is all-in", p.Name, tableBet)
		}
		return fmt.Sprintf("%s raises to %d", p.Name, tableBet)
	}
	return p.Name
}

// SeatView is one seat's state in a Snapshot.
type SeatView struct {
	Name      string
	Human     bool
	Chips     int
	Position  Position
	Status    Status
	HoleCards [2]deck.Card
	HasCards  bool
	Bet       int
}

// Snapshot is a read-only copy of the table for presentation. The caller
// decides which hole cards to reveal.
type Snapshot struct {
	HandNum    int
	Street     Street
	Board      []deck.Card
	Pot        int
	CurrentBet int
	Active     int
	Complete   bool
	Winner     int
	Seats      []SeatView
	Log        []LogEntry
}

// Snapshot copies the current table and hand state. Safe to retain: nothing
// in the snapshot aliases engine-owned memory.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		HandNum: e.table.HandNum,
		Active:  -1,
		Winner:  -1,
		Seats:   make([]SeatView, len(e.table.Players)),
	}
	for i, p := range e.table.Players {
		snap.Seats[i] = SeatView{
			Name:      p.Name,
			Human:     p.Human,
			Chips:     p.Chips,
			Position:  p.Position,
			Status:    p.Status,
			HoleCards: p.HoleCards,
			HasCards:  p.HasCards,
			Bet:       p.Bet,
		}
	}

	h := e.table.Hand
	if h == nil {
		return snap
	}
	snap.Street = h.Street
	snap.Board = append([]deck.Card(nil), h.Board...)
	snap.Pot = h.Pot
	snap.CurrentBet = h.CurrentBet
	snap.Active = h.Active
	snap.Complete = h.Complete
	snap.Winner = h.Winner
	snap.Log = append([]LogEntry(nil), h.Log...)
	return snap
}

// AdvanceStreet nudges the state machine forward when a round has closed
// but no action arrived to trigger the advance. Normally a no-op: applied
// actions advance streets themselves.
func (e *Engine) AdvanceStreet() *HandState {
	e.mu.Lock()
	defer e.mu.Unlock()

	h := e.table.Hand
	if h == nil || h.Complete {
		return h
	}
	if h.roundComplete() {
		h.advanceStreet()
	}
	return h
}

// RecommendedAction returns the coaching advice for a seat. Read-only.
func (e *Engine) RecommendedAction(seat int) (Action, string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Recommend(e.table.Hand, seat)
}

// StatsFor returns a read-only snapshot of a player's tracked statistics.
func (e *Engine) StatsFor(playerID string) stats.PlayerStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats.StatsFor(playerID)
}

// Reset abandons any hand in progress, clears all opponent statistics, and
// restores every stack for a new game. In-flight AI timers observe the
// generation bump and drop their decisions.
func (e *Engine) Reset(stacks []int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.generation++
	e.stats.Reset()
	e.table.Hand = nil
	e.table.HandNum = 0
	e.preflopAggressor = -1
	e.cbetPending = false
	for i, p := range e.table.Players {
		if i < len(stacks) {
			p.Chips = stacks[i]
		}
		p.resetForHand()
	}
	e.logger.Debug("game reset")
}
