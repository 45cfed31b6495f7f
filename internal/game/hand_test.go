package game

import (
	"io"
	rand "math/rand/v2"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/holdem-trainer/internal/deck"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func testRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func newTestTable(stacks ...int) *Table {
	return NewTable(testRNG(42), testLogger(), TableConfig{
		Stacks:    stacks,
		HumanSeat: -1,
		Schedule:  []BlindLevel{{Small: 25, Big: 50}},
	})
}

func TestHeadsUpBlindsAndFirstActor(t *testing.T) {
	table := newTestTable(1000, 1000)
	h := table.StartHand()

	if h.Pot != 75 {
		t.Errorf("Pot = %d, want 75", h.Pot)
	}
	// Heads-up the dealer posts the small blind and the other seat posts
	// the big blind.
	if table.Players[0].Chips != 975 {
		t.Errorf("Dealer stack = %d, want 975 after the small blind", table.Players[0].Chips)
	}
	if table.Players[1].Chips != 950 {
		t.Errorf("Big blind stack = %d, want 950", table.Players[1].Chips)
	}
	if table.Players[0].Position != Button {
		t.Errorf("Dealer position = %s, want BTN", table.Players[0].Position)
	}
	if table.Players[1].Position != BigBlind {
		t.Errorf("Non-dealer position = %s, want BB", table.Players[1].Position)
	}
	if h.CurrentBet != 50 {
		t.Errorf("CurrentBet = %d, want 50", h.CurrentBet)
	}
	if h.Active != 0 {
		t.Errorf("First actor = %d, want the dealer (seat 0)", h.Active)
	}
}

func TestThreeHandedFirstActorIsButton(t *testing.T) {
	table := newTestTable(1000, 1000, 1000)
	h := table.StartHand()

	if h.Active != 0 {
		t.Errorf("First actor = %d, want the button (seat 0) three-handed", h.Active)
	}
	if table.Players[1].Position != SmallBlind || table.Players[2].Position != BigBlind {
		t.Errorf("Positions wrong: seat1=%s seat2=%s", table.Players[1].Position, table.Players[2].Position)
	}
}

func TestBlindSkippedWhenSeatCannotCover(t *testing.T) {
	table := newTestTable(1000, 10, 1000)
	h := table.StartHand()

	if table.Players[1].Bet != 0 {
		t.Errorf("Short seat posted %d, want the blind skipped", table.Players[1].Bet)
	}
	if h.Pot != 50 {
		t.Errorf("Pot = %d, want 50 (big blind only)", h.Pot)
	}
	if h.CurrentBet != 50 {
		t.Errorf("CurrentBet = %d, want 50 regardless of skipped blind", h.CurrentBet)
	}
}

func TestWrongSeatActionIgnored(t *testing.T) {
	table := newTestTable(1000, 1000, 1000)
	h := table.StartHand()
	potBefore := h.Pot

	applied, _, _ := h.apply(2, Call, 0)
	if applied {
		t.Error("Action from non-active seat should be ignored")
	}
	if h.Pot != potBefore || h.Active != 0 {
		t.Error("Ignored action mutated state")
	}
}

func TestCheckWhileOwingIgnored(t *testing.T) {
	table := newTestTable(1000, 1000, 1000)
	h := table.StartHand()

	applied, _, _ := h.apply(0, Check, 0)
	if applied {
		t.Error("Check while owing chips should be ignored")
	}
	if h.Active != 0 {
		t.Errorf("Turn moved to %d after ignored check", h.Active)
	}
}

func TestRaiseBelowMinimumClampsUp(t *testing.T) {
	table := newTestTable(1000, 1000, 1000)
	h := table.StartHand()

	applied, action, _ := h.apply(0, Raise, 60)
	if !applied || action != Raise {
		t.Fatalf("Raise not applied: applied=%v action=%s", applied, action)
	}
	if h.CurrentBet != 100 {
		t.Errorf("CurrentBet = %d, want 100 (clamped up to the minimum)", h.CurrentBet)
	}
	if h.MinRaiseTo != 150 {
		t.Errorf("MinRaiseTo = %d, want 150", h.MinRaiseTo)
	}
}

func TestRaiseBeyondStackBecomesAllIn(t *testing.T) {
	table := newTestTable(1000, 150, 1000)
	h := table.StartHand()

	h.apply(0, Call, 0)
	applied, action, _ := h.apply(1, Raise, 200)
	if !applied || action != Raise {
		t.Fatalf("Raise not applied: applied=%v action=%s", applied, action)
	}

	p := table.Players[1]
	if p.Status != AllIn || p.Chips != 0 {
		t.Errorf("Seat 1 should be all-in with 0 chips, got status=%s chips=%d", p.Status, p.Chips)
	}
	if h.CurrentBet != 150 {
		t.Errorf("CurrentBet = %d, want 150 (capped at the stack)", h.CurrentBet)
	}
}

func TestRaiseReopensAction(t *testing.T) {
	table := newTestTable(1000, 1000, 1000)
	h := table.StartHand()

	h.apply(0, Call, 0)
	h.apply(1, Call, 0)
	// Big blind raises; the two callers owe a fresh decision.
	h.apply(2, Raise, 150)

	if table.Players[0].Status != ToAct || table.Players[1].Status != ToAct {
		t.Errorf("Callers not reopened: seat0=%s seat1=%s",
			table.Players[0].Status, table.Players[1].Status)
	}
}

func TestFoldOutAwardsPotImmediately(t *testing.T) {
	table := newTestTable(1000, 1000, 1000)
	h := table.StartHand()

	h.apply(0, Fold, 0)
	h.apply(1, Fold, 0)

	if !h.Complete {
		t.Fatal("Hand should be complete after all but one fold")
	}
	if h.Winner != 2 {
		t.Errorf("Winner = %d, want 2", h.Winner)
	}
	if table.Players[2].Chips != 1025 {
		t.Errorf("Winner stack = %d, want 1025", table.Players[2].Chips)
	}
	if h.Pot != 0 {
		t.Errorf("Pot = %d, want 0 after award", h.Pot)
	}
	if h.Active != -1 {
		t.Errorf("Active = %d, want -1 on a complete hand", h.Active)
	}
}

func TestAllInShowdownRunsOutBoard(t *testing.T) {
	table := newTestTable(500, 500)
	h := table.StartHand()

	h.apply(0, Raise, 500)
	h.apply(1, Call, 0)

	if !h.Complete {
		t.Fatal("Hand should run out to showdown once both seats are all-in")
	}
	if len(h.Board) != 5 {
		t.Errorf("Board has %d cards, want 5", len(h.Board))
	}
	if h.Street != Showdown {
		t.Errorf("Street = %s, want showdown", h.Street)
	}
	if got := table.Players[h.Winner].Chips; got != 1000 {
		t.Errorf("Winner stack = %d, want the whole 1000", got)
	}
	if table.TotalChips() != 1000 {
		t.Errorf("TotalChips = %d, want 1000", table.TotalChips())
	}
}

func TestChipConservationThroughFullHand(t *testing.T) {
	table := newTestTable(1000, 1000, 1000, 1000)
	h := table.StartHand()
	const want = 4000

	for i := 0; i < 200 && !h.Complete; i++ {
		seat := h.Active
		if seat < 0 {
			t.Fatal("No active seat on an incomplete hand")
		}
		if h.ToCall(seat) > 0 {
			h.apply(seat, Call, 0)
		} else {
			h.apply(seat, Check, 0)
		}
		if total := table.TotalChips(); total != want {
			t.Fatalf("Chips not conserved after action %d: have %d, want %d", i, total, want)
		}
	}

	if !h.Complete {
		t.Fatal("Hand did not complete within 200 passive actions")
	}
	if h.Winner < 0 {
		t.Error("Complete hand has no winner")
	}
}

func TestStreetAdvancesOnlyWhenRoundCloses(t *testing.T) {
	table := newTestTable(1000, 1000, 1000)
	h := table.StartHand()

	h.apply(0, Call, 0)
	if h.Street != Preflop {
		t.Fatalf("Street advanced to %s with seats still to act", h.Street)
	}
	h.apply(1, Call, 0)
	if h.Street != Preflop {
		t.Fatalf("Street advanced to %s before the big blind acted", h.Street)
	}

	h.apply(2, Check, 0)
	if h.Street != Flop {
		t.Fatalf("Street = %s after the round closed, want flop", h.Street)
	}
	if len(h.Board) != 3 {
		t.Errorf("Board has %d cards on the flop, want 3", len(h.Board))
	}
	for _, p := range table.Players {
		if p.Bet != 0 {
			t.Errorf("%s street bet = %d, want 0 after the advance", p.Name, p.Bet)
		}
	}
	if h.CurrentBet != 0 {
		t.Errorf("CurrentBet = %d, want 0 on a fresh street", h.CurrentBet)
	}
	// Postflop action starts left of the button.
	if h.Active != 1 {
		t.Errorf("First postflop actor = %d, want seat 1", h.Active)
	}
}

func TestShowdownAwardsHighestScore(t *testing.T) {
	players := []*Player{
		{Seat: 0, Name: "hero", Chips: 500, Status: ToAct, HasCards: true,
			HoleCards: [2]deck.Card{deck.NewCard(deck.Ace, deck.Spades), deck.NewCard(deck.Ace, deck.Hearts)}},
		{Seat: 1, Name: "villain", Chips: 500, Status: ToAct, HasCards: true,
			HoleCards: [2]deck.Card{deck.NewCard(deck.Seven, deck.Clubs), deck.NewCard(deck.Two, deck.Diamonds)}},
	}
	h := &HandState{
		Players: players,
		Button:  0,
		Street:  Preflop,
		Board:   make([]deck.Card, 0, 5),
		Deck: deck.NewOrdered([]deck.Card{
			deck.NewCard(deck.King, deck.Diamonds),
			deck.NewCard(deck.Eight, deck.Clubs),
			deck.NewCard(deck.Three, deck.Spades),
			deck.NewCard(deck.Four, deck.Hearts),
			deck.NewCard(deck.Nine, deck.Diamonds),
		}),
		BigBlind:   50,
		MinRaiseTo: 50,
		Active:     0,
		Winner:     -1,
		logger:     testLogger(),
	}

	for i := 0; i < 20 && !h.Complete; i++ {
		h.apply(h.Active, Check, 0)
	}

	if !h.Complete {
		t.Fatal("Hand did not reach showdown")
	}
	if h.Winner != 0 {
		t.Errorf("Winner = %d, want seat 0 with aces", h.Winner)
	}
}

func TestLegalActions(t *testing.T) {
	table := newTestTable(1000, 1000, 1000)
	h := table.StartHand()

	got := h.LegalActions()
	want := []Action{Fold, Call, Raise}
	if len(got) != len(want) {
		t.Fatalf("LegalActions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("LegalActions[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	if h.Complete {
		t.Fatal("hand unexpectedly complete")
	}
}

func TestLegalActionsWithNothingOwed(t *testing.T) {
	table := newTestTable(1000, 1000)
	h := table.StartHand()

	h.apply(0, Call, 0) // dealer completes the small blind

	// Big blind has matched the bet and may check.
	got := h.LegalActions()
	want := []Action{Fold, Check, Raise}
	for i := range want {
		if i >= len(got) || got[i] != want[i] {
			t.Fatalf("LegalActions = %v, want %v", got, want)
		}
	}
}
