package deck

import (
	rand "math/rand/v2"
	"testing"
)

func testRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestNewDeckHas52UniqueCards(t *testing.T) {
	d := New(testRNG(42))

	if d.Remaining() != 52 {
		t.Errorf("Expected 52 cards, got %d", d.Remaining())
	}

	seen := make(map[Card]bool)
	for {
		card, ok := d.Deal()
		if !ok {
			break
		}
		if seen[card] {
			t.Errorf("Duplicate card dealt: %s", card)
		}
		seen[card] = true
	}
	if len(seen) != 52 {
		t.Errorf("Expected 52 unique cards, got %d", len(seen))
	}
}

func TestDeckDealDepletes(t *testing.T) {
	d := New(testRNG(42))

	for i := 0; i < 52; i++ {
		if _, ok := d.Deal(); !ok {
			t.Errorf("Deal failed at card %d", i+1)
		}
	}

	if d.Remaining() != 0 {
		t.Errorf("Expected empty deck, got %d remaining", d.Remaining())
	}
	if _, ok := d.Deal(); ok {
		t.Error("Deal should fail on empty deck")
	}
}

func TestDeckDealNClampsToRemaining(t *testing.T) {
	d := New(testRNG(42))
	d.DealN(50)

	cards := d.DealN(5)
	if len(cards) != 2 {
		t.Errorf("Expected 2 cards from depleted deck, got %d", len(cards))
	}
}

func TestDeckSameSeedSameOrder(t *testing.T) {
	d1 := New(testRNG(7))
	d2 := New(testRNG(7))

	for i := 0; i < 52; i++ {
		c1, _ := d1.Deal()
		c2, _ := d2.Deal()
		if c1 != c2 {
			t.Fatalf("Card %d differs: %s vs %s", i, c1, c2)
		}
	}
}

func TestDeckDifferentSeedsDiffer(t *testing.T) {
	d1 := New(testRNG(7))
	d2 := New(testRNG(8))

	same := true
	for i := 0; i < 10; i++ {
		c1, _ := d1.Deal()
		c2, _ := d2.Deal()
		if c1 != c2 {
			same = false
			break
		}
	}
	if same {
		t.Error("Different seeds produced the same first 10 cards")
	}
}

func TestNewOrderedPreservesOrder(t *testing.T) {
	want := []Card{
		NewCard(Ace, Spades),
		NewCard(King, Hearts),
		NewCard(Two, Clubs),
	}
	d := NewOrdered(want)

	for i, w := range want {
		got, ok := d.Deal()
		if !ok || got != w {
			t.Errorf("Card %d: got %s, want %s", i, got, w)
		}
	}
}

func TestCardString(t *testing.T) {
	tests := []struct {
		card Card
		want string
	}{
		{NewCard(Ace, Spades), "A♠"},
		{NewCard(Ten, Hearts), "T♥"},
		{NewCard(Two, Diamonds), "2♦"},
	}
	for _, tt := range tests {
		if got := tt.card.String(); got != tt.want {
			t.Errorf("String() = %s, want %s", got, tt.want)
		}
	}
}
