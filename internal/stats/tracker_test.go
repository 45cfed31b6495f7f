package stats

import (
	"testing"
)

func TestVPIPCountsOncePerHand(t *testing.T) {
	tr := NewTracker()
	tr.BeginHand([]string{"alice"})

	tr.RecordCall("alice", true)
	tr.RecordCall("alice", true) // second preflop call, same hand

	s := tr.StatsFor("alice")
	if s.VPIPHands != 1 {
		t.Errorf("VPIPHands = %d, want 1", s.VPIPHands)
	}
	if s.Calls != 2 {
		t.Errorf("Calls = %d, want 2", s.Calls)
	}
	if s.VPIP() != 1.0 {
		t.Errorf("VPIP = %.2f, want 1.0", s.VPIP())
	}
}

func TestVPIPLatchClearsBetweenHands(t *testing.T) {
	tr := NewTracker()

	tr.BeginHand([]string{"alice"})
	tr.RecordCall("alice", true)
	tr.BeginHand([]string{"alice"})
	tr.RecordRaise("alice", 100, 75, true)

	s := tr.StatsFor("alice")
	if s.HandsDealt != 2 {
		t.Errorf("HandsDealt = %d, want 2", s.HandsDealt)
	}
	if s.VPIPHands != 2 {
		t.Errorf("VPIPHands = %d, want 2", s.VPIPHands)
	}
	if s.PFRHands != 1 {
		t.Errorf("PFRHands = %d, want 1", s.PFRHands)
	}
}

func TestPostflopCallsDoNotCountVPIP(t *testing.T) {
	tr := NewTracker()
	tr.BeginHand([]string{"bob"})

	tr.RecordCall("bob", false)

	if s := tr.StatsFor("bob"); s.VPIPHands != 0 {
		t.Errorf("VPIPHands = %d, want 0 for postflop call", s.VPIPHands)
	}
}

func TestAggressionFactorNeverDividesByZero(t *testing.T) {
	tr := NewTracker()
	tr.BeginHand([]string{"carol"})

	tr.RecordBet("carol", 50, 100)
	tr.RecordRaise("carol", 150, 200, false)

	s := tr.StatsFor("carol")
	if s.Calls != 0 {
		t.Fatalf("Calls = %d, want 0", s.Calls)
	}
	if s.AggressionFactor != 2.0 {
		t.Errorf("AggressionFactor = %.2f, want 2.0 (2 aggressive actions over max(1, calls))", s.AggressionFactor)
	}
}

func TestFoldToCBet(t *testing.T) {
	tr := NewTracker()
	tr.BeginHand([]string{"dave"})

	tr.RecordCBetFaced("dave", true)
	tr.RecordCBetFaced("dave", true)
	tr.RecordCBetFaced("dave", false)
	tr.RecordCBetFaced("dave", false)

	s := tr.StatsFor("dave")
	if s.CBetsFaced != 4 {
		t.Errorf("CBetsFaced = %d, want 4", s.CBetsFaced)
	}
	if s.FoldToCBet() != 0.5 {
		t.Errorf("FoldToCBet = %.2f, want 0.5", s.FoldToCBet())
	}
}

func TestAvgBetFractionRunningMean(t *testing.T) {
	tr := NewTracker()
	tr.BeginHand([]string{"erin"})

	tr.RecordBet("erin", 50, 100)  // 0.5 pot
	tr.RecordBet("erin", 100, 100) // full pot

	s := tr.StatsFor("erin")
	if s.AvgBetFraction != 0.75 {
		t.Errorf("AvgBetFraction = %.2f, want 0.75", s.AvgBetFraction)
	}
}

func TestStatsForUnknownPlayer(t *testing.T) {
	tr := NewTracker()
	s := tr.StatsFor("ghost")
	if s.HandsDealt != 0 || s.VPIP() != 0 || s.FoldToCBet() != 0 {
		t.Errorf("Unknown player should yield zero stats, got %+v", s)
	}
}

func TestResetDropsHistory(t *testing.T) {
	tr := NewTracker()
	tr.BeginHand([]string{"alice"})
	tr.RecordRaise("alice", 100, 75, true)

	tr.Reset()

	if s := tr.StatsFor("alice"); s.HandsDealt != 0 || s.Raises != 0 {
		t.Errorf("Stats survived reset: %+v", s)
	}
}
