package sample

import (
	"testing"
	"time"
)

func TestLadderSelect(t *testing.T) {
	tests := []struct {
		rowCount int
		want     string
	}{
		{0, "raw"},
		{100, "raw"},
		{2_000, "raw"},
		{2_001, "detail"},
		{10_000, "detail"},
		{20_001, "overview"},
		{1_000_000, "density"},
	}
	for _, tt := range tests {
		level := DefaultLadder.Select(tt.rowCount)
		if level == nil {
			t.Fatalf("Select(%d) = nil", tt.rowCount)
		}
		if level.Name != tt.want {
			t.Errorf("Select(%d) = %q, want %q", tt.rowCount, level.Name, tt.want)
		}
	}
}

func TestLadderSelectEmpty(t *testing.T) {
	if level := (Ladder{}).Select(100); level != nil {
		t.Errorf("empty ladder Select = %+v, want nil", level)
	}
}

func TestLadderSelectUnsortedInput(t *testing.T) {
	ladder := Ladder{
		{Name: "big", Threshold: 1000, MaxPoints: 10},
		{Name: "small", Threshold: 10, MaxPoints: 100},
	}
	if level := ladder.Select(500); level == nil || level.Name != "small" {
		t.Errorf("Select(500) = %+v, want small", level)
	}
}

func TestAdaptiveShrinksWhenSlow(t *testing.T) {
	a := NewAdaptive(1000, 16*time.Millisecond)
	a.Observe(50 * time.Millisecond)
	if a.Budget() >= 1000 {
		t.Errorf("budget = %d, want shrunk below 1000", a.Budget())
	}
}

func TestAdaptiveGrowsWhenFast(t *testing.T) {
	a := NewAdaptive(1000, 16*time.Millisecond)
	a.Observe(2 * time.Millisecond)
	if a.Budget() <= 1000 {
		t.Errorf("budget = %d, want grown above 1000", a.Budget())
	}
}

func TestAdaptiveStableInBand(t *testing.T) {
	// Latency between half budget and full budget leaves the budget alone.
	a := NewAdaptive(1000, 16*time.Millisecond)
	a.Observe(12 * time.Millisecond)
	if a.Budget() != 1000 {
		t.Errorf("budget = %d, want unchanged 1000", a.Budget())
	}
}

func TestAdaptiveClamps(t *testing.T) {
	a := NewAdaptive(1000, 16*time.Millisecond)
	for i := 0; i < 100; i++ {
		a.Observe(time.Second)
	}
	if a.Budget() != a.Min {
		t.Errorf("budget = %d, want clamped to min %d", a.Budget(), a.Min)
	}
	for i := 0; i < 100; i++ {
		a.Observe(time.Microsecond)
	}
	if a.Budget() != a.Max {
		t.Errorf("budget = %d, want clamped to max %d", a.Budget(), a.Max)
	}
}
