package physics

import (
	"math"
	"sort"
	"testing"
)

const eps = 1e-9

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{5 * TwoPi, 0},
	}
	for _, tt := range tests {
		if got := WrapAngle(tt.in); math.Abs(got-tt.want) > eps {
			t.Errorf("WrapAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTurnTowardTakesShortestPath(t *testing.T) {
	// From just below +Pi to just above -Pi the short way crosses Pi.
	got := TurnToward(math.Pi-0.01, -math.Pi+0.01, 0.005)
	if want := math.Pi - 0.005; math.Abs(got-want) > eps {
		t.Fatalf("TurnToward = %v, want %v", got, want)
	}

	// Within one step it snaps onto the target.
	got = TurnToward(0, 0.01, 0.02)
	if math.Abs(got-0.01) > eps {
		t.Fatalf("TurnToward small gap = %v, want 0.01", got)
	}
}

func TestClampLerpEase(t *testing.T) {
	if got := Clamp(5, 0, 3); got != 3 {
		t.Errorf("Clamp high = %v", got)
	}
	if got := Clamp(-1, 0, 3); got != 0 {
		t.Errorf("Clamp low = %v", got)
	}
	if got := Lerp(10, 20, 0.25); got != 12.5 {
		t.Errorf("Lerp = %v", got)
	}
	// Two half-ticks of easing equal one full tick.
	one := Ease(0, 100, 0.1, 1)
	two := Ease(Ease(0, 100, 0.1, 0.5), 100, 0.1, 0.5)
	if math.Abs(one-two) > 1e-9 {
		t.Errorf("Ease not dt-consistent: %v vs %v", one, two)
	}
	if math.Abs(one-10) > 1e-9 {
		t.Errorf("Ease one tick = %v, want 10", one)
	}
}

type seq struct {
	vals []float64
	i    int
}

func (s *seq) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func TestRandomHelpers(t *testing.T) {
	r := &seq{vals: []float64{0, 0.5, 0.999999}}
	if got := RandomRange(r, 2, 6); got != 2 {
		t.Errorf("RandomRange(0) = %v", got)
	}
	if got := RandomRange(r, 2, 6); got != 4 {
		t.Errorf("RandomRange(0.5) = %v", got)
	}
	if got := RandomIndex(r, 15); got != 14 {
		t.Errorf("RandomIndex(~1) = %d, want 14", got)
	}
	if !Chance(&seq{vals: []float64{0.99}}, 1.0) {
		t.Errorf("Chance(1.0) must always succeed")
	}
	if Chance(&seq{vals: []float64{0}}, 0) {
		t.Errorf("Chance(0) must never succeed")
	}
}

func TestSpatialGridQueryAround(t *testing.T) {
	g := NewSpatialGrid(-50, -50, 300, 300, 40)
	g.Insert(10, 10, 0)
	g.Insert(45, 10, 1)
	g.Insert(200, 200, 2)
	g.Insert(-49, -49, 3)
	g.Insert(-500, -500, 4) // clamped to the corner cell

	var found []int
	g.QueryAround(12, 12, func(i int) bool {
		found = append(found, i)
		return false
	})
	sort.Ints(found)
	want := []int{0, 1, 3, 4}
	if len(found) != len(want) {
		t.Fatalf("QueryAround found %v, want %v", found, want)
	}
	for i := range want {
		if found[i] != want[i] {
			t.Fatalf("QueryAround found %v, want %v", found, want)
		}
	}

	g.Clear()
	g.QueryAround(12, 12, func(i int) bool {
		t.Fatalf("expected empty grid, got item %d", i)
		return true
	})
}
