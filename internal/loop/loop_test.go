package loop

import (
	"math"
	"testing"
	"time"
)

type fakeTime struct {
	t     time.Time
	slept time.Duration
}

func (f *fakeTime) now() time.Time { return f.t }

func (f *fakeTime) sleep(d time.Duration) {
	f.slept += d
	f.t = f.t.Add(d)
}

func TestTicks(t *testing.T) {
	tests := []struct {
		gap  time.Duration
		want float64
	}{
		{0, 0},
		{-time.Second, 0},
		{time.Second / 60, 1},
		{time.Second / 120, 0.5},
		{time.Second / 30, 2},
		{time.Second, 2},
	}
	for _, tt := range tests {
		if got := Ticks(tt.gap); math.Abs(got-tt.want) > 1e-6 {
			t.Errorf("Ticks(%v) = %v, want %v", tt.gap, got, tt.want)
		}
	}
}

func TestClockTickAndWait(t *testing.T) {
	ft := &fakeTime{t: time.Unix(0, 0)}
	c := newClock(ft.now, ft.sleep, 10*time.Millisecond)

	ft.t = ft.t.Add(time.Second / 60)
	if dt := c.Tick(); math.Abs(dt-1) > 1e-6 {
		t.Fatalf("dt = %v, want 1", dt)
	}

	ft.t = ft.t.Add(4 * time.Millisecond)
	c.Wait()
	if ft.slept != 6*time.Millisecond {
		t.Fatalf("slept %v, want 6ms", ft.slept)
	}

	// A slow frame does not sleep.
	c.Tick()
	ft.t = ft.t.Add(20 * time.Millisecond)
	c.Wait()
	if ft.slept != 6*time.Millisecond {
		t.Fatalf("slow frame slept, total %v", ft.slept)
	}
}

func TestClockReset(t *testing.T) {
	ft := &fakeTime{t: time.Unix(0, 0)}
	c := newClock(ft.now, ft.sleep, 10*time.Millisecond)
	ft.t = ft.t.Add(5 * time.Second)
	c.Reset()
	if dt := c.Tick(); dt != 0 {
		t.Fatalf("dt after reset = %v, want 0", dt)
	}
}
