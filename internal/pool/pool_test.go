package pool

import (
	"errors"
	"math/rand/v2"
	"testing"
)

type tagged struct {
	ID     int
	Active bool
	Ref    *int
}

func TestNewRejectsInvalidCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		if _, err := New[tagged](capacity); !errors.Is(err, ErrInvalidCapacity) {
			t.Errorf("New(%d) error = %v, want ErrInvalidCapacity", capacity, err)
		}
	}
}

func TestSpawnEvictsOldestFirst(t *testing.T) {
	const capacity = 4
	p, err := New[tagged](capacity)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	first := p.Spawn(func(x *tagged) { x.ID = 0; x.Active = true })
	for i := 1; i <= capacity; i++ {
		id := i
		p.Spawn(func(x *tagged) { x.ID = id; x.Active = true })
	}

	if p.Len() != capacity {
		t.Fatalf("Len = %d, want %d", p.Len(), capacity)
	}
	for i, item := range p.Active() {
		if item.ID != i+1 {
			t.Fatalf("active[%d].ID = %d, want %d (oldest must be evicted)", i, item.ID, i+1)
		}
	}
	// The evicted instance was recycled into the newest slot.
	if first != p.Active()[capacity-1] {
		t.Fatalf("evicted instance was not reused for the next spawn")
	}
}

func TestReusedInstanceIsReset(t *testing.T) {
	p, _ := New[tagged](2)
	v := 7
	item := p.Spawn(func(x *tagged) { x.ID = 1; x.Active = true; x.Ref = &v })
	p.Remove(item)
	if item.Ref != nil || item.Active || item.ID != 0 {
		t.Fatalf("released instance keeps state: %+v", *item)
	}

	again := p.Spawn(nil)
	if again != item {
		t.Fatalf("expected free-list reuse")
	}
	if again.Active || again.Ref != nil {
		t.Fatalf("reacquired instance not reset: %+v", *again)
	}
}

func TestPoolInvariantUnderChurn(t *testing.T) {
	const capacity = 16
	p, _ := New[tagged](capacity)
	rng := rand.New(rand.NewPCG(1, 2))

	for step := 0; step < 5000; step++ {
		switch rng.IntN(3) {
		case 0, 1:
			p.Spawn(func(x *tagged) { x.ID = step; x.Active = true })
		case 2:
			if p.Len() > 0 {
				p.Remove(p.Active()[rng.IntN(p.Len())])
			}
		}

		if p.Len() > capacity {
			t.Fatalf("step %d: active %d exceeds capacity %d", step, p.Len(), capacity)
		}
		if p.Len()+p.FreeLen() != p.Allocated() {
			t.Fatalf("step %d: active %d + free %d != allocated %d",
				step, p.Len(), p.FreeLen(), p.Allocated())
		}
		if p.Allocated() > capacity {
			t.Fatalf("step %d: allocated %d beyond capacity %d", step, p.Allocated(), capacity)
		}
	}
}

func TestSweepPreservesOrder(t *testing.T) {
	p, _ := New[tagged](8)
	for i := 0; i < 6; i++ {
		id := i
		p.Spawn(func(x *tagged) { x.ID = id; x.Active = id%2 == 0 })
	}
	p.Sweep(func(x *tagged) bool { return x.Active })

	want := []int{0, 2, 4}
	if p.Len() != len(want) {
		t.Fatalf("Len after sweep = %d, want %d", p.Len(), len(want))
	}
	for i, item := range p.Active() {
		if item.ID != want[i] {
			t.Errorf("active[%d].ID = %d, want %d", i, item.ID, want[i])
		}
	}
	if p.FreeLen() != 3 {
		t.Errorf("FreeLen = %d, want 3", p.FreeLen())
	}

	p.Clear()
	if p.Len() != 0 || p.FreeLen() != 6 {
		t.Errorf("after Clear: Len=%d FreeLen=%d", p.Len(), p.FreeLen())
	}
}
