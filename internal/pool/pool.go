// Package pool provides a fixed-capacity object pool with an explicit free list
// and oldest-first eviction when the active set is full.
package pool

import "errors"

// ErrInvalidCapacity is returned when a pool is created with a non-positive capacity.
var ErrInvalidCapacity = errors.New("pool: capacity must be positive")

// Pool owns every instance of T it has ever allocated. Instances are either
// active (in spawn order, oldest first) or on the free list.
//
// Instances are zeroed on Acquire and on Release, so a reused instance never
// carries state from its previous life and a released one holds no references.
type Pool[T any] struct {
	capacity  int
	active    []*T
	free      []*T
	allocated int
}

// New creates a pool that keeps at most capacity active instances.
func New[T any](capacity int) (*Pool[T], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &Pool[T]{
		capacity: capacity,
		active:   make([]*T, 0, capacity),
	}, nil
}

// Acquire returns a zeroed instance, recycled from the free list when possible.
// The instance is not tracked as active; use Spawn for that.
func (p *Pool[T]) Acquire() *T {
	if n := len(p.free); n > 0 {
		item := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		var zero T
		*item = zero
		return item
	}
	p.allocated++
	return new(T)
}

// Release zeroes the instance and returns it to the free list.
// The caller must not use it afterward.
func (p *Pool[T]) Release(item *T) {
	var zero T
	*item = zero
	p.free = append(p.free, item)
}

// Spawn activates a new instance initialized by init. When the active set is
// at capacity the oldest active instance is evicted first.
func (p *Pool[T]) Spawn(init func(*T)) *T {
	if len(p.active) >= p.capacity {
		oldest := p.active[0]
		copy(p.active, p.active[1:])
		p.active[len(p.active)-1] = nil
		p.active = p.active[:len(p.active)-1]
		p.Release(oldest)
	}

	item := p.Acquire()
	if init != nil {
		init(item)
	}
	p.active = append(p.active, item)
	return item
}

// Active returns the active instances, oldest first.
// The slice is owned by the pool and only valid until the next mutation.
func (p *Pool[T]) Active() []*T {
	return p.active
}

// Len returns the number of active instances.
func (p *Pool[T]) Len() int {
	return len(p.active)
}

// FreeLen returns the number of instances waiting on the free list.
func (p *Pool[T]) FreeLen() int {
	return len(p.free)
}

// Allocated returns how many distinct instances the pool has ever created.
func (p *Pool[T]) Allocated() int {
	return p.allocated
}

// Sweep releases every active instance for which keep returns false,
// preserving the order of the survivors.
func (p *Pool[T]) Sweep(keep func(*T) bool) {
	n := 0
	for _, item := range p.active {
		if keep(item) {
			p.active[n] = item
			n++
			continue
		}
		p.Release(item)
	}
	clear(p.active[n:])
	p.active = p.active[:n]
}

// Remove releases a single active instance. Returns false if it was not active.
func (p *Pool[T]) Remove(item *T) bool {
	for i, it := range p.active {
		if it == item {
			copy(p.active[i:], p.active[i+1:])
			p.active[len(p.active)-1] = nil
			p.active = p.active[:len(p.active)-1]
			p.Release(item)
			return true
		}
	}
	return false
}

// Clear releases every active instance.
func (p *Pool[T]) Clear() {
	for _, item := range p.active {
		p.Release(item)
	}
	clear(p.active)
	p.active = p.active[:0]
}
