package object

import (
	"github.com/charmbracelet/log"

	"github.com/tomz197/mrmissile/internal/physics"
	"github.com/tomz197/mrmissile/internal/pool"
)

// bulletCellSize bounds the broad-phase grid. It must cover the largest
// interaction distance queried (graze radius, or projectile size + hitbox).
const bulletCellSize = 40.0

// spawnRequest is a projectile spawn deferred until the update pass ends.
type spawnRequest struct {
	x, y, vx, vy float64
	kind         Kind
}

// BulletField owns every live projectile.
type BulletField struct {
	pool     *pool.Pool[Projectile]
	pending  []spawnRequest
	updating bool
	grid     *physics.SpatialGrid
	indexed  bool
	logger   *log.Logger
}

// NewBulletField creates a field holding at most capacity projectiles.
func NewBulletField(capacity int, field Field, logger *log.Logger) (*BulletField, error) {
	p, err := pool.New[Projectile](capacity)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &BulletField{
		pool: p,
		grid: physics.NewSpatialGrid(
			-FieldMargin, -FieldMargin,
			field.Width+2*FieldMargin, field.Height+2*FieldMargin,
			bulletCellSize,
		),
		logger: logger,
	}, nil
}

// Spawn adds a projectile. Unknown kinds are rejected. While an update pass is
// running the request is buffered and applied after the pass, and nil is returned.
func (b *BulletField) Spawn(x, y, vx, vy float64, kind Kind) *Projectile {
	if !kind.Valid() {
		return nil
	}
	if b.updating {
		b.pending = append(b.pending, spawnRequest{x: x, y: y, vx: vx, vy: vy, kind: kind})
		return nil
	}
	b.indexed = false
	return b.pool.Spawn(func(p *Projectile) {
		p.reset(x, y, vx, vy, kind)
	})
}

// Update advances every projectile, removes finished ones, then applies the
// spawns requested during the pass. ctx.Spawner is replaced by the field itself.
func (b *BulletField) Update(ctx UpdateContext) {
	ctx.Spawner = b
	b.updating = true
	for _, p := range b.pool.Active() {
		remove, err := p.Update(ctx)
		if err != nil {
			b.logger.Warn("projectile update failed", "kind", p.Kind, "err", err)
		}
		if remove || err != nil {
			p.Active = false
		}
	}
	b.pool.Sweep(func(p *Projectile) bool { return p.Active })
	b.updating = false
	b.indexed = false

	for _, r := range b.pending {
		b.Spawn(r.x, r.y, r.vx, r.vy, r.kind)
	}
	clear(b.pending)
	b.pending = b.pending[:0]
}

// index rebuilds the broad-phase grid from the active projectiles.
func (b *BulletField) index() {
	if b.indexed {
		return
	}
	b.grid.Clear()
	for i, p := range b.pool.Active() {
		b.grid.Insert(p.X, p.Y, i)
	}
	b.indexed = true
}

// CheckCollision returns the oldest active projectile touching the hitbox
// circle at (x, y), or nil.
func (b *BulletField) CheckCollision(x, y, hitbox float64) *Projectile {
	active := b.pool.Active()
	if kindMaxSize+hitbox > b.grid.CellSize() {
		for _, p := range active {
			if p.Active && p.Collides(x, y, hitbox) {
				return p
			}
		}
		return nil
	}

	b.index()
	first := -1
	b.grid.QueryAround(x, y, func(i int) bool {
		p := active[i]
		if p.Active && (first < 0 || i < first) && p.Collides(x, y, hitbox) {
			first = i
		}
		return false
	})
	if first < 0 {
		return nil
	}
	return active[first]
}

// CheckGraze latches graze on every projectile near (x, y) and returns how
// many grazed for the first time.
func (b *BulletField) CheckGraze(x, y, grazeRadius float64) int {
	active := b.pool.Active()
	count := 0
	if grazeRadius > b.grid.CellSize() {
		for _, p := range active {
			if p.Active && p.TryGraze(x, y, grazeRadius) {
				count++
			}
		}
		return count
	}

	b.index()
	b.grid.QueryAround(x, y, func(i int) bool {
		if p := active[i]; p.Active && p.TryGraze(x, y, grazeRadius) {
			count++
		}
		return false
	})
	return count
}

// Remove deactivates a single projectile, e.g. one consumed by a dodge.
func (b *BulletField) Remove(p *Projectile) {
	if b.pool.Remove(p) {
		b.indexed = false
	}
}

// Clear removes every projectile, including pending spawns.
func (b *BulletField) Clear() {
	b.pool.Clear()
	b.pending = b.pending[:0]
	b.indexed = false
}

// Active returns the live projectiles, oldest first. Do not retain the slice.
func (b *BulletField) Active() []*Projectile {
	return b.pool.Active()
}

// Len returns the number of live projectiles.
func (b *BulletField) Len() int {
	return b.pool.Len()
}

// Draw renders every live projectile.
func (b *BulletField) Draw(ctx DrawContext) error {
	for _, p := range b.pool.Active() {
		if err := p.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}

// kindMaxSize is the largest projectile radius of any kind.
const kindMaxSize = 12.0
