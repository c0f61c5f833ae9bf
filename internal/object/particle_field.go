package object

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/tomz197/mrmissile/internal/draw"
	"github.com/tomz197/mrmissile/internal/physics"
	"github.com/tomz197/mrmissile/internal/pool"
)

// ParticleField owns every live particle.
type ParticleField struct {
	pool   *pool.Pool[Particle]
	rng    physics.Rand
	logger *log.Logger
}

// NewParticleField creates a field holding at most capacity particles.
func NewParticleField(capacity int, rng physics.Rand, logger *log.Logger) (*ParticleField, error) {
	p, err := pool.New[Particle](capacity)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &ParticleField{pool: p, rng: rng, logger: logger}, nil
}

// Spawn adds a particle. Unknown kinds are rejected with a nil result.
func (f *ParticleField) Spawn(x, y, vx, vy float64, col draw.Color, lifetime, size float64, kind ParticleKind) *Particle {
	if !kind.Valid() {
		return nil
	}
	return f.pool.Spawn(func(p *Particle) {
		p.reset(x, y, vx, vy, col, lifetime, size, kind)
	})
}

// Explosion bursts count sparks outward plus a ring.
func (f *ParticleField) Explosion(x, y float64, col draw.Color, count int) {
	for i := 0; i < count; i++ {
		angle := physics.RandomRange(f.rng, 0, physics.TwoPi)
		speed := physics.RandomRange(f.rng, 2, 6)
		size := physics.RandomRange(f.rng, 3, 8)
		life := physics.RandomRange(f.rng, 20, 40)
		f.Spawn(x, y, math.Cos(angle)*speed, math.Sin(angle)*speed, col, life, size, ParticleSpark)
	}
	f.Spawn(x, y, 0, 0, col, 30, 10, ParticleRing)
}

// Trail drops a slowly drifting droplet behind a moving entity.
func (f *ParticleField) Trail(x, y float64, col draw.Color) {
	vx := physics.RandomRange(f.rng, -0.5, 0.5)
	vy := physics.RandomRange(f.rng, -0.5, 0.5)
	f.Spawn(x, y, vx, vy, col, 15, 6, ParticleTrail)
}

// Smoke puffs a drifting cloud, used while the boss is dying.
func (f *ParticleField) Smoke(x, y float64) {
	vx := physics.RandomRange(f.rng, -0.3, 0.3)
	vy := physics.RandomRange(f.rng, -1, -0.3)
	f.Spawn(x, y, vx, vy, draw.DarkGray, 45, 8, ParticleSmoke)
}

// Dodge flashes a growing ring and a few sparks where a hit was dodged.
func (f *ParticleField) Dodge(x, y float64) {
	f.Spawn(x, y, 0, 0, draw.Green, 30, 20, ParticleDodge)
	for i := 0; i < 5; i++ {
		angle := physics.RandomRange(f.rng, 0, physics.TwoPi)
		speed := physics.RandomRange(f.rng, 1, 3)
		f.Spawn(x, y, math.Cos(angle)*speed, math.Sin(angle)*speed, draw.Green, 20, 4, ParticleSpark)
	}
}

// PlayerDeath is a large red explosion.
func (f *ParticleField) PlayerDeath(x, y float64) {
	f.Explosion(x, y, draw.Red, 20)
	f.Spawn(x, y, 0, 0, draw.Red, 40, 30, ParticleRing)
}

// BossDamage is a gold explosion with a wide ring.
func (f *ParticleField) BossDamage(x, y float64) {
	f.Explosion(x, y, draw.Gold, 15)
	f.Spawn(x, y, 0, 0, draw.Gold, 30, 40, ParticleRing)
}

// Update advances every particle and removes expired ones.
func (f *ParticleField) Update(ctx UpdateContext) {
	for _, p := range f.pool.Active() {
		remove, err := p.Update(ctx)
		if err != nil {
			f.logger.Warn("particle update failed", "kind", p.Kind, "err", err)
		}
		if remove || err != nil {
			p.Active = false
		}
	}
	f.pool.Sweep(func(p *Particle) bool { return p.Active })
}

// Clear removes every particle.
func (f *ParticleField) Clear() {
	f.pool.Clear()
}

// Active returns the live particles, oldest first. Do not retain the slice.
func (f *ParticleField) Active() []*Particle {
	return f.pool.Active()
}

// Len returns the number of live particles.
func (f *ParticleField) Len() int {
	return f.pool.Len()
}

// Draw renders every live particle.
func (f *ParticleField) Draw(ctx DrawContext) error {
	for _, p := range f.pool.Active() {
		if err := p.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}
