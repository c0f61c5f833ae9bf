package object

import (
	"math"

	"github.com/tomz197/mrmissile/internal/draw"
	"github.com/tomz197/mrmissile/internal/physics"
)

// ParticleKind selects how a particle moves and how it is drawn over its life.
type ParticleKind uint8

const (
	ParticleSpark ParticleKind = iota
	ParticleTrail
	ParticleExplosion
	ParticleSmoke
	ParticleDodge
	ParticleRing
	particleKindCount
)

// Valid reports whether k is one of the defined particle kinds.
func (k ParticleKind) Valid() bool {
	return k < particleKindCount
}

// Particle physics, per tick.
const (
	ParticleGravity = 0.2
	ParticleDamping = 0.98
)

// Particle is a short-lived visual effect. It never affects gameplay.
type Particle struct {
	X, Y        float64 // Position
	VX, VY      float64 // Velocity per tick
	Color       draw.Color
	Lifetime    float64 // Ticks remaining
	MaxLifetime float64 // Initial lifetime (for fade calculation)
	Size        float64 // Base radius
	Kind        ParticleKind
	Progress    float64 // 0 at spawn, 1 at expiry
	Active      bool
}

// reset fully reinitializes a pooled particle.
func (p *Particle) reset(x, y, vx, vy float64, col draw.Color, lifetime, size float64, kind ParticleKind) {
	*p = Particle{
		X:           x,
		Y:           y,
		VX:          vx,
		VY:          vy,
		Color:       col,
		Lifetime:    lifetime,
		MaxLifetime: lifetime,
		Size:        size,
		Kind:        kind,
		Active:      true,
	}
}

// Update moves the particle and checks lifetime.
func (p *Particle) Update(ctx UpdateContext) (bool, error) {
	if !p.Kind.Valid() {
		return true, ErrUnknownKind
	}
	dt := ctx.DT

	p.X += p.VX * dt
	p.Y += p.VY * dt

	if p.Kind == ParticleSpark || p.Kind == ParticleExplosion {
		p.VY += ParticleGravity * dt
	}

	p.Lifetime -= dt
	p.VX = physics.Damp(p.VX, ParticleDamping, dt)
	p.VY = physics.Damp(p.VY, ParticleDamping, dt)

	if p.MaxLifetime > 0 {
		p.Progress = 1 - p.Lifetime/p.MaxLifetime
	}

	if !physics.Finite(p.X, p.Y) {
		return true, ErrNonFinite
	}
	return p.Lifetime <= 0, nil
}

// Alpha returns the remaining-life fraction in [0, 1].
func (p *Particle) Alpha() float64 {
	if p.MaxLifetime <= 0 {
		return 0
	}
	return physics.Clamp(p.Lifetime/p.MaxLifetime, 0, 1)
}

// Radius returns the drawn radius for the current progress.
func (p *Particle) Radius() float64 {
	switch p.Kind {
	case ParticleTrail:
		return p.Size * (1 - p.Progress*0.5)
	case ParticleExplosion:
		return p.Size * (1 + p.Progress*2)
	case ParticleSmoke:
		return p.Size * (1.5 + p.Progress*2.5)
	case ParticleDodge:
		return p.Size * (1 + p.Progress)
	case ParticleRing:
		return p.Size * (1 + p.Progress*3)
	default:
		return p.Size * p.Alpha()
	}
}

// Draw renders the particle. Nearly expired particles are skipped.
func (p *Particle) Draw(ctx DrawContext) error {
	alpha := p.Alpha()
	if alpha < 0.15 {
		return nil
	}
	col := p.Color
	if alpha < 0.4 {
		col = draw.Gray
	}

	x := p.X + ctx.OffsetX
	y := p.Y + ctx.OffsetY
	r := math.Max(p.Radius(), 0)
	switch p.Kind {
	case ParticleRing, ParticleDodge:
		ctx.Canvas.DrawCircle(x, y, r, col)
	case ParticleSmoke:
		ctx.Canvas.FillCircle(x, y, r, draw.DarkGray)
	default:
		ctx.Canvas.FillCircle(x, y, r, col)
	}
	return nil
}
