package object

import (
	"math"

	"github.com/tomz197/mrmissile/internal/draw"
	"github.com/tomz197/mrmissile/internal/physics"
)

// Projectile motion constants, per tick at the nominal rate.
const (
	FieldMargin       = 50.0  // Distance past the field edge before removal
	HomingTurnRate    = 0.02  // Max heading change per tick
	HomingLifetime    = 480.0 // Ticks before a homing projectile expires
	SpiralPhaseRate   = 0.1   // Spiral phase advance per tick
	OscillationAmp    = 2.0   // Lateral offset amplitude for spiral and wave
	WaveFrequency     = 0.1   // Wave oscillation per tick of age
	AccelerationRate  = 1.002 // Speed factor per tick for accelerating projectiles
	MaxBounces        = 1     // Shared across both axes
	SplitAge          = 60.0  // Age at which a splitting projectile divides
	SplitAngle        = 0.5   // Fragment heading offset in radians
	SplitSpeedFactor  = 0.8   // Fragment speed relative to the parent
	BombDrag          = 0.98  // Velocity factor per tick for bombs
	BombFuse          = 120.0 // Ticks until a bomb detonates
	BombFragments     = 8
	BombFragmentSpeed = 4.0
	GrazeBuffer       = 5.0 // Graze only counts beyond size + buffer
)

// Projectile is a boss bullet. Instances live in a BulletField pool.
type Projectile struct {
	X, Y    float64 // Position
	VX, VY  float64 // Velocity per tick
	Kind    Kind
	Size    float64 // Collision radius
	Age     float64 // Ticks since spawn
	Phase   float64 // Spiral phase angle
	Bounces int     // Reflections so far, both axes combined
	Split   bool    // Splitting projectile already divided
	Fuse    float64 // Bomb countdown in ticks
	Grazed  bool    // Graze already awarded
	Active  bool
}

// reset fully reinitializes a pooled projectile.
func (p *Projectile) reset(x, y, vx, vy float64, kind Kind) {
	*p = Projectile{
		X:      x,
		Y:      y,
		VX:     vx,
		VY:     vy,
		Kind:   kind,
		Size:   kind.Size(),
		Fuse:   BombFuse,
		Active: true,
	}
}

// Speed returns the velocity magnitude.
func (p *Projectile) Speed() float64 {
	return physics.Magnitude(p.VX, p.VY)
}

// Heading returns the direction of travel.
func (p *Projectile) Heading() float64 {
	return math.Atan2(p.VY, p.VX)
}

// Update advances the projectile by its kind's motion rule.
// Returns true when the projectile should be removed.
func (p *Projectile) Update(ctx UpdateContext) (bool, error) {
	if !p.Kind.Valid() {
		return true, ErrUnknownKind
	}
	dt := ctx.DT
	p.Age += dt

	switch p.Kind {
	case KindHoming:
		if p.Age < HomingLifetime {
			speed := p.Speed()
			target := physics.AngleTo(p.X, p.Y, ctx.TargetX, ctx.TargetY)
			heading := physics.TurnToward(p.Heading(), target, HomingTurnRate*dt)
			p.VX = math.Cos(heading) * speed
			p.VY = math.Sin(heading) * speed
		}

	case KindSpiral:
		p.Phase += SpiralPhaseRate * dt
		p.offsetLateral(math.Sin(p.Phase) * OscillationAmp * dt)

	case KindWave:
		p.offsetLateral(math.Sin(p.Age*WaveFrequency) * OscillationAmp * dt)

	case KindAccelerating:
		p.VX = physics.Damp(p.VX, AccelerationRate, dt)
		p.VY = physics.Damp(p.VY, AccelerationRate, dt)

	case KindBouncing:
		if p.Bounces < MaxBounces {
			if p.X < 0 || p.X > ctx.Field.Width {
				p.VX = -p.VX
				p.Bounces++
			}
			if p.Y < 0 || p.Y > ctx.Field.Height {
				p.VY = -p.VY
				p.Bounces++
			}
		}

	case KindSplitting:
		if !p.Split && p.Age > SplitAge {
			p.Split = true
			p.split(ctx.Spawner)
		}

	case KindBomb:
		p.VX = physics.Damp(p.VX, BombDrag, dt)
		p.VY = physics.Damp(p.VY, BombDrag, dt)
		p.Fuse -= dt
		if p.Fuse <= 0 {
			p.detonate(ctx.Spawner)
			return true, nil
		}
	}

	p.X += p.VX * dt
	p.Y += p.VY * dt

	if !physics.Finite(p.X, p.Y) {
		return true, ErrNonFinite
	}
	if ctx.Field.Outside(p.X, p.Y, FieldMargin) {
		return true, nil
	}
	if p.Kind == KindHoming && p.Age >= HomingLifetime {
		return true, nil
	}
	return false, nil
}

// offsetLateral displaces the projectile perpendicular to its heading.
func (p *Projectile) offsetLateral(offset float64) {
	perp := p.Heading() + physics.HalfPi
	p.X += math.Cos(perp) * offset
	p.Y += math.Sin(perp) * offset
}

// split emits two fragments fanned around the current heading.
func (p *Projectile) split(s Spawner) {
	if s == nil {
		return
	}
	speed := p.Speed() * SplitSpeedFactor
	heading := p.Heading()
	for _, side := range [2]float64{-1, 1} {
		angle := heading + side*SplitAngle
		s.Spawn(p.X, p.Y, math.Cos(angle)*speed, math.Sin(angle)*speed, KindFragment)
	}
}

// detonate emits an evenly spaced ring of fragments.
func (p *Projectile) detonate(s Spawner) {
	if s == nil {
		return
	}
	for i := 0; i < BombFragments; i++ {
		angle := float64(i) / BombFragments * physics.TwoPi
		s.Spawn(p.X, p.Y, math.Cos(angle)*BombFragmentSpeed, math.Sin(angle)*BombFragmentSpeed, KindFragment)
	}
}

// Collides reports whether the projectile touches a circle of radius hitbox at (x, y).
func (p *Projectile) Collides(x, y, hitbox float64) bool {
	r := p.Size + hitbox
	return physics.DistanceSquared(p.X, p.Y, x, y) <= r*r
}

// TryGraze latches and reports a near miss: within grazeRadius but clear of
// the projectile's size plus GrazeBuffer. Each projectile grazes at most once.
func (p *Projectile) TryGraze(x, y, grazeRadius float64) bool {
	if p.Grazed {
		return false
	}
	d := physics.Distance(p.X, p.Y, x, y)
	if d < grazeRadius && d > p.Size+GrazeBuffer {
		p.Grazed = true
		return true
	}
	return false
}

// Draw renders the projectile as a filled circle.
func (p *Projectile) Draw(ctx DrawContext) error {
	col := p.Kind.Color()
	if p.Kind == KindBomb && p.Fuse < 30 && Blink(ctx.Time, 60) {
		col = draw.White
	}
	ctx.Canvas.FillCircle(p.X+ctx.OffsetX, p.Y+ctx.OffsetY, p.Size, col)
	return nil
}
