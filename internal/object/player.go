package object

import (
	"math"

	"github.com/tomz197/mrmissile/internal/draw"
	"github.com/tomz197/mrmissile/internal/physics"
)

// Player tuning, per tick.
const (
	PlayerSize         = 20.0
	PlayerHitbox       = 5.0
	PlayerMaxSpeed     = 6.0
	PlayerAcceleration = 0.5
	PlayerFriction     = 0.85
	PlayerEdgeMargin   = 10.0
	PlayerEdgeBounce   = -0.3
	PlayerSquashEase   = 0.2
	TrailLength        = 10
	TrailMinSpeed      = 1.0
	FlickerTicks       = 15.0
	playerBlinkMillis  = 50.0
)

// TrailPoint is one recorded position; Alpha fades linearly with age.
type TrailPoint struct {
	X, Y  float64
	Alpha float64
}

// Player is the missile the user steers.
type Player struct {
	X, Y            float64      // Position
	VX, VY          float64      // Velocity per tick
	Rotation        float64      // Heading of travel
	SquashX         float64      // Visual scale across the body
	SquashY         float64      // Visual scale along the body
	HitboxRadius    float64
	SpeedMultiplier float64      // Upgrade multiplier on max speed
	Invincible      bool
	InvincibleTimer float64      // Ticks remaining
	FlickerTimer    float64      // Ticks remaining
	Trail           []TrailPoint // Most recent first

	lastSpeed float64
}

// NewPlayer creates a player at (x, y) with the given max-speed multiplier.
func NewPlayer(x, y, speedMultiplier float64) *Player {
	if speedMultiplier <= 0 {
		speedMultiplier = 1
	}
	return &Player{
		X:               x,
		Y:               y,
		Rotation:        -physics.HalfPi, // Start pointing up
		SquashX:         1,
		SquashY:         1,
		HitboxRadius:    PlayerHitbox,
		SpeedMultiplier: speedMultiplier,
		Trail:           make([]TrailPoint, 0, TrailLength),
	}
}

// MaxSpeed returns the speed cap after the upgrade multiplier.
func (p *Player) MaxSpeed() float64 {
	return PlayerMaxSpeed * p.SpeedMultiplier
}

// Speed returns the speed measured before this tick's clamp.
func (p *Player) Speed() float64 {
	return p.lastSpeed
}

// Update applies input acceleration, friction, the speed cap, edge bounce,
// the squash/stretch target and the trail.
func (p *Player) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.DT

	if p.FlickerTimer > 0 {
		p.FlickerTimer -= dt
	}
	if p.InvincibleTimer > 0 {
		p.InvincibleTimer -= dt
		if p.InvincibleTimer <= 0 {
			p.Invincible = false
			p.InvincibleTimer = 0
		}
	}

	prevVX, prevVY := p.VX, p.VY

	var ax, ay float64
	in := ctx.Input
	if in.Up {
		ay -= PlayerAcceleration
	}
	if in.Down {
		ay += PlayerAcceleration
	}
	if in.Left {
		ax -= PlayerAcceleration
	}
	if in.Right {
		ax += PlayerAcceleration
	}
	if ax != 0 && ay != 0 {
		ax *= physics.InvSqrt2
		ay *= physics.InvSqrt2
	}

	p.VX += ax * dt
	p.VY += ay * dt
	if ax == 0 {
		p.VX = physics.Damp(p.VX, PlayerFriction, dt)
	}
	if ay == 0 {
		p.VY = physics.Damp(p.VY, PlayerFriction, dt)
	}

	maxSpeed := p.MaxSpeed()
	speed := physics.Magnitude(p.VX, p.VY)
	if speed > maxSpeed {
		ratio := maxSpeed / speed
		p.VX *= ratio
		p.VY *= ratio
	}
	p.lastSpeed = speed

	p.updateSquash(speed/maxSpeed, prevVX, prevVY, dt)

	p.X += p.VX * dt
	p.Y += p.VY * dt
	if p.VX != 0 || p.VY != 0 {
		p.Rotation = math.Atan2(p.VY, p.VX)
	}

	p.clampToField(ctx.Field)

	if speed > TrailMinSpeed {
		p.recordTrail()
	}

	if !physics.Finite(p.X, p.Y) {
		return false, ErrNonFinite
	}
	return false, nil
}

// updateSquash eases the visual scale toward a target derived from speed,
// snapping to a squash on any axis reversal.
func (p *Player) updateSquash(speedRatio, prevVX, prevVY, dt float64) {
	targetX := 1 - speedRatio*0.15
	targetY := 1 + speedRatio*0.2

	if (p.VX > 0 && prevVX < 0) || (p.VX < 0 && prevVX > 0) {
		targetX, targetY = 1.2, 0.8
	}
	if (p.VY > 0 && prevVY < 0) || (p.VY < 0 && prevVY > 0) {
		targetX, targetY = 0.8, 1.2
	}

	p.SquashX = physics.Ease(p.SquashX, targetX, PlayerSquashEase, dt)
	p.SquashY = physics.Ease(p.SquashY, targetY, PlayerSquashEase, dt)
}

// clampToField keeps the player inside the field with a small bounce-back.
func (p *Player) clampToField(f Field) {
	if p.X < PlayerEdgeMargin {
		p.X = PlayerEdgeMargin
		p.VX *= PlayerEdgeBounce
	}
	if p.X > f.Width-PlayerEdgeMargin {
		p.X = f.Width - PlayerEdgeMargin
		p.VX *= PlayerEdgeBounce
	}
	if p.Y < PlayerEdgeMargin {
		p.Y = PlayerEdgeMargin
		p.VY *= PlayerEdgeBounce
	}
	if p.Y > f.Height-PlayerEdgeMargin {
		p.Y = f.Height - PlayerEdgeMargin
		p.VY *= PlayerEdgeBounce
	}
}

// recordTrail pushes the current position to the front of the trail.
func (p *Player) recordTrail() {
	if len(p.Trail) < TrailLength {
		p.Trail = append(p.Trail, TrailPoint{})
	}
	copy(p.Trail[1:], p.Trail[:len(p.Trail)-1])
	p.Trail[0] = TrailPoint{X: p.X, Y: p.Y}
	for i := range p.Trail {
		p.Trail[i].Alpha = 1 - float64(i)/TrailLength
	}
}

// SetInvincible grants invincibility for duration ticks.
func (p *Player) SetInvincible(duration float64) {
	p.Invincible = true
	p.InvincibleTimer = duration
}

// TriggerFlicker starts the short dodge flicker.
func (p *Player) TriggerFlicker() {
	p.FlickerTimer = FlickerTicks
}

// Reset moves the player to (x, y) at rest and clears trail, invincibility and flicker.
func (p *Player) Reset(x, y float64) {
	p.X = x
	p.Y = y
	p.VX = 0
	p.VY = 0
	p.lastSpeed = 0
	p.Trail = p.Trail[:0]
	p.Invincible = false
	p.InvincibleTimer = 0
	p.FlickerTimer = 0
}

// Draw renders the trail and the missile body. While invincible or flickering
// the body alternates between full and dim color.
func (p *Player) Draw(ctx DrawContext) error {
	c := ctx.Canvas
	for i := len(p.Trail) - 1; i >= 0; i-- {
		t := p.Trail[i]
		col := draw.Steel
		if t.Alpha < 0.5 {
			col = draw.Gray
		}
		c.FillCircle(t.X+ctx.OffsetX, t.Y+ctx.OffsetY, PlayerSize*0.25*t.Alpha, col)
	}

	body := draw.White
	if (p.FlickerTimer > 0 || p.Invincible) && Blink(ctx.Time, playerBlinkMillis) {
		body = draw.DarkGray
	}

	pts := c.BorrowPoints(len(draw.Missile))
	draw.Transform(pts, draw.Missile,
		p.X+ctx.OffsetX, p.Y+ctx.OffsetY, p.Rotation,
		PlayerSize*p.SquashY, PlayerSize*p.SquashX)
	c.DrawPolygon(pts, body, true)
	c.FillCircle(p.X+ctx.OffsetX, p.Y+ctx.OffsetY, p.HitboxRadius*0.6, draw.Primary)
	return nil
}
