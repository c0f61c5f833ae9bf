package object

import (
	"math"

	"github.com/tomz197/mrmissile/internal/draw"
	"github.com/tomz197/mrmissile/internal/physics"
)

// Boss tuning, per tick.
const (
	BossBaseSize              = 80.0
	BossMaxSpeed              = 2.5
	BossAcceleration          = 0.15
	BossFriction              = 0.92
	BossArrivalDistance       = 10.0
	BossRotationSpring        = 0.015
	BossRotationDamping       = 0.85
	BossRotationMinSpeed      = 0.5
	BossEntryEase             = 0.02
	BossEntrySnap             = 10.0
	BossRestHeight            = 0.2 // Resting altitude as a fraction of field height
	BossRoamHeight            = 0.4 // Lowest roaming target as a fraction of field height
	BossMoveMinTicks          = 60.0
	BossMoveMaxTicks          = 180.0
	BossMinShootInterval      = 45.0
	BossRecoveryMultiplier    = 0.4
	BossVulnerabilityDuration = 1200.0
	BossSpawnInvulnerability  = 180.0
	BossHitInvulnerability    = 90.0
	BossFlashTicks            = 30.0
	BossDeathDuration         = 180.0
	BossPatternChangeChance   = 0.1
	BossBladeSpeed            = 0.3
)

// BossState is the boss lifecycle.
type BossState uint8

const (
	BossEntering BossState = iota
	BossFighting
	BossDying
)

// Phase is the boss attack tempo while fighting.
type Phase uint8

const (
	PhaseAssault Phase = iota
	PhaseRecovery
)

// String returns the phase name shown in the HUD.
func (p Phase) String() string {
	if p == PhaseAssault {
		return "ASSAULT"
	}
	return "RECOVERY"
}

// BossBody selects the drawn silhouette.
type BossBody uint8

const (
	BodyPlane BossBody = iota
	BodyHelicopter
)

func (b BossBody) String() string {
	if b == BodyHelicopter {
		return "helicopter"
	}
	return "plane"
}

// BodyForLevel returns the silhouette used at level: planes on odd levels,
// helicopters on even ones.
func BodyForLevel(level int) BossBody {
	return BossBody((level + 1) % 2)
}

// BossOptions tune a boss beyond its level.
type BossOptions struct {
	AttackWindowBonus float64 // Extra ticks on every vulnerability window
}

// Boss is the level's single enemy: it roams the upper field, fires attack
// patterns in assault/recovery tempo, and can only be hurt while vulnerable.
type Boss struct {
	X, Y            float64 // Position
	VX, VY          float64 // Velocity per tick
	Rotation        float64 // Facing; 0 is up
	TargetRotation  float64
	AngularVelocity float64

	Level        int
	Mega         bool
	Body         BossBody
	Size         float64
	HitboxRadius float64
	Health       int
	MaxHealth    int

	State            BossState
	Phase            Phase
	PhaseTimer       float64
	AssaultDuration  float64
	RecoveryDuration float64
	AssaultMult      float64

	Vulnerable            bool
	VulnerabilityTimer    float64
	VulnerabilityDuration float64
	InvulnerabilityTimer  float64
	FlashTimer            float64

	Pattern       int // Index into the pattern table
	MaxPatterns   int // Patterns available at this level
	ShootTimer    float64
	ShootInterval float64

	DeathTimer    float64
	DeathScale    float64
	DeathRotation float64
	BladeRotation float64

	restY            float64
	targetX, targetY float64
	moveTimer        float64
}

// NewBoss creates the boss for level at (x, y). It starts entering from above
// and is invulnerable for a short grace period.
func NewBoss(x, y float64, level int, rng physics.Rand, opts BossOptions) *Boss {
	if level < 1 {
		level = 1
	}
	mega := level%3 == 0

	b := &Boss{
		X:                     x,
		Y:                     y,
		Rotation:              math.Pi / 2,
		TargetRotation:        math.Pi / 2,
		Level:                 level,
		Mega:                  mega,
		Body:                  BodyForLevel(level),
		State:                 BossEntering,
		Phase:                 PhaseAssault,
		AssaultDuration:       float64(300 + 8*level),
		RecoveryDuration:      math.Max(150, float64(210-4*level)),
		VulnerabilityDuration: BossVulnerabilityDuration + opts.AttackWindowBonus,
		InvulnerabilityTimer:  BossSpawnInvulnerability,
		MaxPatterns:           min(2+level, PatternCount),
		ShootInterval:         math.Max(BossMinShootInterval, float64(75-2*level)),
		DeathScale:            1,
		targetX:               x,
		targetY:               y,
	}

	if mega {
		b.Size = BossBaseSize * 1.5
		b.MaxHealth = 3
		b.AssaultMult = 1.95
	} else {
		b.Size = BossBaseSize * 0.95
		b.MaxHealth = 2
		b.AssaultMult = 1.8
	}
	b.HitboxRadius = b.Size * 0.4
	b.Health = b.MaxHealth
	b.Pattern = physics.RandomIndex(rng, b.MaxPatterns)
	return b
}

// Update advances the boss. Returns true once the death animation has completed.
// Once the boss is fighting, ctx.Rand must be set.
func (b *Boss) Update(ctx UpdateContext) (bool, error) {
	switch b.State {
	case BossEntering:
		b.enter(ctx)
		return false, nil
	case BossDying:
		b.DeathTimer += ctx.DT
		b.DeathScale = 1 + b.DeathTimer*0.01
		b.DeathRotation += 0.1 * ctx.DT
		return b.DeathComplete(), nil
	}
	if ctx.Rand == nil {
		return false, ErrNoRand
	}

	dt := ctx.DT
	if b.FlashTimer > 0 {
		b.FlashTimer -= dt
	}
	if b.InvulnerabilityTimer > 0 {
		b.InvulnerabilityTimer -= dt
	}
	if b.Vulnerable {
		b.VulnerabilityTimer -= dt
		if b.VulnerabilityTimer <= 0 {
			b.Vulnerable = false
			b.VulnerabilityTimer = 0
		}
	}

	b.advancePhase(ctx)
	b.move(ctx)
	b.rotate(dt)
	b.BladeRotation += BossBladeSpeed * dt

	b.ShootTimer += dt * b.PhaseMultiplier()
	if b.ShootTimer >= b.ShootInterval {
		b.ShootTimer = 0
		b.Fire(ctx)
		if physics.Chance(ctx.Rand, BossPatternChangeChance) {
			b.Pattern = physics.RandomIndex(ctx.Rand, b.MaxPatterns)
		}
	}

	if !physics.Finite(b.X, b.Y) {
		return false, ErrNonFinite
	}
	return false, nil
}

// enter eases the boss down to its resting altitude, then starts the fight.
func (b *Boss) enter(ctx UpdateContext) {
	b.restY = ctx.Field.Height * BossRestHeight
	b.Y = physics.Ease(b.Y, b.restY, BossEntryEase, ctx.DT)
	if b.Y >= b.restY-BossEntrySnap {
		b.Y = b.restY
		b.State = BossFighting
		b.targetX, b.targetY = b.X, b.Y
	}
}

// advancePhase flips between assault and recovery when the phase runs out.
// A new assault may bring a new pattern.
func (b *Boss) advancePhase(ctx UpdateContext) {
	b.PhaseTimer += ctx.DT
	if b.PhaseTimer < b.PhaseDuration() {
		return
	}
	b.PhaseTimer = 0
	if b.Phase == PhaseAssault {
		b.Phase = PhaseRecovery
		return
	}
	b.Phase = PhaseAssault
	b.Pattern = physics.RandomIndex(ctx.Rand, b.MaxPatterns)
}

// PhaseDuration returns the length of the current phase in ticks.
func (b *Boss) PhaseDuration() float64 {
	if b.Phase == PhaseAssault {
		return b.AssaultDuration
	}
	return b.RecoveryDuration
}

// PhaseMultiplier returns the shoot-timer rate for the current phase.
func (b *Boss) PhaseMultiplier() float64 {
	if b.Phase == PhaseAssault {
		return b.AssaultMult
	}
	return BossRecoveryMultiplier
}

// move picks a roaming target every so often and steers toward it.
func (b *Boss) move(ctx UpdateContext) {
	dt := ctx.DT
	b.moveTimer -= dt
	if b.moveTimer <= 0 {
		b.moveTimer = physics.RandomRange(ctx.Rand, BossMoveMinTicks, BossMoveMaxTicks)
		b.targetX = physics.RandomRange(ctx.Rand, b.Size, ctx.Field.Width-b.Size)
		b.targetY = physics.RandomRange(ctx.Rand, b.Size, ctx.Field.Height*BossRoamHeight)
	}

	dx := b.targetX - b.X
	dy := b.targetY - b.Y
	if dist := physics.Magnitude(dx, dy); dist > BossArrivalDistance {
		b.VX += dx / dist * BossAcceleration * dt
		b.VY += dy / dist * BossAcceleration * dt
	}

	b.VX = physics.Damp(b.VX, BossFriction, dt)
	b.VY = physics.Damp(b.VY, BossFriction, dt)

	speed := physics.Magnitude(b.VX, b.VY)
	if speed > BossMaxSpeed {
		b.VX = b.VX / speed * BossMaxSpeed
		b.VY = b.VY / speed * BossMaxSpeed
	}

	b.X += b.VX * dt
	b.Y += b.VY * dt

	if speed > BossRotationMinSpeed {
		b.TargetRotation = math.Atan2(b.VY, b.VX) + physics.HalfPi
	}
}

// rotate springs the facing toward the target rotation along the shortest path.
func (b *Boss) rotate(dt float64) {
	diff := physics.AngleDiff(b.Rotation, b.TargetRotation)
	b.AngularVelocity += diff * BossRotationSpring * dt
	b.AngularVelocity = physics.Damp(b.AngularVelocity, BossRotationDamping, dt)
	b.Rotation += b.AngularVelocity * dt
}

// TakeDamage removes one health point, ends any vulnerability window and
// starts the hit flash. Returns true if the boss is now dying.
func (b *Boss) TakeDamage() bool {
	b.Health--
	b.FlashTimer = BossFlashTicks
	b.Vulnerable = false
	b.VulnerabilityTimer = 0
	b.InvulnerabilityTimer = BossHitInvulnerability

	if b.Health <= 0 {
		b.State = BossDying
		return true
	}
	return false
}

// MakeVulnerable opens a vulnerability window unless the boss is still in
// its post-hit grace period or already vulnerable.
func (b *Boss) MakeVulnerable() {
	if b.InvulnerabilityTimer > 0 || b.Vulnerable {
		return
	}
	b.Vulnerable = true
	b.VulnerabilityTimer = b.VulnerabilityDuration
}

// CollidesWith reports whether (x, y) is inside the boss hitbox.
func (b *Boss) CollidesWith(x, y float64) bool {
	return physics.DistanceSquared(b.X, b.Y, x, y) < b.HitboxRadius*b.HitboxRadius
}

// Entering reports whether the boss is still flying in.
func (b *Boss) Entering() bool {
	return b.State == BossEntering
}

// Dying reports whether the death animation is playing.
func (b *Boss) Dying() bool {
	return b.State == BossDying
}

// DeathComplete reports whether the death animation has finished.
func (b *Boss) DeathComplete() bool {
	return b.State == BossDying && b.DeathTimer >= BossDeathDuration
}

// HealthFraction returns remaining health in [0, 1].
func (b *Boss) HealthFraction() float64 {
	if b.MaxHealth <= 0 {
		return 0
	}
	return physics.Clamp(float64(b.Health)/float64(b.MaxHealth), 0, 1)
}

// VulnerabilityFraction returns the remaining share of the open window.
func (b *Boss) VulnerabilityFraction() float64 {
	if !b.Vulnerable || b.VulnerabilityDuration <= 0 {
		return 0
	}
	return physics.Clamp(b.VulnerabilityTimer/b.VulnerabilityDuration, 0, 1)
}

// Draw renders the boss silhouette, the vulnerability halo and the rotor.
func (b *Boss) Draw(ctx DrawContext) error {
	c := ctx.Canvas
	x := b.X + ctx.OffsetX
	y := b.Y + ctx.OffsetY
	size := b.Size * b.DeathScale
	angle := b.Rotation - physics.HalfPi + b.DeathRotation

	col := draw.Primary
	if b.Mega {
		col = draw.Purple
	}
	switch {
	case b.State == BossDying:
		col = draw.Orange
		if Blink(ctx.Time, 80) {
			col = draw.Flame
		}
	case b.FlashTimer > 0 && int(b.FlashTimer/3)%2 == 0:
		col = draw.White
	case b.InvulnerabilityTimer > 0 && b.State == BossFighting && Blink(ctx.Time, 120):
		col = draw.Gray
	}

	if b.Vulnerable {
		pulse := 1 + 0.1*math.Sin(ctx.Time*0.01)
		c.DrawCircle(x, y, b.HitboxRadius*1.6*pulse, draw.Green)
	}

	shape := draw.Plane
	if b.Body == BodyHelicopter {
		shape = draw.Helicopter
	}
	pts := c.BorrowPoints(len(shape))
	draw.Transform(pts, shape, x, y, angle, size, size)
	c.DrawPolygon(pts, col, true)

	if b.Body == BodyHelicopter {
		for _, offset := range [2]float64{0, physics.HalfPi} {
			rotor := c.BorrowPoints(len(draw.Rotor))
			draw.Transform(rotor, draw.Rotor, x, y, b.BladeRotation+offset, size, size)
			c.DrawPolygon(rotor, draw.Steel, true)
		}
	}
	c.FillCircle(x, y, b.HitboxRadius*0.3, draw.Gold)
	return nil
}
