package object

import (
	"math"

	"github.com/tomz197/mrmissile/internal/physics"
)

// PatternCount is the number of boss attack patterns.
const PatternCount = 15

// patternFunc emits one volley from the boss position.
type patternFunc func(v volley)

// volley holds the level-scaled values every pattern shares.
type volley struct {
	x, y   float64 // Origin
	speed  float64 // Base projectile speed
	count  int     // Base projectile count
	aim    float64 // Bearing to the player
	time   float64 // Simulated milliseconds
	spawn  Spawner
	random physics.Rand
}

func (v volley) fire(angle, speed float64, kind Kind) {
	sin, cos := math.Sincos(angle)
	v.spawn.Spawn(v.x, v.y, cos*speed, sin*speed, kind)
}

var patternNames = [PatternCount]string{
	"spiral", "circle", "aimed", "wave", "random", "cross", "homing",
	"spiral burst", "shotgun", "ring", "double spiral", "accelerating",
	"bouncing", "splitting", "bomb",
}

var patterns = [PatternCount]patternFunc{
	// spiral
	func(v volley) {
		offset := v.time * 0.003
		for i := range v.count {
			v.fire(offset+float64(i)/float64(v.count)*physics.TwoPi, v.speed, KindPlain)
		}
	},
	// circle
	func(v volley) {
		n := v.count * 2
		for i := range n {
			v.fire(float64(i)/float64(n)*physics.TwoPi, v.speed, KindPlain)
		}
	},
	// aimed
	func(v volley) {
		for i := -2; i <= 2; i++ {
			v.fire(v.aim+float64(i)*0.15, v.speed, KindFast)
		}
	},
	// wave
	func(v volley) {
		base := physics.HalfPi + math.Sin(v.time*0.005)*0.5
		half := float64(v.count) / 2
		for i := range v.count {
			v.fire(base+(float64(i)-half)*0.2, v.speed, KindWave)
		}
	},
	// random spray
	func(v volley) {
		for range v.count {
			angle := v.random.Float64() * physics.TwoPi
			v.fire(angle, v.speed*physics.RandomRange(v.random, 0.7, 1.3), KindPlain)
		}
	},
	// cross
	func(v volley) {
		offset := v.time * 0.002
		for dir := range 4 {
			angle := float64(dir)*physics.HalfPi + offset
			for i := range 3 {
				v.fire(angle, v.speed*(0.8+0.3*float64(i)), KindLarge)
			}
		}
	},
	// homing
	func(v volley) {
		v.fire(v.aim, 2, KindHoming)
	},
	// spiral burst
	func(v volley) {
		offset := v.time * 0.004
		for i := range 12 {
			v.fire(offset+float64(i)/12*physics.TwoPi, v.speed, KindSpiral)
		}
	},
	// shotgun
	func(v volley) {
		for i := range 8 {
			spread := (float64(i) - 3.5) * 0.12
			v.fire(v.aim+spread, v.speed*physics.RandomRange(v.random, 0.8, 1.2), KindFast)
		}
	},
	// ring
	func(v volley) {
		for i := range 16 {
			v.fire(float64(i)/16*physics.TwoPi, v.speed*0.8, KindLarge)
		}
	},
	// double spiral
	func(v volley) {
		offset := v.time * 0.003
		for i := range 6 {
			step := float64(i) / 6 * physics.TwoPi
			v.fire(offset+step, v.speed, KindPlain)
			v.fire(-offset+step+math.Pi, v.speed, KindPlain)
		}
	},
	// accelerating
	func(v volley) {
		for i := -1; i <= 1; i++ {
			v.fire(v.aim+float64(i)*0.2, 1.5, KindAccelerating)
		}
	},
	// bouncing
	func(v volley) {
		for range 4 {
			v.fire(v.random.Float64()*physics.TwoPi, v.speed, KindBouncing)
		}
	},
	// splitting
	func(v volley) {
		v.fire(v.aim, 3, KindSplitting)
	},
	// bomb
	func(v volley) {
		v.fire(v.aim, 4, KindBomb)
	},
}

// PatternName returns the display name of pattern index i (wrapped).
func PatternName(i int) string {
	return patternNames[wrapPattern(i)]
}

func wrapPattern(i int) int {
	i %= PatternCount
	if i < 0 {
		i += PatternCount
	}
	return i
}

// BaseSpeed returns the level-scaled projectile speed.
func BaseSpeed(level int) float64 {
	return 3 + 0.2*float64(level)
}

// BaseCount returns the level-scaled projectile count, capped at 12.
func BaseCount(level int) int {
	return min(3+level/2, 12)
}

// Fire emits the current pattern into ctx.Spawner. Does nothing when no
// spawner is attached.
func (b *Boss) Fire(ctx UpdateContext) {
	if ctx.Spawner == nil {
		return
	}
	v := volley{
		x:      b.X,
		y:      b.Y,
		speed:  BaseSpeed(b.Level),
		count:  BaseCount(b.Level),
		aim:    physics.AngleTo(b.X, b.Y, ctx.TargetX, ctx.TargetY),
		time:   ctx.Time,
		spawn:  ctx.Spawner,
		random: ctx.Rand,
	}
	patterns[wrapPattern(b.Pattern)](v)
}
