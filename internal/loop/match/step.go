package match

import (
	"github.com/tomz197/mrmissile/internal/draw"
	"github.com/tomz197/mrmissile/internal/loop/config"
	"github.com/tomz197/mrmissile/internal/object"
	"github.com/tomz197/mrmissile/internal/physics"
)

const (
	trailParticleSpeed = 3.0 // Player speed above which trail droplets spawn
	deathSmokeChance   = 0.3 // Per tick while the boss is dying
)

// Step advances the match by dt ticks with the given player input and
// returns what happened. The returned slice is only valid until the next Step.
//
// Once the match is over only the cosmetic effects keep running.
// dt is clamped to [0, MaxDeltaTicks].
func (m *Match) Step(dt float64, in object.Controls) []Event {
	m.events = m.events[:0]
	dt = physics.Clamp(dt, 0, config.MaxDeltaTicks)
	if m.Over() {
		m.Shake.Update(dt, m.rng)
		m.Particles.Update(object.UpdateContext{DT: dt, Time: m.Time, Field: m.Field, Rand: m.rng})
		return m.events
	}
	m.Ticks += dt
	m.Time += dt * config.TickMillis

	m.Shake.Update(dt, m.rng)
	if m.ComboTimer > 0 {
		m.ComboTimer -= dt
		if m.ComboTimer <= 0 {
			m.ComboTimer = 0
			m.Combo = 0
		}
	}

	ctx := object.UpdateContext{
		DT:    dt,
		Time:  m.Time,
		Field: m.Field,
		Input: in,
		Rand:  m.rng,
	}

	m.updatePlayer(ctx)

	ctx.TargetX, ctx.TargetY = m.Player.X, m.Player.Y
	m.updateBoss(ctx)

	bulletCtx := ctx
	bulletCtx.DT = dt * m.mods.BulletSlow
	m.Bullets.Update(bulletCtx)
	m.Particles.Update(ctx)

	m.checkGraze()
	m.checkBulletHit()
	if m.Over() {
		return m.events
	}
	m.checkBossContact()
	m.checkVictory()
	return m.events
}

func (m *Match) updatePlayer(ctx object.UpdateContext) {
	if _, err := m.Player.Update(ctx); err != nil {
		m.logger.Warn("player update failed, resetting", "err", err)
		m.Player.Reset(m.PlayerStart())
		return
	}
	if m.Player.Speed() > trailParticleSpeed {
		m.Particles.Trail(m.Player.X, m.Player.Y, draw.Gray)
	}
}

func (m *Match) updateBoss(ctx object.UpdateContext) {
	b := m.Boss
	if b == nil || b.DeathComplete() {
		return
	}

	ctx.Spawner = m.Bullets
	if _, err := b.Update(ctx); err != nil {
		m.logger.Warn("boss update failed, recentering", "err", err)
		b.X, b.Y = m.Field.Width/2, m.Field.Height*object.BossRestHeight
		b.VX, b.VY = 0, 0
		return
	}

	switch {
	case b.Dying():
		if physics.Chance(m.rng, deathSmokeChance) {
			r := b.Size * 0.5
			m.Particles.Smoke(
				b.X+physics.RandomRange(m.rng, -r, r),
				b.Y+physics.RandomRange(m.rng, -r, r),
			)
		}
	case !b.Entering() && !b.Vulnerable:
		if physics.Chance(m.rng, config.VulnerabilityChance) {
			b.MakeVulnerable()
		}
	}
}
