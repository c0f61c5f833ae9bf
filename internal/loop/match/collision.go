package match

import (
	"github.com/tomz197/mrmissile/internal/draw"
	"github.com/tomz197/mrmissile/internal/loop/config"
	"github.com/tomz197/mrmissile/internal/physics"
)

// checkGraze awards every first-time near miss. The combo grows by one per
// grazing tick, however many bullets grazed, and each bullet scores at the
// raised multiplier.
func (m *Match) checkGraze() {
	n := m.Bullets.CheckGraze(m.Player.X, m.Player.Y, config.GrazeRadius)
	if n == 0 {
		return
	}
	m.Combo++
	m.MaxCombo = max(m.MaxCombo, m.Combo)
	m.ComboTimer = config.ComboTimerTicks
	points := n * m.comboScore(config.ScoreGraze)
	m.Score += points
	m.Grazes += n
	m.emit(Event{Type: EventGraze, Count: n, Score: points})
	if _, ok := ComboMilestone(m.Combo); ok {
		m.emit(Event{Type: EventComboMilestone, Count: m.Combo})
	}
}

// ComboMultiplier is the score multiplier for the current combo.
func (m *Match) ComboMultiplier() float64 {
	return 1 + config.ComboBonusStep*float64(min(m.Combo, config.ComboBonusCap))
}

func (m *Match) comboScore(base int) int {
	return int(float64(base) * m.ComboMultiplier())
}

var comboMilestones = []struct {
	combo int
	name  string
}{
	{10, "NICE!"},
	{25, "GREAT!"},
	{50, "AMAZING!"},
	{100, "INCREDIBLE!"},
	{200, "LEGENDARY!"},
	{500, "GODLIKE!"},
	{1000, "IMPOSSIBLE!"},
}

// ComboMilestone returns the callout for a combo that just reached a milestone.
func ComboMilestone(combo int) (string, bool) {
	for _, ms := range comboMilestones {
		if ms.combo == combo {
			return ms.name, true
		}
	}
	return "", false
}

// checkBulletHit resolves the oldest projectile touching the player: either a
// lucky dodge that consumes it, or the player's death.
func (m *Match) checkBulletHit() {
	p := m.Player
	if p.Invincible {
		return
	}
	hit := m.Bullets.CheckCollision(p.X, p.Y, p.HitboxRadius)
	if hit == nil {
		return
	}

	if physics.Chance(m.rng, m.mods.LuckyDodge) {
		m.Bullets.Remove(hit)
		m.Score += config.ScoreLuckyDodge
		m.Dodges++
		p.TriggerFlicker()
		m.Particles.Dodge(p.X, p.Y)
		m.emit(Event{Type: EventDodge, Score: config.ScoreLuckyDodge})
		return
	}

	m.Particles.PlayerDeath(p.X, p.Y)
	m.Shake.Add(config.ShakeDeath)
	m.Deaths++
	m.Outcome = OutcomeDefeat
	m.logger.Debug("player hit", "kind", hit.Kind, "score", m.Score)
	m.emit(Event{Type: EventPlayerDeath})
}

// checkBossContact applies the contact rule: a vulnerable boss takes a hit,
// any other contact sends the player back to the start with a grace period.
func (m *Match) checkBossContact() {
	b := m.Boss
	p := m.Player
	if b == nil || b.Entering() || b.Dying() || !b.CollidesWith(p.X, p.Y) {
		return
	}

	if b.Vulnerable {
		dying := b.TakeDamage()
		points := m.comboScore(config.ScoreBossHit)
		m.Score += points
		m.Shake.Add(config.ShakeBossHit)
		m.Particles.BossDamage(b.X, b.Y)
		m.Bullets.Clear()
		m.resetPlayer()
		m.emit(Event{Type: EventBossHit, Score: points})
		if dying {
			m.logger.Debug("boss defeated", "score", m.Score)
			m.victoryExplosions(b.X, b.Y)
			m.emit(Event{Type: EventBossDefeated})
		}
		return
	}

	if p.Invincible {
		return
	}
	m.resetPlayer()
	m.Contacts++
	m.Shake.Add(config.ShakeReset)
	m.emit(Event{Type: EventBossContact})
}

// resetPlayer returns the player to the start and grants the grace period.
func (m *Match) resetPlayer() {
	m.Player.Reset(m.PlayerStart())
	m.Player.SetInvincible(config.BossHitInvincibilityTicks)
}

// victoryExplosions scatters gold bursts around the defeated boss.
func (m *Match) victoryExplosions(x, y float64) {
	const spread = config.VictoryExplosionSpread
	for range config.VictoryExplosions {
		m.Particles.Explosion(
			x+physics.RandomRange(m.rng, -spread, spread),
			y+physics.RandomRange(m.rng, -spread, spread),
			draw.Gold, 6,
		)
	}
}

// checkVictory ends the match once the boss death animation has played out.
func (m *Match) checkVictory() {
	b := m.Boss
	if b == nil || !b.DeathComplete() {
		return
	}
	m.Outcome = OutcomeVictory
	m.Reward = config.RewardBase + config.RewardPerLevel*m.Level
	m.emit(Event{Type: EventVictory, Score: m.Reward})
}
