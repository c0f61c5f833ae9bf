package match

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/tomz197/mrmissile/internal/draw"
	"github.com/tomz197/mrmissile/internal/loop/config"
	"github.com/tomz197/mrmissile/internal/object"
)

func newTestMatch(t *testing.T, mods Modifiers) *Match {
	t.Helper()
	m, err := New(Options{Level: 1, Modifiers: mods, Rand: rand.New(rand.NewPCG(7, 7))})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func hasEvent(events []Event, typ EventType) bool {
	for _, e := range events {
		if e.Type == typ {
			return true
		}
	}
	return false
}

// engage puts a fighting boss on top of the player.
func engage(m *Match, vulnerable bool) {
	b := m.Boss
	b.State = object.BossFighting
	m.Player.X, m.Player.Y = 300, 300
	b.X, b.Y = 300, 300
	b.InvulnerabilityTimer = 10000
	if vulnerable {
		b.InvulnerabilityTimer = 0
		b.MakeVulnerable()
	}
}

func TestNewRejectsBadOptions(t *testing.T) {
	if _, err := New(Options{Level: 0, Rand: rand.New(rand.NewPCG(1, 1))}); err == nil {
		t.Error("expected error for level 0")
	}
	if _, err := New(Options{Level: config.MaxLevel + 1, Rand: rand.New(rand.NewPCG(1, 1))}); err == nil {
		t.Error("expected error past the last level")
	}
	if _, err := New(Options{Level: 1}); err == nil {
		t.Error("expected error without a random source")
	}
}

func TestNewPlacesEntities(t *testing.T) {
	m := newTestMatch(t, DefaultModifiers())
	if m.Player.X != config.FieldWidth/2 || m.Player.Y != config.FieldHeight*config.PlayerStartYRatio {
		t.Errorf("player at (%v, %v)", m.Player.X, m.Player.Y)
	}
	if m.Boss.Y != config.BossStartY || !m.Boss.Entering() {
		t.Errorf("boss at y=%v entering=%v", m.Boss.Y, m.Boss.Entering())
	}
}

func TestLuckyDodgeConsumesBullet(t *testing.T) {
	m := newTestMatch(t, Modifiers{LuckyDodge: 1})
	m.Bullets.Spawn(m.Player.X, m.Player.Y, 0, 0, object.KindPlain)

	events := m.Step(1, object.Controls{})
	if m.Outcome != OutcomeNone {
		t.Fatalf("Outcome = %v, want none", m.Outcome)
	}
	if m.Bullets.Len() != 0 {
		t.Fatalf("dodged bullet still active")
	}
	if !hasEvent(events, EventDodge) || m.Score != config.ScoreLuckyDodge {
		t.Fatalf("events=%v score=%d", events, m.Score)
	}
	if m.Player.FlickerTimer <= 0 {
		t.Fatal("dodge must trigger the flicker")
	}
}

func TestBulletHitEndsMatch(t *testing.T) {
	m := newTestMatch(t, DefaultModifiers())
	m.Bullets.Spawn(m.Player.X, m.Player.Y, 0, 0, object.KindPlain)

	events := m.Step(1, object.Controls{})
	if m.Outcome != OutcomeDefeat || m.Deaths != 1 || !hasEvent(events, EventPlayerDeath) {
		t.Fatalf("outcome=%v deaths=%d events=%v", m.Outcome, m.Deaths, events)
	}

	ticks := m.Ticks
	if events := m.Step(1, object.Controls{}); len(events) != 0 || m.Ticks != ticks {
		t.Fatal("finished match must not advance")
	}
}

func TestInvinciblePlayerIgnoresBullets(t *testing.T) {
	m := newTestMatch(t, DefaultModifiers())
	m.Player.SetInvincible(10)
	m.Bullets.Spawn(m.Player.X, m.Player.Y, 0, 0, object.KindPlain)
	m.Step(1, object.Controls{})
	if m.Outcome != OutcomeNone || m.Bullets.Len() != 1 {
		t.Fatalf("outcome=%v bullets=%d", m.Outcome, m.Bullets.Len())
	}
}

func TestGrazeScoresOnceAndComboExpires(t *testing.T) {
	m := newTestMatch(t, DefaultModifiers())
	m.Bullets.Spawn(m.Player.X+15, m.Player.Y, 0, 0, object.KindPlain)
	m.Bullets.Spawn(m.Player.X-15, m.Player.Y, 0, 0, object.KindPlain)
	m.Bullets.Spawn(m.Player.X, m.Player.Y+15, 0, 0, object.KindPlain)

	events := m.Step(1, object.Controls{})
	if !hasEvent(events, EventGraze) {
		t.Fatalf("no graze event: %v", events)
	}
	// Every bullet scores at the 1.05 multiplier, the combo counts grazing ticks.
	if m.Score != 3*config.ScoreGraze || m.Grazes != 3 || m.Combo != 1 || m.ComboTimer != config.ComboTimerTicks {
		t.Fatalf("score=%d grazes=%d combo=%d timer=%v", m.Score, m.Grazes, m.Combo, m.ComboTimer)
	}

	for range config.ComboTimerTicks {
		if events := m.Step(1, object.Controls{}); hasEvent(events, EventGraze) {
			t.Fatal("graze counted twice")
		}
	}
	if m.Combo != 0 || m.MaxCombo != 1 {
		t.Fatalf("combo=%d max=%d after timer", m.Combo, m.MaxCombo)
	}
}

func TestBossContactResetsPlayer(t *testing.T) {
	m := newTestMatch(t, DefaultModifiers())
	engage(m, false)

	events := m.Step(1, object.Controls{})
	if !hasEvent(events, EventBossContact) {
		t.Fatalf("events = %v", events)
	}
	x, y := m.PlayerStart()
	if m.Player.X != x || m.Player.Y != y || !m.Player.Invincible {
		t.Fatalf("player at (%v, %v) invincible=%v", m.Player.X, m.Player.Y, m.Player.Invincible)
	}
	if m.Boss.Health != m.Boss.MaxHealth {
		t.Fatal("contact while not vulnerable must not hurt the boss")
	}
	if m.Contacts != 1 || m.Untouched() {
		t.Fatalf("contacts=%d untouched=%v", m.Contacts, m.Untouched())
	}
}

func TestComboMultiplier(t *testing.T) {
	m := newTestMatch(t, DefaultModifiers())
	tests := []struct {
		combo int
		want  float64
	}{
		{0, 1},
		{1, 1.05},
		{20, 2},
		{50, 3.5},
		{400, 3.5},
	}
	for _, tt := range tests {
		m.Combo = tt.combo
		if got := m.ComboMultiplier(); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ComboMultiplier() at %d = %v, want %v", tt.combo, got, tt.want)
		}
	}
}

func TestComboMilestone(t *testing.T) {
	m := newTestMatch(t, DefaultModifiers())
	m.Combo = 9
	m.Bullets.Spawn(m.Player.X+15, m.Player.Y, 0, 0, object.KindPlain)

	events := m.Step(1, object.Controls{})
	var milestone *Event
	for i := range events {
		if events[i].Type == EventComboMilestone {
			milestone = &events[i]
		}
	}
	if milestone == nil || milestone.Count != 10 {
		t.Fatalf("events = %v, want a milestone at 10", events)
	}
	if name, _ := ComboMilestone(10); name != "NICE!" {
		t.Fatalf("ComboMilestone(10) = %q", name)
	}
	if m.Score != 15 {
		t.Fatalf("Score = %d, want 15 at the 1.5 multiplier", m.Score)
	}
	if _, ok := ComboMilestone(11); ok {
		t.Fatal("11 is not a milestone")
	}
}

func TestComboRaisesBossHitScore(t *testing.T) {
	m := newTestMatch(t, DefaultModifiers())
	engage(m, true)
	m.Combo = 20
	m.ComboTimer = config.ComboTimerTicks

	m.Step(1, object.Controls{})
	if m.Score != 2*config.ScoreBossHit {
		t.Fatalf("Score = %d, want %d", m.Score, 2*config.ScoreBossHit)
	}
	if !m.Untouched() {
		t.Fatal("hitting the vulnerable boss is not being touched")
	}
}

func TestVulnerableBossTakesHit(t *testing.T) {
	m := newTestMatch(t, DefaultModifiers())
	engage(m, true)
	m.Bullets.Spawn(100, 100, 0, 0, object.KindPlain)

	events := m.Step(1, object.Controls{})
	if !hasEvent(events, EventBossHit) || hasEvent(events, EventBossDefeated) {
		t.Fatalf("events = %v", events)
	}
	if m.Boss.Health != m.Boss.MaxHealth-1 || m.Score != config.ScoreBossHit {
		t.Fatalf("health=%d score=%d", m.Boss.Health, m.Score)
	}
	if m.Shake.Intensity < config.ShakeBossHit {
		t.Fatalf("shake = %v", m.Shake.Intensity)
	}
	if m.Bullets.Len() != 0 || !m.Player.Invincible {
		t.Fatalf("bullets=%d invincible=%v", m.Bullets.Len(), m.Player.Invincible)
	}
}

func TestVictory(t *testing.T) {
	m := newTestMatch(t, DefaultModifiers())
	engage(m, true)
	m.Boss.Health = 1

	events := m.Step(1, object.Controls{})
	if !hasEvent(events, EventBossDefeated) || !m.Boss.Dying() {
		t.Fatalf("events=%v dying=%v", events, m.Boss.Dying())
	}
	// Each explosion is six sparks and a ring, spawned on the defeating hit.
	if n := m.Particles.Len(); n < config.VictoryExplosions*7 {
		t.Fatalf("particles after defeating hit = %d, want at least %d", n, config.VictoryExplosions*7)
	}

	won := false
	for range 400 {
		if hasEvent(m.Step(1, object.Controls{}), EventVictory) {
			won = true
			break
		}
	}
	if !won || m.Outcome != OutcomeVictory {
		t.Fatalf("no victory: outcome=%v", m.Outcome)
	}
	if want := config.RewardBase + config.RewardPerLevel; m.Reward != want {
		t.Fatalf("Reward = %d, want %d", m.Reward, want)
	}
}

func TestPlayTimeFollowsTicks(t *testing.T) {
	m := newTestMatch(t, DefaultModifiers())
	for range 120 {
		m.Step(1, object.Controls{})
	}
	if got := m.PlayTime().Seconds(); math.Abs(got-2) > 1e-6 {
		t.Fatalf("PlayTime = %vs, want 2s", got)
	}
}

func TestStepClampsDelta(t *testing.T) {
	m := newTestMatch(t, DefaultModifiers())
	m.Step(10, object.Controls{})
	if m.Ticks != config.MaxDeltaTicks {
		t.Fatalf("Ticks = %v, want %v", m.Ticks, config.MaxDeltaTicks)
	}
	if m.Time != config.MaxDeltaTicks*config.TickMillis {
		t.Fatalf("Time = %v", m.Time)
	}
	m.Step(-1, object.Controls{})
	if m.Ticks != config.MaxDeltaTicks {
		t.Fatal("negative delta must not advance")
	}
}

func TestBulletSlowScalesProjectiles(t *testing.T) {
	m := newTestMatch(t, Modifiers{BulletSlow: 0.5})
	p := m.Bullets.Spawn(100, 100, 4, 0, object.KindPlain)
	m.Step(1, object.Controls{})
	if p.X != 102 {
		t.Fatalf("X = %v, want 102 at half speed", p.X)
	}
}

func TestShake(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	var s Shake
	s.Add(10)
	s.Add(4)
	if s.Intensity != 10 {
		t.Fatalf("Intensity = %v, want max of requests", s.Intensity)
	}
	s.Update(1, rng)
	if s.Intensity != 9 {
		t.Fatalf("Intensity = %v, want 9", s.Intensity)
	}
	s.Intensity = 0.4
	s.Update(1, rng)
	if s.Intensity != 0 {
		t.Fatalf("Intensity = %v, want 0 below floor", s.Intensity)
	}
	if x, y := s.Offset(); x != 0 || y != 0 {
		t.Fatal("no offset without shake")
	}
}

func TestShakeOffsetSpansIntensity(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 3))
	var s Shake
	var peak float64
	for range 10000 {
		s.Intensity = 10
		s.Update(1, rng)
		x, y := s.Offset()
		if math.Abs(x) > 10 || math.Abs(y) > 10 {
			t.Fatalf("offset (%v, %v) outside [-10, 10]", x, y)
		}
		peak = max(peak, math.Abs(x), math.Abs(y))
	}
	if peak < 9 {
		t.Fatalf("peak offset %v, want close to the full intensity", peak)
	}
}

func TestDrawDoesNotConsumeRandomness(t *testing.T) {
	a := newTestMatch(t, DefaultModifiers())
	b := newTestMatch(t, DefaultModifiers())
	canvas := draw.NewCanvas(40, 20)
	for range 30 {
		a.Step(1, object.Controls{})
		b.Step(1, object.Controls{})
		for range 3 {
			if err := b.Draw(object.DrawContext{Canvas: canvas}); err != nil {
				t.Fatal(err)
			}
		}
	}
	if a.Shake != b.Shake || a.Boss.Pattern != b.Boss.Pattern || a.Bullets.Len() != b.Bullets.Len() {
		t.Fatal("drawing changed the simulation")
	}
}
