package object

import (
	"testing"

	"github.com/tomz197/mrmissile/internal/draw"
)

func newTestParticles(t *testing.T, capacity int) *ParticleField {
	t.Helper()
	f, err := NewParticleField(capacity, &seq{vals: []float64{0, 0.5, 0.99}}, nil)
	if err != nil {
		t.Fatalf("NewParticleField: %v", err)
	}
	return f
}

func TestParticleHelpersSpawnCounts(t *testing.T) {
	tests := []struct {
		name  string
		spawn func(f *ParticleField)
		want  int
	}{
		{"explosion", func(f *ParticleField) { f.Explosion(0, 0, draw.Red, 10) }, 11},
		{"trail", func(f *ParticleField) { f.Trail(0, 0, draw.Steel) }, 1},
		{"smoke", func(f *ParticleField) { f.Smoke(0, 0) }, 1},
		{"dodge", func(f *ParticleField) { f.Dodge(0, 0) }, 6},
		{"player death", func(f *ParticleField) { f.PlayerDeath(0, 0) }, 22},
		{"boss damage", func(f *ParticleField) { f.BossDamage(0, 0) }, 17},
	}
	for _, tt := range tests {
		f := newTestParticles(t, 100)
		tt.spawn(f)
		if f.Len() != tt.want {
			t.Errorf("%s: Len = %d, want %d", tt.name, f.Len(), tt.want)
		}
	}
}

func TestParticleExpiresAfterLifetime(t *testing.T) {
	f := newTestParticles(t, 10)
	f.Spawn(0, 0, 0, 0, draw.White, 10, 4, ParticleTrail)
	ctx := UpdateContext{DT: 1}
	for range 9 {
		f.Update(ctx)
	}
	if f.Len() != 1 {
		t.Fatal("particle expired early")
	}
	p := f.Active()[0]
	if p.Progress <= 0.8 || p.Radius() >= p.Size {
		t.Fatalf("progress=%v radius=%v, want a shrinking trail", p.Progress, p.Radius())
	}
	f.Update(ctx)
	if f.Len() != 0 {
		t.Fatal("particle outlived its lifetime")
	}
}

func TestSparkFalls(t *testing.T) {
	f := newTestParticles(t, 10)
	spark := f.Spawn(0, 0, 0, 0, draw.White, 30, 4, ParticleSpark)
	ring := f.Spawn(0, 0, 0, 0, draw.White, 30, 4, ParticleRing)
	for range 5 {
		f.Update(UpdateContext{DT: 1})
	}
	if spark.VY <= 0 {
		t.Errorf("spark VY = %v, want gravity", spark.VY)
	}
	if ring.VY != 0 {
		t.Errorf("ring VY = %v, want no gravity", ring.VY)
	}
	if ring.Radius() <= ring.Size {
		t.Errorf("ring radius = %v, want growth", ring.Radius())
	}
}

func TestParticleFieldCapacity(t *testing.T) {
	f := newTestParticles(t, 5)
	f.Explosion(0, 0, draw.Gold, 20)
	if f.Len() != 5 {
		t.Fatalf("Len = %d, want capped at 5", f.Len())
	}
	if f.Spawn(0, 0, 0, 0, draw.Gold, 1, 1, particleKindCount) != nil {
		t.Fatal("unknown particle kind must be rejected")
	}
	f.Clear()
	if f.Len() != 0 {
		t.Fatalf("Len after Clear = %d", f.Len())
	}
}
