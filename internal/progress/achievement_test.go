package progress

import (
	"slices"
	"testing"
)

func ids(as []Achievement) []string {
	out := make([]string, len(as))
	for i, a := range as {
		out[i] = a.ID
	}
	return out
}

func TestAchievementTable(t *testing.T) {
	seen := map[string]bool{}
	for _, a := range Achievements {
		if seen[a.ID] {
			t.Errorf("duplicate id %q", a.ID)
		}
		seen[a.ID] = true
		if a.Name == "" || a.Target <= 0 || a.Description() == "" {
			t.Errorf("incomplete achievement %+v", a)
		}
	}
	if len(Achievements) != 19 {
		t.Fatalf("len = %d, want 19", len(Achievements))
	}
}

func TestCheckAchievementsUnlocksOnce(t *testing.T) {
	r := Default()
	r.DefeatBoss(1, 75, 500)

	got := r.CheckAchievements(MatchResult{Grazes: 60, MaxCombo: 12})
	want := []string{"first_blood", "close_call", "combo_starter"}
	if !slices.Equal(ids(got), want) {
		t.Fatalf("unlocked = %v, want %v", ids(got), want)
	}

	r.DefeatBoss(2, 100, 500)
	if again := r.CheckAchievements(MatchResult{Grazes: 60, MaxCombo: 12}); len(again) != 0 {
		t.Fatalf("unlocked again: %v", ids(again))
	}
	if !slices.Equal(r.Achievements, want) {
		t.Fatalf("Achievements = %v", r.Achievements)
	}
}

func TestCheckAchievementsPerMatchGoals(t *testing.T) {
	tests := []struct {
		name string
		res  MatchResult
		want string
	}{
		{"grazes", MatchResult{Grazes: 500}, "death_dancer"},
		{"combo", MatchResult{MaxCombo: 50}, "combo_god"},
		{"perfect", MatchResult{Perfect: true}, "untouchable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Default()
			got := ids(r.CheckAchievements(tt.res))
			if !slices.Contains(got, tt.want) {
				t.Fatalf("unlocked = %v, want %s", got, tt.want)
			}
		})
	}
}

func TestFlawlessRunNeedsConsecutiveWins(t *testing.T) {
	r := Default()
	r.CheckAchievements(MatchResult{Perfect: true})
	r.CheckAchievements(MatchResult{Perfect: true})
	r.RecordDeath(0)
	r.CheckAchievements(MatchResult{Perfect: true})
	r.CheckAchievements(MatchResult{Perfect: false})
	r.CheckAchievements(MatchResult{Perfect: true})
	r.CheckAchievements(MatchResult{Perfect: true})
	if r.Unlocked("flawless_run") {
		t.Fatalf("flawless_run unlocked with streak %d", r.Stats.FlawlessStreak)
	}
	if r.Stats.PerfectBosses != 5 {
		t.Fatalf("PerfectBosses = %d, want 5", r.Stats.PerfectBosses)
	}

	got := r.CheckAchievements(MatchResult{Perfect: true})
	if !slices.Equal(ids(got), []string{"flawless_run"}) {
		t.Fatalf("unlocked = %v, want flawless_run", ids(got))
	}
}

func TestLifetimeGoals(t *testing.T) {
	r := Default()
	r.UnlockLevel(10)
	r.AddMoney(5000)
	got := ids(r.CheckAchievements(MatchResult{}))
	for _, want := range []string{"novice", "veteran", "penny_pincher", "money_maker"} {
		if !slices.Contains(got, want) {
			t.Errorf("missing %s in %v", want, got)
		}
	}
	if slices.Contains(got, "ace") || slices.Contains(got, "tycoon") {
		t.Errorf("unlocked too much: %v", got)
	}
}

func TestCloneCopiesAchievements(t *testing.T) {
	r := Default()
	r.Achievements = []string{"first_blood"}
	c := r.Clone()
	c.Achievements[0] = "tycoon"
	if r.Achievements[0] != "first_blood" {
		t.Fatal("Clone must not share the achievements slice")
	}
}
