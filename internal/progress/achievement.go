package progress

import (
	"fmt"
	"slices"
)

// Goal is the statistic an achievement is measured against.
type Goal int

const (
	GoalBossKills    Goal = iota // Lifetime bosses defeated
	GoalReachLevel               // Highest unlocked level
	GoalPerfectBoss              // Bosses beaten without being touched
	GoalFlawlessRun              // Untouched victories in a row
	GoalGrazes                   // Grazes in a single match
	GoalCombo                    // Best combo in a single match
	GoalMoneyEarned              // Lifetime money earned
)

// Achievement is a one-time milestone.
type Achievement struct {
	ID     string
	Name   string
	Goal   Goal
	Target int
}

// Achievements is the fixed achievement table, in display order.
var Achievements = []Achievement{
	{"first_blood", "First Blood", GoalBossKills, 1},
	{"boss_slayer", "Boss Slayer", GoalBossKills, 5},
	{"boss_hunter", "Boss Hunter", GoalBossKills, 10},
	{"boss_destroyer", "Boss Destroyer", GoalBossKills, 25},
	{"novice", "Novice Pilot", GoalReachLevel, 5},
	{"veteran", "Veteran Pilot", GoalReachLevel, 10},
	{"ace", "Ace Pilot", GoalReachLevel, 15},
	{"legendary", "Legendary Pilot", GoalReachLevel, 20},
	{"untouchable", "Untouchable", GoalPerfectBoss, 1},
	{"flawless_run", "Flawless Run", GoalFlawlessRun, 3},
	{"close_call", "Close Call", GoalGrazes, 50},
	{"thrill_seeker", "Thrill Seeker", GoalGrazes, 200},
	{"death_dancer", "Death Dancer", GoalGrazes, 500},
	{"combo_starter", "Combo Starter", GoalCombo, 10},
	{"combo_master", "Combo Master", GoalCombo, 25},
	{"combo_god", "Combo God", GoalCombo, 50},
	{"penny_pincher", "Penny Pincher", GoalMoneyEarned, 1000},
	{"money_maker", "Money Maker", GoalMoneyEarned, 5000},
	{"tycoon", "Tycoon", GoalMoneyEarned, 10000},
}

// Description returns what has to be done to unlock a.
func (a Achievement) Description() string {
	switch a.Goal {
	case GoalBossKills:
		if a.Target == 1 {
			return "Defeat a boss"
		}
		return fmt.Sprintf("Defeat %d bosses", a.Target)
	case GoalReachLevel:
		return fmt.Sprintf("Unlock level %d", a.Target)
	case GoalPerfectBoss:
		return "Beat a boss without being touched"
	case GoalFlawlessRun:
		return fmt.Sprintf("Win %d untouched fights in a row", a.Target)
	case GoalGrazes:
		return fmt.Sprintf("Graze %d bullets in one fight", a.Target)
	case GoalCombo:
		return fmt.Sprintf("Reach a %dx combo", a.Target)
	case GoalMoneyEarned:
		return fmt.Sprintf("Earn $%d in total", a.Target)
	}
	return ""
}

// MatchResult is what a won match contributes to achievement progress.
type MatchResult struct {
	Grazes   int
	MaxCombo int
	Perfect  bool // No lucky dodge and no boss contact
}

// value returns the current measure of g.
func (r *Record) value(g Goal, res MatchResult) int {
	switch g {
	case GoalBossKills:
		return r.Stats.BossesDefeated
	case GoalReachLevel:
		return r.MaxUnlockedLevel
	case GoalPerfectBoss:
		return r.Stats.PerfectBosses
	case GoalFlawlessRun:
		return r.Stats.FlawlessStreak
	case GoalGrazes:
		return res.Grazes
	case GoalCombo:
		return res.MaxCombo
	case GoalMoneyEarned:
		return r.Stats.TotalEarned
	}
	return 0
}

// Unlocked reports whether the achievement with id has been earned.
func (r *Record) Unlocked(id string) bool {
	return slices.Contains(r.Achievements, id)
}

// CheckAchievements books a won match into the perfect-fight counters and
// unlocks every achievement whose target is now met. It returns the newly
// unlocked ones in table order. Call it after DefeatBoss.
func (r *Record) CheckAchievements(res MatchResult) []Achievement {
	if res.Perfect {
		r.Stats.PerfectBosses++
		r.Stats.FlawlessStreak++
	} else {
		r.Stats.FlawlessStreak = 0
	}

	var unlocked []Achievement
	for _, a := range Achievements {
		if r.Unlocked(a.ID) || r.value(a.Goal, res) < a.Target {
			continue
		}
		r.Achievements = append(r.Achievements, a.ID)
		unlocked = append(unlocked, a)
	}
	return unlocked
}

func knownAchievement(id string) bool {
	return slices.ContainsFunc(Achievements, func(a Achievement) bool { return a.ID == id })
}
