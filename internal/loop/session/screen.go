package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/mrmissile/internal/loop/config"
	"github.com/tomz197/mrmissile/internal/object"
	"github.com/tomz197/mrmissile/internal/progress"
)

var titleArt = []string{
	` __  __ ___   __  __ ___ ___ ___ ___ _    ___ `,
	`|  \/  | _ \ |  \/  |_ _/ __/ __|_ _| |  | __|`,
	`| |\/| |   / | |\/| || |\__ \__ \| || |__| _| `,
	`|_|  |_|_|_\ |_|  |_|___|___/___/___|____|___|`,
}

var gameOverArt = []string{
	`   ___   _   __  __ ___    _____   _____ ___  `,
	`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
	` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
	`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
}

var victoryArt = []string{
	`__   _____ ___ _____ ___  _____   __`,
	`\ \ / /_ _/ __|_   _/ _ \| _ \ \ / /`,
	` \ V / | | (__  | || (_) |   /\ V / `,
	`  \_/ |___\___| |_| \___/|_|_\ |_|  `,
}

// drawFrame draws the current frame.
func (s *Session) drawFrame() error {
	st := s.state
	// On screen or inactivity transitions, do a full terminal clear so text
	// from the previous screen doesn't persist.
	if st.Screen != st.prevScreen || st.isInactive != st.wasInactive {
		s.overlay.Clear()
		s.canvas.ForceRedraw()
		st.prevScreen = st.Screen
		st.wasInactive = st.isInactive
	}

	s.canvas.Clear()
	if err := s.drawWorld(); err != nil {
		return err
	}

	// Render canvas to terminal
	s.canvas.Render(s.overlay)

	// Draw border when terminal exceeds max render resolution
	s.canvas.RenderBorder(s.overlay)

	// Draw UI overlay
	s.drawUI()

	return s.overlay.Flush()
}

// drawWorld draws the match, or the idle boss behind the title menu.
func (s *Session) drawWorld() error {
	st := s.state
	switch st.Screen {
	case ScreenPlaying, ScreenPaused, ScreenGameOver, ScreenVictory:
		if st.Match != nil {
			return st.Match.Draw(object.DrawContext{Canvas: s.canvas})
		}
	case ScreenTitle:
		if st.backdrop != nil {
			ox, oy := st.menuShake.Offset()
			return st.backdrop.Draw(object.DrawContext{
				Canvas:  s.canvas,
				OffsetX: ox,
				OffsetY: oy,
				Time:    st.menuTime,
			})
		}
	}
	return nil
}

// drawUI draws the text overlay for the current screen.
func (s *Session) drawUI() {
	st := s.state
	termWidth := s.canvas.TerminalWidth()
	termHeight := s.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if st.Screen == ScreenShutdown {
		s.drawShutdownScreen(centerX, centerY)
		return
	}
	if st.isInactive {
		s.drawInactivityScreen(centerX, centerY)
		return
	}

	switch st.Screen {
	case ScreenTitle:
		s.drawTitleScreen(centerX, centerY, termHeight)
	case ScreenLevelSelect:
		s.drawLevelSelect(centerX, centerY)
	case ScreenPlaying:
		s.drawPlayingHUD(termWidth, termHeight)
	case ScreenPaused:
		s.drawPlayingHUD(termWidth, termHeight)
		s.drawPauseMenu(centerX, centerY)
	case ScreenGameOver:
		s.drawGameOverScreen(centerX, centerY)
	case ScreenVictory:
		s.drawVictoryScreen(centerX, centerY)
	case ScreenUpgrades:
		s.drawUpgradesScreen(centerX, centerY)
	case ScreenSettings:
		s.drawSettingsScreen(centerX, centerY)
	case ScreenHowTo:
		s.drawHowToScreen(centerX, centerY)
	case ScreenAchievements:
		s.drawAchievementsScreen(centerX, centerY)
	}
	s.drawNotice(centerX, termHeight)
}

// drawArt draws centered ASCII art starting at row y and returns the row below it.
func (s *Session) drawArt(centerX, y int, art []string) int {
	width := 0
	for _, line := range art {
		width = max(width, len(line))
	}
	for i, line := range art {
		s.overlay.Text(centerX-width/2, y+i, s.styles.title.Render(line))
	}
	return y + len(art)
}

// drawMenu draws items centered from row y, highlighting the cursor.
func (s *Session) drawMenu(centerX, y int, items []string) {
	width := 0
	for _, item := range items {
		width = max(width, len(item))
	}
	for i, item := range items {
		label := fmt.Sprintf("%-*s", width, item)
		s.overlay.Centered(centerX, y+i, s.styles.item(label, i == s.state.cursor))
	}
}

func blinkOn() bool {
	return time.Now().UnixMilli()/600%2 == 0
}

// drawTitleScreen draws the title art, the main menu and the leaderboard.
func (s *Session) drawTitleScreen(centerX, centerY, termHeight int) {
	ov := s.overlay
	y := s.drawArt(centerX, centerY-10, titleArt)

	ov.Centered(centerX, y+1, s.styles.dim.Render("~ dodge everything, ram the boss when it opens up ~"))

	s.drawMenu(centerX, y+3, titleItems[:])

	rec := &s.state.Record
	status := fmt.Sprintf("$%-6d  Level %2d/%d  Bosses %-3d", rec.Money, rec.MaxUnlockedLevel, config.MaxLevel, rec.Stats.BossesDefeated)
	ov.Centered(centerX, y+3+titleItemCount+1, s.styles.money.Render(status))

	snap := s.server.GetSnapshot()
	row := y + 3 + titleItemCount + 3
	if len(snap.TopScores) == 0 || row+1 >= termHeight {
		return
	}
	ov.Centered(centerX, row, s.styles.title.Render("TOP PILOTS"))
	for i, e := range snap.TopScores {
		if row+1+i >= termHeight {
			break
		}
		line := fmt.Sprintf("%2d. %-16.16s lvl %2d %8d", i+1, e.Username, e.Level, e.Score)
		ov.Centered(centerX, row+1+i, s.styles.dim.Render(line))
	}
}

// drawLevelSelect draws the 5×4 level grid and details for the selected level.
func (s *Session) drawLevelSelect(centerX, centerY int) {
	ov := s.overlay
	st := s.state
	rec := &st.Record

	ov.Centered(centerX, centerY-7, s.styles.title.Render("SELECT LEVEL"))

	const cellWidth = 6
	startCol := centerX - gridColumns*cellWidth/2
	startRow := centerY - 4
	for row := range gridRows {
		for col := range gridColumns {
			lvl := levelAt(col, row)
			var cell string
			switch {
			case !rec.LevelUnlocked(lvl):
				cell = s.styles.locked.Render("  --  ")
			case lvl == st.level:
				cell = s.styles.selected.Render(fmt.Sprintf(" %2d%s  ", lvl, defeatedMark(rec, lvl)))
			case rec.Defeated[lvl]:
				cell = s.styles.defeated.Render(fmt.Sprintf(" %2d*  ", lvl))
			default:
				cell = s.styles.normal.Render(fmt.Sprintf(" %2d   ", lvl))
			}
			if lvl == st.level && !rec.LevelUnlocked(lvl) {
				cell = s.styles.selected.Render("  --  ")
			}
			ov.Text(startCol+col*cellWidth, startRow+row*2, cell)
		}
	}

	kind := "Boss"
	if st.level%3 == 0 {
		kind = "MEGA boss"
	}
	body := object.BodyForLevel(st.level)
	info := fmt.Sprintf("Level %d: %s, %s, %d patterns", st.level, kind, body, min(2+st.level, object.PatternCount))
	ov.Centered(centerX, startRow+gridRows*2+1, s.styles.normal.Render(fmt.Sprintf("%-44s", info)))

	hint := "ARROWS move   SPACE fight   ESC back"
	ov.Centered(centerX, startRow+gridRows*2+3, s.styles.dim.Render(hint))
}

func defeatedMark(rec *progress.Record, lvl int) string {
	if rec.Defeated[lvl] {
		return "*"
	}
	return " "
}

// drawPlayingHUD draws the in-game HUD.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (s *Session) drawPlayingHUD(termWidth, termHeight int) {
	ov := s.overlay
	m := s.state.Match
	if m == nil {
		return
	}
	b := m.Boss

	ov.Text(2, 1, fmt.Sprintf("SCORE %-8d COMBO x%-3d (%.2f)", m.Score, m.Combo, m.ComboMultiplier()))

	mega := "    "
	if b.Mega {
		mega = "MEGA"
	}
	levelText := fmt.Sprintf("LEVEL %-2d %s", m.Level, mega)
	ov.Right(termWidth-2, 1, levelText)

	pips := strings.Repeat("■", max(0, b.Health)) + strings.Repeat("□", max(0, b.MaxHealth-b.Health))
	ov.Text(2, 2, fmt.Sprintf("BOSS %s  %-8s", pips, b.Phase))

	const barWidth = 12
	openText := strings.Repeat(" ", barWidth+7)
	if b.Vulnerable {
		openText = s.styles.open.Render("OPEN " + bar(b.VulnerabilityFraction(), barWidth))
	}
	ov.Text(termWidth-barWidth-8, 2, openText)

	ov.Text(2, termHeight, fmt.Sprintf("GRAZE %-5d DODGE %-3d", m.Grazes, m.Dodges))

	players := fmt.Sprintf("Players: %-4d", s.server.GetSnapshot().Players)
	ov.Right(termWidth-2, termHeight, players)
}

// bar renders a fill gauge of the given inner width.
func bar(fraction float64, width int) string {
	filled := int(fraction*float64(width) + 0.5)
	filled = min(max(filled, 0), width)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func (s *Session) drawPauseMenu(centerX, centerY int) {
	s.overlay.Centered(centerX, centerY-3, s.styles.title.Render("PAUSED"))
	s.drawMenu(centerX, centerY-1, []string{"Resume", "Restart", "Quit to menu"})
}

func (s *Session) drawGameOverScreen(centerX, centerY int) {
	ov := s.overlay
	m := s.state.Match
	y := s.drawArt(centerX, centerY-7, gameOverArt)

	ov.Centered(centerX, y+1, fmt.Sprintf("Score: %d   Grazes: %d   Best combo: %d", m.Score, m.Grazes, m.MaxCombo))
	s.drawMenu(centerX, y+3, []string{"Retry", "Level select"})
}

func (s *Session) drawVictoryScreen(centerX, centerY int) {
	ov := s.overlay
	m := s.state.Match
	y := s.drawArt(centerX, centerY-7, victoryArt)

	ov.Centered(centerX, y+1, fmt.Sprintf("Score: %d   Grazes: %d   Best combo: %d", m.Score, m.Grazes, m.MaxCombo))
	ov.Centered(centerX, y+2, s.styles.money.Render(fmt.Sprintf("+$%d", m.Reward)))

	items := []string{"Level select"}
	if m.Level < config.MaxLevel {
		items = []string{fmt.Sprintf("Level %d", m.Level+1), "Level select"}
	}
	s.drawMenu(centerX, y+4, items)

	for i, a := range s.state.unlocked {
		ov.Centered(centerX, y+7+i, s.styles.defeated.Render("★ "+a.Name))
	}
}

func (s *Session) drawUpgradesScreen(centerX, centerY int) {
	ov := s.overlay
	rec := &s.state.Record

	ov.Centered(centerX, centerY-8, s.styles.title.Render("UPGRADES"))
	ov.Centered(centerX, centerY-6, s.styles.money.Render(fmt.Sprintf("Money: $%-7d", rec.Money)))

	items := make([]string, 0, progress.UpgradeCount+1)
	for up := range progress.UpgradeCount {
		level := rec.UpgradeLevel(up)
		price := "MAX"
		if cost, ok := progress.UpgradeCost(level); ok {
			price = fmt.Sprintf("$%d", cost)
		}
		gauge := strings.Repeat("●", level) + strings.Repeat("○", progress.MaxUpgradeLevel-level)
		items = append(items, fmt.Sprintf("%-14s %s %6s", up, gauge, price))
	}
	items = append(items, "Back")
	s.drawMenu(centerX, centerY-4, items)

	if c := s.state.cursor; c < int(progress.UpgradeCount) {
		desc := progress.Upgrade(c).Description()
		ov.Centered(centerX, centerY+3, s.styles.dim.Render(fmt.Sprintf("%-40s", desc)))
	} else {
		ov.Centered(centerX, centerY+3, strings.Repeat(" ", 40))
	}
}

func (s *Session) drawSettingsScreen(centerX, centerY int) {
	set := s.state.Record.Settings
	sound := "off"
	if set.Sound {
		sound = "on"
	}
	reset := "Reset progress"
	if s.state.resetArmed {
		reset = "Reset progress?"
	}

	s.overlay.Centered(centerX, centerY-6, s.styles.title.Render("SETTINGS"))
	s.drawMenu(centerX, centerY-4, []string{
		fmt.Sprintf("Sound          %-3s", sound),
		"Master  " + bar(set.MasterVolume, 10),
		"Music   " + bar(set.MusicVolume, 10),
		"Effects " + bar(set.SFXVolume, 10),
		reset,
		"Back",
	})
	s.overlay.Centered(centerX, centerY+3, s.styles.dim.Render("LEFT/RIGHT adjust   SPACE select   ESC back"))
}

func (s *Session) drawHowToScreen(centerX, centerY int) {
	ov := s.overlay
	ov.Centered(centerX, centerY-8, s.styles.title.Render("HOW TO PLAY"))

	lines := []string{
		"WASD / HJKL / Arrows . . . . . Fly",
		"P / ESC  . . . . . . . . . . Pause",
		"Q  . . . . . . . . . . . . . . Quit",
		"",
		"The boss is armoured. Dodge its bullets",
		"and wait for the green halo: while it",
		"glows, fly into the boss to damage it.",
		"",
		"Skim past bullets to graze for points.",
		"One hit ends the run. Earn money by",
		"winning and spend it on upgrades.",
	}
	for i, line := range lines {
		ov.Centered(centerX, centerY-6+i, line)
	}

	if blinkOn() {
		prompt := ">>  Press SPACE to go back  <<"
		ov.Centered(centerX, centerY+6, prompt)
	} else {
		ov.Centered(centerX, centerY+6, strings.Repeat(" ", 30))
	}
}

// drawAchievementsScreen lists every achievement, unlocked ones highlighted.
func (s *Session) drawAchievementsScreen(centerX, centerY int) {
	ov := s.overlay
	rec := &s.state.Record
	top := max(0, centerY-len(progress.Achievements)/2-4)

	ov.Centered(centerX, top, s.styles.title.Render("ACHIEVEMENTS"))
	count := 0
	for _, a := range progress.Achievements {
		if rec.Unlocked(a.ID) {
			count++
		}
	}
	ov.Centered(centerX, top+1, s.styles.money.Render(fmt.Sprintf("%d/%d unlocked", count, len(progress.Achievements))))

	for i, a := range progress.Achievements {
		mark, style := "[ ]", s.styles.locked
		if rec.Unlocked(a.ID) {
			mark, style = "[x]", s.styles.defeated
		}
		line := fmt.Sprintf("%s %-16s %-34s", mark, a.Name, a.Description())
		ov.Centered(centerX, top+3+i, style.Render(line))
	}
	ov.Centered(centerX, top+4+len(progress.Achievements), s.styles.dim.Render("SPACE / ESC back"))
}

// drawNotice draws the transient message line above the bottom row.
// Its cells are marked dirty so the canvas cleans them up once it expires.
func (s *Session) drawNotice(centerX, termHeight int) {
	if s.state.notice == "" {
		return
	}
	text := s.styles.notice.Render(s.state.notice)
	width := len(s.state.notice)
	col := max(1, centerX-width/2)
	s.overlay.Text(col, termHeight-1, text)
	s.canvas.MarkTextDirty(col, termHeight-1, width)
}

// drawInactivityScreen draws the inactivity warning screen.
func (s *Session) drawInactivityScreen(centerX, centerY int) {
	ov := s.overlay
	ov.Centered(centerX, centerY-2, s.styles.warn.Render("INACTIVITY WARNING"))

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %3d seconds.",
		int(config.InactivityDisconnectUser-time.Since(s.lastInput).Seconds()),
	)
	ov.Centered(centerX, centerY, msg)
	ov.Centered(centerX, centerY+2, "Press any key to continue")
}

// drawShutdownScreen draws the server shutdown notification screen.
func (s *Session) drawShutdownScreen(centerX, centerY int) {
	ov := s.overlay
	ov.Centered(centerX, centerY-3, s.styles.warn.Render("SERVER SHUTTING DOWN"))
	ov.Centered(centerX, centerY-1, "The server is restarting for maintenance.")
	ov.Centered(centerX, centerY, "Your progress has been saved.")

	remaining := int(s.state.shutdownTimer) + 1
	ov.Centered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %2d seconds...", remaining))
	ov.Centered(centerX, centerY+4, "Press Q to disconnect now")
}
