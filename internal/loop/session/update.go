package session

import (
	"errors"
	"fmt"
	"math"

	"github.com/tomz197/mrmissile/internal/audio"
	"github.com/tomz197/mrmissile/internal/input"
	"github.com/tomz197/mrmissile/internal/loop/config"
	"github.com/tomz197/mrmissile/internal/loop/match"
	"github.com/tomz197/mrmissile/internal/object"
	"github.com/tomz197/mrmissile/internal/physics"
	"github.com/tomz197/mrmissile/internal/progress"
)

const (
	noticeSeconds = 3.0
	volumeSteps   = 10
	volumeStep    = 1.0 / volumeSteps
)

// update advances the current screen by one frame.
func (s *Session) update() {
	st := s.state
	if st.noticeTimer > 0 {
		st.noticeTimer -= st.delta.Seconds()
		if st.noticeTimer <= 0 {
			st.notice = ""
		}
	}
	st.menuShake.Update(st.dt, s.rng)
	st.menuTime += st.dt * config.TickMillis

	if st.isInactive && st.Screen == ScreenPlaying {
		s.pause()
	}

	switch st.Screen {
	case ScreenTitle:
		s.updateTitle()
	case ScreenLevelSelect:
		s.updateLevelSelect()
	case ScreenPlaying:
		s.updatePlaying()
	case ScreenPaused:
		s.updatePaused()
	case ScreenGameOver:
		s.updateGameOver()
	case ScreenVictory:
		s.updateVictory()
	case ScreenUpgrades:
		s.updateUpgrades()
	case ScreenSettings:
		s.updateSettings()
	case ScreenHowTo, ScreenAchievements:
		if st.Input.Confirm || st.Input.Cancel {
			s.confirm()
			s.setScreen(ScreenTitle)
		}
	case ScreenShutdown:
		s.updateShutdown()
	}
}

// setScreen switches screens and resets the menu cursor.
func (s *Session) setScreen(screen Screen) {
	s.state.Screen = screen
	s.state.cursor = 0
	s.state.resetArmed = false
	input.ResetKeyInput(s.inputStream)
}

func (s *Session) notify(msg string) {
	s.state.notice = msg
	s.state.noticeTimer = noticeSeconds
}

// moveCursor applies vertical navigation to the menu cursor, wrapping at the ends.
func (s *Session) moveCursor(n int) {
	in := s.state.Input
	switch {
	case in.NavUp:
		s.state.cursor = (s.state.cursor - 1 + n) % n
	case in.NavDown:
		s.state.cursor = (s.state.cursor + 1) % n
	default:
		return
	}
	s.state.menuShake.Add(config.ShakeCursor)
	s.sink.Play(audio.Cursor)
}

func (s *Session) confirm() {
	s.state.menuShake.Add(config.ShakeConfirm)
	s.sink.Play(audio.Confirm)
}

func (s *Session) updateTitle() {
	st := s.state
	s.updateBackdrop()
	s.moveCursor(titleItemCount)
	if !st.Input.Confirm {
		return
	}
	s.confirm()
	switch st.cursor {
	case titlePlay:
		s.setScreen(ScreenLevelSelect)
		st.level = max(1, st.Record.MaxUnlockedLevel)
	case titleHowTo:
		s.setScreen(ScreenHowTo)
	case titleUpgrades:
		s.setScreen(ScreenUpgrades)
	case titleAchievements:
		s.setScreen(ScreenAchievements)
	case titleSettings:
		s.setScreen(ScreenSettings)
	case titleQuit:
		st.Running = false
	}
}

// updateBackdrop flies an idle boss behind the menus.
func (s *Session) updateBackdrop() {
	st := s.state
	if st.backdrop == nil {
		st.backdrop = object.NewBoss(config.FieldWidth/2, config.BossStartY, 1, s.rng, object.BossOptions{})
	}
	st.backdrop.Update(object.UpdateContext{
		DT:      st.dt,
		Time:    st.menuTime,
		Field:   object.Field{Width: config.FieldWidth, Height: config.FieldHeight},
		TargetX: config.FieldWidth / 2,
		TargetY: config.FieldHeight,
		Rand:    s.rng,
	})
}

func (s *Session) updateLevelSelect() {
	st := s.state
	in := st.Input
	moved := true
	switch {
	case in.NavLeft:
		st.level--
	case in.NavRight:
		st.level++
	case in.NavUp:
		st.level -= gridColumns
	case in.NavDown:
		st.level += gridColumns
	default:
		moved = false
	}
	if moved {
		st.level = int(physics.Clamp(float64(st.level), 1, config.MaxLevel))
		st.menuShake.Add(config.ShakeCursor)
		s.sink.Play(audio.Cursor)
	}

	switch {
	case in.Cancel:
		s.setScreen(ScreenTitle)
	case in.Confirm:
		if !st.Record.LevelUnlocked(st.level) {
			s.notify("Level locked")
			return
		}
		s.confirm()
		s.startMatch(st.level)
	}
}

// startMatch begins a fresh fight at level with the current upgrades.
func (s *Session) startMatch(level int) {
	st := s.state
	m, err := match.New(match.Options{
		Level:     level,
		Modifiers: modifiers(&st.Record),
		Rand:      s.rng,
		Logger:    s.logger,
	})
	if err != nil {
		s.logger.Error("failed to start match", "level", level, "err", err)
		s.notify("Could not start level")
		return
	}
	st.Match = m
	st.level = level
	s.setScreen(ScreenPlaying)
	s.clock.Reset()
	s.logger.Info("match started", "level", level, "mega", m.Boss.Mega)
}

func modifiers(r *progress.Record) match.Modifiers {
	return match.Modifiers{
		SpeedMultiplier:   r.SpeedMultiplier(),
		BulletSlow:        r.BulletSlowMultiplier(),
		LuckyDodge:        r.LuckyDodgeChance(),
		AttackWindowBonus: r.AttackWindowBonus(),
	}
}

func (s *Session) updatePlaying() {
	st := s.state
	in := st.Input
	if in.Pause || in.Cancel {
		s.pause()
		return
	}
	events := st.Match.Step(st.dt, object.Controls{Up: in.Up, Down: in.Down, Left: in.Left, Right: in.Right})
	s.playEvents(events)
	if st.Match.Over() {
		s.finishMatch()
	}
}

// playEvents maps match events to sound cues.
func (s *Session) playEvents(events []match.Event) {
	for _, e := range events {
		switch e.Type {
		case match.EventGraze:
			s.sink.Play(audio.Graze)
		case match.EventDodge:
			s.sink.Play(audio.Dodge)
		case match.EventBossHit, match.EventBossDefeated:
			s.sink.Play(audio.BossHit)
		case match.EventBossContact:
			s.sink.Play(audio.Cursor)
		case match.EventPlayerDeath:
			s.sink.Play(audio.Death)
		case match.EventVictory:
			s.sink.Play(audio.Win)
		case match.EventComboMilestone:
			if name, ok := match.ComboMilestone(e.Count); ok {
				s.notify(fmt.Sprintf("%s %dx combo", name, e.Count))
			}
		}
	}
}

// finishMatch books the outcome into the progression record.
func (s *Session) finishMatch() {
	st := s.state
	m := st.Match
	st.Record.AddPlayTime(m.PlayTime())

	switch m.Outcome {
	case match.OutcomeVictory:
		st.Record.DefeatBoss(m.Level, m.Reward, m.Score)
		st.unlocked = st.Record.CheckAchievements(progress.MatchResult{
			Grazes:   m.Grazes,
			MaxCombo: m.MaxCombo,
			Perfect:  m.Untouched(),
		})
		s.server.ReportVictory(s.handle.ID, m.Level, m.Score)
		s.setScreen(ScreenVictory)
		s.announceAchievements()
	case match.OutcomeDefeat:
		st.Record.RecordDeath(m.Score)
		s.setScreen(ScreenGameOver)
	}
	s.saver.Save(st.Record)
	s.logger.Info("match finished",
		"level", m.Level,
		"victory", m.Outcome == match.OutcomeVictory,
		"score", m.Score,
		"grazes", m.Grazes)
}

// announceAchievements puts the first new achievement on the notice line.
func (s *Session) announceAchievements() {
	unlocked := s.state.unlocked
	if len(unlocked) == 0 {
		return
	}
	msg := "Achievement unlocked: " + unlocked[0].Name
	if len(unlocked) > 1 {
		msg += fmt.Sprintf(" (+%d more)", len(unlocked)-1)
	}
	s.notify(msg)
	for _, a := range unlocked {
		s.logger.Info("achievement unlocked", "id", a.ID)
	}
}

func (s *Session) pause() {
	s.setScreen(ScreenPaused)
}

func (s *Session) updatePaused() {
	st := s.state
	if st.Input.Pause || st.Input.Cancel {
		s.resume()
		return
	}
	s.moveCursor(pauseItemCount)
	if !st.Input.Confirm {
		return
	}
	s.confirm()
	switch st.cursor {
	case pauseResume:
		s.resume()
	case pauseRestart:
		st.Record.AddPlayTime(st.Match.PlayTime())
		s.startMatch(st.Match.Level)
	case pauseMenu:
		st.Record.AddPlayTime(st.Match.PlayTime())
		s.saver.Save(st.Record)
		st.Match = nil
		s.setScreen(ScreenTitle)
	}
}

func (s *Session) resume() {
	s.setScreen(ScreenPlaying)
	s.clock.Reset()
}

// updateGameOver offers a retry. The finished match keeps animating behind.
func (s *Session) updateGameOver() {
	st := s.state
	st.Match.Step(st.dt, object.Controls{})
	s.moveCursor(2)
	switch {
	case st.Input.Cancel:
		s.backToMenu()
	case st.Input.Confirm:
		s.confirm()
		if st.cursor == 0 {
			s.startMatch(st.Match.Level)
		} else {
			s.backToMenu()
		}
	}
}

// updateVictory offers the next level when there is one.
func (s *Session) updateVictory() {
	st := s.state
	st.Match.Step(st.dt, object.Controls{})
	hasNext := st.Match.Level < config.MaxLevel
	items := 1
	if hasNext {
		items = 2
	}
	s.moveCursor(items)
	switch {
	case st.Input.Cancel:
		s.backToMenu()
	case st.Input.Confirm:
		s.confirm()
		if hasNext && st.cursor == 0 {
			s.startMatch(st.Match.Level + 1)
		} else {
			s.backToMenu()
		}
	}
}

func (s *Session) backToMenu() {
	s.state.Match = nil
	s.setScreen(ScreenLevelSelect)
}

func (s *Session) updateUpgrades() {
	st := s.state
	items := int(progress.UpgradeCount) + 1
	s.moveCursor(items)
	if st.Input.Cancel {
		s.setScreen(ScreenTitle)
		return
	}
	if !st.Input.Confirm {
		return
	}
	if st.cursor == int(progress.UpgradeCount) {
		s.confirm()
		s.setScreen(ScreenTitle)
		return
	}

	up := progress.Upgrade(st.cursor)
	err := st.Record.BuyUpgrade(up)
	switch {
	case errors.Is(err, progress.ErrMaxLevel):
		s.notify(up.String() + " is maxed out")
	case errors.Is(err, progress.ErrInsufficientFunds):
		s.notify("Not enough money")
	case err != nil:
		s.logger.Warn("upgrade failed", "upgrade", up, "err", err)
	default:
		s.confirm()
		s.notify(up.String() + " upgraded")
		s.saver.Save(st.Record)
	}
}

func (s *Session) updateSettings() {
	st := s.state
	s.moveCursor(settingItemCount)
	if st.cursor != settingReset {
		st.resetArmed = false
	}
	if st.Input.Cancel {
		s.setScreen(ScreenTitle)
		return
	}

	set := &st.Record.Settings
	changed := false
	step := 0.0
	switch {
	case st.Input.NavLeft:
		step = -volumeStep
	case st.Input.NavRight:
		step = volumeStep
	}

	switch st.cursor {
	case settingSound:
		if st.Input.Confirm || step != 0 {
			set.Sound = !set.Sound
			changed = true
		}
	case settingMaster:
		changed = adjustVolume(&set.MasterVolume, step)
	case settingMusic:
		changed = adjustVolume(&set.MusicVolume, step)
	case settingSFX:
		changed = adjustVolume(&set.SFXVolume, step)
	case settingReset:
		if st.Input.Confirm {
			if !st.resetArmed {
				st.resetArmed = true
				s.notify("Press again to erase all progress")
				return
			}
			settings := st.Record.Settings
			st.Record = progress.Default()
			st.Record.Settings = settings
			st.resetArmed = false
			st.level = 1
			s.notify("Progress reset")
			s.saver.Save(st.Record)
			s.logger.Info("progress reset")
		}
	case settingBack:
		if st.Input.Confirm {
			s.confirm()
			s.setScreen(ScreenTitle)
		}
	}

	if changed {
		s.sink.Configure(audioSettings(*set))
		s.sink.Play(audio.Cursor)
		s.saver.Save(st.Record)
	}
}

// adjustVolume moves v by step within [0, 1], rounded to the step grid.
// Returns whether v changed.
func adjustVolume(v *float64, step float64) bool {
	if step == 0 {
		return false
	}
	next := physics.Clamp(*v+step, 0, 1)
	next = math.Round(next*volumeSteps) / volumeSteps
	if next == *v {
		return false
	}
	*v = next
	return true
}

func (s *Session) enterShutdown() {
	st := s.state
	if st.Screen == ScreenShutdown {
		return
	}
	if st.Match != nil && !st.Match.Over() {
		st.Record.AddPlayTime(st.Match.PlayTime())
		st.Match = nil
	}
	s.saver.Save(st.Record)
	s.setScreen(ScreenShutdown)
	st.shutdownTimer = config.ShutdownDisplaySeconds
}

// updateShutdown handles the shutdown screen countdown.
func (s *Session) updateShutdown() {
	s.state.shutdownTimer -= s.state.delta.Seconds()
	if s.state.shutdownTimer <= 0 {
		s.state.Running = false
	}
}
