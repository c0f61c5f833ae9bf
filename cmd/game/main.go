package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/tomz197/mrmissile/internal/audio"
	"github.com/tomz197/mrmissile/internal/config"
	"github.com/tomz197/mrmissile/internal/loop/server"
	"github.com/tomz197/mrmissile/internal/loop/session"
	"github.com/tomz197/mrmissile/internal/progress"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// The terminal belongs to the game, so logs only go to LOG_FILE.
	var logOut io.Writer = io.Discard
	if path := config.GetEnv("LOG_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := config.NewLogger(logOut, "game")

	savePath, err := saveFile()
	if err != nil {
		return err
	}
	store := progress.NewFileStore(savePath, logger)

	var sink audio.Sink // nil falls back to the terminal bell
	if !config.GetEnvBool("NO_SOUND", false) {
		synth, err := audio.NewSynth(logger)
		if err != nil {
			logger.Warn("audio unavailable, using terminal bell", "err", err)
		} else {
			defer synth.Close()
			sink = synth
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lobby := server.NewServer(1, logger)
	go lobby.Run(ctx)

	s, err := session.New(lobby, bufio.NewReader(os.Stdin), os.Stdout, session.Options{
		Username: config.GetEnv("USER", "pilot"),
		Store:    store,
		Sink:     sink,
		Profile:  termenv.ANSI256,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	return s.Run(ctx)
}

// saveFile returns SAVE_FILE, or progress.yaml in the user config directory.
func saveFile() (string, error) {
	if path := config.GetEnv("SAVE_FILE", ""); path != "" {
		return path, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "mrmissile", "progress.yaml"), nil
}
