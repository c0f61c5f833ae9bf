// Package session drives one player's connection: input, menus, the match,
// progression and rendering, all on a single frame loop.
package session

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/muesli/termenv"
	"golang.org/x/sync/errgroup"

	"github.com/tomz197/mrmissile/internal/audio"
	"github.com/tomz197/mrmissile/internal/draw"
	"github.com/tomz197/mrmissile/internal/input"
	"github.com/tomz197/mrmissile/internal/loop"
	"github.com/tomz197/mrmissile/internal/loop/config"
	"github.com/tomz197/mrmissile/internal/loop/server"
	"github.com/tomz197/mrmissile/internal/progress"
)

// Session handles rendering, input and game flow for a single connection.
type Session struct {
	server       server.GameServer
	handle       *server.ClientHandle
	id           uuid.UUID
	state        *State
	canvas       *draw.Canvas
	overlay      *draw.Overlay // Queues the frame: canvas cells then text
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	clock        *loop.Clock
	saver        *progress.Saver
	sink         audio.Sink
	styles       styles
	rng          *rand.Rand
	logger       *log.Logger
}

// Options configures a session.
type Options struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Store        progress.Store  // Defaults to an in-memory store
	Sink         audio.Sink      // Defaults to the terminal bell
	Profile      termenv.Profile // Colour profile for menu text
	Logger       *log.Logger
	Seed         uint64 // Zero picks a random seed
}

// New creates a session registered with gs. Returns server.ErrServerFull when
// the server has no free slot.
func New(gs server.GameServer, r io.Reader, w io.Writer, opts Options) (*Session, error) {
	handle, err := gs.RegisterClient(opts.Username)
	if err != nil {
		return nil, err
	}

	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	store := opts.Store
	if store == nil {
		store = &progress.MemoryStore{}
	}
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	id := uuid.New()
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.With("session", id.String(), "user", opts.Username)

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := draw.TerminalSizeRawWith(termSizeFunc)
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.FieldWidth, config.FieldHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	overlay := draw.NewOverlay(w, offsetCol, offsetRow)

	sink := opts.Sink
	if sink == nil {
		sink = audio.NewBell(overlay)
	}

	s := &Session{
		server:       gs,
		handle:       handle,
		id:           id,
		state:        NewState(store.Load()),
		canvas:       canvas,
		overlay:      overlay,
		writer:       w,
		inputStream:  input.StartStream(r),
		lastInput:    time.Now(),
		termSizeFunc: termSizeFunc,
		clock:        loop.NewClock(),
		saver:        progress.NewSaver(store, logger),
		sink:         sink,
		styles:       newStyles(w, opts.Profile),
		rng:          rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		logger:       logger,
	}
	s.sink.Configure(audioSettings(s.state.Record.Settings))
	return s, nil
}

// ID returns the session id used in logs.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Run starts the frame loop and the background saver. Blocks until the
// player quits, the server shuts the session down, or ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return s.frameLoop(gctx)
	})
	g.Go(func() error {
		return s.saver.Run(gctx)
	})
	err := g.Wait()

	s.server.UnregisterClient(s.handle.ID)
	s.logger.Info("session ended",
		"money", s.state.Record.Money,
		"unlocked", s.state.Record.MaxUnlockedLevel)
	return err
}

func (s *Session) frameLoop(ctx context.Context) error {
	draw.HideCursor(s.writer)
	defer draw.ShowCursor(s.writer)
	draw.ClearScreen(s.writer)

	for s.state.Running {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		s.state.dt = s.clock.Tick()
		s.state.delta = time.Duration(s.state.dt * float64(config.TargetFrameTime))

		s.processInput()
		s.processServerEvents()
		s.updateScreen()
		s.update()

		if err := s.drawFrame(); err != nil {
			return err
		}
		s.clock.Wait()
	}

	if s.state.Match != nil && !s.state.Match.Over() {
		s.state.Record.AddPlayTime(s.state.Match.PlayTime())
	}
	s.saver.Save(s.state.Record)

	draw.ClearScreen(s.writer)
	return nil
}

// processInput reads input and tracks inactivity.
func (s *Session) processInput() {
	s.state.Input = input.ReadInput(s.inputStream)

	if s.state.Input.Any() {
		s.lastInput = time.Now()
		s.state.isInactive = false
	} else if time.Since(s.lastInput).Seconds() > config.InactivityDisconnectUser {
		s.logger.Info("disconnecting inactive session")
		s.state.Running = false
	} else if time.Since(s.lastInput).Seconds() > config.InactivityWarnUser {
		s.state.isInactive = true
	}

	if s.state.Input.Quit {
		s.state.Running = false
	}
}

// processServerEvents handles events from the server.
func (s *Session) processServerEvents() {
	for {
		select {
		case event, ok := <-s.handle.EventsCh:
			if !ok {
				// Server closed the channel
				s.state.Running = false
				return
			}
			s.handleServerEvent(event)
		default:
			return
		}
	}
}

func (s *Session) handleServerEvent(event server.ClientEvent) {
	switch event.Type {
	case server.EventBossDefeated:
		s.notify(fmt.Sprintf("%s defeated boss %d", event.Username, event.Level))
	case server.EventServerShutdown:
		s.enterShutdown()
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area.
func (s *Session) updateScreen() {
	termWidth, termHeight, err := draw.TerminalSizeRawWith(s.termSizeFunc)
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != s.canvas.TerminalWidth() || renderHeight != s.canvas.TerminalHeight() ||
		offsetCol != s.canvas.OffsetCol() || offsetRow != s.canvas.OffsetRow() {
		draw.ClearScreen(s.writer)
		s.canvas.ForceRedraw()
	}

	s.canvas.Resize(renderWidth, renderHeight)
	s.canvas.SetOffset(offsetCol, offsetRow)
	s.overlay.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

func audioSettings(s progress.Settings) audio.Settings {
	return audio.Settings{
		Enabled: s.Sound,
		Master:  s.MasterVolume,
		Music:   s.MusicVolume,
		SFX:     s.SFXVolume,
	}
}
