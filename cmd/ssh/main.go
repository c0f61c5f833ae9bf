package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/muesli/termenv"
	"golang.org/x/sync/errgroup"

	"github.com/tomz197/mrmissile/internal/config"
	"github.com/tomz197/mrmissile/internal/draw"
	gameconfig "github.com/tomz197/mrmissile/internal/loop/config"
	"github.com/tomz197/mrmissile/internal/loop/server"
	"github.com/tomz197/mrmissile/internal/loop/session"
	"github.com/tomz197/mrmissile/internal/progress"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultSaveDir     = "/app/saves"
	defaultDrainTime   = 15 * time.Second
)

func main() {
	logger := config.NewLogger(os.Stderr, "ssh")
	if err := run(logger); err != nil {
		logger.Fatal("server stopped", "err", err)
	}
}

func run(logger *log.Logger) error {
	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	saveDir := config.GetEnv("SAVE_DIR", defaultSaveDir)
	maxSessions := config.GetEnvInt("MAX_SESSIONS", gameconfig.DefaultMaxSessions)
	drainTime := config.GetEnvDuration("SHUTDOWN_TIMEOUT", defaultDrainTime)
	logger.Info("ssh config", "host", host, "port", port, "hostKey", hostKeyPath, "saveDir", saveDir, "maxSessions", maxSessions, "drain", drainTime)

	// The lobby outlives the signal context so it can drain sessions on shutdown.
	lobbyCtx, cancelLobby := context.WithCancel(context.Background())
	defer cancelLobby()
	lobby := server.NewServer(maxSessions, logger)
	go lobby.Run(lobbyCtx)

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			gameMiddleware(lobby, saveDir, logger),
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")

		// Notify players and wait for them to disconnect
		lobby.Shutdown(drainTime)
		cancelLobby()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// gameMiddleware runs one game session per SSH session.
func gameMiddleware(lobby *server.Server, saveDir string, logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			store := progress.NewFileStore(filepath.Join(saveDir, progress.FileName(sess.User())), logger)
			c, err := session.New(lobby, bufio.NewReader(sess), sess, session.Options{
				TermSizeFunc: sizeTracker.getSize,
				Username:     sess.User(),
				Store:        store,
				Profile:      termenv.ANSI256,
				Logger:       logger,
			})
			if errors.Is(err, server.ErrServerFull) {
				fmt.Fprintln(sess, "The server is full. Please try again in a few minutes.")
				return
			}
			if err != nil {
				logger.Error("failed to start session", "user", sess.User(), "err", err)
				return
			}

			logger.Info("new game session", "session", c.ID(), "user", sess.User(),
				"term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)
			if err := c.Run(sess.Context()); err != nil {
				logger.Error("game error", "session", c.ID(), "err", err)
			}
			next(sess)
		}
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
