// Package server tracks the connected sessions: it admits and releases them,
// keeps the shared leaderboard of boss kills, and broadcasts shutdown.
// Every session runs its own private match; nothing else is shared.
package server

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/mrmissile/internal/loop/config"
)

// ErrServerFull is returned by RegisterClient when no session slot is free.
var ErrServerFull = errors.New("server: session limit reached")

// GameServer is the interface clients use to talk to the lobby.
type GameServer interface {
	RegisterClient(username string) (*ClientHandle, error)
	UnregisterClient(clientID int)
	ReportVictory(clientID int, level, score int)
	GetSnapshot() *Snapshot
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a session's registration with the server.
type ClientHandle struct {
	ID       int
	Username string
	EventsCh chan ClientEvent // Events sent to the session
}

// ClientEvent is sent from the server to a session.
type ClientEvent struct {
	Type     ClientEventType
	Username string // Who scored, for EventBossDefeated
	Level    int
	Score    int
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventBossDefeated ClientEventType = iota // Another player beat a boss
	EventServerShutdown
)

// TopScoreEntry is a single leaderboard row: the furthest boss a player has
// beaten and the score of that fight.
type TopScoreEntry struct {
	Username string
	Level    int
	Score    int
}

// Snapshot is an immutable view of the lobby for rendering.
type Snapshot struct {
	Players   int
	TopScores []TopScoreEntry
}

type victory struct {
	clientID int
	level    int
	score    int
}

// Server admits sessions and maintains the leaderboard.
type Server struct {
	snapshot     atomic.Pointer[Snapshot]
	clients      map[int]*ClientHandle
	nextClientID int
	admitted     int // Registered and not yet released, including pending
	maxClients   int
	registerCh   chan *ClientHandle
	unregisterCh chan int
	victoryCh    chan victory
	topScores    []TopScoreEntry
	mu           sync.RWMutex
	logger       *log.Logger
}

// NewServer creates a server admitting at most maxClients sessions.
// maxClients <= 0 means config.DefaultMaxSessions.
func NewServer(maxClients int, logger *log.Logger) *Server {
	if maxClients <= 0 {
		maxClients = config.DefaultMaxSessions
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		maxClients:   maxClients,
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
		victoryCh:    make(chan victory, 64),
		logger:       logger,
	}
	s.snapshot.Store(&Snapshot{})
	return s
}

// Run processes registrations and victories. Blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(config.LobbyTickTime)
	defer ticker.Stop()

	for {
		s.processRegistrations()
		s.processVictories()
		s.createSnapshot()

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Shutdown notifies all connected sessions and waits for them to disconnect,
// up to the given timeout. The caller should cancel the server context after
// Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	s.broadcast(ClientEvent{Type: EventServerShutdown})

	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			s.logger.Warn("shutdown timed out", "remaining", s.Admitted())
			return
		case <-ticker.C:
			if s.Admitted() == 0 {
				return
			}
		}
	}
}

// RegisterClient admits a new session.
func (s *Server) RegisterClient(username string) (*ClientHandle, error) {
	s.mu.Lock()
	if s.admitted >= s.maxClients {
		s.mu.Unlock()
		return nil, ErrServerFull
	}
	s.admitted++
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	handle := &ClientHandle{
		ID:       id,
		Username: username,
		EventsCh: make(chan ClientEvent, 16),
	}
	s.registerCh <- handle
	return handle, nil
}

// UnregisterClient releases a session slot. The handle's event channel is
// closed once the server processes the request.
func (s *Server) UnregisterClient(clientID int) {
	s.unregisterCh <- clientID
}

// ReportVictory records a boss kill for the leaderboard and tells the other
// sessions about it.
func (s *Server) ReportVictory(clientID int, level, score int) {
	select {
	case s.victoryCh <- victory{clientID: clientID, level: level, score: score}:
	default:
		s.logger.Warn("victory dropped", "client", clientID, "level", level)
	}
}

// GetSnapshot returns the latest lobby snapshot.
func (s *Server) GetSnapshot() *Snapshot {
	return s.snapshot.Load()
}

// Admitted returns the number of sessions holding a slot.
func (s *Server) Admitted() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.admitted
}

func (s *Server) broadcast(ev ClientEvent) {
	s.broadcastExcept(ev, 0)
}

func (s *Server) broadcastExcept(ev ClientEvent, skipID int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, handle := range s.clients {
		if id == skipID {
			continue
		}
		select {
		case handle.EventsCh <- ev:
		default:
		}
	}
}

// processRegistrations handles pending client registrations/unregistrations.
func (s *Server) processRegistrations() {
	for {
		select {
		case handle := <-s.registerCh:
			s.mu.Lock()
			s.clients[handle.ID] = handle
			s.mu.Unlock()
			s.logger.Debug("session registered", "client", handle.ID, "user", handle.Username)
		case clientID := <-s.unregisterCh:
			s.mu.Lock()
			if handle, ok := s.clients[clientID]; ok {
				close(handle.EventsCh)
				delete(s.clients, clientID)
				s.admitted--
			}
			s.mu.Unlock()
			s.logger.Debug("session released", "client", clientID)
		default:
			return
		}
	}
}

// processVictories folds reported victories into the leaderboard.
func (s *Server) processVictories() {
	for {
		select {
		case v := <-s.victoryCh:
			s.mu.RLock()
			handle, ok := s.clients[v.clientID]
			s.mu.RUnlock()
			if !ok {
				continue
			}
			entry := TopScoreEntry{Username: handle.Username, Level: v.level, Score: v.score}
			s.topScores = insertTopScore(s.topScores, entry, config.LeaderboardSize)
			s.broadcastExcept(ClientEvent{
				Type:     EventBossDefeated,
				Username: handle.Username,
				Level:    v.level,
				Score:    v.score,
			}, v.clientID)
		default:
			return
		}
	}
}

// createSnapshot publishes the lobby state for readers.
func (s *Server) createSnapshot() {
	s.mu.RLock()
	players := len(s.clients)
	s.mu.RUnlock()

	s.snapshot.Store(&Snapshot{
		Players:   players,
		TopScores: slices.Clone(s.topScores),
	})
}

// insertTopScore keeps one row per username, the best by level then score,
// sorted best first and truncated to n rows.
func insertTopScore(entries []TopScoreEntry, e TopScoreEntry, n int) []TopScoreEntry {
	i := slices.IndexFunc(entries, func(x TopScoreEntry) bool { return x.Username == e.Username })
	if i >= 0 {
		if compareEntries(e, entries[i]) >= 0 {
			return entries
		}
		entries = slices.Delete(entries, i, i+1)
	}
	entries = append(entries, e)
	slices.SortStableFunc(entries, compareEntries)
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// compareEntries orders better entries first.
func compareEntries(a, b TopScoreEntry) int {
	if c := cmp.Compare(b.Level, a.Level); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	return cmp.Compare(a.Username, b.Username)
}
