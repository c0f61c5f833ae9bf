package server

import (
	"context"
	"errors"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestRegisterLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := NewServer(2, nil)
	go s.Run(ctx)

	a, err := s.RegisterClient("a")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.RegisterClient("b"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.RegisterClient("c"); !errors.Is(err, ErrServerFull) {
		t.Fatalf("third register err = %v, want ErrServerFull", err)
	}

	s.UnregisterClient(a.ID)
	waitFor(t, func() bool { return s.Admitted() == 1 })
	if _, err := s.RegisterClient("c"); err != nil {
		t.Fatalf("register after release: %v", err)
	}
	waitFor(t, func() bool { return s.GetSnapshot().Players == 2 })
}

func TestUnregisterClosesEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := NewServer(0, nil)
	go s.Run(ctx)

	h, _ := s.RegisterClient("a")
	s.UnregisterClient(h.ID)
	select {
	case _, ok := <-h.EventsCh:
		if ok {
			t.Fatal("unexpected event")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("events channel not closed")
	}
}

func TestShutdownBroadcasts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := NewServer(0, nil)
	go s.Run(ctx)

	h, _ := s.RegisterClient("a")
	waitFor(t, func() bool { return s.GetSnapshot().Players == 1 })

	done := make(chan struct{})
	go func() {
		s.Shutdown(5 * time.Second)
		close(done)
	}()

	ev := <-h.EventsCh
	if ev.Type != EventServerShutdown {
		t.Fatalf("event = %v, want EventServerShutdown", ev.Type)
	}
	s.UnregisterClient(h.ID)

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("Shutdown did not return after the last session left")
	}
}

func TestReportVictory(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := NewServer(0, nil)
	go s.Run(ctx)

	a, _ := s.RegisterClient("alice")
	b, _ := s.RegisterClient("bob")
	waitFor(t, func() bool { return s.GetSnapshot().Players == 2 })

	s.ReportVictory(a.ID, 3, 1200)
	waitFor(t, func() bool { return len(s.GetSnapshot().TopScores) == 1 })

	got := s.GetSnapshot().TopScores[0]
	want := TopScoreEntry{Username: "alice", Level: 3, Score: 1200}
	if got != want {
		t.Fatalf("top = %+v, want %+v", got, want)
	}

	ev := <-b.EventsCh
	if ev.Type != EventBossDefeated || ev.Username != "alice" || ev.Level != 3 {
		t.Fatalf("bob got %+v", ev)
	}
	select {
	case ev := <-a.EventsCh:
		t.Fatalf("reporter got its own event %+v", ev)
	default:
	}
}

func TestInsertTopScore(t *testing.T) {
	var entries []TopScoreEntry
	entries = insertTopScore(entries, TopScoreEntry{"a", 2, 500}, 3)
	entries = insertTopScore(entries, TopScoreEntry{"b", 5, 100}, 3)
	entries = insertTopScore(entries, TopScoreEntry{"c", 2, 900}, 3)
	entries = insertTopScore(entries, TopScoreEntry{"a", 1, 9999}, 3) // worse level, ignored
	entries = insertTopScore(entries, TopScoreEntry{"d", 1, 10}, 3)   // falls off

	want := []TopScoreEntry{{"b", 5, 100}, {"c", 2, 900}, {"a", 2, 500}}
	if len(entries) != len(want) {
		t.Fatalf("len = %d, want %d: %+v", len(entries), len(want), entries)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entries[%d] = %+v, want %+v", i, entries[i], want[i])
		}
	}

	entries = insertTopScore(entries, TopScoreEntry{"a", 6, 50}, 3)
	if entries[0].Username != "a" || len(entries) != 3 {
		t.Fatalf("improved entry not promoted: %+v", entries)
	}
}
