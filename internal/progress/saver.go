package progress

import (
	"context"

	"github.com/charmbracelet/log"
)

// Saver writes records in the background so the frame loop never blocks on
// disk. Only the most recent pending record is kept.
type Saver struct {
	store  Store
	ch     chan Record
	logger *log.Logger
}

// NewSaver creates a saver writing to store. Call Run to start it.
func NewSaver(store Store, logger *log.Logger) *Saver {
	if logger == nil {
		logger = log.Default()
	}
	return &Saver{store: store, ch: make(chan Record, 1), logger: logger}
}

// Save queues r, replacing any record not yet written. It never blocks.
func (s *Saver) Save(r Record) {
	r = r.Clone()
	for {
		select {
		case s.ch <- r:
			return
		default:
		}
		select {
		case <-s.ch:
		default:
		}
	}
}

// Run writes queued records until ctx is done, then flushes the last one.
// Write failures are logged and otherwise ignored.
func (s *Saver) Run(ctx context.Context) error {
	for {
		select {
		case r := <-s.ch:
			s.write(r)
		case <-ctx.Done():
			select {
			case r := <-s.ch:
				s.write(r)
			default:
			}
			return nil
		}
	}
}

func (s *Saver) write(r Record) {
	if err := s.store.Save(r); err != nil {
		s.logger.Warn("failed to save progress", "err", err)
	}
}
