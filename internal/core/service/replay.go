package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/rl1809/food-delivery/internal/core/domain"
)

// Replay rebuilds state from journaled events, which must continue the
// current sequence without gaps. Every event goes through the same checks as
// the live operation that produced it; replayed events are not journaled
// again.
func (s *DeliveryService) Replay(events []domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, recorded := range events {
		if recorded.Seq != s.seq+1 {
			return fmt.Errorf("%w: expected seq %d, got %d", ErrCorruptJournal, s.seq+1, recorded.Seq)
		}
		if recorded.Actor == "" {
			return fmt.Errorf("%w: seq %d has no actor", ErrCorruptJournal, recorded.Seq)
		}

		event := recorded
		if err := s.apply(&event); err != nil {
			return fmt.Errorf("%w: seq %d: %v", ErrCorruptJournal, recorded.Seq, err)
		}
		if !sameEffect(event, recorded) {
			return fmt.Errorf("%w: seq %d does not match rebuilt state", ErrCorruptJournal, recorded.Seq)
		}
		s.seq = recorded.Seq
	}

	s.log.Info("journal replayed",
		zap.Int("events", len(events)),
		zap.Uint64("seq", s.seq),
	)
	return nil
}

func (s *DeliveryService) Seq() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.seq
}

func sameEffect(a, b domain.Event) bool {
	return a.Kind == b.Kind &&
		a.Actor == b.Actor &&
		a.Target == b.Target &&
		a.Name == b.Name &&
		a.Amount == b.Amount &&
		a.FoodID == b.FoodID &&
		a.OrderID == b.OrderID
}
