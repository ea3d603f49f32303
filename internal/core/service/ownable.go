package service

import (
	"fmt"

	"github.com/rl1809/food-delivery/internal/core/domain"
)

func (s *DeliveryService) Owner() domain.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.owner
}

// TransferOwnership hands administration to newOwner. Only the current owner
// may call it.
func (s *DeliveryService) TransferOwnership(caller, newOwner domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	event := s.newEvent(domain.EventOwnershipTransferred, caller)
	event.Target = newOwner
	return s.commit(&event)
}

func (s *DeliveryService) applyOwnershipTransferred(event *domain.Event) error {
	if event.Actor != s.owner {
		return fmt.Errorf("%w: %s is not the owner", ErrNotAuthorized, event.Actor)
	}
	if err := validIdentity(event.Target); err != nil {
		return fmt.Errorf("new owner: %w", err)
	}

	s.owner = event.Target
	return nil
}
