package service

import (
	"fmt"

	"github.com/rl1809/food-delivery/internal/core/domain"
)

func (s *DeliveryService) RegisterRestaurant(caller domain.Identity, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	event := s.newEvent(domain.EventRestaurantRegistered, caller)
	event.Name = name
	return s.commit(&event)
}

func (s *DeliveryService) RegisterCustomer(caller domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	event := s.newEvent(domain.EventCustomerRegistered, caller)
	return s.commit(&event)
}

// UserType returns RoleNone for identities that never registered.
func (s *DeliveryService) UserType(caller domain.Identity) domain.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lookup(caller).Role
}

// User returns the full record of id, including restaurant name and balance.
func (s *DeliveryService) User(id domain.Identity) domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lookup(id)
}

func (s *DeliveryService) applyRegistration(event *domain.Event, role domain.Role) error {
	if err := validName(event.Name); err != nil {
		return err
	}
	if current := s.lookup(event.Actor).Role; current != domain.RoleNone {
		return fmt.Errorf("%w: %s is already a %s", ErrRoleAlreadyAssigned, event.Actor, current)
	}

	u := s.account(event.Actor)
	u.Role = role
	if role == domain.RoleRestaurant {
		u.Name = event.Name
	}
	return nil
}
