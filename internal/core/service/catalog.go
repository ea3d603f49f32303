package service

import (
	"fmt"

	"github.com/rl1809/food-delivery/internal/core/domain"
)

// NewFood lists a food owned by caller and returns its id. Ids start at 0
// and are never reused. A zero price is allowed.
func (s *DeliveryService) NewFood(caller domain.Identity, name string, price domain.Amount) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event := s.newEvent(domain.EventFoodListed, caller)
	event.Name = name
	event.Amount = price
	if err := s.commit(&event); err != nil {
		return 0, err
	}
	return event.FoodID, nil
}

func (s *DeliveryService) Food(foodID uint64) (domain.Food, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	food, ok := s.food(foodID)
	if !ok {
		return domain.Food{}, fmt.Errorf("%w: food %d", ErrNotFound, foodID)
	}
	return food, nil
}

func (s *DeliveryService) food(foodID uint64) (domain.Food, bool) {
	if foodID >= uint64(len(s.foods)) {
		return domain.Food{}, false
	}
	return s.foods[foodID], true
}

func (s *DeliveryService) applyFoodListed(event *domain.Event) error {
	if role := s.lookup(event.Actor).Role; role != domain.RoleRestaurant {
		return fmt.Errorf("%w: %s is %s, not a restaurant", ErrNotAuthorized, event.Actor, role)
	}
	if err := validName(event.Name); err != nil {
		return err
	}

	event.FoodID = uint64(len(s.foods))
	s.foods = append(s.foods, domain.Food{
		ID:        event.FoodID,
		Owner:     event.Actor,
		Name:      event.Name,
		Price:     event.Amount,
		CreatedAt: event.CreatedAt,
	})
	return nil
}
