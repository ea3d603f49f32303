package service

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/rl1809/food-delivery/internal/core/domain"
)

// NewOrder escrows the price of foodID from caller and opens an order
// against the food's restaurant.
func (s *DeliveryService) NewOrder(caller domain.Identity, foodID uint64) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event := s.newEvent(domain.EventOrderPlaced, caller)
	event.FoodID = foodID
	if err := s.commit(&event); err != nil {
		return 0, err
	}
	return event.OrderID, nil
}

func (s *DeliveryService) OrderPrepared(caller domain.Identity, orderID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	event := s.newEvent(domain.EventOrderPrepared, caller)
	event.OrderID = orderID
	return s.commit(&event)
}

// FinishOrder closes a prepared order and releases its escrow to the
// restaurant.
func (s *DeliveryService) FinishOrder(caller domain.Identity, orderID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	event := s.newEvent(domain.EventOrderFinished, caller)
	event.OrderID = orderID
	return s.commit(&event)
}

func (s *DeliveryService) Order(orderID uint64) (domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.order(orderID)
	if !ok {
		return domain.Order{}, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
	}
	return *order, nil
}

func (s *DeliveryService) OrderStatus(orderID uint64) (domain.OrderStatus, error) {
	order, err := s.Order(orderID)
	if err != nil {
		return 0, err
	}
	return order.Status, nil
}

func (s *DeliveryService) OrderRestaurant(orderID uint64) (domain.Identity, error) {
	order, err := s.Order(orderID)
	if err != nil {
		return "", err
	}
	return order.Restaurant, nil
}

func (s *DeliveryService) OrderCustomer(orderID uint64) (domain.Identity, error) {
	order, err := s.Order(orderID)
	if err != nil {
		return "", err
	}
	return order.Customer, nil
}

// OrdersOf lists the orders id takes part in, as customer or restaurant.
func (s *DeliveryService) OrdersOf(id domain.Identity) []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return lo.Filter(s.orders, func(o domain.Order, _ int) bool {
		return o.Customer == id || o.Restaurant == id
	})
}

func (s *DeliveryService) order(orderID uint64) (*domain.Order, bool) {
	if orderID >= uint64(len(s.orders)) {
		return nil, false
	}
	return &s.orders[orderID], true
}

func (s *DeliveryService) applyOrderPlaced(event *domain.Event) error {
	if role := s.lookup(event.Actor).Role; role != domain.RoleCustomer {
		return fmt.Errorf("%w: %s is %s, not a customer", ErrNotAuthorized, event.Actor, role)
	}
	food, ok := s.food(event.FoodID)
	if !ok {
		return fmt.Errorf("%w: food %d", ErrNotFound, event.FoodID)
	}
	if err := s.escrowFunds(event.Actor, food.Price); err != nil {
		return err
	}

	event.OrderID = uint64(len(s.orders))
	event.Target = food.Owner
	event.Amount = food.Price
	s.orders = append(s.orders, domain.Order{
		ID:             event.OrderID,
		Customer:       event.Actor,
		Restaurant:     food.Owner,
		FoodID:         food.ID,
		EscrowedAmount: food.Price,
		Status:         domain.OrderStatusCreated,
		CreatedAt:      event.CreatedAt,
		UpdatedAt:      event.CreatedAt,
	})
	return nil
}

func (s *DeliveryService) applyOrderPrepared(event *domain.Event) error {
	order, err := s.transition(event, domain.OrderStatusCreated, func(o *domain.Order) domain.Identity {
		return o.Restaurant
	})
	if err != nil {
		return err
	}

	order.Status = domain.OrderStatusPrepared
	order.UpdatedAt = event.CreatedAt
	return nil
}

func (s *DeliveryService) applyOrderFinished(event *domain.Event) error {
	order, err := s.transition(event, domain.OrderStatusPrepared, func(o *domain.Order) domain.Identity {
		return o.Customer
	})
	if err != nil {
		return err
	}

	order.Status = domain.OrderStatusFinished
	order.UpdatedAt = event.CreatedAt
	s.release(order.Restaurant, order.EscrowedAmount)
	event.Target = order.Restaurant
	event.Amount = order.EscrowedAmount
	return nil
}

// transition checks that event.OrderID exists, that the actor is the
// participant allowed to move it, and that it currently sits in from.
func (s *DeliveryService) transition(event *domain.Event, from domain.OrderStatus, participant func(*domain.Order) domain.Identity) (*domain.Order, error) {
	order, ok := s.order(event.OrderID)
	if !ok {
		return nil, fmt.Errorf("%w: order %d", ErrNotFound, event.OrderID)
	}
	if participant(order) != event.Actor {
		return nil, fmt.Errorf("%w: %s may not move order %d", ErrNotAuthorized, event.Actor, order.ID)
	}
	if order.Status != from {
		return nil, fmt.Errorf("%w: order %d is %s, expected %s", ErrInvalidTransition, order.ID, order.Status, from)
	}
	return order, nil
}
