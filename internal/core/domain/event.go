package domain

import (
	"time"

	"github.com/google/uuid"
)

type EventKind string

const (
	EventRestaurantRegistered EventKind = "restaurant_registered"
	EventCustomerRegistered   EventKind = "customer_registered"
	EventDeposited            EventKind = "deposited"
	EventWithdrawn            EventKind = "withdrawn"
	EventFoodListed           EventKind = "food_listed"
	EventOrderPlaced          EventKind = "order_placed"
	EventOrderPrepared        EventKind = "order_prepared"
	EventOrderFinished        EventKind = "order_finished"
	EventOwnershipTransferred EventKind = "ownership_transferred"
)

// Event is the journal record of one committed mutation. Fields not used by
// a kind are left zero.
type Event struct {
	ID        uuid.UUID
	Seq       uint64
	Kind      EventKind
	Actor     Identity
	Target    Identity
	Name      string
	Amount    Amount
	FoodID    uint64
	OrderID   uint64
	CreatedAt time.Time
}
