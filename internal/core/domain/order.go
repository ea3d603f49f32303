package domain

import "time"

type OrderStatus int

const (
	OrderStatusCreated  OrderStatus = 0
	OrderStatusPrepared OrderStatus = 1
	OrderStatusFinished OrderStatus = 2
)

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusCreated:
		return "created"
	case OrderStatusPrepared:
		return "prepared"
	case OrderStatusFinished:
		return "finished"
	default:
		return "unknown"
	}
}

type Order struct {
	ID             uint64
	Customer       Identity
	Restaurant     Identity
	FoodID         uint64
	EscrowedAmount Amount
	Status         OrderStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Outstanding reports whether the order still holds escrowed funds.
func (o Order) Outstanding() bool {
	return o.Status != OrderStatusFinished
}
