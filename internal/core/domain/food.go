package domain

import "time"

type Food struct {
	ID        uint64
	Owner     Identity
	Name      string
	Price     Amount
	CreatedAt time.Time
}
