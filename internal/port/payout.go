package port

import (
	"context"

	"github.com/rl1809/food-delivery/internal/core/domain"
)

type Payout interface {
	// Transfer hands withdrawn funds back to their owner outside the ledger
	Transfer(ctx context.Context, to domain.Identity, amount domain.Amount) error
}
