package port

import (
	"context"

	"github.com/rl1809/food-delivery/internal/core/domain"
)

type DatabaseRepository interface {
	// AppendEvents persists a batch of journal events in seq order, all or
	// nothing; appending an existing seq is a no-op
	AppendEvents(ctx context.Context, events []domain.Event) error

	// LoadEvents returns every persisted event ordered by seq
	LoadEvents(ctx context.Context) ([]domain.Event, error)
}
