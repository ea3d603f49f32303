package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rl1809/food-delivery/internal/core/domain"
)

// Idempotent runs op at most once per (caller, requestID). An empty
// requestID or a service without a cache runs op unguarded. When op fails
// the key is released so the request can be retried.
func (s *DeliveryService) Idempotent(ctx context.Context, caller domain.Identity, requestID string, op func() error) error {
	if requestID == "" || s.cache == nil {
		return op()
	}

	idempotencyKey := fmt.Sprintf("idempotency:%s:%s", caller, requestID)

	ok, err := s.cache.SetIdempotency(ctx, idempotencyKey)
	if err != nil {
		return fmt.Errorf("idempotency check failed: %w", err)
	}
	if !ok {
		return ErrDuplicateRequest
	}

	if err := op(); err != nil {
		if releaseErr := s.cache.ReleaseIdempotency(ctx, idempotencyKey); releaseErr != nil {
			s.log.Warn("failed to release idempotency key",
				zap.String("key", idempotencyKey),
				zap.Error(releaseErr),
			)
		}
		return err
	}
	return nil
}
