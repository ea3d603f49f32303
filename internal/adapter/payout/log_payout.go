package payout

import (
	"context"

	"go.uber.org/zap"

	"github.com/rl1809/food-delivery/internal/core/domain"
)

// LogPayout records withdrawals for an operator to settle off-ledger. It is
// the payout used when no payment provider is wired in.
type LogPayout struct {
	log *zap.Logger
}

func NewLogPayout(log *zap.Logger) *LogPayout {
	return &LogPayout{log: log}
}

func (p *LogPayout) Transfer(ctx context.Context, to domain.Identity, amount domain.Amount) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.log.Info("payout issued",
		zap.String("to", string(to)),
		zap.Uint64("amount", uint64(amount)),
	)
	return nil
}
