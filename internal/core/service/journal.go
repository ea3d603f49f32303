package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rl1809/food-delivery/internal/core/domain"
	"github.com/rl1809/food-delivery/internal/port"
)

const (
	DefaultJournalBatchSize = 100

	appendTimeout     = 5 * time.Second
	defaultBackoff    = 100 * time.Millisecond
	defaultMaxBackoff = 5 * time.Second
)

// JournalWriter is the single consumer of the event queue. Events leave the
// queue in seq order and are stored in batches, each batch atomically, so
// the stored journal is always a gap-free prefix of the committed history.
type JournalWriter struct {
	db         port.DatabaseRepository
	log        *zap.Logger
	batchSize  int
	backoff    time.Duration
	maxBackoff time.Duration
}

func NewJournalWriter(db port.DatabaseRepository, log *zap.Logger, batchSize int) *JournalWriter {
	if batchSize <= 0 {
		batchSize = DefaultJournalBatchSize
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &JournalWriter{
		db:         db,
		log:        log,
		batchSize:  batchSize,
		backoff:    defaultBackoff,
		maxBackoff: defaultMaxBackoff,
	}
}

// Run stores events from queue until the queue is closed. A failed batch is
// retried until it is stored; nothing behind it is written meanwhile. When
// ctx is canceled during retries Run gives up and returns the error, losing
// only the tail that starts at the failed batch. The service then rejects
// new mutations once the queue fills up.
func (w *JournalWriter) Run(ctx context.Context, queue <-chan domain.Event) error {
	batch := make([]domain.Event, 0, w.batchSize)
	for event := range queue {
		batch = append(batch[:0], event)
	fill:
		for len(batch) < w.batchSize {
			select {
			case next, ok := <-queue:
				if !ok {
					break fill
				}
				batch = append(batch, next)
			default:
				break fill
			}
		}

		if err := w.flush(ctx, batch); err != nil {
			w.log.Error("CRITICAL: journal writer stopped, events not persisted",
				zap.Uint64("from_seq", batch[0].Seq),
				zap.Int("queued", len(queue)),
				zap.Error(err),
			)
			return err
		}
	}
	return nil
}

func (w *JournalWriter) flush(ctx context.Context, batch []domain.Event) error {
	first, last := batch[0].Seq, batch[len(batch)-1].Seq
	delay := w.backoff
	for attempt := 1; ; attempt++ {
		appendCtx, cancel := context.WithTimeout(ctx, appendTimeout)
		err := w.db.AppendEvents(appendCtx, batch)
		cancel()
		if err == nil {
			w.log.Debug("journaled events", zap.Uint64("from_seq", first), zap.Uint64("to_seq", last))
			return nil
		}

		w.log.Warn("journal append failed, retrying",
			zap.Uint64("from_seq", first),
			zap.Uint64("to_seq", last),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", delay),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return fmt.Errorf("journal seq %d-%d: %w (last error: %v)", first, last, ctx.Err(), err)
		case <-time.After(delay):
		}
		delay = min(delay*2, w.maxBackoff)
	}
}
