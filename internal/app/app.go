package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/rl1809/food-delivery/internal/adapter/handler"
	"github.com/rl1809/food-delivery/internal/adapter/payout"
	"github.com/rl1809/food-delivery/internal/adapter/storage"
	"github.com/rl1809/food-delivery/internal/config"
	"github.com/rl1809/food-delivery/internal/core/domain"
	"github.com/rl1809/food-delivery/internal/core/service"
	"github.com/rl1809/food-delivery/internal/port"
)

const shutdownTimeout = 5 * time.Second

// App is one running delivery engine with its journal, cache and transports.
type App struct {
	cfg config.Config
	log *zap.Logger

	deliveryService *service.DeliveryService
	db              *sql.DB
	rdb             *redis.Client

	// journalDone yields the writer's result once its queue is closed;
	// stopJournal makes a writer stuck on a dead database give up.
	journalDone chan error
	stopJournal context.CancelFunc

	httpServer *http.Server
	grpcServer *grpc.Server
	closeOnce  sync.Once
}

// New connects the configured backends, restores state from the journal
// and starts the journal writer. Servers are started by Run.
func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	var (
		journal port.DatabaseRepository
		events  []domain.Event
	)
	if cfg.JournalEnabled() {
		db, err := storage.OpenDatabase(ctx, cfg.Database.Driver, cfg.Database.DSN)
		if err != nil {
			return nil, err
		}
		a.db = db

		adapter := storage.NewSQLAdapter(db, cfg.Database.Driver)
		if err := adapter.Migrate(ctx); err != nil {
			a.closeBackends()
			return nil, err
		}
		events, err = adapter.LoadEvents(ctx)
		if err != nil {
			a.closeBackends()
			return nil, err
		}
		journal = adapter
		log.Info("connected to journal", zap.String("driver", cfg.Database.Driver), zap.Int("events", len(events)))
	}

	var cache port.CacheRepository
	if cfg.Redis.Addr != "" {
		a.rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			PoolSize: 100,
		})
		redisAdapter := storage.NewRedisAdapter(a.rdb, cfg.Redis.IdempotencyTTL)
		if err := redisAdapter.Ping(ctx); err != nil {
			a.closeBackends()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		cache = redisAdapter
		log.Info("connected to redis", zap.String("addr", cfg.Redis.Addr))
	}

	queueSize := 0
	if journal != nil {
		queueSize = cfg.Journal.QueueSize
	}
	a.deliveryService = service.NewDeliveryService(domain.Identity(cfg.Owner), cache, queueSize,
		service.WithLogger(log),
		service.WithPayout(payout.NewLogPayout(log)),
	)

	if err := a.deliveryService.Replay(events); err != nil {
		a.deliveryService.Close()
		a.closeBackends()
		return nil, err
	}

	if journal != nil {
		writer := service.NewJournalWriter(journal, log, cfg.Journal.BatchSize)
		journalCtx, stop := context.WithCancel(context.Background())
		a.stopJournal = stop
		a.journalDone = make(chan error, 1)
		go func() {
			a.journalDone <- writer.Run(journalCtx, a.deliveryService.GetEventQueue())
		}()
		log.Info("started journal writer", zap.Int("batch_size", cfg.Journal.BatchSize))
	}

	a.httpServer = &http.Server{
		Handler: handler.NewHTTPHandler(a.deliveryService, log).Router(),
	}
	a.grpcServer = handler.NewGRPCServer(a.deliveryService, log)
	return a, nil
}

func (a *App) Service() *service.DeliveryService {
	return a.deliveryService
}

func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

// Run serves HTTP and gRPC until ctx is canceled or a server fails, then
// shuts everything down.
func (a *App) Run(ctx context.Context) error {
	grpcLis, err := net.Listen("tcp", a.cfg.GRPC.Addr)
	if err != nil {
		a.Close()
		return fmt.Errorf("listen grpc: %w", err)
	}
	httpLis, err := net.Listen("tcp", a.cfg.HTTP.Addr)
	if err != nil {
		grpcLis.Close()
		a.Close()
		return fmt.Errorf("listen http: %w", err)
	}
	return a.Serve(ctx, httpLis, grpcLis)
}

// Serve is Run on listeners the caller already opened.
func (a *App) Serve(ctx context.Context, httpLis, grpcLis net.Listener) error {
	errCh := make(chan error, 2)

	go func() {
		a.log.Info("gRPC server listening", zap.String("addr", grpcLis.Addr().String()))
		if err := a.grpcServer.Serve(grpcLis); err != nil {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()
	go func() {
		a.log.Info("HTTP server listening", zap.String("addr", httpLis.Addr().String()))
		if err := a.httpServer.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	var err error
	select {
	case <-ctx.Done():
		a.log.Info("shutting down")
	case err = <-errCh:
		a.log.Error("server failed", zap.Error(err))
	}
	a.Close()
	return err
}

// Close stops the servers, drains the journal queue and releases the
// backends. It is safe to call more than once.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
			a.log.Warn("HTTP server shutdown", zap.Error(err))
		}
		a.log.Info("HTTP server stopped")

		a.grpcServer.GracefulStop()
		a.log.Info("gRPC server stopped")

		a.deliveryService.Close()
		a.waitJournal()

		a.closeBackends()
		a.log.Info("connections closed")
	})
}

// waitJournal lets the writer flush what is queued. If the database stays
// down past shutdownTimeout the writer is told to give up.
func (a *App) waitJournal() {
	if a.journalDone == nil {
		return
	}
	defer a.stopJournal()

	var err error
	select {
	case err = <-a.journalDone:
	case <-time.After(shutdownTimeout):
		a.log.Warn("journal writer still flushing, giving up")
		a.stopJournal()
		err = <-a.journalDone
	}
	if err != nil {
		a.log.Error("journal writer stopped with unpersisted events", zap.Error(err))
		return
	}
	a.log.Info("journal writer stopped")
}

func (a *App) closeBackends() {
	if a.rdb != nil {
		a.rdb.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}
