package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"

	"github.com/rl1809/food-delivery/internal/adapter/storage"
	"github.com/rl1809/food-delivery/internal/core/domain"
	"github.com/rl1809/food-delivery/internal/core/service"
	"github.com/rl1809/food-delivery/internal/port"
)

const (
	owner          = domain.Identity("admin")
	restaurant     = domain.Identity("stress-kitchen")
	customer       = domain.Identity("hungry-customer")
	initialBalance = 20
	totalRequests  = 50
	queueSize      = 1000
)

func main() {
	ctx := context.Background()

	// Redis is optional; with REDIS_ADDR set every order is sent twice under
	// the same request id.
	var cache port.CacheRepository
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		defer rdb.Close()
		cache = storage.NewRedisAdapter(rdb, storage.DefaultIdempotencyTTL)
	}

	deliveryService := service.NewDeliveryService(owner, cache, queueSize)
	defer deliveryService.Close()

	// Drain the journal queue in background
	go func() {
		for range deliveryService.GetEventQueue() {
		}
	}()

	must(deliveryService.RegisterRestaurant(restaurant, "Stress Kitchen"))
	foodID, err := deliveryService.NewFood(restaurant, "pizza", 1)
	must(err)
	must(deliveryService.RegisterCustomer(customer))
	must(deliveryService.Deposit(customer, initialBalance))

	run := time.Now().UnixNano()
	var (
		successCount   atomic.Int32
		rejectedCount  atomic.Int32
		duplicateCount atomic.Int32
		orderIDs       sync.Map
	)

	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < totalRequests; i++ {
		attempts := 1
		if cache != nil {
			attempts = 2
		}
		requestID := fmt.Sprintf("stress-%d-%d", run, i)
		for a := 0; a < attempts; a++ {
			wg.Add(1)
			go func() {
				defer wg.Done()

				err := deliveryService.Idempotent(ctx, customer, requestID, func() error {
					orderID, err := deliveryService.NewOrder(customer, foodID)
					if err == nil {
						orderIDs.Store(orderID, struct{}{})
					}
					return err
				})
				switch {
				case err == nil:
					successCount.Add(1)
				case errors.Is(err, service.ErrDuplicateRequest):
					duplicateCount.Add(1)
				default:
					rejectedCount.Add(1)
				}
			}()
		}
	}
	wg.Wait()

	// Settle every placed order concurrently
	orderIDs.Range(func(key, _ any) bool {
		wg.Add(1)
		go func(orderID uint64) {
			defer wg.Done()
			must(deliveryService.OrderPrepared(restaurant, orderID))
			must(deliveryService.FinishOrder(customer, orderID))
		}(key.(uint64))
		return true
	})
	wg.Wait()
	elapsed := time.Since(start)

	success := successCount.Load()
	rejected := rejectedCount.Load()

	fmt.Println("========== STRESS TEST RESULTS ==========")
	fmt.Printf("Initial Balance:  %d\n", initialBalance)
	fmt.Printf("Total Requests:   %d\n", totalRequests)
	fmt.Printf("Successful:       %d\n", success)
	fmt.Printf("Rejected:         %d\n", rejected)
	fmt.Printf("Duplicates:       %d\n", duplicateCount.Load())
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("==========================================")

	// A rejected order releases its request id, so with Redis its twin may be
	// rejected too; only the success count is exact.
	if success == initialBalance {
		fmt.Printf("PASS: Exactly %d orders succeeded\n", initialBalance)
	} else {
		fmt.Printf("FAIL: Expected %d successful orders, got %d\n", initialBalance, success)
	}

	balances := lo.Map([]domain.Identity{restaurant, customer}, func(id domain.Identity, _ int) domain.Amount {
		return deliveryService.Balance(id)
	})
	held := lo.Sum(balances) + deliveryService.EscrowTotal()
	fmt.Printf("Restaurant Balance: %d\n", balances[0])
	fmt.Printf("Customer Balance:   %d\n", balances[1])

	if held == deliveryService.TotalSupply() && balances[0] == initialBalance && balances[1] == 0 {
		fmt.Println("PASS: Ledger conserved, escrow fully settled")
	} else {
		fmt.Printf("FAIL: supply %d, held %d, escrow %d\n",
			deliveryService.TotalSupply(), held, deliveryService.EscrowTotal())
	}
}

func must(err error) {
	if err != nil {
		log.Fatalf("stress setup failed: %v", err)
	}
}
