package app

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/rl1809/food-delivery/internal/adapter/handler"
	"github.com/rl1809/food-delivery/internal/config"
	"github.com/rl1809/food-delivery/internal/core/domain"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Owner: "admin",
		HTTP:  config.ServerConfig{Addr: "127.0.0.1:0"},
		GRPC:  config.ServerConfig{Addr: "127.0.0.1:0"},
		Database: config.DatabaseConfig{
			Driver: "sqlite3",
			DSN:    filepath.Join(t.TempDir(), "journal.db"),
		},
		Redis:   config.RedisConfig{Addr: miniredis.RunT(t).Addr()},
		Journal: config.JournalConfig{BatchSize: 10, QueueSize: 100},
		Log:     config.LogConfig{Level: "info"},
	}
}

func call(t *testing.T, h http.Handler, method, path, caller, body string) gjson.Result {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(handler.IdentityHeader, caller)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Less(t, rec.Code, 300, rec.Body.String())
	return gjson.Parse(rec.Body.String())
}

func TestApp_RestartRestoresState(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	first, err := New(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	h := first.Handler()

	call(t, h, http.MethodPost, "/api/users/restaurant", "pizza-shop", `{"name":"Pizza Shop"}`)
	call(t, h, http.MethodPost, "/api/foods", "pizza-shop", `{"name":"pizza","price":4}`)
	call(t, h, http.MethodPost, "/api/users/customer", "alice", "")
	call(t, h, http.MethodPost, "/api/balance/deposit", "alice", `{"amount":10}`)
	orderID := call(t, h, http.MethodPost, "/api/orders", "alice", `{"food_id":0}`).Get("id").Uint()
	call(t, h, http.MethodPost, "/api/orders/0/prepared", "pizza-shop", "")
	seq := first.Service().Seq()
	first.Close()

	second, err := New(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	defer second.Close()

	svc := second.Service()
	assert.Equal(t, seq, svc.Seq())
	assert.Equal(t, domain.RoleRestaurant, svc.UserType("pizza-shop"))
	assert.Equal(t, domain.Amount(6), svc.Balance("alice"))
	assert.Equal(t, domain.Amount(4), svc.EscrowTotal())

	status, err := svc.OrderStatus(orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPrepared, status)

	// the restored engine keeps going from where the first one stopped
	call(t, second.Handler(), http.MethodPost, "/api/orders/0/finish", "alice", "")
	assert.Equal(t, domain.Amount(4), svc.Balance("pizza-shop"))
}

func TestApp_InMemory(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database = config.DatabaseConfig{}
	cfg.Redis = config.RedisConfig{}

	a, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	body := call(t, a.Handler(), http.MethodPost, "/api/balance/deposit", "alice", `{"amount":3}`)
	assert.Equal(t, uint64(3), body.Get("balance").Uint())
}

func TestApp_RedisUnavailable(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database = config.DatabaseConfig{}
	cfg.Redis.Addr = "127.0.0.1:1"

	_, err := New(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestApp_ServeStopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	a, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	httpLis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	grpcLis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx, httpLis, grpcLis) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + httpLis.Addr().String() + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
