package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rl1809/food-delivery/internal/core/domain"
)

// Mock DatabaseRepository
type mockDatabaseRepo struct {
	events   map[uint64]domain.Event
	batches  [][]uint64
	failures int
	mu       sync.Mutex
}

func newMockDatabaseRepo() *mockDatabaseRepo {
	return &mockDatabaseRepo{events: make(map[uint64]domain.Event)}
}

func (m *mockDatabaseRepo) AppendEvents(ctx context.Context, events []domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failures > 0 {
		m.failures--
		return errors.New("connection reset")
	}
	seqs := make([]uint64, 0, len(events))
	for _, e := range events {
		m.events[e.Seq] = e
		seqs = append(seqs, e.Seq)
	}
	m.batches = append(m.batches, seqs)
	return nil
}

func (m *mockDatabaseRepo) LoadEvents(ctx context.Context) ([]domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	events := make([]domain.Event, 0, len(m.events))
	for _, e := range m.events {
		events = append(events, e)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Seq < events[j].Seq })
	return events, nil
}

func (m *mockDatabaseRepo) appendedSeqs() []uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	var seqs []uint64
	for _, b := range m.batches {
		seqs = append(seqs, b...)
	}
	return seqs
}

func newTestWriter(db *mockDatabaseRepo, batchSize int) *JournalWriter {
	w := NewJournalWriter(db, zap.NewNop(), batchSize)
	w.backoff = time.Millisecond
	w.maxBackoff = 4 * time.Millisecond
	return w
}

// runWriter starts a journal writer and returns a channel that yields its
// result once the queue is closed.
func runWriter(ctx context.Context, svc *DeliveryService, w *JournalWriter) <-chan error {
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, svc.GetEventQueue()) }()
	return done
}

func waitWriter(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("journal writer did not stop")
		return nil
	}
}

func TestJournal_ReplayRebuildsState(t *testing.T) {
	db := newMockDatabaseRepo()
	svc := NewDeliveryService(owner, nil, 100)
	done := runWriter(context.Background(), svc, newTestWriter(db, 3))

	foodID := setupMarket(t, svc)
	first, err := svc.NewOrder(customer, foodID)
	require.NoError(t, err)
	second, err := svc.NewOrder(customer, foodID)
	require.NoError(t, err)
	require.NoError(t, svc.OrderPrepared(restaurant, first))
	require.NoError(t, svc.FinishOrder(customer, first))
	require.NoError(t, svc.Withdraw(context.Background(), customer, 2))
	require.NoError(t, svc.TransferOwnership(owner, "new-admin"))

	// failed operations are never journaled
	_, err = svc.NewOrder(restaurant, foodID)
	require.Error(t, err)

	svc.Close()
	require.NoError(t, waitWriter(t, done))

	events, err := db.LoadEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, int(svc.Seq()))

	// batches arrive in seq order and never exceed the batch size
	seqs := db.appendedSeqs()
	for i, seq := range seqs {
		assert.Equal(t, uint64(i+1), seq)
	}
	for _, b := range db.batches {
		assert.LessOrEqual(t, len(b), 3)
	}

	restored := NewDeliveryService(owner, nil, 0)
	defer restored.Close()
	require.NoError(t, restored.Replay(events))

	assert.Equal(t, svc.Seq(), restored.Seq())
	assert.Equal(t, svc.Owner(), restored.Owner())
	for _, id := range []domain.Identity{restaurant, customer} {
		assert.Equal(t, svc.User(id), restored.User(id))
	}
	assert.Equal(t, svc.TotalSupply(), restored.TotalSupply())
	assert.Equal(t, svc.EscrowTotal(), restored.EscrowTotal())

	for _, id := range []uint64{first, second} {
		want, err := svc.Order(id)
		require.NoError(t, err)
		got, err := restored.Order(id)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	food, err := restored.Food(foodID)
	require.NoError(t, err)
	assert.Equal(t, domain.Amount(1), food.Price)

	// the restored engine continues the sequence
	require.NoError(t, restored.Deposit(customer, 1))
	assert.Equal(t, svc.Seq()+1, restored.Seq())
}

func TestJournal_WriterRetriesUntilStored(t *testing.T) {
	db := newMockDatabaseRepo()
	db.failures = 10
	svc := NewDeliveryService(owner, nil, 10)
	done := runWriter(context.Background(), svc, newTestWriter(db, 1))

	require.NoError(t, svc.RegisterRestaurant(restaurant, "Pizza Shop"))
	require.NoError(t, svc.RegisterCustomer(customer))
	require.NoError(t, svc.Deposit(customer, 10))
	svc.Close()
	require.NoError(t, waitWriter(t, done))

	// a failing backend delays the journal but never leaves a hole in it
	assert.Equal(t, []uint64{1, 2, 3}, db.appendedSeqs())

	events, err := db.LoadEvents(context.Background())
	require.NoError(t, err)
	restarted := newTestService(t)
	require.NoError(t, restarted.Replay(events))
	assert.Equal(t, uint64(3), restarted.Seq())
	assert.Equal(t, domain.Amount(10), restarted.Balance(customer))
	assert.Equal(t, domain.RoleRestaurant, restarted.UserType(restaurant))
}

func TestJournal_WriterGivesUpOnCancel(t *testing.T) {
	db := newMockDatabaseRepo()
	svc := NewDeliveryService(owner, nil, 10)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := runWriter(ctx, svc, newTestWriter(db, 10))

	require.NoError(t, svc.Deposit(customer, 5))
	require.Eventually(t, func() bool { return len(db.appendedSeqs()) == 1 }, time.Second, time.Millisecond)

	db.mu.Lock()
	db.failures = 1 << 30
	db.mu.Unlock()
	require.NoError(t, svc.Deposit(customer, 7))
	require.NoError(t, svc.Deposit(customer, 9))

	cancel()
	err := waitWriter(t, done)
	require.ErrorIs(t, err, context.Canceled)
	svc.Close()

	// only the tail after the last stored batch is lost, so replay succeeds
	events, err := db.LoadEvents(context.Background())
	require.NoError(t, err)
	restarted := newTestService(t)
	require.NoError(t, restarted.Replay(events))
	assert.Equal(t, uint64(1), restarted.Seq())
	assert.Equal(t, domain.Amount(5), restarted.Balance(customer))
}

func TestJournal_BacklogRejectsWithoutBlocking(t *testing.T) {
	svc := NewDeliveryService(owner, nil, 1)
	defer svc.Close()

	require.NoError(t, svc.Deposit(customer, 5))
	assert.ErrorIs(t, svc.Deposit(customer, 5), ErrJournalBacklog)
	assert.ErrorIs(t, svc.Withdraw(context.Background(), customer, 1), ErrJournalBacklog)

	// reads proceed while the queue is full
	read := make(chan domain.Amount, 1)
	go func() { read <- svc.Balance(customer) }()
	select {
	case balance := <-read:
		assert.Equal(t, domain.Amount(5), balance)
	case <-time.After(time.Second):
		t.Fatal("Balance blocked on a full journal queue")
	}
	assert.Equal(t, uint64(1), svc.Seq())

	// draining the queue makes room again
	<-svc.GetEventQueue()
	require.NoError(t, svc.Deposit(customer, 5))
	assert.Equal(t, domain.Amount(10), svc.Balance(customer))
}

func TestReplay_Gap(t *testing.T) {
	svc := newTestService(t)

	err := svc.Replay([]domain.Event{
		{Seq: 1, Kind: domain.EventDeposited, Actor: customer, Amount: 5},
		{Seq: 3, Kind: domain.EventDeposited, Actor: customer, Amount: 5},
	})
	assert.ErrorIs(t, err, ErrCorruptJournal)
}

func TestReplay_InvalidEvent(t *testing.T) {
	svc := newTestService(t)

	err := svc.Replay([]domain.Event{
		{Seq: 1, Kind: domain.EventWithdrawn, Actor: customer, Amount: 5},
	})
	assert.ErrorIs(t, err, ErrCorruptJournal)
	assert.Equal(t, domain.Amount(0), svc.Balance(customer))
}

func TestReplay_MismatchedEffect(t *testing.T) {
	svc := newTestService(t)

	err := svc.Replay([]domain.Event{
		{Seq: 1, Kind: domain.EventRestaurantRegistered, Actor: restaurant, Name: "Pizza Shop"},
		{Seq: 2, Kind: domain.EventFoodListed, Actor: restaurant, Name: "pizza", Amount: 1, FoodID: 7},
	})
	assert.ErrorIs(t, err, ErrCorruptJournal)
}
