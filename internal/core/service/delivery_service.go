package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rl1809/food-delivery/internal/core/domain"
	"github.com/rl1809/food-delivery/internal/port"
)

// DeliveryService owns the registry, ledger, catalog and order state of one
// engine instance. Every mutating call runs to completion under mu, so a
// failed call leaves no trace.
type DeliveryService struct {
	mu sync.RWMutex

	owner  domain.Identity
	users  map[domain.Identity]*domain.User
	foods  []domain.Food
	orders []domain.Order
	supply domain.Amount
	escrow domain.Amount
	seq    uint64
	closed bool

	cache      port.CacheRepository
	payout     port.Payout
	eventQueue chan domain.Event
	journal    bool
	log        *zap.Logger
	now        func() time.Time
}

type Option func(*DeliveryService)

func WithPayout(payout port.Payout) Option {
	return func(s *DeliveryService) { s.payout = payout }
}

func WithLogger(log *zap.Logger) Option {
	return func(s *DeliveryService) { s.log = log }
}

func WithClock(now func() time.Time) Option {
	return func(s *DeliveryService) { s.now = now }
}

// NewDeliveryService creates an empty engine administered by owner. Committed
// events are published on a queue of queueSize; a queueSize of zero disables
// journaling. cache may be nil, in which case request ids are ignored.
func NewDeliveryService(owner domain.Identity, cache port.CacheRepository, queueSize int, opts ...Option) *DeliveryService {
	if queueSize < 0 {
		queueSize = 0
	}
	s := &DeliveryService{
		owner:      owner,
		users:      make(map[domain.Identity]*domain.User),
		cache:      cache,
		eventQueue: make(chan domain.Event, queueSize),
		journal:    queueSize > 0,
		log:        zap.NewNop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetEventQueue exposes committed events to the journal writer. The channel
// is closed by Close.
func (s *DeliveryService) GetEventQueue() <-chan domain.Event {
	return s.eventQueue
}

func (s *DeliveryService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	close(s.eventQueue)
}

// commit validates and applies event, then journals it. Callers hold mu.
func (s *DeliveryService) commit(event *domain.Event) error {
	if err := s.guard(event.Actor); err != nil {
		return err
	}
	if err := s.apply(event); err != nil {
		return err
	}
	s.record(*event)
	return nil
}

// guard rejects a mutation before it touches state. A full journal queue
// rejects with ErrJournalBacklog so that record never blocks under mu.
func (s *DeliveryService) guard(actor domain.Identity) error {
	if s.closed {
		return ErrClosed
	}
	if err := validIdentity(actor); err != nil {
		return err
	}
	if s.journal && len(s.eventQueue) == cap(s.eventQueue) {
		return ErrJournalBacklog
	}
	return nil
}

func validIdentity(id domain.Identity) error {
	if id == "" {
		return fmt.Errorf("%w: empty", ErrInvalidIdentity)
	}
	if len(id) > domain.MaxIdentityLength {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidIdentity, domain.MaxIdentityLength)
	}
	return nil
}

func validName(name string) error {
	if len(name) > domain.MaxNameLength {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidName, domain.MaxNameLength)
	}
	return nil
}

// record assigns the next seq and queues the event. Only holders of mu send
// on eventQueue and guard checked for a free slot, so the send never blocks
// and events enter the queue in seq order.
func (s *DeliveryService) record(event domain.Event) {
	s.seq++
	event.Seq = s.seq
	event.ID = uuid.New()
	if s.journal {
		s.eventQueue <- event
	}
	s.log.Debug("event committed",
		zap.Uint64("seq", event.Seq),
		zap.String("kind", string(event.Kind)),
		zap.String("actor", string(event.Actor)),
	)
}

// apply mutates state for event, or returns an error and leaves state as it
// was. Derived fields (assigned ids, escrowed amounts, counterparties) are
// written back into event.
func (s *DeliveryService) apply(event *domain.Event) error {
	switch event.Kind {
	case domain.EventRestaurantRegistered:
		return s.applyRegistration(event, domain.RoleRestaurant)
	case domain.EventCustomerRegistered:
		return s.applyRegistration(event, domain.RoleCustomer)
	case domain.EventDeposited:
		return s.applyDeposit(event)
	case domain.EventWithdrawn:
		return s.applyWithdraw(event)
	case domain.EventFoodListed:
		return s.applyFoodListed(event)
	case domain.EventOrderPlaced:
		return s.applyOrderPlaced(event)
	case domain.EventOrderPrepared:
		return s.applyOrderPrepared(event)
	case domain.EventOrderFinished:
		return s.applyOrderFinished(event)
	case domain.EventOwnershipTransferred:
		return s.applyOwnershipTransferred(event)
	default:
		return fmt.Errorf("%w: unknown event kind %q", ErrCorruptJournal, event.Kind)
	}
}

func (s *DeliveryService) newEvent(kind domain.EventKind, actor domain.Identity) domain.Event {
	return domain.Event{
		Kind:      kind,
		Actor:     actor,
		CreatedAt: s.now(),
	}
}

// lookup returns a copy of the user record, or an unregistered zero-balance
// record for unknown identities.
func (s *DeliveryService) lookup(id domain.Identity) domain.User {
	if u, ok := s.users[id]; ok {
		return *u
	}
	return domain.User{Identity: id}
}

// account returns the mutable record for id, creating it on first use.
func (s *DeliveryService) account(id domain.Identity) *domain.User {
	u, ok := s.users[id]
	if !ok {
		u = &domain.User{Identity: id}
		s.users[id] = u
	}
	return u
}
