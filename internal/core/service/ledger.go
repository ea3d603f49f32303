package service

import (
	"context"
	"fmt"

	"github.com/rl1809/food-delivery/internal/core/domain"
)

// Deposit credits caller with amount. A zero amount is accepted and changes
// nothing.
func (s *DeliveryService) Deposit(caller domain.Identity, amount domain.Amount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(caller); err != nil {
		return err
	}
	if amount == 0 {
		return nil
	}

	event := s.newEvent(domain.EventDeposited, caller)
	event.Amount = amount
	return s.commit(&event)
}

// Withdraw debits caller and only then hands the funds out through the
// payout port. If the payout fails the debit is reverted and nothing is
// journaled.
func (s *DeliveryService) Withdraw(ctx context.Context, caller domain.Identity, amount domain.Amount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(caller); err != nil {
		return err
	}
	if amount == 0 {
		return nil
	}

	event := s.newEvent(domain.EventWithdrawn, caller)
	event.Amount = amount
	if err := s.apply(&event); err != nil {
		return err
	}

	if s.payout != nil {
		if err := s.payout.Transfer(ctx, caller, amount); err != nil {
			s.settle(caller, amount)
			s.supply += amount
			return fmt.Errorf("payout failed: %w", err)
		}
	}

	s.record(event)
	return nil
}

func (s *DeliveryService) Balance(caller domain.Identity) domain.Amount {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lookup(caller).Balance
}

// TotalSupply is the value held by the ledger: all balances plus the escrow
// of unfinished orders.
func (s *DeliveryService) TotalSupply() domain.Amount {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.supply
}

func (s *DeliveryService) EscrowTotal() domain.Amount {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.escrow
}

func (s *DeliveryService) applyDeposit(event *domain.Event) error {
	if event.Amount > domain.MaxAmount-s.supply {
		return fmt.Errorf("%w: deposit of %d exceeds ledger capacity", ErrInvalidAmount, event.Amount)
	}

	s.account(event.Actor).Balance += event.Amount
	s.supply += event.Amount
	return nil
}

func (s *DeliveryService) applyWithdraw(event *domain.Event) error {
	if err := s.debit(event.Actor, event.Amount); err != nil {
		return err
	}
	s.supply -= event.Amount
	return nil
}

// escrowFunds moves amount out of from's balance into order escrow.
func (s *DeliveryService) escrowFunds(from domain.Identity, amount domain.Amount) error {
	if err := s.debit(from, amount); err != nil {
		return err
	}
	s.escrow += amount
	return nil
}

// release moves amount out of order escrow into to's balance.
func (s *DeliveryService) release(to domain.Identity, amount domain.Amount) {
	s.escrow -= amount
	s.settle(to, amount)
}

func (s *DeliveryService) debit(from domain.Identity, amount domain.Amount) error {
	if balance := s.lookup(from).Balance; balance < amount {
		return fmt.Errorf("%w: %s has %d, needs %d", ErrInsufficientBalance, from, balance, amount)
	}
	if amount > 0 {
		s.account(from).Balance -= amount
	}
	return nil
}

// settle credits to unconditionally; the funds already exist in the ledger.
func (s *DeliveryService) settle(to domain.Identity, amount domain.Amount) {
	s.account(to).Balance += amount
}
