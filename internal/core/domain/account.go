package domain

import (
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

// LedgerKind partitions sub-accounts by the contract family that funds them.
type LedgerKind string

const (
	LedgerKindInference  LedgerKind = "inference"
	LedgerKindFineTuning LedgerKind = "fine-tuning"
)

// ParseLedgerKind validates a ledger kind name.
func ParseLedgerKind(s string) (LedgerKind, bool) {
	switch LedgerKind(s) {
	case LedgerKindInference, LedgerKindFineTuning:
		return LedgerKind(s), true
	}
	return "", false
}

// Account is the user's main balance, funded from and withdrawn to the
// external wallet.
type Account struct {
	User      common.Address `json:"user"`
	Balance   int64          `json:"balance"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// RefundRequest is a pending move of sub-account funds back to the main
// account. UnlockAt never changes once set.
type RefundRequest struct {
	ID          uuid.UUID `json:"id"`
	Amount      int64     `json:"amount"`
	RequestedAt time.Time `json:"requested_at"`
	UnlockAt    time.Time `json:"unlock_at"`
}

// IsUnlocked reports whether the refund may be completed at now.
func (r RefundRequest) IsUnlocked(now time.Time) bool {
	return !now.Before(r.UnlockAt)
}

// SubAccount is the per-provider escrow. Balance includes the amounts
// governed by pending refunds; 0 <= PendingTotal() <= Balance always holds.
type SubAccount struct {
	User           common.Address  `json:"user"`
	Provider       common.Address  `json:"provider"`
	Kind           LedgerKind      `json:"kind"`
	Balance        int64           `json:"balance"`
	PendingRefunds []RefundRequest `json:"pending_refunds"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// PendingTotal sums the pending refund amounts.
func (s SubAccount) PendingTotal() int64 {
	var total int64
	for _, r := range s.PendingRefunds {
		total += r.Amount
	}
	return total
}

// Spare is the balance not yet covered by a pending refund.
func (s SubAccount) Spare() int64 {
	spare := s.Balance - s.PendingTotal()
	if spare < 0 {
		return 0
	}
	return spare
}

// SortRefunds orders pending refunds oldest first.
func (s *SubAccount) SortRefunds() {
	sort.SliceStable(s.PendingRefunds, func(i, j int) bool {
		return s.PendingRefunds[i].RequestedAt.Before(s.PendingRefunds[j].RequestedAt)
	})
}

// Debit removes up to amount from the balance and returns what was taken.
// Spare balance is consumed first; after that pending refunds shrink,
// newest first, so the pending total never exceeds the balance.
func (s *SubAccount) Debit(amount int64) int64 {
	if amount <= 0 || s.Balance <= 0 {
		return 0
	}
	if amount > s.Balance {
		amount = s.Balance
	}
	s.Balance -= amount

	excess := s.PendingTotal() - s.Balance
	for i := len(s.PendingRefunds) - 1; i >= 0 && excess > 0; i-- {
		r := &s.PendingRefunds[i]
		cut := r.Amount
		if cut > excess {
			cut = excess
		}
		r.Amount -= cut
		excess -= cut
	}

	kept := s.PendingRefunds[:0]
	for _, r := range s.PendingRefunds {
		if r.Amount > 0 {
			kept = append(kept, r)
		}
	}
	s.PendingRefunds = kept
	return amount
}

// FindRefund returns the index of the refund with the given id, or -1.
func (s *SubAccount) FindRefund(id uuid.UUID) int {
	for i, r := range s.PendingRefunds {
		if r.ID == id {
			return i
		}
	}
	return -1
}
