package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"serving-broker/internal/core/domain"
	"serving-broker/pkg/clock"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

type pairKey struct {
	user     common.Address
	provider common.Address
}

// LedgerStore implements ports.LedgerStore in process memory. Every transfer
// is applied under a single mutex, which gives the same all-or-nothing
// behaviour as the postgres store's row locks.
type LedgerStore struct {
	mu sync.RWMutex

	clock      clock.Clock
	lockPeriod time.Duration

	wallets  map[common.Address]int64
	accounts map[common.Address]*domain.Account
	subs     map[pairKey]*domain.SubAccount
	payouts  map[pairKey]int64
	acks     map[pairKey]time.Time
}

// NewLedgerStore creates an empty ledger. Refunds unlock lockPeriod after
// they are requested.
func NewLedgerStore(clk clock.Clock, lockPeriod time.Duration) *LedgerStore {
	return &LedgerStore{
		clock:      clk,
		lockPeriod: lockPeriod,
		wallets:    make(map[common.Address]int64),
		accounts:   make(map[common.Address]*domain.Account),
		subs:       make(map[pairKey]*domain.SubAccount),
		payouts:    make(map[pairKey]int64),
		acks:       make(map[pairKey]time.Time),
	}
}

// FundWallet credits the external funding wallet of owner.
func (s *LedgerStore) FundWallet(owner common.Address, amount int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wallets[owner] += amount
}

// SubmitTransfer applies t atomically.
func (s *LedgerStore) SubmitTransfer(ctx context.Context, t domain.Transfer) (*domain.Confirmation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	typ, _ := t.Type()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	user := t.From.Owner
	conf := &domain.Confirmation{TxID: uuid.New(), Type: typ, Amount: t.Amount, ConfirmedAt: now}

	switch typ {
	case domain.TransferDeposit:
		if s.wallets[user] < t.Amount {
			return nil, domain.ErrInsufficientFunds
		}
		s.wallets[user] -= t.Amount
		acct := s.accounts[user]
		if acct == nil {
			acct = &domain.Account{User: user, CreatedAt: now}
			s.accounts[user] = acct
		}
		acct.Balance += t.Amount
		acct.UpdatedAt = now

	case domain.TransferWithdraw:
		acct := s.accounts[user]
		if acct == nil || acct.Balance < t.Amount {
			return nil, domain.ErrInsufficientBalance
		}
		acct.Balance -= t.Amount
		acct.UpdatedAt = now
		s.wallets[user] += t.Amount

	case domain.TransferFund:
		acct := s.accounts[user]
		if acct == nil || acct.Balance < t.Amount {
			return nil, domain.ErrInsufficientBalance
		}
		key := pairKey{user, t.To.Provider}
		sub := s.subs[key]
		if sub != nil && sub.Kind != t.Kind {
			return nil, domain.ErrLedgerKindMismatch
		}
		if sub == nil {
			sub = &domain.SubAccount{User: user, Provider: t.To.Provider, Kind: t.Kind, CreatedAt: now}
			s.subs[key] = sub
		}
		acct.Balance -= t.Amount
		acct.UpdatedAt = now
		sub.Balance += t.Amount
		sub.UpdatedAt = now

	case domain.TransferRefundInitiate:
		sub := s.subs[pairKey{user, t.From.Provider}]
		if sub == nil {
			return nil, domain.ErrSubAccountNotFound
		}
		if t.Amount > sub.Spare() {
			return nil, domain.ErrInsufficientBalance
		}
		r := domain.RefundRequest{
			ID:          uuid.New(),
			Amount:      t.Amount,
			RequestedAt: now,
			UnlockAt:    now.Add(s.lockPeriod),
		}
		sub.PendingRefunds = append(sub.PendingRefunds, r)
		sub.UpdatedAt = now
		conf.Refund = &r

	case domain.TransferRefundComplete:
		sub := s.subs[pairKey{user, t.From.Provider}]
		if sub == nil {
			return nil, domain.ErrSubAccountNotFound
		}
		ids := make(map[uuid.UUID]struct{}, len(t.RefundIDs))
		var total int64
		for _, id := range t.RefundIDs {
			if _, dup := ids[id]; dup {
				continue
			}
			idx := sub.FindRefund(id)
			if idx < 0 {
				return nil, domain.ErrRefundNotFound
			}
			if !sub.PendingRefunds[idx].IsUnlocked(now) {
				return nil, domain.ErrRefundLocked
			}
			ids[id] = struct{}{}
			total += sub.PendingRefunds[idx].Amount
		}
		kept := sub.PendingRefunds[:0]
		for _, r := range sub.PendingRefunds {
			if _, done := ids[r.ID]; !done {
				kept = append(kept, r)
			}
		}
		sub.PendingRefunds = kept
		sub.Balance -= total
		sub.UpdatedAt = now
		acct := s.accounts[user]
		if acct == nil {
			acct = &domain.Account{User: user, CreatedAt: now}
			s.accounts[user] = acct
		}
		acct.Balance += total
		acct.UpdatedAt = now
		conf.Amount = total

	case domain.TransferFee:
		key := pairKey{user, t.From.Provider}
		sub := s.subs[key]
		if sub == nil {
			return nil, domain.ErrSubAccountNotFound
		}
		if t.Amount > sub.Balance {
			return nil, domain.ErrInsufficientBalance
		}
		sub.Debit(t.Amount)
		sub.UpdatedAt = now
		s.payouts[key] += t.Amount
	}

	return conf, nil
}

// ReadBalance returns the balance behind ref.
func (s *LedgerStore) ReadBalance(ctx context.Context, ref domain.AccountRef) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch ref.Kind {
	case domain.RefWallet:
		return s.wallets[ref.Owner], nil
	case domain.RefMain:
		if acct := s.accounts[ref.Owner]; acct != nil {
			return acct.Balance, nil
		}
		return 0, nil
	case domain.RefSub:
		if sub := s.subs[pairKey{ref.Owner, ref.Provider}]; sub != nil {
			return sub.Balance, nil
		}
		return 0, nil
	case domain.RefRefund:
		if sub := s.subs[pairKey{ref.Owner, ref.Provider}]; sub != nil {
			return sub.PendingTotal(), nil
		}
		return 0, nil
	case domain.RefProvider:
		return s.payouts[pairKey{ref.Owner, ref.Provider}], nil
	}
	return 0, domain.ErrInvalidTransfer
}

// ReadPendingRefunds returns the pending refunds of a sub-account, oldest first.
func (s *LedgerStore) ReadPendingRefunds(ctx context.Context, user, provider common.Address) ([]domain.RefundRequest, error) {
	sub, err := s.ReadSubAccount(ctx, user, provider)
	if err != nil || sub == nil {
		return nil, err
	}
	return sub.PendingRefunds, nil
}

// ReadSubAccount returns a copy of the sub-account, or nil if none exists.
func (s *LedgerStore) ReadSubAccount(ctx context.Context, user, provider common.Address) (*domain.SubAccount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub := s.subs[pairKey{user, provider}]
	if sub == nil {
		return nil, nil
	}
	cp := copySub(sub)
	return &cp, nil
}

// ListSubAccounts lists the user's sub-accounts ordered by provider address.
func (s *LedgerStore) ListSubAccounts(ctx context.Context, user common.Address, kind domain.LedgerKind) ([]domain.SubAccount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.SubAccount
	for k, sub := range s.subs {
		if k.user != user || (kind != "" && sub.Kind != kind) {
			continue
		}
		out = append(out, copySub(sub))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Provider.Cmp(out[j].Provider) < 0
	})
	return out, nil
}

// Acknowledge records that user accepts provider. Repeated calls are no-ops.
func (s *LedgerStore) Acknowledge(ctx context.Context, user, provider common.Address) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey{user, provider}
	if _, ok := s.acks[key]; !ok {
		s.acks[key] = s.clock.Now()
	}
	return nil
}

// IsAcknowledged reports whether user has acknowledged provider.
func (s *LedgerStore) IsAcknowledged(ctx context.Context, user, provider common.Address) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.acks[pairKey{user, provider}]
	return ok, nil
}

// Ping implements ports.HealthChecker.
func (s *LedgerStore) Ping(context.Context) error { return nil }

// Name implements ports.HealthChecker.
func (s *LedgerStore) Name() string { return "ledger-memory" }

func copySub(sub *domain.SubAccount) domain.SubAccount {
	cp := *sub
	cp.PendingRefunds = append([]domain.RefundRequest(nil), sub.PendingRefunds...)
	cp.SortRefunds()
	return cp
}
