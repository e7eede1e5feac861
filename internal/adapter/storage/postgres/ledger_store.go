package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"serving-broker/internal/core/domain"
	"serving-broker/pkg/clock"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// LedgerStore implements ports.LedgerStore on PostgreSQL. Each transfer runs
// in one database transaction and locks the rows it touches with
// SELECT ... FOR UPDATE before checking balances.
type LedgerStore struct {
	pool       Pool
	clock      clock.Clock
	lockPeriod time.Duration
}

// NewLedgerStore creates a new LedgerStore.
func NewLedgerStore(pool Pool, clk clock.Clock, lockPeriod time.Duration) *LedgerStore {
	return &LedgerStore{pool: pool, clock: clk, lockPeriod: lockPeriod}
}

func hexAddr(a common.Address) string {
	return strings.ToLower(a.Hex())
}

// SeedWallet creates the funding wallet of owner with amount if it does not exist yet.
func (s *LedgerStore) SeedWallet(ctx context.Context, owner common.Address, amount int64) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO funding_wallets (owner, balance) VALUES ($1, $2) ON CONFLICT (owner) DO NOTHING`,
		hexAddr(owner), amount)
	if err != nil {
		return fmt.Errorf("seed funding wallet: %w", err)
	}
	return nil
}

// SubmitTransfer applies t in a single database transaction.
func (s *LedgerStore) SubmitTransfer(ctx context.Context, t domain.Transfer) (*domain.Confirmation, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	typ, _ := t.Type()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transfer: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	now := s.clock.Now()
	conf := &domain.Confirmation{TxID: uuid.New(), Type: typ, Amount: t.Amount, ConfirmedAt: now}
	owner := hexAddr(t.From.Owner)

	switch typ {
	case domain.TransferDeposit:
		err = s.deposit(ctx, tx, owner, t.Amount, now)
	case domain.TransferWithdraw:
		err = s.withdraw(ctx, tx, owner, t.Amount, now)
	case domain.TransferFund:
		err = s.fund(ctx, tx, owner, hexAddr(t.To.Provider), t.Kind, t.Amount, now)
	case domain.TransferRefundInitiate:
		conf.Refund, err = s.initiateRefund(ctx, tx, t, now)
	case domain.TransferRefundComplete:
		conf.Amount, err = s.completeRefunds(ctx, tx, t, now)
	case domain.TransferFee:
		err = s.chargeFee(ctx, tx, t, now)
	}
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO ledger_transfers (id, type, from_ref, to_ref, amount, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		conf.TxID, string(typ), t.From.String(), t.To.String(), conf.Amount, now)
	if err != nil {
		return nil, fmt.Errorf("insert ledger transfer: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transfer: %w", err)
	}
	return conf, nil
}

// lockBalance reads a balance column with FOR UPDATE. Missing rows read as 0.
func lockBalance(ctx context.Context, tx pgx.Tx, query string, args ...any) (int64, error) {
	var balance int64
	err := tx.QueryRow(ctx, query, args...).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("lock balance: %w", err)
	}
	return balance, nil
}

func creditMain(ctx context.Context, tx pgx.Tx, owner string, amount int64, now time.Time) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO accounts (owner, balance, created_at, updated_at) VALUES ($1, $2, $3, $3)
		 ON CONFLICT (owner) DO UPDATE SET balance = accounts.balance + EXCLUDED.balance, updated_at = EXCLUDED.updated_at`,
		owner, amount, now)
	if err != nil {
		return fmt.Errorf("credit main account: %w", err)
	}
	return nil
}

func debitMain(ctx context.Context, tx pgx.Tx, owner string, amount int64, now time.Time) error {
	balance, err := lockBalance(ctx, tx, `SELECT balance FROM accounts WHERE owner = $1 FOR UPDATE`, owner)
	if err != nil {
		return err
	}
	if balance < amount {
		return domain.ErrInsufficientBalance
	}
	_, err = tx.Exec(ctx, `UPDATE accounts SET balance = balance - $1, updated_at = $2 WHERE owner = $3`, amount, now, owner)
	if err != nil {
		return fmt.Errorf("debit main account: %w", err)
	}
	return nil
}

func (s *LedgerStore) deposit(ctx context.Context, tx pgx.Tx, owner string, amount int64, now time.Time) error {
	balance, err := lockBalance(ctx, tx, `SELECT balance FROM funding_wallets WHERE owner = $1 FOR UPDATE`, owner)
	if err != nil {
		return err
	}
	if balance < amount {
		return domain.ErrInsufficientFunds
	}
	if _, err := tx.Exec(ctx, `UPDATE funding_wallets SET balance = balance - $1 WHERE owner = $2`, amount, owner); err != nil {
		return fmt.Errorf("debit funding wallet: %w", err)
	}
	return creditMain(ctx, tx, owner, amount, now)
}

func (s *LedgerStore) withdraw(ctx context.Context, tx pgx.Tx, owner string, amount int64, now time.Time) error {
	if err := debitMain(ctx, tx, owner, amount, now); err != nil {
		return err
	}
	_, err := tx.Exec(ctx,
		`INSERT INTO funding_wallets (owner, balance) VALUES ($1, $2)
		 ON CONFLICT (owner) DO UPDATE SET balance = funding_wallets.balance + EXCLUDED.balance`,
		owner, amount)
	if err != nil {
		return fmt.Errorf("credit funding wallet: %w", err)
	}
	return nil
}

func (s *LedgerStore) fund(ctx context.Context, tx pgx.Tx, owner, provider string, kind domain.LedgerKind, amount int64, now time.Time) error {
	if err := debitMain(ctx, tx, owner, amount, now); err != nil {
		return err
	}

	var existing string
	err := tx.QueryRow(ctx,
		`SELECT kind FROM sub_accounts WHERE owner = $1 AND provider = $2 FOR UPDATE`,
		owner, provider).Scan(&existing)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
	case err != nil:
		return fmt.Errorf("lock sub-account: %w", err)
	case domain.LedgerKind(existing) != kind:
		return domain.ErrLedgerKindMismatch
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO sub_accounts (owner, provider, kind, balance, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $5)
		 ON CONFLICT (owner, provider) DO UPDATE SET balance = sub_accounts.balance + EXCLUDED.balance, updated_at = EXCLUDED.updated_at`,
		owner, provider, string(kind), amount, now)
	if err != nil {
		return fmt.Errorf("credit sub-account: %w", err)
	}
	return nil
}

func (s *LedgerStore) initiateRefund(ctx context.Context, tx pgx.Tx, t domain.Transfer, now time.Time) (*domain.RefundRequest, error) {
	sub, err := loadSubAccount(ctx, tx, t.From.Owner, t.From.Provider, true)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, domain.ErrSubAccountNotFound
	}
	if t.Amount > sub.Spare() {
		return nil, domain.ErrInsufficientBalance
	}

	r := &domain.RefundRequest{
		ID:          uuid.New(),
		Amount:      t.Amount,
		RequestedAt: now,
		UnlockAt:    now.Add(s.lockPeriod),
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO refund_requests (id, owner, provider, amount, requested_at, unlock_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		r.ID, hexAddr(t.From.Owner), hexAddr(t.From.Provider), r.Amount, r.RequestedAt, r.UnlockAt)
	if err != nil {
		return nil, fmt.Errorf("insert refund request: %w", err)
	}
	return r, nil
}

func (s *LedgerStore) completeRefunds(ctx context.Context, tx pgx.Tx, t domain.Transfer, now time.Time) (int64, error) {
	sub, err := loadSubAccount(ctx, tx, t.From.Owner, t.From.Provider, true)
	if err != nil {
		return 0, err
	}
	if sub == nil {
		return 0, domain.ErrSubAccountNotFound
	}

	seen := make(map[uuid.UUID]struct{}, len(t.RefundIDs))
	ids := make([]uuid.UUID, 0, len(t.RefundIDs))
	var total int64
	for _, id := range t.RefundIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		idx := sub.FindRefund(id)
		if idx < 0 {
			return 0, domain.ErrRefundNotFound
		}
		if !sub.PendingRefunds[idx].IsUnlocked(now) {
			return 0, domain.ErrRefundLocked
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
		total += sub.PendingRefunds[idx].Amount
	}

	owner, provider := hexAddr(t.From.Owner), hexAddr(t.From.Provider)
	if _, err := tx.Exec(ctx, `DELETE FROM refund_requests WHERE id = ANY($1)`, ids); err != nil {
		return 0, fmt.Errorf("delete refund requests: %w", err)
	}
	_, err = tx.Exec(ctx,
		`UPDATE sub_accounts SET balance = balance - $1, updated_at = $2 WHERE owner = $3 AND provider = $4`,
		total, now, owner, provider)
	if err != nil {
		return 0, fmt.Errorf("debit sub-account: %w", err)
	}
	if err := creditMain(ctx, tx, owner, total, now); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *LedgerStore) chargeFee(ctx context.Context, tx pgx.Tx, t domain.Transfer, now time.Time) error {
	sub, err := loadSubAccount(ctx, tx, t.From.Owner, t.From.Provider, true)
	if err != nil {
		return err
	}
	if sub == nil {
		return domain.ErrSubAccountNotFound
	}
	if t.Amount > sub.Balance {
		return domain.ErrInsufficientBalance
	}

	before := make(map[uuid.UUID]int64, len(sub.PendingRefunds))
	for _, r := range sub.PendingRefunds {
		before[r.ID] = r.Amount
	}
	sub.Debit(t.Amount)
	for _, r := range sub.PendingRefunds {
		if before[r.ID] != r.Amount {
			if _, err := tx.Exec(ctx, `UPDATE refund_requests SET amount = $1 WHERE id = $2`, r.Amount, r.ID); err != nil {
				return fmt.Errorf("shrink refund request: %w", err)
			}
		}
		delete(before, r.ID)
	}
	for id := range before {
		if _, err := tx.Exec(ctx, `DELETE FROM refund_requests WHERE id = $1`, id); err != nil {
			return fmt.Errorf("drop refund request: %w", err)
		}
	}

	owner, provider := hexAddr(t.From.Owner), hexAddr(t.From.Provider)
	_, err = tx.Exec(ctx,
		`UPDATE sub_accounts SET balance = $1, updated_at = $2 WHERE owner = $3 AND provider = $4`,
		sub.Balance, now, owner, provider)
	if err != nil {
		return fmt.Errorf("debit sub-account: %w", err)
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO provider_payouts (owner, provider, amount) VALUES ($1, $2, $3)
		 ON CONFLICT (owner, provider) DO UPDATE SET amount = provider_payouts.amount + EXCLUDED.amount`,
		owner, provider, t.Amount)
	if err != nil {
		return fmt.Errorf("credit provider payout: %w", err)
	}
	return nil
}

// loadSubAccount reads a sub-account with its pending refunds, oldest first.
// It returns nil, nil when the sub-account does not exist.
func loadSubAccount(ctx context.Context, q querier, user, provider common.Address, forUpdate bool) (*domain.SubAccount, error) {
	query := `SELECT kind, balance, created_at, updated_at FROM sub_accounts WHERE owner = $1 AND provider = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	sub := &domain.SubAccount{User: user, Provider: provider}
	var kind string
	err := q.QueryRow(ctx, query, hexAddr(user), hexAddr(provider)).Scan(&kind, &sub.Balance, &sub.CreatedAt, &sub.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get sub-account: %w", err)
	}
	sub.Kind = domain.LedgerKind(kind)

	rows, err := q.Query(ctx,
		`SELECT id, amount, requested_at, unlock_at FROM refund_requests
		 WHERE owner = $1 AND provider = $2 ORDER BY requested_at`,
		hexAddr(user), hexAddr(provider))
	if err != nil {
		return nil, fmt.Errorf("list refund requests: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r domain.RefundRequest
		if err := rows.Scan(&r.ID, &r.Amount, &r.RequestedAt, &r.UnlockAt); err != nil {
			return nil, fmt.Errorf("scan refund request: %w", err)
		}
		sub.PendingRefunds = append(sub.PendingRefunds, r)
	}
	return sub, rows.Err()
}

// ReadBalance returns the balance behind ref. Missing rows read as 0.
func (s *LedgerStore) ReadBalance(ctx context.Context, ref domain.AccountRef) (int64, error) {
	owner, provider := hexAddr(ref.Owner), hexAddr(ref.Provider)

	var query string
	args := []any{owner}
	switch ref.Kind {
	case domain.RefWallet:
		query = `SELECT balance FROM funding_wallets WHERE owner = $1`
	case domain.RefMain:
		query = `SELECT balance FROM accounts WHERE owner = $1`
	case domain.RefSub:
		query = `SELECT balance FROM sub_accounts WHERE owner = $1 AND provider = $2`
		args = append(args, provider)
	case domain.RefRefund:
		query = `SELECT COALESCE(SUM(amount), 0) FROM refund_requests WHERE owner = $1 AND provider = $2`
		args = append(args, provider)
	case domain.RefProvider:
		query = `SELECT amount FROM provider_payouts WHERE owner = $1 AND provider = $2`
		args = append(args, provider)
	default:
		return 0, domain.ErrInvalidTransfer
	}

	var balance int64
	err := s.pool.QueryRow(ctx, query, args...).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read %s balance: %w", ref.Kind, err)
	}
	return balance, nil
}

// ReadPendingRefunds returns the pending refunds of a sub-account, oldest first.
func (s *LedgerStore) ReadPendingRefunds(ctx context.Context, user, provider common.Address) ([]domain.RefundRequest, error) {
	sub, err := loadSubAccount(ctx, s.pool, user, provider, false)
	if err != nil || sub == nil {
		return nil, err
	}
	return sub.PendingRefunds, nil
}

// ReadSubAccount returns the sub-account, or nil if none exists.
func (s *LedgerStore) ReadSubAccount(ctx context.Context, user, provider common.Address) (*domain.SubAccount, error) {
	return loadSubAccount(ctx, s.pool, user, provider, false)
}

// ListSubAccounts lists the user's sub-accounts ordered by provider address.
func (s *LedgerStore) ListSubAccounts(ctx context.Context, user common.Address, kind domain.LedgerKind) ([]domain.SubAccount, error) {
	owner := hexAddr(user)
	rows, err := s.pool.Query(ctx,
		`SELECT provider, kind, balance, created_at, updated_at FROM sub_accounts
		 WHERE owner = $1 AND ($2 = '' OR kind = $2) ORDER BY provider`,
		owner, string(kind))
	if err != nil {
		return nil, fmt.Errorf("list sub-accounts: %w", err)
	}

	var subs []domain.SubAccount
	index := make(map[common.Address]int)
	for rows.Next() {
		var provider, k string
		sub := domain.SubAccount{User: user}
		if err := rows.Scan(&provider, &k, &sub.Balance, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan sub-account: %w", err)
		}
		sub.Provider = common.HexToAddress(provider)
		sub.Kind = domain.LedgerKind(k)
		index[sub.Provider] = len(subs)
		subs = append(subs, sub)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sub-accounts: %w", err)
	}
	if len(subs) == 0 {
		return nil, nil
	}

	rows, err = s.pool.Query(ctx,
		`SELECT provider, id, amount, requested_at, unlock_at FROM refund_requests
		 WHERE owner = $1 ORDER BY requested_at`, owner)
	if err != nil {
		return nil, fmt.Errorf("list refund requests: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var provider string
		var r domain.RefundRequest
		if err := rows.Scan(&provider, &r.ID, &r.Amount, &r.RequestedAt, &r.UnlockAt); err != nil {
			return nil, fmt.Errorf("scan refund request: %w", err)
		}
		if i, ok := index[common.HexToAddress(provider)]; ok {
			subs[i].PendingRefunds = append(subs[i].PendingRefunds, r)
		}
	}
	return subs, rows.Err()
}

// Acknowledge records that user accepts provider. Repeated calls are no-ops.
func (s *LedgerStore) Acknowledge(ctx context.Context, user, provider common.Address) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO acknowledgements (owner, provider, acknowledged_at) VALUES ($1, $2, $3)
		 ON CONFLICT (owner, provider) DO NOTHING`,
		hexAddr(user), hexAddr(provider), s.clock.Now())
	if err != nil {
		return fmt.Errorf("insert acknowledgement: %w", err)
	}
	return nil
}

// IsAcknowledged reports whether user has acknowledged provider.
func (s *LedgerStore) IsAcknowledged(ctx context.Context, user, provider common.Address) (bool, error) {
	var ok bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM acknowledgements WHERE owner = $1 AND provider = $2)`,
		hexAddr(user), hexAddr(provider)).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check acknowledgement: %w", err)
	}
	return ok, nil
}
