package service

import (
	"context"
	"fmt"
	"time"

	"serving-broker/internal/core/domain"
	"serving-broker/internal/core/ports"
	"serving-broker/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

// AccountBroker implements ports.AccountService on top of the ledger store.
// Balances are never cached: every result is read back from the store
// after the transfer is confirmed.
type AccountBroker struct {
	*session
	directory ports.ProviderDirectory
}

// Deposit moves amount from the funding wallet to the main account.
func (a *AccountBroker) Deposit(ctx context.Context, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, apperror.ErrInvalidAmount()
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	u := a.user()
	conf, err := a.submit(ctx, "deposit", domain.Transfer{
		From:   domain.WalletRef(u),
		To:     domain.MainRef(u),
		Amount: amount,
	})
	if err != nil {
		return 0, a.fail(ctx, err, apperror.ErrInsufficientFunds)
	}
	a.record(ctx, domain.AuditActionDeposit, nil, amount, conf, "")

	return a.confirmedMainBalance(ctx)
}

// Withdraw moves amount from the main account back to the funding wallet.
func (a *AccountBroker) Withdraw(ctx context.Context, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, apperror.ErrInvalidAmount()
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	u := a.user()
	conf, err := a.submit(ctx, "withdraw", domain.Transfer{
		From:   domain.MainRef(u),
		To:     domain.WalletRef(u),
		Amount: amount,
	})
	if err != nil {
		return 0, a.fail(ctx, err, apperror.ErrInsufficientMainBalance)
	}
	a.record(ctx, domain.AuditActionWithdraw, nil, amount, conf, "")

	return a.confirmedMainBalance(ctx)
}

// TransferFund moves amount from the main account into the provider's
// sub-account, creating it on first use. The sub-account's ledger kind is
// fixed by the service type of that first transfer.
func (a *AccountBroker) TransferFund(ctx context.Context, provider common.Address, serviceType domain.ServiceType, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, apperror.ErrInvalidAmount()
	}
	if _, ok := domain.ParseServiceType(string(serviceType)); !ok {
		return 0, apperror.ErrInvalidServiceType(string(serviceType))
	}
	svc, err := a.directory.GetService(ctx, provider)
	if err != nil {
		return 0, err
	}
	if svc.ServiceType.LedgerKind() != serviceType.LedgerKind() {
		return 0, apperror.ErrServiceKindMismatch()
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	u := a.user()
	conf, err := a.submit(ctx, "transfer", domain.Transfer{
		From:   domain.MainRef(u),
		To:     domain.SubRef(u, provider),
		Amount: amount,
		Kind:   serviceType.LedgerKind(),
	})
	if err != nil {
		return 0, a.fail(ctx, err, apperror.ErrInsufficientMainBalance)
	}
	a.record(ctx, domain.AuditActionTransfer, &provider, amount, conf, "")

	bal, err := retryRead(ctx, a.opts.ReadRetries, func() (int64, error) {
		return a.ledger.ReadBalance(ctx, domain.SubRef(u, provider))
	})
	if err != nil {
		return 0, apperror.ErrUpstream(fmt.Errorf("read sub-account balance: %w", err))
	}
	return bal, nil
}

// RetrieveFund runs one refund step for every sub-account of kind (all
// kinds when kind is empty). A network failure stops the sweep and returns
// the outcomes gathered so far together with the error.
func (a *AccountBroker) RetrieveFund(ctx context.Context, kind domain.LedgerKind) (*ports.RetrieveResult, error) {
	if kind != "" {
		if _, ok := domain.ParseLedgerKind(string(kind)); !ok {
			return nil, apperror.Validation(fmt.Sprintf("unknown ledger kind %q", kind))
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	u := a.user()
	subs, err := retryRead(ctx, a.opts.ReadRetries, func() ([]domain.SubAccount, error) {
		return a.ledger.ListSubAccounts(ctx, u, kind)
	})
	if err != nil {
		return nil, a.fail(ctx, apperror.ErrUpstream(fmt.Errorf("list sub-accounts: %w", err)), nil)
	}

	result := &ports.RetrieveResult{Kind: kind, Outcomes: make([]ports.RefundOutcome, 0, len(subs))}
	now := a.clock.Now()

	for _, sub := range subs {
		outcome, err := a.refundStep(ctx, sub, now)
		if err != nil {
			return result, a.fail(ctx, err, nil)
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	bal, err := a.mainBalance(ctx)
	if err != nil {
		return result, apperror.ErrUpstream(fmt.Errorf("read main balance: %w", err))
	}
	result.MainBalance = bal
	return result, nil
}

// refundStep applies NextRefundStep to one sub-account. A rejection means
// the ledger state moved under us (a refund unlocked or a fee landed), so
// the provider is reported as skipped and picked up by the next call.
func (a *AccountBroker) refundStep(ctx context.Context, sub domain.SubAccount, now time.Time) (ports.RefundOutcome, error) {
	u := a.user()
	provider := sub.Provider
	step := domain.NextRefundStep(sub, now)
	out := ports.RefundOutcome{Provider: provider, Action: step.Action, NextUnlock: step.NextUnlock}

	switch step.Action {
	case domain.RefundCompleted:
		ids := make([]uuid.UUID, 0, len(step.Refunds))
		for _, r := range step.Refunds {
			ids = append(ids, r.ID)
		}
		conf, err := a.submit(ctx, "refund_complete", domain.Transfer{
			From:      domain.RefundRef(u, provider),
			To:        domain.MainRef(u),
			Amount:    step.Amount,
			RefundIDs: ids,
		})
		if err != nil {
			return a.skippedAfterRace(out, err)
		}
		out.Amount = conf.Amount
		out.TxID = conf.TxID.String()
		a.record(ctx, domain.AuditActionRefundComplete, &provider, conf.Amount, conf, "")

	case domain.RefundInitiated:
		conf, err := a.submit(ctx, "refund_initiate", domain.Transfer{
			From:   domain.SubRef(u, provider),
			To:     domain.RefundRef(u, provider),
			Amount: step.Amount,
		})
		if err != nil {
			return a.skippedAfterRace(out, err)
		}
		out.Amount = step.Amount
		out.TxID = conf.TxID.String()
		if conf.Refund != nil && (out.NextUnlock == nil || conf.Refund.UnlockAt.Before(*out.NextUnlock)) {
			unlock := conf.Refund.UnlockAt
			out.NextUnlock = &unlock
		}
		a.record(ctx, domain.AuditActionRefundInitiate, &provider, step.Amount, conf, "")
	}
	return out, nil
}

func (a *AccountBroker) skippedAfterRace(out ports.RefundOutcome, err error) (ports.RefundOutcome, error) {
	if !domain.IsRejection(err) {
		return out, err
	}
	a.log.Warn().Err(err).Str("provider", out.Provider.Hex()).Str("step", string(out.Action)).Msg("refund step rejected, skipping provider")
	out.Action = domain.RefundSkippedLock
	return out, nil
}

// GetLedger reads every balance the user owns. It does not take the
// session mutex and may run alongside mutations.
func (a *AccountBroker) GetLedger(ctx context.Context) (*domain.LedgerSnapshot, error) {
	u := a.user()
	main, err := a.mainBalance(ctx)
	if err != nil {
		return nil, apperror.ErrUpstream(fmt.Errorf("read main balance: %w", err))
	}
	subs, err := retryRead(ctx, a.opts.ReadRetries, func() ([]domain.SubAccount, error) {
		return a.ledger.ListSubAccounts(ctx, u, "")
	})
	if err != nil {
		return nil, apperror.ErrUpstream(fmt.Errorf("list sub-accounts: %w", err))
	}

	snap := &domain.LedgerSnapshot{
		User:        u,
		MainBalance: main,
		SubAccounts: subs,
		TakenAt:     a.clock.Now(),
	}
	if snap.SubAccounts == nil {
		snap.SubAccounts = []domain.SubAccount{}
	}
	for i := range subs {
		snap.LockedTotal += subs[i].PendingTotal()
	}
	return snap, nil
}

// confirmedMainBalance reads the main balance after a confirmed transfer.
// The transfer stands even if this read fails.
func (a *AccountBroker) confirmedMainBalance(ctx context.Context) (int64, error) {
	bal, err := a.mainBalance(ctx)
	if err != nil {
		return 0, apperror.ErrUpstream(fmt.Errorf("read main balance: %w", err))
	}
	return bal, nil
}

var _ ports.AccountService = (*AccountBroker)(nil)
