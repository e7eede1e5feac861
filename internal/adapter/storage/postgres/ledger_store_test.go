package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"serving-broker/internal/core/domain"
	"serving-broker/pkg/clock"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testUser     = common.HexToAddress("0x00000000000000000000000000000000000000aA")
	testProvider = common.HexToAddress("0x00000000000000000000000000000000000000bB")
	testNow      = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
)

func newTestLedger(t *testing.T) (*LedgerStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewLedgerStore(mock, clock.NewFake(testNow), 24*time.Hour), mock
}

func subRow(kind string, balance int64) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"kind", "balance", "created_at", "updated_at"}).
		AddRow(kind, balance, testNow, testNow)
}

func refundRows(refunds ...domain.RefundRequest) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{"id", "amount", "requested_at", "unlock_at"})
	for _, r := range refunds {
		rows.AddRow(r.ID, r.Amount, r.RequestedAt, r.UnlockAt)
	}
	return rows
}

func TestHexAddr_Lowercase(t *testing.T) {
	assert.Equal(t, "0x00000000000000000000000000000000000000aa", hexAddr(testUser))
}

func TestLedgerStore_Deposit(t *testing.T) {
	store, mock := newTestLedger(t)
	owner := hexAddr(testUser)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT balance FROM funding_wallets WHERE owner .+ FOR UPDATE").
		WithArgs(owner).
		WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(int64(500)))
	mock.ExpectExec("UPDATE funding_wallets SET balance = balance -").
		WithArgs(int64(200), owner).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("INSERT INTO accounts").
		WithArgs(owner, int64(200), testNow).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO ledger_transfers").
		WithArgs(pgxmock.AnyArg(), "DEPOSIT", pgxmock.AnyArg(), pgxmock.AnyArg(), int64(200), testNow).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	conf, err := store.SubmitTransfer(context.Background(), domain.Transfer{
		From: domain.WalletRef(testUser), To: domain.MainRef(testUser), Amount: 200,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TransferDeposit, conf.Type)
	assert.Equal(t, int64(200), conf.Amount)
	assert.Equal(t, testNow, conf.ConfirmedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerStore_Deposit_InsufficientFunds(t *testing.T) {
	store, mock := newTestLedger(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT balance FROM funding_wallets").
		WithArgs(hexAddr(testUser)).
		WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(int64(10)))
	mock.ExpectRollback()

	_, err := store.SubmitTransfer(context.Background(), domain.Transfer{
		From: domain.WalletRef(testUser), To: domain.MainRef(testUser), Amount: 200,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.True(t, domain.IsRejection(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerStore_Withdraw_NoAccount(t *testing.T) {
	store, mock := newTestLedger(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT balance FROM accounts WHERE owner .+ FOR UPDATE").
		WithArgs(hexAddr(testUser)).
		WillReturnRows(pgxmock.NewRows([]string{"balance"}))
	mock.ExpectRollback()

	_, err := store.SubmitTransfer(context.Background(), domain.Transfer{
		From: domain.MainRef(testUser), To: domain.WalletRef(testUser), Amount: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerStore_Fund_KindMismatch(t *testing.T) {
	store, mock := newTestLedger(t)
	owner, provider := hexAddr(testUser), hexAddr(testProvider)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT balance FROM accounts").
		WithArgs(owner).
		WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(int64(100)))
	mock.ExpectExec("UPDATE accounts SET balance = balance -").
		WithArgs(int64(50), testNow, owner).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery("SELECT kind FROM sub_accounts .+ FOR UPDATE").
		WithArgs(owner, provider).
		WillReturnRows(pgxmock.NewRows([]string{"kind"}).AddRow("fine-tuning"))
	mock.ExpectRollback()

	_, err := store.SubmitTransfer(context.Background(), domain.Transfer{
		From: domain.MainRef(testUser), To: domain.SubRef(testUser, testProvider),
		Amount: 50, Kind: domain.LedgerKindInference,
	})
	assert.ErrorIs(t, err, domain.ErrLedgerKindMismatch)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerStore_InitiateRefund(t *testing.T) {
	store, mock := newTestLedger(t)
	owner, provider := hexAddr(testUser), hexAddr(testProvider)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT kind, balance, created_at, updated_at FROM sub_accounts .+ FOR UPDATE").
		WithArgs(owner, provider).
		WillReturnRows(subRow("inference", 100))
	mock.ExpectQuery("SELECT id, amount, requested_at, unlock_at FROM refund_requests").
		WithArgs(owner, provider).
		WillReturnRows(refundRows())
	mock.ExpectExec("INSERT INTO refund_requests").
		WithArgs(pgxmock.AnyArg(), owner, provider, int64(100), testNow, testNow.Add(24*time.Hour)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO ledger_transfers").
		WithArgs(pgxmock.AnyArg(), "REFUND_INITIATE", pgxmock.AnyArg(), pgxmock.AnyArg(), int64(100), testNow).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	conf, err := store.SubmitTransfer(context.Background(), domain.Transfer{
		From: domain.SubRef(testUser, testProvider), To: domain.RefundRef(testUser, testProvider), Amount: 100,
	})
	require.NoError(t, err)
	require.NotNil(t, conf.Refund)
	assert.Equal(t, testNow.Add(24*time.Hour), conf.Refund.UnlockAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerStore_CompleteRefund_Locked(t *testing.T) {
	store, mock := newTestLedger(t)
	owner, provider := hexAddr(testUser), hexAddr(testProvider)
	pending := domain.RefundRequest{
		ID: uuid.New(), Amount: 100,
		RequestedAt: testNow.Add(-time.Hour), UnlockAt: testNow.Add(23 * time.Hour),
	}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT kind, balance, created_at, updated_at FROM sub_accounts").
		WithArgs(owner, provider).
		WillReturnRows(subRow("inference", 100))
	mock.ExpectQuery("SELECT id, amount, requested_at, unlock_at FROM refund_requests").
		WithArgs(owner, provider).
		WillReturnRows(refundRows(pending))
	mock.ExpectRollback()

	_, err := store.SubmitTransfer(context.Background(), domain.Transfer{
		From: domain.RefundRef(testUser, testProvider), To: domain.MainRef(testUser),
		RefundIDs: []uuid.UUID{pending.ID},
	})
	assert.ErrorIs(t, err, domain.ErrRefundLocked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerStore_ChargeFee_ShrinksNewestRefund(t *testing.T) {
	store, mock := newTestLedger(t)
	owner, provider := hexAddr(testUser), hexAddr(testProvider)
	older := domain.RefundRequest{ID: uuid.New(), Amount: 40, RequestedAt: testNow.Add(-2 * time.Hour), UnlockAt: testNow.Add(22 * time.Hour)}
	newer := domain.RefundRequest{ID: uuid.New(), Amount: 60, RequestedAt: testNow.Add(-time.Hour), UnlockAt: testNow.Add(23 * time.Hour)}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT kind, balance, created_at, updated_at FROM sub_accounts").
		WithArgs(owner, provider).
		WillReturnRows(subRow("inference", 100))
	mock.ExpectQuery("SELECT id, amount, requested_at, unlock_at FROM refund_requests").
		WithArgs(owner, provider).
		WillReturnRows(refundRows(older, newer))
	mock.ExpectExec("UPDATE refund_requests SET amount").
		WithArgs(int64(30), newer.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE sub_accounts SET balance").
		WithArgs(int64(70), testNow, owner, provider).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("INSERT INTO provider_payouts").
		WithArgs(owner, provider, int64(30)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO ledger_transfers").
		WithArgs(pgxmock.AnyArg(), "FEE", pgxmock.AnyArg(), pgxmock.AnyArg(), int64(30), testNow).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	_, err := store.SubmitTransfer(context.Background(), domain.Transfer{
		From: domain.SubRef(testUser, testProvider), To: domain.ProviderRef(testUser, testProvider), Amount: 30,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerStore_CommitFailureIsNotRejection(t *testing.T) {
	store, mock := newTestLedger(t)
	owner := hexAddr(testUser)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT balance FROM funding_wallets").
		WithArgs(owner).
		WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(int64(500)))
	mock.ExpectExec("UPDATE funding_wallets").WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("INSERT INTO accounts").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO ledger_transfers").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit().WillReturnError(errors.New("connection reset"))

	_, err := store.SubmitTransfer(context.Background(), domain.Transfer{
		From: domain.WalletRef(testUser), To: domain.MainRef(testUser), Amount: 5,
	})
	require.Error(t, err)
	assert.False(t, domain.IsRejection(err))
}

func TestLedgerStore_ReadBalance(t *testing.T) {
	store, mock := newTestLedger(t)
	owner, provider := hexAddr(testUser), hexAddr(testProvider)

	mock.ExpectQuery("SELECT balance FROM accounts WHERE owner").
		WithArgs(owner).
		WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(int64(42)))
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount\\), 0\\) FROM refund_requests").
		WithArgs(owner, provider).
		WillReturnRows(pgxmock.NewRows([]string{"sum"}).AddRow(int64(7)))
	mock.ExpectQuery("SELECT amount FROM provider_payouts").
		WithArgs(owner, provider).
		WillReturnRows(pgxmock.NewRows([]string{"amount"}))

	ctx := context.Background()
	main, err := store.ReadBalance(ctx, domain.MainRef(testUser))
	require.NoError(t, err)
	assert.Equal(t, int64(42), main)

	locked, err := store.ReadBalance(ctx, domain.RefundRef(testUser, testProvider))
	require.NoError(t, err)
	assert.Equal(t, int64(7), locked)

	paid, err := store.ReadBalance(ctx, domain.ProviderRef(testUser, testProvider))
	require.NoError(t, err)
	assert.Equal(t, int64(0), paid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerStore_ReadSubAccount_NotFound(t *testing.T) {
	store, mock := newTestLedger(t)

	mock.ExpectQuery("SELECT kind, balance, created_at, updated_at FROM sub_accounts").
		WithArgs(hexAddr(testUser), hexAddr(testProvider)).
		WillReturnRows(pgxmock.NewRows([]string{"kind", "balance", "created_at", "updated_at"}))

	sub, err := store.ReadSubAccount(context.Background(), testUser, testProvider)
	require.NoError(t, err)
	assert.Nil(t, sub)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerStore_ListSubAccounts(t *testing.T) {
	store, mock := newTestLedger(t)
	owner := hexAddr(testUser)
	refund := domain.RefundRequest{ID: uuid.New(), Amount: 5, RequestedAt: testNow, UnlockAt: testNow.Add(24 * time.Hour)}

	mock.ExpectQuery("SELECT provider, kind, balance, created_at, updated_at FROM sub_accounts").
		WithArgs(owner, "inference").
		WillReturnRows(pgxmock.NewRows([]string{"provider", "kind", "balance", "created_at", "updated_at"}).
			AddRow(hexAddr(testProvider), "inference", int64(20), testNow, testNow))
	mock.ExpectQuery("SELECT provider, id, amount, requested_at, unlock_at FROM refund_requests").
		WithArgs(owner).
		WillReturnRows(pgxmock.NewRows([]string{"provider", "id", "amount", "requested_at", "unlock_at"}).
			AddRow(hexAddr(testProvider), refund.ID, refund.Amount, refund.RequestedAt, refund.UnlockAt))

	subs, err := store.ListSubAccounts(context.Background(), testUser, domain.LedgerKindInference)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, testProvider, subs[0].Provider)
	assert.Equal(t, int64(15), subs[0].Spare())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerStore_Acknowledge(t *testing.T) {
	store, mock := newTestLedger(t)
	owner, provider := hexAddr(testUser), hexAddr(testProvider)

	mock.ExpectExec("INSERT INTO acknowledgements").
		WithArgs(owner, provider, testNow).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(owner, provider).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	ctx := context.Background()
	require.NoError(t, store.Acknowledge(ctx, testUser, testProvider))
	ok, err := store.IsAcknowledged(ctx, testUser, testProvider)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
