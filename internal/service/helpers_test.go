package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"serving-broker/internal/adapter/storage/memory"
	"serving-broker/internal/core/domain"
	"serving-broker/pkg/apperror"
	"serving-broker/pkg/clock"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	t0              = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	chatProvider    = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	imageProvider   = common.HexToAddress("0x00000000000000000000000000000000000000a2")
	tuneProvider    = common.HexToAddress("0x00000000000000000000000000000000000000a3")
	unknownProvider = common.HexToAddress("0x00000000000000000000000000000000000000ff")
)

func assertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, expectedCode, appErr.Code)
}

func testOptions() Options {
	o := DefaultOptions()
	o.ReadRetries = 1
	o.InFlightWait = 2 * time.Second
	o.ConfirmTimeout = time.Second
	o.ProofTimeout = time.Second
	return o
}

func chatService() domain.ProviderService {
	return domain.ProviderService{
		Provider:      chatProvider,
		ServiceType:   domain.ServiceChatbot,
		Endpoint:      "https://chat.example.com/v1",
		Model:         "llama-3-8b",
		InputPrice:    decimal.NewFromInt(1),
		OutputPrice:   decimal.NewFromInt(2),
		MinFee:        3,
		Verifiability: domain.VerifiabilityNone,
	}
}

func imageService() domain.ProviderService {
	return domain.ProviderService{
		Provider:    imageProvider,
		ServiceType: domain.ServiceTextToImage,
		Endpoint:    "https://img.example.com/v1",
		Model:       "flux",
		OutputPrice: decimal.NewFromInt(50),
	}
}

func tuneService() domain.ProviderService {
	return domain.ProviderService{
		Provider:    tuneProvider,
		ServiceType: domain.ServiceFineTuning,
		Endpoint:    "https://tune.example.com",
		Model:       "qwen-7b",
		InputPrice:  decimal.RequireFromString("0.5"),
	}
}

// sliceSource serves a fixed list of services and counts calls.
type sliceSource struct {
	mu       sync.Mutex
	services []domain.ProviderService
	calls    int
	err      error
}

func (s *sliceSource) ListServices(_ context.Context, offset, limit int) ([]domain.ProviderService, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if offset >= len(s.services) {
		return nil, nil
	}
	end := len(s.services)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return append([]domain.ProviderService(nil), s.services[offset:end]...), nil
}

// flakyLedger fails submissions while failSubmit is set. With lostConfirm
// set, the transfer is applied but the confirmation is reported lost.
type flakyLedger struct {
	*memory.LedgerStore
	mu          sync.Mutex
	failSubmit  error
	lostConfirm error
}

func (f *flakyLedger) setFail(err error) {
	f.mu.Lock()
	f.failSubmit = err
	f.mu.Unlock()
}

func (f *flakyLedger) setLostConfirm(err error) {
	f.mu.Lock()
	f.lostConfirm = err
	f.mu.Unlock()
}

func (f *flakyLedger) SubmitTransfer(ctx context.Context, t domain.Transfer) (*domain.Confirmation, error) {
	f.mu.Lock()
	failErr, lostErr := f.failSubmit, f.lostConfirm
	f.mu.Unlock()
	if failErr != nil {
		return nil, failErr
	}
	conf, err := f.LedgerStore.SubmitTransfer(ctx, t)
	if err == nil && lostErr != nil {
		return nil, lostErr
	}
	return conf, err
}

type harness struct {
	broker      *Broker
	ledger      *flakyLedger
	clock       *clock.Fake
	signer      *WalletSigner
	source      *sliceSource
	settlements *memory.SettlementStore
	nonces      *memory.NonceStore
}

type harnessOption func(*Deps)

func newHarness(t *testing.T, opts ...harnessOption) *harness {
	t.Helper()
	signer, err := GenerateWalletSigner()
	require.NoError(t, err)

	clk := clock.NewFake(t0)
	h := &harness{
		ledger:      &flakyLedger{LedgerStore: memory.NewLedgerStore(clk, 24*time.Hour)},
		clock:       clk,
		signer:      signer,
		source:      &sliceSource{services: []domain.ProviderService{chatService(), imageService(), tuneService()}},
		settlements: memory.NewSettlementStore(clk),
		nonces:      memory.NewNonceStore(clk),
	}
	deps := Deps{
		Signer:      signer,
		Ledger:      h.ledger,
		Source:      h.source,
		Nonces:      h.nonces,
		Settlements: h.settlements,
		Clock:       clk,
	}
	for _, o := range opts {
		o(&deps)
	}
	h.broker, err = NewBroker(deps, testOptions(), zerolog.Nop())
	require.NoError(t, err)
	return h
}

func (h *harness) user() common.Address { return h.signer.Address() }

// fund credits the wallet, deposits and moves amount into provider's
// sub-account.
func (h *harness) fund(t *testing.T, provider common.Address, st domain.ServiceType, deposit, transfer int64) {
	t.Helper()
	ctx := context.Background()
	h.ledger.FundWallet(h.user(), deposit)
	_, err := h.broker.Accounts.Deposit(ctx, deposit)
	require.NoError(t, err)
	if transfer > 0 {
		_, err = h.broker.Accounts.TransferFund(ctx, provider, st, transfer)
		require.NoError(t, err)
	}
}

func (h *harness) sub(t *testing.T, provider common.Address) domain.SubAccount {
	t.Helper()
	sub, err := h.ledger.ReadSubAccount(context.Background(), h.user(), provider)
	require.NoError(t, err)
	require.NotNil(t, sub)
	return *sub
}

func (h *harness) main(t *testing.T) int64 {
	t.Helper()
	bal, err := h.ledger.ReadBalance(context.Background(), domain.MainRef(h.user()))
	require.NoError(t, err)
	return bal
}
