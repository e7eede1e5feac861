package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"serving-broker/internal/adapter/storage/memory"
	"serving-broker/internal/core/domain"
	"serving-broker/internal/core/ports"
	"serving-broker/pkg/apperror"
	"serving-broker/pkg/clock"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestLedgerConservation runs random operation sequences and checks after
// every step that no balance goes negative and that
// deposits - withdrawals - fees == main + sum(sub balances).
func TestLedgerConservation(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ctx := context.Background()
		clk := clock.NewFake(t0)
		ledger := memory.NewLedgerStore(clk, 24*time.Hour)
		signer, err := GenerateWalletSigner()
		require.NoError(rt, err)
		ledger.FundWallet(signer.Address(), 1_000_000)

		b, err := NewBroker(Deps{
			Signer:      signer,
			Ledger:      ledger,
			Source:      &sliceSource{services: []domain.ProviderService{chatService(), imageService(), tuneService()}},
			Nonces:      memory.NewNonceStore(clk),
			Settlements: memory.NewSettlementStore(clk),
			Clock:       clk,
		}, testOptions(), zerolog.Nop())
		require.NoError(rt, err)

		var deposited, withdrawn int64
		steps := rapid.IntRange(1, 40).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			amount := rapid.Int64Range(-2, 500).Draw(rt, "amount")
			switch op := rapid.IntRange(0, 5).Draw(rt, "op"); op {
			case 0:
				if _, err := b.Accounts.Deposit(ctx, amount); err == nil {
					deposited += amount
				} else {
					expectBusinessError(rt, err)
				}
			case 1:
				if _, err := b.Accounts.Withdraw(ctx, amount); err == nil {
					withdrawn += amount
				} else {
					expectBusinessError(rt, err)
				}
			case 2:
				svc := rapid.SampledFrom([]domain.ProviderService{chatService(), imageService(), tuneService()}).Draw(rt, "service")
				if _, err := b.Accounts.TransferFund(ctx, svc.Provider, svc.ServiceType, amount); err != nil {
					expectBusinessError(rt, err)
				}
			case 3:
				if _, err := b.Accounts.RetrieveFund(ctx, ""); err != nil {
					expectBusinessError(rt, err)
				}
			case 4:
				id := rapid.SampledFrom([]string{"", "r1", "r2", "r3"}).Draw(rt, "response")
				tokens := rapid.Int64Range(0, 200).Draw(rt, "tokens")
				_, err := b.Settler.ProcessResponse(ctx, ports.SettleRequest{
					Provider:   chatProvider,
					ResponseID: id,
					UsageData:  fmt.Sprintf(`{"total_tokens":%d}`, tokens),
				})
				if err != nil {
					expectBusinessError(rt, err)
				}
			case 5:
				clk.Advance(time.Duration(rapid.IntRange(0, 30).Draw(rt, "hours")) * time.Hour)
			}

			snap, err := b.Accounts.GetLedger(ctx)
			require.NoError(rt, err)
			var fees int64
			for _, p := range []domain.ProviderService{chatService(), imageService(), tuneService()} {
				paid, err := ledger.ReadBalance(ctx, domain.ProviderRef(signer.Address(), p.Provider))
				require.NoError(rt, err)
				fees += paid
			}

			if snap.MainBalance < 0 {
				rt.Fatalf("negative main balance %d", snap.MainBalance)
			}
			for _, sub := range snap.SubAccounts {
				if sub.Balance < 0 || sub.PendingTotal() > sub.Balance {
					rt.Fatalf("sub-account %s out of bounds: balance %d pending %d", sub.Provider.Hex(), sub.Balance, sub.PendingTotal())
				}
			}
			if got, want := snap.TotalHeld(), deposited-withdrawn-fees; got != want {
				rt.Fatalf("conservation violated: held %d, expected %d", got, want)
			}
		}
	})
}

// expectBusinessError fails on errors other than synchronous validation or
// ledger rejections.
func expectBusinessError(rt *rapid.T, err error) {
	switch apperror.Code(err) {
	case "LED_001", "LED_002", "LED_003", "LED_004", "LED_005", "LED_007", "VAL_001":
		return
	}
	rt.Fatalf("unexpected error: %v", err)
}
