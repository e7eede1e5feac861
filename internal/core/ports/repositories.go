package ports

import (
	"context"
	"time"

	"serving-broker/internal/core/domain"

	"github.com/ethereum/go-ethereum/common"
)

// LedgerStore is the external ledger holding every balance. It is the only
// source of truth: SubmitTransfer returns only after the transfer is
// durably applied, and a domain rejection error (see domain.IsRejection)
// means nothing changed. Any other error leaves the outcome unknown.
type LedgerStore interface {
	SubmitTransfer(ctx context.Context, t domain.Transfer) (*domain.Confirmation, error)
	// ReadBalance returns the balance behind ref. Missing accounts read as 0.
	// RefSub reads the full sub-account balance, RefRefund the pending
	// refund total and RefProvider the fees the provider collected.
	ReadBalance(ctx context.Context, ref domain.AccountRef) (int64, error)
	ReadPendingRefunds(ctx context.Context, user, provider common.Address) ([]domain.RefundRequest, error)
	// ReadSubAccount returns nil, nil when the sub-account does not exist.
	ReadSubAccount(ctx context.Context, user, provider common.Address) (*domain.SubAccount, error)
	// ListSubAccounts lists the user's sub-accounts; an empty kind lists all.
	ListSubAccounts(ctx context.Context, user common.Address, kind domain.LedgerKind) ([]domain.SubAccount, error)
	Acknowledge(ctx context.Context, user, provider common.Address) error
	IsAcknowledged(ctx context.Context, user, provider common.Address) (bool, error)
}

// ServiceSource is the provider registry backing the directory.
type ServiceSource interface {
	ListServices(ctx context.Context, offset, limit int) ([]domain.ProviderService, error)
}

// Proof is a provider's signed attestation over a response.
type Proof struct {
	Text      string `json:"text"`
	Signature string `json:"signature"`
}

// ProofFetcher retrieves the integrity proof for a response from a provider.
type ProofFetcher interface {
	FetchProof(ctx context.Context, svc *domain.ProviderService, responseID string) (*Proof, error)
}

// NonceStore manages nonce uniqueness for replay attack prevention.
type NonceStore interface {
	// CheckAndSet atomically checks if nonce exists, sets it if not.
	// Returns true if nonce is new (valid), false if already used.
	CheckAndSet(ctx context.Context, user string, nonce string, ttl time.Duration) (bool, error)
}

// SettlementStore deduplicates response settlements.
type SettlementStore interface {
	// Reserve atomically claims key. It returns reserved=true when the
	// caller now owns the settlement. Otherwise existing holds the completed
	// record, or is nil while another caller is still settling.
	Reserve(ctx context.Context, key string, ttl time.Duration) (reserved bool, existing *domain.Settlement, err error)
	// Complete stores the outcome for a reserved key.
	Complete(ctx context.Context, key string, s *domain.Settlement, ttl time.Duration) error
	// Release drops a reservation whose settlement did not happen.
	Release(ctx context.Context, key string) error
}

// RateLimitResult holds the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   int64 // Unix timestamp
}

// RateLimitStore counts requests per key in fixed windows.
type RateLimitStore interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (*RateLimitResult, error)
}

// AuditRepository persists audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}

// DisputeRepository records dispute webhook delivery attempts.
type DisputeRepository interface {
	Create(ctx context.Context, d *domain.DisputeDelivery) error
	Update(ctx context.Context, d *domain.DisputeDelivery) error
}
