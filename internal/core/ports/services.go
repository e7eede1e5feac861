package ports

import (
	"context"
	"time"

	"serving-broker/internal/core/domain"

	"github.com/ethereum/go-ethereum/common"
)

// Signer holds the wallet key a broker session is bound to.
type Signer interface {
	Address() common.Address
	// SignText signs msg as an EIP-191 personal message.
	SignText(msg []byte) ([]byte, error)
}

// SignatureService handles HMAC-SHA256 signing and verification.
type SignatureService interface {
	Sign(secretKey string, payload string) string
	Verify(secretKey string, payload string, signature string) bool
}

// --- Service Ports (Business Logic) ---

// AccountService moves funds between the wallet, the main account and
// provider sub-accounts.
type AccountService interface {
	Deposit(ctx context.Context, amount int64) (int64, error)
	TransferFund(ctx context.Context, provider common.Address, serviceType domain.ServiceType, amount int64) (int64, error)
	RetrieveFund(ctx context.Context, kind domain.LedgerKind) (*RetrieveResult, error)
	Withdraw(ctx context.Context, amount int64) (int64, error)
	GetLedger(ctx context.Context) (*domain.LedgerSnapshot, error)
}

// RefundOutcome is the result of one refund step for one provider.
type RefundOutcome struct {
	Provider   common.Address      `json:"provider"`
	Action     domain.RefundAction `json:"action"`
	Amount     int64               `json:"amount"`
	TxID       string              `json:"tx_id,omitempty"`
	NextUnlock *time.Time          `json:"next_unlock,omitempty"`
}

// RetrieveResult aggregates a retrieve-fund call.
type RetrieveResult struct {
	Kind        domain.LedgerKind `json:"kind"`
	Outcomes    []RefundOutcome   `json:"outcomes"`
	MainBalance int64             `json:"main_balance"`
}

// ServiceMetadata is what a caller needs to reach a provider.
type ServiceMetadata struct {
	Endpoint string `json:"endpoint"`
	Model    string `json:"model"`
}

// RequestAuthenticator issues and checks per-request billing credentials.
type RequestAuthenticator interface {
	AcknowledgeProvider(ctx context.Context, provider common.Address) error
	GetRequestHeaders(ctx context.Context, provider common.Address, body []byte) (map[string]string, error)
	GetServiceMetadata(ctx context.Context, provider common.Address) (*ServiceMetadata, error)
	// VerifyRequestHeaders checks headers produced by GetRequestHeaders and
	// returns the signing user.
	VerifyRequestHeaders(ctx context.Context, headers map[string]string, body []byte) (common.Address, error)
}

// SettleRequest identifies one provider response to be charged.
type SettleRequest struct {
	Provider   common.Address
	ResponseID string // empty: no deduplication
	UsageData  string // usage JSON, empty when the provider reported none
}

// ResponseSettler verifies provider responses and deducts their fees.
type ResponseSettler interface {
	ProcessResponse(ctx context.Context, req SettleRequest) (*domain.Settlement, error)
}

// ProviderDirectory resolves provider services.
type ProviderDirectory interface {
	ListServices(ctx context.Context, offset, limit int, includeUnacknowledged bool) ([]domain.ProviderService, error)
	GetService(ctx context.Context, provider common.Address) (*domain.ProviderService, error)
	SelectProvider(ctx context.Context, serviceType domain.ServiceType) (*domain.ProviderService, error)
}

// AuditService records ledger-affecting actions.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}

// DisputeNotifier publishes disputed or under-collected settlements.
type DisputeNotifier interface {
	Notify(ctx context.Context, user common.Address, s *domain.Settlement, reason domain.DisputeReason) error
}
