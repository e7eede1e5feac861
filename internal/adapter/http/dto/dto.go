package dto

import "time"

// AmountRequest is the request body for deposit and withdraw. Amounts are
// range-checked by the account service.
type AmountRequest struct {
	Amount int64 `json:"amount"`
}

// BalanceResponse carries the main balance after a mutation.
type BalanceResponse struct {
	MainBalance int64 `json:"main_balance"`
}

// TransferRequest is the request body for funding a provider sub-account.
type TransferRequest struct {
	Provider    string `json:"provider" binding:"required,eth_addr"`
	ServiceType string `json:"service_type" binding:"required,service_type"`
	Amount      int64  `json:"amount"`
}

// TransferResponse carries the sub-account balance after a transfer.
type TransferResponse struct {
	Provider   string `json:"provider"`
	SubBalance int64  `json:"sub_balance"`
}

// RetrieveRequest is the request body for retrieve-fund. An empty kind
// sweeps every sub-account.
type RetrieveRequest struct {
	Kind string `json:"kind" binding:"omitempty,ledger_kind"`
}

// RefundOutcomeResponse is one provider's retrieve-fund outcome.
type RefundOutcomeResponse struct {
	Provider   string `json:"provider"`
	Action     string `json:"action"`
	Amount     int64  `json:"amount"`
	TxID       string `json:"tx_id,omitempty"`
	NextUnlock string `json:"next_unlock,omitempty"`
}

// RetrieveResponse is the result of a retrieve-fund sweep.
type RetrieveResponse struct {
	Kind        string                  `json:"kind,omitempty"`
	Outcomes    []RefundOutcomeResponse `json:"outcomes"`
	MainBalance int64                   `json:"main_balance"`
}

// RefundResponse is a pending refund in a ledger snapshot.
type RefundResponse struct {
	ID          string `json:"id"`
	Amount      int64  `json:"amount"`
	RequestedAt string `json:"requested_at"`
	UnlockAt    string `json:"unlock_at"`
}

// SubAccountResponse is one sub-account in a ledger snapshot.
type SubAccountResponse struct {
	Provider       string           `json:"provider"`
	Kind           string           `json:"kind"`
	Balance        int64            `json:"balance"`
	Spare          int64            `json:"spare"`
	PendingRefunds []RefundResponse `json:"pending_refunds"`
}

// LedgerResponse is the read-only ledger snapshot.
type LedgerResponse struct {
	User        string               `json:"user"`
	MainBalance int64                `json:"main_balance"`
	LockedTotal int64                `json:"locked_total"`
	SubAccounts []SubAccountResponse `json:"sub_accounts"`
	TakenAt     string               `json:"taken_at"`
}

// ListServicesQuery holds the directory listing parameters.
type ListServicesQuery struct {
	Offset                int  `form:"offset" binding:"gte=0"`
	Limit                 int  `form:"limit" binding:"gte=0,lte=500"`
	IncludeUnacknowledged bool `form:"include_unacknowledged"`
}

// SelectQuery picks a provider for a service type.
type SelectQuery struct {
	ServiceType string `form:"service_type" binding:"required,service_type"`
}

// ServiceResponse is one directory entry.
type ServiceResponse struct {
	Provider      string          `json:"provider"`
	ServiceType   string          `json:"service_type"`
	Endpoint      string          `json:"endpoint"`
	Model         string          `json:"model"`
	InputPrice    string          `json:"input_price"`
	OutputPrice   string          `json:"output_price"`
	MinFee        int64           `json:"min_fee"`
	Verifiability string          `json:"verifiability"`
	TEESigner     string          `json:"tee_signer,omitempty"`
	Health        *HealthResponse `json:"health,omitempty"`
}

// HealthResponse is advisory provider health.
type HealthResponse struct {
	Status          string  `json:"status"`
	UptimePercent   float64 `json:"uptime_percent"`
	AvgResponseTime int64   `json:"avg_response_time_ms"`
	LastCheck       string  `json:"last_check,omitempty"`
}

// HeadersResponse carries the billing headers for one request.
type HeadersResponse struct {
	Headers map[string]string `json:"headers"`
}

// VerifyRequest is a provider-side header check.
type VerifyRequest struct {
	Headers map[string]string `json:"headers" binding:"required"`
	Body    string            `json:"body"`
}

// VerifyResponse names the user that signed the headers.
type VerifyResponse struct {
	User string `json:"user"`
}

// SettleRequest hands a provider response to the settler. ResponseID and
// Usage may be given directly or extracted from the raw response.
type SettleRequest struct {
	ResponseID      string            `json:"response_id" binding:"omitempty,max=256,safe_id"`
	Usage           string            `json:"usage"`
	ResponseHeaders map[string]string `json:"response_headers"`
	ResponseBody    string            `json:"response_body"`
}

// SettlementResponse is the outcome of a settlement.
type SettlementResponse struct {
	Provider       string `json:"provider"`
	ResponseID     string `json:"response_id,omitempty"`
	Verified       bool   `json:"verified"`
	Fee            int64  `json:"fee"`
	Charged        int64  `json:"charged"`
	UnderCollected bool   `json:"under_collected"`
	TxID           string `json:"tx_id,omitempty"`
	Duplicate      bool   `json:"duplicate"`
	SettledAt      string `json:"settled_at"`
}

// FormatTime renders timestamps in API responses.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
