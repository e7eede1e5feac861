package domain

import (
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Settlement is the outcome of charging one provider response.
type Settlement struct {
	Provider       common.Address `json:"provider"`
	ResponseID     string         `json:"response_id,omitempty"`
	Verified       bool           `json:"verified"`
	Fee            int64          `json:"fee"`
	Charged        int64          `json:"charged"`
	UnderCollected bool           `json:"under_collected"`
	TxID           string         `json:"tx_id,omitempty"`
	Duplicate      bool           `json:"duplicate"`
	SettledAt      time.Time      `json:"settled_at"`
}

// BuildSettlementKey constructs the dedup key for a response.
// Format: "user:provider:responseID" with lowercase hex addresses.
func BuildSettlementKey(user, provider common.Address, responseID string) string {
	return strings.ToLower(user.Hex()) + ":" + strings.ToLower(provider.Hex()) + ":" + responseID
}
