package domain

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// LedgerSnapshot is a point-in-time read of every balance the user owns.
type LedgerSnapshot struct {
	User        common.Address `json:"user"`
	MainBalance int64          `json:"main_balance"`
	LockedTotal int64          `json:"locked_total"`
	SubAccounts []SubAccount   `json:"sub_accounts"`
	TakenAt     time.Time      `json:"taken_at"`
}

// SubAccount returns the snapshot entry for provider.
func (s *LedgerSnapshot) SubAccount(provider common.Address) (SubAccount, bool) {
	for _, sub := range s.SubAccounts {
		if sub.Provider == provider {
			return sub, true
		}
	}
	return SubAccount{}, false
}

// TotalHeld is the main balance plus every sub-account balance.
func (s *LedgerSnapshot) TotalHeld() int64 {
	total := s.MainBalance
	for _, sub := range s.SubAccounts {
		total += sub.Balance
	}
	return total
}
