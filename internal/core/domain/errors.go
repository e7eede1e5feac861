package domain

import "errors"

// Rejections reported by ledger stores. They mean the transfer was not
// applied; any other store error leaves the outcome unknown.
var (
	ErrInvalidTransfer     = errors.New("ledger: invalid transfer")
	ErrInsufficientBalance = errors.New("ledger: insufficient balance")
	ErrInsufficientFunds   = errors.New("ledger: funding wallet lacks amount")
	ErrAccountNotFound     = errors.New("ledger: account not found")
	ErrSubAccountNotFound  = errors.New("ledger: sub-account not found")
	ErrRefundNotFound      = errors.New("ledger: refund not found")
	ErrRefundLocked        = errors.New("ledger: refund still locked")
	ErrLedgerKindMismatch  = errors.New("ledger: sub-account kind mismatch")
	ErrNotAcknowledged     = errors.New("ledger: provider not acknowledged")
)

// IsRejection reports whether err is a definite store rejection.
func IsRejection(err error) bool {
	return errors.Is(err, ErrInvalidTransfer) ||
		errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrSubAccountNotFound) ||
		errors.Is(err, ErrRefundNotFound) ||
		errors.Is(err, ErrRefundLocked) ||
		errors.Is(err, ErrLedgerKindMismatch) ||
		errors.Is(err, ErrNotAcknowledged)
}
