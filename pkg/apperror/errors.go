package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)

	// LastKnownBalance is the main balance read after a failed mutation,
	// nil when the read itself failed or the error is not a mutation error.
	LastKnownBalance *int64 `json:"last_known_balance,omitempty"`
	// Undetermined marks failures where the ledger may or may not have
	// applied the operation. Callers reconcile through a ledger snapshot.
	Undetermined bool `json:"undetermined,omitempty"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches another *AppError by code, so errors.Is(err, ErrProviderUnknown())
// works across wrapping.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// WithBalance returns a copy of e carrying the last confirmed main balance.
func (e *AppError) WithBalance(balance int64) *AppError {
	cp := *e
	cp.LastKnownBalance = &balance
	return &cp
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// Code returns the code of the first AppError in err's chain, or "".
func Code(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// ---- Ledger (LED) ----

func ErrInvalidAmount() *AppError {
	return New("LED_001", "Amount must be greater than zero", http.StatusBadRequest)
}

func ErrInsufficientMainBalance() *AppError {
	return New("LED_002", "Insufficient main account balance", http.StatusPaymentRequired)
}

func ErrInsufficientFunds() *AppError {
	return New("LED_003", "Funding wallet lacks the requested amount", http.StatusPaymentRequired)
}

func ErrSubAccountNotFound() *AppError {
	return New("LED_004", "No sub-account exists for this provider", http.StatusNotFound)
}

func ErrSubAccountEmpty() *AppError {
	return New("LED_005", "Sub-account balance is zero", http.StatusPaymentRequired)
}

func ErrInvalidServiceType(serviceType string) *AppError {
	return New("LED_006", fmt.Sprintf("Unknown service type %q", serviceType), http.StatusBadRequest)
}

func ErrServiceKindMismatch() *AppError {
	return New("LED_007", "Sub-account already funded for a different service kind", http.StatusConflict)
}

// ---- Provider (PRV) ----

func ErrProviderUnknown() *AppError {
	return New("PRV_001", "Provider not found in directory", http.StatusNotFound)
}

func ErrProviderNotAcknowledged() *AppError {
	return New("PRV_002", "Provider has not been acknowledged", http.StatusForbidden)
}

func ErrInvalidAddress() *AppError {
	return New("PRV_003", "Invalid provider address", http.StatusBadRequest)
}

// ---- Network (NET) ----

// ErrNetwork reports a submission or confirmation failure. The outcome of
// the operation is unknown.
func ErrNetwork(err error) *AppError {
	e := Wrap("NET_001", "Ledger submission or confirmation failed", http.StatusBadGateway, err)
	e.Undetermined = true
	return e
}

// IsUndetermined reports whether err leaves the outcome of a ledger
// mutation unknown.
func IsUndetermined(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Undetermined
}

// ErrUpstream reports a failed idempotent read against an external service.
func ErrUpstream(err error) *AppError {
	return Wrap("NET_002", "Upstream service unavailable", http.StatusBadGateway, err)
}

// ---- Request authentication (SEC) ----

func ErrMissingAuthHeaders() *AppError {
	return New("SEC_001", "Missing request authentication headers", http.StatusUnauthorized)
}

func ErrInvalidSignature() *AppError {
	return New("SEC_002", "Invalid signature", http.StatusUnauthorized)
}

func ErrTimestampExpired() *AppError {
	return New("SEC_003", "Request timestamp expired", http.StatusForbidden)
}

func ErrNonceUsed() *AppError {
	return New("SEC_004", "Nonce has already been used", http.StatusForbidden)
}

func ErrRequestHashMismatch() *AppError {
	return New("SEC_005", "Request body does not match signed hash", http.StatusForbidden)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

func ErrSettlementInFlight() *AppError {
	return New("SYS_002", "Settlement for this response is still in flight", http.StatusConflict)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request validation error.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}
