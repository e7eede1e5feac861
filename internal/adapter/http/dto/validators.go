package dto

import (
	"regexp"

	"serving-broker/internal/core/domain"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var safeStringRe = regexp.MustCompile(`^[a-zA-Z0-9_\-\.:]+$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("safe_id", validateSafeID)
		_ = v.RegisterValidation("eth_addr", validateEthAddr)
		_ = v.RegisterValidation("service_type", validateServiceType)
		_ = v.RegisterValidation("ledger_kind", validateLedgerKind)
	}
}

// validateSafeID allows alphanumeric, underscore, dash, dot and colon.
func validateSafeID(fl validator.FieldLevel) bool {
	return safeStringRe.MatchString(fl.Field().String())
}

// validateEthAddr accepts 0x-prefixed or bare 20-byte hex addresses.
func validateEthAddr(fl validator.FieldLevel) bool {
	return common.IsHexAddress(fl.Field().String())
}

func validateServiceType(fl validator.FieldLevel) bool {
	_, ok := domain.ParseServiceType(fl.Field().String())
	return ok
}

func validateLedgerKind(fl validator.FieldLevel) bool {
	_, ok := domain.ParseLedgerKind(fl.Field().String())
	return ok
}

// ParseAddress validates a path or query address.
func ParseAddress(s string) (common.Address, bool) {
	if !common.IsHexAddress(s) {
		return common.Address{}, false
	}
	return common.HexToAddress(s), true
}
