package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrFeeOverflow is returned when priced usage does not fit a ledger amount.
var ErrFeeOverflow = errors.New("usage fee exceeds ledger range")

var maxFee = decimal.NewFromInt(math.MaxInt64)

// Usage is the metered consumption reported with a response. Only the
// fields relevant to the service type are set.
type Usage struct {
	PromptTokens     int64           `json:"prompt_tokens"`
	CompletionTokens int64           `json:"completion_tokens"`
	TotalTokens      int64           `json:"total_tokens"`
	Images           int64           `json:"images"`
	Seconds          decimal.Decimal `json:"seconds"`
}

// ParseUsage decodes usage JSON. Blank input means no usage was reported
// and yields nil.
func ParseUsage(raw string) (*Usage, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var u Usage
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, fmt.Errorf("parse usage: %w", err)
	}
	if u.PromptTokens < 0 || u.CompletionTokens < 0 || u.TotalTokens < 0 || u.Images < 0 || u.Seconds.IsNegative() {
		return nil, fmt.Errorf("parse usage: negative quantity")
	}
	return &u, nil
}

// UsageFee prices u for the service. The result is rounded up to the
// smallest ledger unit and must fit an int64.
func (s *ProviderService) UsageFee(u *Usage) (int64, error) {
	var fee decimal.Decimal
	switch s.ServiceType {
	case ServiceChatbot:
		if u.PromptTokens > 0 || u.CompletionTokens > 0 {
			fee = s.InputPrice.Mul(decimal.NewFromInt(u.PromptTokens)).
				Add(s.OutputPrice.Mul(decimal.NewFromInt(u.CompletionTokens)))
		} else {
			fee = s.OutputPrice.Mul(decimal.NewFromInt(u.TotalTokens))
		}
	case ServiceTextToImage:
		fee = s.OutputPrice.Mul(decimal.NewFromInt(u.Images))
	case ServiceSpeechToText:
		fee = s.InputPrice.Mul(u.Seconds)
	case ServiceFineTuning:
		fee = s.InputPrice.Mul(decimal.NewFromInt(u.TotalTokens))
	}
	if fee.IsNegative() {
		return 0, nil
	}
	fee = fee.Ceil()
	if fee.GreaterThan(maxFee) {
		return 0, ErrFeeOverflow
	}
	return fee.IntPart(), nil
}
