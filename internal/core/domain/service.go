package domain

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// ServiceType is the kind of work a provider sells.
type ServiceType string

const (
	ServiceChatbot      ServiceType = "chatbot"
	ServiceTextToImage  ServiceType = "text-to-image"
	ServiceSpeechToText ServiceType = "speech-to-text"
	ServiceFineTuning   ServiceType = "fine-tuning"
)

// ParseServiceType validates a service type name.
func ParseServiceType(s string) (ServiceType, bool) {
	switch ServiceType(s) {
	case ServiceChatbot, ServiceTextToImage, ServiceSpeechToText, ServiceFineTuning:
		return ServiceType(s), true
	}
	return "", false
}

// LedgerKind maps a service type to the sub-account family that pays for it.
func (t ServiceType) LedgerKind() LedgerKind {
	if t == ServiceFineTuning {
		return LedgerKindFineTuning
	}
	return LedgerKindInference
}

// Verifiability tells whether responses carry a checkable integrity proof.
type Verifiability string

const (
	VerifiabilityNone Verifiability = "none"
	VerifiabilityTEE  Verifiability = "TEE"
)

// HealthStatus is the advisory provider health grade.
type HealthStatus string

const (
	HealthHealthy  HealthStatus = "healthy"
	HealthWarning  HealthStatus = "warning"
	HealthCritical HealthStatus = "critical"
	HealthUnknown  HealthStatus = "unknown"
)

// rank orders health grades for provider selection; higher is better.
func (h HealthStatus) rank() int {
	switch h {
	case HealthHealthy:
		return 3
	case HealthWarning:
		return 2
	case HealthCritical:
		return 0
	default:
		return 1
	}
}

// Health is advisory provider telemetry, never needed for correctness.
type Health struct {
	Status          HealthStatus  `json:"status"`
	UptimePercent   float64       `json:"uptime_percent"`
	AvgResponseTime time.Duration `json:"avg_response_time"`
	LastCheck       time.Time     `json:"last_check"`
}

// ProviderService is a read-only directory entry.
type ProviderService struct {
	Provider      common.Address  `json:"provider"`
	ServiceType   ServiceType     `json:"service_type"`
	Endpoint      string          `json:"endpoint"`
	Model         string          `json:"model"`
	InputPrice    decimal.Decimal `json:"input_price"`
	OutputPrice   decimal.Decimal `json:"output_price"`
	MinFee        int64           `json:"min_fee"`
	Verifiability Verifiability   `json:"verifiability"`
	TEESigner     common.Address  `json:"tee_signer,omitempty"`
	Health        *Health         `json:"health,omitempty"`
}

// IsVerifiable reports whether responses can be checked against a TEE signer.
func (s *ProviderService) IsVerifiable() bool {
	return s.Verifiability == VerifiabilityTEE && s.TEESigner != (common.Address{})
}

// HealthRank is used to prefer healthier providers; unknown health ranks
// above critical and below warning.
func (s *ProviderService) HealthRank() (int, float64) {
	if s.Health == nil {
		return HealthUnknown.rank(), 0
	}
	return s.Health.Status.rank(), s.Health.UptimePercent
}

// ResponseIDRule says where a service type's response identifier lives.
type ResponseIDRule struct {
	Header          string
	BodyField       string // empty: no body fallback
	HeaderMandatory bool
}

// ResponseIDHeader is the canonical response identifier header.
const ResponseIDHeader = "ZG-Res-Key"

var responseIDRules = map[ServiceType]ResponseIDRule{
	ServiceChatbot:      {Header: ResponseIDHeader, BodyField: "id"},
	ServiceTextToImage:  {Header: ResponseIDHeader, HeaderMandatory: true},
	ServiceSpeechToText: {Header: ResponseIDHeader, HeaderMandatory: true},
}

// ResponseIDRule returns the lookup rule for t. Fine-tuning responses have
// no per-response identifier.
func (t ServiceType) ResponseIDRule() (ResponseIDRule, bool) {
	r, ok := responseIDRules[t]
	return r, ok
}
