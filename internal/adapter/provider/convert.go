package provider

import (
	"fmt"

	"serving-broker/config"
	"serving-broker/internal/core/domain"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// serviceJSON is the wire form of a directory entry, shared by the HTTP
// indexer and static configuration.
type serviceJSON struct {
	Provider      string      `json:"provider"`
	ServiceType   string      `json:"service_type"`
	Endpoint      string      `json:"endpoint"`
	Model         string      `json:"model"`
	InputPrice    string      `json:"input_price"`
	OutputPrice   string      `json:"output_price"`
	MinFee        int64       `json:"min_fee"`
	Verifiability string      `json:"verifiability"`
	TEESigner     string      `json:"tee_signer"`
	Health        *healthJSON `json:"health,omitempty"`
}

type healthJSON struct {
	Status          string  `json:"status"`
	UptimePercent   float64 `json:"uptime_percent"`
	AvgResponseTime int64   `json:"avg_response_time_ms"`
	LastCheck       int64   `json:"last_check"` // Unix seconds
}

func (s serviceJSON) toDomain() (domain.ProviderService, error) {
	var out domain.ProviderService

	if !common.IsHexAddress(s.Provider) {
		return out, fmt.Errorf("provider %q: invalid address", s.Provider)
	}
	st, ok := domain.ParseServiceType(s.ServiceType)
	if !ok {
		return out, fmt.Errorf("provider %s: unknown service type %q", s.Provider, s.ServiceType)
	}
	in, err := parsePrice(s.InputPrice)
	if err != nil {
		return out, fmt.Errorf("provider %s: input price: %w", s.Provider, err)
	}
	outPrice, err := parsePrice(s.OutputPrice)
	if err != nil {
		return out, fmt.Errorf("provider %s: output price: %w", s.Provider, err)
	}
	if s.MinFee < 0 {
		return out, fmt.Errorf("provider %s: negative min fee", s.Provider)
	}

	out = domain.ProviderService{
		Provider:      common.HexToAddress(s.Provider),
		ServiceType:   st,
		Endpoint:      s.Endpoint,
		Model:         s.Model,
		InputPrice:    in,
		OutputPrice:   outPrice,
		MinFee:        s.MinFee,
		Verifiability: domain.VerifiabilityNone,
	}
	if s.Verifiability == string(domain.VerifiabilityTEE) {
		if !common.IsHexAddress(s.TEESigner) {
			return out, fmt.Errorf("provider %s: TEE service needs a signer address", s.Provider)
		}
		out.Verifiability = domain.VerifiabilityTEE
		out.TEESigner = common.HexToAddress(s.TEESigner)
	}
	if s.Health != nil {
		out.Health = s.Health.toDomain()
	}
	return out, nil
}

func parsePrice(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative price %s", s)
	}
	return d, nil
}

func fromConfig(p config.ProviderConfig) serviceJSON {
	return serviceJSON{
		Provider:      p.Address,
		ServiceType:   p.ServiceType,
		Endpoint:      p.Endpoint,
		Model:         p.Model,
		InputPrice:    p.InputPrice,
		OutputPrice:   p.OutputPrice,
		MinFee:        p.MinFee,
		Verifiability: p.Verifiability,
		TEESigner:     p.TEESigner,
	}
}
