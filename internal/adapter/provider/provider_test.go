package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"serving-broker/config"
	"serving-broker/internal/core/domain"
	"serving-broker/internal/core/ports"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	addrA  = "0x00000000000000000000000000000000000000a1"
	addrB  = "0x00000000000000000000000000000000000000b2"
	signer = "0x00000000000000000000000000000000000000c3"
)

func TestStaticSource(t *testing.T) {
	src, err := NewStaticSource([]config.ProviderConfig{
		{Address: addrA, ServiceType: "chatbot", Endpoint: "http://a", Model: "m", InputPrice: "0.5", OutputPrice: "1", MinFee: 2},
		{Address: addrB, ServiceType: "text-to-image", OutputPrice: "100", Verifiability: "TEE", TEESigner: signer},
	})
	require.NoError(t, err)

	ctx := context.Background()
	all, err := src.ListServices(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, common.HexToAddress(addrA), all[0].Provider)
	assert.True(t, decimal.RequireFromString("0.5").Equal(all[0].InputPrice))
	assert.Equal(t, int64(2), all[0].MinFee)
	assert.Equal(t, domain.VerifiabilityNone, all[0].Verifiability)
	assert.True(t, all[1].IsVerifiable())

	page, err := src.ListServices(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, common.HexToAddress(addrB), page[0].Provider)

	page, err = src.ListServices(ctx, 5, 1)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestStaticSource_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.ProviderConfig
	}{
		{"bad address", config.ProviderConfig{Address: "nope", ServiceType: "chatbot"}},
		{"bad service type", config.ProviderConfig{Address: addrA, ServiceType: "video"}},
		{"bad price", config.ProviderConfig{Address: addrA, ServiceType: "chatbot", InputPrice: "abc"}},
		{"negative price", config.ProviderConfig{Address: addrA, ServiceType: "chatbot", OutputPrice: "-1"}},
		{"TEE without signer", config.ProviderConfig{Address: addrA, ServiceType: "chatbot", Verifiability: "TEE"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStaticSource([]config.ProviderConfig{tt.cfg})
			assert.Error(t, err)
		})
	}
}

func TestHTTPSource_ListServices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/services", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("offset"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"services": []map[string]any{
				{
					"provider": addrA, "service_type": "chatbot", "input_price": "1", "output_price": "2",
					"health": map[string]any{"status": "healthy", "uptime_percent": 99.5, "avg_response_time_ms": 120, "last_check": 1700000000},
				},
				{"provider": "garbage", "service_type": "chatbot"},
			},
		})
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL+"/v1", srv.Client(), zerolog.Nop())
	services, err := src.ListServices(context.Background(), 10, 5)
	require.NoError(t, err)
	require.Len(t, services, 1, "malformed entries are skipped")
	require.NotNil(t, services[0].Health)
	assert.Equal(t, domain.HealthHealthy, services[0].Health.Status)
	assert.Equal(t, 120*time.Millisecond, services[0].Health.AvgResponseTime)
}

func TestHTTPSource_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, srv.Client(), zerolog.Nop())
	_, err := src.ListServices(context.Background(), 0, 5)
	assert.Error(t, err)
}

func TestProofFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/signature/resp-1":
			assert.Equal(t, "llama", r.URL.Query().Get("model"))
			_ = json.NewEncoder(w).Encode(ports.Proof{Text: "hello", Signature: "0xabc"})
		case "/signature/empty":
			_ = json.NewEncoder(w).Encode(ports.Proof{})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewProofFetcher(srv.Client())
	svc := &domain.ProviderService{Endpoint: srv.URL, Model: "llama"}

	proof, err := f.FetchProof(context.Background(), svc, "resp-1")
	require.NoError(t, err)
	assert.Equal(t, "hello", proof.Text)

	_, err = f.FetchProof(context.Background(), svc, "empty")
	assert.Error(t, err)

	_, err = f.FetchProof(context.Background(), svc, "missing")
	assert.Error(t, err)
}
