package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"serving-broker/internal/core/domain"
	"serving-broker/internal/core/ports"
)

// ProofFetcher implements ports.ProofFetcher. Providers serve the TEE
// signature of a response at GET {endpoint}/signature/{responseID}?model=M.
type ProofFetcher struct {
	client HTTPClient
}

// NewProofFetcher creates a proof fetcher using client.
func NewProofFetcher(client HTTPClient) *ProofFetcher {
	return &ProofFetcher{client: client}
}

// FetchProof downloads the proof for responseID from svc.
func (f *ProofFetcher) FetchProof(ctx context.Context, svc *domain.ProviderService, responseID string) (*ports.Proof, error) {
	u, err := url.Parse(svc.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse provider endpoint: %w", err)
	}
	u = u.JoinPath("signature", responseID)
	q := u.Query()
	q.Set("model", svc.Model)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build proof request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("proof request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("proof request: unexpected status %d", resp.StatusCode)
	}

	var proof ports.Proof
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(&proof); err != nil {
		return nil, fmt.Errorf("decode proof: %w", err)
	}
	if proof.Text == "" || proof.Signature == "" {
		return nil, fmt.Errorf("proof for %s is incomplete", responseID)
	}
	return &proof, nil
}
