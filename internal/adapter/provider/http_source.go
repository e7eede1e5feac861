package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"serving-broker/internal/core/domain"

	"github.com/rs/zerolog"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// maxResponseBody caps what is read from an indexer or provider.
const maxResponseBody = 4 << 20

// HTTPSource implements ports.ServiceSource against a service indexer that
// serves GET {base}/services?offset=N&limit=M.
type HTTPSource struct {
	baseURL string
	client  HTTPClient
	log     zerolog.Logger
}

// NewHTTPSource creates an indexer-backed service source.
func NewHTTPSource(baseURL string, client HTTPClient, log zerolog.Logger) *HTTPSource {
	return &HTTPSource{baseURL: baseURL, client: client, log: log}
}

type listResponse struct {
	Services []serviceJSON `json:"services"`
}

// ListServices fetches one page from the indexer. Malformed entries are
// skipped and logged.
func (s *HTTPSource) ListServices(ctx context.Context, offset, limit int) ([]domain.ProviderService, error) {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse directory url: %w", err)
	}
	u = u.JoinPath("services")
	q := u.Query()
	q.Set("offset", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(limit))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build directory request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directory request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directory request: unexpected status %d", resp.StatusCode)
	}

	var body listResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode directory response: %w", err)
	}

	out := make([]domain.ProviderService, 0, len(body.Services))
	for _, raw := range body.Services {
		svc, err := raw.toDomain()
		if err != nil {
			s.log.Warn().Err(err).Msg("skipping malformed directory entry")
			continue
		}
		out = append(out, svc)
	}
	return out, nil
}
