package provider

import (
	"context"

	"serving-broker/config"
	"serving-broker/internal/core/domain"
)

// StaticSource implements ports.ServiceSource over a fixed list, typically
// the directory.providers section of the config file.
type StaticSource struct {
	services []domain.ProviderService
}

// NewStaticSource validates and converts the configured providers.
func NewStaticSource(providers []config.ProviderConfig) (*StaticSource, error) {
	services := make([]domain.ProviderService, 0, len(providers))
	for _, p := range providers {
		svc, err := fromConfig(p).toDomain()
		if err != nil {
			return nil, err
		}
		services = append(services, svc)
	}
	return &StaticSource{services: services}, nil
}

// ListServices returns one page of the configured services.
func (s *StaticSource) ListServices(_ context.Context, offset, limit int) ([]domain.ProviderService, error) {
	if offset < 0 || offset >= len(s.services) {
		return nil, nil
	}
	end := len(s.services)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return append([]domain.ProviderService(nil), s.services[offset:end]...), nil
}
