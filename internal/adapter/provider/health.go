package provider

import (
	"time"

	"serving-broker/internal/core/domain"
)

func (h *healthJSON) toDomain() *domain.Health {
	status := domain.HealthStatus(h.Status)
	switch status {
	case domain.HealthHealthy, domain.HealthWarning, domain.HealthCritical:
	default:
		status = domain.HealthUnknown
	}
	out := &domain.Health{
		Status:          status,
		UptimePercent:   h.UptimePercent,
		AvgResponseTime: time.Duration(h.AvgResponseTime) * time.Millisecond,
	}
	if h.LastCheck > 0 {
		out.LastCheck = time.Unix(h.LastCheck, 0).UTC()
	}
	return out
}
