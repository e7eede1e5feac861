package postgres

import (
	"context"
	"fmt"

	"serving-broker/internal/core/domain"
)

// DisputeRepo implements ports.DisputeRepository.
type DisputeRepo struct {
	pool Pool
}

// NewDisputeRepository creates a PostgreSQL-backed DisputeRepository.
func NewDisputeRepository(pool Pool) *DisputeRepo {
	return &DisputeRepo{pool: pool}
}

// Create inserts a new delivery record.
func (r *DisputeRepo) Create(ctx context.Context, d *domain.DisputeDelivery) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO dispute_deliveries
		 (id, owner, provider, response_id, reason, webhook_url, payload, http_status, attempt, status, last_error, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		d.ID, d.User, d.Provider, d.ResponseID, string(d.Reason), d.WebhookURL,
		d.Payload, d.HTTPStatus, d.Attempt, string(d.Status), d.LastError,
		d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert dispute delivery: %w", err)
	}
	return nil
}

// Update records the latest delivery attempt.
func (r *DisputeRepo) Update(ctx context.Context, d *domain.DisputeDelivery) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE dispute_deliveries
		 SET http_status = $1, attempt = $2, status = $3, last_error = $4, updated_at = $5
		 WHERE id = $6`,
		d.HTTPStatus, d.Attempt, string(d.Status), d.LastError, d.UpdatedAt, d.ID,
	)
	if err != nil {
		return fmt.Errorf("update dispute delivery: %w", err)
	}
	return nil
}
