package domain

import (
	"time"

	"github.com/google/uuid"
)

// DisputeReason says why a settlement was flagged.
type DisputeReason string

const (
	DisputeVerificationFailed DisputeReason = "VERIFICATION_FAILED"
	DisputeUnderCollected     DisputeReason = "UNDER_COLLECTED"
)

// DeliveryStatus represents the delivery state of a dispute notification.
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "PENDING"
	DeliveryDelivered DeliveryStatus = "DELIVERED"
	DeliveryFailed    DeliveryStatus = "FAILED"
)

// DisputeDelivery records the delivery of one dispute notification.
type DisputeDelivery struct {
	ID         uuid.UUID      `json:"id"`
	User       string         `json:"user"`
	Provider   string         `json:"provider"`
	ResponseID string         `json:"response_id"`
	Reason     DisputeReason  `json:"reason"`
	WebhookURL string         `json:"webhook_url"`
	Payload    string         `json:"payload"` // JSON string
	HTTPStatus *int           `json:"http_status"`
	Attempt    int            `json:"attempt"`
	Status     DeliveryStatus `json:"status"`
	LastError  *string        `json:"last_error"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}
