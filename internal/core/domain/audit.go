package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited action.
type AuditAction string

const (
	AuditActionDeposit        AuditAction = "DEPOSIT"
	AuditActionWithdraw       AuditAction = "WITHDRAW"
	AuditActionTransfer       AuditAction = "TRANSFER"
	AuditActionRefundInitiate AuditAction = "REFUND_INITIATE"
	AuditActionRefundComplete AuditAction = "REFUND_COMPLETE"
	AuditActionAcknowledge    AuditAction = "ACKNOWLEDGE"
	AuditActionSettle         AuditAction = "SETTLE"
)

// AuditLog records a single ledger-affecting action.
type AuditLog struct {
	ID        uuid.UUID   `json:"id"`
	User      string      `json:"user"`
	Action    AuditAction `json:"action"`
	Provider  string      `json:"provider,omitempty"`
	Amount    int64       `json:"amount"`
	TxID      string      `json:"tx_id,omitempty"`
	Details   string      `json:"details,omitempty"` // JSON string
	CreatedAt time.Time   `json:"created_at"`
}
