package domain

import "time"

// RefundAction is the per-provider outcome of a retrieve-fund call.
type RefundAction string

const (
	RefundInitiated   RefundAction = "initiated"
	RefundCompleted   RefundAction = "completed"
	RefundSkippedLock RefundAction = "skipped-locked"
	RefundSkippedZero RefundAction = "skipped-zero-balance"
)

// RefundStep is the transition chosen for one sub-account.
type RefundStep struct {
	Action RefundAction
	// Amount to initiate, or the total being completed.
	Amount int64
	// Refunds being completed, oldest first. Empty unless Action is RefundCompleted.
	Refunds []RefundRequest
	// NextUnlock is the earliest unlock time still pending after the step.
	NextUnlock *time.Time
}

// NextRefundStep is the refund state machine. Given the current sub-account
// state and the time, it picks exactly one transition:
//
//	unlocked refunds exist   -> complete them
//	spare balance > 0        -> initiate a refund for all of it
//	locked refunds exist     -> skipped-locked
//	otherwise                -> skipped-zero-balance
//
// Completion and initiation never happen in the same step; remaining spare
// is picked up by the next call.
func NextRefundStep(sub SubAccount, now time.Time) RefundStep {
	sub.PendingRefunds = append([]RefundRequest(nil), sub.PendingRefunds...)
	sub.SortRefunds()

	var unlocked []RefundRequest
	var total int64
	var next *time.Time
	for _, r := range sub.PendingRefunds {
		if r.IsUnlocked(now) {
			unlocked = append(unlocked, r)
			total += r.Amount
			continue
		}
		if next == nil || r.UnlockAt.Before(*next) {
			u := r.UnlockAt
			next = &u
		}
	}

	switch {
	case len(unlocked) > 0:
		return RefundStep{Action: RefundCompleted, Amount: total, Refunds: unlocked, NextUnlock: next}
	case sub.Spare() > 0:
		return RefundStep{Action: RefundInitiated, Amount: sub.Spare(), NextUnlock: next}
	case len(sub.PendingRefunds) > 0:
		return RefundStep{Action: RefundSkippedLock, NextUnlock: next}
	default:
		return RefundStep{Action: RefundSkippedZero}
	}
}
