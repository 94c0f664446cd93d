// Package lifecycle derives an invoice's normalized lifecycle state from
// its tracking milestones.
//
// Classification never fails: absent or malformed tracking degrades to
// Untracked, the most conservative state.
package lifecycle

import (
	"time"

	invoicedomain "github.com/KnownApo/wrenchtrack-vite-final-sub001/internal/invoice/domain"
)

// Status is the coarse classification exposed to display and analytics.
type Status string

const (
	StatusPending         Status = "pending"
	StatusCompletedUnpaid Status = "completed_unpaid"
	StatusCompletedPaid   Status = "completed_paid"
	StatusPaid            Status = "paid"
)

// TrackingState is the tagged union of reachable lifecycle states.
type TrackingState interface {
	Status() Status
}

// Untracked means no milestones have been recorded yet.
type Untracked struct{}

// CompletedUnpaid means service is done but payment has not been tracked.
type CompletedUnpaid struct {
	CompletedAt time.Time
}

// CompletedPaid means both the completion and payment milestones exist.
type CompletedPaid struct {
	CompletedAt time.Time
	PaidAt      time.Time
}

// PaidDirect means the invoice was paid without a tracked completion
// milestone. Sourced from the invoice status, not from tracking.
type PaidDirect struct {
	PaidAt time.Time
}

func (Untracked) Status() Status       { return StatusPending }
func (CompletedUnpaid) Status() Status { return StatusCompletedUnpaid }
func (CompletedPaid) Status() Status   { return StatusCompletedPaid }
func (PaidDirect) Status() Status      { return StatusPaid }

// Classification bundles the derived state and durations for one invoice.
type Classification struct {
	State             TrackingState
	TimeToComplete    time.Duration // valid only when HasTimeToComplete
	TimeToPay         time.Duration // valid only when HasTimeToPay
	HasTimeToComplete bool
	HasTimeToPay      bool
	MilestoneCount    int
}

// Status is shorthand for the classified state's status.
func (c Classification) Status() Status { return c.State.Status() }

// Classify derives the lifecycle classification for one invoice.
//
// Precedence: tracked completion+payment, tracked completion only, then
// a paid invoice status (the direct-payment path), then pending.
func Classify(invoice invoicedomain.Invoice) Classification {
	milestones := invoice.Milestones()

	classification := Classification{
		State:          Untracked{},
		MilestoneCount: len(milestones),
	}

	createdAt := invoice.CreatedAt
	var completedAt, paidAt time.Time
	for _, m := range milestones {
		switch m.Status {
		case invoicedomain.MilestoneCreated:
			if !m.Timestamp.IsZero() {
				createdAt = m.Timestamp
			}
		case invoicedomain.MilestoneCompleted:
			if completedAt.IsZero() {
				completedAt = m.Timestamp
			}
		case invoicedomain.MilestonePaid:
			if paidAt.IsZero() {
				paidAt = m.Timestamp
			}
		}
	}

	switch {
	case !completedAt.IsZero() && !paidAt.IsZero():
		classification.State = CompletedPaid{CompletedAt: completedAt, PaidAt: paidAt}
	case !completedAt.IsZero():
		classification.State = CompletedUnpaid{CompletedAt: completedAt}
	case invoice.Status == invoicedomain.StatusPaid:
		directPaidAt := time.Time{}
		if invoice.PaidAt != nil {
			directPaidAt = *invoice.PaidAt
		}
		classification.State = PaidDirect{PaidAt: directPaidAt}
		return classification
	default:
		return classification
	}

	if !createdAt.IsZero() && !completedAt.Before(createdAt) {
		classification.TimeToComplete = completedAt.Sub(createdAt)
		classification.HasTimeToComplete = true
	}
	if !paidAt.IsZero() && !paidAt.Before(completedAt) {
		classification.TimeToPay = paidAt.Sub(completedAt)
		classification.HasTimeToPay = true
	}
	return classification
}
