package subscription

import (
	"time"

	"github.com/google/uuid"

	"github.com/oficinaplus/entitlements/pkg/plan"
)

// Status represents the current state of a subscription record.
type Status string

const (
	StatusTrialing  Status = "trialing"
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

// Record represents one account's subscription.
// Each account has at most one record, so AccountID serves as the
// primary key. Records are treated as immutable: lifecycle operations
// return a new record instead of mutating their input.
type Record struct {
	AccountID   uuid.UUID // primary key - one subscription per account
	PlanID      plan.ID
	Status      Status
	StartsAt    time.Time
	EndsAt      *time.Time // nil = unlimited/ongoing paid period
	TrialEndsAt *time.Time // set only for records created via trial
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CancelledAt *time.Time // set when the subscription is cancelled
}

func (r *Record) IsTrialing() bool {
	return r.Status == StatusTrialing
}

func (r *Record) IsActive() bool {
	return r.Status == StatusActive
}

func (r *Record) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// Clone returns a deep copy of the record. A nil record clones to nil.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	clone := *r
	clone.EndsAt = cloneTime(r.EndsAt)
	clone.TrialEndsAt = cloneTime(r.TrialEndsAt)
	clone.CancelledAt = cloneTime(r.CancelledAt)
	return &clone
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
