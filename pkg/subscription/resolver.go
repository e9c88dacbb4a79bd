package subscription

import (
	"math"
	"time"

	"github.com/oficinaplus/entitlements/pkg/plan"
)

// ResolvedStatus is the derived, never-persisted view of a record at a
// given instant. It is everything downstream consumers (entitlement
// checks, countdown displays) need to know.
type ResolvedStatus struct {
	// HasSubscription is false only when no record exists for the account.
	HasSubscription bool

	// IsTrialActive and IsPaidActive are mutually exclusive: a record
	// has exactly one status.
	IsTrialActive bool
	IsPaidActive  bool

	// EffectiveTier is plan.TierNone when neither trial nor paid is active.
	EffectiveTier plan.Tier

	// DaysRemaining counts whole days until the relevant period end,
	// partial days rounded up. 0 when no active period.
	DaysRemaining int
}

// Resolver derives a ResolvedStatus from a record and an explicit
// instant. It never reads the wall clock, so results are fully
// reproducible given identical inputs.
type Resolver struct {
	catalog *plan.Catalog
}

// NewResolver creates a Resolver backed by the given catalog.
// Panics on a nil catalog to fail fast during initialization.
func NewResolver(catalog *plan.Catalog) *Resolver {
	if catalog == nil {
		panic("subscription: plan catalog is required")
	}
	return &Resolver{catalog: catalog}
}

// Resolve derives the status of record at now. A nil record resolves to
// the zero status (no subscription). Returns plan.ErrUnknownPlan if an
// active record references a plan outside the catalog; that is a
// configuration error, not a denial.
func (r *Resolver) Resolve(record *Record, now time.Time) (ResolvedStatus, error) {
	if record == nil {
		return ResolvedStatus{}, nil
	}

	status := ResolvedStatus{HasSubscription: true}

	trialActive := record.Status == StatusTrialing &&
		record.TrialEndsAt != nil && now.Before(*record.TrialEndsAt)

	paidActive := false
	switch record.Status {
	case StatusActive:
		paidActive = record.EndsAt == nil || now.Before(*record.EndsAt)
	case StatusCancelled:
		// Cancel anytime, keep access until the already-paid period
		// elapses. A cancelled record without EndsAt has no remaining
		// paid period to honor.
		paidActive = record.EndsAt != nil && now.Before(*record.EndsAt)
	}

	status.IsTrialActive = trialActive
	status.IsPaidActive = paidActive

	var relevantEnd *time.Time
	switch {
	case trialActive:
		relevantEnd = record.TrialEndsAt
	case paidActive:
		relevantEnd = record.EndsAt
	}
	status.DaysRemaining = daysRemaining(relevantEnd, now)

	if trialActive || paidActive {
		p, err := r.catalog.Lookup(record.PlanID)
		if err != nil {
			return ResolvedStatus{}, err
		}
		status.EffectiveTier = p.Tier
	}

	return status, nil
}

// daysRemaining rounds partial days up, so a period ending in 3 hours
// still reports 1 day remaining. Trial countdowns must never
// under-promise.
func daysRemaining(end *time.Time, now time.Time) int {
	if end == nil {
		return 0
	}
	remaining := end.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(math.Ceil(remaining.Hours() / 24))
}
