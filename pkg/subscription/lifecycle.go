package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/oficinaplus/entitlements/pkg/plan"
)

// DefaultTrialDays is the trial length used unless overridden via
// WithTrialLength.
const DefaultTrialDays = 7

// lifecycleEvent names a lifecycle operation for transition lookups.
type lifecycleEvent string

const (
	eventConvert lifecycleEvent = "convert"
	eventCancel  lifecycleEvent = "cancel"
)

// transitions maps current status to the statuses reachable per event.
// Keeping legality in one table means every operation shares the same
// definition of what is allowed.
var transitions = map[Status]map[lifecycleEvent]Status{
	StatusTrialing: {
		eventConvert: StatusActive,
		eventCancel:  StatusCancelled,
	},
	StatusActive: {
		eventCancel: StatusCancelled,
	},
	StatusExpired: {
		eventConvert: StatusActive,
		eventCancel:  StatusCancelled,
	},
}

func nextStatus(from Status, event lifecycleEvent) (Status, bool) {
	byEvent, ok := transitions[from]
	if !ok {
		return "", false
	}
	to, ok := byEvent[event]
	return to, ok
}

// Lifecycle performs the state transitions of a subscription record:
// starting a trial, converting it to a paid plan, and cancelling.
// Operations either fully succeed, returning a new valid record, or
// fail leaving the stored record untouched.
type Lifecycle struct {
	store     Store
	catalog   *plan.Catalog
	trialDays int
}

// LifecycleOption configures a Lifecycle.
type LifecycleOption func(*Lifecycle)

// WithTrialLength overrides the default trial length in days.
// Non-positive values are ignored.
func WithTrialLength(days int) LifecycleOption {
	return func(l *Lifecycle) {
		if days > 0 {
			l.trialDays = days
		}
	}
}

// NewLifecycle creates a Lifecycle with the given dependencies.
// Panics if store or catalog is nil to fail fast during initialization.
func NewLifecycle(store Store, catalog *plan.Catalog, opts ...LifecycleOption) *Lifecycle {
	if store == nil {
		panic("subscription: store is required")
	}
	if catalog == nil {
		panic("subscription: plan catalog is required")
	}

	l := &Lifecycle{
		store:     store,
		catalog:   catalog,
		trialDays: DefaultTrialDays,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// StartTrial creates a trialing record for the account on the trial
// variant of tier. Returns ErrTrialAlreadyUsed if any record already
// exists for the account: one trial per account, lifetime, regardless
// of the existing record's status.
func (l *Lifecycle) StartTrial(ctx context.Context, accountID uuid.UUID, tier plan.Tier, now time.Time) (*Record, error) {
	if _, err := l.store.Get(ctx, accountID); err == nil {
		return nil, ErrTrialAlreadyUsed
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	trialPlan, err := l.catalog.TrialPlan(tier)
	if err != nil {
		return nil, err
	}

	trialEndsAt := now.AddDate(0, 0, l.trialDays)
	record := &Record{
		AccountID:   accountID,
		PlanID:      trialPlan.ID,
		Status:      StatusTrialing,
		StartsAt:    now,
		TrialEndsAt: &trialEndsAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := l.store.Save(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Convert turns a trialing or expired record into an active paid one.
// EndsAt is computed from the new plan's billing interval and
// TrialEndsAt is cleared. Converting to a trial plan is rejected.
func (l *Lifecycle) Convert(ctx context.Context, record *Record, planID plan.ID, now time.Time) (*Record, error) {
	if record == nil {
		return nil, errors.Join(ErrInvalidTransition, errors.New("no record to convert"))
	}
	if _, ok := nextStatus(record.Status, eventConvert); !ok {
		return nil, errors.Join(ErrInvalidTransition,
			fmt.Errorf("cannot convert from status %q", record.Status))
	}

	p, err := l.catalog.Lookup(planID)
	if err != nil {
		return nil, err
	}
	if p.IsTrial() {
		return nil, errors.Join(ErrInvalidTransition,
			fmt.Errorf("cannot convert to trial plan %q", planID))
	}

	endsAt := p.Interval.PeriodEnd(now)
	next := &Record{
		AccountID: record.AccountID,
		PlanID:    planID,
		Status:    StatusActive,
		StartsAt:  now,
		EndsAt:    &endsAt,
		CreatedAt: record.CreatedAt,
		UpdatedAt: now,
	}

	if err := l.store.Save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Cancel marks a record cancelled. EndsAt is left unchanged: access
// continues until the already-paid period elapses, there is no
// immediate cutoff. Returns ErrInvalidTransition if already cancelled.
func (l *Lifecycle) Cancel(ctx context.Context, record *Record, now time.Time) (*Record, error) {
	if record == nil {
		return nil, errors.Join(ErrInvalidTransition, errors.New("no record to cancel"))
	}
	if _, ok := nextStatus(record.Status, eventCancel); !ok {
		return nil, errors.Join(ErrInvalidTransition,
			fmt.Errorf("cannot cancel from status %q", record.Status))
	}

	next := record.Clone()
	next.Status = StatusCancelled
	next.CancelledAt = &now
	next.UpdatedAt = now

	if err := l.store.Save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}
