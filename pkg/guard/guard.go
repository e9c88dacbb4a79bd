package guard

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/oficinaplus/entitlements/pkg/entitlement"
	"github.com/oficinaplus/entitlements/pkg/plan"
	"github.com/oficinaplus/entitlements/pkg/subscription"
)

// Account is the authenticated caller as seen by the guard.
// A nil *Account means the request is unauthenticated.
type Account struct {
	ID   uuid.UUID
	Role entitlement.Role
}

// OutcomeKind enumerates the routing decisions a guard check can produce.
type OutcomeKind string

const (
	OutcomeAllow             OutcomeKind = "allow"
	OutcomeRedirectToLogin   OutcomeKind = "redirect_to_login"
	OutcomeRedirectToExpired OutcomeKind = "redirect_to_expired"
	OutcomeRedirectToUpgrade OutcomeKind = "redirect_to_upgrade"
)

// Outcome is the guard's routing decision. RequiredTier is set on
// upgrade redirects caused by a tier requirement.
type Outcome struct {
	Kind         OutcomeKind
	RequiredTier plan.Tier
}

// Guard is the single entry point external collaborators call before
// rendering a protected screen or enabling an action. It orchestrates
// the store lookup, the status resolver, and the entitlement evaluator
// without exposing any of them outward.
type Guard struct {
	store     subscription.Store
	resolver  *subscription.Resolver
	evaluator *entitlement.Evaluator
}

// New creates a Guard with the given dependencies.
// Panics if any dependency is nil to fail fast during initialization.
func New(store subscription.Store, resolver *subscription.Resolver, evaluator *entitlement.Evaluator) *Guard {
	if store == nil {
		panic("guard: subscription store is required")
	}
	if resolver == nil {
		panic("guard: status resolver is required")
	}
	if evaluator == nil {
		panic("guard: entitlement evaluator is required")
	}
	return &Guard{store: store, resolver: resolver, evaluator: evaluator}
}

type checkConfig struct {
	tier    plan.Tier
	feature plan.Feature
	hasTier bool
	hasFeat bool
}

// CheckOption adds a requirement to a guard check beyond basic access.
type CheckOption func(*checkConfig)

// WithRequiredTier additionally requires the effective tier to be at
// least t; insufficient tier yields an upgrade redirect.
func WithRequiredTier(t plan.Tier) CheckOption {
	return func(c *checkConfig) {
		c.tier = t
		c.hasTier = true
	}
}

// WithRequiredFeature additionally requires the effective tier to
// unlock f; a missing feature yields an upgrade redirect.
func WithRequiredFeature(f plan.Feature) CheckOption {
	return func(c *checkConfig) {
		c.feature = f
		c.hasFeat = true
	}
}

// Check returns the routing outcome for the account at now.
//
// An unauthenticated caller is sent to login. An authenticated account
// without any active entitlement is sent to the expired screen, even
// when it never had a subscription. Tier and feature requirements
// produce upgrade redirects. Everything else is allowed.
//
// Errors are reserved for engine failures (store errors, catalog
// misconfiguration); denials are outcomes, never errors.
func (g *Guard) Check(ctx context.Context, account *Account, now time.Time, opts ...CheckOption) (Outcome, error) {
	if account == nil {
		return Outcome{Kind: OutcomeRedirectToLogin}, nil
	}

	cfg := &checkConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	record, err := g.store.Get(ctx, account.ID)
	if err != nil && !errors.Is(err, subscription.ErrNotFound) {
		return Outcome{}, err
	}

	status, err := g.resolver.Resolve(record, now)
	if err != nil {
		return Outcome{}, err
	}

	if d := g.evaluator.Evaluate(status, account.Role, entitlement.AnyAccess()); !d.Allowed {
		return Outcome{Kind: OutcomeRedirectToExpired}, nil
	}

	if cfg.hasTier {
		d := g.evaluator.Evaluate(status, account.Role, entitlement.MinimumTier(cfg.tier))
		if !d.Allowed && d.Reason == entitlement.ReasonInsufficientTier {
			return Outcome{Kind: OutcomeRedirectToUpgrade, RequiredTier: cfg.tier}, nil
		}
	}

	if cfg.hasFeat {
		d := g.evaluator.Evaluate(status, account.Role, entitlement.RequireFeature(cfg.feature))
		if !d.Allowed {
			return Outcome{Kind: OutcomeRedirectToUpgrade}, nil
		}
	}

	return Outcome{Kind: OutcomeAllow}, nil
}
