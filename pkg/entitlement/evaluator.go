package entitlement

import (
	"github.com/oficinaplus/entitlements/pkg/plan"
	"github.com/oficinaplus/entitlements/pkg/subscription"
)

// Evaluator decides whether a resolved status satisfies a requirement.
// It is pure and stateless; concurrent use is safe by construction.
//
// The admin override rule lives here and only here: scattering
// role-based branches across UI guards is exactly what this type
// replaces.
type Evaluator struct {
	catalog *plan.Catalog
}

// NewEvaluator creates an Evaluator backed by the given catalog.
// Panics on a nil catalog to fail fast during initialization.
func NewEvaluator(catalog *plan.Catalog) *Evaluator {
	if catalog == nil {
		panic("entitlement: plan catalog is required")
	}
	return &Evaluator{catalog: catalog}
}

// Evaluate returns the access decision for the given status, role, and
// requirement.
//
// Admin always yields Allow with ReasonAdminOverride, for every
// possible status including a missing subscription. For regular roles
// the decision table is: no record at all denies with no_subscription;
// a record with no active period denies with expired; otherwise the
// requirement itself decides. A trialing account holds the full tier
// its trial was started for, never a reduced one.
func (e *Evaluator) Evaluate(status subscription.ResolvedStatus, role Role, req Requirement) Decision {
	if role == RoleAdmin {
		return allow(ReasonAdminOverride)
	}

	if !status.HasSubscription {
		return deny(ReasonNoSubscription)
	}
	if !status.IsTrialActive && !status.IsPaidActive {
		return deny(ReasonExpired)
	}

	switch req.kind {
	case kindAnyAccess:
		return allow(ReasonEntitled)
	case kindMinimumTier:
		if status.EffectiveTier.AtLeast(req.tier) {
			return allow(ReasonEntitled)
		}
		return Decision{Allowed: false, Reason: ReasonInsufficientTier, RequiredTier: req.tier}
	case kindFeature:
		if e.catalog.TierHasFeature(status.EffectiveTier, req.feature) {
			return allow(ReasonEntitled)
		}
		return deny(ReasonMissingFeature)
	default:
		// Unknown requirement kinds fail closed.
		return deny(ReasonInsufficientTier)
	}
}
