package entitlement

import "github.com/oficinaplus/entitlements/pkg/plan"

// Role is the closed set of account roles the engine distinguishes.
// Administrators operate the platform regardless of billing state.
type Role string

const (
	RoleRegular Role = "regular"
	RoleAdmin   Role = "admin"
)

// Reason is the machine-readable code attached to every decision.
// Denial reasons are expected outcomes, not errors; the presentation
// layer uses them to choose which upgrade/expired screen to show.
type Reason string

const (
	// Allow reasons.
	ReasonAdminOverride Reason = "admin_override"
	ReasonEntitled      Reason = "entitled"

	// Deny reasons.
	ReasonNoSubscription   Reason = "no_subscription"
	ReasonExpired          Reason = "expired"
	ReasonInsufficientTier Reason = "insufficient_tier"
	ReasonMissingFeature   Reason = "missing_feature"
)

// Decision is the outcome of an entitlement evaluation.
type Decision struct {
	Allowed bool
	Reason  Reason

	// RequiredTier is set on insufficient_tier denials so the caller
	// can point the user at the right upgrade.
	RequiredTier plan.Tier
}

func allow(reason Reason) Decision {
	return Decision{Allowed: true, Reason: reason}
}

func deny(reason Reason) Decision {
	return Decision{Allowed: false, Reason: reason}
}

type requirementKind int

const (
	kindAnyAccess requirementKind = iota
	kindMinimumTier
	kindFeature
)

// Requirement describes what an access check demands: some active
// entitlement, a minimum tier, or a specific feature.
type Requirement struct {
	kind    requirementKind
	tier    plan.Tier
	feature plan.Feature
}

// AnyAccess requires only that some entitlement (trial or paid) is active.
func AnyAccess() Requirement {
	return Requirement{kind: kindAnyAccess}
}

// MinimumTier requires the effective tier to be at least t,
// where Premium > Essencial.
func MinimumTier(t plan.Tier) Requirement {
	return Requirement{kind: kindMinimumTier, tier: t}
}

// RequireFeature requires the effective tier to unlock the feature.
func RequireFeature(f plan.Feature) Requirement {
	return Requirement{kind: kindFeature, feature: f}
}
