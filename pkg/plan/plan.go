package plan

import (
	"slices"
	"time"
)

// ID identifies a subscription plan. The set of valid IDs is closed;
// Catalog.Lookup rejects anything outside it.
type ID string

const (
	EssencialMensal    ID = "essencial_mensal"
	EssencialAnual     ID = "essencial_anual"
	PremiumMensal      ID = "premium_mensal"
	PremiumAnual       ID = "premium_anual"
	FreeTrialEssencial ID = "free_trial_essencial"
	FreeTrialPremium   ID = "free_trial_premium"
)

// Tier is the feature level of a plan, independent of billing cycle.
type Tier string

const (
	// TierNone is the zero tier: no active entitlement.
	TierNone      Tier = ""
	TierEssencial Tier = "essencial"
	TierPremium   Tier = "premium"
)

// rank orders tiers for minimum-tier comparisons. Premium > Essencial.
func (t Tier) rank() int {
	switch t {
	case TierEssencial:
		return 1
	case TierPremium:
		return 2
	default:
		return 0
	}
}

// AtLeast reports whether t satisfies a minimum-tier requirement.
func (t Tier) AtLeast(required Tier) bool {
	return t.rank() >= required.rank()
}

// Valid reports whether t is a known non-zero tier.
func (t Tier) Valid() bool {
	return t == TierEssencial || t == TierPremium
}

// Interval represents the billing frequency of a plan.
type Interval string

const (
	IntervalMonthly Interval = "monthly"
	IntervalAnnual  Interval = "annual"
	IntervalTrial   Interval = "trial"
)

// Valid reports whether i is a known billing interval.
func (i Interval) Valid() bool {
	return i == IntervalMonthly || i == IntervalAnnual || i == IntervalTrial
}

// PeriodEnd returns when a paid period starting at start elapses.
// Trial intervals have no paid period and return start unchanged;
// trial length is owned by the lifecycle, not the plan.
func (i Interval) PeriodEnd(start time.Time) time.Time {
	switch i {
	case IntervalMonthly:
		return start.AddDate(0, 1, 0)
	case IntervalAnnual:
		return start.AddDate(1, 0, 0)
	default:
		return start
	}
}

// Feature represents a capability of the host application unlocked by a tier.
type Feature string

const (
	FeatureClients       Feature = "clients"
	FeatureVehicles      Feature = "vehicles"
	FeatureBudgets       Feature = "budgets"
	FeatureServiceOrders Feature = "service_orders"
	FeatureInventory     Feature = "inventory"
	FeatureMarketing     Feature = "marketing"
	FeatureDashboards    Feature = "dashboards"
	FeatureExports       Feature = "exports"
)

// Money represents a monetary amount in the smallest currency unit.
// R$ 49,90 would be Amount: 4990, Currency: "BRL".
type Money struct {
	Amount   int64  `yaml:"amount"`
	Currency string `yaml:"currency"`
}

// Plan describes one entry of the catalog: a tier, a billing cycle,
// the features it unlocks, and display metadata for the pricing page.
type Plan struct {
	ID          ID
	Name        string
	Description string
	Tier        Tier
	Interval    Interval
	Features    []Feature
	Price       Money
}

// IsTrial reports whether the plan is a time-boxed free trial variant.
func (p Plan) IsTrial() bool {
	return p.Interval == IntervalTrial
}

// HasFeature reports whether the plan unlocks the given feature.
func (p Plan) HasFeature(f Feature) bool {
	return slices.Contains(p.Features, f)
}
