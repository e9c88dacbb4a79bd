package plan

import (
	"errors"
	"fmt"
	"slices"
)

// Catalog is an immutable lookup table from plan ID to plan.
// It is built once, validated, and never mutated afterwards, so it is
// safe for concurrent use without locking.
type Catalog struct {
	plans map[ID]Plan
}

// New builds and validates a catalog from the given plans.
// Plans are deep-copied so later modifications of the inputs cannot
// leak into the catalog.
func New(plans ...Plan) (*Catalog, error) {
	if len(plans) == 0 {
		return nil, errors.Join(ErrInvalidCatalog, errors.New("at least one plan is required"))
	}

	byID := make(map[ID]Plan, len(plans))
	for _, p := range plans {
		if p.ID == "" {
			return nil, errors.Join(ErrInvalidCatalog, errors.New("plan with empty ID"))
		}
		if _, exists := byID[p.ID]; exists {
			return nil, errors.Join(ErrInvalidCatalog,
				fmt.Errorf("duplicate plan ID %q", p.ID))
		}
		if !p.Tier.Valid() {
			return nil, errors.Join(ErrInvalidCatalog,
				fmt.Errorf("plan %q has invalid tier %q", p.ID, p.Tier))
		}
		if !p.Interval.Valid() {
			return nil, errors.Join(ErrInvalidCatalog,
				fmt.Errorf("plan %q has invalid interval %q", p.ID, p.Interval))
		}

		p.Features = slices.Clone(p.Features)
		byID[p.ID] = p
	}

	c := &Catalog{plans: byID}
	if err := c.validateTierFeatures(); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNew builds a catalog and panics on invalid configuration.
// Catalog misconfiguration should prevent startup, not surface at runtime.
func MustNew(plans ...Plan) *Catalog {
	c, err := New(plans...)
	if err != nil {
		panic(fmt.Sprintf("plan: failed to build catalog: %v", err))
	}
	return c
}

// validateTierFeatures enforces that Premium unlocks everything Essencial does.
func (c *Catalog) validateTierFeatures() error {
	essencial := c.tierFeatures(TierEssencial)
	premium := c.tierFeatures(TierPremium)
	if len(essencial) == 0 || len(premium) == 0 {
		return nil
	}
	for f := range essencial {
		if _, ok := premium[f]; !ok {
			return errors.Join(ErrInvalidCatalog,
				fmt.Errorf("premium tier is missing essencial feature %q", f))
		}
	}
	return nil
}

func (c *Catalog) tierFeatures(tier Tier) map[Feature]struct{} {
	features := make(map[Feature]struct{})
	for _, p := range c.plans {
		if p.Tier != tier {
			continue
		}
		for _, f := range p.Features {
			features[f] = struct{}{}
		}
	}
	return features
}

// Lookup returns the plan for the given ID.
// Returns ErrUnknownPlan if the ID is outside the closed enumeration.
func (c *Catalog) Lookup(id ID) (Plan, error) {
	p, ok := c.plans[id]
	if !ok {
		return Plan{}, errors.Join(ErrUnknownPlan, fmt.Errorf("plan ID %q", id))
	}
	p.Features = slices.Clone(p.Features)
	return p, nil
}

// TrialPlan returns the trial variant of the given tier.
func (c *Catalog) TrialPlan(tier Tier) (Plan, error) {
	for _, p := range c.plans {
		if p.IsTrial() && p.Tier == tier {
			p.Features = slices.Clone(p.Features)
			return p, nil
		}
	}
	return Plan{}, errors.Join(ErrNoTrialPlan, fmt.Errorf("tier %q", tier))
}

// TierHasFeature reports whether any plan of the given tier unlocks the feature.
// Fails closed: unknown tiers and features yield false.
func (c *Catalog) TierHasFeature(tier Tier, f Feature) bool {
	if !tier.Valid() {
		return false
	}
	for _, p := range c.plans {
		if p.Tier == tier && p.HasFeature(f) {
			return true
		}
	}
	return false
}

// Plans returns all catalog entries sorted by ID.
func (c *Catalog) Plans() []Plan {
	result := make([]Plan, 0, len(c.plans))
	for _, p := range c.plans {
		p.Features = slices.Clone(p.Features)
		result = append(result, p)
	}
	slices.SortFunc(result, func(a, b Plan) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})
	return result
}

// Builtin returns the default six-plan catalog of the host application.
func Builtin() *Catalog {
	essencialFeatures := []Feature{
		FeatureClients,
		FeatureVehicles,
		FeatureBudgets,
		FeatureServiceOrders,
	}
	premiumFeatures := []Feature{
		FeatureClients,
		FeatureVehicles,
		FeatureBudgets,
		FeatureServiceOrders,
		FeatureInventory,
		FeatureMarketing,
		FeatureDashboards,
		FeatureExports,
	}

	return MustNew(
		Plan{
			ID:       EssencialMensal,
			Name:     "Essencial Mensal",
			Tier:     TierEssencial,
			Interval: IntervalMonthly,
			Features: essencialFeatures,
			Price:    Money{Amount: 4990, Currency: "BRL"},
		},
		Plan{
			ID:       EssencialAnual,
			Name:     "Essencial Anual",
			Tier:     TierEssencial,
			Interval: IntervalAnnual,
			Features: essencialFeatures,
			Price:    Money{Amount: 47900, Currency: "BRL"},
		},
		Plan{
			ID:       PremiumMensal,
			Name:     "Premium Mensal",
			Tier:     TierPremium,
			Interval: IntervalMonthly,
			Features: premiumFeatures,
			Price:    Money{Amount: 8990, Currency: "BRL"},
		},
		Plan{
			ID:       PremiumAnual,
			Name:     "Premium Anual",
			Tier:     TierPremium,
			Interval: IntervalAnnual,
			Features: premiumFeatures,
			Price:    Money{Amount: 86300, Currency: "BRL"},
		},
		Plan{
			ID:       FreeTrialEssencial,
			Name:     "Teste Essencial",
			Tier:     TierEssencial,
			Interval: IntervalTrial,
			Features: essencialFeatures,
		},
		Plan{
			ID:       FreeTrialPremium,
			Name:     "Teste Premium",
			Tier:     TierPremium,
			Interval: IntervalTrial,
			Features: premiumFeatures,
		},
	)
}
