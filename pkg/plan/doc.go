// Package plan provides the immutable subscription plan catalog: the
// mapping from plan IDs to tiers, billing intervals, prices, and the
// features each tier unlocks.
//
// The catalog is built once (from the builtin table or a YAML file),
// validated, and read-only afterwards, which makes it safe for
// concurrent use and removes ad-hoc string comparisons against plan
// names from the rest of the codebase.
//
// Usage:
//
//	catalog := plan.Builtin()
//	p, err := catalog.Lookup(plan.PremiumMensal)
//	if err != nil {
//		// configuration error: the ID is outside the closed enumeration
//	}
//	if p.Tier.AtLeast(plan.TierEssencial) {
//		// plan grants at least the Essencial tier
//	}
//
// A catalog can also be loaded from a YAML file via LoadFile, which
// applies the same validation as New.
package plan
