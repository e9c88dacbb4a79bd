// Package subscription implements the core of the entitlement engine:
// the subscription record, the status resolver, and the trial
// lifecycle.
//
// Everything time-dependent takes the current instant as an explicit
// parameter. The package never reads the wall clock, which keeps
// Resolve a pure function of (record, now) and makes every behavior
// reproducible in tests with fixed time.Date values.
//
// Data flows one direction:
//
//	Record -> Resolver.Resolve -> ResolvedStatus
//
// The resolver only reads and derives; expiry is detected, never
// written back. State changes go through Lifecycle, whose operations
// return a new fully-valid record or fail leaving the stored one
// untouched:
//
//	lc := subscription.NewLifecycle(store, catalog)
//	rec, err := lc.StartTrial(ctx, accountID, plan.TierPremium, now)
//	rec, err = lc.Convert(ctx, rec, plan.PremiumAnual, now)
//	rec, err = lc.Cancel(ctx, rec, now)
//
// StartTrial enforces one trial per account, lifetime. In a
// multi-writer environment the Store implementation must back that
// check with a uniqueness constraint; see Store.
package subscription
