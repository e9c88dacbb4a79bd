// Package guard is the access-control entry point for the host
// application. It turns (account, now) into one of a small set of
// routing outcomes: allow, or a redirect to login, the expired screen,
// or the upgrade page.
//
// The guard is the only component the UI layer is allowed to call; it
// orchestrates the subscription resolver and the entitlement evaluator
// internally and never exposes them outward. An http middleware adapter
// is provided for route-level protection:
//
//	g := guard.New(store, resolver, evaluator)
//	r.With(g.Middleware(urls, guard.WithRequiredTier(plan.TierPremium))).
//		Get("/relatorios", reportsHandler)
package guard
