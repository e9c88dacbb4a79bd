// Package entitlement implements the feature-entitlement decision
// function: given a resolved subscription status, an account role, and
// a requirement, it returns an Allow/Deny decision with a
// machine-readable reason.
//
// Denials are not errors. ReasonNoSubscription, ReasonExpired, and
// ReasonInsufficientTier are normal outcomes consumed by the
// presentation layer to pick the right screen.
package entitlement
