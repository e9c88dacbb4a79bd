package plan

import "errors"

var (
	// ErrUnknownPlan is returned for plan IDs outside the catalog.
	// This is a configuration error, not a user-recoverable condition.
	ErrUnknownPlan = errors.New("unknown subscription plan")

	// ErrInvalidCatalog is returned when a catalog fails validation on build.
	ErrInvalidCatalog = errors.New("invalid plan catalog configuration")

	// ErrNoTrialPlan is returned when a tier has no trial variant in the catalog.
	ErrNoTrialPlan = errors.New("no trial plan available for tier")
)
