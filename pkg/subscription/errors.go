package subscription

import "errors"

var (
	// ErrNotFound is returned when no record exists for an account.
	ErrNotFound = errors.New("subscription not found")

	// ErrTrialAlreadyUsed is returned when an account attempts to start
	// a second trial. One trial per account, lifetime.
	ErrTrialAlreadyUsed = errors.New("trial already used for account")

	// ErrInvalidTransition is returned when a lifecycle operation is not
	// legal from the record's current status.
	ErrInvalidTransition = errors.New("invalid subscription state transition")
)
