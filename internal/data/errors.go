package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	ErrJobNotFound         = errors.New("job not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrStageNotFound       = errors.New("pipeline stage not found")
	ErrUserNotFound        = errors.New("user not found")

	ErrApplicationIDRequired = errors.New("application_id is required")
	ErrStageIDRequired       = errors.New("stage_id is required")
)
