package mission

import "errors"

var (
	ErrMissionNotFound       = errors.New("mission not found")
	ErrNameTooShort          = errors.New("name must be at least 4 characters")
	ErrMissionHasCrew        = errors.New("mission already has crew, cannot edit")
	ErrInvalidTransition     = errors.New("invalid condition to change stages")
	ErrCapacityNotConfigured = errors.New("max crew per mission is not configured")
	ErrUnknownStatus         = errors.New("unknown mission status")
)
