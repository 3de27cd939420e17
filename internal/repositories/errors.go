package repositories

import "errors"

var (
	ErrRecordNotFound = errors.New("record not found")
	// ErrScreeningLocked is returned when a screening run is already in flight.
	ErrScreeningLocked = errors.New("screening already in progress")
)
