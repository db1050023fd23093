package utils

import "errors"

var (
	ErrInvalidClock     = errors.New("invalid clock time")
	ErrInvalidTimeRange = errors.New("invalid time range")
	ErrInvalidDuration  = errors.New("invalid duration")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidPage      = errors.New("invalid page parameter")
	ErrInvalidPageSize  = errors.New("invalid page size parameter")

	ErrItineraryNotFound = errors.New("itinerary not found")
	ErrDatabaseError     = errors.New("database error")

	ErrUnexpectedBehaviorOfAI = errors.New("unexpected behavior of AI")
	ErrPlacesUnavailable      = errors.New("places service unavailable")
	ErrPlaceNotFound          = errors.New("place not found")
)
