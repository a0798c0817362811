package models

import "errors"

// ValidationError is a client error in the search parameters.
type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingOrigin         ValidationError = "from is required"
	ErrMissingDestination    ValidationError = "to is required"
	ErrMissingDepartureDate  ValidationError = "departureDate is required"
	ErrInvalidDate           ValidationError = "dates must use the YYYY-MM-DD format"
	ErrReturnBeforeDeparture ValidationError = "returnDate must not be before departureDate"
	ErrEmptySegments         ValidationError = "segments must contain at least one leg"
	ErrIncompleteSegment     ValidationError = "every segment needs from, to and departureDate"
	ErrSegmentsWithRoute     ValidationError = "segments cannot be combined with from/to"
)

// ParseError reports a structured parameter that could not be decoded.
type ParseError struct {
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	return "invalid " + e.Field + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsClientError reports whether err should be answered with a 400.
func IsClientError(err error) bool {
	var ve ValidationError
	if errors.As(err, &ve) {
		return true
	}
	var pe *ParseError
	return errors.As(err, &pe)
}
