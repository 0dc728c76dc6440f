package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks a derived metric that cannot be computed from the given readings.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks a station with no usable observation.
	ErrNotFound = errors.New("not found")
)

// InvalidInputError reports a dew point above the air temperature.
type InvalidInputError struct {
	TempC     float64
	DewpointC float64
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("dew point %.1fC exceeds temperature %.1fC", e.DewpointC, e.TempC)
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// NotFoundError reports a station missing from a grouped observation set.
// Message is supplied by the caller so it can name the location in user terms.
type NotFoundError struct {
	StationID string
	Message   string
}

func (e *NotFoundError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("no observations for station %s", e.StationID)
	}
	return fmt.Sprintf("%s (station %s)", e.Message, e.StationID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }
