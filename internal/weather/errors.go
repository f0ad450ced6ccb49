package weather

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when geocoding yields no candidate for a query.
	ErrNotFound = errors.New("location not found")

	// ErrMalformedResponse is returned when a required field is missing or
	// has the wrong type in a provider payload.
	ErrMalformedResponse = errors.New("malformed provider response")
)

// TransportError wraps network failures and non-2xx provider replies.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: provider returned status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MissingField builds an ErrMalformedResponse naming the absent field.
func MissingField(op, field string) error {
	return fmt.Errorf("%s: %w: missing %s", op, ErrMalformedResponse, field)
}

// IsFetchError reports whether err came from talking to the provider, as
// opposed to the query simply not matching anything.
func IsFetchError(err error) bool {
	var te *TransportError
	return errors.As(err, &te) || errors.Is(err, ErrMalformedResponse)
}

// IsTimeout reports whether err was caused by a deadline.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
