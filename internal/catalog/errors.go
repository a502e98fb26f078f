package catalog

import (
	"errors"
	"fmt"

	"catalog-crud/internal/client"
)

var (
	// ErrValidationFailed marks input rejected locally or by the server.
	ErrValidationFailed = errors.New("validation failed")
	// ErrNotFound marks a record absent from the snapshot or the server.
	ErrNotFound = errors.New("product not found")
	// ErrFetchFailed marks a failed load of the collection.
	ErrFetchFailed = errors.New("fetch failed")
	// ErrMutationFailed marks a failed create, update, delete or seed.
	ErrMutationFailed = errors.New("mutation failed")
	// ErrStaleEditIgnored marks a response for a record that has left the
	// snapshot. It is logged, never returned.
	ErrStaleEditIgnored = errors.New("stale edit ignored")
)

// FieldError names the draft field that failed local validation.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

func (e *FieldError) Unwrap() error {
	return ErrValidationFailed
}

// wrapAPIError tags err with kind plus the taxonomy entry implied by the
// response status, so errors.Is works for both.
func wrapAPIError(kind, err error) error {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.IsNotFound():
			return fmt.Errorf("%w: %w: %w", kind, ErrNotFound, err)
		case apiErr.IsClientError():
			return fmt.Errorf("%w: %w: %w", kind, ErrValidationFailed, err)
		}
	}
	return fmt.Errorf("%w: %w", kind, err)
}
