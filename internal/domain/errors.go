package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound              = errors.New("not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrUnknownPlan           = errors.New("unknown plan")
	ErrDocumentLimitExceeded = errors.New("document limit exceeded")
	ErrStorageLimitExceeded  = errors.New("storage limit exceeded")
	ErrDeletionNotPermitted  = errors.New("deletion not permitted")
	ErrFeatureNotAvailable   = errors.New("feature not available")
	ErrInvalidProgress       = errors.New("invalid progress")
	ErrStoreUnavailable      = errors.New("store unavailable")
	ErrAuthFailed            = errors.New("authentication failed")
	ErrEmailTaken            = errors.New("email already registered")
)

// AsStoreError classifies a backend failure as ErrStoreUnavailable while
// letting domain sentinels pass through untouched. Timeouts land here too:
// an expired store call is indistinguishable from an unavailable store.
func AsStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrEmailTaken),
		errors.Is(err, ErrUnknownPlan),
		errors.Is(err, ErrStoreUnavailable):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
}
