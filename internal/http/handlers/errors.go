package handlers

import (
	"errors"
	"net/http"

	"arnio/internal/domain"
)

// domainError maps a gateway error onto an HTTP status and message code.
// Entitlement denials are 403: the request was understood and refused.
func (a *App) domainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrDocumentLimitExceeded):
		a.error(w, r, http.StatusForbidden, "document_limit_exceeded")
	case errors.Is(err, domain.ErrStorageLimitExceeded):
		a.error(w, r, http.StatusForbidden, "storage_limit_exceeded")
	case errors.Is(err, domain.ErrDeletionNotPermitted):
		a.error(w, r, http.StatusForbidden, "deletion_not_permitted")
	case errors.Is(err, domain.ErrFeatureNotAvailable):
		a.error(w, r, http.StatusForbidden, "feature_not_available")
	case errors.Is(err, domain.ErrInvalidProgress):
		a.error(w, r, http.StatusBadRequest, "invalid_progress")
	case errors.Is(err, domain.ErrUnknownPlan):
		a.error(w, r, http.StatusBadRequest, "unknown_plan")
	case errors.Is(err, domain.ErrAuthFailed):
		a.error(w, r, http.StatusUnauthorized, "auth_failed")
	case errors.Is(err, domain.ErrUnauthorized):
		a.error(w, r, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrEmailTaken):
		a.error(w, r, http.StatusConflict, "email_taken")
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, r, http.StatusNotFound, "not_found")
	case errors.Is(err, domain.ErrStoreUnavailable):
		a.Logger.Error().Err(err).Msg("store failure")
		a.error(w, r, http.StatusServiceUnavailable, "store_unavailable")
	default:
		a.Logger.Error().Err(err).Msg("unhandled error")
		a.error(w, r, http.StatusInternalServerError, "internal")
	}
}
