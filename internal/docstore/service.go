// Package docstore is the gateway for document persistence. Every mutating
// operation consults the entitlement evaluator before touching the store, so
// a denied request costs no write.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"arnio/internal/domain"
	"arnio/internal/metrics"
)

// DefaultTotalPages stands in for real page extraction, which is an external
// metadata service in production. Callers that know the page count pass it.
const DefaultTotalPages = 120

// FileMeta describes an incoming upload.
type FileMeta struct {
	Name       string
	SizeBytes  int64
	MimeType   string
	TotalPages int
}

// Service coordinates document CRUD with entitlement checks.
type Service struct {
	docs    domain.DocumentRepository
	users   domain.UserRepository
	rec     metrics.Recorder
	timeout time.Duration
	logger  zerolog.Logger
}

// NewService creates a Service. A non-positive timeout falls back to 15s.
func NewService(docs domain.DocumentRepository, users domain.UserRepository, rec metrics.Recorder, timeout time.Duration, logger zerolog.Logger) *Service {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Service{docs: docs, users: users, rec: rec, timeout: timeout, logger: logger}
}

// List returns the user's documents, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]domain.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	docs, err := s.docs.ListByOwner(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	return docs, nil
}

// Upload persists a new document if the owner's plan allows one more. Usage
// is derived from live rows, never from a separately maintained counter.
func (s *Service) Upload(ctx context.Context, userID string, meta FileMeta) (*domain.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	plan, err := s.planFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	usage, err := s.docs.UsageByOwner(ctx, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	if err := domain.CanUpload(plan, usage.DocumentCount, usage.StorageBytes, meta.SizeBytes); err != nil {
		s.rec.RecordUploadDenied(denialReason(err))
		return nil, err
	}

	totalPages := meta.TotalPages
	if totalPages <= 0 {
		totalPages = DefaultTotalPages
	}
	doc := &domain.Document{
		ID:          uuid.NewString(),
		OwnerID:     userID,
		Name:        meta.Name,
		SizeBytes:   meta.SizeBytes,
		MimeType:    meta.MimeType,
		TotalPages:  totalPages,
		CurrentPage: 1,
	}
	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, storeErr(err)
	}
	s.rec.RecordUpload()
	s.logger.Info().Str("user_id", userID).Str("document_id", doc.ID).Int64("bytes", doc.SizeBytes).Msg("document uploaded")
	return doc, nil
}

// Delete removes a document owned by the user. The entitlement check runs
// first; denied plans never reach the store.
func (s *Service) Delete(ctx context.Context, userID, documentID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	plan, err := s.planFor(ctx, userID)
	if err != nil {
		return err
	}
	if err := domain.CanDelete(plan); err != nil {
		return err
	}
	if err := s.docs.Delete(ctx, documentID, userID); err != nil {
		return storeErr(err)
	}
	s.rec.RecordDeletion()
	s.logger.Info().Str("user_id", userID).Str("document_id", documentID).Msg("document deleted")
	return nil
}

// UpdateProgress validates and stores a new reading position.
func (s *Service) UpdateProgress(ctx context.Context, userID, documentID string, progressPercent int) (*domain.Document, error) {
	if progressPercent < 0 || progressPercent > 100 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidProgress, progressPercent)
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	doc, err := s.docs.UpdateProgress(ctx, documentID, userID, progressPercent)
	if err != nil {
		return nil, storeErr(err)
	}
	return doc, nil
}

func (s *Service) planFor(ctx context.Context, userID string) (domain.Plan, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.Plan{}, storeErr(err)
	}
	plan, err := domain.PlanByID(user.PlanID)
	if err != nil {
		return domain.Plan{}, err
	}
	return plan, nil
}

// No retry happens on store failures; callers surface them and the client
// decides.
func storeErr(err error) error {
	return domain.AsStoreError(err)
}

func denialReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrDocumentLimitExceeded):
		return "document_limit"
	case errors.Is(err, domain.ErrStorageLimitExceeded):
		return "storage_limit"
	default:
		return "other"
	}
}
