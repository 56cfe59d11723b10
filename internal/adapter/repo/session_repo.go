package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"arnio/internal/domain"
	"arnio/internal/infra"
	"arnio/internal/sqlinline"
)

// SessionRepositoryPG implements domain.SessionRepository backed by PostgreSQL.
type SessionRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewSessionRepository creates a new SessionRepositoryPG.
func NewSessionRepository(sql infra.SQLExecutor) *SessionRepositoryPG {
	return &SessionRepositoryPG{sql: sql}
}

// Create inserts a session row.
func (r *SessionRepositoryPG) Create(ctx context.Context, session *domain.Session) error {
	_, err := r.sql.Exec(ctx, sqlinline.QInsertSession,
		session.ID, session.UserID, session.IP, session.Country, session.ExpiresAt)
	return err
}

// GetByID fetches a session by UUID.
func (r *SessionRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectSessionByID, id)
	var s domain.Session
	if err := row.Scan(&s.ID, &s.UserID, &s.IP, &s.Country, &s.ExpiresAt, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Delete removes a session. Missing rows are not an error: sign-out is idempotent.
func (r *SessionRepositoryPG) Delete(ctx context.Context, id string) error {
	_, err := r.sql.Exec(ctx, sqlinline.QDeleteSession, id)
	return err
}

// DeleteExpired clears sessions past their lifetime and reports how many.
func (r *SessionRepositoryPG) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.sql.Exec(ctx, sqlinline.QDeleteExpiredSessions)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
