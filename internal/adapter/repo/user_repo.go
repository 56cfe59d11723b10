package repo

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"arnio/internal/domain"
	"arnio/internal/infra"
	"arnio/internal/sqlinline"
)

// UserRepositoryPG implements domain.UserRepository backed by PostgreSQL.
type UserRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewUserRepository creates a new UserRepositoryPG.
func NewUserRepository(sql infra.SQLExecutor) *UserRepositoryPG {
	return &UserRepositoryPG{sql: sql}
}

// Create inserts a new profile row with the given bcrypt hash.
func (r *UserRepositoryPG) Create(ctx context.Context, user *domain.User, passwordHash string) (*domain.User, error) {
	settings, err := json.Marshal(user.Settings)
	if err != nil {
		return nil, err
	}
	usage, err := json.Marshal(user.Usage)
	if err != nil {
		return nil, err
	}
	row := r.sql.QueryRow(ctx, sqlinline.QInsertUser,
		user.ID, user.Email, passwordHash, user.Name, string(user.PlanID), settings, usage)
	return scanUser(row)
}

// GetByID fetches a profile by UUID.
func (r *UserRepositoryPG) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectUserByID, id)
	return scanUser(row)
}

// GetByEmail fetches a profile plus its password hash for credential checks.
func (r *UserRepositoryPG) GetByEmail(ctx context.Context, email string) (*domain.User, string, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectUserByEmail, email)
	var (
		u              domain.User
		hash           string
		plan           string
		settingsBytes  []byte
		usageBytes     []byte
	)
	if err := row.Scan(&u.ID, &u.Email, &hash, &u.Name, &u.AvatarURL, &plan, &settingsBytes, &usageBytes, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", domain.ErrNotFound
		}
		return nil, "", err
	}
	u.PlanID = domain.PlanID(plan)
	decodeProfileJSON(&u, settingsBytes, usageBytes)
	return &u, hash, nil
}

// UpdateSettings overwrites the settings document.
func (r *UserRepositoryPG) UpdateSettings(ctx context.Context, id string, settings domain.Settings) error {
	payload, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	tag, err := r.sql.Exec(ctx, sqlinline.QUpdateUserSettings, id, payload)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdatePlan moves the user to another tier.
func (r *UserRepositoryPG) UpdatePlan(ctx context.Context, id string, plan domain.PlanID) error {
	row := r.sql.QueryRow(ctx, sqlinline.QUpdateUserPlan, id, string(plan))
	_, err := scanUser(row)
	return err
}

// Delete removes the profile; documents and sessions cascade in the schema.
func (r *UserRepositoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QDeleteUser, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u             domain.User
		plan          string
		settingsBytes []byte
		usageBytes    []byte
	)
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.AvatarURL, &plan, &settingsBytes, &usageBytes, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	u.PlanID = domain.PlanID(plan)
	decodeProfileJSON(&u, settingsBytes, usageBytes)
	return &u, nil
}

func decodeProfileJSON(u *domain.User, settings, usage []byte) {
	u.Settings = domain.DefaultSettings()
	if len(settings) > 0 {
		_ = json.Unmarshal(settings, &u.Settings)
	}
	if len(usage) > 0 {
		_ = json.Unmarshal(usage, &u.Usage)
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
