// Package auth is the identity gateway: sign-up, sign-in, session lifecycle
// and profile management. Tokens are HMAC-signed JWTs carrying the session id,
// so deleting the session row revokes every outstanding token for it.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"arnio/internal/domain"
	"arnio/internal/infra/geoip"
	"arnio/internal/metrics"
	"arnio/internal/middleware"
)

const issuer = "arnio"

// Service implements the identity gateway over the user and session stores.
type Service struct {
	users      domain.UserRepository
	sessions   domain.SessionRepository
	geo        geoip.CountryResolver
	rec        metrics.Recorder
	jwtSecret  string
	sessionTTL time.Duration
	timeout    time.Duration
	logger     zerolog.Logger
	now        func() time.Time
}

// Options configures a Service.
type Options struct {
	JWTSecret  string
	SessionTTL time.Duration
	Timeout    time.Duration
	Geo        geoip.CountryResolver
	Recorder   metrics.Recorder
	Logger     zerolog.Logger
}

// NewService creates the identity gateway.
func NewService(users domain.UserRepository, sessions domain.SessionRepository, opts Options) *Service {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 7 * 24 * time.Hour
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.Nop{}
	}
	return &Service{
		users:      users,
		sessions:   sessions,
		geo:        opts.Geo,
		rec:        opts.Recorder,
		jwtSecret:  opts.JWTSecret,
		sessionTTL: opts.SessionTTL,
		timeout:    opts.Timeout,
		logger:     opts.Logger,
		now:        time.Now,
	}
}

// SignUpInput carries the new-account form.
type SignUpInput struct {
	Email    string
	Password string
	Name     string
}

// SignUp registers an account on the free plan and signs it in.
func (s *Service) SignUp(ctx context.Context, in SignUpInput, ip string) (string, *domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Password) < 8 {
		return "", nil, domain.ErrAuthFailed
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	user := &domain.User{
		ID:       uuid.NewString(),
		Email:    email,
		Name:     strings.TrimSpace(in.Name),
		PlanID:   domain.PlanFree,
		Settings: domain.DefaultSettings(),
	}
	created, err := s.users.Create(ctx, user, string(hash))
	if err != nil {
		return "", nil, domain.AsStoreError(err)
	}
	s.logger.Info().Str("user_id", created.ID).Msg("account created")

	token, err := s.openSession(ctx, created, ip)
	if err != nil {
		return "", nil, err
	}
	return token, created, nil
}

// SignIn verifies credentials and opens a session. A missing account and a
// wrong password are reported identically.
func (s *Service) SignIn(ctx context.Context, email, password, ip string) (string, *domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	email = strings.ToLower(strings.TrimSpace(email))
	user, hash, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil, domain.ErrAuthFailed
	}
	if err != nil {
		return "", nil, domain.AsStoreError(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return "", nil, domain.ErrAuthFailed
	}

	token, err := s.openSession(ctx, user, ip)
	if err != nil {
		return "", nil, err
	}
	s.rec.RecordSignIn()
	return token, user, nil
}

func (s *Service) openSession(ctx context.Context, user *domain.User, ip string) (string, error) {
	now := s.now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		IP:        ip,
		Country:   s.countryFor(ip),
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", domain.AsStoreError(err)
	}

	token, err := middleware.SignJWT(s.jwtSecret, middleware.TokenClaims{
		Sub:       user.ID,
		SessionID: session.ID,
		Plan:      string(user.PlanID),
		Locale:    user.Settings.Language,
		Exp:       session.ExpiresAt.Unix(),
		Issuer:    issuer,
	})
	if err != nil {
		return "", err
	}
	s.logger.Info().Str("user_id", user.ID).Str("session_id", session.ID).Str("country", session.Country).Msg("session opened")
	return token, nil
}

// Country resolution is best effort. Sign-in never fails on a geoip error.
func (s *Service) countryFor(ip string) string {
	if s.geo == nil || ip == "" {
		return ""
	}
	country, err := s.geo.CountryCode(ip)
	if err != nil {
		s.logger.Debug().Err(err).Str("ip", ip).Msg("country lookup failed")
		return ""
	}
	return country
}

// SignOut destroys the session. Signing out twice is not an error.
func (s *Service) SignOut(ctx context.Context, sessionID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return domain.AsStoreError(err)
	}
	return nil
}

// ValidateSession reports whether the session still exists and has not
// expired. Satisfies middleware.SessionValidator.
func (s *Service) ValidateSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return domain.ErrUnauthorized
	}
	session, err := s.sessions.GetByID(ctx, sessionID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrUnauthorized
	}
	if err != nil {
		return domain.AsStoreError(err)
	}
	if session.Expired(s.now()) {
		return domain.ErrUnauthorized
	}
	return nil
}

// Me loads the signed-in user's profile.
func (s *Service) Me(ctx context.Context, userID string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, domain.AsStoreError(err)
	}
	return user, nil
}

// UpdateSettings replaces the user's preferences.
func (s *Service) UpdateSettings(ctx context.Context, userID string, settings domain.Settings) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if settings.Language != "en" && settings.Language != "id" {
		settings.Language = "en"
	}
	if err := s.users.UpdateSettings(ctx, userID, settings); err != nil {
		return domain.AsStoreError(err)
	}
	return nil
}

// ChangePlan moves the user onto the named plan. Billing settlement happens
// out of band; the evaluator trusts the stored plan id.
func (s *Service) ChangePlan(ctx context.Context, userID string, planID domain.PlanID) (domain.Plan, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	plan, err := domain.PlanByID(planID)
	if err != nil {
		return domain.Plan{}, err
	}
	if err := s.users.UpdatePlan(ctx, userID, plan.ID); err != nil {
		return domain.Plan{}, domain.AsStoreError(err)
	}
	s.logger.Info().Str("user_id", userID).Str("plan", string(plan.ID)).Msg("plan changed")
	return plan, nil
}

// CancelPlan drops the user back to the free tier. Existing documents stay;
// only future uploads are judged against the free limits.
func (s *Service) CancelPlan(ctx context.Context, userID string) (domain.Plan, error) {
	return s.ChangePlan(ctx, userID, domain.PlanFree)
}

// DeleteAccount removes the user and, through the store's cascade, their
// documents and sessions.
func (s *Service) DeleteAccount(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.users.Delete(ctx, userID); err != nil {
		return domain.AsStoreError(err)
	}
	s.logger.Info().Str("user_id", userID).Msg("account deleted")
	return nil
}

// PurgeExpiredSessions removes sessions past their lifetime. Meant for a
// periodic sweep from the API process.
func (s *Service) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	n, err := s.sessions.DeleteExpired(ctx)
	if err != nil {
		return 0, domain.AsStoreError(err)
	}
	if n > 0 {
		s.logger.Info().Int64("sessions", n).Msg("expired sessions purged")
	}
	return n, nil
}
