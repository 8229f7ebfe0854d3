// Package auth coordinates the register / authenticate / refresh / logout
// flows over the credential store, the token codec and the token ledger.
// It owns the single-active-session invariant: at any moment at most one
// ledger row per user is usable.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/leagueforge/leagueforge/token"
	"github.com/leagueforge/leagueforge/token/ledger"
	"github.com/leagueforge/leagueforge/users"
)

const (
	defaultAccessTokenTTL  = time.Hour
	defaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// TokenPair is the outcome of a successful register or authenticate call.
// The access token goes in the response body; the refresh token travels
// only as a cookie, built by RefreshCookie.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Metrics receives auth-flow events. The zero implementation is a no-op so
// the orchestrator never depends on a live registry.
type Metrics interface {
	RecordRegistration()
	RecordLogin()
	RecordLoginFailure()
	RecordRefresh()
	RecordTokensRevoked(count int64)
}

type nopMetrics struct{}

func (nopMetrics) RecordRegistration()             {}
func (nopMetrics) RecordLogin()                    {}
func (nopMetrics) RecordLoginFailure()             {}
func (nopMetrics) RecordRefresh()                  {}
func (nopMetrics) RecordTokensRevoked(count int64) {}

// Repos holds the repository dependencies for the Service.
type Repos struct {
	Users  users.UserRepo
	Ledger ledger.Repo
}

// Service orchestrates session flows. All state lives in the stores; the
// service itself is safe for concurrent use.
type Service struct {
	repos      Repos
	codec      *token.Codec
	accessTTL  time.Duration
	refreshTTL time.Duration
	production bool
	metrics    Metrics
	logger     zerolog.Logger
	nowTime    func() time.Time
}

type ServiceOption func(*Service)

// WithTokenTTLs sets the access and refresh token lifetimes.
func WithTokenTTLs(accessTTL, refreshTTL time.Duration) ServiceOption {
	return func(s *Service) {
		s.accessTTL = accessTTL
		s.refreshTTL = refreshTTL
	}
}

// WithProduction toggles the Secure attribute on refresh cookies.
func WithProduction(production bool) ServiceOption {
	return func(s *Service) {
		s.production = production
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m Metrics) ServiceOption {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLogger sets the service logger.
func WithLogger(logger zerolog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

func NewService(repos Repos, codec *token.Codec, options ...ServiceOption) (*Service, error) {
	if repos.Users == nil {
		return nil, errors.New("[NewService] Users repo is required")
	}
	if repos.Ledger == nil {
		return nil, errors.New("[NewService] Ledger repo is required")
	}
	if codec == nil {
		return nil, errors.New("[NewService] codec is required")
	}

	s := &Service{
		repos:      repos,
		codec:      codec,
		accessTTL:  defaultAccessTokenTTL,
		refreshTTL: defaultRefreshTokenTTL,
		metrics:    nopMetrics{},
		logger:     zerolog.Nop(),
		nowTime:    time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Register creates a user with the default role and opens their first
// session. Fails with ErrAlreadyExists when the email is taken.
func (s *Service) Register(ctx context.Context, email, password string) (*TokenPair, error) {
	existing, err := s.repos.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Register] GetByEmail")
	}
	if existing != nil {
		return nil, ErrAlreadyExists
	}

	if err := users.ValidatePasswordStrength(password); err != nil {
		return nil, ErrWeakPassword
	}

	hash, err := users.HashPassword(password)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Register] HashPassword")
	}

	user := &users.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Enabled:      true,
		Roles:        []string{users.RoleUser},
	}
	if err := s.repos.Users.Create(ctx, user); err != nil {
		return nil, errors.Wrap(err, "[Service.Register] Create")
	}

	pair, err := s.openSession(ctx, user, false)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordRegistration()
	s.logger.Info().Str("email", email).Msg("registered new user")
	return pair, nil
}

// Authenticate verifies credentials and replaces any existing session.
// The revoke-all happens atomically with recording the replacement token,
// so no window exists where two tokens for the user are simultaneously
// valid.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.repos.Users.GetByEmailWithRoles(ctx, email)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Authenticate] GetByEmailWithRoles")
	}
	if user == nil {
		return nil, ErrNotFound
	}

	if !users.CheckPasswordHash(password, user.PasswordHash) {
		s.metrics.RecordLoginFailure()
		return nil, ErrAuthenticationFailed
	}
	if !user.CanAuthenticate() {
		s.metrics.RecordLoginFailure()
		return nil, ErrAccountDisabled
	}

	pair, err := s.openSession(ctx, user, true)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordLogin()
	return pair, nil
}

// Refresh mints a new access token from a refresh token. The refresh token
// itself is not rotated: it stays valid until its own expiry, matching the
// cookie the client already holds.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", ErrNoRefreshToken
	}

	email, err := s.codec.SubjectOf(refreshToken)
	if err != nil {
		return "", ErrTokenInvalid
	}

	user, err := s.repos.Users.GetByEmailWithRoles(ctx, email)
	if err != nil {
		return "", errors.Wrap(err, "[Service.Refresh] GetByEmailWithRoles")
	}
	if user == nil {
		return "", ErrNotFound
	}

	if !s.codec.IsValidFor(refreshToken, user.Email) {
		return "", ErrTokenInvalid
	}

	accessToken, err := s.codec.Issue(user.Email, nil, s.accessTTL)
	if err != nil {
		return "", errors.Wrap(err, "[Service.Refresh] Issue")
	}

	revoked, err := s.repos.Ledger.Rotate(ctx, user.ID, accessToken)
	if err != nil {
		return "", errors.Wrap(err, "[Service.Refresh] Rotate")
	}
	s.logRevoked(user.Email, revoked)

	s.metrics.RecordRefresh()
	return accessToken, nil
}

// Logout revokes the presented access token's ledger row if one exists.
// Best-effort: a missing or unknown token is logged, never an error, and
// the caller always gets the clearing cookie from ClearRefreshCookie.
func (s *Service) Logout(ctx context.Context, rawToken string) {
	if rawToken == "" {
		s.logger.Warn().Msg("logout attempt with missing bearer token")
		return
	}

	row, err := s.repos.Ledger.FindByToken(ctx, rawToken)
	if err != nil || row == nil {
		return
	}

	revoked, err := s.repos.Ledger.RevokeAllForUser(ctx, row.UserID)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to revoke tokens on logout")
		return
	}
	s.logger.Info().Str("user_id", row.UserID).Int64("revoked", revoked).Msg("logged out user")
	s.metrics.RecordTokensRevoked(revoked)
}

// ChangePassword re-hashes the password after verifying the current one,
// then revokes every ledger row so all sessions must re-authenticate.
func (s *Service) ChangePassword(ctx context.Context, userID, current, newPassword, confirmation string) error {
	user, err := s.repos.Users.GetByID(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "[Service.ChangePassword] GetByID")
	}
	if user == nil {
		return ErrNotFound
	}

	if !users.CheckPasswordHash(current, user.PasswordHash) {
		return ErrAuthenticationFailed
	}
	if newPassword != confirmation {
		return ErrPasswordMismatch
	}
	if err := users.ValidatePasswordStrength(newPassword); err != nil {
		return ErrWeakPassword
	}

	hash, err := users.HashPassword(newPassword)
	if err != nil {
		return errors.Wrap(err, "[Service.ChangePassword] HashPassword")
	}
	if err := s.repos.Users.UpdatePassword(ctx, userID, hash); err != nil {
		return errors.Wrap(err, "[Service.ChangePassword] UpdatePassword")
	}

	revoked, err := s.repos.Ledger.RevokeAllForUser(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "[Service.ChangePassword] RevokeAllForUser")
	}
	s.logRevoked(user.Email, revoked)
	return nil
}

// openSession issues the token pair and records the access token. When
// replace is set the record happens through Rotate so prior sessions die
// with it; register skips the revoke since a brand-new user has no rows.
func (s *Service) openSession(ctx context.Context, user *users.User, replace bool) (*TokenPair, error) {
	accessToken, err := s.codec.Issue(user.Email, nil, s.accessTTL)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.openSession] issue access token")
	}
	refreshToken, err := s.codec.IssueRefresh(user.Email, s.refreshTTL)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.openSession] issue refresh token")
	}

	if replace {
		revoked, err := s.repos.Ledger.Rotate(ctx, user.ID, accessToken)
		if err != nil {
			return nil, errors.Wrap(err, "[Service.openSession] Rotate")
		}
		s.logRevoked(user.Email, revoked)
	} else {
		if err := s.repos.Ledger.Record(ctx, user.ID, accessToken); err != nil {
			return nil, errors.Wrap(err, "[Service.openSession] Record")
		}
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *Service) logRevoked(email string, revoked int64) {
	if revoked == 0 {
		s.logger.Info().Str("email", email).Msg("no valid tokens found for user")
		return
	}
	s.logger.Info().Str("email", email).Int64("revoked", revoked).Msg("revoked valid tokens for user")
	s.metrics.RecordTokensRevoked(revoked)
}
