package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/barber-platform/internal/audit"
	"github.com/BruksfildServices01/barber-platform/internal/httperr"
	"github.com/BruksfildServices01/barber-platform/internal/metrics"
	"github.com/BruksfildServices01/barber-platform/internal/models"
	"github.com/BruksfildServices01/barber-platform/internal/roles"
	"github.com/BruksfildServices01/barber-platform/internal/session"
)

// ErrUserNotFound is returned by UserStore lookups for absent users.
var ErrUserNotFound = errors.New("user not found")

// UserStore is the slice of user persistence the auth service needs.
// Email lookups are case-insensitive.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}

type Service struct {
	users    UserStore
	registry session.Registry
	ttl      time.Duration
	log      *zap.Logger
	audit    *audit.Dispatcher
	now      func() time.Time
}

func NewService(
	users UserStore,
	registry session.Registry,
	ttl time.Duration,
	log *zap.Logger,
	auditor *audit.Dispatcher,
) *Service {
	return &Service{
		users:    users,
		registry: registry,
		ttl:      ttl,
		log:      log,
		audit:    auditor,
		now:      time.Now,
	}
}

type LoginResult struct {
	User              *models.User `json:"user"`
	Token             string       `json:"token"`
	Permissions       []string     `json:"permissions"`
	DashboardSections []string     `json:"dashboard_sections"`
}

// Login runs the credential pipeline: user lookup, password check,
// active check, requested-role match, template lookup, session issue.
// The first failed check wins. Lookup and password failures share one
// generic error so callers cannot probe which emails exist; the
// distinct reason goes to logs and metrics only.
func (s *Service) Login(ctx context.Context, email, password, requestedRole string) (*LoginResult, error) {
	metrics.LoginAttempts.Inc()

	normalized := normalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, normalized)
	if errors.Is(err, ErrUserNotFound) {
		return nil, s.reject("user_not_found", normalized,
			httperr.ErrBusiness(httperr.CodeInvalidCredentials, "incorrect email or password"))
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, s.reject("invalid_password", normalized,
			httperr.ErrBusiness(httperr.CodeInvalidCredentials, "incorrect email or password"))
	}

	if !user.IsActive {
		return nil, s.reject("user_inactive", normalized,
			httperr.ErrBusiness(httperr.CodeUserInactive, "user is inactive"))
	}

	if !roles.Matches(requestedRole, user.Role) {
		return nil, s.reject("user_type_mismatch", normalized,
			httperr.ErrBusiness(httperr.CodeTypeMismatch, "user type mismatch"))
	}

	template, ok := roles.TemplateFor(user.Role)
	if !ok {
		return nil, s.reject("session_template_not_found", normalized,
			httperr.ErrBusiness(httperr.CodeNoSessionTemplate, "no session template for role"))
	}

	token, err := session.NewToken()
	if err != nil {
		return nil, err
	}

	now := s.now()
	sess := &session.Session{
		UserID:            user.ID,
		Email:             user.Email,
		Role:              user.Role,
		TenantID:          user.TenantID,
		Permissions:       template.Permissions,
		DashboardSections: template.DashboardSections,
		CreatedAt:         now,
		ExpiresAt:         now.Add(s.ttl),
		LastActivity:      now,
	}

	if err := s.registry.Put(ctx, token, sess); err != nil {
		return nil, err
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.log.Warn("failed to stamp last login", zap.String("user_id", user.ID), zap.Error(err))
	}
	user.LastLogin = &now

	s.log.Info("login succeeded",
		zap.String("user_id", user.ID),
		zap.String("role", user.Role),
	)
	s.audit.Dispatch(audit.Event{
		TenantID: tenantOrEmpty(user.TenantID),
		UserID:   &user.ID,
		Action:   "user_login",
		Entity:   "user",
		EntityID: &user.ID,
	})

	return &LoginResult{
		User:              user,
		Token:             token,
		Permissions:       template.Permissions,
		DashboardSections: template.DashboardSections,
	}, nil
}

// Logout retires the session. Unknown tokens still succeed.
func (s *Service) Logout(ctx context.Context, token string) error {
	sess, err := s.registry.Get(ctx, token)
	if err == nil {
		s.audit.Dispatch(audit.Event{
			TenantID: tenantOrEmpty(sess.TenantID),
			UserID:   &sess.UserID,
			Action:   "user_logout",
			Entity:   "user",
			EntityID: &sess.UserID,
		})
	}
	return s.registry.Remove(ctx, token)
}

// ValidateSession resolves a token to its user, evicting the session
// when it is expired or the user has since been removed/deactivated.
func (s *Service) ValidateSession(ctx context.Context, token string) (*models.User, *session.Session, error) {
	sess, err := s.registry.Get(ctx, token)
	if errors.Is(err, session.ErrNotFound) {
		return nil, nil, httperr.ErrBusiness(httperr.CodeInvalidSession, "invalid or expired token")
	}
	if err != nil {
		return nil, nil, err
	}

	user, err := s.users.FindByID(ctx, sess.UserID)
	if errors.Is(err, ErrUserNotFound) || (err == nil && !user.IsActive) {
		_ = s.registry.Remove(ctx, token)
		return nil, nil, httperr.ErrBusiness(httperr.CodeInvalidSession, "invalid or expired token")
	}
	if err != nil {
		return nil, nil, err
	}

	return user, sess, nil
}

func (s *Service) reject(reason, email string, err error) error {
	metrics.LoginFailures.WithLabelValues(reason).Inc()
	s.log.Info("login rejected",
		zap.String("reason", reason),
		zap.String("email", email),
	)
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func tenantOrEmpty(t *string) string {
	if t == nil {
		return ""
	}
	return *t
}
