package account

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/clinicaflow/console/internal/platform/apiclient"
	"github.com/clinicaflow/console/internal/platform/session"
	"github.com/clinicaflow/console/internal/platform/validation"
)

const loginFailed = "Login failed"

// Service signs the operator in and out and serves the account settings
// calls. The session lives in the injected store.
type Service struct {
	backend Backend
	store   session.Store
	logger  zerolog.Logger
}

func NewService(backend Backend, store session.Store, logger zerolog.Logger) *Service {
	return &Service{
		backend: backend,
		store:   store,
		logger:  logger.With().Str("component", "account").Logger(),
	}
}

// ValidateCredentials returns the field errors for a login attempt.
func ValidateCredentials(c Credentials) validation.Errors {
	errs := validation.Errors{}
	errs.Required(FieldEmail, c.Email, "Email is required")
	errs.Required(FieldPassword, c.Password, "Password is required")
	return errs
}

// Login authenticates and stores the new session. Invalid credentials never
// reach the backend. A response without success is returned as a 401
// APIError carrying the server's message.
func (s *Service) Login(ctx context.Context, c Credentials) (session.Session, error) {
	c.Email = strings.TrimSpace(c.Email)
	if errs := ValidateCredentials(c); errs.Any() {
		return session.Session{}, errs
	}

	resp, err := s.backend.Login(ctx, c)
	if err != nil {
		s.logger.Warn().Err(err).Str("email", c.Email).Msg("login failed")
		return session.Session{}, err
	}
	if !resp.Success || resp.Token == "" {
		msg := resp.Message
		if msg == "" {
			msg = loginFailed
		}
		s.logger.Warn().Str("email", c.Email).Str("reason", msg).Msg("login rejected")
		return session.Session{}, &apiclient.APIError{Status: http.StatusUnauthorized, Message: msg}
	}

	sess := sessionFrom(resp, c.Email)
	s.store.Set(sess)
	s.logger.Info().Str("username", sess.Username).Str("role", sess.Role).Msg("signed in")
	return sess, nil
}

// sessionFrom prefers the token's claims and fills the gaps from the user
// summary. Opaque tokens are kept as-is.
func sessionFrom(resp LoginResponse, email string) session.Session {
	sess, err := session.FromToken(resp.Token)
	if err != nil {
		sess = session.Session{Token: resp.Token}
	}

	if u := resp.User; u != nil {
		if sess.AccountID == 0 {
			sess.AccountID = u.ID
		}
		if sess.Role == "" {
			sess.Role = u.Role
		}
		if sess.Username == "" {
			sess.Username = firstNonEmpty(u.Username, u.Email)
		}
		if u.MedicalStaff != nil {
			sess.Name = u.MedicalStaff.Name
		}
	}
	if sess.Username == "" {
		sess.Username = email
	}
	if sess.Name == "" {
		sess.Name = DisplayName(sess.Username)
	}
	return sess
}

// Logout drops the current session.
func (s *Service) Logout() {
	if sess, ok := s.store.Get(); ok {
		s.logger.Info().Str("username", sess.Username).Msg("signed out")
	}
	s.store.Invalidate()
}

// Session returns the current session or session.ErrNoSession.
func (s *Service) Session() (session.Session, error) {
	sess, ok := s.store.Get()
	if !ok {
		return session.Session{}, session.ErrNoSession
	}
	return sess, nil
}

// Current loads the signed-in account's profile.
func (s *Service) Current(ctx context.Context) (Profile, error) {
	if _, err := s.Session(); err != nil {
		return Profile{}, err
	}
	p, err := s.backend.Current(ctx)
	if err != nil {
		return Profile{}, err
	}
	if p.Name == "" {
		p.Name = DisplayName(p.Username)
	}
	return p, nil
}

// ValidatePasswordChange returns the field errors for a password change.
func ValidatePasswordChange(pc PasswordChange) validation.Errors {
	errs := validation.Errors{}
	errs.Required(FieldCurrentPassword, pc.CurrentPassword, "Current password is required")
	if !errs.Required(FieldNewPassword, pc.NewPassword, "New password is required") && len(pc.NewPassword) < MinPasswordLength {
		errs.Set(FieldNewPassword, "New password must be at least 6 characters")
	}
	if !errs.Required(FieldConfirmPassword, pc.ConfirmPassword, "Please confirm your password") && pc.ConfirmPassword != pc.NewPassword {
		errs.Set(FieldConfirmPassword, "Passwords do not match")
	}
	return errs
}

// ChangePassword validates the draft and submits it for the signed-in
// account. It returns the server's confirmation text.
func (s *Service) ChangePassword(ctx context.Context, pc PasswordChange) (string, error) {
	sess, err := s.Session()
	if err != nil {
		return "", err
	}
	if errs := ValidatePasswordChange(pc); errs.Any() {
		return "", errs
	}

	text, err := s.backend.ChangePassword(ctx, PasswordRequest{
		Username:        sess.Username,
		CurrentPassword: pc.CurrentPassword,
		NewPassword:     pc.NewPassword,
		AccountID:       sess.AccountID,
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("username", sess.Username).Msg("password change failed")
		return "", err
	}
	s.logger.Info().Str("username", sess.Username).Msg("password changed")
	return text, nil
}

// DisplayName is the local part of an email address, or the whole string
// when it has none.
func DisplayName(username string) string {
	name, _, _ := strings.Cut(username, "@")
	return name
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
