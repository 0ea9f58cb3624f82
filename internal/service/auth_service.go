// Package service holds the application logic that sits between the HTTP
// handlers and the repositories: the authentication flow, account
// management and request filing. Every error it returns is an *apperr.Error.
package service

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/sirupsen/logrus"

	"github.com/luxylyfe/portal/internal/apperr"
	"github.com/luxylyfe/portal/internal/model"
	"github.com/luxylyfe/portal/internal/observability/metrics"
	"github.com/luxylyfe/portal/internal/repository"
	"github.com/luxylyfe/portal/internal/utils"
)

// MinPasswordLength applies to signup, account creation and resets.
const MinPasswordLength = 6

// Signup validation messages.
const (
	MsgSignupFieldsRequired = "All fields are required"
	MsgMemberOnly           = "Only member accounts can sign up"
	MsgPasswordTooShort     = "Password must be at least 6 characters"
	MsgInvalidProperty      = "Invalid property ID"
	MsgEmailMismatch        = "Email does not match property records"
	MsgPhoneMismatch        = "Phone number does not match property records"
	MsgAddressMismatch      = "Property address does not match property records"
	MsgEmailTaken           = "User with this email already exists"
)

// AuthService implements login, session verification, logout and member
// signup.
type AuthService struct {
	Repos  *repository.Repositories // users, sessions, login attempts, properties
	Signer *utils.Signer            // issues and verifies session tokens
	Cost   int                      // bcrypt cost for new passwords
	Log    logrus.FieldLogger
	Now    func() time.Time // clock for session expiry checks
}

func NewAuthService(repos *repository.Repositories, signer *utils.Signer, cost int, log logrus.FieldLogger) *AuthService {
	return &AuthService{Repos: repos, Signer: signer, Cost: cost, Log: log, Now: time.Now}
}

// LoginResult is what a successful login hands back to the handler.
type LoginResult struct {
	User      model.PublicUser
	Token     string
	ExpiresAt time.Time
}

// Login checks credentials for the (email, role) pair. A failed attempt is
// recorded before the credential check and flipped to successful once a
// session exists. Unknown account and wrong password produce the same
// error.
func (s *AuthService) Login(ctx context.Context, email, password, role, ip string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" || strings.TrimSpace(role) == "" {
		metrics.AuthLoginsTotal.WithLabelValues("invalid").Inc()
		return nil, apperr.ErrMissingCredentials
	}

	if _, err := s.Repos.LoginAttempts.Create(ctx, &model.LoginAttempt{Email: email, IPAddress: ip}); err != nil {
		return nil, apperr.Internal(apperr.MsgInternal, err)
	}

	u, err := s.Repos.Users.FindUnique(ctx, repository.UserWhere{Email: email, Role: model.Role(role)})
	if err != nil {
		return nil, apperr.Internal(apperr.MsgInternal, err)
	}
	if u == nil || !utils.VerifyPassword(u.Password, password) {
		metrics.AuthLoginsTotal.WithLabelValues("failure").Inc()
		s.Log.WithFields(logrus.Fields{"email": email, "ip": ip}).Info("login rejected")
		return nil, apperr.ErrInvalidCredentials
	}

	token, exp, err := s.Signer.GenerateToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, apperr.Internal(apperr.MsgInternal, err)
	}
	if _, err := s.Repos.Sessions.Create(ctx, &model.Session{
		UserID:    u.ID,
		Token:     token,
		ExpiresAt: s.Now().UTC().Add(utils.TokenTTL).Round(0),
	}); err != nil {
		return nil, apperr.Internal(apperr.MsgInternal, err)
	}
	if err := s.Repos.LoginAttempts.MarkLatestSuccessful(ctx, email, ip); err != nil {
		// The session is already valid; the audit flag is best effort.
		s.Log.WithError(err).Warn("mark login attempt successful")
	}

	metrics.AuthLoginsTotal.WithLabelValues("success").Inc()
	return &LoginResult{User: u.Public(), Token: token, ExpiresAt: exp}, nil
}

// VerifySession resolves a cookie token to its user. The token must verify,
// a session row holding it must exist and be unexpired, and the user must
// still exist. Every failure is ErrUnauthenticated.
func (s *AuthService) VerifySession(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, apperr.ErrUnauthenticated
	}
	if _, err := s.Signer.VerifyToken(token); err != nil {
		return nil, apperr.ErrUnauthenticated
	}
	sess, err := s.Repos.Sessions.FindUnique(ctx, repository.SessionWhere{Token: token})
	if err != nil {
		s.Log.WithError(err).Error("session lookup failed")
		return nil, apperr.ErrUnauthenticated
	}
	if sess == nil || !sess.Live(s.Now()) {
		return nil, apperr.ErrUnauthenticated
	}
	u, err := s.Repos.Users.FindUnique(ctx, repository.UserWhere{ID: sess.UserID})
	if err != nil {
		s.Log.WithError(err).Error("session user lookup failed")
		return nil, apperr.ErrUnauthenticated
	}
	if u == nil {
		return nil, apperr.ErrUnauthenticated
	}
	return u, nil
}

// Logout deletes the session holding token, if any. It never fails from
// the caller's point of view.
func (s *AuthService) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if _, err := s.Repos.Sessions.DeleteByToken(ctx, token); err != nil {
		s.Log.WithError(err).Warn("logout: delete session")
	}
}

// SignupInput is a member's self-registration form.
type SignupInput struct {
	Email           string
	Password        string
	Role            string
	Name            string
	Phone           string
	PropertyID      string
	PropertyAddress string
	PropertyNumber  string
}

// Signup creates a MEMBER account after checking the supplied contact
// details against the referenced property. The checks run in a fixed order
// and the first failure wins: required fields, role, password length,
// property existence, then email, phone and address against the listing.
// Email and address compare case-insensitively after trimming; phones
// compare by their digits. Outcomes are counted in auth_signups_total.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*model.PublicUser, error) {
	u, err := s.signup(ctx, in)
	if err != nil {
		metrics.AuthSignupsTotal.WithLabelValues("failure").Inc()
		return nil, err
	}
	metrics.AuthSignupsTotal.WithLabelValues("success").Inc()
	pub := u.Public()
	return &pub, nil
}

func (s *AuthService) signup(ctx context.Context, in SignupInput) (*model.User, error) {
	for _, v := range []string{in.Email, in.Password, in.Role, in.Name, in.Phone, in.PropertyID, in.PropertyAddress, in.PropertyNumber} {
		if strings.TrimSpace(v) == "" {
			return nil, apperr.Validation(MsgSignupFieldsRequired)
		}
	}
	if model.Role(in.Role) != model.RoleMember {
		return nil, apperr.Validation(MsgMemberOnly)
	}
	if len(in.Password) < MinPasswordLength {
		return nil, apperr.Validation(MsgPasswordTooShort)
	}

	// Property checks come before the email uniqueness check, so a form that
	// does not match its listing reports the mismatch even when the email is
	// already registered. The duplicate email surfaces as 409 from Create.
	prop, err := s.Repos.Properties.FindUnique(ctx, repository.PropertyWhere{PropertyID: strings.TrimSpace(in.PropertyID)})
	if err != nil {
		return nil, apperr.Internal(apperr.MsgInternal, err)
	}
	if prop == nil {
		return nil, apperr.Validation(MsgInvalidProperty)
	}
	if !sameText(prop.Email, in.Email) {
		return nil, apperr.Validation(MsgEmailMismatch)
	}
	if !samePhone(prop.Phone, in.Phone) {
		return nil, apperr.Validation(MsgPhoneMismatch)
	}
	if !sameText(prop.Address, in.PropertyAddress) {
		return nil, apperr.Validation(MsgAddressMismatch)
	}

	hash, err := utils.HashPassword(in.Password, s.Cost)
	if err != nil {
		return nil, apperr.Internal(apperr.MsgInternal, err)
	}
	u, err := s.Repos.Users.Create(ctx, &model.User{
		Email:           in.Email,
		Password:        hash,
		Role:            model.RoleMember,
		Name:            strings.TrimSpace(in.Name),
		Phone:           strings.TrimSpace(in.Phone),
		PropertyAddress: strings.TrimSpace(in.PropertyAddress),
		PropertyNumber:  strings.TrimSpace(in.PropertyNumber),
	})
	if err != nil {
		return nil, conflictOrInternal(err, MsgEmailTaken)
	}
	return u, nil
}

func sameText(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// samePhone compares phone numbers by their digits, so "(305) 555-0100"
// matches "305.555.0100". Values without any digits fall back to a text
// comparison; a listing with no phone on record matches nothing.
func samePhone(recorded, given string) bool {
	a, b := digits(recorded), digits(given)
	if a == "" || b == "" {
		return strings.TrimSpace(recorded) != "" && sameText(recorded, given)
	}
	return a == b
}

// digits keeps only the decimal digits of a phone number.
func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
