package utils // package utils provides helper functions for token creation and hashing

import (
	"errors" // sentinel errors for verification and configuration
	"time"   // expiry arithmetic

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
	"github.com/google/uuid"       // random token ids (jti)
)

// TokenTTL is the fixed lifetime embedded in every session token.
const TokenTTL = 24 * time.Hour

var (
	// ErrInvalidToken is returned for every verification failure: bad
	// signature, expired, malformed or signed with another algorithm.
	// Callers treat it as "unauthenticated" without looking further.
	ErrInvalidToken = errors.New("invalid token")
	// ErrMissingSecret means the signer was built without a secret.
	ErrMissingSecret = errors.New("jwt secret is not configured")
)

// Claims is the compact claim set carried by a session token. The custom
// fields identify the account at issue time; the registered claims hold the
// subject (same as UserID), the issue and expiry timestamps and a random
// token id. Role is informational only: authorization re-reads the role from
// the stored user on every request.
type Claims struct {
	UserID string `json:"userId"` // document id of the user
	Email  string `json:"email"`  // login email, lowercased
	Role   string `json:"role"`   // SUPERADMIN, ADMIN or MEMBER
	jwt.RegisteredClaims
}

// Signer issues and verifies HS256 session tokens with a server-held secret.
// The clock is injectable so expiry can be tested without sleeping.
type Signer struct {
	secret []byte           // HMAC key, never empty
	now    func() time.Time // time source, time.Now outside tests
}

// NewSigner builds a Signer. An empty secret is a configuration error.
func NewSigner(secret string) (*Signer, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &Signer{secret: []byte(secret), now: time.Now}, nil
}

// GenerateToken signs userId, email and role with a 24 hour expiry and
// returns the serialized token together with its expiry time. Each token
// carries a random jti so two logins in the same second differ. The returned
// expiry is the one embedded in the token; the caller stores it on the
// session row so both checks agree.
func (s *Signer) GenerateToken(userID, email, role string) (string, time.Time, error) {
	// Timestamps are second-granular in the token, UTC everywhere else.
	now := s.now().UTC()
	exp := now.Add(TokenTTL)
	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// VerifyToken validates signature and embedded expiry and returns the claims.
// Only HMAC-signed tokens are accepted, which rules out "none" and any
// asymmetric algorithm. Every failure collapses into ErrInvalidToken; the
// underlying parser error is dropped.
func (s *Signer) VerifyToken(raw string) (*Claims, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		// Reject tokens whose header names a different algorithm family.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !tok.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
