package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mmynk/hisaab/internal/models"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("authorization token required")
)

// Issuer is stamped on every session token and required on validation.
const Issuer = "hisaab"

// SessionClaims identify whose invoice book a request may read and write.
// Subject holds the user ID; Owner is the key invoices are stored under.
type SessionClaims struct {
	Owner string `json:"owner"`
	jwt.RegisteredClaims
}

// UserID returns the account ID carried in the subject.
func (c *SessionClaims) UserID() string {
	return c.Subject
}

// Validate is called by the jwt parser after the registered claims pass.
// A session without an owner could not be scoped to any invoices.
func (c *SessionClaims) Validate() error {
	if strings.TrimSpace(c.Owner) == "" {
		return errors.New("session has no invoice owner")
	}
	if c.Subject == "" {
		return errors.New("session has no subject")
	}
	return nil
}

// JWTManager issues and checks the HS256 session tokens handed out at login.
type JWTManager struct {
	secretKey []byte
	ttl       time.Duration
}

func NewJWTManager(secretKey string, ttl time.Duration) *JWTManager {
	return &JWTManager{
		secretKey: []byte(secretKey),
		ttl:       ttl,
	}
}

// Generate issues a session for user, owning the invoices filed under
// their username.
func (m *JWTManager) Generate(user *models.User) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		Owner: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}
	return signed, nil
}

// Validate returns the session claims of a well-formed, unexpired token
// issued by this server.
func (m *JWTManager) Validate(token string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return m.secretKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}
