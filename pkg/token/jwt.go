// Package token issues and verifies the stateless bearer tokens used by the API.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TTL is the fixed lifetime of every issued token.
const TTL = 24 * time.Hour

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrMissingToken = errors.New("missing token")
)

// Claims is the JWT payload. Only the user id and username are carried.
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Identity is the caller resolved from a valid token.
type Identity struct {
	UserID   uuid.UUID
	Username string
}

// Status tags the outcome of Verify.
type Status int

const (
	Valid Status = iota
	Missing
	Invalid
	Expired
)

func (s Status) String() string {
	switch s {
	case Valid:
		return "valid"
	case Missing:
		return "missing"
	case Expired:
		return "expired"
	default:
		return "invalid"
	}
}

// Result of verifying a raw token. Identity is set only when Status is Valid.
type Result struct {
	Status   Status
	Identity *Identity
}

// Err maps the result onto the package's sentinel errors, nil when valid.
func (r Result) Err() error {
	switch r.Status {
	case Valid:
		return nil
	case Missing:
		return ErrMissingToken
	case Expired:
		return ErrExpiredToken
	default:
		return ErrInvalidToken
	}
}

type Manager struct {
	secret []byte
	now    func() time.Time
}

func NewManager(secret string) *Manager {
	return &Manager{
		secret: []byte(secret),
		now:    time.Now,
	}
}

func (m *Manager) Issue(userID uuid.UUID, username string) (string, error) {
	return m.IssueAt(userID, username, m.now())
}

// IssueAt signs a token as if it had been issued at issuedAt. Expiry is always
// issuedAt + TTL.
func (m *Manager) IssueAt(userID uuid.UUID, username string, issuedAt time.Time) (string, error) {
	claims := Claims{
		UserID:   userID.String(),
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(TTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

// Verify checks signature, algorithm and expiry. The signature is checked
// before the claims, so Expired is only reported for tokens we signed.
func (m *Manager) Verify(raw string) Result {
	if raw == "" {
		return Result{Status: Missing}
	}

	claims := &Claims{}
	t, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Result{Status: Expired}
		}
		return Result{Status: Invalid}
	}
	if !t.Valid {
		return Result{Status: Invalid}
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return Result{Status: Invalid}
	}

	return Result{
		Status: Valid,
		Identity: &Identity{
			UserID:   userID,
			Username: claims.Username,
		},
	}
}
