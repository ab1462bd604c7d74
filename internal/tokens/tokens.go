package tokens

import (
	"errors"
	"time"

	"nexus-backend/internal/pkg/apperrors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Kind tags a token with its purpose. The tag is part of the signed payload,
// so a captured refresh token cannot be replayed as a bearer credential: the
// signature covers the tag and Verify rejects the mismatch.
type Kind string

const (
	Access  Kind = "access"
	Refresh Kind = "refresh"
)

// ErrInvalidToken covers every verification failure: bad signature, malformed
// payload, expiry, and kind mismatch. Callers must not be able to tell these
// apart.
var ErrInvalidToken = apperrors.New(apperrors.KindInvalidToken, "Invalid or expired token")

type claims struct {
	OrganizationID string `json:"org"`
	TokenType      string `json:"type"`
	jwt.RegisteredClaims
}

// Service issues and verifies signed tokens binding (subject, organization, kind).
type Service struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewService(secret string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Issue signs a token of the given kind for (userID, orgID). Expiry comes
// from the kind-specific lifetime.
func (s *Service) Issue(userID, orgID uuid.UUID, kind Kind) (string, error) {
	ttl := s.accessTTL
	if kind == Refresh {
		ttl = s.refreshTTL
	}
	now := time.Now()
	c := claims{
		OrganizationID: orgID.String(),
		TokenType:      string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(s.secret)
}

// Verify checks the signature, expiry, and kind tag, and returns the bound
// (userID, orgID, issuedAt). Pure verification; no side effects.
func (s *Service) Verify(tokenString string, expected Kind) (uuid.UUID, uuid.UUID, time.Time, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, uuid.Nil, time.Time{}, ErrInvalidToken
	}
	if c.TokenType != string(expected) {
		return uuid.Nil, uuid.Nil, time.Time{}, ErrInvalidToken
	}
	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, uuid.Nil, time.Time{}, ErrInvalidToken
	}
	orgID, err := uuid.Parse(c.OrganizationID)
	if err != nil {
		return uuid.Nil, uuid.Nil, time.Time{}, ErrInvalidToken
	}
	issuedAt := time.Time{}
	if c.IssuedAt != nil {
		issuedAt = c.IssuedAt.Time
	}
	return userID, orgID, issuedAt, nil
}
