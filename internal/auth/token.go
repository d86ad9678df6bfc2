package auth

import (
	"time"

	"github.com/dealdesk/dealdesk/internal/config"
	ierr "github.com/dealdesk/dealdesk/internal/errors"
	"github.com/golang-jwt/jwt/v4"
)

// Claims carries the authenticated identity inside a signed token.
type Claims struct {
	TenantID string `json:"tenant_id"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies the bearer tokens used by the API.
type TokenService interface {
	IssueToken(userID, tenantID string) (string, error)
	ParseToken(token string) (*Claims, error)
}

type tokenService struct {
	secret []byte
	expiry time.Duration
}

func NewTokenService(cfg *config.Configuration) TokenService {
	expiry := time.Duration(cfg.Auth.TokenExpiryHrs) * time.Hour
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &tokenService{
		secret: []byte(cfg.Auth.Secret),
		expiry: expiry,
	}
}

func (s *tokenService) IssueToken(userID, tenantID string) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		TenantID: tenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", ierr.WithError(err).
			WithMessage("failed to sign token").
			Mark(ierr.ErrSystem)
	}
	return token, nil
}

func (s *tokenService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ierr.NewError("invalid or expired token").
			WithHint("Please sign in again").
			Mark(ierr.ErrPermissionDenied)
	}
	return claims, nil
}
