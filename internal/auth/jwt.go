// Package auth mints and validates the single-role admin service token that
// gates the review-facing endpoints. There are no end-user accounts, so
// unlike the teacher there is no refresh token or session id to track.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AdminTokenTTL is how long a minted admin service token remains valid.
const AdminTokenTTL = 12 * time.Hour

var (
	// ErrInvalidToken is returned when a token is malformed or fails to verify.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when a token's expiry has passed.
	ErrExpiredToken = errors.New("token expired")
	// ErrInvalidClaims is returned when a token's claims cannot be decoded.
	ErrInvalidClaims = errors.New("invalid token claims")
)

// Claims is the JWT payload for an admin service token.
type Claims struct {
	Subject string `json:"sub"`
	jwt.RegisteredClaims
}

// JWTService signs and verifies admin service tokens with a shared secret.
type JWTService struct {
	secretKey []byte
	issuer    string
}

// NewJWTService builds a JWTService. secretKey must be non-empty for tokens
// to be trustworthy; an empty secret is accepted so the service can still
// start with auth effectively disabled in local/dev setups, per config.
func NewJWTService(secretKey, issuer string) *JWTService {
	return &JWTService{secretKey: []byte(secretKey), issuer: issuer}
}

// IssueAdminToken mints a token identifying subject (an operator or service
// name), valid for AdminTokenTTL.
func (s *JWTService) IssueAdminToken(subject string) (string, error) {
	now := time.Now()
	claims := Claims{
		Subject: subject,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(AdminTokenTTL)),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// ValidateToken verifies signature and expiry and returns the claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return nil, ErrExpiredToken
	}
	return claims, nil
}

// ExtractTokenFromBearer extracts the token from an "Authorization: Bearer
// <token>" header value.
func ExtractTokenFromBearer(authHeader string) string {
	const prefix = "Bearer "
	if len(authHeader) > len(prefix) && authHeader[:len(prefix)] == prefix {
		return authHeader[len(prefix):]
	}
	return ""
}
