package service

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidSession       = errors.New("invalid session token")
	ErrSessionNotConfigured = errors.New("session verification not configured")
)

// AuthService verifies identity provider session tokens. Sign-in itself
// happens at the provider; this only checks the RS256 session JWT it issues.
type AuthService struct {
	publicKey         *rsa.PublicKey
	authorizedParties []string
}

// NewAuthService parses the PEM encoded public key. An empty key yields a
// service that rejects every token.
func NewAuthService(publicKeyPEM string, authorizedParties []string) (*AuthService, error) {
	s := &AuthService{authorizedParties: authorizedParties}
	if strings.TrimSpace(publicKeyPEM) == "" {
		return s, nil
	}

	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(publicKeyPEM))
	if err != nil {
		return nil, fmt.Errorf("failed to parse session public key: %w", err)
	}
	s.publicKey = key
	return s, nil
}

type sessionClaims struct {
	AuthorizedParty string `json:"azp,omitempty"`
	jwt.RegisteredClaims
}

// VerifySession checks the token signature, expiry and authorized party and
// returns the identity (sub claim) it was issued for.
func (s *AuthService) VerifySession(tokenString string) (string, error) {
	if s.publicKey == nil {
		return "", ErrSessionNotConfigured
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.publicKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	if !token.Valid || claims.Subject == "" {
		return "", ErrInvalidSession
	}

	if len(s.authorizedParties) > 0 && claims.AuthorizedParty != "" &&
		!slices.Contains(s.authorizedParties, claims.AuthorizedParty) {
		return "", fmt.Errorf("%w: unexpected authorized party %q", ErrInvalidSession, claims.AuthorizedParty)
	}

	return claims.Subject, nil
}
