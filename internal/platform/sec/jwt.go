// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. Access and refresh tokens are HS256-signed with two
// distinct secrets, and each token carries a "typ" claim so one kind can never
// be accepted in place of the other.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taibuivan/inkwell/pkg/uuid"
)

// # Token Types

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// # Verification Errors

var (
	// ErrTokenExpired is returned when a well-formed token is past its expiry.
	ErrTokenExpired = errors.New("token has expired")

	// ErrTokenInvalid covers every other verification failure: bad signature,
	// wrong secret, wrong "typ", malformed payload, unexpected algorithm.
	ErrTokenInvalid = errors.New("invalid token")
)

// AuthClaims represents the payload embedded inside a JWT Access Token.
//
// Only identity and role travel in the token. The Auth Middleware still
// reloads the account on each request to enforce deactivation.
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID string `json:"uid"`
	Email  string `json:"eml"`
	Role   string `json:"rol"`
	Type   string `json:"typ"`
}

// RefreshClaims is the payload of a Refresh Token. It names the user and nothing else.
type RefreshClaims struct {
	jwt.RegisteredClaims

	UserID string `json:"uid"`
	Type   string `json:"typ"`
}

// TokenConfig groups the secrets and lifetimes used to build a [TokenService].
type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
}

// TokenService handles generation and verification of JWT tokens using HS256.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string

	// now is swappable in tests to mint already-expired tokens.
	now func() time.Time
}

// NewTokenService creates a new TokenService.
// A missing secret or a non-positive lifetime is a startup misconfiguration.
func NewTokenService(config TokenConfig) (*TokenService, error) {
	if config.AccessSecret == "" || config.RefreshSecret == "" {
		return nil, errors.New("sec: access and refresh secrets are required")
	}
	if config.AccessTTL <= 0 || config.RefreshTTL <= 0 {
		return nil, fmt.Errorf("sec: token lifetimes must be positive (access=%s, refresh=%s)", config.AccessTTL, config.RefreshTTL)
	}

	return &TokenService{
		accessSecret:  []byte(config.AccessSecret),
		refreshSecret: []byte(config.RefreshSecret),
		accessTTL:     config.AccessTTL,
		refreshTTL:    config.RefreshTTL,
		issuer:        config.Issuer,
		now:           time.Now,
	}, nil
}

// # Issuing

// IssueAccessToken creates a short-lived access token for a user.
func (service *TokenService) IssueAccessToken(userID, email, role string) (string, error) {
	claims := AuthClaims{
		RegisteredClaims: service.registered(userID, service.accessTTL),
		UserID:           userID,
		Email:            email,
		Role:             role,
		Type:             TokenTypeAccess,
	}
	return service.sign(claims, service.accessSecret)
}

// IssueRefreshToken creates a long-lived refresh token for a user.
//
// Each token gets a random jti, so two logins within the same second still
// produce distinct strings and the stored list can remove them exactly.
func (service *TokenService) IssueRefreshToken(userID string) (string, error) {
	claims := RefreshClaims{
		RegisteredClaims: service.registered(userID, service.refreshTTL),
		UserID:           userID,
		Type:             TokenTypeRefresh,
	}
	return service.sign(claims, service.refreshSecret)
}

// # Verification

// VerifyAccessToken checks signature, expiry, issuer and type of an access token.
func (service *TokenService) VerifyAccessToken(tokenString string) (*AuthClaims, error) {
	claims := &AuthClaims{}
	if err := service.verify(tokenString, service.accessSecret, claims); err != nil {
		return nil, err
	}
	if claims.Type != TokenTypeAccess || claims.UserID == "" {
		return nil, fmt.Errorf("%w: not an access token", ErrTokenInvalid)
	}
	return claims, nil
}

// VerifyRefreshToken checks signature, expiry, issuer and type of a refresh token.
func (service *TokenService) VerifyRefreshToken(tokenString string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := service.verify(tokenString, service.refreshSecret, claims); err != nil {
		return nil, err
	}
	if claims.Type != TokenTypeRefresh || claims.UserID == "" {
		return nil, fmt.Errorf("%w: not a refresh token", ErrTokenInvalid)
	}
	return claims, nil
}

// # Internals

func (service *TokenService) registered(userID string, timeToLive time.Duration) jwt.RegisteredClaims {
	currentTime := service.now()
	return jwt.RegisteredClaims{
		ID:        uuid.New(),
		Subject:   userID,
		Issuer:    service.issuer,
		IssuedAt:  jwt.NewNumericDate(currentTime),
		ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
	}
}

func (service *TokenService) sign(claims jwt.Claims, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}
	return signedToken, nil
}

func (service *TokenService) verify(tokenString string, secret []byte, claims jwt.Claims) error {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(service.now),
		jwt.WithExpirationRequired(),
	}
	if service.issuer != "" {
		options = append(options, jwt.WithIssuer(service.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}, options...)

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrTokenExpired, err)
	case err != nil:
		return fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	case !token.Valid:
		return ErrTokenInvalid
	}
	return nil
}
