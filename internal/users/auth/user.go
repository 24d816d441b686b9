// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements account identity and the session lifecycle.

It defines the core domain entity (User) and the flows that create and end
sessions: signup, login, access-token refresh, logout and logout-all.

# Architecture

A session is a refresh token held in the account's capped [RefreshTokenList].
Access tokens are stateless; the Auth Middleware only re-checks that the
account still exists and is active.
*/
package auth

import (
	"time"

	"github.com/taibuivan/inkwell/internal/platform/sec"
)

// # Domain Entities

// User represents a registered account.
//
// The JSON view is the only outward representation of an account: the
// password hash and the refresh-token list are never serialized.
type User struct {
	ID            string           `json:"id"`
	FullName      string           `json:"fullName"`
	Email         string           `json:"email"`
	PasswordHash  string           `json:"-"`
	Role          sec.UserRole     `json:"role"`
	Profile       Profile          `json:"profile"`
	RefreshTokens RefreshTokenList `json:"-"`
	IsActive      bool             `json:"isActive"`
	LastLogin     *time.Time       `json:"lastLogin"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// Profile holds the optional public details of an account.
type Profile struct {
	Bio    string `json:"bio"`
	Avatar string `json:"avatar"`
}

// TokenPair is the credential set returned by signup and login.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Session is the result of a successful signup or login.
type Session struct {
	User   *User     `json:"user"`
	Tokens TokenPair `json:"tokens"`
}

// # Field Identifiers

// Request field names, shared by parsers and error maps.
const (
	FieldFullName        = "fullName"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldRememberMe      = "rememberMe"
	FieldRefreshToken    = "refreshToken"
)
