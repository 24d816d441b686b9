// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"strings"
	"unicode"

	"github.com/taibuivan/inkwell/internal/platform/validate"
)

// # Request Payloads

type signupRequest struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe *bool  `json:"rememberMe"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// # Validated Inputs

// SignupInput holds normalized registration data.
type SignupInput struct {
	FullName string
	Email    string
	Password string
}

// LoginInput holds normalized credentials.
type LoginInput struct {
	Email      string
	Password   string
	RememberMe bool
}

// # Validation Rules

const (
	fullNameMin = 2
	fullNameMax = 100
	passwordMin = 8
)

// NormalizeEmail trims and lower-cases an address the way it is stored.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// StrongPassword reports whether password mixes upper case, lower case and digits.
func StrongPassword(password string) bool {
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

/*
parseSignup validates a registration payload.

Returns:
  - SignupInput: trimmed name, normalized email
  - error: 422 with every failing field
*/
func parseSignup(body signupRequest) (SignupInput, error) {
	input := SignupInput{
		FullName: strings.TrimSpace(body.FullName),
		Email:    NormalizeEmail(body.Email),
		Password: body.Password,
	}

	validator := &validate.Validator{}
	validator.MinLen(FieldFullName, input.FullName, fullNameMin, "Full name must be at least 2 characters").
		MaxLen(FieldFullName, input.FullName, fullNameMax, "Full name must not exceed 100 characters").
		Email(FieldEmail, input.Email, "Invalid email address").
		MinLen(FieldPassword, input.Password, passwordMin, "Password must be at least 8 characters").
		Custom(FieldPassword, !StrongPassword(input.Password),
			"Password must contain at least one uppercase letter, one lowercase letter, and one number").
		Custom(FieldConfirmPassword, body.ConfirmPassword != body.Password, "Passwords do not match")

	if err := validator.Err(); err != nil {
		return SignupInput{}, err
	}
	return input, nil
}

// parseLogin validates credentials. Password strength is not re-checked here.
func parseLogin(body loginRequest) (LoginInput, error) {
	input := LoginInput{
		Email:    NormalizeEmail(body.Email),
		Password: body.Password,
	}
	if body.RememberMe != nil {
		input.RememberMe = *body.RememberMe
	}

	validator := &validate.Validator{}
	validator.Email(FieldEmail, input.Email, "Invalid email address").
		Required(FieldPassword, input.Password, "Password is required")

	if err := validator.Err(); err != nil {
		return LoginInput{}, err
	}
	return input, nil
}

// parseRefresh requires a non-empty refresh token.
func parseRefresh(body refreshRequest) (string, error) {
	validator := &validate.Validator{}
	validator.Required(FieldRefreshToken, body.RefreshToken, "Refresh token is required")

	if err := validator.Err(); err != nil {
		return "", err
	}
	return body.RefreshToken, nil
}
