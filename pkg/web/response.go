// Package web defines common components for a web application.
package web

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// JSONError provides type for explicit json encoded error response.
type JSONError struct {
	Error string `json:"error"`
}

// Error wraps a given err into json frinedly struct.
func Error(err error) JSONError {
	return JSONError{Error: err.Error()}
}

// Response holds the common response type for all APIs.
type Response struct {
	AccessToken           string    `json:"access_token,omitempty"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at,omitempty"`
	RefreshToken          string    `json:"refresh_token,omitempty"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at,omitempty"`
	Data                  any       `json:"data,omitempty"`
	Error                 string    `json:"error,omitempty"`
}

// GetErrorMsg returns a user readable message for the first failed validation.
func GetErrorMsg(ve validator.ValidationErrors) string {
	field := ve[0]

	switch field.Tag() {
	case "required":
		return field.Field() + " field is required"
	case "alphanum":
		return field.Field() + " must contain only letters and numbers"
	case "email":
		return field.Field() + " must be a valid email address"
	case "min":
		return field.Field() + " must be at least " + field.Param()
	case "max":
		return field.Field() + " must be at most " + field.Param()
	case "gt":
		return field.Field() + " must be greater than " + field.Param()
	case "assetclass":
		return field.Field() + " must be a supported asset class"
	}

	return field.Field() + " is invalid"
}
