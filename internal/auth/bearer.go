package auth

import (
	"errors"
	"strings"
)

// ErrInvalidAuthHeader indicates a missing or malformed Authorization header.
var ErrInvalidAuthHeader = errors.New("invalid authorization header")

// ExtractBearerToken returns the token part of a "Bearer <token>" header.
func ExtractBearerToken(authHeader string) (string, error) {
	token, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok {
		return "", ErrInvalidAuthHeader
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrInvalidAuthHeader
	}

	return token, nil
}
