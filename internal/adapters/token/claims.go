package token

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/driver-partner-cli/internal/application"
	"github.com/golang-jwt/jwt"
)

var ErrEmptyToken = errors.New("access token is empty")

// ReadClaims decodes the subject and expiry of an access token without
// verifying its signature. The server remains the authority on validity.
func ReadClaims(accessToken string) (application.TokenClaims, error) {
	if accessToken == "" {
		return application.TokenClaims{}, ErrEmptyToken
	}

	claims := jwt.MapClaims{}
	parser := &jwt.Parser{UseJSONNumber: true}
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return application.TokenClaims{}, fmt.Errorf("parse access token: %w", err)
	}

	return application.TokenClaims{
		Subject:   subjectOf(claims),
		ExpiresAt: expiryOf(claims),
	}, nil
}

func subjectOf(claims jwt.MapClaims) string {
	for _, key := range []string{"sub", "id", "_id"} {
		if value, ok := claims[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

func expiryOf(claims jwt.MapClaims) time.Time {
	number, ok := claims["exp"].(json.Number)
	if !ok {
		return time.Time{}
	}
	seconds, err := number.Int64()
	if err != nil {
		return time.Time{}
	}
	return time.Unix(seconds, 0).UTC()
}
