package firebase

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// GenerateLongLivedToken mints a custom token for a user and, when an API key
// is configured, exchanges it for an ID token usable against the REST API.
// Intended for local development and test tooling only.
func (f *FirebaseAuthClient) GenerateLongLivedToken(ctx context.Context, uid string) (string, error) {
	customToken, err := f.client.CustomToken(ctx, uid)
	if err != nil {
		return "", err
	}

	if f.apiKey != "" {
		idToken, err := f.exchangeCustomTokenForIDToken(customToken)
		if err != nil {
			return "", err
		}
		return idToken, nil
	}

	return customToken, nil
}

// TokenExpiry decodes the expiry claim of a token without verifying its
// signature. Useful for reporting when a dev token will stop working.
func TokenExpiry(tokenString string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return time.Time{}, err
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}, jwt.ErrTokenInvalidClaims
	}

	return time.Unix(int64(exp), 0), nil
}
