package websocket

import (
	"crypto/rsa"
	"net/http"
	"strings"

	"github.com/xenn00/livestream-service/internal/utils"
)

type AuthenticatorFunc func(r *http.Request) (userID string, err error)

type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// JWTWebSocketAuth verifies the bearer credential before the upgrade.
// Browsers cannot set headers on a websocket handshake, so the token may
// also ride in a query parameter or cookie.
func JWTWebSocketAuth(publicKey *rsa.PublicKey) AuthenticatorFunc {
	return func(r *http.Request) (string, error) {
		token := getTokenFromRequest(r)
		if token == "" {
			return "", &AuthError{Message: "missing credentials"}
		}

		claims, err := utils.ParseAndVerifySign(token, publicKey)
		if err != nil {
			return "", &AuthError{Message: "invalid or expired token"}
		}

		return claims.Sub, nil
	}
}

func getTokenFromRequest(r *http.Request) string {
	// Option 1: Authorization header
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
	}

	// Option 2: Query parameter
	token := r.URL.Query().Get("token")
	if token != "" {
		return token
	}

	// Option 3: Cookie
	cookie, err := r.Cookie("access_token")
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}

	return ""
}
