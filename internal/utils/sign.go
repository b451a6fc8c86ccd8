package utils

import (
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	Sub      string `json:"sub"`
	Username string `json:"username"`
	Role     string `json:"role,omitempty"`
	Iat      int64  `json:"iat"`
	Exp      int64  `json:"exp"`
	jwt.RegisteredClaims
}

// GenerateSign signs claims with RS256. Token issuance lives in the auth
// service; this is kept for local tooling and tests.
func GenerateSign(claims *Claims, privateKey *rsa.PrivateKey) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"sub":      claims.Sub,
		"username": claims.Username,
		"role":     claims.Role,
		"iat":      claims.Iat,
		"exp":      claims.Exp,
	})

	return token.SignedString(privateKey)
}

func ParseAndVerifySign(token string, pubKey *rsa.PublicKey) (*Claims, error) {
	parsedToken, err := jwt.ParseWithClaims(token, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return pubKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsedToken.Claims.(*Claims)
	if !ok || !parsedToken.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	if time.Unix(claims.Exp, 0).Before(time.Now()) {
		return nil, fmt.Errorf("token expired")
	}

	return claims, nil
}
