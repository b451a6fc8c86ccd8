package state

import (
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

func InitSecret(pubKeyPath string) (*JwtSecret, error) {
	pubKeyBytes, err := os.ReadFile(pubKeyPath)
	if err != nil {
		return nil, err
	}

	pubKey, err := jwt.ParseRSAPublicKeyFromPEM(pubKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("invalid public key: %w", err)
	}

	log.Info().Msg("JWT verification key initialized successfully")
	return &JwtSecret{
		Public: pubKey,
	}, nil
}
