// Package auth implements the credential primitives of the service:
// signed bearer tokens (HS256 JWT) and salted password hashes (bcrypt).
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mihailvs/docshare/internal/common"
)

// Claims is the claims structure embedded in every issued token: the
// registered claims plus a single custom Username claim.
type Claims struct {
	jwt.RegisteredClaims
	Username string
}

// GenerateToken produces a signed token embedding username, with expiry
// validityDuration from now. Tokens are stateless: no server-side record is
// kept, so revocation before expiry is impossible.
func GenerateToken(username string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Username: username,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUsernameFromToken verifies the token signature and expiry and returns
// the embedded username claim. Malformed, forged and expired tokens all fold
// into common.ErrorInvalidToken so callers cannot distinguish them.
func GetUsernameFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return "", common.ErrorInvalidToken
	}

	if !token.Valid {
		return "", common.ErrorInvalidToken
	}

	return claims.Username, nil
}
