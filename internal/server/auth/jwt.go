// Package auth signs and verifies session cookies and hashes passwords.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/ecohack/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims carries the server-side session id (jti) and the username (sub).
type SessionClaims struct {
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 token for the session.
func GenerateToken(sessionID, userName string, secretKey []byte, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   userName,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	return token.SignedString(secretKey)
}

// ParseToken verifies the signature and expiry and returns the claims.
// Expired tokens yield common.ErrSessionExpired, anything else unusable
// common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*SessionClaims, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrSessionExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.ID == "" || claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
