// utils/auth.go
package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/streamdesk/agency_backend/middleware"
)

// ParseClaims parses and validates a JWT string outside of the HTTP
// middleware. Used by the WebSocket handler to authenticate register
// messages.
func ParseClaims(tokenString string) (*middleware.JwtCustomClaims, error) {
	if tokenString == "" {
		return nil, errors.New("no token provided")
	}

	token, err := jwt.ParseWithClaims(tokenString, &middleware.JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(middleware.GetJWTSecret()), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	claims, ok := token.Claims.(*middleware.JwtCustomClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	if claims.ExpiresAt > 0 && time.Now().Unix() > claims.ExpiresAt {
		return nil, errors.New("token has expired")
	}

	return claims, nil
}
