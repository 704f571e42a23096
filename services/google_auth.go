package services

import (
	"context"
	"fmt"
	"os"

	"github.com/lestrrat-go/jwx/jwk"
	"github.com/lestrrat-go/jwx/jwt"
)

const googleJWKSURL = "https://www.googleapis.com/oauth2/v3/certs"

// GoogleUserInfo holds the identity claims extracted from a verified
// Google ID token
type GoogleUserInfo struct {
	Sub     string
	Email   string
	Name    string
	Picture string
}

// GoogleAuthService verifies Google Sign-In ID tokens against Google's JWKS
type GoogleAuthService struct {
	clientID string
}

func NewGoogleAuthService() *GoogleAuthService {
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	if clientID == "" {
		// Google login endpoints will reject every token until configured
		return &GoogleAuthService{}
	}
	return &GoogleAuthService{clientID: clientID}
}

// VerifyIDToken validates the token signature, audience and issuer, and
// returns the identity claims
func (s *GoogleAuthService) VerifyIDToken(ctx context.Context, idToken string) (*GoogleUserInfo, error) {
	if s.clientID == "" {
		return nil, fmt.Errorf("GOOGLE_CLIENT_ID is not configured")
	}

	keySet, err := jwk.Fetch(ctx, googleJWKSURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch Google JWKS: %w", err)
	}

	token, err := jwt.Parse(
		[]byte(idToken),
		jwt.WithKeySet(keySet),
		jwt.WithValidate(true),
		jwt.WithAudience(s.clientID),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid Google ID token: %w", err)
	}

	issuer := token.Issuer()
	if issuer != "https://accounts.google.com" && issuer != "accounts.google.com" {
		return nil, fmt.Errorf("unexpected token issuer: %s", issuer)
	}

	info := &GoogleUserInfo{Sub: token.Subject()}

	if email, ok := token.Get("email"); ok {
		info.Email, _ = email.(string)
	}
	if info.Email == "" {
		return nil, fmt.Errorf("token does not carry an email claim")
	}

	if verified, ok := token.Get("email_verified"); ok {
		if v, ok := verified.(bool); ok && !v {
			return nil, fmt.Errorf("email is not verified")
		}
	}

	if name, ok := token.Get("name"); ok {
		info.Name, _ = name.(string)
	}
	if picture, ok := token.Get("picture"); ok {
		info.Picture, _ = picture.(string)
	}

	return info, nil
}
