package security

import (
	"crypto/rand"
	"encoding/base64"
	"strings"
)

// GenerateInviteToken generates a secure random token embedded in streamer
// onboarding links. The onboarding form echoes it back so stale or guessed
// links can be rejected.
func GenerateInviteToken() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// ValidateContentType ensures the request has an accepted content type
func ValidateContentType(contentType string) bool {
	// Strip parameters like "; charset=utf-8"
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	contentType = strings.TrimSpace(contentType)

	validTypes := map[string]bool{
		"application/json":                  true,
		"application/x-www-form-urlencoded": true,
		"multipart/form-data":               true,
	}
	return validTypes[contentType]
}
