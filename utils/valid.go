// utils/valid.go
package utils

import (
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/streamdesk/agency_backend/models"
)

var (
	emailRegex   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	countryRegex = regexp.MustCompile(`^[A-Z]{2}$`)
	nonPhoneChar = regexp.MustCompile(`[^\d+]`)
	scriptRegex  = regexp.MustCompile(`<script[^>]*>.*?</script>`)
)

// SanitizeInput sanitizes user input to prevent XSS and injection attacks
func SanitizeInput(input string) string {
	// Trim spaces
	input = strings.TrimSpace(input)

	// HTML escape
	input = html.EscapeString(input)

	// Remove control characters
	input = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, input)

	// Remove any potential script tags
	input = scriptRegex.ReplaceAllString(input, "")

	return input
}

// SanitizeEmail sanitizes and validates an email address
func SanitizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	email = strings.ToLower(email)

	if !emailRegex.MatchString(email) {
		return "", errors.New("invalid email format")
	}

	return email, nil
}

// SanitizePhone sanitizes and validates a phone number
func SanitizePhone(phone string) (string, error) {
	// If phone is empty, return empty string (phone is optional)
	if strings.TrimSpace(phone) == "" {
		return "", nil
	}

	// Remove all non-numeric characters except +
	phone = nonPhoneChar.ReplaceAllString(phone, "")

	// Ensure phone number starts with +
	if !strings.HasPrefix(phone, "+") {
		phone = "+" + phone
	}

	// Basic validation for international phone number
	if len(phone) < 8 || len(phone) > 15 {
		return "", errors.New("invalid phone number length")
	}

	return phone, nil
}

// ValidateStreamer checks domain rules on a streamer payload and returns the
// list of field problems. An empty slice means the payload is valid.
func ValidateStreamer(req *models.StreamerRequest) []string {
	var problems []string

	if strings.TrimSpace(req.Name) == "" {
		problems = append(problems, "name is required")
	}

	if _, err := SanitizeEmail(req.Email); err != nil {
		problems = append(problems, "email is malformed")
	}

	if !countryRegex.MatchString(strings.ToUpper(strings.TrimSpace(req.Country))) {
		problems = append(problems, "country must be a 2-letter code")
	}

	if req.Level < 1 || req.Level > 5 {
		problems = append(problems, "level must be between 1 and 5")
	}

	if req.Earnings < 0 {
		problems = append(problems, "earnings cannot be negative")
	}

	if req.Phone != "" {
		if _, err := SanitizePhone(req.Phone); err != nil {
			problems = append(problems, "phone is malformed")
		}
	}

	if req.Status != "" {
		switch req.Status {
		case models.StreamerStatusActive, models.StreamerStatusInactive, models.StreamerStatusPending:
		default:
			problems = append(problems, fmt.Sprintf("status %q is not allowed", req.Status))
		}
	}

	return problems
}

// ValidateCommission checks domain rules on a commission payload
func ValidateCommission(req *models.CommissionRequest) []string {
	var problems []string

	if strings.TrimSpace(req.StreamerID) == "" {
		problems = append(problems, "streamerId is required")
	}

	if strings.TrimSpace(req.App) == "" {
		problems = append(problems, "app is required")
	}

	if req.BaseAmount <= 0 {
		problems = append(problems, "baseAmount must be positive")
	}

	// Rate is optional; zero means "use the agency default"
	if req.Rate < 0 || req.Rate > 1 {
		problems = append(problems, "rate must be between 0 and 1")
	}

	return problems
}
