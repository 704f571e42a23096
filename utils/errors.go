// utils/errors.go
package utils

import (
	"strings"
)

// Error tags attached to failures surfaced by the GAS proxy and the
// commission payout flow
const (
	ErrTagTimeout   = "timeout"
	ErrTagRateLimit = "rate_limit"
	ErrTagAuth      = "auth"
	ErrTagNotFound  = "not_found"
	ErrTagNetwork   = "network"
	ErrTagQuota     = "quota"
	ErrTagUnknown   = "unknown"
)

// substring patterns checked in order; first match wins
var errorPatterns = []struct {
	tag      string
	patterns []string
}{
	{ErrTagTimeout, []string{"timeout", "timed out", "deadline exceeded", "context canceled"}},
	{ErrTagRateLimit, []string{"rate limit", "too many requests", "429"}},
	{ErrTagQuota, []string{"quota", "resource exhausted"}},
	{ErrTagAuth, []string{"unauthorized", "unauthenticated", "permission denied", "invalid credentials", "401", "403"}},
	{ErrTagNotFound, []string{"not found", "no such", "404"}},
	{ErrTagNetwork, []string{"connection refused", "connection reset", "no such host", "network", "eof", "broken pipe", "502", "503", "504"}},
}

// ClassifyError tags an error by substring matching on its message
func ClassifyError(err error) string {
	if err == nil {
		return ""
	}
	return ClassifyErrorMessage(err.Error())
}

// ClassifyErrorMessage tags a raw error message
func ClassifyErrorMessage(msg string) string {
	lower := strings.ToLower(msg)

	for _, entry := range errorPatterns {
		for _, pattern := range entry.patterns {
			if strings.Contains(lower, pattern) {
				return entry.tag
			}
		}
	}

	return ErrTagUnknown
}

// IsRetryable reports whether the tag indicates a failure worth retrying
func IsRetryable(tag string) bool {
	switch tag {
	case ErrTagTimeout, ErrTagNetwork, ErrTagRateLimit:
		return true
	}
	return false
}
