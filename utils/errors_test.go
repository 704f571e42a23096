package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected string
	}{
		{"deadline exceeded", "context deadline exceeded", ErrTagTimeout},
		{"timed out", "request timed out after 30s", ErrTagTimeout},
		{"rate limited", "429 Too Many Requests", ErrTagRateLimit},
		{"quota", "quota exceeded for this project", ErrTagQuota},
		{"unauthorized", "401 Unauthorized", ErrTagAuth},
		{"permission", "PERMISSION DENIED on resource", ErrTagAuth},
		{"not found", "document not found", ErrTagNotFound},
		{"connection refused", "dial tcp: connection refused", ErrTagNetwork},
		{"bad gateway", "upstream returned 502", ErrTagNetwork},
		{"unknown", "something strange happened", ErrTagUnknown},
		{"case insensitive", "Connection Reset by peer", ErrTagNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyErrorMessage(tt.message))
		})
	}
}

// Timeout patterns must win over network ones when both appear; the
// GAS retry loop treats both as retryable, but the tag is surfaced to
// the dashboard.
func TestClassifyErrorMessageOrder(t *testing.T) {
	assert.Equal(t, ErrTagTimeout, ClassifyErrorMessage("network timeout"))
}

func TestClassifyError(t *testing.T) {
	assert.Equal(t, "", ClassifyError(nil))
	assert.Equal(t, ErrTagNetwork, ClassifyError(errors.New("no such host")))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrTagTimeout))
	assert.True(t, IsRetryable(ErrTagNetwork))
	assert.True(t, IsRetryable(ErrTagRateLimit))
	assert.False(t, IsRetryable(ErrTagAuth))
	assert.False(t, IsRetryable(ErrTagNotFound))
	assert.False(t, IsRetryable(ErrTagQuota))
	assert.False(t, IsRetryable(ErrTagUnknown))
}
