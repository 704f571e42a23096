package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateInviteToken(t *testing.T) {
	token1, err := GenerateInviteToken()
	assert.NoError(t, err)
	assert.NotEmpty(t, token1)

	token2, err := GenerateInviteToken()
	assert.NoError(t, err)
	assert.NotEqual(t, token1, token2)
}

func TestValidateContentType(t *testing.T) {
	assert.True(t, ValidateContentType("application/json"))
	assert.True(t, ValidateContentType("application/json; charset=utf-8"))
	assert.True(t, ValidateContentType("multipart/form-data"))
	assert.False(t, ValidateContentType("text/html"))
	assert.False(t, ValidateContentType(""))
}
