package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/streamdesk/agency_backend/models"
)

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "hello", SanitizeInput("  hello  "))
	assert.Equal(t, "&lt;b&gt;bold&lt;/b&gt;", SanitizeInput("<b>bold</b>"))
	assert.NotContains(t, SanitizeInput("abc\x00def"), "\x00")
}

func TestSanitizeEmail(t *testing.T) {
	email, err := SanitizeEmail("  Streamer@Example.COM ")
	assert.NoError(t, err)
	assert.Equal(t, "streamer@example.com", email)

	_, err = SanitizeEmail("not-an-email")
	assert.Error(t, err)

	_, err = SanitizeEmail("")
	assert.Error(t, err)
}

func TestSanitizePhone(t *testing.T) {
	phone, err := SanitizePhone("+49 170 1234567")
	assert.NoError(t, err)
	assert.Equal(t, "+491701234567", phone)

	phone, err = SanitizePhone("491701234567")
	assert.NoError(t, err)
	assert.Equal(t, "+491701234567", phone)

	// Optional field
	phone, err = SanitizePhone("   ")
	assert.NoError(t, err)
	assert.Equal(t, "", phone)

	_, err = SanitizePhone("+123")
	assert.Error(t, err)
}

func validStreamerRequest() *models.StreamerRequest {
	return &models.StreamerRequest{
		Name:     "Mika",
		Email:    "mika@example.com",
		Country:  "JP",
		Level:    3,
		Earnings: 1200.50,
	}
}

func TestValidateStreamer(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.StreamerRequest)
		problem string
	}{
		{"valid payload", func(r *models.StreamerRequest) {}, ""},
		{"missing name", func(r *models.StreamerRequest) { r.Name = "  " }, "name is required"},
		{"bad email", func(r *models.StreamerRequest) { r.Email = "nope" }, "email is malformed"},
		{"bad country", func(r *models.StreamerRequest) { r.Country = "Japan" }, "country must be a 2-letter code"},
		{"level too low", func(r *models.StreamerRequest) { r.Level = 0 }, "level must be between 1 and 5"},
		{"level too high", func(r *models.StreamerRequest) { r.Level = 6 }, "level must be between 1 and 5"},
		{"negative earnings", func(r *models.StreamerRequest) { r.Earnings = -1 }, "earnings cannot be negative"},
		{"bad phone", func(r *models.StreamerRequest) { r.Phone = "12" }, "phone is malformed"},
		{"bad status", func(r *models.StreamerRequest) { r.Status = "retired" }, `status "retired" is not allowed`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validStreamerRequest()
			tt.mutate(req)
			problems := ValidateStreamer(req)
			if tt.problem == "" {
				assert.Empty(t, problems)
			} else {
				assert.Contains(t, problems, tt.problem)
			}
		})
	}
}

func TestValidateStreamerLowercaseCountry(t *testing.T) {
	req := validStreamerRequest()
	req.Country = "jp"
	assert.Empty(t, ValidateStreamer(req))
}

func TestValidateCommission(t *testing.T) {
	tests := []struct {
		name    string
		req     models.CommissionRequest
		problem string
	}{
		{
			"valid payload",
			models.CommissionRequest{StreamerID: "s1", App: "pococha", BaseAmount: 1000, Rate: 0.2},
			"",
		},
		{
			"rate zero means agency default",
			models.CommissionRequest{StreamerID: "s1", App: "pococha", BaseAmount: 1000},
			"",
		},
		{
			"missing streamer",
			models.CommissionRequest{App: "pococha", BaseAmount: 1000},
			"streamerId is required",
		},
		{
			"missing app",
			models.CommissionRequest{StreamerID: "s1", BaseAmount: 1000},
			"app is required",
		},
		{
			"zero base amount",
			models.CommissionRequest{StreamerID: "s1", App: "pococha"},
			"baseAmount must be positive",
		},
		{
			"rate above one",
			models.CommissionRequest{StreamerID: "s1", App: "pococha", BaseAmount: 1000, Rate: 1.5},
			"rate must be between 0 and 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems := ValidateCommission(&tt.req)
			if tt.problem == "" {
				assert.Empty(t, problems)
			} else {
				assert.Contains(t, problems, tt.problem)
			}
		})
	}
}
