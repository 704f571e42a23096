package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/streamdesk/agency_backend/models"
)

func TestCalculateCommission(t *testing.T) {
	tests := []struct {
		name       string
		baseAmount float64
		rate       float64
		expected   float64
	}{
		{"typical payout", 1000, 0.2, 200},
		{"rounds half up", 100.555, 0.1, 10.06},
		{"float drift case", 0.1, 0.2, 0.02},
		{"repeating fraction", 1234.56, 0.333, 411.11},
		{"zero base", 0, 0.2, 0},
		{"zero rate", 500, 0, 0},
		{"full rate", 99.99, 1, 99.99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CalculateCommission(tt.baseAmount, tt.rate))
		})
	}
}

func TestEffectiveRate(t *testing.T) {
	agency := &models.Agency{
		Settings: models.AgencySettings{DefaultCommissionRate: 0.15},
	}

	t.Run("request rate wins", func(t *testing.T) {
		assert.Equal(t, 0.3, EffectiveRate(0.3, agency))
	})

	t.Run("agency default when request rate is zero", func(t *testing.T) {
		assert.Equal(t, 0.15, EffectiveRate(0, agency))
	})

	t.Run("env rate when agency has no default", func(t *testing.T) {
		t.Setenv("DEFAULT_COMMISSION_RATE", "0.25")
		assert.Equal(t, 0.25, EffectiveRate(0, nil))
	})

	t.Run("env rate outside 0..1 is ignored", func(t *testing.T) {
		t.Setenv("DEFAULT_COMMISSION_RATE", "1.5")
		assert.Equal(t, fallbackCommissionRate, EffectiveRate(0, nil))
	})

	t.Run("fallback when nothing is configured", func(t *testing.T) {
		t.Setenv("DEFAULT_COMMISSION_RATE", "")
		assert.Equal(t, fallbackCommissionRate, EffectiveRate(0, nil))
	})

	t.Run("nil agency with request rate", func(t *testing.T) {
		assert.Equal(t, 0.5, EffectiveRate(0.5, nil))
	})
}

func TestBuildPayoutSummary(t *testing.T) {
	commissions := []*models.Commission{
		{CommissionAmount: 100.10, Status: models.CommissionStatusPending},
		{CommissionAmount: 50.05, Status: models.CommissionStatusPending},
		{CommissionAmount: 200, Status: models.CommissionStatusPaid},
		{CommissionAmount: 25.55, Status: models.CommissionStatusFailed},
	}

	summary := BuildPayoutSummary("streamer-1", "2026-08", commissions)

	assert.Equal(t, "streamer-1", summary.StreamerID)
	assert.Equal(t, "2026-08", summary.Month)
	assert.Equal(t, 150.15, summary.TotalPending)
	assert.Equal(t, 200.0, summary.TotalPaid)
	assert.Equal(t, 25.55, summary.TotalFailed)
	assert.Equal(t, 4, summary.Count)
}

func TestBuildPayoutSummaryEmpty(t *testing.T) {
	summary := BuildPayoutSummary("streamer-1", "2026-08", nil)

	assert.Equal(t, 0.0, summary.TotalPending)
	assert.Equal(t, 0.0, summary.TotalPaid)
	assert.Equal(t, 0.0, summary.TotalFailed)
	assert.Equal(t, 0, summary.Count)
}

func TestBuildMonthlyReport(t *testing.T) {
	streamer := &models.Streamer{ID: "streamer-1", Earnings: 5000}
	commissions := []*models.Commission{
		{CommissionAmount: 100.333},
		{CommissionAmount: 200.333},
	}

	report := BuildMonthlyReport(streamer, "2026-08", commissions)

	assert.Equal(t, "streamer-1", report.StreamerID)
	assert.Equal(t, "2026-08", report.Month)
	assert.Equal(t, 5000.0, report.TotalEarnings)
	assert.Equal(t, 300.67, report.TotalCommissions)
	assert.Equal(t, 2, report.CommissionCount)
}
