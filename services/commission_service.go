package services

import (
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/streamdesk/agency_backend/models"
)

// fallbackCommissionRate applies when neither the request nor the agency
// settings carry a rate
const fallbackCommissionRate = 0.2

// CalculateCommission computes baseAmount * rate rounded to exactly
// 2 decimals. Decimal arithmetic avoids the float drift that plagued the
// spreadsheet formulas this replaces.
func CalculateCommission(baseAmount, rate float64) float64 {
	amount := decimal.NewFromFloat(baseAmount).
		Mul(decimal.NewFromFloat(rate)).
		Round(2)
	result, _ := amount.Float64()
	return result
}

// EffectiveRate resolves the commission rate: explicit request rate first,
// then the agency default, then DEFAULT_COMMISSION_RATE, then the built-in
// fallback.
func EffectiveRate(requestRate float64, agency *models.Agency) float64 {
	if requestRate > 0 {
		return requestRate
	}

	if agency != nil && agency.Settings.DefaultCommissionRate > 0 {
		return agency.Settings.DefaultCommissionRate
	}

	if raw := os.Getenv("DEFAULT_COMMISSION_RATE"); raw != "" {
		if rate, err := strconv.ParseFloat(raw, 64); err == nil && rate > 0 && rate <= 1 {
			return rate
		}
	}

	return fallbackCommissionRate
}

// BuildPayoutSummary aggregates a streamer's commissions for one month
func BuildPayoutSummary(streamerID, month string, commissions []*models.Commission) *models.PayoutSummary {
	pending := decimal.Zero
	paid := decimal.Zero
	failed := decimal.Zero

	for _, commission := range commissions {
		amount := decimal.NewFromFloat(commission.CommissionAmount)
		switch commission.Status {
		case models.CommissionStatusPaid:
			paid = paid.Add(amount)
		case models.CommissionStatusFailed:
			failed = failed.Add(amount)
		default:
			pending = pending.Add(amount)
		}
	}

	totalPending, _ := pending.Round(2).Float64()
	totalPaid, _ := paid.Round(2).Float64()
	totalFailed, _ := failed.Round(2).Float64()

	return &models.PayoutSummary{
		StreamerID:   streamerID,
		Month:        month,
		TotalPending: totalPending,
		TotalPaid:    totalPaid,
		TotalFailed:  totalFailed,
		Count:        len(commissions),
	}
}

// BuildMonthlyReport rolls a streamer's commissions into a report document
func BuildMonthlyReport(streamer *models.Streamer, month string, commissions []*models.Commission) *models.Report {
	totalCommissions := decimal.Zero
	for _, commission := range commissions {
		totalCommissions = totalCommissions.Add(decimal.NewFromFloat(commission.CommissionAmount))
	}

	total, _ := totalCommissions.Round(2).Float64()

	return &models.Report{
		StreamerID:       streamer.ID,
		Month:            month,
		TotalEarnings:    streamer.Earnings,
		TotalCommissions: total,
		CommissionCount:  len(commissions),
	}
}
