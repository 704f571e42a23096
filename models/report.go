package models

import (
	"time"
)

// Report is a monthly earnings summary document per streamer
type Report struct {
	ID               string    `json:"id,omitempty" firestore:"-"`
	StreamerID       string    `json:"streamerId" firestore:"streamerId"`
	Month            string    `json:"month" firestore:"month"` // YYYY-MM
	TotalEarnings    float64   `json:"totalEarnings" firestore:"totalEarnings"`
	TotalCommissions float64   `json:"totalCommissions" firestore:"totalCommissions"`
	CommissionCount  int       `json:"commissionCount" firestore:"commissionCount"`
	GeneratedAt      time.Time `json:"generatedAt" firestore:"generatedAt"`
}
