package models

import (
	"time"
)

// Commission statuses
const (
	CommissionStatusPending = "pending"
	CommissionStatusPaid    = "paid"
	CommissionStatusFailed  = "failed"
)

// Commission represents a commission owed to a streamer for earnings on a
// single app/platform
type Commission struct {
	ID               string     `json:"id,omitempty" firestore:"-"`
	StreamerID       string     `json:"streamerId" firestore:"streamerId"`
	App              string     `json:"app" firestore:"app"`
	BaseAmount       float64    `json:"baseAmount" firestore:"baseAmount"`
	Rate             float64    `json:"rate" firestore:"rate"`
	CommissionAmount float64    `json:"commissionAmount" firestore:"commissionAmount"`
	Status           string     `json:"status" firestore:"status"`
	FailureTag       string     `json:"failureTag,omitempty" firestore:"failureTag,omitempty"`
	CreatedAt        time.Time  `json:"createdAt" firestore:"createdAt"`
	PaidAt           *time.Time `json:"paidAt,omitempty" firestore:"paidAt,omitempty"`
}

// CommissionRequest is the create payload; Rate is optional and falls back
// to the agency default rate when zero
type CommissionRequest struct {
	StreamerID string  `json:"streamerId" validate:"required"`
	App        string  `json:"app" validate:"required"`
	BaseAmount float64 `json:"baseAmount" validate:"required,gt=0"`
	Rate       float64 `json:"rate,omitempty" validate:"omitempty,gt=0,lte=1"`
}

// PayoutSummary aggregates a streamer's commissions for one month
type PayoutSummary struct {
	StreamerID   string  `json:"streamerId"`
	Month        string  `json:"month"` // YYYY-MM
	TotalPending float64 `json:"totalPending"`
	TotalPaid    float64 `json:"totalPaid"`
	TotalFailed  float64 `json:"totalFailed"`
	Count        int     `json:"count"`
}
