package models

import (
	"time"
)

// AgencySettings holds per-agency configuration used by commission
// calculation and the sheets mirror
type AgencySettings struct {
	DefaultCommissionRate float64 `json:"defaultCommissionRate" firestore:"defaultCommissionRate"`
	PayoutDay             int     `json:"payoutDay" firestore:"payoutDay"` // day of month
	SpreadsheetID         string  `json:"spreadsheetId,omitempty" firestore:"spreadsheetId,omitempty"`
	Currency              string  `json:"currency,omitempty" firestore:"currency,omitempty"`
}

// Agency represents a talent agency tenant
type Agency struct {
	ID        string         `json:"id,omitempty" firestore:"-"`
	Name      string         `json:"name" firestore:"name"`
	Settings  AgencySettings `json:"settings" firestore:"settings"`
	CreatedAt time.Time      `json:"createdAt" firestore:"createdAt"`
	UpdatedAt *time.Time     `json:"updatedAt,omitempty" firestore:"updatedAt,omitempty"`
}

// AgencyRequest is the create/update payload for agencies
type AgencyRequest struct {
	Name     string         `json:"name" validate:"required"`
	Settings AgencySettings `json:"settings"`
}
