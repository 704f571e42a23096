package models

import (
	"time"
)

// Streamer statuses
const (
	StreamerStatusActive   = "active"
	StreamerStatusInactive = "inactive"
	StreamerStatusPending  = "pending"
)

// Streamer represents a talent managed by the agency
type Streamer struct {
	ID        string     `json:"id,omitempty" firestore:"-"`
	Name      string     `json:"name" firestore:"name"`
	Email     string     `json:"email" firestore:"email"`
	Country   string     `json:"country" firestore:"country"`
	Level     int        `json:"level" firestore:"level"` // 1-5
	Earnings  float64    `json:"earnings" firestore:"earnings"`
	Phone     string     `json:"phone,omitempty" firestore:"phone,omitempty"`
	Status    string     `json:"status" firestore:"status"`
	AvatarURL string     `json:"avatarUrl,omitempty" firestore:"avatarUrl,omitempty"`
	AgencyID  string     `json:"agencyId,omitempty" firestore:"agencyId,omitempty"`
	CreatedAt time.Time  `json:"createdAt" firestore:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" firestore:"updatedAt,omitempty"`
}

// StreamerRequest is the create/update payload sent by the dashboard
type StreamerRequest struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Country  string  `json:"country" validate:"required"`
	Level    int     `json:"level" validate:"required,min=1,max=5"`
	Earnings float64 `json:"earnings" validate:"min=0"`
	Phone    string  `json:"phone,omitempty"`
	Status   string  `json:"status,omitempty"`
	AgencyID string  `json:"agencyId,omitempty"`
}
