package models

import (
	"time"
)

// Dashboard user roles
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleViewer  = "viewer"
)

// User represents a dashboard account for agency staff
type User struct {
	ID          string     `json:"id,omitempty" firestore:"-"`
	Email       string     `json:"email" firestore:"email"`
	Password    string     `json:"-" firestore:"password"` // bcrypt hash
	FullName    string     `json:"fullName" firestore:"fullName"`
	Role        string     `json:"role" firestore:"role"`
	GoogleUID   string     `json:"googleUid,omitempty" firestore:"googleUid,omitempty"`
	FCMToken    string     `json:"-" firestore:"fcmToken,omitempty"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" firestore:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt" firestore:"createdAt"`
}
