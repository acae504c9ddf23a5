// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account and the root aggregate of the app:
// links, themes, and page views all reference a user by ID.
//
// WHY PasswordHash WITH json:"-"?
// The hash must never leave the server. The `json:"-"` tag makes encoding/json
// skip the field entirely, so no handler can leak it by accident; there is no
// "strip the password before responding" step to forget.
type User struct {
	ID           string    `json:"id"           db:"id"`
	Email        string    `json:"email"        db:"email"`
	Username     string    `json:"username"     db:"username"` // lowercase [a-z0-9_], unique
	PasswordHash string    `json:"-"            db:"password_hash"`
	Name         string    `json:"name"         db:"name"`
	Bio          string    `json:"bio"          db:"bio"` // 160 chars max
	ProfilePhoto string    `json:"profilePhoto" db:"profile_photo"` // URL or data URI
	Plan         string    `json:"plan"         db:"plan"` // "free" or "pro"
	CreatedAt    time.Time `json:"createdAt"    db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt"    db:"updated_at"`
}

// Plans a user can be on. New signups always start on PlanFree.
const (
	PlanFree = "free"
	PlanPro  = "pro"
)
