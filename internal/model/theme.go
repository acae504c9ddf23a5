package model

import "time"

// Theme holds a user's page styling. At most one row exists per user; a user
// who never saved a theme gets DefaultTheme back instead (never persisted).
type Theme struct {
	UserID      string    `json:"userId"`
	Background  string    `json:"background"`  // hex color or CSS gradient
	ButtonStyle string    `json:"buttonStyle"` // "rounded", "square" or "pill"
	TextColor   string    `json:"textColor"`
	AccentColor string    `json:"accentColor"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

const (
	ButtonRounded = "rounded"
	ButtonSquare  = "square"
	ButtonPill    = "pill"
)

// DefaultTheme returns the styling a user gets before saving any theme.
// The timestamps are left zero on purpose: a default is not a stored record.
func DefaultTheme(userID string) *Theme {
	return &Theme{
		UserID:      userID,
		Background:  "#ffffff",
		ButtonStyle: ButtonRounded,
		TextColor:   "#1e293b",
		AccentColor: "#6366f1",
	}
}
