package model

import "time"

// Link is one entry on a user's public page.
//
// IDs are integers allocated by a single counter across all users, so they
// are strictly increasing even when two users create links back to back.
// Position is the display sort key and is per-user: a user's links always
// hold positions 0..n-1 (Create appends at n, Delete and Reorder renumber).
type Link struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	URL       string    `json:"url"` // must start with http:// or https://
	Position  int       `json:"position"`
	Visible   bool      `json:"visible"`
	Clicks    int64     `json:"clicks"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
