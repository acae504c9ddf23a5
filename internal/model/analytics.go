package model

import "time"

// PageView is an immutable record of one public profile load.
// Username is denormalized alongside UserID so history queries don't need a
// join back to users just to display who was viewed.
type PageView struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Timestamp time.Time `json:"timestamp"`
	UserAgent string    `json:"userAgent"`
	Referrer  string    `json:"referrer"`
}

// Analytics is a derived aggregate: it is computed on demand and never
// stored. TotalClicks comes from the user's current links (deleting a link
// removes its clicks from the total), TotalViews from the page view log.
type Analytics struct {
	UserID      string    `json:"userId"`
	TotalViews  int64     `json:"totalViews"`
	TotalClicks int64     `json:"totalClicks"`
	LastUpdated time.Time `json:"lastUpdated"`
}
