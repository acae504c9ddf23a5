package model

import "time"

// ContactSubmission is one entry in the contact-form inbox. Append-only;
// every new submission starts with status "new".
type ContactSubmission struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Message     string    `json:"message"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submittedAt"`
}

const ContactStatusNew = "new"
