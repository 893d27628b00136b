package model

import "time"

// ContactMessage represents an accepted contact form submission.
// Rows are only created by the ingestion pipeline and are never edited.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	IPAddress string    `json:"ip_address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Column limits of contact_messages, in characters.
const (
	MaxContactNameLen    = 100
	MaxContactPhoneLen   = 20
	MaxContactSubjectLen = 200
)

// ContactSubmission is the raw field set received from either the browser form
// or the JSON API. It is transient until it becomes a ContactMessage.
type ContactSubmission struct {
	Name     string
	Email    string
	Phone    string
	Subject  string
	Message  string
	Honeypot string
}

// ContactListOptions carries pagination parameters for listing contact messages.
type ContactListOptions struct {
	Limit  int
	Offset int
}
