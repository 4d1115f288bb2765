package domain

import "errors"

// Sentinel errors returned by services and mapped to HTTP statuses by the
// handlers.
var (
	ErrNotFound     = errors.New("not found")
	ErrMailDelivery = errors.New("mail delivery failed")
)

// ProfileRecord is one entry of the profile-picture history. The last element
// of the stored array is the current picture.
type ProfileRecord struct {
	ProfilePicture string `json:"profilePicture"`
}

// ProjectRecord describes one portfolio project. The JSON keys, including the
// uppercase "Url", match what the frontend already consumes.
type ProjectRecord struct {
	Title       string `json:"title"`
	Technology  string `json:"technology"`
	Description string `json:"description"`
	Image       string `json:"image"`
	URL         string `json:"Url"`
}

// ContactRecord is a contact-form submission. Submissions are persisted
// exactly as received, whatever their shape, so the record stays an untyped
// object.
type ContactRecord map[string]any

// Field returns the named field rendered as a string, or "" when absent or
// not a string.
func (c ContactRecord) Field(name string) string {
	v, ok := c[name]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}
