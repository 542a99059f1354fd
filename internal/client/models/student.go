// Package models defines client-side data models used by the NoticeEase CLI
// and the Local Store repositories.
package models

// StudentInfo is the profile of the logged-in student. One instance exists
// per session; it is created on login, overwritten on re-login, and deleted
// on logout.
type StudentInfo struct {
	// RollNumber identifies the student towards the messaging backend
	// (push subscriptions are keyed by it).
	RollNumber string `json:"rollNumber"`

	Email string `json:"email"`

	// PhoneNumber is optional; an empty string means not provided.
	PhoneNumber string `json:"phoneNumber,omitempty"`

	Username string `json:"username"`

	// Verified reports whether the student completed email verification.
	Verified bool `json:"verified"`
}
