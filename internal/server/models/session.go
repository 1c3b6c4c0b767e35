package models

import "time"

type Session struct {
	ID        string
	UserName  string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is no longer valid at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Identity is the username an authenticated request acts as.
type Identity struct {
	UserName string
}
