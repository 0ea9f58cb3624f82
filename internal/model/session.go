package model

import "time"

// Session is created at login and deleted at logout. A session is live
// while now < ExpiresAt and the document still exists; expired rows are
// never reaped.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// Live reports whether the session has not yet expired at now.
func (s *Session) Live(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}

// LoginAttempt is an append-only audit record of a login request.
type LoginAttempt struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	IPAddress string    `json:"ipAddress"`
	Success   bool      `json:"success"`
	CreatedAt time.Time `json:"createdAt"`
}
