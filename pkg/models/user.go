package models

import "time"

// Session is what a client gets back after logging in: the logged-in flag,
// the user and a bearer token valid until ExpiresAt.
type Session struct {
	LoggedIn  bool      `json:"logged_in"`
	User      UserInfo  `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type UserInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
