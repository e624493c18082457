package models

import "time"

// Session is server-side proof of authentication, keyed by an opaque token
// delivered to the client as a cookie.
//
// Username and Role are copied from the user record at login time. A role
// change in the users table is not observed by existing sessions; the user
// must authenticate again to pick it up.
type Session struct {
	Token     string
	UserID    int
	Username  string
	Role      Role
	ExpiresAt time.Time
}

// Expired reports whether the session has passed its absolute lifetime
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsAdmin reports whether the session's role snapshot is the admin tier
func (s *Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
