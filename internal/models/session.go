package models

import "time"

// Session tracks a login session. LogoutDate is set either by an explicit
// logout or by the idle-session middleware once the cutoff has passed.
type Session struct {
	ID          string     `db:"id" json:"id"`
	UserID      string     `db:"user_id" json:"user_id"`
	SessionCode string     `db:"session_code" json:"session_code"`
	IPAddress   string     `db:"ip_address" json:"ip_address"`
	UserAgent   string     `db:"user_agent" json:"user_agent"`
	LoginDate   time.Time  `db:"login_date" json:"login_date"`
	LogoutDate  *time.Time `db:"logout_date" json:"logout_date,omitempty"`
}

// Expired reports whether the session exceeded the idle cutoff at the given instant.
func (s *Session) Expired(now time.Time, idle time.Duration) bool {
	if s.LogoutDate != nil {
		return true
	}
	return now.Sub(s.LoginDate) > idle
}
