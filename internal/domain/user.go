package domain

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

type UserAccount struct {
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedOn    time.Time `json:"created_on"`
}

// Session is the authenticated identity behind a bearer token.
type Session struct {
	Token     string    `json:"token,omitempty"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

type PasswordReset struct {
	TokenHash string     `json:"-"`
	Email     string     `json:"email"`
	ExpiresOn time.Time  `json:"expires_on"`
	UsedOn    *time.Time `json:"used_on,omitempty"`
	CreatedOn time.Time  `json:"created_on"`
}
