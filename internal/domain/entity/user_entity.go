package entity

import (
	"time"
)

// User is an account allowed into the admin panel.
// PasswordHash holds a bcrypt hash and is never serialized to clients.
//
// Bootstrap marks the account synthesized on first run; it stays set until an
// operator rotates the credential with cmd/seed.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	Bootstrap    bool      `json:"bootstrap,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PublicUser is the subset of User returned by the login endpoint.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role}
}
