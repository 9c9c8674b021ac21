package entity

// Role represents an authorization role.
// Only admin exists today; tokens carry it so other roles can be rejected
// without a user lookup.
type Role string

const RoleAdmin Role = "admin"

func (r Role) IsAdmin() bool { return r == RoleAdmin }
