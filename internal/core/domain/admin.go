package domain

import "time"

// Role is the single access level an admin account holds.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
	RoleDemo       Role = "demo"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSuperAdmin, RoleDemo:
		return true
	}
	return false
}

// RoleFlags is the three-boolean wire encoding of a Role.
type RoleFlags struct {
	IsAdmin      bool `json:"isAdmin"`
	IsSuperAdmin bool `json:"isSuperAdmin"`
	IsDemo       bool `json:"isDemo"`
}

// Flags renders r in its wire encoding.
func (r Role) Flags() RoleFlags {
	return RoleFlags{
		IsAdmin:      r == RoleAdmin,
		IsSuperAdmin: r == RoleSuperAdmin,
		IsDemo:       r == RoleDemo,
	}
}

// RoleFromFlags converts the wire flags into a Role. Exactly one flag must be set.
func RoleFromFlags(f RoleFlags) (Role, error) {
	var (
		role  Role
		count int
	)
	if f.IsAdmin {
		role, count = RoleAdmin, count+1
	}
	if f.IsSuperAdmin {
		role, count = RoleSuperAdmin, count+1
	}
	if f.IsDemo {
		role, count = RoleDemo, count+1
	}
	if count != 1 {
		return "", ErrInvalidRole
	}
	return role, nil
}

// Admin is an operator account allowed to use the API.
type Admin struct {
	ID           int64     `json:"adminId"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}
