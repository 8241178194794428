package domain

import "time"

// Role is a closed set of permission levels assigned to a user.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSupervisor Role = "supervisor"
	RoleTechnician Role = "technician"
	RoleViewer     Role = "viewer"
)

// Roles lists every valid role.
var Roles = []Role{RoleAdmin, RoleSupervisor, RoleTechnician, RoleViewer}

// Valid reports whether r belongs to the closed role set.
func (r Role) Valid() bool {
	for _, candidate := range Roles {
		if r == candidate {
			return true
		}
	}
	return false
}

// User is a laboratory staff account.
type User struct {
	ID           int64
	Email        string
	FullName     string
	Role         Role
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
}
