package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Roles allowed to use the admin panel.
const (
	RoleAdmin = "admin"
	RoleModer = "moder"
)

// User is an admin-panel account with a bcrypt-hashed password.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Username     string    `bun:"username,notnull,unique" json:"username"`
	PasswordHash string    `bun:"password_hash,notnull" json:"-"`
	Role         string    `bun:"role,notnull,default:'moder'" json:"role"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// IsStaff reports whether the role may perform admin-panel writes.
func IsStaff(role string) bool {
	return role == RoleAdmin || role == RoleModer
}
