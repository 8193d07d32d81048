package entity

import "time"

// Roles válidos para User. Las eliminaciones requieren ADMIN.
const (
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
)

// User representa una cuenta del sistema.
type User struct {
	ID           string // uuid
	Username     string // único
	PasswordHash string // bcrypt, nunca plano después de persistir
	Name         string
	Role         string // ADMIN | STAFF
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
