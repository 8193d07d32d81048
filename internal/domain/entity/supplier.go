package entity

import "time"

// Supplier representa un proveedor de materia prima. Nombre único.
type Supplier struct {
	ID        string // uuid
	Name      string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
