package entity

import "time"

// Unit es una unidad de medida (kg, litro, pieza). Nombre único.
type Unit struct {
	ID        string // uuid
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
