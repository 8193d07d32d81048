package entity

import "time"

// Category agrupa items (proteínas, lácteos, secos...). Nombre único.
type Category struct {
	ID        string // uuid
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
