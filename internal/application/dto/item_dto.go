package dto

import "time"

// CreateItemRequest alta de materia prima. El código BB-XXXX lo asigna el sistema.
type CreateItemRequest struct {
	Name         string `json:"name"`
	UnitID       string `json:"unit_id"`
	CategoryID   string `json:"category_id"`
	MinimumStock int64  `json:"minimum_stock"`
}

// UpdateItemRequest modifica campos editables. El stock NO se edita aquí:
// solo se muta vía transacciones (Stock Ledger).
type UpdateItemRequest struct {
	Name         *string `json:"name,omitempty"`
	UnitID       *string `json:"unit_id,omitempty"`
	CategoryID   *string `json:"category_id,omitempty"`
	MinimumStock *int64  `json:"minimum_stock,omitempty"`
}

// ItemResponse proyección JSON de un item.
type ItemResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	UnitID        string    `json:"unit_id"`
	CategoryID    string    `json:"category_id"`
	StockQuantity int64     `json:"stock_quantity"`
	MinimumStock  int64     `json:"minimum_stock"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
