package dto

import "time"

// DetailRequest es una línea propuesta en una petición de creación/adición.
type DetailRequest struct {
	ItemID             string     `json:"item_id"`
	SupplierID         *string    `json:"supplier_id,omitempty"`
	Quantity           int64      `json:"quantity"`
	QuantityCheck      *int64     `json:"quantity_check,omitempty"`
	QuantityDifference *int64     `json:"quantity_difference,omitempty"`
	Note               string     `json:"note,omitempty"`
	ExpiryDate         *time.Time `json:"expiry_date,omitempty"`
}

// CreateTransactionRequest crea una transacción con sus líneas.
type CreateTransactionRequest struct {
	Type    string          `json:"type"` // IN | OUT | CHECK
	Details []DetailRequest `json:"details"`
}

// AddDetailsRequest agrega líneas a una transacción PENDING.
type AddDetailsRequest struct {
	Details []DetailRequest `json:"details"`
}

// UpdateDetailRequest parchea una línea. Campos nil no se tocan.
// Para IN: quantity_check (con -1 = sin contar), note, expiry_date.
// Para OUT: quantity, note. CHECK no es editable.
type UpdateDetailRequest struct {
	Quantity      *int64     `json:"quantity,omitempty"`
	QuantityCheck *int64     `json:"quantity_check,omitempty"`
	Note          *string    `json:"note,omitempty"`
	ExpiryDate    *time.Time `json:"expiry_date,omitempty"`
}

// UpdateDetailStatusRequest transiciona el estado de una línea.
type UpdateDetailStatusRequest struct {
	Status string `json:"status"`
}

// DetailResponse es la proyección JSON de una línea.
type DetailResponse struct {
	ID                 string     `json:"id"`
	TransactionID      string     `json:"transaction_id"`
	ItemID             string     `json:"item_id"`
	SupplierID         *string    `json:"supplier_id,omitempty"`
	Quantity           int64      `json:"quantity"`
	QuantityCheck      *int64     `json:"quantity_check,omitempty"`
	QuantityDifference *int64     `json:"quantity_difference,omitempty"`
	Note               string     `json:"note,omitempty"`
	ExpiryDate         *time.Time `json:"expiry_date,omitempty"`
	Status             string     `json:"status"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// TransactionResponse es la proyección JSON de una transacción.
type TransactionResponse struct {
	ID        string           `json:"id"`
	Type      string           `json:"type"`
	Status    string           `json:"status"`
	UserID    string           `json:"user_id"`
	Date      time.Time        `json:"date"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	Details   []DetailResponse `json:"details,omitempty"`
}

// PendingCountsResponse contadores de transacciones PENDING por tipo.
type PendingCountsResponse struct {
	In    int `json:"in"`
	Out   int `json:"out"`
	Check int `json:"check"`
}
