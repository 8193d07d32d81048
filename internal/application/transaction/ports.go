package transaction

import "context"

// PurchaseItem es una línea comprada a un proveedor, para notificación.
type PurchaseItem struct {
	ItemID   string
	ItemName string
	Quantity int64
	UnitName string
}

// Notifier despacha el aviso de compra a un proveedor: el núcleo solo conoce
// este contrato, no el protocolo de entrega (Telegram, correo, etc.).
type Notifier interface {
	Notify(ctx context.Context, supplierID, supplierName string, items []PurchaseItem) error
}

// NopNotifier descarta los avisos (notificaciones deshabilitadas).
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, string, string, []PurchaseItem) error { return nil }
