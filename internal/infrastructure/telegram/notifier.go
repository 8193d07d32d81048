// Package telegram entrega avisos de compra a proveedores vía bot de Telegram.
package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/jhoicas/resto-inventario/internal/application/transaction"
)

var _ transaction.Notifier = (*Notifier)(nil)

// Notifier implementa transaction.Notifier enviando un mensaje por proveedor
// al chat configurado (el canal interno de compras del restaurante).
type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// New construye el notificador con el token del bot y el chat destino.
func New(token string, chatID int64) (*Notifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: crear bot: %w", err)
	}
	return &Notifier{api: api, chatID: chatID}, nil
}

// Notify arma el mensaje de pedido para un proveedor y lo envía.
func (n *Notifier) Notify(_ context.Context, _, supplierName string, items []transaction.PurchaseItem) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Pedido a %s:\n", supplierName)
	for _, it := range items {
		unit := it.UnitName
		if unit == "" {
			unit = "uds"
		}
		fmt.Fprintf(&b, "• %s (%s): %d %s\n", it.ItemName, it.ItemID, it.Quantity, unit)
	}
	msg := tgbotapi.NewMessage(n.chatID, b.String())
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("telegram: enviar aviso: %w", err)
	}
	return nil
}
