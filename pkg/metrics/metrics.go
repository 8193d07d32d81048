// Package metrics registra los contadores Prometheus del motor de inventario.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TransactionsCreated transacciones creadas, por tipo (IN/OUT/CHECK).
	TransactionsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "resto_inventario",
		Name:      "transactions_created_total",
		Help:      "Transacciones de inventario creadas, por tipo.",
	}, []string{"type"})

	// MovementsApplied movimientos de stock aplicados por el ledger, por tipo.
	MovementsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "resto_inventario",
		Name:      "movements_applied_total",
		Help:      "Movimientos aplicados al ledger de stock, por tipo.",
	}, []string{"type"})

	// InsufficientStockRejections rechazos del re-chequeo de no-negatividad.
	InsufficientStockRejections = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "resto_inventario",
		Name:      "insufficient_stock_rejections_total",
		Help:      "Operaciones rechazadas por el re-chequeo de stock del ledger.",
	})
)
