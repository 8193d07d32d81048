package transaction_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/resto-inventario/internal/application/dto"
	apptrx "github.com/jhoicas/resto-inventario/internal/application/transaction"
	"github.com/jhoicas/resto-inventario/internal/domain"
	"github.com/jhoicas/resto-inventario/internal/domain/entity"
	rules "github.com/jhoicas/resto-inventario/internal/domain/transaction"
	"github.com/jhoicas/resto-inventario/pkg/logger"
)

const (
	testUser  = "user-1"
	testAdmin = "admin-1"
)

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

func newTestUseCase(t *testing.T, s *memStore) (*apptrx.UseCase, *fakeNotifier) {
	t.Helper()
	return newTestUseCaseWithRunner(t, s, &fakeTxRunner{s: s})
}

func newTestUseCaseWithRunner(t *testing.T, s *memStore, runner *fakeTxRunner) (*apptrx.UseCase, *fakeNotifier) {
	t.Helper()
	notifier := &fakeNotifier{}
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	uc := apptrx.NewUseCase(
		runner,
		&fakeItemRepo{s: s},
		&fakeTrxRepo{s: s},
		&fakeSupplierRepo{s: s},
		&fakeUnitRepo{s: s},
		notifier,
		log,
	)
	return uc, notifier
}

func seedItem(s *memStore, id, name string, stock, min int64) {
	now := time.Now()
	s.items[id] = &entity.Item{
		ID: id, Name: name, UnitID: "u-kg", CategoryID: "c-secos",
		StockQuantity: stock, MinimumStock: min, CreatedAt: now, UpdatedAt: now,
	}
}

func seedSupplier(s *memStore, id, name string) {
	s.suppliers[id] = &entity.Supplier{ID: id, Name: name}
}

func inRequest(itemID, supplierID string, qty int64) dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		Type: entity.TransactionTypeIN,
		Details: []dto.DetailRequest{
			{ItemID: itemID, SupplierID: &supplierID, Quantity: qty},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación y generación de códigos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_SinUsuarioRechaza(t *testing.T) {
	s := newMemStore()
	uc, _ := newTestUseCase(t, s)

	_, err := uc.Create(context.Background(), "", inRequest("BB-0001", "prov-1", 10))
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestCreate_CodigosSecuencialesPorTipo(t *testing.T) {
	s := newMemStore()
	seedItem(s, "BB-0001", "Arroz", 100, 10)
	seedSupplier(s, "prov-1", "Distribuidora Norte")
	uc, _ := newTestUseCase(t, s)
	ctx := context.Background()

	trx1, err := uc.Create(ctx, testUser, inRequest("BB-0001", "prov-1", 10))
	require.NoError(t, err)
	trx2, err := uc.Create(ctx, testUser, inRequest("BB-0001", "prov-1", 10))
	require.NoError(t, err)

	assert.Equal(t, "TRX-IN-0001", trx1.ID)
	assert.Equal(t, "TRX-IN-0002", trx2.ID, "la secuencia IN debe ser monótona")

	out, err := uc.Create(ctx, testUser, dto.CreateTransactionRequest{
		Type:    entity.TransactionTypeOUT,
		Details: []dto.DetailRequest{{ItemID: "BB-0001", Quantity: 5, Note: "cocina"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "TRX-OUT-0001", out.ID, "la secuencia OUT es independiente de IN")
}

func TestCreate_EstadoInicialPendiente(t *testing.T) {
	s := newMemStore()
	seedItem(s, "BB-0001", "Arroz", 0, 10)
	seedSupplier(s, "prov-1", "Distribuidora Norte")
	uc, _ := newTestUseCase(t, s)

	trx, err := uc.Create(context.Background(), testUser, inRequest("BB-0001", "prov-1", 100))
	require.NoError(t, err)

	assert.Equal(t, entity.StatusPending, trx.Status)
	require.Len(t, trx.Details, 1)
	assert.Equal(t, entity.StatusPending, trx.Details[0].Status)
	assert.Equal(t, int64(0), s.items["BB-0001"].StockQuantity,
		"crear la transacción no debe tocar stock; eso lo hace el ledger al completar")
}

func TestCreate_NotificaComprasPorProveedor(t *testing.T) {
	s := newMemStore()
	seedItem(s, "BB-0001", "Arroz", 0, 10)
	seedItem(s, "BB-0002", "Aceite", 0, 5)
	seedItem(s, "BB-0003", "Sal", 0, 2)
	seedSupplier(s, "prov-1", "Distribuidora Norte")
	seedSupplier(s, "prov-2", "Abarrotes Sur")
	uc, notifier := newTestUseCase(t, s)

	p1, p2 := "prov-1", "prov-2"
	_, err := uc.Create(context.Background(), testUser, dto.CreateTransactionRequest{
		Type: entity.TransactionTypeIN,
		Details: []dto.DetailRequest{
			{ItemID: "BB-0001", SupplierID: &p1, Quantity: 20},
			{ItemID: "BB-0002", SupplierID: &p1, Quantity: 10},
			{ItemID: "BB-0003", SupplierID: &p2, Quantity: 5},
		},
	})
	require.NoError(t, err)

	require.Len(t, notifier.calls, 2, "un aviso por proveedor")
	byID := map[string]notifyCall{}
	for _, c := range notifier.calls {
		byID[c.SupplierID] = c
	}
	assert.Len(t, byID["prov-1"].Items, 2)
	assert.Equal(t, "Distribuidora Norte", byID["prov-1"].SupplierName)
	assert.Len(t, byID["prov-2"].Items, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario A: entrada completa
// ──────────────────────────────────────────────────────────────────────────────

func TestEscenarioA_EntradaCompletada(t *testing.T) {
	s := newMemStore()
	seedItem(s, "BB-0001", "Arroz", 0, 10)
	seedSupplier(s, "prov-1", "Distribuidora Norte")
	uc, _ := newTestUseCase(t, s)
	ctx := context.Background()

	trx, err := uc.Create(ctx, testUser, inRequest("BB-0001", "prov-1", 100))
	require.NoError(t, err)

	_, err = uc.UpdateDetailStatus(ctx, testUser, trx.Details[0].ID, entity.StatusCompleted)
	require.NoError(t, err)

	assert.Equal(t, int64(100), s.items["BB-0001"].StockQuantity)
	require.Len(t, s.movements, 1)
	assert.Equal(t, entity.TransactionTypeIN, s.movements[0].Type)
	assert.Equal(t, int64(100), s.movements[0].Delta)
	assert.Equal(t, trx.ID, s.movements[0].TransactionID)

	// La cabecera sigue a sus líneas.
	assert.Equal(t, entity.StatusCompleted, s.trxs[trx.ID].Status)
}

func TestEntradaIN_PublicaStockAlRecibirNoAlCompletar(t *testing.T) {
	s := newMemStore()
	seedItem(s, "BB-0001", "Arroz", 0, 10)
	seedSupplier(s, "prov-1", "Distribuidora Norte")
	uc, _ := newTestUseCase(t, s)
	ctx := context.Background()

	trx, err := uc.Create(ctx, testUser, inRequest("BB-0001", "prov-1", 50))
	require.NoError(t, err)
	detailID := trx.Details[0].ID

	_, err = uc.UpdateDetailStatus(ctx, testUser, detailID, entity.StatusReceived)
	require.NoError(t, err)
	assert.Equal(t, int64(50), s.items["BB-0001"].StockQuantity, "IN afecta stock al cruzar RECEIVED")
	assert.Len(t, s.movements, 1)

	_, err = uc.UpdateDetailStatus(ctx, testUser, detailID, entity.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, int64(50), s.items["BB-0001"].StockQuantity, "completar no debe duplicar el movimiento")
	assert.Len(t, s.movements, 1)
}

func TestEntradaIN_RecepcionParcialUsaCantidadFisica(t *testing.T) {
	s := newMemStore()
	seedItem(s, "BB-0001", "Arroz", 0, 10)
	seedSupplier(s, "prov-1", "Distribuidora Norte")
	uc, _ := newTestUseCase(t, s)
	ctx := context.Background()

	trx, err := uc.Create(ctx, testUser, inRequest("BB-0001", "prov-1", 100))
	require.NoError(t, err)
	detailID := trx.Details[0].ID

	// Conteo de recepción: llegaron 90 de 100, con nota del faltante.
	check := int64(90)
	note := "10 sacos dañados en transporte"
	_, err = uc.UpdateDetail(ctx, testUser, detailID, dto.UpdateDetailRequest{
		QuantityCheck: &check,
		Note:          &note,
	})
	require.NoError(t, err)

	d := s.details[detailID]
	require.NotNil(t, d.QuantityDifference)
	assert.Equal(t, int64(-10), *d.QuantityDifference, "diferencia = física - sistema")

	_, err = uc.UpdateDetailStatus(ctx, testUser, detailID, entity.StatusReceived)
	require.NoError(t, err)
	assert.Equal(t, int64(90), s.items["BB-0001"].StockQuantity,
		"el ledger aplica la cantidad reconciliada (física), no la solicitada")
}

func TestEntradaIN_EditarCantidadRecalculaDiferencia(t *testing.T) {
	s := newMemStore()
	seedItem(s, "BB-0001", "Arroz", 0, 10)
	seedSupplier(s, "prov-1", "Distribuidora Norte")
	uc, _ := newTestUseCase(t, s)
	ctx := context.Background()

	trx, err := uc.Create(ctx, testUser, inRequest("BB-0001", "prov-1", 100))
	require.NoError(t, err)
	detailID := trx.Details[0].ID

	check := int64(90)
	note := "10 sacos dañados en transporte"
	_, err = uc.UpdateDetail(ctx, testUser, detailID, dto.UpdateDetailRequest{
		QuantityCheck: &check,
		Note:          &note,
	})
	require.NoError(t, err)

	// Corregir la cantidad de sistema con un conteo ya registrado debe
	// recalcular la diferencia contra el valor nuevo.
	qty := int64(95)
	_, err = uc.UpdateDetail(ctx, testUser, detailID, dto.UpdateDetailRequest{Quantity: &qty})
	require.NoError(t, err)
	d := s.details[detailID]
	require.NotNil(t, d.QuantityDifference)
	assert.Equal(t, int64(-5), *d.QuantityDifference, "diferencia = física - sistema tras editar quantity")

	// Bajarla por debajo del conteo físico viola el rango [-1, quantity].
	qty = int64(80)
	_, err = uc.UpdateDetail(ctx, testUser, detailID, dto.UpdateDetailRequest{Quantity: &qty})
	var vErr *rules.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "quantity_check", vErr.Violations[0].Field)
	assert.Equal(t, int64(95), s.details[detailID].Quantity, "el parche inválido no debe persistirse")
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario B: salida que excede stock
// ──────────────────────────────────────────────────────────────────────────────

func TestEscenarioB_SalidaExcedeStock(t *testing.T) {
	s := newMemStore()
	seedItem(s, "BB-0001", "Arroz", 50, 10)
	uc, _ := newTestUseCase(t, s)

	_, err := uc.Create(context.Background(), testUser, dto.CreateTransactionRequest{
		Type:    entity.TransactionTypeOUT,
		Details: []dto.DetailRequest{{ItemID: "BB-0001", Quantity: 60, Note: "cocina"}},
	})

	var vErr *rules.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "quantity", vErr.Violations[0].Field)
	assert.Empty(t, s.trxs, "no debe persistirse ninguna transacción")
	assert.Empty(t, s.details)
}

func TestSalidasConcurrentes_SegundaRechazadaPorElLedger(t *testing.T) {
	// Dos salidas de 30 sobre stock 50: ambas pasan la validación (lectura
	// desfasada), pero el re-chequeo del ledger al completar debe rechazar la
	// segunda sin dejar stock negativo.
	s := newMemStore()
	seedItem(s, "BB-0001", "Arroz", 50, 10)
	uc, _ := newTestUseCase(t, s)
	ctx := context.Background()

	outReq := dto.CreateTransactionRequest{
		Type:    entity.TransactionTypeOUT,
		Details: []dto.DetailRequest{{ItemID: "BB-0001", Quantity: 30, Note: "cocina"}},
	}
	trx1, err := uc.Create(ctx, testUser, outReq)
	require.NoError(t, err)
	trx2, err := uc.Create(ctx, testUser, outReq)
	require.NoError(t, err, "la validación de la segunda aún ve stock 50")

	_, err = uc.UpdateDetailStatus(ctx, testUser, trx1.Details[0].ID, entity.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, int64(20), s.items["BB-0001"].StockQuantity)

	_, err = uc.UpdateDetailStatus(ctx, testUser, trx2.Details[0].ID, entity.StatusCompleted)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(20), s.items["BB-0001"].StockQuantity, "el stock nunca queda negativo")
	assert.Equal(t, entity.StatusPending, s.details[trx2.Details[0].ID].Status,
		"el rollback deja la línea sin transicionar")
	assert.Len(t, s.movements, 1)
}

func TestTransicionesConcurrentes_SoloUnaCruzaElUmbral(t *testing.T) {
	// Dos peticiones leen la misma línea OUT en PENDING y ambas intentan
	// completarla. La escritura guardada del estado deja pasar solo a la
	// primera; la perdedora no puede publicar el movimiento otra vez.
	s := newMemStore()
	seedItem(s, "BB-0001", "Arroz", 50, 10)
	runner := &fakeTxRunner{s: s}
	uc, _ := newTestUseCaseWithRunner(t, s, runner)
	ctx := context.Background()

	trx, err := uc.Create(ctx, testUser, dto.CreateTransactionRequest{
		Type:    entity.TransactionTypeOUT,
		Details: []dto.DetailRequest{{ItemID: "BB-0001", Quantity: 30, Note: "cocina"}},
	})
	require.NoError(t, err)
	detailID := trx.Details[0].ID

	// La rival gana entre la lectura y la transacción: completa la línea y
	// aplica su movimiento antes de que la perdedora entre a su tx.
	runner.before = func() {
		s.details[detailID].Status = entity.StatusCompleted
		s.trxs[trx.ID].Status = entity.StatusCompleted
		s.items["BB-0001"].StockQuantity = 20
		s.movements = append(s.movements, &entity.ItemMovement{
			ID: "mov-rival", TransactionID: trx.ID, ItemID: "BB-0001",
			Type: entity.TransactionTypeOUT, Delta: -30, CreatedAt: time.Now(),
		})
	}

	_, err = uc.UpdateDetailStatus(ctx, testUser, detailID, entity.StatusCompleted)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, int64(20), s.items["BB-0001"].StockQuantity, "el stock solo debe descontarse una vez")
	assert.Len(t, s.movements, 1, "el movimiento no debe duplicarse")
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario C: conteo con merma
// ──────────────────────────────────────────────────────────────────────────────

func TestEscenarioC_ConteoConMerma(t *testing.T) {
	s := newMemStore()
	seedItem(s, "BB-0001", "Arroz", 40, 10)
	uc, _ := newTestUseCase(t, s)
	ctx := context.Background()

	check := int64(35)
	trx, err := uc.Create(ctx, testUser, dto.CreateTransactionRequest{
		Type: entity.TransactionTypeCHECK,
		Details: []dto.DetailRequest{
			{ItemID: "BB-0001", Quantity: 40, QuantityCheck: &check, Note: "merma"},
		},
	})
	require.NoError(t, err)

	d := trx.Details[0]
	require.NotNil(t, d.QuantityDifference)
	assert.Equal(t, int64(-5), *d.QuantityDifference)

	_, err = uc.UpdateDetailStatus(ctx, testUser, d.ID, entity.StatusCompleted)
	require.NoError(t, err)

	assert.Equal(t, int64(35), s.items["BB-0001"].StockQuantity)
	require.Len(t, s.movements, 1)
	assert.Equal(t, entity.TransactionTypeCHECK, s.movements[0].Type)
	assert.Equal(t, int64(-5), s.movements[0].Delta)
}

func TestConteoSinDiferencia_NoGeneraMovimiento(t *testing.T) {
	s := newMemStore()
	seedItem(s, "BB-0001", "Arroz", 40, 10)
	uc, _ := newTestUseCase(t, s)
	ctx := context.Background()

	check := int64(40)
	trx, err := uc.Create(ctx, testUser, dto.CreateTransactionRequest{
		Type: entity.TransactionTypeCHECK,
		Details: []dto.DetailRequest{
			{ItemID: "BB-0001", Quantity: 40, QuantityCheck: &check, Note: "conteo mensual"},
		},
	})
	require.NoError(t, err)

	_, err = uc.UpdateDetailStatus(ctx, testUser, trx.Details[0].ID, entity.StatusCompleted)
	require.NoError(t, err)

	assert.Empty(t, s.movements, "un conteo cuadrado no toca el ledger")
	assert.Equal(t, int64(40), s.items["BB-0001"].StockQuantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Estados terminales y mutaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestTransaccionTerminal_RechazaMutaciones(t *testing.T) {
	s := newMemStore()
	seedItem(s, "BB-0001", "Arroz", 0, 10)
	seedSupplier(s, "prov-1", "Distribuidora Norte")
	uc, _ := newTestUseCase(t, s)
	ctx := context.Background()

	trx, err := uc.Create(ctx, testUser, inRequest("BB-0001", "prov-1", 10))
	require.NoError(t, err)
	detailID := trx.Details[0].ID

	_, err = uc.UpdateDetailStatus(ctx, testUser, detailID, entity.StatusCompleted)
	require.NoError(t, err)

	// Agregar líneas: la cabecera ya no está PENDING.
	p := "prov-1"
	_, err = uc.AddDetails(ctx, testUser, trx.ID, dto.AddDetailsRequest{
		Details: []dto.DetailRequest{{ItemID: "BB-0001", SupplierID: &p, Quantity: 5}},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Editar la línea completada.
	qty := int64(20)
	_, err = uc.UpdateDetail(ctx, testUser, detailID, dto.UpdateDetailRequest{Quantity: &qty})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Transicionar desde terminal.
	_, err = uc.UpdateDetailStatus(ctx, testUser, detailID, entity.StatusCancelled)
	assert.ErrorIs(t, err, domain.ErrTerminalState)
}

func TestUpdateDetail_CheckNoEditable(t *testing.T) {
	s := newMemStore()
	seedItem(s, "BB-0001", "Arroz", 40, 10)
	uc, _ := newTestUseCase(t, s)
	ctx := context.Background()

	check := int64(40)
	trx, err := uc.Create(ctx, testUser, dto.CreateTransactionRequest{
		Type: entity.TransactionTypeCHECK,
		Details: []dto.DetailRequest{
			{ItemID: "BB-0001", Quantity: 40, QuantityCheck: &check, Note: "conteo"},
		},
	})
	require.NoError(t, err)

	note := "editada"
	_, err = uc.UpdateDetail(ctx, testUser, trx.Details[0].ID, dto.UpdateDetailRequest{Note: &note})
	assert.ErrorIs(t, err, domain.ErrConflict, "las líneas de conteo las computa el sistema")
}

func TestCancelarRecepcion_RevierteStock(t *testing.T) {
	s := newMemStore()
	seedItem(s, "BB-0001", "Arroz", 0, 10)
	seedSupplier(s, "prov-1", "Distribuidora Norte")
	uc, _ := newTestUseCase(t, s)
	ctx := context.Background()

	trx, err := uc.Create(ctx, testUser, inRequest("BB-0001", "prov-1", 100))
	require.NoError(t, err)
	detailID := trx.Details[0].ID

	_, err = uc.UpdateDetailStatus(ctx, testUser, detailID, entity.StatusReceived)
	require.NoError(t, err)
	require.Equal(t, int64(100), s.items["BB-0001"].StockQuantity)

	_, err = uc.UpdateDetailStatus(ctx, testUser, detailID, entity.StatusCancelled)
	require.NoError(t, err)

	assert.Equal(t, int64(0), s.items["BB-0001"].StockQuantity, "cancelar la recepción devuelve las unidades")
	require.Len(t, s.movements, 2)
	assert.Equal(t, int64(-100), s.movements[1].Delta)
}

// ──────────────────────────────────────────────────────────────────────────────
// Borrado y permisos
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_RequiereAdmin(t *testing.T) {
	s := newMemStore()
	seedItem(s, "BB-0001", "Arroz", 0, 10)
	seedSupplier(s, "prov-1", "Distribuidora Norte")
	uc, _ := newTestUseCase(t, s)
	ctx := context.Background()

	trx, err := uc.Create(ctx, testUser, inRequest("BB-0001", "prov-1", 10))
	require.NoError(t, err)

	err = uc.Delete(ctx, testUser, entity.RoleStaff, trx.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = uc.Delete(ctx, testAdmin, entity.RoleAdmin, trx.ID)
	require.NoError(t, err)
	assert.Empty(t, s.trxs)
	assert.Empty(t, s.details, "el borrado cascadea a las líneas")
}

func TestDelete_RechazadoTrasAfectarStock(t *testing.T) {
	s := newMemStore()
	seedItem(s, "BB-0001", "Arroz", 0, 10)
	seedSupplier(s, "prov-1", "Distribuidora Norte")
	uc, _ := newTestUseCase(t, s)
	ctx := context.Background()

	trx, err := uc.Create(ctx, testUser, inRequest("BB-0001", "prov-1", 10))
	require.NoError(t, err)
	_, err = uc.UpdateDetailStatus(ctx, testUser, trx.Details[0].ID, entity.StatusReceived)
	require.NoError(t, err)

	err = uc.Delete(ctx, testAdmin, entity.RoleAdmin, trx.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "con movimientos aplicados ya no se borra")
}

// ──────────────────────────────────────────────────────────────────────────────
// Contadores del dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestPendingCounts(t *testing.T) {
	s := newMemStore()
	seedItem(s, "BB-0001", "Arroz", 100, 10)
	seedSupplier(s, "prov-1", "Distribuidora Norte")
	uc, _ := newTestUseCase(t, s)
	ctx := context.Background()

	_, err := uc.Create(ctx, testUser, inRequest("BB-0001", "prov-1", 10))
	require.NoError(t, err)
	_, err = uc.Create(ctx, testUser, inRequest("BB-0001", "prov-1", 20))
	require.NoError(t, err)
	_, err = uc.Create(ctx, testUser, dto.CreateTransactionRequest{
		Type:    entity.TransactionTypeOUT,
		Details: []dto.DetailRequest{{ItemID: "BB-0001", Quantity: 5, Note: "cocina"}},
	})
	require.NoError(t, err)

	counts, err := uc.PendingCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, dto.PendingCountsResponse{In: 2, Out: 1, Check: 0}, counts)
}
