package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/resto-inventario/internal/application/dto"
	appitem "github.com/jhoicas/resto-inventario/internal/application/item"
	"github.com/jhoicas/resto-inventario/internal/application/ledger"
)

// ItemHandler maneja items y las lecturas de su ledger de movimientos.
type ItemHandler struct {
	uc       *appitem.UseCase
	ledgerUC *ledger.UseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *appitem.UseCase, ledgerUC *ledger.UseCase) *ItemHandler {
	return &ItemHandler{uc: uc, ledgerUC: ledgerUC}
}

// Create godoc
// @Summary      Crear item (el código BB-XXXX lo asigna el sistema)
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "name, unit_id, category_id, minimum_stock"
// @Success      201   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_BODY", "cuerpo inválido"))
	}
	item, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(toItemResponse(item)))
}

// Get godoc
// @Summary      Obtener item por código
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "código BB-XXXX"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/items/{id} [get]
func (h *ItemHandler) Get(c *fiber.Ctx) error {
	item, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(toItemResponse(item)))
}

// List godoc
// @Summary      Listar items
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("VALIDATION", "paginación inválida"))
	}
	page.DefaultPage()
	items, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(toItemResponses(items)))
}

// Update godoc
// @Summary      Editar item (el stock no se edita por aquí)
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "código BB-XXXX"
// @Param        body  body  dto.UpdateItemRequest  true  "campos a parchear"
// @Success      200   {object}  dto.Envelope
// @Router       /api/items/{id} [patch]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_BODY", "cuerpo inválido"))
	}
	item, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(toItemResponse(item)))
}

// Delete godoc
// @Summary      Eliminar item (solo ADMIN)
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "código BB-XXXX"
// @Success      200  {object}  dto.Envelope
// @Failure      403  {object}  dto.Envelope
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetRole(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(fiber.Map{"deleted": true}))
}

// Movements godoc
// @Summary      Historial de movimientos del ledger de un item
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true   "código BB-XXXX"
// @Param        from  query  string  false  "RFC3339"
// @Param        to    query  string  false  "RFC3339"
// @Success      200  {object}  dto.Envelope
// @Router       /api/items/{id}/movements [get]
func (h *ItemHandler) Movements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("VALIDATION", "paginación inválida"))
	}
	page.DefaultPage()
	from, to, err := parseOptionalRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("VALIDATION", "rango de fechas inválido (RFC3339)"))
	}
	movs, err := h.ledgerUC.Movements(c.Context(), c.Params("id"), from, to, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovementResponse, len(movs))
	for i, m := range movs {
		out[i] = toMovementResponse(m)
	}
	return c.JSON(dto.OK(out))
}

// Aggregate godoc
// @Summary      Resumen de movimientos de un item en un rango
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true  "código BB-XXXX"
// @Param        from  query  string  true  "RFC3339"
// @Param        to    query  string  true  "RFC3339"
// @Success      200  {object}  dto.Envelope
// @Router       /api/items/{id}/movements/aggregate [get]
func (h *ItemHandler) Aggregate(c *fiber.Ctx) error {
	from, to, err := parseRequiredRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("VALIDATION", "from y to son obligatorios (RFC3339)"))
	}
	itemID := c.Params("id")
	agg, err := h.ledgerUC.Aggregate(c.Context(), itemID, from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(dto.MovementAggregateDTO{
		ItemID:             itemID,
		TotalIn:            agg.TotalIn,
		TotalOut:           agg.TotalOut,
		NetMovement:        agg.NetMovement,
		StockAtPeriodStart: agg.StockAtPeriodStart,
		StockAtPeriodEnd:   agg.StockAtPeriodEnd,
	}))
}

// Reconcile godoc
// @Summary      Verificar consistencia ledger vs stock de un item
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "código BB-XXXX"
// @Success      200  {object}  dto.Envelope
// @Router       /api/items/{id}/reconcile [get]
func (h *ItemHandler) Reconcile(c *fiber.Ctx) error {
	consistent, sum, stock, err := h.ledgerUC.Reconcile(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(fiber.Map{
		"consistent": consistent,
		"ledger_sum": sum,
		"stock":      stock,
	}))
}

func parseOptionalRange(c *fiber.Ctx) (from, to *time.Time, err error) {
	if s := c.Query("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, nil, err
		}
		to = &t
	}
	return from, to, nil
}

func parseRequiredRange(c *fiber.Ctx) (from, to time.Time, err error) {
	from, err = time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		return
	}
	to, err = time.Parse(time.RFC3339, c.Query("to"))
	return
}
