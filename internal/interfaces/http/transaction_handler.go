package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/resto-inventario/internal/application/dto"
	apptrx "github.com/jhoicas/resto-inventario/internal/application/transaction"
)

// TransactionHandler maneja el ciclo de vida de transacciones de inventario.
type TransactionHandler struct {
	uc *apptrx.UseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(uc *apptrx.UseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// Create godoc
// @Summary      Crear transacción (IN, OUT o CHECK) con sus líneas
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransactionRequest  true  "type + details"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Router       /api/transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_BODY", "cuerpo inválido"))
	}
	trx, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(toTransactionResponse(trx)))
}

// Get godoc
// @Summary      Obtener transacción con sus líneas
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "código TRX-{TYPE}-XXXX"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/transactions/{id} [get]
func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	trx, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(toTransactionResponse(trx)))
}

// List godoc
// @Summary      Listar transacciones (filtros: type, status)
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        type    query  string  false  "IN | OUT | CHECK"
// @Param        status  query  string  false  "PENDING | ORDERED | RECEIVED | COMPLETED | CANCELLED"
// @Success      200  {object}  dto.Envelope
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("VALIDATION", "paginación inválida"))
	}
	page.DefaultPage()
	trxs, err := h.uc.List(c.Context(), c.Query("type"), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.TransactionResponse, len(trxs))
	for i, t := range trxs {
		out[i] = toTransactionResponse(t)
	}
	return c.JSON(dto.OK(out))
}

// PendingCounts godoc
// @Summary      Contadores PENDING por tipo (dashboard)
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Router       /api/transactions/pending-counts [get]
func (h *TransactionHandler) PendingCounts(c *fiber.Ctx) error {
	counts, err := h.uc.PendingCounts(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(counts))
}

// AddDetails godoc
// @Summary      Agregar líneas a una transacción PENDING
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "código de la transacción"
// @Param        body  body  dto.AddDetailsRequest  true  "líneas nuevas"
// @Success      201   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/transactions/{id}/details [post]
func (h *TransactionHandler) AddDetails(c *fiber.Ctx) error {
	var in dto.AddDetailsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_BODY", "cuerpo inválido"))
	}
	details, err := h.uc.AddDetails(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.DetailResponse, len(details))
	for i, d := range details {
		out[i] = toDetailResponse(d)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}

// UpdateDetail godoc
// @Summary      Editar una línea (reglas por tipo; CHECK no editable)
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        detailID  path  string                   true  "id de la línea"
// @Param        body      body  dto.UpdateDetailRequest  true  "campos a parchear"
// @Success      200   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/details/{detailID} [patch]
func (h *TransactionHandler) UpdateDetail(c *fiber.Ctx) error {
	var in dto.UpdateDetailRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_BODY", "cuerpo inválido"))
	}
	detail, err := h.uc.UpdateDetail(c.Context(), GetUserID(c), c.Params("detailID"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(toDetailResponse(detail)))
}

// UpdateDetailStatus godoc
// @Summary      Transicionar el estado de una línea
// @Description  Al cruzar el umbral que afecta stock (RECEIVED para IN,
// @Description  COMPLETED para OUT/CHECK) se aplica el movimiento del ledger
// @Description  en la misma transacción de BD.
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        detailID  path  string                         true  "id de la línea"
// @Param        body      body  dto.UpdateDetailStatusRequest  true  "nuevo estado"
// @Success      200   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/details/{detailID}/status [patch]
func (h *TransactionHandler) UpdateDetailStatus(c *fiber.Ctx) error {
	var in dto.UpdateDetailStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_BODY", "cuerpo inválido"))
	}
	detail, err := h.uc.UpdateDetailStatus(c.Context(), GetUserID(c), c.Params("detailID"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(toDetailResponse(detail)))
}

// DeleteDetail godoc
// @Summary      Eliminar una línea (solo ADMIN, sin stock aplicado)
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        detailID  path  string  true  "id de la línea"
// @Success      200  {object}  dto.Envelope
// @Failure      403  {object}  dto.Envelope
// @Router       /api/details/{detailID} [delete]
func (h *TransactionHandler) DeleteDetail(c *fiber.Ctx) error {
	if err := h.uc.DeleteDetail(c.Context(), GetUserID(c), GetRole(c), c.Params("detailID")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(fiber.Map{"deleted": true}))
}

// Delete godoc
// @Summary      Eliminar una transacción completa (solo ADMIN)
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "código de la transacción"
// @Success      200  {object}  dto.Envelope
// @Failure      403  {object}  dto.Envelope
// @Router       /api/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), GetRole(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(fiber.Map{"deleted": true}))
}
