package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/resto-inventario/internal/application/catalog"
	"github.com/jhoicas/resto-inventario/internal/application/dto"
)

// CatalogHandler maneja proveedores, unidades y categorías.
type CatalogHandler struct {
	uc *catalog.UseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ─── Proveedores ─────────────────────────────────────────────────────────────

// CreateSupplier godoc
// @Summary      Crear proveedor
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplierRequest  true  "name, phone, address"
// @Success      201   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/suppliers [post]
func (h *CatalogHandler) CreateSupplier(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_BODY", "cuerpo inválido"))
	}
	s, err := h.uc.CreateSupplier(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(toSupplierResponse(s)))
}

// GetSupplier obtiene un proveedor por id.
func (h *CatalogHandler) GetSupplier(c *fiber.Ctx) error {
	s, err := h.uc.GetSupplier(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(toSupplierResponse(s)))
}

// ListSuppliers lista proveedores.
func (h *CatalogHandler) ListSuppliers(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("VALIDATION", "paginación inválida"))
	}
	page.DefaultPage()
	list, err := h.uc.ListSuppliers(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.SupplierResponse, len(list))
	for i, s := range list {
		out[i] = toSupplierResponse(s)
	}
	return c.JSON(dto.OK(out))
}

// UpdateSupplier modifica un proveedor.
func (h *CatalogHandler) UpdateSupplier(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_BODY", "cuerpo inválido"))
	}
	s, err := h.uc.UpdateSupplier(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(toSupplierResponse(s)))
}

// DeleteSupplier elimina un proveedor (solo ADMIN).
func (h *CatalogHandler) DeleteSupplier(c *fiber.Ctx) error {
	if err := h.uc.DeleteSupplier(c.Context(), GetRole(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(fiber.Map{"deleted": true}))
}

// ─── Unidades ────────────────────────────────────────────────────────────────

// CreateUnit crea una unidad de medida.
func (h *CatalogHandler) CreateUnit(c *fiber.Ctx) error {
	var in dto.NameRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_BODY", "cuerpo inválido"))
	}
	u, err := h.uc.CreateUnit(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(dto.NamedResponse{
		ID: u.ID, Name: u.Name, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt,
	}))
}

// ListUnits lista unidades.
func (h *CatalogHandler) ListUnits(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("VALIDATION", "paginación inválida"))
	}
	page.DefaultPage()
	list, err := h.uc.ListUnits(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.NamedResponse, len(list))
	for i, u := range list {
		out[i] = dto.NamedResponse{ID: u.ID, Name: u.Name, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}
	}
	return c.JSON(dto.OK(out))
}

// UpdateUnit renombra una unidad.
func (h *CatalogHandler) UpdateUnit(c *fiber.Ctx) error {
	var in dto.NameRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_BODY", "cuerpo inválido"))
	}
	u, err := h.uc.UpdateUnit(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(dto.NamedResponse{ID: u.ID, Name: u.Name, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}))
}

// DeleteUnit elimina una unidad (solo ADMIN).
func (h *CatalogHandler) DeleteUnit(c *fiber.Ctx) error {
	if err := h.uc.DeleteUnit(c.Context(), GetRole(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(fiber.Map{"deleted": true}))
}

// ─── Categorías ──────────────────────────────────────────────────────────────

// CreateCategory crea una categoría.
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.NameRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_BODY", "cuerpo inválido"))
	}
	cat, err := h.uc.CreateCategory(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(dto.NamedResponse{
		ID: cat.ID, Name: cat.Name, CreatedAt: cat.CreatedAt, UpdatedAt: cat.UpdatedAt,
	}))
}

// ListCategories lista categorías.
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("VALIDATION", "paginación inválida"))
	}
	page.DefaultPage()
	list, err := h.uc.ListCategories(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.NamedResponse, len(list))
	for i, cat := range list {
		out[i] = dto.NamedResponse{ID: cat.ID, Name: cat.Name, CreatedAt: cat.CreatedAt, UpdatedAt: cat.UpdatedAt}
	}
	return c.JSON(dto.OK(out))
}

// UpdateCategory renombra una categoría.
func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	var in dto.NameRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("INVALID_BODY", "cuerpo inválido"))
	}
	cat, err := h.uc.UpdateCategory(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(dto.NamedResponse{ID: cat.ID, Name: cat.Name, CreatedAt: cat.CreatedAt, UpdatedAt: cat.UpdatedAt}))
}

// DeleteCategory elimina una categoría (solo ADMIN).
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.uc.DeleteCategory(c.Context(), GetRole(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(fiber.Map{"deleted": true}))
}
