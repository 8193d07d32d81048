package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/resto-inventario/internal/application/dto"
	"github.com/jhoicas/resto-inventario/internal/application/report"
)

// ReportHandler maneja reportes, exportaciones y el dashboard.
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// StockReport godoc
// @Summary      Reporte de stock por rango de fechas
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  true  "RFC3339"
// @Param        to    query  string  true  "RFC3339"
// @Success      200  {object}  dto.Envelope
// @Router       /api/reports/stock [get]
func (h *ReportHandler) StockReport(c *fiber.Ctx) error {
	from, to, err := parseRequiredRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("VALIDATION", "from y to son obligatorios (RFC3339)"))
	}
	rows, err := h.uc.StockReport(c.Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(toStockReportDTOs(rows)))
}

// ExportStockReport godoc
// @Summary      Exportar el reporte de stock (xlsx o pdf)
// @Tags         reports
// @Security     Bearer
// @Produce      application/octet-stream
// @Param        from    query  string  true  "RFC3339"
// @Param        to      query  string  true  "RFC3339"
// @Param        format  query  string  true  "xlsx | pdf"
// @Success      200  {file}  binary
// @Router       /api/reports/stock/export [get]
func (h *ReportHandler) ExportStockReport(c *fiber.Ctx) error {
	from, to, err := parseRequiredRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("VALIDATION", "from y to son obligatorios (RFC3339)"))
	}
	format := c.Query("format", report.FormatXLSX)
	content, contentType, err := h.uc.ExportStockReport(c.Context(), from, to, format)
	if err != nil {
		return respondError(c, err)
	}
	filename := fmt.Sprintf("stock_report_%s_%s.%s",
		from.Format("20060102"), to.Format("20060102"), format)
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(content)
}

// LowStock godoc
// @Summary      Items en o por debajo de su stock mínimo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	items, err := h.uc.LowStockItems(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(toItemResponses(items)))
}

// Dashboard godoc
// @Summary      Resumen del tablero: contadores PENDING + alertas de stock
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Envelope
// @Router       /api/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	resp, err := h.uc.Dashboard(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(resp))
}
