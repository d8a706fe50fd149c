package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/restocker/internal/application/analytics"
	"github.com/jhoicas/restocker/internal/application/dto"
)

// AnalyticsHandler vista "en stock", gráficos y reporte PDF.
type AnalyticsHandler struct {
	instock *appanalytics.InStockUseCase
	report  *appanalytics.ReportUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(instock *appanalytics.InStockUseCase, report *appanalytics.ReportUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{instock: instock, report: report}
}

// InStock godoc
// @Summary      Productos con stock agrupados por producto
// @Description  Cada grupo trae total, lotes, vencimiento más próximo, banderas y estado.
// @Tags         instock
// @Security     Bearer
// @Produce      json
// @Param        filter  query  string  false  "all | expiring | low-stock"
// @Success      200  {object}  dto.InStockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/instock [get]
func (h *AnalyticsHandler) InStock(c *fiber.Ctx) error {
	s, ok := requireSession(c)
	if !ok {
		return nil
	}
	var req dto.InStockRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidBody(c)
	}
	out, err := h.instock.List(c.Context(), s, req.Filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// StockChart godoc
// @Summary      Gráfico de cantidades por producto
// @Tags         instock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ChartDTO
// @Router       /api/instock/chart [get]
func (h *AnalyticsHandler) StockChart(c *fiber.Ctx) error {
	s, ok := requireSession(c)
	if !ok {
		return nil
	}
	out, err := h.instock.StockChart(c.Context(), s)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ProductChart godoc
// @Summary      Gráfico de un producto
// @Tags         instock
// @Security     Bearer
// @Produce      json
// @Param        productId  path   string  true   "ID del producto"
// @Param        tab        query  string  false  "stock | used"
// @Success      200  {object}  dto.ProductChartResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/instock/{productId}/chart [get]
func (h *AnalyticsHandler) ProductChart(c *fiber.Ctx) error {
	s, ok := requireSession(c)
	if !ok {
		return nil
	}
	var req dto.ProductChartRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidBody(c)
	}
	out, err := h.instock.ProductChart(c.Context(), s, c.Params("productId"), req.Tab)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte PDF del stock
// @Tags         instock
// @Security     Bearer
// @Produce      application/pdf
// @Param        filter  query  string  false  "all | expiring | low-stock"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/instock/report.pdf [get]
func (h *AnalyticsHandler) Report(c *fiber.Ctx) error {
	s, ok := requireSession(c)
	if !ok {
		return nil
	}
	var req dto.InStockRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidBody(c)
	}
	pdf, err := h.report.StockReport(c.Context(), s, GetEmail(c), req.Filter)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="stock-%s.pdf"`, s.UserID))
	return c.Send(pdf)
}
