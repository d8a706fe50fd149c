package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/restocker/internal/application/analytics"
)

// DashboardHandler maneja el resumen de la pantalla principal.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Overview devuelve los indicadores del dashboard.
// GET /api/dashboard/overview
//
// Respuesta: DashboardOverviewDTO (total_products, products_with_stock,
// products_without_stock, total_units, counts, expired_products, next_expiry).
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	s, ok := requireSession(c)
	if !ok {
		return nil
	}
	out, err := h.uc.Overview(c.Context(), s)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
