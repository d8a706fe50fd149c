package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restocker/internal/application/dto"
	"github.com/jhoicas/restocker/internal/application/inventory"
)

// InventoryHandler página de stock de un producto: lotes, alta y consumo.
type InventoryHandler struct {
	uc *inventory.StockUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.StockUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// ProductStock godoc
// @Summary      Lotes e historial de uso de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{productId}/stock [get]
func (h *InventoryHandler) ProductStock(c *fiber.Ctx) error {
	s, ok := requireSession(c)
	if !ok {
		return nil
	}
	out, err := h.uc.ProductStock(c.Context(), s, c.Params("productId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddStock godoc
// @Summary      Agregar un lote
// @Description  qty >= 1; expiry_date YYYY-MM-DD no anterior a hoy.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string               true  "ID del producto"
// @Param        body       body  dto.AddStockRequest  true  "lote"
// @Success      201  {object}  dto.ProductStockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/products/{productId}/stock [post]
func (h *InventoryHandler) AddStock(c *fiber.Ctx) error {
	s, ok := requireSession(c)
	if !ok {
		return nil
	}
	var in dto.AddStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.AddStock(c.Context(), s, c.Params("productId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UseStock godoc
// @Summary      Consumir stock de un lote
// @Description  0 < used_qty <= qty del lote; se valida antes de modificar el backend.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string               true  "ID del producto"
// @Param        body       body  dto.UseStockRequest  true  "consumo"
// @Success      200  {object}  dto.ProductStockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{productId}/stock/use [post]
func (h *InventoryHandler) UseStock(c *fiber.Ctx) error {
	s, ok := requireSession(c)
	if !ok {
		return nil
	}
	var in dto.UseStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UseStock(c.Context(), s, c.Params("productId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
