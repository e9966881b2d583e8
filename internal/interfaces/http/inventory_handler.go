package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/comercial-pro/internal/application/dto"
	"github.com/tu-usuario/comercial-pro/internal/application/inventory"
)

// InventoryHandler maneja ajustes de inventario y los reportes derivados del
// ledger de movimientos.
type InventoryHandler struct {
	svc *inventory.Service
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(svc *inventory.Service) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// Adjust godoc
// @Summary      Ajustar stock de un producto
// @Description  Fija el stock en el valor indicado y registra el movimiento de ajuste.
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustInventoryRequest  true  "Ajuste"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventario/ajustes [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.svc.AdjustInventory(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Movements godoc
// @Summary      Historial de movimientos
// @Description  Filtra por rango de fechas, tipo o producto; sin filtros devuelve los más recientes.
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "ID del producto"
// @Param        type        query  string  false  "entrada | salida | ajuste"
// @Param        from        query  string  false  "YYYY-MM-DD"
// @Param        to          query  string  false  "YYYY-MM-DD"
// @Param        limit       query  int     false  "Límite"  default(50)
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/inventario/movimientos [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	in, err := movementHistoryFromQuery(c)
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	out, err := h.svc.MovementHistory(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Productos en o bajo su stock mínimo
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/inventario/stock-critico [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.svc.LowStockProducts(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Valuation godoc
// @Summary      Valorización del inventario activo
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryValuation
// @Router       /api/inventario/valorizacion [get]
func (h *InventoryHandler) Valuation(c *fiber.Ctx) error {
	out, err := h.svc.Valuation(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Rotation godoc
// @Summary      Rotación de productos en el período
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  true  "YYYY-MM-DD"
// @Param        to    query  string  true  "YYYY-MM-DD"
// @Success      200   {array}  dto.RotationEntry
// @Router       /api/inventario/rotacion [get]
func (h *InventoryHandler) Rotation(c *fiber.Ctx) error {
	in, err := movementHistoryFromQuery(c)
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	out, err := h.svc.Rotation(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// WithoutMovement godoc
// @Summary      Productos activos sin movimiento en el período
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  true  "YYYY-MM-DD"
// @Param        to    query  string  true  "YYYY-MM-DD"
// @Success      200   {array}  dto.ProductResponse
// @Router       /api/inventario/sin-movimiento [get]
func (h *InventoryHandler) WithoutMovement(c *fiber.Ctx) error {
	in, err := movementHistoryFromQuery(c)
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	out, err := h.svc.ProductsWithoutMovement(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// movementHistoryFromQuery arma el filtro desde la query. Las fechas se parsean
// a mano porque llegan como YYYY-MM-DD y el extremo superior debe cubrir el día
// completo.
func movementHistoryFromQuery(c *fiber.Ctx) (dto.MovementHistoryRequest, error) {
	in := dto.MovementHistoryRequest{
		ProductID: c.Query("product_id"),
		Type:      c.Query("type"),
		Limit:     c.QueryInt("limit", 0),
	}
	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return in, errInvalidDate("from")
		}
		in.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return in, errInvalidDate("to")
		}
		to = to.Add(24*time.Hour - time.Second)
		in.To = &to
	}
	return in, nil
}
