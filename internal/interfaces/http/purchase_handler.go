package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/comercial-pro/internal/application/dto"
	"github.com/tu-usuario/comercial-pro/internal/application/purchases"
)

// PurchaseHandler maneja órdenes de compra: registro, recepción, cancelación
// y consultas.
type PurchaseHandler struct {
	svc *purchases.Service
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(svc *purchases.Service) *PurchaseHandler {
	return &PurchaseHandler{svc: svc}
}

// Register godoc
// @Summary      Registrar orden de compra
// @Description  La orden nace pendiente; el stock recién entra al recibirla.
// @Tags         compras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterPurchaseRequest  true  "Compra"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/compras [post]
func (h *PurchaseHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterPurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.svc.RegisterPurchase(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener compra con sus líneas
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la compra"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/compras/{id} [get]
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.svc.GetPurchase(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Receive godoc
// @Summary      Recibir compra
// @Description  Ingresa el stock de cada línea y deja un movimiento de entrada por producto.
// @Tags         compras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la compra"
// @Param        body  body  dto.ReceivePurchaseRequest  false  "Fecha de recepción opcional"
// @Success      200   {object}  dto.PurchaseResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "La compra no está pendiente"
// @Router       /api/compras/{id}/recibir [post]
func (h *PurchaseHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceivePurchaseRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "INVALID_BODY", "cuerpo inválido")
		}
	}
	out, err := h.svc.ReceivePurchase(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar compra pendiente
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la compra"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/compras/{id}/cancelar [post]
func (h *PurchaseHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.svc.CancelPurchase(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByState godoc
// @Summary      Listar compras por estado
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        estado  query  string  true   "pendiente | recibida | cancelada"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {array}  dto.PurchaseResponse
// @Router       /api/compras [get]
func (h *PurchaseHandler) ListByState(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", 20),
		Offset: c.QueryInt("offset", 0),
	}
	out, err := h.svc.ListByState(c.UserContext(), c.Query("estado"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PeriodStats godoc
// @Summary      Estadísticas de compras del período
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  true  "YYYY-MM-DD"
// @Param        to    query  string  true  "YYYY-MM-DD"
// @Success      200   {object}  dto.PurchasesPeriodStats
// @Router       /api/compras/estadisticas [get]
func (h *PurchaseHandler) PeriodStats(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	out, err := h.svc.PeriodStats(c.UserContext(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
