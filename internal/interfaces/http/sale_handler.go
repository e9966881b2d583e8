package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/comercial-pro/internal/application/dto"
	"github.com/tu-usuario/comercial-pro/internal/application/sales"
	"github.com/tu-usuario/comercial-pro/internal/application/usecase"
)

// SaleHandler maneja el flujo de ventas: registro, anulación, consultas y
// comprobante PDF.
type SaleHandler struct {
	svc   *sales.Service
	pdfUC *usecase.PDFUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(svc *sales.Service, pdfUC *usecase.PDFUseCase) *SaleHandler {
	return &SaleHandler{svc: svc, pdfUC: pdfUC}
}

// Register godoc
// @Summary      Registrar venta
// @Description  Descuenta stock y emite el comprobante en una sola transacción.
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterSaleRequest  true  "Venta"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "Stock insuficiente"
// @Router       /api/ventas [post]
func (h *SaleHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.svc.RegisterSale(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta con sus líneas
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.svc.GetSale(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Annul godoc
// @Summary      Anular venta
// @Description  Devuelve el stock de cada línea y marca el comprobante como anulado.
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "La venta no está completada"
// @Router       /api/ventas/{id}/anular [post]
func (h *SaleHandler) Annul(c *fiber.Ctx) error {
	out, err := h.svc.AnnulSale(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByState godoc
// @Summary      Listar ventas por estado
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        estado  query  string  true   "completada | anulada"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {array}  dto.SaleResponse
// @Router       /api/ventas [get]
func (h *SaleHandler) ListByState(c *fiber.Ctx) error {
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

// DaySales godoc
// @Summary      Ventas del día (cierre de caja)
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        fecha  query  string  false  "YYYY-MM-DD (por defecto hoy)"
// @Success      200    {object}  dto.DaySalesReport
// @Router       /api/ventas/dia [get]
func (h *SaleHandler) DaySales(c *fiber.Ctx) error {
	date := time.Now()
	if raw := c.Query("fecha"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return badRequest(c, "VALIDATION", "fecha inválida, use YYYY-MM-DD")
		}
		date = parsed
	}
	out, err := h.svc.DaySales(c.UserContext(), date)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PeriodStats godoc
// @Summary      Estadísticas de ventas del período
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  true  "YYYY-MM-DD"
// @Param        to    query  string  true  "YYYY-MM-DD"
// @Success      200   {object}  dto.SalesPeriodStats
// @Router       /api/ventas/estadisticas [get]
func (h *SaleHandler) PeriodStats(c *fiber.Ctx) error {
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

// ReceiptPDF godoc
// @Summary      Comprobante de venta en PDF
// @Tags         ventas
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id}/pdf [get]
func (h *SaleHandler) ReceiptPDF(c *fiber.Ctx) error {
	data, filename, err := h.pdfUC.SaleReceiptPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", filename))
	return c.Send(data)
}

// parseDateRange lee from y to (YYYY-MM-DD) de la query; ambos obligatorios.
// El extremo superior se extiende al final del día para que los rangos sean
// inclusivos.
func parseDateRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("from inválido, use YYYY-MM-DD")
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("to inválido, use YYYY-MM-DD")
	}
	to = to.Add(24*time.Hour - time.Second)
	return from, to, nil
}
