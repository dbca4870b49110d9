package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/deposito-pro/internal/application/dto"
	"github.com/tu-usuario/deposito-pro/internal/application/usecase"
	"github.com/tu-usuario/deposito-pro/internal/domain"
)

// OrdenVentaHandler maneja las peticiones HTTP para órdenes de venta (protegido).
type OrdenVentaHandler struct {
	uc *usecase.OrdenVentaUseCase
}

// NewOrdenVentaHandler construye el handler.
func NewOrdenVentaHandler(uc *usecase.OrdenVentaUseCase) *OrdenVentaHandler {
	return &OrdenVentaHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de venta
// @Tags         ordenes-venta
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrdenRequest  true  "cliente_id y líneas (producto, cantidad_inicial)"
// @Success      201   {object}  dto.OrdenResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ordenes-venta [post]
func (h *OrdenVentaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrdenRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_BODY", "cuerpo inválido"))
	}
	out, err := h.uc.Create(in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("VALIDATION", err.Error()))
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.NewError("CLIENTE_NOT_FOUND", "el cliente no existe"))
		}
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden por ID
// @Tags         ordenes-venta
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrdenResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ordenes-venta/{id} [get]
func (h *OrdenVentaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return internalError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.NewError("NOT_FOUND", "orden no encontrada"))
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar órdenes de venta
// @Tags         ordenes-venta
// @Security     Bearer
// @Produce      json
// @Param        estado  query  string  false  "ABIERTA | EN_LOGISTICA | COMPLETA | ANULADA"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.OrdenListResponse
// @Router       /api/ordenes-venta [get]
func (h *OrdenVentaHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.Query("estado"), limit, offset)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Completar godoc
// @Summary      Completar orden
// @Description  Cierra una orden EN_LOGISTICA marcándola COMPLETA.
// @Tags         ordenes-venta
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrdenResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/ordenes-venta/{id}/completar [post]
func (h *OrdenVentaHandler) Completar(c *fiber.Ctx) error {
	out, err := h.uc.Completar(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.NewError("NOT_FOUND", "orden no encontrada"))
		}
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.NewError("CONFLICT", "solo una orden EN_LOGISTICA puede completarse"))
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}
