package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/deposito-pro/internal/application/despacho"
	"github.com/tu-usuario/deposito-pro/internal/application/dto"
	"github.com/tu-usuario/deposito-pro/internal/domain"
)

// DespachoHandler maneja el registro de despachos, la verificación de bolsones
// y el remito imprimible (protegido).
type DespachoHandler struct {
	registrar *despacho.RegistrarDespachoUseCase
	remito    *despacho.RemitoUseCase
}

// NewDespachoHandler construye el handler.
func NewDespachoHandler(registrar *despacho.RegistrarDespachoUseCase, remito *despacho.RemitoUseCase) *DespachoHandler {
	return &DespachoHandler{registrar: registrar, remito: remito}
}

// Registrar godoc
// @Summary      Registrar despacho
// @Description  Despacha un lote de bolsones contra una orden de venta.
//
//	Todo el lote se aplica o nada: un código inexistente, repetido,
//	ya despachado o sin línea en la orden aborta la operación.
//
// @Tags         despachos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegistrarDespachoRequest  true  "ordenVentaId, codigos"
// @Success      201   {object}  dto.RegistrarDespachoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/despachos/nuevo [post]
func (h *DespachoHandler) Registrar(c *fiber.Ctx) error {
	var in dto.RegistrarDespachoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_BODY", "cuerpo inválido"))
	}
	resultado, err := h.registrar.RegistrarDespacho(
		c.Context(), in.OrdenVentaID, in.Codigos, in.Responsable, in.Observaciones, GetUserID(c),
	)
	if err != nil {
		return despachoError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RegistrarDespachoResponse{
		Success:             true,
		DespachoID:          resultado.DespachoID,
		BolsonesDespachados: resultado.BolsonesDespachados,
		OrdenCompleta:       resultado.OrdenCompleta,
		Advertencias:        resultado.Advertencias,
	})
}

// VerificarBolson godoc
// @Summary      Verificar bolsón por código
// @Description  Consulta de solo lectura previa al escaneo: existe, datos y si
//
//	ya fue despachado. No muta estado.
//
// @Tags         despachos
// @Security     Bearer
// @Produce      json
// @Param        codigo  path  string  true  "Código del bolsón"
// @Success      200     {object}  dto.VerificarBolsonResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/despachos/verificar-bolson/{codigo} [get]
func (h *DespachoHandler) VerificarBolson(c *fiber.Ctx) error {
	out, err := h.registrar.VerificarBolson(c.Context(), c.Params("codigo"))
	if err != nil {
		if errors.Is(err, domain.ErrBolsonNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.NewError("BOLSON_NOT_FOUND", "bolsón no encontrado"))
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Remito godoc
// @Summary      Remito PDF de un despacho
// @Tags         despachos
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del despacho"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/despachos/{id}/remito [get]
func (h *DespachoHandler) Remito(c *fiber.Ctx) error {
	pdfBytes, err := h.remito.GenerarRemito(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.NewError("NOT_FOUND", "despacho no encontrado"))
		}
		return internalError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="remito.pdf"`)
	return c.Send(pdfBytes)
}

// despachoError mapea los errores del motor de despacho a HTTP. Cualquier
// falla de validación de un código aborta el lote completo; un código que no
// existe es 404, el resto de las reglas de negocio 400.
func despachoError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("VALIDATION", "ordenVentaId y codigos son requeridos"))
	case errors.Is(err, domain.ErrDuplicateCode):
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("DUPLICATE_CODE", "la solicitud repite códigos de bolsón"))
	case errors.Is(err, domain.ErrBolsonNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.NewError("BOLSON_NOT_FOUND", "bolsón no encontrado"))
	case errors.Is(err, domain.ErrAlreadyDispatched):
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("ALREADY_DISPATCHED", err.Error()))
	case errors.Is(err, domain.ErrProductNotInOrder):
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("PRODUCT_NOT_IN_ORDER", err.Error()))
	case errors.Is(err, domain.ErrOrderNotOpen):
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("ORDER_NOT_OPEN", "la orden no admite despachos en su estado actual"))
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.NewError("NOT_FOUND", "orden de venta no encontrada"))
	}
	return internalError(c, err)
}
