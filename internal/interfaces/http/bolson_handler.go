package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/deposito-pro/internal/application/dto"
	"github.com/tu-usuario/deposito-pro/internal/application/usecase"
	"github.com/tu-usuario/deposito-pro/internal/domain"
)

// BolsonHandler maneja el alta y consulta de bolsones y su etiqueta imprimible
// (protegido).
type BolsonHandler struct {
	uc *usecase.BolsonUseCase
}

// NewBolsonHandler construye el handler.
func NewBolsonHandler(uc *usecase.BolsonUseCase) *BolsonHandler {
	return &BolsonHandler{uc: uc}
}

// Create godoc
// @Summary      Crear bolsón
// @Description  Alta desde producción (parte diario). El código único se
//
//	genera en el servidor y se imprime como code128 en la etiqueta.
//
// @Tags         bolsones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBolsonRequest  true  "producto, peso, precinto"
// @Success      201   {object}  dto.BolsonDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/bolsones [post]
func (h *BolsonHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBolsonRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_BODY", "cuerpo inválido"))
	}
	out, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("VALIDATION", "producto y peso positivo son requeridos"))
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.NewError("DUPLICATE", "colisión de código de bolsón, reintentar"))
		}
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener bolsón por ID
// @Tags         bolsones
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del bolsón"
// @Success      200  {object}  dto.BolsonDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bolsones/{id} [get]
func (h *BolsonHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return internalError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.NewError("NOT_FOUND", "bolsón no encontrado"))
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar bolsones
// @Tags         bolsones
// @Security     Bearer
// @Produce      json
// @Param        disponibles  query  bool  false  "Solo bolsones sin despachar"
// @Param        limit        query  int   false  "Límite"   default(20)
// @Param        offset       query  int   false  "Offset"   default(0)
// @Success      200  {array}  dto.BolsonDTO
// @Router       /api/bolsones [get]
func (h *BolsonHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	soloDisponibles := c.QueryBool("disponibles", false)
	out, err := h.uc.List(soloDisponibles, limit, offset)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "bolsones": out})
}

// Etiqueta godoc
// @Summary      Etiqueta PDF de un bolsón
// @Description  Etiqueta imprimible con el código de barras code128 del bolsón.
// @Tags         bolsones
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del bolsón"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bolsones/{id}/etiqueta [get]
func (h *BolsonHandler) Etiqueta(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.GenerarEtiqueta(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrBolsonNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.NewError("NOT_FOUND", "bolsón no encontrado"))
		}
		return internalError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="etiqueta.pdf"`)
	return c.Send(pdfBytes)
}
