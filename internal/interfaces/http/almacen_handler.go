package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/deposito-pro/internal/application/dto"
	"github.com/tu-usuario/deposito-pro/internal/application/usecase"
	"github.com/tu-usuario/deposito-pro/internal/domain"
)

// AlmacenHandler maneja las peticiones HTTP para Almacen (protegido).
type AlmacenHandler struct {
	uc *usecase.AlmacenUseCase
}

// NewAlmacenHandler construye el handler.
func NewAlmacenHandler(uc *usecase.AlmacenUseCase) *AlmacenHandler {
	return &AlmacenHandler{uc: uc}
}

// Create godoc
// @Summary      Crear almacén
// @Tags         almacenes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAlmacenRequest  true  "Datos del almacén"
// @Success      201   {object}  dto.AlmacenResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/almacenes [post]
func (h *AlmacenHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAlmacenRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_BODY", "cuerpo inválido"))
	}
	if in.Nombre == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("VALIDATION", "nombre es requerido"))
	}
	out, err := h.uc.Create(in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.NewError("DUPLICATE", "el almacén ya existe"))
		}
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener almacén por ID
// @Tags         almacenes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del almacén"
// @Success      200  {object}  dto.AlmacenResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/almacenes/{id} [get]
func (h *AlmacenHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return internalError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.NewError("NOT_FOUND", "almacén no encontrado"))
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar almacenes
// @Tags         almacenes
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.AlmacenResponse
// @Router       /api/almacenes [get]
func (h *AlmacenHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(limit, offset)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "almacenes": out})
}

// Update godoc
// @Summary      Actualizar almacén
// @Tags         almacenes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del almacén"
// @Param        body  body  dto.UpdateAlmacenRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.AlmacenResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/almacenes/{id} [put]
func (h *AlmacenHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAlmacenRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_BODY", "cuerpo inválido"))
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return internalError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.NewError("NOT_FOUND", "almacén no encontrado"))
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar almacén
// @Tags         almacenes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del almacén"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/almacenes/{id} [delete]
func (h *AlmacenHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.NewError("NOT_FOUND", "almacén no encontrado"))
		}
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.NewError("CONFLICT", "el almacén tiene movimientos asociados"))
		}
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
