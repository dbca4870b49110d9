package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/deposito-pro/internal/application/dto"
	"github.com/tu-usuario/deposito-pro/internal/application/inventario"
	"github.com/tu-usuario/deposito-pro/internal/application/usecase"
	"github.com/tu-usuario/deposito-pro/internal/domain"
)

// BienHandler maneja las peticiones HTTP para Bien (protegido).
type BienHandler struct {
	uc       *usecase.BienUseCase
	criticos *inventario.CriticosUseCase
}

// NewBienHandler construye el handler.
func NewBienHandler(uc *usecase.BienUseCase, criticos *inventario.CriticosUseCase) *BienHandler {
	return &BienHandler{uc: uc, criticos: criticos}
}

// Create godoc
// @Summary      Crear bien
// @Tags         bienes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBienRequest  true  "Datos del bien"
// @Success      201   {object}  dto.BienResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/bienes [post]
func (h *BienHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBienRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_BODY", "cuerpo inválido"))
	}
	if in.Codigo == "" || in.Nombre == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("VALIDATION", "codigo y nombre son requeridos"))
	}
	out, err := h.uc.Create(in)
	if err != nil {
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.NewError("DUPLICATE", "el código ya existe"))
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("VALIDATION", "datos inválidos"))
		}
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener bien por ID
// @Tags         bienes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del bien"
// @Success      200  {object}  dto.BienResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bienes/{id} [get]
func (h *BienHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.uc.GetByID(id)
	if err != nil {
		return internalError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.NewError("NOT_FOUND", "bien no encontrado"))
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar bienes
// @Tags         bienes
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.BienListResponse
// @Router       /api/bienes [get]
func (h *BienHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(limit, offset)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}

// ListCriticos godoc
// @Summary      Bienes en cantidad crítica
// @Description  Devuelve los bienes cuyo stock está en o por debajo de su
//
//	cantidad crítica, ordenados por faltante descendente.
//
// @Tags         bienes
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.BienCriticoDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/bienes/criticos [get]
func (h *BienHandler) ListCriticos(c *fiber.Ctx) error {
	list, err := h.criticos.ListarCriticos(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "criticos": list})
}

// Update godoc
// @Summary      Actualizar bien
// @Description  No permite modificar el stock: el stock solo se muta vía
//
//	ajustes de inventario y salidas.
//
// @Tags         bienes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del bien"
// @Param        body  body  dto.UpdateBienRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.BienResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/bienes/{id} [put]
func (h *BienHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdateBienRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_BODY", "cuerpo inválido"))
	}
	out, err := h.uc.Update(id, in)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.NewError("NOT_FOUND", "bien no encontrado"))
		}
		return internalError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.NewError("NOT_FOUND", "bien no encontrado"))
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar bien
// @Tags         bienes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del bien"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/bienes/{id} [delete]
func (h *BienHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.Delete(id); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.NewError("NOT_FOUND", "bien no encontrado"))
		}
		if err == domain.ErrConflict {
			return c.Status(fiber.StatusConflict).JSON(dto.NewError("CONFLICT", "el bien está referenciado por un kit o movimiento"))
		}
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// pageParams lee limit/offset del query string con defaults y topes.
func pageParams(c *fiber.Ctx) (int, int) {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
