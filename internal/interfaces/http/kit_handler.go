package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/deposito-pro/internal/application/dto"
	"github.com/tu-usuario/deposito-pro/internal/application/inventario"
	"github.com/tu-usuario/deposito-pro/internal/application/usecase"
	"github.com/tu-usuario/deposito-pro/internal/domain"
	"github.com/tu-usuario/deposito-pro/internal/domain/entity"
)

// KitHandler maneja las peticiones HTTP para Kit, incluidos los ajustes de
// stock con cascada a componentes (protegido).
type KitHandler struct {
	uc     *usecase.KitUseCase
	ajuste *inventario.AjusteUseCase
}

// NewKitHandler construye el handler.
func NewKitHandler(uc *usecase.KitUseCase, ajuste *inventario.AjusteUseCase) *KitHandler {
	return &KitHandler{uc: uc, ajuste: ajuste}
}

// Create godoc
// @Summary      Crear kit
// @Description  Mínimo 2 componentes distintos; todos los bienes deben existir.
// @Tags         kits
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateKitRequest  true  "Datos del kit"
// @Success      201   {object}  dto.KitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/kits [post]
func (h *KitHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateKitRequest
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
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("VALIDATION", err.Error()))
		}
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener kit por ID
// @Tags         kits
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del kit"
// @Success      200  {object}  dto.KitResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/kits/{id} [get]
func (h *KitHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return internalError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.NewError("NOT_FOUND", "kit no encontrado"))
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar kits
// @Tags         kits
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.KitResponse
// @Router       /api/kits [get]
func (h *KitHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(limit, offset)
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "items": out})
}

// Update godoc
// @Summary      Actualizar kit
// @Tags         kits
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del kit"
// @Param        body  body  dto.UpdateKitRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.KitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/kits/{id} [put]
func (h *KitHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateKitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_BODY", "cuerpo inválido"))
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("VALIDATION", err.Error()))
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.NewError("NOT_FOUND", "kit no encontrado"))
		}
		return internalError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.NewError("NOT_FOUND", "kit no encontrado"))
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar kit
// @Tags         kits
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del kit"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/kits/{id} [delete]
func (h *KitHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.NewError("NOT_FOUND", "kit no encontrado"))
		}
		if err == domain.ErrConflict {
			return c.Status(fiber.StatusConflict).JSON(dto.NewError("CONFLICT", "el kit está referenciado por movimientos"))
		}
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// IncrementarStock godoc
// @Summary      Incrementar stock de un kit
// @Description  Suma la cantidad al kit y propaga cantidad × cantidad_por_kit
//
//	a cada componente, todo en una transacción.
//
// @Tags         kits
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del kit"
// @Param        body  body  dto.KitStockRequest  true  "cantidad"
// @Success      200   {object}  dto.KitStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/kits/{id}/incrementar-stock [post]
func (h *KitHandler) IncrementarStock(c *fiber.Ctx) error {
	return h.ajustarStock(c, entity.TipoAjusteEntrada)
}

// DescontarStock godoc
// @Summary      Descontar stock de un kit
// @Description  Resta la cantidad al kit y a cada componente. Si algún
//
//	componente quedara negativo, nada se aplica.
//
// @Tags         kits
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del kit"
// @Param        body  body  dto.KitStockRequest  true  "cantidad"
// @Success      200   {object}  dto.KitStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/kits/{id}/descontar-stock [post]
func (h *KitHandler) DescontarStock(c *fiber.Ctx) error {
	return h.ajustarStock(c, entity.TipoAjusteSalida)
}

func (h *KitHandler) ajustarStock(c *fiber.Ctx, tipoMovimiento string) error {
	var in dto.KitStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_BODY", "cuerpo inválido"))
	}
	if _, err := h.ajuste.AplicarAjuste(c.Context(), inventario.AjusteInput{
		TipoItem:       entity.TipoItemKit,
		ItemID:         c.Params("id"),
		TipoMovimiento: tipoMovimiento,
		Cantidad:       in.Cantidad,
		UserID:         GetUserID(c),
	}); err != nil {
		return ajusteError(c, err)
	}
	// La respuesta es el kit ya actualizado, con su stock nuevo y componentes.
	kit, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return internalError(c, err)
	}
	if kit == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.NewError("NOT_FOUND", "kit no encontrado"))
	}
	return c.JSON(dto.KitStockResponse{Success: true, Kit: *kit})
}
