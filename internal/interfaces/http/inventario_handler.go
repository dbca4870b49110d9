package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/deposito-pro/internal/application/dto"
	"github.com/tu-usuario/deposito-pro/internal/application/inventario"
	"github.com/tu-usuario/deposito-pro/internal/application/usecase"
	"github.com/tu-usuario/deposito-pro/internal/domain"
	"github.com/tu-usuario/deposito-pro/internal/domain/entity"
)

// InventarioHandler maneja ajustes de inventario, salidas y el ledger de
// movimientos (protegido).
type InventarioHandler struct {
	ajuste      *inventario.AjusteUseCase
	movimientos *usecase.MovimientoUseCase
}

// NewInventarioHandler construye el handler.
func NewInventarioHandler(ajuste *inventario.AjusteUseCase, movimientos *usecase.MovimientoUseCase) *InventarioHandler {
	return &InventarioHandler{ajuste: ajuste, movimientos: movimientos}
}

// AplicarAjuste godoc
// @Summary      Aplicar ajuste de inventario
// @Description  Registra un AJUSTE_ENTRADA o AJUSTE_SALIDA sobre un bien o kit.
//
//	Para un kit propaga el delta a todos los componentes en la
//	misma transacción.
//
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AjusteRequest  true  "tipo_item, item_id, tipo_movimiento, cantidad"
// @Success      200   {object}  dto.AjusteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ajustes-inventario [post]
func (h *InventarioHandler) AplicarAjuste(c *fiber.Ctx) error {
	var in dto.AjusteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_BODY", "cuerpo inválido"))
	}
	input := inventario.AjusteInput{
		TipoItem:       in.TipoItem,
		ItemID:         in.ItemID,
		TipoMovimiento: in.TipoMovimiento,
		Cantidad:       in.Cantidad,
		AlmacenID:      in.AlmacenID,
		Responsable:    in.Responsable,
		Observaciones:  in.Observaciones,
		UserID:         GetUserID(c),
	}
	if in.Fecha != nil {
		input.Fecha = *in.Fecha
	}
	resultado, err := h.ajuste.AplicarAjuste(c.Context(), input)
	if err != nil {
		return ajusteError(c, err)
	}
	return c.JSON(dto.AjusteResponse{
		Success:       true,
		StockAnterior: resultado.StockAnterior,
		StockNuevo:    resultado.StockNuevo,
		Diferencia:    resultado.Diferencia,
	})
}

// ProcesarSalida godoc
// @Summary      Procesar salida de stock
// @Description  Egreso operativo (tipo SALIDA): descuenta stock del bien o kit
//
//	con las mismas reglas que un ajuste de salida.
//
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SalidaRequest  true  "item_id, tipo_item, cantidad, responsable_salida"
// @Success      200   {object}  dto.AjusteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/salidas/procesar [post]
func (h *InventarioHandler) ProcesarSalida(c *fiber.Ctx) error {
	var in dto.SalidaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_BODY", "cuerpo inválido"))
	}
	resultado, err := h.ajuste.AplicarAjuste(c.Context(), inventario.AjusteInput{
		TipoItem:       in.TipoItem,
		ItemID:         in.ItemID,
		TipoMovimiento: entity.TipoSalida,
		Cantidad:       in.Cantidad,
		Responsable:    in.ResponsableSalida,
		Observaciones:  in.Observaciones,
		UserID:         GetUserID(c),
	})
	if err != nil {
		return ajusteError(c, err)
	}
	return c.JSON(dto.AjusteResponse{
		Success:       true,
		StockAnterior: resultado.StockAnterior,
		StockNuevo:    resultado.StockNuevo,
		Diferencia:    resultado.Diferencia,
	})
}

// ListMovimientos godoc
// @Summary      Listar movimientos
// @Description  Ledger inmutable de movimientos de stock, con filtros por item
//
//	y rango de fechas (RFC 3339).
//
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        item_id    query  string  false  "Filtrar por bien/kit"
// @Param        tipo_item  query  string  false  "BIEN | KIT"
// @Param        desde      query  string  false  "Fecha desde (RFC 3339)"
// @Param        hasta      query  string  false  "Fecha hasta (RFC 3339)"
// @Param        limit      query  int     false  "Límite"   default(20)
// @Param        offset     query  int     false  "Offset"   default(0)
// @Success      200  {array}   dto.MovimientoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movimientos [get]
func (h *InventarioHandler) ListMovimientos(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	desde, err := parseFecha(c.Query("desde"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("VALIDATION", "desde inválido, usar RFC 3339"))
	}
	hasta, err := parseFecha(c.Query("hasta"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("VALIDATION", "hasta inválido, usar RFC 3339"))
	}

	itemID := c.Query("item_id")
	var list []dto.MovimientoResponse
	if itemID != "" {
		list, err = h.movimientos.ListByItem(itemID, c.Query("tipo_item"), desde, hasta, limit, offset)
	} else {
		list, err = h.movimientos.List(desde, hasta, limit, offset)
	}
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "movimientos": list})
}

// parseFecha parsea un query param de fecha opcional.
func parseFecha(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ajusteError mapea los errores del motor de ajustes a HTTP.
func ajusteError(c *fiber.Ctx, err error) error {
	var compErr *domain.ComponentStockError
	if errors.As(err, &compErr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError(
			"INSUFFICIENT_COMPONENT",
			fmt.Sprintf("stock insuficiente del componente %s", compErr.BienNombre),
		))
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("VALIDATION", "datos inválidos"))
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.NewError("NOT_FOUND", "bien o kit no encontrado"))
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INSUFFICIENT_STOCK", "stock insuficiente"))
	}
	return internalError(c, err)
}
