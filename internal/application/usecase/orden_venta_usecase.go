package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/deposito-pro/internal/application/dto"
	"github.com/tu-usuario/deposito-pro/internal/domain"
	"github.com/tu-usuario/deposito-pro/internal/domain/entity"
	"github.com/tu-usuario/deposito-pro/internal/domain/repository"
)

// OrdenVentaUseCase alta y consulta de órdenes de venta. El descuento de
// líneas es exclusivo del despacho; acá solo se crean y se leen.
type OrdenVentaUseCase struct {
	repo        repository.OrdenVentaRepository
	clienteRepo repository.ClienteRepository
}

// NewOrdenVentaUseCase construye el caso de uso.
func NewOrdenVentaUseCase(repo repository.OrdenVentaRepository, clienteRepo repository.ClienteRepository) *OrdenVentaUseCase {
	return &OrdenVentaUseCase{repo: repo, clienteRepo: clienteRepo}
}

// Create da de alta una orden ABIERTA. Cada línea arranca con
// cantidad_restante = cantidad_inicial.
func (uc *OrdenVentaUseCase) Create(in dto.CreateOrdenRequest) (*dto.OrdenResponse, error) {
	if in.ClienteID == "" || len(in.Lineas) == 0 {
		return nil, domain.ErrInvalidInput
	}
	cliente, err := uc.clienteRepo.GetByID(in.ClienteID)
	if err != nil {
		return nil, err
	}
	if cliente == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	fecha := now
	if in.Fecha != nil {
		fecha = *in.Fecha
	}
	ordenID := uuid.New().String()
	lineas := make([]entity.LineaOrden, 0, len(in.Lineas))
	vistos := make(map[string]struct{}, len(in.Lineas))
	for _, l := range in.Lineas {
		if l.Producto == "" || !l.CantidadInicial.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if _, ok := vistos[l.Producto]; ok {
			return nil, domain.ErrDuplicate
		}
		vistos[l.Producto] = struct{}{}
		lineas = append(lineas, entity.LineaOrden{
			ID:               uuid.New().String(),
			OrdenID:          ordenID,
			Producto:         l.Producto,
			CantidadInicial:  l.CantidadInicial,
			CantidadRestante: l.CantidadInicial,
		})
	}

	orden := &entity.OrdenVenta{
		ID:        ordenID,
		Numero:    fmt.Sprintf("OV-%s-%s", fecha.Format("20060102"), ordenID[:8]),
		ClienteID: in.ClienteID,
		Fecha:     fecha,
		Estado:    entity.EstadoAbierta,
		Lineas:    lineas,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(orden); err != nil {
		return nil, err
	}
	return toOrdenResponse(orden), nil
}

// GetByID devuelve una orden con líneas o nil si no existe.
func (uc *OrdenVentaUseCase) GetByID(id string) (*dto.OrdenResponse, error) {
	orden, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if orden == nil {
		return nil, nil
	}
	return toOrdenResponse(orden), nil
}

// List devuelve una página de órdenes, opcionalmente filtrada por estado.
func (uc *OrdenVentaUseCase) List(estado string, limit, offset int) (*dto.OrdenListResponse, error) {
	ordenes, err := uc.repo.List(estado, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrdenResponse, 0, len(ordenes))
	for _, o := range ordenes {
		items = append(items, *toOrdenResponse(o))
	}
	return &dto.OrdenListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Completar transiciona EN_LOGISTICA → COMPLETA (entrega confirmada por logística).
func (uc *OrdenVentaUseCase) Completar(id string) (*dto.OrdenResponse, error) {
	orden, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if orden == nil {
		return nil, domain.ErrNotFound
	}
	if orden.Estado != entity.EstadoEnLogistica {
		return nil, domain.ErrConflict
	}
	if err := uc.repo.UpdateEstado(id, entity.EstadoCompleta); err != nil {
		return nil, err
	}
	orden.Estado = entity.EstadoCompleta
	return toOrdenResponse(orden), nil
}

func toOrdenResponse(o *entity.OrdenVenta) *dto.OrdenResponse {
	lineas := make([]dto.LineaOrdenDTO, 0, len(o.Lineas))
	for _, l := range o.Lineas {
		lineas = append(lineas, dto.LineaOrdenDTO{
			ID:               l.ID,
			Producto:         l.Producto,
			CantidadInicial:  l.CantidadInicial,
			CantidadRestante: l.CantidadRestante,
		})
	}
	return &dto.OrdenResponse{
		ID:        o.ID,
		Numero:    o.Numero,
		ClienteID: o.ClienteID,
		Fecha:     o.Fecha,
		Estado:    o.Estado,
		Lineas:    lineas,
		CreatedAt: o.CreatedAt,
	}
}
