package despacho

import (
	"context"
	"fmt"

	"github.com/tu-usuario/deposito-pro/internal/domain"
	"github.com/tu-usuario/deposito-pro/internal/domain/entity"
	"github.com/tu-usuario/deposito-pro/internal/domain/repository"
)

// RemitoPDFGenerator renderiza el remito de un despacho.
// La implementación vive en infrastructure/pdf.
type RemitoPDFGenerator interface {
	GenerateRemitoPDF(
		ctx context.Context,
		despacho *entity.Despacho,
		orden *entity.OrdenVenta,
		cliente *entity.Cliente,
		bolsones []*entity.Bolson,
	) ([]byte, error)
}

// RemitoUseCase arma los datos del remito y delega el render al generador.
type RemitoUseCase struct {
	despachoRepo repository.DespachoRepository
	ordenRepo    repository.OrdenVentaRepository
	clienteRepo  repository.ClienteRepository
	bolsonRepo   repository.BolsonRepository
	generator    RemitoPDFGenerator
}

// NewRemitoUseCase construye el caso de uso.
func NewRemitoUseCase(
	despachoRepo repository.DespachoRepository,
	ordenRepo repository.OrdenVentaRepository,
	clienteRepo repository.ClienteRepository,
	bolsonRepo repository.BolsonRepository,
	generator RemitoPDFGenerator,
) *RemitoUseCase {
	return &RemitoUseCase{
		despachoRepo: despachoRepo,
		ordenRepo:    ordenRepo,
		clienteRepo:  clienteRepo,
		bolsonRepo:   bolsonRepo,
		generator:    generator,
	}
}

// GenerarRemito devuelve los bytes del PDF del remito de un despacho.
func (uc *RemitoUseCase) GenerarRemito(ctx context.Context, despachoID string) ([]byte, error) {
	despacho, err := uc.despachoRepo.GetByID(despachoID)
	if err != nil {
		return nil, err
	}
	if despacho == nil {
		return nil, domain.ErrNotFound
	}
	orden, err := uc.ordenRepo.GetByID(despacho.OrdenID)
	if err != nil {
		return nil, err
	}
	if orden == nil {
		return nil, fmt.Errorf("orden %s del despacho no encontrada: %w", despacho.OrdenID, domain.ErrNotFound)
	}
	cliente, err := uc.clienteRepo.GetByID(orden.ClienteID)
	if err != nil {
		return nil, err
	}
	bolsones := make([]*entity.Bolson, 0, len(despacho.Codigos))
	for _, codigo := range despacho.Codigos {
		b, err := uc.bolsonRepo.GetByCodigo(codigo)
		if err != nil {
			return nil, err
		}
		if b != nil {
			bolsones = append(bolsones, b)
		}
	}
	return uc.generator.GenerateRemitoPDF(ctx, despacho, orden, cliente, bolsones)
}
