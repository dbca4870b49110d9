package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/deposito-pro/internal/application/dto"
	"github.com/tu-usuario/deposito-pro/internal/domain"
	"github.com/tu-usuario/deposito-pro/internal/domain/entity"
	"github.com/tu-usuario/deposito-pro/internal/domain/repository"
)

// EtiquetaPDFGenerator renderiza la etiqueta imprimible de un bolsón
// (código de barras incluido). La implementación vive en infrastructure/pdf.
type EtiquetaPDFGenerator interface {
	GenerateEtiquetaPDF(ctx context.Context, bolson *entity.Bolson) ([]byte, error)
}

// BolsonUseCase alta y consulta de bolsones (lado producción / parte diario).
// El código se genera acá y su unicidad la garantiza el índice único de la tabla.
type BolsonUseCase struct {
	repo      repository.BolsonRepository
	generator EtiquetaPDFGenerator
}

// NewBolsonUseCase construye el caso de uso.
func NewBolsonUseCase(repo repository.BolsonRepository, generator EtiquetaPDFGenerator) *BolsonUseCase {
	return &BolsonUseCase{repo: repo, generator: generator}
}

// Create registra un bolsón nuevo con código generado.
func (uc *BolsonUseCase) Create(userID string, in dto.CreateBolsonRequest) (*dto.BolsonDTO, error) {
	if in.Producto == "" || !in.Peso.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	bolson := &entity.Bolson{
		ID:        uuid.New().String(),
		Codigo:    generarCodigo(now),
		Producto:  in.Producto,
		Peso:      in.Peso,
		Precinto:  in.Precinto,
		CreatedAt: now,
		CreatedBy: userID,
	}
	if err := uc.repo.Create(bolson); err != nil {
		return nil, err
	}
	return toBolsonDTO(bolson), nil
}

// GetByID devuelve un bolsón o nil si no existe.
func (uc *BolsonUseCase) GetByID(id string) (*dto.BolsonDTO, error) {
	bolson, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if bolson == nil {
		return nil, nil
	}
	return toBolsonDTO(bolson), nil
}

// List devuelve bolsones; con soloDisponibles=true filtra los ya despachados.
func (uc *BolsonUseCase) List(soloDisponibles bool, limit, offset int) ([]dto.BolsonDTO, error) {
	bolsones, err := uc.repo.List(soloDisponibles, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BolsonDTO, 0, len(bolsones))
	for _, b := range bolsones {
		out = append(out, *toBolsonDTO(b))
	}
	return out, nil
}

// GenerarEtiqueta devuelve los bytes del PDF de la etiqueta de un bolsón.
func (uc *BolsonUseCase) GenerarEtiqueta(ctx context.Context, id string) ([]byte, error) {
	bolson, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if bolson == nil {
		return nil, domain.ErrBolsonNotFound
	}
	return uc.generator.GenerateEtiquetaPDF(ctx, bolson)
}

// generarCodigo arma un código legible y único: fecha + sufijo aleatorio
// derivado de un UUID. El índice único de la tabla es la garantía final.
func generarCodigo(now time.Time) string {
	sufijo := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("BOL-%s-%s", now.Format("20060102"), sufijo)
}

func toBolsonDTO(b *entity.Bolson) *dto.BolsonDTO {
	return &dto.BolsonDTO{
		ID:         b.ID,
		Codigo:     b.Codigo,
		Producto:   b.Producto,
		Peso:       b.Peso,
		Precinto:   b.Precinto,
		Despachado: b.Despachado,
		CreatedAt:  b.CreatedAt,
	}
}
