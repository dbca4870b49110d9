package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/deposito-pro/internal/application/dto"
	"github.com/tu-usuario/deposito-pro/internal/domain"
	"github.com/tu-usuario/deposito-pro/internal/domain/entity"
	"github.com/tu-usuario/deposito-pro/internal/domain/repository"
)

// BienUseCase CRUD de bienes. El stock nunca se escribe por acá:
// StockActual arranca en cero y solo lo muta el motor de ajustes.
type BienUseCase struct {
	repo repository.BienRepository
}

// NewBienUseCase construye el caso de uso.
func NewBienUseCase(repo repository.BienRepository) *BienUseCase {
	return &BienUseCase{repo: repo}
}

// Create da de alta un bien. Codigo y Nombre obligatorios; Codigo único.
func (uc *BienUseCase) Create(in dto.CreateBienRequest) (*dto.BienResponse, error) {
	if in.Codigo == "" || in.Nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	bien := &entity.Bien{
		ID:              uuid.New().String(),
		Codigo:          in.Codigo,
		Nombre:          in.Nombre,
		Tipo:            in.Tipo,
		CategoriaID:     in.CategoriaID,
		FamiliaID:       in.FamiliaID,
		UnidadMedida:    in.UnidadMedida,
		CantidadCritica: in.CantidadCritica,
		Precio:          in.Precio,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(bien); err != nil {
		return nil, err
	}
	return toBienResponse(bien), nil
}

// GetByID devuelve un bien o nil si no existe.
func (uc *BienUseCase) GetByID(id string) (*dto.BienResponse, error) {
	bien, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if bien == nil {
		return nil, nil
	}
	return toBienResponse(bien), nil
}

// List devuelve una página de bienes.
func (uc *BienUseCase) List(limit, offset int) (*dto.BienListResponse, error) {
	bienes, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BienResponse, 0, len(bienes))
	for _, b := range bienes {
		items = append(items, *toBienResponse(b))
	}
	return &dto.BienListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update modifica datos descriptivos del bien (no el stock).
func (uc *BienUseCase) Update(id string, in dto.UpdateBienRequest) (*dto.BienResponse, error) {
	bien, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if bien == nil {
		return nil, domain.ErrNotFound
	}
	if in.Nombre != "" {
		bien.Nombre = in.Nombre
	}
	if in.Tipo != "" {
		bien.Tipo = in.Tipo
	}
	if in.CategoriaID != "" {
		bien.CategoriaID = in.CategoriaID
	}
	if in.FamiliaID != "" {
		bien.FamiliaID = in.FamiliaID
	}
	if in.UnidadMedida != "" {
		bien.UnidadMedida = in.UnidadMedida
	}
	if in.CantidadCritica != nil {
		bien.CantidadCritica = in.CantidadCritica
	}
	if in.Precio != nil {
		bien.Precio = *in.Precio
	}
	bien.UpdatedAt = time.Now()
	if err := uc.repo.Update(bien); err != nil {
		return nil, err
	}
	return toBienResponse(bien), nil
}

// Delete elimina un bien. Falla con ErrConflict si está referenciado
// por componentes de kit o por movimientos del ledger.
func (uc *BienUseCase) Delete(id string) error {
	bien, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if bien == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toBienResponse(b *entity.Bien) *dto.BienResponse {
	return &dto.BienResponse{
		ID:              b.ID,
		Codigo:          b.Codigo,
		Nombre:          b.Nombre,
		Tipo:            b.Tipo,
		CategoriaID:     b.CategoriaID,
		FamiliaID:       b.FamiliaID,
		UnidadMedida:    b.UnidadMedida,
		StockActual:     b.StockActual,
		CantidadCritica: b.CantidadCritica,
		Precio:          b.Precio,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
