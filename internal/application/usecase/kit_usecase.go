package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/deposito-pro/internal/application/dto"
	"github.com/tu-usuario/deposito-pro/internal/domain"
	"github.com/tu-usuario/deposito-pro/internal/domain/entity"
	"github.com/tu-usuario/deposito-pro/internal/domain/repository"
)

// KitUseCase CRUD de kits. La composición se valida acá (mínimo 2 componentes
// distintos); la cascada de stock vive en el motor de ajustes.
type KitUseCase struct {
	repo     repository.KitRepository
	bienRepo repository.BienRepository
}

// NewKitUseCase construye el caso de uso.
func NewKitUseCase(repo repository.KitRepository, bienRepo repository.BienRepository) *KitUseCase {
	return &KitUseCase{repo: repo, bienRepo: bienRepo}
}

// Create da de alta un kit con sus componentes.
func (uc *KitUseCase) Create(in dto.CreateKitRequest) (*dto.KitResponse, error) {
	if in.Codigo == "" || in.Nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	componentes, err := uc.validarComponentes(in.Componentes)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	kit := &entity.Kit{
		ID:          uuid.New().String(),
		Codigo:      in.Codigo,
		Nombre:      in.Nombre,
		Componentes: componentes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(kit); err != nil {
		return nil, err
	}
	return toKitResponse(kit), nil
}

// GetByID devuelve un kit con componentes o nil si no existe.
func (uc *KitUseCase) GetByID(id string) (*dto.KitResponse, error) {
	kit, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if kit == nil {
		return nil, nil
	}
	return toKitResponse(kit), nil
}

// List devuelve una página de kits.
func (uc *KitUseCase) List(limit, offset int) ([]dto.KitResponse, error) {
	kits, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.KitResponse, 0, len(kits))
	for _, k := range kits {
		out = append(out, *toKitResponse(k))
	}
	return out, nil
}

// Update modifica nombre y/o composición del kit.
func (uc *KitUseCase) Update(id string, in dto.UpdateKitRequest) (*dto.KitResponse, error) {
	kit, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if kit == nil {
		return nil, domain.ErrNotFound
	}
	if in.Nombre != "" {
		kit.Nombre = in.Nombre
	}
	if in.Componentes != nil {
		componentes, err := uc.validarComponentes(in.Componentes)
		if err != nil {
			return nil, err
		}
		kit.Componentes = componentes
	}
	kit.UpdatedAt = time.Now()
	if err := uc.repo.Update(kit); err != nil {
		return nil, err
	}
	return toKitResponse(kit), nil
}

// Delete elimina un kit y sus componentes.
func (uc *KitUseCase) Delete(id string) error {
	kit, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if kit == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// validarComponentes exige mínimo 2 componentes, sin bienes repetidos,
// cantidades positivas y bienes existentes.
func (uc *KitUseCase) validarComponentes(in []dto.KitComponenteDTO) ([]entity.KitComponente, error) {
	if len(in) < entity.MinComponentes {
		return nil, domain.ErrInvalidInput
	}
	vistos := make(map[string]struct{}, len(in))
	componentes := make([]entity.KitComponente, 0, len(in))
	for _, c := range in {
		if c.BienID == "" || !c.CantidadPorKit.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if _, ok := vistos[c.BienID]; ok {
			return nil, domain.ErrDuplicate
		}
		vistos[c.BienID] = struct{}{}
		bien, err := uc.bienRepo.GetByID(c.BienID)
		if err != nil {
			return nil, err
		}
		if bien == nil {
			return nil, domain.ErrNotFound
		}
		componentes = append(componentes, entity.KitComponente{
			BienID:         c.BienID,
			CantidadPorKit: c.CantidadPorKit,
		})
	}
	return componentes, nil
}

func toKitResponse(k *entity.Kit) *dto.KitResponse {
	componentes := make([]dto.KitComponenteDTO, 0, len(k.Componentes))
	for _, c := range k.Componentes {
		componentes = append(componentes, dto.KitComponenteDTO{
			BienID:         c.BienID,
			CantidadPorKit: c.CantidadPorKit,
		})
	}
	return &dto.KitResponse{
		ID:          k.ID,
		Codigo:      k.Codigo,
		Nombre:      k.Nombre,
		StockActual: k.StockActual,
		Componentes: componentes,
		CreatedAt:   k.CreatedAt,
		UpdatedAt:   k.UpdatedAt,
	}
}
