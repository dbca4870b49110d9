package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/deposito-pro/internal/application/dto"
	"github.com/tu-usuario/deposito-pro/internal/domain"
	"github.com/tu-usuario/deposito-pro/internal/domain/entity"
	"github.com/tu-usuario/deposito-pro/internal/domain/repository"
)

// AlmacenUseCase CRUD de almacenes.
type AlmacenUseCase struct {
	repo repository.AlmacenRepository
}

// NewAlmacenUseCase construye el caso de uso.
func NewAlmacenUseCase(repo repository.AlmacenRepository) *AlmacenUseCase {
	return &AlmacenUseCase{repo: repo}
}

// Create da de alta un almacén.
func (uc *AlmacenUseCase) Create(in dto.CreateAlmacenRequest) (*dto.AlmacenResponse, error) {
	if in.Nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	almacen := &entity.Almacen{
		ID:        uuid.New().String(),
		Nombre:    in.Nombre,
		Direccion: in.Direccion,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(almacen); err != nil {
		return nil, err
	}
	return toAlmacenResponse(almacen), nil
}

// GetByID devuelve un almacén o nil si no existe.
func (uc *AlmacenUseCase) GetByID(id string) (*dto.AlmacenResponse, error) {
	almacen, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if almacen == nil {
		return nil, nil
	}
	return toAlmacenResponse(almacen), nil
}

// List devuelve una página de almacenes.
func (uc *AlmacenUseCase) List(limit, offset int) ([]dto.AlmacenResponse, error) {
	almacenes, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AlmacenResponse, 0, len(almacenes))
	for _, a := range almacenes {
		out = append(out, *toAlmacenResponse(a))
	}
	return out, nil
}

// Update modifica un almacén.
func (uc *AlmacenUseCase) Update(id string, in dto.UpdateAlmacenRequest) (*dto.AlmacenResponse, error) {
	almacen, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if almacen == nil {
		return nil, nil
	}
	if in.Nombre != "" {
		almacen.Nombre = in.Nombre
	}
	if in.Direccion != "" {
		almacen.Direccion = in.Direccion
	}
	almacen.UpdatedAt = time.Now()
	if err := uc.repo.Update(almacen); err != nil {
		return nil, err
	}
	return toAlmacenResponse(almacen), nil
}

// Delete elimina un almacén. Falla con ErrConflict si tiene movimientos asociados.
func (uc *AlmacenUseCase) Delete(id string) error {
	almacen, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if almacen == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toAlmacenResponse(a *entity.Almacen) *dto.AlmacenResponse {
	return &dto.AlmacenResponse{
		ID:        a.ID,
		Nombre:    a.Nombre,
		Direccion: a.Direccion,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
