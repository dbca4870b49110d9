package repository

import "github.com/tu-usuario/deposito-pro/internal/domain/entity"

// BolsonRepository define el puerto de persistencia para bolsones.
// La unicidad de Codigo la garantiza un índice único en la tabla.
type BolsonRepository interface {
	Create(bolson *entity.Bolson) error
	GetByID(id string) (*entity.Bolson, error)
	GetByCodigo(codigo string) (*entity.Bolson, error)
	// GetByCodigoForUpdate bloquea la fila del bolsón (SELECT FOR UPDATE).
	GetByCodigoForUpdate(codigo string) (*entity.Bolson, error)
	// MarcarDespachado marca despachado=true; usar solo dentro de la tx del despacho.
	MarcarDespachado(id string) error
	List(soloDisponibles bool, limit, offset int) ([]*entity.Bolson, error)
}
