package repository

import "github.com/tu-usuario/deposito-pro/internal/domain/entity"

// DespachoRepository define el puerto de persistencia para despachos.
type DespachoRepository interface {
	Create(despacho *entity.Despacho) error
	GetByID(id string) (*entity.Despacho, error)
	ListByOrden(ordenID string) ([]*entity.Despacho, error)
}
