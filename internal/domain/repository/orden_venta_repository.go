package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/deposito-pro/internal/domain/entity"
)

// OrdenVentaRepository define el puerto de persistencia para órdenes de venta y sus líneas.
type OrdenVentaRepository interface {
	Create(orden *entity.OrdenVenta) error
	GetByID(id string) (*entity.OrdenVenta, error)
	// GetForUpdate obtiene la orden con líneas y bloquea la fila de la orden
	// y las de sus líneas (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.OrdenVenta, error)
	List(estado string, limit, offset int) ([]*entity.OrdenVenta, error)
	UpdateEstado(id, estado string) error
	// UpdateLineaRestante escribe la nueva cantidad restante de una línea.
	UpdateLineaRestante(lineaID string, restante decimal.Decimal) error
}
