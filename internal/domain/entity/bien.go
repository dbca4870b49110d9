package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bien representa un artículo con stock propio (materia prima, insumo o producto).
// StockActual se muta únicamente vía el motor de ajustes/salidas; nunca se escribe directo.
type Bien struct {
	ID              string
	Codigo          string
	Nombre          string
	Tipo            string
	CategoriaID     string
	FamiliaID       string
	UnidadMedida    string
	StockActual     decimal.Decimal
	CantidadCritica *decimal.Decimal // nil = sin umbral de alerta
	Precio          decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EsCritico indica si el stock actual está en o por debajo del umbral crítico.
func (b *Bien) EsCritico() bool {
	if b.CantidadCritica == nil {
		return false
	}
	return b.StockActual.LessThanOrEqual(*b.CantidadCritica)
}
