package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// KitComponente vincula un bien al kit con su cantidad por unidad de kit.
type KitComponente struct {
	BienID          string
	CantidadPorKit  decimal.Decimal
}

// Kit representa un artículo compuesto. Su stock es autoritativo pero cascadeado:
// cada mutación del stock del kit propaga CantidadPorKit × delta a cada componente
// en la misma transacción. No se recalcula desde los componentes al leer; si un
// componente se ajusta directo, el stock del kit no cambia (el ledger lo audita).
type Kit struct {
	ID          string
	Codigo      string
	Nombre      string
	StockActual decimal.Decimal
	Componentes []KitComponente // mínimo 2, sin bienes repetidos
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MinComponentes cantidad mínima de componentes distintos de un kit.
const MinComponentes = 2
