package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de item sobre los que se registran movimientos.
const (
	TipoItemBien = "BIEN"
	TipoItemKit  = "KIT"
)

// Tipos de movimiento de stock.
const (
	TipoAjusteEntrada = "AJUSTE_ENTRADA"
	TipoAjusteSalida  = "AJUSTE_SALIDA"
	TipoSalida        = "SALIDA" // egreso operativo (no es un ajuste contable)
)

// Movimiento es una entrada inmutable del ledger de stock: cada mutación
// registra la foto antes/después. Nunca se actualiza ni se borra.
type Movimiento struct {
	ID            string
	ItemID        string
	TipoItem      string // BIEN | KIT
	TipoMovimiento string // AJUSTE_ENTRADA | AJUSTE_SALIDA | SALIDA
	Cantidad      decimal.Decimal // siempre positiva; el tipo da la dirección
	StockAnterior decimal.Decimal
	StockNuevo    decimal.Decimal
	AlmacenID     string // opcional, metadato de ubicación
	Responsable   string
	Fecha         time.Time
	Observaciones string
	CreatedAt     time.Time
	CreatedBy     string // UserID
}

// EsEntrada indica si el tipo de movimiento suma stock.
func EsEntrada(tipo string) bool { return tipo == TipoAjusteEntrada }

// TipoMovimientoValido valida el tipo contra el catálogo conocido.
func TipoMovimientoValido(tipo string) bool {
	switch tipo {
	case TipoAjusteEntrada, TipoAjusteSalida, TipoSalida:
		return true
	}
	return false
}
