package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de venta.
const (
	EstadoAbierta     = "ABIERTA"
	EstadoEnLogistica = "EN_LOGISTICA"
	EstadoCompleta    = "COMPLETA"
	EstadoAnulada     = "ANULADA"
)

// LineaOrden es una línea de producto pedida en una orden de venta.
// Invariante: CantidadRestante <= CantidadInicial; solo la reduce el despacho.
type LineaOrden struct {
	ID               string
	OrdenID          string
	Producto         string
	CantidadInicial  decimal.Decimal // kg
	CantidadRestante decimal.Decimal // kg
}

// OrdenVenta agrupa líneas de producto pedidas por un cliente.
type OrdenVenta struct {
	ID        string
	Numero    string
	ClienteID string
	Fecha     time.Time
	Estado    string
	Lineas    []LineaOrden
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AdmiteDespacho indica si la orden puede recibir despachos en su estado actual.
func (o *OrdenVenta) AdmiteDespacho() bool {
	return o.Estado == EstadoAbierta
}
