package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AjusteRequest body para POST /api/ajustes-inventario.
type AjusteRequest struct {
	TipoItem       string          `json:"tipo_item"`       // BIEN | KIT
	ItemID         string          `json:"item_id"`
	TipoMovimiento string          `json:"tipo_movimiento"` // AJUSTE_ENTRADA | AJUSTE_SALIDA
	Cantidad       decimal.Decimal `json:"cantidad"`
	AlmacenID      string          `json:"almacen_id,omitempty"`
	Responsable    string          `json:"responsable"`
	Fecha          *time.Time      `json:"fecha,omitempty"`
	Observaciones  string          `json:"observaciones,omitempty"`
}

// AjusteResponse resultado de un ajuste aplicado.
type AjusteResponse struct {
	Success       bool            `json:"success"`
	StockAnterior decimal.Decimal `json:"stock_anterior"`
	StockNuevo    decimal.Decimal `json:"stock_nuevo"`
	Diferencia    decimal.Decimal `json:"diferencia"`
}

// SalidaRequest body para POST /api/salidas/procesar.
type SalidaRequest struct {
	ItemID            string          `json:"item_id"`
	TipoItem          string          `json:"tipo_item"`
	Cantidad          decimal.Decimal `json:"cantidad"`
	ResponsableSalida string          `json:"responsable_salida"`
	Observaciones     string          `json:"observaciones,omitempty"`
}

// KitStockRequest body para incrementar/descontar stock de un kit.
type KitStockRequest struct {
	Cantidad decimal.Decimal `json:"cantidad"`
}

// MovimientoResponse una fila del ledger de movimientos.
type MovimientoResponse struct {
	ID             string          `json:"id"`
	ItemID         string          `json:"item_id"`
	TipoItem       string          `json:"tipo_item"`
	TipoMovimiento string          `json:"tipo_movimiento"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	StockAnterior  decimal.Decimal `json:"stock_anterior"`
	StockNuevo     decimal.Decimal `json:"stock_nuevo"`
	AlmacenID      string          `json:"almacen_id,omitempty"`
	Responsable    string          `json:"responsable"`
	Fecha          time.Time       `json:"fecha"`
	Observaciones  string          `json:"observaciones,omitempty"`
}

// BienCriticoDTO un bien en o por debajo de su cantidad crítica.
type BienCriticoDTO struct {
	BienID          string          `json:"bien_id"`
	Codigo          string          `json:"codigo"`
	Nombre          string          `json:"nombre"`
	StockActual     decimal.Decimal `json:"stock_actual"`
	CantidadCritica decimal.Decimal `json:"cantidad_critica"`
	Faltante        decimal.Decimal `json:"faltante"` // CantidadCritica - StockActual, mínimo 0
}
