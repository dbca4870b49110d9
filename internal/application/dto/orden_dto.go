package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineaOrdenDTO línea de producto en una orden de venta.
type LineaOrdenDTO struct {
	ID               string          `json:"id,omitempty"`
	Producto         string          `json:"producto"`
	CantidadInicial  decimal.Decimal `json:"cantidad_inicial"`
	CantidadRestante decimal.Decimal `json:"cantidad_restante"`
}

// CreateOrdenRequest body para POST /api/ordenes-venta.
type CreateOrdenRequest struct {
	ClienteID string          `json:"cliente_id"`
	Fecha     *time.Time      `json:"fecha,omitempty"`
	Lineas    []LineaOrdenDTO `json:"lineas"` // solo producto y cantidad_inicial
}

// OrdenResponse representación de una orden de venta.
type OrdenResponse struct {
	ID        string          `json:"id"`
	Numero    string          `json:"numero"`
	ClienteID string          `json:"cliente_id"`
	Fecha     time.Time       `json:"fecha"`
	Estado    string          `json:"estado"`
	Lineas    []LineaOrdenDTO `json:"lineas"`
	CreatedAt time.Time       `json:"created_at"`
}

// OrdenListResponse listado paginado de órdenes.
type OrdenListResponse struct {
	Items []OrdenResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
