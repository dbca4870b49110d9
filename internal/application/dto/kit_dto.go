package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// KitComponenteDTO componente de un kit en requests y respuestas.
type KitComponenteDTO struct {
	BienID         string          `json:"bien_id"`
	CantidadPorKit decimal.Decimal `json:"cantidad_por_kit"`
}

// CreateKitRequest body para POST /api/kits. Mínimo 2 componentes distintos.
type CreateKitRequest struct {
	Codigo      string             `json:"codigo"`
	Nombre      string             `json:"nombre"`
	Componentes []KitComponenteDTO `json:"componentes"`
}

// UpdateKitRequest body para PUT /api/kits/:id.
type UpdateKitRequest struct {
	Nombre      string             `json:"nombre,omitempty"`
	Componentes []KitComponenteDTO `json:"componentes,omitempty"`
}

// KitResponse representación de un kit con sus componentes.
type KitResponse struct {
	ID          string             `json:"id"`
	Codigo      string             `json:"codigo"`
	Nombre      string             `json:"nombre"`
	StockActual decimal.Decimal    `json:"stock_actual"`
	Componentes []KitComponenteDTO `json:"componentes"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// KitStockResponse respuesta de incrementar/descontar stock.
type KitStockResponse struct {
	Success bool        `json:"success"`
	Kit     KitResponse `json:"kit"`
}
