package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBienRequest body para POST /api/bienes.
type CreateBienRequest struct {
	Codigo          string           `json:"codigo"`
	Nombre          string           `json:"nombre"`
	Tipo            string           `json:"tipo,omitempty"`
	CategoriaID     string           `json:"categoria_id,omitempty"`
	FamiliaID       string           `json:"familia_id,omitempty"`
	UnidadMedida    string           `json:"unidad_medida,omitempty"`
	CantidadCritica *decimal.Decimal `json:"cantidad_critica,omitempty"`
	Precio          decimal.Decimal  `json:"precio,omitempty"`
}

// UpdateBienRequest body para PUT /api/bienes/:id. No permite tocar el stock:
// el stock solo se muta vía ajustes/salidas.
type UpdateBienRequest struct {
	Nombre          string           `json:"nombre,omitempty"`
	Tipo            string           `json:"tipo,omitempty"`
	CategoriaID     string           `json:"categoria_id,omitempty"`
	FamiliaID       string           `json:"familia_id,omitempty"`
	UnidadMedida    string           `json:"unidad_medida,omitempty"`
	CantidadCritica *decimal.Decimal `json:"cantidad_critica,omitempty"`
	Precio          *decimal.Decimal `json:"precio,omitempty"`
}

// BienResponse representación de un bien.
type BienResponse struct {
	ID              string           `json:"id"`
	Codigo          string           `json:"codigo"`
	Nombre          string           `json:"nombre"`
	Tipo            string           `json:"tipo,omitempty"`
	CategoriaID     string           `json:"categoria_id,omitempty"`
	FamiliaID       string           `json:"familia_id,omitempty"`
	UnidadMedida    string           `json:"unidad_medida,omitempty"`
	StockActual     decimal.Decimal  `json:"stock_actual"`
	CantidadCritica *decimal.Decimal `json:"cantidad_critica,omitempty"`
	Precio          decimal.Decimal  `json:"precio"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// BienListResponse listado paginado de bienes.
type BienListResponse struct {
	Items []BienResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
