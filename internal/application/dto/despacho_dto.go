package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegistrarDespachoRequest body para POST /api/despachos/nuevo.
type RegistrarDespachoRequest struct {
	OrdenVentaID  string   `json:"ordenVentaId"`
	Codigos       []string `json:"codigos"`
	Responsable   string   `json:"responsable,omitempty"`
	Observaciones string   `json:"observaciones,omitempty"`
}

// RegistrarDespachoResponse resultado del despacho.
type RegistrarDespachoResponse struct {
	Success             bool     `json:"success"`
	DespachoID          string   `json:"despacho_id"`
	BolsonesDespachados int      `json:"bolsonesDespachados"`
	OrdenCompleta       bool     `json:"ordenCompleta"`
	Advertencias        []string `json:"advertencias,omitempty"` // ej: sobre-despacho de un producto
}

// BolsonDTO representación de un bolsón en respuestas.
type BolsonDTO struct {
	ID         string          `json:"id"`
	Codigo     string          `json:"codigo"`
	Producto   string          `json:"producto"`
	Peso       decimal.Decimal `json:"peso"`
	Precinto   string          `json:"precinto"`
	Despachado bool            `json:"despachado"`
	CreatedAt  time.Time       `json:"created_at"`
}

// VerificarBolsonResponse respuesta de GET /api/despachos/verificar-bolson/:codigo.
type VerificarBolsonResponse struct {
	Success    bool       `json:"success"`
	Despachado bool       `json:"despachado"`
	Bolson     *BolsonDTO `json:"bolson"`
}

// CreateBolsonRequest body para POST /api/bolsones (producción / parte diario).
type CreateBolsonRequest struct {
	Producto string          `json:"producto"`
	Peso     decimal.Decimal `json:"peso"`
	Precinto string          `json:"precinto"`
}

// DespachoResponse representación de un despacho registrado.
type DespachoResponse struct {
	ID            string    `json:"id"`
	OrdenID       string    `json:"orden_id"`
	Codigos       []string  `json:"codigos"`
	Responsable   string    `json:"responsable"`
	Observaciones string    `json:"observaciones,omitempty"`
	Fecha         time.Time `json:"fecha"`
}
