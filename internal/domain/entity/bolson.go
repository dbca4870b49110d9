package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bolson representa una unidad física embolsada de producto, con código de barras
// único generado al crearla. Se despacha como máximo una vez.
type Bolson struct {
	ID         string
	Codigo     string // único; impreso como code128 en la etiqueta
	Producto   string
	Peso       decimal.Decimal // kg
	Precinto   string
	Despachado bool
	CreatedAt  time.Time
	CreatedBy  string
}
