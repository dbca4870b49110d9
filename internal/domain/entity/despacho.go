package entity

import "time"

// Despacho registra un lote de bolsones despachados contra una orden de venta.
// Se crea de forma atómica: o todos los bolsones del lote quedan marcados
// y las líneas actualizadas, o nada.
type Despacho struct {
	ID            string
	OrdenID       string
	Codigos       []string // códigos de bolsón incluidos en el lote
	Responsable   string
	Observaciones string
	Fecha         time.Time
	CreatedBy     string
}
