package entity

import "time"

// Cliente destinatario de órdenes de venta.
type Cliente struct {
	ID        string
	Nombre    string
	CUIT      string
	Email     string
	Telefono  string
	Direccion string
	CreatedAt time.Time
	UpdatedAt time.Time
}
