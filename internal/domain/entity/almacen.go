package entity

import "time"

// Almacen es una ubicación física de depósito. Los movimientos lo referencian
// como metadato; el stock autoritativo vive en el bien/kit.
type Almacen struct {
	ID        string
	Nombre    string
	Direccion string
	CreatedAt time.Time
	UpdatedAt time.Time
}
