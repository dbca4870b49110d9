package dto

import "time"

// CreateClienteRequest body para POST /api/clientes.
type CreateClienteRequest struct {
	Nombre    string `json:"nombre"`
	CUIT      string `json:"cuit,omitempty"`
	Email     string `json:"email,omitempty"`
	Telefono  string `json:"telefono,omitempty"`
	Direccion string `json:"direccion,omitempty"`
}

// UpdateClienteRequest body para PUT /api/clientes/:id.
type UpdateClienteRequest struct {
	Nombre    string `json:"nombre,omitempty"`
	CUIT      string `json:"cuit,omitempty"`
	Email     string `json:"email,omitempty"`
	Telefono  string `json:"telefono,omitempty"`
	Direccion string `json:"direccion,omitempty"`
}

// ClienteResponse representación de un cliente.
type ClienteResponse struct {
	ID        string    `json:"id"`
	Nombre    string    `json:"nombre"`
	CUIT      string    `json:"cuit,omitempty"`
	Email     string    `json:"email,omitempty"`
	Telefono  string    `json:"telefono,omitempty"`
	Direccion string    `json:"direccion,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateAlmacenRequest body para POST /api/almacenes.
type CreateAlmacenRequest struct {
	Nombre    string `json:"nombre"`
	Direccion string `json:"direccion,omitempty"`
}

// UpdateAlmacenRequest body para PUT /api/almacenes/:id.
type UpdateAlmacenRequest struct {
	Nombre    string `json:"nombre,omitempty"`
	Direccion string `json:"direccion,omitempty"`
}

// AlmacenResponse representación de un almacén.
type AlmacenResponse struct {
	ID        string    `json:"id"`
	Nombre    string    `json:"nombre"`
	Direccion string    `json:"direccion,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
