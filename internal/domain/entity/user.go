package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin    = "admin"
	RoleDeposito = "deposito"
	RoleVentas   = "ventas"
)

// User usuario de la aplicación.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin | deposito | ventas
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
