package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto referencial con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")

	// Despacho
	ErrBolsonNotFound        = errors.New("bolsón no encontrado")
	ErrAlreadyDispatched     = errors.New("el bolsón ya fue despachado")
	ErrDuplicateCode         = errors.New("código repetido en la solicitud")
	ErrProductNotInOrder     = errors.New("el producto del bolsón no está en la orden")
	ErrOrderNotOpen          = errors.New("la orden no admite despachos en su estado actual")
	ErrInsufficientComponent = errors.New("stock insuficiente en componente del kit")
)

// ComponentStockError señala qué componente del kit impidió un descuento.
// Envuelve ErrInsufficientComponent para que errors.Is siga funcionando.
type ComponentStockError struct {
	BienID     string
	BienNombre string
}

func (e *ComponentStockError) Error() string {
	return fmt.Sprintf("stock insuficiente del componente %q (%s)", e.BienNombre, e.BienID)
}

func (e *ComponentStockError) Unwrap() error { return ErrInsufficientComponent }
