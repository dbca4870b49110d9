package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/tu-usuario/deposito-pro/internal/application/dto"
)

// internalError responde un 500 con mensaje genérico. La causa completa se
// registra acá: los errores de infraestructura no viajan al cliente.
func internalError(c *fiber.Ctx, err error) error {
	log.Error().
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error no clasificado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.NewError("INTERNAL", "error interno del servidor"))
}
