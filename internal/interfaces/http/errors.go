package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/company-admin/internal/application/dto"
	"github.com/jhoicas/company-admin/internal/domain"
)

// writeStatus traduce un error de escritura a su código HTTP.
func writeStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrEmailAlreadyExists), errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrStoreUnavailable):
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}

// writeFailure responde {success:false, error} para una escritura fallida.
func writeFailure(c *fiber.Ctx, err error) error {
	status := writeStatus(err)
	return c.Status(status).JSON(dto.MutationResponse{Success: false, Error: publicMessage(status, err)})
}

// readFailure responde un ErrorResponse para una lectura puntual fallida.
func readFailure(c *fiber.Ctx, err error) error {
	status := writeStatus(err)
	code := "INTERNAL"
	if status == fiber.StatusServiceUnavailable {
		code = "STORE_UNAVAILABLE"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: publicMessage(status, err)})
}

// publicMessage oculta el detalle de los errores 5xx; los 4xx se devuelven tal cual.
func publicMessage(status int, err error) string {
	switch {
	case status == fiber.StatusServiceUnavailable:
		return domain.ErrStoreUnavailable.Error()
	case status >= fiber.StatusInternalServerError:
		return "error interno"
	}
	return err.Error()
}

// readStatus 200 si la lectura tuvo éxito, 503 si el almacén falló.
func readStatus(success bool) int {
	if success {
		return fiber.StatusOK
	}
	return fiber.StatusServiceUnavailable
}

// paramID lee el parámetro :id como entero positivo.
func paramID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
