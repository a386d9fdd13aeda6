// Package api implements the JSON HTTP handlers of both services.
package api

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"hackhub/internal/rapidapi"
)

// jsonOK returns a 200 response with data as the body.
func jsonOK(c fiber.Ctx, data any) error {
	return c.JSON(data)
}

// jsonCreated returns a 201 response with data as the body.
func jsonCreated(c fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

// noContent returns an empty 204 response.
func noContent(c fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "error",
		"error":  message,
	})
}

// upstreamError maps a failed upstream call to a response. A non-2xx upstream
// answer is passed through with its status code and body.
func upstreamError(c fiber.Ctx, action string, err error, invalid error) error {
	var se *rapidapi.StatusError
	switch {
	case errors.As(err, &se):
		status := se.StatusCode
		if status < 400 {
			status = fiber.StatusBadGateway
		}
		return jsonError(c, status, fmt.Sprintf("error %s: %s", action, se.Body))
	case errors.Is(err, invalid):
		return jsonError(c, fiber.StatusInternalServerError, err.Error())
	default:
		return jsonError(c, fiber.StatusInternalServerError, "an unexpected error occurred: "+err.Error())
	}
}
