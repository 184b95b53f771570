package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/neersanchay/internal/assessment"
	"github.com/i474232898/neersanchay/internal/estimate"
	"github.com/i474232898/neersanchay/internal/navigation"
	"github.com/i474232898/neersanchay/internal/store"
)

// ErrorHandler is the centralized error response.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	body := fiber.Map{
		"error":   true,
		"message": err.Error(),
	}

	var (
		fe   *fiber.Error
		verr *estimate.ValidationError
		cerr *navigation.CredentialError
	)
	switch {
	case errors.As(err, &fe):
		code = fe.Code
	case errors.As(err, &verr):
		code = fiber.StatusUnprocessableEntity
		body["message"] = navigation.MsgFillRequired
		body["fields"] = verr.Fields
	case errors.As(err, &cerr):
		code = fiber.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, navigation.ErrSubmissionInFlight),
		errors.Is(err, navigation.ErrLocateInFlight),
		errors.Is(err, navigation.ErrInvalidTransition),
		errors.Is(err, assessment.ErrDiscarded):
		code = fiber.StatusConflict
	}

	return c.Status(code).JSON(body)
}
