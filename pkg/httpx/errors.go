package httpx

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/errx"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/logx"
)

var ErrRegistry = errx.NewRegistry("REQUEST")

var (
	CodeInvalidBody = ErrRegistry.Register("INVALID_BODY", errx.TypeValidation, http.StatusBadRequest, "Invalid request body")
)

func ErrInvalidBody() *errx.Error { return ErrRegistry.New(CodeInvalidBody) }

// ErrorHandler converts errors returned by handlers into JSON responses.
// Server-side failures never leak their cause to the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{
			"error": e.Message,
			"code":  e.Code,
		})
	}

	if e, ok := errx.As(err); ok && e.HTTPStatus < http.StatusInternalServerError {
		return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
	}

	logx.With("method", c.Method(), "path", c.Path()).Errorf("Internal Server Error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"type":    errx.TypeInternal,
		"code":    "INTERNAL_ERROR",
		"message": "An unexpected error occurred",
	})
}
