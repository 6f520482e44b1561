package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var stepSchema = MustSchema(`{
	"type": "object",
	"required": ["step"],
	"properties": {"step": {"type": "integer", "minimum": 0}}
}`)

func TestValidateBody(t *testing.T) {
	assert.NoError(t, ValidateBody(stepSchema, []byte(`{"step": 2}`)))

	for name, body := range map[string]string{
		"empty":     ``,
		"malformed": `{"step":`,
		"string":    `{"step": "x"}`,
		"negative":  `{"step": -1}`,
		"missing":   `{}`,
		"fraction":  `{"step": 1.5}`,
	} {
		t.Run(name, func(t *testing.T) {
			err := ValidateBody(stepSchema, []byte(body))
			require.Error(t, err)
			assert.True(t, errx.IsCode(err, CodeInvalidBody))
		})
	}
}

func TestMustSchemaPanics(t *testing.T) {
	assert.Panics(t, func() { MustSchema(`{"type": 12}`) })
}

func TestErrorHandler(t *testing.T) {
	registry := errx.NewRegistry("HTTPX_TEST")
	notFound := registry.Register("MISSING", errx.TypeNotFound, http.StatusNotFound, "Thing not found")
	broken := registry.Register("BROKEN", errx.TypeInternal, http.StatusInternalServerError, "db password is hunter2")

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/typed", func(c *fiber.Ctx) error { return registry.New(notFound) })
	app.Get("/internal", func(c *fiber.Ctx) error { return registry.New(broken) })
	app.Get("/plain", func(c *fiber.Ctx) error { return errors.New("boom") })

	tests := []struct {
		path      string
		status    int
		wantError string
	}{
		{"/typed", http.StatusNotFound, "Thing not found"},
		{"/internal", http.StatusInternalServerError, "Internal Server Error"},
		{"/plain", http.StatusInternalServerError, "Internal Server Error"},
		{"/nowhere", http.StatusNotFound, "Cannot GET /nowhere"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantError, body["error"])
		})
	}
}
