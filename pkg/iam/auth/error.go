package auth

import (
	"net/http"

	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("AUTH")

var (
	CodeMissingToken      = ErrRegistry.Register("MISSING_TOKEN", errx.TypeAuthorization, http.StatusUnauthorized, "Missing bearer token")
	CodeInvalidToken      = ErrRegistry.Register("INVALID_TOKEN", errx.TypeAuthorization, http.StatusUnauthorized, "Invalid or expired token")
	CodeInsufficientScope = ErrRegistry.Register("INSUFFICIENT_SCOPE", errx.TypeAuthorization, http.StatusForbidden, "Insufficient permissions")
)

func ErrMissingToken() *errx.Error { return ErrRegistry.New(CodeMissingToken) }

func ErrInvalidToken() *errx.Error { return ErrRegistry.New(CodeInvalidToken) }

func ErrInsufficientScope() *errx.Error { return ErrRegistry.New(CodeInsufficientScope) }
