package application

import (
	"net/http"

	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("APPLICATION")

// Error codes
var (
	CodeApplicationNotFound      = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Application not found")
	CodeApplicationAlreadyExists = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "Candidate already applied to this position")
	CodeInvalidInterviewStep     = ErrRegistry.Register("INVALID_INTERVIEW_STEP", errx.TypeValidation, http.StatusBadRequest, "Interview step is out of range for the position")
)

// Helper functions
func ErrApplicationNotFound() *errx.Error {
	return ErrRegistry.New(CodeApplicationNotFound)
}

func ErrApplicationAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeApplicationAlreadyExists)
}

func ErrInvalidInterviewStep() *errx.Error {
	return ErrRegistry.New(CodeInvalidInterviewStep)
}
