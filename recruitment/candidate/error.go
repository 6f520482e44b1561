package candidate

import (
	"net/http"

	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("CANDIDATE")

// Error codes
var (
	CodeCandidateNotFound  = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Candidate not found")
	CodeEmailAlreadyExists = ErrRegistry.Register("EMAIL_ALREADY_EXISTS", errx.TypeConflict, http.StatusBadRequest, "The email already exists in the database")
	CodeValidationFailed   = ErrRegistry.Register("VALIDATION_FAILED", errx.TypeValidation, http.StatusBadRequest, "Request validation failed")
	CodeInvalidID          = ErrRegistry.Register("INVALID_ID", errx.TypeValidation, http.StatusBadRequest, "Invalid ID format")
	CodeInvalidStageUpdate = ErrRegistry.Register("INVALID_STAGE_UPDATE", errx.TypeValidation, http.StatusBadRequest, "Invalid candidate ID or interview step")
)

// Helper functions
func ErrCandidateNotFound() *errx.Error {
	return ErrRegistry.New(CodeCandidateNotFound)
}

func ErrEmailAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeEmailAlreadyExists)
}

func ErrValidationFailed() *errx.Error {
	return ErrRegistry.New(CodeValidationFailed)
}

func ErrInvalidID() *errx.Error {
	return ErrRegistry.New(CodeInvalidID)
}

func ErrInvalidStageUpdate() *errx.Error {
	return ErrRegistry.New(CodeInvalidStageUpdate)
}
