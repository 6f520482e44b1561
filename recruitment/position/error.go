package position

import (
	"net/http"

	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("POSITION")

// Error codes
var (
	CodePositionNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Position not found")
	CodeNoInterviewSteps = ErrRegistry.Register("NO_INTERVIEW_STEPS", errx.TypeValidation, http.StatusBadRequest, "Position has no interview steps")
	CodeInvalidID        = ErrRegistry.Register("INVALID_ID", errx.TypeValidation, http.StatusBadRequest, "Invalid position ID")
	CodePositionNotOpen  = ErrRegistry.Register("NOT_OPEN", errx.TypeValidation, http.StatusBadRequest, "Position is not accepting candidates")
)

// Helper functions
func ErrPositionNotFound() *errx.Error {
	return ErrRegistry.New(CodePositionNotFound)
}

func ErrNoInterviewSteps() *errx.Error {
	return ErrRegistry.New(CodeNoInterviewSteps)
}

func ErrInvalidID() *errx.Error {
	return ErrRegistry.New(CodeInvalidID)
}

func ErrPositionNotOpen() *errx.Error {
	return ErrRegistry.New(CodePositionNotOpen)
}
