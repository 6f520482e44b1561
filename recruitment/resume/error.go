package resume

import (
	"net/http"

	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("RESUME")

// Error codes
var (
	CodeFileRequired    = ErrRegistry.Register("FILE_REQUIRED", errx.TypeValidation, http.StatusBadRequest, "File is required")
	CodeInvalidFileType = ErrRegistry.Register("INVALID_FILE_TYPE", errx.TypeValidation, http.StatusBadRequest, "Invalid file type, only PDF and DOCX are allowed!")
	CodeFileTooLarge    = ErrRegistry.Register("FILE_TOO_LARGE", errx.TypeValidation, http.StatusBadRequest, "File exceeds the 10MB limit")
	CodeStorageFailed   = ErrRegistry.Register("STORAGE_FAILED", errx.TypeExternal, http.StatusInternalServerError, "Failed to store file")
)

// Helper functions
func ErrFileRequired() *errx.Error {
	return ErrRegistry.New(CodeFileRequired)
}

func ErrInvalidFileType() *errx.Error {
	return ErrRegistry.New(CodeInvalidFileType)
}

func ErrFileTooLarge() *errx.Error {
	return ErrRegistry.New(CodeFileTooLarge)
}

func ErrStorageFailed(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeStorageFailed, cause)
}
