package position

import (
	"context"

	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/kernel"
)

// Directory is the read-only lookup of positions and their interview steps.
type Directory interface {
	// GetByID returns the position with steps sorted by order index, or
	// ErrPositionNotFound.
	GetByID(ctx context.Context, id kernel.PositionID) (*Position, error)
}
