package positionsrv

import (
	"context"

	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/errx"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/kernel"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/position"
)

// PositionService provides read operations for positions
type PositionService struct {
	positions position.Directory
}

// NewPositionService creates a new instance of the position service
func NewPositionService(positions position.Directory) *PositionService {
	return &PositionService{positions: positions}
}

// GetInterviewFlow returns the ordered interview steps of a position
func (s *PositionService) GetInterviewFlow(ctx context.Context, id kernel.PositionID) (*position.InterviewFlowResponse, error) {
	p, err := s.positions.GetByID(ctx, id)
	if err != nil {
		if errx.IsType(err, errx.TypeNotFound) {
			return nil, position.ErrPositionNotFound().WithDetail("position_id", id.String())
		}
		return nil, errx.Wrap(err, "failed to get position", errx.TypeInternal)
	}
	return p.ToInterviewFlowResponse(), nil
}
