package candidate

import (
	"context"

	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/kernel"
)

type Repository interface {
	// Create persists the candidate with its educations, work experiences
	// and resumes, and sets c.ID.
	Create(ctx context.Context, c *Candidate) error

	// GetByID returns ErrCandidateNotFound when no candidate has the id.
	GetByID(ctx context.Context, id kernel.CandidateID) (*Candidate, error)
}
