package application

import (
	"context"

	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/kernel"
)

// WithCandidate is an application joined with its candidate's identity.
type WithCandidate struct {
	Application
	FirstName kernel.FirstName `db:"first_name"`
	LastName  kernel.LastName  `db:"last_name"`
	Email     kernel.Email     `db:"email"`
}

type Repository interface {
	// Create persists a new application and sets its ID
	Create(ctx context.Context, app *Application) error

	// GetLatestByCandidateID returns the most recent application of a candidate
	GetLatestByCandidateID(ctx context.Context, candidateID kernel.CandidateID) (*Application, error)

	// GetByCandidateAndPosition returns the candidate's application to a position
	GetByCandidateAndPosition(ctx context.Context, candidateID kernel.CandidateID, positionID kernel.PositionID) (*Application, error)

	// ListByCandidateID lists a candidate's applications, oldest first
	ListByCandidateID(ctx context.Context, candidateID kernel.CandidateID) ([]*Application, error)

	// ListWithCandidateByPositionID lists applications to a position ordered
	// by application id
	ListWithCandidateByPositionID(ctx context.Context, positionID kernel.PositionID) ([]WithCandidate, error)

	// UpdateInterviewStep atomically sets the current step and returns the
	// updated application
	UpdateInterviewStep(ctx context.Context, id kernel.ApplicationID, step int) (*Application, error)
}
