package application

import (
	"time"

	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/kernel"
)

// Application is a candidate's pursuit of one position. CurrentInterviewStep
// indexes the position's ordered interview steps.
type Application struct {
	ID                   kernel.ApplicationID `db:"id" json:"id"`
	PositionID           kernel.PositionID    `db:"position_id" json:"positionId"`
	CandidateID          kernel.CandidateID   `db:"candidate_id" json:"candidateId"`
	ApplicationDate      time.Time            `db:"application_date" json:"applicationDate"`
	CurrentInterviewStep int                  `db:"current_interview_step" json:"currentInterviewStep"`
	Notes                string               `db:"notes" json:"notes,omitempty"`
	CreatedAt            time.Time            `db:"created_at" json:"createdAt"`
	UpdatedAt            time.Time            `db:"updated_at" json:"updatedAt"`
}

// NewApplication starts an application at the first interview step.
func NewApplication(candidateID kernel.CandidateID, positionID kernel.PositionID, now time.Time) *Application {
	return &Application{
		CandidateID:          candidateID,
		PositionID:           positionID,
		ApplicationDate:      now,
		CurrentInterviewStep: 0,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsValidStep reports whether step indexes one of totalSteps steps
func IsValidStep(step, totalSteps int) bool {
	return step >= 0 && step < totalSteps
}

// MoveToStep sets the current interview step. The step must exist in a
// position with totalSteps steps.
func (a *Application) MoveToStep(step, totalSteps int) error {
	if !IsValidStep(step, totalSteps) {
		return ErrInvalidInterviewStep().
			WithDetail("step", step).
			WithDetail("total_steps", totalSteps)
	}

	a.CurrentInterviewStep = step
	a.UpdatedAt = time.Now()
	return nil
}
