package position

import (
	"sort"
	"time"

	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/kernel"
)

// PositionStatus represents the status of a position
type PositionStatus string

const (
	PositionStatusDraft  PositionStatus = "DRAFT"
	PositionStatusOpen   PositionStatus = "OPEN"
	PositionStatusClosed PositionStatus = "CLOSED"
)

type Position struct {
	ID              kernel.PositionID       `db:"id" json:"id"`
	Title           kernel.PositionTitle    `db:"title" json:"title"`
	Description     string                  `db:"description" json:"description,omitempty"`
	Location        string                  `db:"location" json:"location,omitempty"`
	Status          PositionStatus          `db:"status" json:"status"`
	IsVisible       bool                    `db:"is_visible" json:"isVisible"`
	InterviewFlowID *kernel.InterviewFlowID `db:"interview_flow_id" json:"interviewFlowId,omitempty"`
	InterviewSteps  []InterviewStep         `db:"-" json:"interviewSteps"`
	CreatedAt       time.Time               `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time               `db:"updated_at" json:"updatedAt"`
}

// InterviewStep is one stage of a position's hiring pipeline.
type InterviewStep struct {
	ID            kernel.InterviewStepID `db:"id" json:"id"`
	Name          kernel.StepName        `db:"name" json:"name"`
	OrderIndex    int                    `db:"order_index" json:"orderIndex"`
	InterviewType string                 `db:"interview_type" json:"interviewType,omitempty"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// StepCount returns the number of interview steps
func (p *Position) StepCount() int {
	return len(p.InterviewSteps)
}

// StepName returns the name of the step at index i
func (p *Position) StepName(i int) (kernel.StepName, bool) {
	if i < 0 || i >= len(p.InterviewSteps) {
		return "", false
	}
	return p.InterviewSteps[i].Name, true
}

// IsOpen checks if the position accepts candidates
func (p *Position) IsOpen() bool {
	return p.Status == PositionStatusOpen
}

// SortSteps orders steps by OrderIndex, keeping insertion order for ties
func (p *Position) SortSteps() {
	sort.SliceStable(p.InterviewSteps, func(i, j int) bool {
		return p.InterviewSteps[i].OrderIndex < p.InterviewSteps[j].OrderIndex
	})
}
