package position

import "github.com/jmorenovfever/AI4Devs-backend-fever/pkg/kernel"

// InterviewFlowResponse - DTO for a position's ordered interview steps
type InterviewFlowResponse struct {
	PositionID      kernel.PositionID       `json:"positionId"`
	PositionTitle   kernel.PositionTitle    `json:"positionTitle"`
	Status          PositionStatus          `json:"status"`
	InterviewFlowID *kernel.InterviewFlowID `json:"interviewFlowId,omitempty"`
	Steps           []InterviewStepResponse `json:"interviewSteps"`
}

// InterviewStepResponse - one step with its index in the flow, which is the
// value stored as an application's current interview step
type InterviewStepResponse struct {
	Index         int                    `json:"index"`
	ID            kernel.InterviewStepID `json:"id"`
	Name          kernel.StepName        `json:"name"`
	InterviewType string                 `json:"interviewType,omitempty"`
}

// ToInterviewFlowResponse converts a position to its flow DTO
func (p *Position) ToInterviewFlowResponse() *InterviewFlowResponse {
	steps := make([]InterviewStepResponse, 0, len(p.InterviewSteps))
	for i, s := range p.InterviewSteps {
		steps = append(steps, InterviewStepResponse{
			Index:         i,
			ID:            s.ID,
			Name:          s.Name,
			InterviewType: s.InterviewType,
		})
	}
	return &InterviewFlowResponse{
		PositionID:      p.ID,
		PositionTitle:   p.Title,
		Status:          p.Status,
		InterviewFlowID: p.InterviewFlowID,
		Steps:           steps,
	}
}
