package candidatesrv

import (
	"context"
	"time"

	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/dbx"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/errx"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/kernel"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/logx"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/metricsx"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/application"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/candidate"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/position"
)

// CandidateService provides business operations for candidates and the
// interview progress of their applications
type CandidateService struct {
	candidateRepo   candidate.Repository
	applicationRepo application.Repository
	positions       position.Directory
	tx              dbx.Transactor
	now             func() time.Time
}

// NewCandidateService creates a new instance of the candidate service
func NewCandidateService(
	candidateRepo candidate.Repository,
	applicationRepo application.Repository,
	positions position.Directory,
	tx dbx.Transactor,
) *CandidateService {
	return &CandidateService{
		candidateRepo:   candidateRepo,
		applicationRepo: applicationRepo,
		positions:       positions,
		tx:              tx,
		now:             time.Now,
	}
}

// AddCandidate creates a candidate and their first application, at the
// first interview step of the requested position. Both are written in one
// transaction.
func (s *CandidateService) AddCandidate(ctx context.Context, req candidate.CreateCandidateRequest) (*candidate.CandidateWithApplication, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	pos, err := s.positions.GetByID(ctx, req.PositionID)
	if err != nil {
		if errx.IsType(err, errx.TypeNotFound) {
			return nil, candidate.ErrValidationFailed().
				WithDetail("positionId", "position does not exist")
		}
		return nil, errx.Wrap(err, "failed to load position", errx.TypeInternal)
	}
	if !pos.IsOpen() {
		return nil, position.ErrPositionNotOpen().
			WithDetail("position_id", pos.ID.String()).
			WithDetail("status", string(pos.Status))
	}
	if pos.StepCount() == 0 {
		return nil, position.ErrNoInterviewSteps().WithDetail("position_id", pos.ID.String())
	}

	now := s.now()
	newCandidate, err := req.ToCandidate(now)
	if err != nil {
		return nil, err
	}

	var app *application.Application
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.candidateRepo.Create(ctx, newCandidate); err != nil {
			return err
		}
		app = application.NewApplication(newCandidate.ID, pos.ID, now)
		return s.applicationRepo.Create(ctx, app)
	})
	if err != nil {
		return nil, errx.Wrap(err, "failed to add candidate", errx.TypeInternal)
	}

	metricsx.CandidatesCreated.Inc()
	logx.Infof("candidate %s added for position %s", newCandidate.ID, pos.ID)

	return &candidate.CandidateWithApplication{
		Candidate:   newCandidate,
		Application: app,
	}, nil
}

// FindCandidateByID returns the candidate with their applications, or nil
// when no candidate has the id.
func (s *CandidateService) FindCandidateByID(ctx context.Context, id kernel.CandidateID) (*candidate.CandidateDetails, error) {
	c, err := s.candidateRepo.GetByID(ctx, id)
	if err != nil {
		if errx.IsType(err, errx.TypeNotFound) {
			return nil, nil
		}
		return nil, errx.Wrap(err, "failed to get candidate", errx.TypeInternal)
	}

	apps, err := s.applicationRepo.ListByCandidateID(ctx, id)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list applications", errx.TypeInternal)
	}

	summaries := make([]candidate.ApplicationSummary, 0, len(apps))
	for _, app := range apps {
		summary := candidate.ApplicationSummary{
			ID:                   app.ID,
			PositionID:           app.PositionID,
			ApplicationDate:      app.ApplicationDate,
			CurrentInterviewStep: app.CurrentInterviewStep,
		}

		pos, err := s.lookupPosition(ctx, app.PositionID)
		if err != nil {
			return nil, err
		}
		if pos != nil {
			summary.PositionTitle = string(pos.Title)
			if name, ok := pos.StepName(app.CurrentInterviewStep); ok {
				summary.CurrentInterviewStepName = string(name)
			}
		}
		summaries = append(summaries, summary)
	}

	return &candidate.CandidateDetails{Candidate: c, Applications: summaries}, nil
}

// GetCandidatesByPosition lists the candidates that applied to a position in
// application order. An unknown position or one without applications yields
// an empty list.
func (s *CandidateService) GetCandidatesByPosition(ctx context.Context, positionID kernel.PositionID) ([]candidate.CandidateAtPosition, error) {
	rows, err := s.applicationRepo.ListWithCandidateByPositionID(ctx, positionID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list applications for position", errx.TypeInternal)
	}

	result := make([]candidate.CandidateAtPosition, 0, len(rows))
	if len(rows) == 0 {
		return result, nil
	}

	pos, err := s.lookupPosition(ctx, positionID)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		item := candidate.CandidateAtPosition{
			ApplicationID:        row.ID,
			CandidateID:          row.CandidateID,
			FullName:             kernel.FullName(row.FirstName, row.LastName),
			Email:                row.Email,
			CurrentInterviewStep: row.CurrentInterviewStep,
		}
		if pos != nil {
			if name, ok := pos.StepName(row.CurrentInterviewStep); ok {
				item.CurrentInterviewStepName = string(name)
			}
		}
		result = append(result, item)
	}
	return result, nil
}

// UpdateCandidateStage moves the candidate's application to another
// interview step. Without a position the candidate's latest application is
// moved.
func (s *CandidateService) UpdateCandidateStage(ctx context.Context, req candidate.UpdateStageRequest) (*application.Application, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	step := *req.CurrentInterviewStep

	app, err := s.resolveApplication(ctx, req.CandidateID, req.PositionID)
	if err != nil {
		if errx.IsType(err, errx.TypeNotFound) {
			metricsx.StageTransitions.WithLabelValues(metricsx.OutcomeNotFound).Inc()
			return nil, candidate.ErrCandidateNotFound().WithDetail("candidate_id", req.CandidateID.String())
		}
		metricsx.StageTransitions.WithLabelValues(metricsx.OutcomeFailed).Inc()
		return nil, errx.Wrap(err, "failed to resolve application", errx.TypeInternal)
	}

	pos, err := s.positions.GetByID(ctx, app.PositionID)
	if err != nil {
		metricsx.StageTransitions.WithLabelValues(metricsx.OutcomeFailed).Inc()
		return nil, errx.Wrap(err, "failed to load position", errx.TypeInternal)
	}

	if err := app.MoveToStep(step, pos.StepCount()); err != nil {
		metricsx.StageTransitions.WithLabelValues(metricsx.OutcomeRejected).Inc()
		return nil, err
	}

	updated, err := s.applicationRepo.UpdateInterviewStep(ctx, app.ID, app.CurrentInterviewStep)
	if err != nil {
		metricsx.StageTransitions.WithLabelValues(metricsx.OutcomeFailed).Inc()
		return nil, errx.Wrap(err, "failed to update interview step", errx.TypeInternal)
	}

	metricsx.StageTransitions.WithLabelValues(metricsx.OutcomeUpdated).Inc()
	logx.Infof("application %s of candidate %s moved to step %d", updated.ID, req.CandidateID, step)
	return updated, nil
}

func (s *CandidateService) resolveApplication(ctx context.Context, candidateID kernel.CandidateID, positionID *kernel.PositionID) (*application.Application, error) {
	if positionID != nil {
		return s.applicationRepo.GetByCandidateAndPosition(ctx, candidateID, *positionID)
	}
	return s.applicationRepo.GetLatestByCandidateID(ctx, candidateID)
}

// lookupPosition returns nil without error for a position that no longer
// exists, so listings still render.
func (s *CandidateService) lookupPosition(ctx context.Context, id kernel.PositionID) (*position.Position, error) {
	pos, err := s.positions.GetByID(ctx, id)
	if err != nil {
		if errx.IsType(err, errx.TypeNotFound) {
			return nil, nil
		}
		return nil, errx.Wrap(err, "failed to load position", errx.TypeInternal)
	}
	return pos, nil
}
