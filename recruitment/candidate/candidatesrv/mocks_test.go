package candidatesrv

import (
	"context"

	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/kernel"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/application"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/candidate"
	"github.com/stretchr/testify/mock"
)

type mockCandidateRepository struct {
	mock.Mock
}

func (m *mockCandidateRepository) Create(ctx context.Context, c *candidate.Candidate) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCandidateRepository) GetByID(ctx context.Context, id kernel.CandidateID) (*candidate.Candidate, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*candidate.Candidate)
	return c, args.Error(1)
}

type mockApplicationRepository struct {
	mock.Mock
}

func (m *mockApplicationRepository) Create(ctx context.Context, app *application.Application) error {
	return m.Called(ctx, app).Error(0)
}

func (m *mockApplicationRepository) GetLatestByCandidateID(ctx context.Context, candidateID kernel.CandidateID) (*application.Application, error) {
	args := m.Called(ctx, candidateID)
	app, _ := args.Get(0).(*application.Application)
	return app, args.Error(1)
}

func (m *mockApplicationRepository) GetByCandidateAndPosition(ctx context.Context, candidateID kernel.CandidateID, positionID kernel.PositionID) (*application.Application, error) {
	args := m.Called(ctx, candidateID, positionID)
	app, _ := args.Get(0).(*application.Application)
	return app, args.Error(1)
}

func (m *mockApplicationRepository) ListByCandidateID(ctx context.Context, candidateID kernel.CandidateID) ([]*application.Application, error) {
	args := m.Called(ctx, candidateID)
	apps, _ := args.Get(0).([]*application.Application)
	return apps, args.Error(1)
}

func (m *mockApplicationRepository) ListWithCandidateByPositionID(ctx context.Context, positionID kernel.PositionID) ([]application.WithCandidate, error) {
	args := m.Called(ctx, positionID)
	rows, _ := args.Get(0).([]application.WithCandidate)
	return rows, args.Error(1)
}

func (m *mockApplicationRepository) UpdateInterviewStep(ctx context.Context, id kernel.ApplicationID, step int) (*application.Application, error) {
	args := m.Called(ctx, id, step)
	app, _ := args.Get(0).(*application.Application)
	return app, args.Error(1)
}
