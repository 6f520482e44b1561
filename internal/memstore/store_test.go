package memstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/errx"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/kernel"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/application"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/candidate"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/position"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCandidate(email string) *candidate.Candidate {
	return &candidate.Candidate{FirstName: "Ana", LastName: "Diaz", Email: kernel.Email(email)}
}

func TestCandidateCreateAssignsUniqueIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewCandidateRepository(New())

	a, b := newCandidate("a@example.com"), newCandidate("b@example.com")
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.ID.IsEmpty())

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.Email, got.Email)
}

func TestCandidateDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewCandidateRepository(New())

	require.NoError(t, repo.Create(ctx, newCandidate("ana@example.com")))
	err := repo.Create(ctx, newCandidate("ANA@example.com "))
	assert.True(t, errx.IsCode(err, candidate.CodeEmailAlreadyExists))
}

func TestCandidateGetByIDNotFound(t *testing.T) {
	_, err := NewCandidateRepository(New()).GetByID(context.Background(), 42)
	assert.True(t, errx.IsType(err, errx.TypeNotFound))
}

func TestReturnedValuesAreCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewCandidateRepository(New())
	c := newCandidate("copy@example.com")
	c.Educations = []candidate.Education{{Institution: "UPM"}}
	require.NoError(t, repo.Create(ctx, c))

	got, _ := repo.GetByID(ctx, c.ID)
	got.Educations[0].Institution = "changed"
	got.FirstName = "changed"

	again, _ := repo.GetByID(ctx, c.ID)
	assert.Equal(t, "UPM", again.Educations[0].Institution)
	assert.EqualValues(t, "Ana", again.FirstName)
}

func TestWithinTxRollsBackCreates(t *testing.T) {
	ctx := context.Background()
	s := New()
	candidates := NewCandidateRepository(s)
	apps := NewApplicationRepository(s)
	positionID := SeedDemo(s)

	c := newCandidate("tx@example.com")
	boom := errors.New("boom")
	err := s.WithinTx(ctx, func(ctx context.Context) error {
		require.NoError(t, candidates.Create(ctx, c))
		require.NoError(t, apps.Create(ctx, application.NewApplication(c.ID, positionID, time.Now())))
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = candidates.GetByID(ctx, c.ID)
	assert.True(t, errx.IsType(err, errx.TypeNotFound))
	_, err = apps.GetLatestByCandidateID(ctx, c.ID)
	assert.True(t, errx.IsType(err, errx.TypeNotFound))

	require.NoError(t, candidates.Create(ctx, newCandidate("tx@example.com")), "email is free again")
}

func TestApplicationQueries(t *testing.T) {
	ctx := context.Background()
	s := New()
	candidates := NewCandidateRepository(s)
	apps := NewApplicationRepository(s)
	p1 := SeedDemo(s)
	p2 := s.AddPosition(&position.Position{Title: "Data Engineer", InterviewSteps: []position.InterviewStep{{Name: "Screening"}}})

	c := newCandidate("multi@example.com")
	require.NoError(t, candidates.Create(ctx, c))

	t0 := time.Now()
	first := application.NewApplication(c.ID, p1, t0)
	second := application.NewApplication(c.ID, p2, t0.Add(time.Hour))
	require.NoError(t, apps.Create(ctx, first))
	require.NoError(t, apps.Create(ctx, second))

	err := apps.Create(ctx, application.NewApplication(c.ID, p1, t0))
	assert.True(t, errx.IsCode(err, application.CodeApplicationAlreadyExists))

	latest, err := apps.GetLatestByCandidateID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)

	byPos, err := apps.GetByCandidateAndPosition(ctx, c.ID, p1)
	require.NoError(t, err)
	assert.Equal(t, first.ID, byPos.ID)

	list, err := apps.ListByCandidateID(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)

	rows, err := apps.ListWithCandidateByPositionID(ctx, p2)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.EqualValues(t, "Ana", rows[0].FirstName)

	empty, err := apps.ListWithCandidateByPositionID(ctx, 999)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestApplicationRequiresCandidate(t *testing.T) {
	s := New()
	err := NewApplicationRepository(s).Create(context.Background(), application.NewApplication(77, SeedDemo(s), time.Now()))
	assert.True(t, errx.IsCode(err, candidate.CodeCandidateNotFound))
}

func TestConcurrentStageUpdatesLastWriterWins(t *testing.T) {
	ctx := context.Background()
	s := New()
	candidates := NewCandidateRepository(s)
	apps := NewApplicationRepository(s)
	positionID := SeedDemo(s)

	c := newCandidate("race@example.com")
	require.NoError(t, candidates.Create(ctx, c))
	app := application.NewApplication(c.ID, positionID, time.Now())
	require.NoError(t, apps.Create(ctx, app))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(step int) {
			defer wg.Done()
			_, err := apps.UpdateInterviewStep(ctx, app.ID, step%3)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := apps.GetLatestByCandidateID(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, application.IsValidStep(got.CurrentInterviewStep, 3))
}

func TestUpdateInterviewStepNotFound(t *testing.T) {
	_, err := NewApplicationRepository(New()).UpdateInterviewStep(context.Background(), 5, 1)
	assert.True(t, errx.IsCode(err, application.CodeApplicationNotFound))
}

func TestPositionDirectory(t *testing.T) {
	s := New()
	id := SeedDemo(s)
	dir := NewPositionDirectory(s)

	p, err := dir.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 3, p.StepCount())
	name, _ := p.StepName(0)
	assert.EqualValues(t, "Initial Screening", name)

	_, err = dir.GetByID(context.Background(), id+1)
	assert.True(t, errx.IsCode(err, position.CodePositionNotFound))
}
