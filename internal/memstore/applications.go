package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/kernel"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/application"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/candidate"
)

// ApplicationRepository implements application.Repository.
type ApplicationRepository struct {
	s   *Store
	now func() time.Time
}

func NewApplicationRepository(s *Store) *ApplicationRepository {
	return &ApplicationRepository{s: s, now: time.Now}
}

func (r *ApplicationRepository) Create(ctx context.Context, app *application.Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.candidates[app.CandidateID]; !ok {
		return candidate.ErrCandidateNotFound().WithDetail("candidate_id", app.CandidateID.String())
	}
	for _, existing := range r.s.applications {
		if existing.CandidateID == app.CandidateID && existing.PositionID == app.PositionID {
			return application.ErrApplicationAlreadyExists().
				WithDetail("candidate_id", app.CandidateID.String()).
				WithDetail("position_id", app.PositionID.String())
		}
	}

	r.s.lastApplicationID++
	id := kernel.ApplicationID(r.s.lastApplicationID)
	app.ID = id
	r.s.applications[id] = cloneApplication(app)

	onRollback(ctx, func() {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
		delete(r.s.applications, id)
	})
	return nil
}

func (r *ApplicationRepository) GetLatestByCandidateID(ctx context.Context, candidateID kernel.CandidateID) (*application.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var latest *application.Application
	for _, a := range r.s.applications {
		if a.CandidateID != candidateID {
			continue
		}
		if latest == nil || isNewer(a, latest) {
			latest = a
		}
	}
	if latest == nil {
		return nil, application.ErrApplicationNotFound().WithDetail("candidate_id", candidateID.String())
	}
	return cloneApplication(latest), nil
}

func isNewer(a, b *application.Application) bool {
	if !a.ApplicationDate.Equal(b.ApplicationDate) {
		return a.ApplicationDate.After(b.ApplicationDate)
	}
	return a.ID > b.ID
}

func (r *ApplicationRepository) GetByCandidateAndPosition(ctx context.Context, candidateID kernel.CandidateID, positionID kernel.PositionID) (*application.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, a := range r.s.applications {
		if a.CandidateID == candidateID && a.PositionID == positionID {
			return cloneApplication(a), nil
		}
	}
	return nil, application.ErrApplicationNotFound().
		WithDetail("candidate_id", candidateID.String()).
		WithDetail("position_id", positionID.String())
}

func (r *ApplicationRepository) ListByCandidateID(ctx context.Context, candidateID kernel.CandidateID) ([]*application.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	apps := make([]*application.Application, 0)
	for _, a := range r.s.applications {
		if a.CandidateID == candidateID {
			apps = append(apps, cloneApplication(a))
		}
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].ID < apps[j].ID })
	return apps, nil
}

func (r *ApplicationRepository) ListWithCandidateByPositionID(ctx context.Context, positionID kernel.PositionID) ([]application.WithCandidate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rows := make([]application.WithCandidate, 0)
	for _, a := range r.s.applications {
		if a.PositionID != positionID {
			continue
		}
		row := application.WithCandidate{Application: *a}
		if c, ok := r.s.candidates[a.CandidateID]; ok {
			row.FirstName = c.FirstName
			row.LastName = c.LastName
			row.Email = c.Email
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows, nil
}

// UpdateInterviewStep writes under the store lock, so concurrent updates to
// the same application serialize and the last one wins.
func (r *ApplicationRepository) UpdateInterviewStep(ctx context.Context, id kernel.ApplicationID, step int) (*application.Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.applications[id]
	if !ok {
		return nil, application.ErrApplicationNotFound().WithDetail("application_id", id.String())
	}

	prev := *a
	a.CurrentInterviewStep = step
	a.UpdatedAt = r.now()

	onRollback(ctx, func() {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
		if cur, ok := r.s.applications[id]; ok {
			*cur = prev
		}
	})
	return cloneApplication(a), nil
}
