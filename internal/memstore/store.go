// Package memstore keeps candidates, applications and positions in process
// memory. It backs the "memory" database driver and the service tests.
package memstore

import (
	"context"
	"sync"

	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/kernel"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/application"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/candidate"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/position"
)

// Store is the shared state behind the repositories of this package.
type Store struct {
	mu sync.RWMutex

	candidates   map[kernel.CandidateID]*candidate.Candidate
	emails       map[kernel.Email]kernel.CandidateID
	applications map[kernel.ApplicationID]*application.Application
	positions    map[kernel.PositionID]*position.Position

	lastCandidateID   int64
	lastApplicationID int64
	lastPositionID    int64
	lastStepID        int64
}

func New() *Store {
	return &Store{
		candidates:   make(map[kernel.CandidateID]*candidate.Candidate),
		emails:       make(map[kernel.Email]kernel.CandidateID),
		applications: make(map[kernel.ApplicationID]*application.Application),
		positions:    make(map[kernel.PositionID]*position.Position),
	}
}

// ============================================================================
// Transactions
// ============================================================================

type journalKey struct{}

// journal collects undo actions for writes made inside WithinTx.
type journal struct {
	mu   sync.Mutex
	undo []func()
}

func (j *journal) add(fn func()) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.undo = append(j.undo, fn)
}

func (j *journal) rollback() {
	j.mu.Lock()
	defer j.mu.Unlock()
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
	j.undo = nil
}

// WithinTx runs fn and reverts every create made through its context when
// fn fails. Nested calls join the outer transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(journalKey{}).(*journal); ok {
		return fn(ctx)
	}

	j := &journal{}
	if err := fn(context.WithValue(ctx, journalKey{}, j)); err != nil {
		j.rollback()
		return err
	}
	return nil
}

// onRollback registers undo when ctx belongs to a transaction. Called with
// s.mu held; undo must acquire the lock itself.
func onRollback(ctx context.Context, undo func()) {
	if j, ok := ctx.Value(journalKey{}).(*journal); ok {
		j.add(undo)
	}
}

// ============================================================================
// Positions
// ============================================================================

// AddPosition stores p, assigning ids to the position and its steps.
func (s *Store) AddPosition(p *position.Position) kernel.PositionID {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := clonePosition(p)
	if cp.ID.IsEmpty() {
		s.lastPositionID++
		cp.ID = kernel.PositionID(s.lastPositionID)
	} else if int64(cp.ID) > s.lastPositionID {
		s.lastPositionID = int64(cp.ID)
	}
	for i := range cp.InterviewSteps {
		if cp.InterviewSteps[i].ID == 0 {
			s.lastStepID++
			cp.InterviewSteps[i].ID = kernel.InterviewStepID(s.lastStepID)
		}
	}
	cp.SortSteps()

	s.positions[cp.ID] = cp
	p.ID = cp.ID
	return cp.ID
}

// PositionDirectory implements position.Directory.
type PositionDirectory struct {
	s *Store
}

func NewPositionDirectory(s *Store) *PositionDirectory {
	return &PositionDirectory{s: s}
}

func (d *PositionDirectory) GetByID(ctx context.Context, id kernel.PositionID) (*position.Position, error) {
	d.s.mu.RLock()
	defer d.s.mu.RUnlock()

	p, ok := d.s.positions[id]
	if !ok {
		return nil, position.ErrPositionNotFound().WithDetail("position_id", id.String())
	}
	return clonePosition(p), nil
}

// ============================================================================
// Copies
// ============================================================================

func cloneCandidate(c *candidate.Candidate) *candidate.Candidate {
	cp := *c
	cp.Educations = append([]candidate.Education(nil), c.Educations...)
	cp.WorkExperiences = append([]candidate.WorkExperience(nil), c.WorkExperiences...)
	cp.Resumes = append([]candidate.Resume(nil), c.Resumes...)
	return &cp
}

func cloneApplication(a *application.Application) *application.Application {
	cp := *a
	return &cp
}

func clonePosition(p *position.Position) *position.Position {
	cp := *p
	cp.InterviewSteps = append([]position.InterviewStep(nil), p.InterviewSteps...)
	return &cp
}
