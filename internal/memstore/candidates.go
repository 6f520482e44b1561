package memstore

import (
	"context"

	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/kernel"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/candidate"
)

// CandidateRepository implements candidate.Repository.
type CandidateRepository struct {
	s *Store
}

func NewCandidateRepository(s *Store) *CandidateRepository {
	return &CandidateRepository{s: s}
}

func (r *CandidateRepository) Create(ctx context.Context, c *candidate.Candidate) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	email := c.Email.Normalize()
	if _, taken := r.s.emails[email]; taken {
		return candidate.ErrEmailAlreadyExists().WithDetail("email", email.String())
	}

	r.s.lastCandidateID++
	id := kernel.CandidateID(r.s.lastCandidateID)
	c.ID = id

	r.s.candidates[id] = cloneCandidate(c)
	r.s.emails[email] = id

	onRollback(ctx, func() {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
		delete(r.s.candidates, id)
		delete(r.s.emails, email)
	})
	return nil
}

func (r *CandidateRepository) GetByID(ctx context.Context, id kernel.CandidateID) (*candidate.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.candidates[id]
	if !ok {
		return nil, candidate.ErrCandidateNotFound().WithDetail("candidate_id", id.String())
	}
	return cloneCandidate(c), nil
}
