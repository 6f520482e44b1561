package applicationinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/dbx"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/kernel"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/application"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresApplicationRepository implements application.Repository using PostgreSQL
type PostgresApplicationRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewPostgresApplicationRepository creates a new PostgreSQL application repository
func NewPostgresApplicationRepository(db *sqlx.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{
		db:  db,
		now: time.Now,
	}
}

// ============================================================================
// Database Models
// ============================================================================

type applicationModel struct {
	ID                   int64          `db:"id"`
	PositionID           int64          `db:"position_id"`
	CandidateID          int64          `db:"candidate_id"`
	ApplicationDate      time.Time      `db:"application_date"`
	CurrentInterviewStep int            `db:"current_interview_step"`
	Notes                sql.NullString `db:"notes"`
	CreatedAt            time.Time      `db:"created_at"`
	UpdatedAt            time.Time      `db:"updated_at"`
}

// applicationWithCandidateModel for joined queries
type applicationWithCandidateModel struct {
	applicationModel
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Email     string `db:"email"`
}

// toEntity converts database model to domain entity
func (m *applicationModel) toEntity() *application.Application {
	return &application.Application{
		ID:                   kernel.ApplicationID(m.ID),
		PositionID:           kernel.PositionID(m.PositionID),
		CandidateID:          kernel.CandidateID(m.CandidateID),
		ApplicationDate:      m.ApplicationDate,
		CurrentInterviewStep: m.CurrentInterviewStep,
		Notes:                m.Notes.String,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

func (m *applicationWithCandidateModel) toEntity() application.WithCandidate {
	return application.WithCandidate{
		Application: *m.applicationModel.toEntity(),
		FirstName:   kernel.FirstName(m.FirstName),
		LastName:    kernel.LastName(m.LastName),
		Email:       kernel.Email(m.Email),
	}
}

// fromEntity converts domain entity to database model
func fromEntity(app *application.Application) *applicationModel {
	return &applicationModel{
		ID:                   app.ID.Int64(),
		PositionID:           app.PositionID.Int64(),
		CandidateID:          app.CandidateID.Int64(),
		ApplicationDate:      app.ApplicationDate,
		CurrentInterviewStep: app.CurrentInterviewStep,
		Notes:                sql.NullString{String: app.Notes, Valid: app.Notes != ""},
		CreatedAt:            app.CreatedAt,
		UpdatedAt:            app.UpdatedAt,
	}
}

const selectColumns = `
	id, position_id, candidate_id, application_date,
	current_interview_step, notes, created_at, updated_at
`

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new application
func (r *PostgresApplicationRepository) Create(ctx context.Context, app *application.Application) error {
	conn := dbx.Conn(ctx, r.db)

	query, args, err := conn.BindNamed(`
		INSERT INTO applications (
			position_id, candidate_id, application_date,
			current_interview_step, notes, created_at, updated_at
		) VALUES (
			:position_id, :candidate_id, :application_date,
			:current_interview_step, :notes, :created_at, :updated_at
		)
		RETURNING id
	`, fromEntity(app))
	if err != nil {
		return fmt.Errorf("failed to bind application insert: %w", err)
	}

	var id int64
	if err := conn.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		if dbx.IsUniqueViolation(err) {
			return application.ErrApplicationAlreadyExists().
				WithDetail("candidate_id", app.CandidateID.String()).
				WithDetail("position_id", app.PositionID.String())
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" { // foreign_key_violation
			return fmt.Errorf("invalid foreign key reference: %w", err)
		}
		return fmt.Errorf("failed to create application: %w", err)
	}

	app.ID = kernel.ApplicationID(id)
	return nil
}

// GetLatestByCandidateID retrieves the candidate's most recent application
func (r *PostgresApplicationRepository) GetLatestByCandidateID(ctx context.Context, candidateID kernel.CandidateID) (*application.Application, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM applications
		WHERE candidate_id = $1
		ORDER BY application_date DESC, id DESC
		LIMIT 1
	`

	var model applicationModel
	if err := dbx.Conn(ctx, r.db).GetContext(ctx, &model, query, candidateID.Int64()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, application.ErrApplicationNotFound().WithDetail("candidate_id", candidateID.String())
		}
		return nil, fmt.Errorf("failed to get latest application: %w", err)
	}

	return model.toEntity(), nil
}

// GetByCandidateAndPosition retrieves the candidate's application to a position
func (r *PostgresApplicationRepository) GetByCandidateAndPosition(ctx context.Context, candidateID kernel.CandidateID, positionID kernel.PositionID) (*application.Application, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM applications
		WHERE candidate_id = $1 AND position_id = $2
	`

	var model applicationModel
	if err := dbx.Conn(ctx, r.db).GetContext(ctx, &model, query, candidateID.Int64(), positionID.Int64()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, application.ErrApplicationNotFound().
				WithDetail("candidate_id", candidateID.String()).
				WithDetail("position_id", positionID.String())
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	return model.toEntity(), nil
}

// ListByCandidateID retrieves a candidate's applications
func (r *PostgresApplicationRepository) ListByCandidateID(ctx context.Context, candidateID kernel.CandidateID) ([]*application.Application, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM applications
		WHERE candidate_id = $1
		ORDER BY id ASC
	`

	var models []applicationModel
	if err := dbx.Conn(ctx, r.db).SelectContext(ctx, &models, query, candidateID.Int64()); err != nil {
		return nil, fmt.Errorf("failed to list applications by candidate: %w", err)
	}

	entities := make([]*application.Application, 0, len(models))
	for i := range models {
		entities = append(entities, models[i].toEntity())
	}
	return entities, nil
}

// ListWithCandidateByPositionID retrieves the applications to a position
// joined with candidate names
func (r *PostgresApplicationRepository) ListWithCandidateByPositionID(ctx context.Context, positionID kernel.PositionID) ([]application.WithCandidate, error) {
	query := `
		SELECT
			a.id, a.position_id, a.candidate_id, a.application_date,
			a.current_interview_step, a.notes, a.created_at, a.updated_at,
			c.first_name, c.last_name, c.email
		FROM applications a
		INNER JOIN candidates c ON a.candidate_id = c.id
		WHERE a.position_id = $1
		ORDER BY a.id ASC
	`

	var models []applicationWithCandidateModel
	if err := dbx.Conn(ctx, r.db).SelectContext(ctx, &models, query, positionID.Int64()); err != nil {
		return nil, fmt.Errorf("failed to list applications by position: %w", err)
	}

	rows := make([]application.WithCandidate, 0, len(models))
	for i := range models {
		rows = append(rows, models[i].toEntity())
	}
	return rows, nil
}

// UpdateInterviewStep sets the current step in a single statement. Concurrent
// updates to the same row serialize on the row lock; the last one wins.
func (r *PostgresApplicationRepository) UpdateInterviewStep(ctx context.Context, id kernel.ApplicationID, step int) (*application.Application, error) {
	query := `
		UPDATE applications
		SET current_interview_step = $2, updated_at = $3
		WHERE id = $1
		RETURNING ` + selectColumns

	var model applicationModel
	if err := dbx.Conn(ctx, r.db).GetContext(ctx, &model, query, id.Int64(), step, r.now()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, application.ErrApplicationNotFound().WithDetail("application_id", id.String())
		}
		return nil, fmt.Errorf("failed to update interview step: %w", err)
	}

	return model.toEntity(), nil
}
