package positioninfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/dbx"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/kernel"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/position"
	"github.com/jmoiron/sqlx"
)

// PostgresDirectory implements position.Directory using PostgreSQL
type PostgresDirectory struct {
	db *sqlx.DB
}

// NewPostgresDirectory creates a new PostgreSQL position directory
func NewPostgresDirectory(db *sqlx.DB) *PostgresDirectory {
	return &PostgresDirectory{db: db}
}

// ============================================================================
// Database Models
// ============================================================================

type positionModel struct {
	ID              int64          `db:"id"`
	Title           string         `db:"title"`
	Description     sql.NullString `db:"description"`
	Location        sql.NullString `db:"location"`
	Status          string         `db:"status"`
	IsVisible       bool           `db:"is_visible"`
	InterviewFlowID sql.NullInt64  `db:"interview_flow_id"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

type stepModel struct {
	ID            int64          `db:"id"`
	Name          string         `db:"name"`
	OrderIndex    int            `db:"order_index"`
	InterviewType sql.NullString `db:"interview_type"`
}

func (m *positionModel) toEntity(steps []stepModel) *position.Position {
	p := &position.Position{
		ID:             kernel.PositionID(m.ID),
		Title:          kernel.PositionTitle(m.Title),
		Description:    m.Description.String,
		Location:       m.Location.String,
		Status:         position.PositionStatus(m.Status),
		IsVisible:      m.IsVisible,
		InterviewSteps: make([]position.InterviewStep, 0, len(steps)),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.InterviewFlowID.Valid {
		flowID := kernel.InterviewFlowID(m.InterviewFlowID.Int64)
		p.InterviewFlowID = &flowID
	}
	for _, s := range steps {
		p.InterviewSteps = append(p.InterviewSteps, position.InterviewStep{
			ID:            kernel.InterviewStepID(s.ID),
			Name:          kernel.StepName(s.Name),
			OrderIndex:    s.OrderIndex,
			InterviewType: s.InterviewType.String,
		})
	}
	p.SortSteps()
	return p
}

// ============================================================================
// Directory Implementation
// ============================================================================

// GetByID retrieves a position and its interview steps
func (r *PostgresDirectory) GetByID(ctx context.Context, id kernel.PositionID) (*position.Position, error) {
	conn := dbx.Conn(ctx, r.db)

	query := `
		SELECT id, title, description, location, status, is_visible,
			interview_flow_id, created_at, updated_at
		FROM positions
		WHERE id = $1
	`

	var model positionModel
	if err := conn.GetContext(ctx, &model, query, id.Int64()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, position.ErrPositionNotFound().WithDetail("position_id", id.String())
		}
		return nil, fmt.Errorf("failed to get position: %w", err)
	}

	var steps []stepModel
	if model.InterviewFlowID.Valid {
		stepsQuery := `
			SELECT id, name, order_index, interview_type
			FROM interview_steps
			WHERE interview_flow_id = $1
			ORDER BY order_index ASC, id ASC
		`
		if err := conn.SelectContext(ctx, &steps, stepsQuery, model.InterviewFlowID.Int64); err != nil {
			return nil, fmt.Errorf("failed to get interview steps: %w", err)
		}
	}

	return model.toEntity(steps), nil
}
