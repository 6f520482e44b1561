package migrations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/dbx"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/kernel"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/position"
)

// DemoPosition is the open position used for local runs: three interview
// steps from screening to the hiring manager.
func DemoPosition(now time.Time) *position.Position {
	return &position.Position{
		Title:       "Senior Full-Stack Engineer",
		Description: "Develop and maintain the candidate tracking platform",
		Location:    "Remote",
		Status:      position.PositionStatusOpen,
		IsVisible:   true,
		InterviewSteps: []position.InterviewStep{
			{Name: "Initial Screening", OrderIndex: 1, InterviewType: "HR Interview"},
			{Name: "Technical Interview", OrderIndex: 2, InterviewType: "Technical Interview"},
			{Name: "Manager Interview", OrderIndex: 3, InterviewType: "Manager Interview"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Seed inserts the demo position unless a position with its title exists,
// and returns the position's id.
func Seed(ctx context.Context, db *sqlx.DB) (kernel.PositionID, error) {
	demo := DemoPosition(time.Now())

	var existing int64
	err := db.GetContext(ctx, &existing, `SELECT id FROM positions WHERE title = $1 ORDER BY id LIMIT 1`, string(demo.Title))
	if err == nil {
		return kernel.PositionID(existing), nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("look up demo position: %w", err)
	}

	var id int64
	err = dbx.NewTransactor(db).WithinTx(ctx, func(ctx context.Context) error {
		conn := dbx.Conn(ctx, db)

		var flowID int64
		if err := conn.QueryRowxContext(ctx,
			`INSERT INTO interview_flows (description) VALUES ($1) RETURNING id`,
			"Standard development interview process",
		).Scan(&flowID); err != nil {
			return fmt.Errorf("insert interview flow: %w", err)
		}

		for _, s := range demo.InterviewSteps {
			if _, err := conn.ExecContext(ctx, `
				INSERT INTO interview_steps (interview_flow_id, name, order_index, interview_type)
				VALUES ($1, $2, $3, $4)
			`, flowID, string(s.Name), s.OrderIndex, s.InterviewType); err != nil {
				return fmt.Errorf("insert interview step %s: %w", s.Name, err)
			}
		}

		if err := conn.QueryRowxContext(ctx, `
			INSERT INTO positions (title, description, location, status, is_visible, interview_flow_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`,
			string(demo.Title),
			demo.Description,
			demo.Location,
			string(demo.Status),
			demo.IsVisible,
			flowID,
			demo.CreatedAt,
			demo.UpdatedAt,
		).Scan(&id); err != nil {
			return fmt.Errorf("insert position: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return kernel.PositionID(id), nil
}
