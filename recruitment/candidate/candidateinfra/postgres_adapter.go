package candidateinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/dbx"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/kernel"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/candidate"
	"github.com/jmoiron/sqlx"
)

const emailConstraint = "candidates_email_key"

type PostgresCandidateRepository struct {
	db *sqlx.DB
	tx dbx.Transactor
}

func NewPostgresCandidateRepository(db *sqlx.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{db: db, tx: dbx.NewTransactor(db)}
}

// ============================================================================
// Database Models
// ============================================================================

type candidateModel struct {
	ID        int64          `db:"id"`
	FirstName string         `db:"first_name"`
	LastName  string         `db:"last_name"`
	Email     string         `db:"email"`
	Phone     sql.NullString `db:"phone"`
	Address   sql.NullString `db:"address"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

type educationModel struct {
	CandidateID int64        `db:"candidate_id"`
	Institution string       `db:"institution"`
	Title       string       `db:"title"`
	StartDate   time.Time    `db:"start_date"`
	EndDate     sql.NullTime `db:"end_date"`
}

type workExperienceModel struct {
	CandidateID int64          `db:"candidate_id"`
	Company     string         `db:"company"`
	Position    string         `db:"position"`
	Description sql.NullString `db:"description"`
	StartDate   time.Time      `db:"start_date"`
	EndDate     sql.NullTime   `db:"end_date"`
}

type resumeModel struct {
	CandidateID int64     `db:"candidate_id"`
	FilePath    string    `db:"file_path"`
	FileType    string    `db:"file_type"`
	UploadDate  time.Time `db:"upload_date"`
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func (m *candidateModel) toEntity() *candidate.Candidate {
	return &candidate.Candidate{
		ID:              kernel.CandidateID(m.ID),
		FirstName:       kernel.FirstName(m.FirstName),
		LastName:        kernel.LastName(m.LastName),
		Email:           kernel.Email(m.Email),
		Phone:           kernel.Phone(m.Phone.String),
		Address:         m.Address.String,
		Educations:      []candidate.Education{},
		WorkExperiences: []candidate.WorkExperience{},
		Resumes:         []candidate.Resume{},
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create inserts the candidate and its sub-records in one transaction,
// joining the caller's transaction when ctx carries one.
func (r *PostgresCandidateRepository) Create(ctx context.Context, c *candidate.Candidate) error {
	return r.tx.WithinTx(ctx, func(ctx context.Context) error {
		conn := dbx.Conn(ctx, r.db)

		query := `
			INSERT INTO candidates (first_name, last_name, email, phone, address, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`

		var id int64
		err := conn.QueryRowxContext(ctx, query,
			string(c.FirstName),
			string(c.LastName),
			c.Email.String(),
			nullString(string(c.Phone)),
			nullString(c.Address),
			c.CreatedAt,
			c.UpdatedAt,
		).Scan(&id)
		if err != nil {
			if dbx.IsUniqueViolation(err, emailConstraint) {
				return candidate.ErrEmailAlreadyExists().WithDetail("email", c.Email.String())
			}
			return fmt.Errorf("failed to insert candidate: %w", err)
		}

		for _, e := range c.Educations {
			_, err := conn.NamedExecContext(ctx, `
				INSERT INTO educations (candidate_id, institution, title, start_date, end_date)
				VALUES (:candidate_id, :institution, :title, :start_date, :end_date)
			`, educationModel{
				CandidateID: id,
				Institution: e.Institution,
				Title:       e.Title,
				StartDate:   e.StartDate,
				EndDate:     nullTime(e.EndDate),
			})
			if err != nil {
				return fmt.Errorf("failed to insert education: %w", err)
			}
		}

		for _, w := range c.WorkExperiences {
			_, err := conn.NamedExecContext(ctx, `
				INSERT INTO work_experiences (candidate_id, company, position, description, start_date, end_date)
				VALUES (:candidate_id, :company, :position, :description, :start_date, :end_date)
			`, workExperienceModel{
				CandidateID: id,
				Company:     w.Company,
				Position:    w.Position,
				Description: nullString(w.Description),
				StartDate:   w.StartDate,
				EndDate:     nullTime(w.EndDate),
			})
			if err != nil {
				return fmt.Errorf("failed to insert work experience: %w", err)
			}
		}

		for _, res := range c.Resumes {
			_, err := conn.NamedExecContext(ctx, `
				INSERT INTO resumes (candidate_id, file_path, file_type, upload_date)
				VALUES (:candidate_id, :file_path, :file_type, :upload_date)
			`, resumeModel{
				CandidateID: id,
				FilePath:    string(res.FilePath),
				FileType:    string(res.FileType),
				UploadDate:  res.UploadDate,
			})
			if err != nil {
				return fmt.Errorf("failed to insert resume: %w", err)
			}
		}

		c.ID = kernel.CandidateID(id)
		return nil
	})
}

// GetByID retrieves a candidate with educations, work experiences and resumes
func (r *PostgresCandidateRepository) GetByID(ctx context.Context, id kernel.CandidateID) (*candidate.Candidate, error) {
	conn := dbx.Conn(ctx, r.db)

	query := `
		SELECT id, first_name, last_name, email, phone, address, created_at, updated_at
		FROM candidates
		WHERE id = $1
	`

	var model candidateModel
	if err := conn.GetContext(ctx, &model, query, id.Int64()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, candidate.ErrCandidateNotFound().WithDetail("candidate_id", id.String())
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	c := model.toEntity()

	var educations []educationModel
	if err := conn.SelectContext(ctx, &educations, `
		SELECT candidate_id, institution, title, start_date, end_date
		FROM educations
		WHERE candidate_id = $1
		ORDER BY id ASC
	`, model.ID); err != nil {
		return nil, fmt.Errorf("failed to get educations: %w", err)
	}
	for _, e := range educations {
		c.Educations = append(c.Educations, candidate.Education{
			Institution: e.Institution,
			Title:       e.Title,
			StartDate:   e.StartDate,
			EndDate:     timePtr(e.EndDate),
		})
	}

	var experiences []workExperienceModel
	if err := conn.SelectContext(ctx, &experiences, `
		SELECT candidate_id, company, position, description, start_date, end_date
		FROM work_experiences
		WHERE candidate_id = $1
		ORDER BY id ASC
	`, model.ID); err != nil {
		return nil, fmt.Errorf("failed to get work experiences: %w", err)
	}
	for _, w := range experiences {
		c.WorkExperiences = append(c.WorkExperiences, candidate.WorkExperience{
			Company:     w.Company,
			Position:    w.Position,
			Description: w.Description.String,
			StartDate:   w.StartDate,
			EndDate:     timePtr(w.EndDate),
		})
	}

	var resumes []resumeModel
	if err := conn.SelectContext(ctx, &resumes, `
		SELECT candidate_id, file_path, file_type, upload_date
		FROM resumes
		WHERE candidate_id = $1
		ORDER BY upload_date ASC, id ASC
	`, model.ID); err != nil {
		return nil, fmt.Errorf("failed to get resumes: %w", err)
	}
	for _, res := range resumes {
		c.Resumes = append(c.Resumes, candidate.Resume{
			FilePath:   kernel.FilePath(res.FilePath),
			FileType:   kernel.FileType(res.FileType),
			UploadDate: res.UploadDate,
		})
	}

	return c, nil
}
