package candidate

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/kernel"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/application"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})
	return v
}

// ParseDate accepts a calendar date (2006-01-02) or an RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ErrValidationFailed().WithDetail("reason", err.Error())
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		ns := fe.Namespace()
		if _, rest, ok := strings.Cut(ns, "."); ok {
			ns = rest
		}
		fields[ns] = fe.Tag()
	}
	return ErrValidationFailed().WithDetail("fields", fields)
}

// ============================================================================
// Requests
// ============================================================================

// CreateCandidateRequest - DTO for adding a candidate together with the
// position they apply to
type CreateCandidateRequest struct {
	FirstName       string                  `json:"firstName" validate:"required,min=2,max=100"`
	LastName        string                  `json:"lastName" validate:"required,min=2,max=100"`
	Email           string                  `json:"email" validate:"required,email,max=255"`
	Phone           string                  `json:"phone,omitempty" validate:"omitempty,min=6,max=20"`
	Address         string                  `json:"address,omitempty" validate:"omitempty,max=100"`
	Educations      []EducationRequest      `json:"educations,omitempty" validate:"omitempty,max=3,dive"`
	WorkExperiences []WorkExperienceRequest `json:"workExperiences,omitempty" validate:"omitempty,dive"`
	CV              *ResumeRequest          `json:"cv,omitempty"`
	PositionID      kernel.PositionID       `json:"positionId" validate:"required,gt=0"`
}

type EducationRequest struct {
	Institution string `json:"institution" validate:"required,max=100"`
	Title       string `json:"title" validate:"required,max=250"`
	StartDate   string `json:"startDate" validate:"required,isodate"`
	EndDate     string `json:"endDate,omitempty" validate:"omitempty,isodate"`
}

type WorkExperienceRequest struct {
	Company     string `json:"company" validate:"required,max=100"`
	Position    string `json:"position" validate:"required,max=100"`
	Description string `json:"description,omitempty" validate:"omitempty,max=200"`
	StartDate   string `json:"startDate" validate:"required,isodate"`
	EndDate     string `json:"endDate,omitempty" validate:"omitempty,isodate"`
}

type ResumeRequest struct {
	FilePath string `json:"filePath" validate:"required,max=500"`
	FileType string `json:"fileType" validate:"required,oneof=application/pdf application/vnd.openxmlformats-officedocument.wordprocessingml.document"`
}

// Validate checks field constraints and returns a VALIDATION_FAILED error
// listing each failing field.
func (r CreateCandidateRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return validationError(err)
	}
	return nil
}

// ToCandidate builds the entity to persist. Call Validate first.
func (r CreateCandidateRequest) ToCandidate(now time.Time) (*Candidate, error) {
	c := &Candidate{
		FirstName:       kernel.FirstName(strings.TrimSpace(r.FirstName)),
		LastName:        kernel.LastName(strings.TrimSpace(r.LastName)),
		Email:           kernel.Email(r.Email).Normalize(),
		Phone:           kernel.Phone(strings.TrimSpace(r.Phone)),
		Address:         strings.TrimSpace(r.Address),
		Educations:      make([]Education, 0, len(r.Educations)),
		WorkExperiences: make([]WorkExperience, 0, len(r.WorkExperiences)),
		Resumes:         []Resume{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	for _, e := range r.Educations {
		start, end, err := parseRange(e.StartDate, e.EndDate)
		if err != nil {
			return nil, err
		}
		c.Educations = append(c.Educations, Education{
			Institution: e.Institution,
			Title:       e.Title,
			StartDate:   start,
			EndDate:     end,
		})
	}

	for _, w := range r.WorkExperiences {
		start, end, err := parseRange(w.StartDate, w.EndDate)
		if err != nil {
			return nil, err
		}
		c.WorkExperiences = append(c.WorkExperiences, WorkExperience{
			Company:     w.Company,
			Position:    w.Position,
			Description: w.Description,
			StartDate:   start,
			EndDate:     end,
		})
	}

	if r.CV != nil {
		c.Resumes = append(c.Resumes, Resume{
			FilePath:   kernel.FilePath(r.CV.FilePath),
			FileType:   kernel.FileType(r.CV.FileType),
			UploadDate: now,
		})
	}

	return c, nil
}

func parseRange(startRaw, endRaw string) (time.Time, *time.Time, error) {
	start, err := ParseDate(startRaw)
	if err != nil {
		return time.Time{}, nil, ErrValidationFailed().WithDetail("startDate", startRaw)
	}
	if endRaw == "" {
		return start, nil, nil
	}
	end, err := ParseDate(endRaw)
	if err != nil {
		return time.Time{}, nil, ErrValidationFailed().WithDetail("endDate", endRaw)
	}
	if end.Before(start) {
		return time.Time{}, nil, ErrValidationFailed().
			WithDetail("endDate", "must not be before startDate")
	}
	return start, &end, nil
}

// UpdateStageRequest - DTO for moving a candidate's application to another
// interview step. PositionID selects the application when the candidate has
// applied to several positions; otherwise the latest application is used.
type UpdateStageRequest struct {
	CandidateID          kernel.CandidateID `json:"-"`
	CurrentInterviewStep *int               `json:"currentInterviewStep" validate:"required,gte=0"`
	PositionID           *kernel.PositionID `json:"positionId,omitempty" validate:"omitempty,gt=0"`
}

func (r UpdateStageRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return validationError(err)
	}
	return nil
}

// ============================================================================
// Responses
// ============================================================================

// CandidateWithApplication - result of adding a candidate
type CandidateWithApplication struct {
	*Candidate
	Application *application.Application `json:"application"`
}

// ApplicationSummary - one application as shown on the candidate detail
type ApplicationSummary struct {
	ID                       kernel.ApplicationID `json:"id"`
	PositionID               kernel.PositionID    `json:"positionId"`
	PositionTitle            string               `json:"positionTitle,omitempty"`
	ApplicationDate          time.Time            `json:"applicationDate"`
	CurrentInterviewStep     int                  `json:"currentInterviewStep"`
	CurrentInterviewStepName string               `json:"currentInterviewStepName,omitempty"`
}

// CandidateDetails - candidate with their applications
type CandidateDetails struct {
	*Candidate
	Applications []ApplicationSummary `json:"applications"`
}

// CandidateAtPosition - one row of the by-position listing
type CandidateAtPosition struct {
	ApplicationID            kernel.ApplicationID `json:"applicationId"`
	CandidateID              kernel.CandidateID   `json:"candidateId"`
	FullName                 string               `json:"fullName"`
	Email                    kernel.Email         `json:"email"`
	CurrentInterviewStep     int                  `json:"currentInterviewStep"`
	CurrentInterviewStepName string               `json:"currentInterviewStepName,omitempty"`
}
