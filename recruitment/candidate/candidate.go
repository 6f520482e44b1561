package candidate

import (
	"time"

	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/kernel"
)

type Candidate struct {
	ID              kernel.CandidateID `db:"id" json:"id"`
	FirstName       kernel.FirstName   `db:"first_name" json:"firstName"`
	LastName        kernel.LastName    `db:"last_name" json:"lastName"`
	Email           kernel.Email       `db:"email" json:"email"`
	Phone           kernel.Phone       `db:"phone" json:"phone,omitempty"`
	Address         string             `db:"address" json:"address,omitempty"`
	Educations      []Education        `db:"-" json:"educations"`
	WorkExperiences []WorkExperience   `db:"-" json:"workExperiences"`
	Resumes         []Resume           `db:"-" json:"resumes"`
	CreatedAt       time.Time          `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time          `db:"updated_at" json:"updatedAt"`
}

type Education struct {
	Institution string     `db:"institution" json:"institution"`
	Title       string     `db:"title" json:"title"`
	StartDate   time.Time  `db:"start_date" json:"startDate"`
	EndDate     *time.Time `db:"end_date" json:"endDate,omitempty"`
}

type WorkExperience struct {
	Company     string     `db:"company" json:"company"`
	Position    string     `db:"position" json:"position"`
	Description string     `db:"description" json:"description,omitempty"`
	StartDate   time.Time  `db:"start_date" json:"startDate"`
	EndDate     *time.Time `db:"end_date" json:"endDate,omitempty"`
}

type Resume struct {
	FilePath   kernel.FilePath `db:"file_path" json:"filePath"`
	FileType   kernel.FileType `db:"file_type" json:"fileType"`
	UploadDate time.Time       `db:"upload_date" json:"uploadDate"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// GetFullName returns the candidate's full name
func (c *Candidate) GetFullName() string {
	return kernel.FullName(c.FirstName, c.LastName)
}

// HasResume reports whether at least one CV is attached
func (c *Candidate) HasResume() bool {
	return len(c.Resumes) > 0
}

// LatestResume returns the most recently uploaded CV, if any
func (c *Candidate) LatestResume() (Resume, bool) {
	if !c.HasResume() {
		return Resume{}, false
	}
	latest := c.Resumes[0]
	for _, r := range c.Resumes[1:] {
		if r.UploadDate.After(latest.UploadDate) {
			latest = r
		}
	}
	return latest, true
}
