package resumeapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/iam/auth"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/resume"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/resume/resumesrv"
)

type ResumeHandlers struct {
	service *resumesrv.Service
}

func NewResumeHandlers(service *resumesrv.Service) *ResumeHandlers {
	return &ResumeHandlers{service: service}
}

func (h *ResumeHandlers) RegisterRoutes(router fiber.Router, authMiddleware *auth.TokenMiddleware) {
	router.Post("/upload",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeResumesWrite),
		h.Upload,
	)
}

// Upload stores a CV sent as the multipart field "file"
// POST /upload
func (h *ResumeHandlers) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return resume.ErrFileRequired()
	}

	uploadedFile, err := file.Open()
	if err != nil {
		return resume.ErrFileRequired().WithDetail("reason", err.Error())
	}
	defer uploadedFile.Close()

	stored, err := h.service.Upload(c.UserContext(), resumesrv.UploadRequest{
		Filename:    file.Filename,
		ContentType: file.Header.Get(fiber.HeaderContentType),
		Size:        file.Size,
		Body:        uploadedFile,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"filePath": stored.FilePath,
		"fileType": stored.FileType,
	})
}
