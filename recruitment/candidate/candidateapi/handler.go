package candidateapi

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/errx"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/httpx"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/iam/auth"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/kernel"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/candidate"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/candidate/candidatesrv"
)

var createCandidateSchema = httpx.MustSchema(`{
	"type": "object",
	"required": ["firstName", "lastName", "email", "positionId"],
	"properties": {
		"firstName": {"type": "string"},
		"lastName": {"type": "string"},
		"email": {"type": "string"},
		"phone": {"type": "string"},
		"address": {"type": "string"},
		"positionId": {"type": "integer", "minimum": 1},
		"educations": {"type": "array", "items": {"type": "object"}},
		"workExperiences": {"type": "array", "items": {"type": "object"}},
		"cv": {"type": "object"}
	}
}`)

var updateStageSchema = httpx.MustSchema(`{
	"type": "object",
	"required": ["currentInterviewStep"],
	"properties": {
		"currentInterviewStep": {"type": "integer", "minimum": 0},
		"positionId": {"type": "integer", "minimum": 1}
	}
}`)

// Handlers provides HTTP handlers for candidate operations
type Handlers struct {
	service *candidatesrv.CandidateService
}

// NewHandlers creates a new candidate handlers instance
func NewHandlers(service *candidatesrv.CandidateService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// AddCandidate creates a candidate and their first application
// POST /candidates
func (h *Handlers) AddCandidate(c *fiber.Ctx) error {
	var req candidate.CreateCandidateRequest
	if err := httpx.ValidateBody(createCandidateSchema, c.Body()); err != nil {
		return addCandidateError(c, err)
	}
	if err := c.BodyParser(&req); err != nil {
		return addCandidateError(c, httpx.ErrInvalidBody().WithDetail("parse_error", err.Error()))
	}

	created, err := h.service.AddCandidate(c.UserContext(), req)
	if err != nil {
		return addCandidateError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Candidate added successfully",
		"data":    created,
	})
}

// addCandidateError answers client errors with 400 and leaves server errors
// to the global error handler.
func addCandidateError(c *fiber.Ctx, err error) error {
	e, ok := errx.As(err)
	if !ok || e.HTTPStatus >= http.StatusInternalServerError {
		return err
	}

	body := fiber.Map{
		"message": "Error adding candidate",
		"error":   e.Message,
		"code":    e.Code,
	}
	if len(e.Details) > 0 {
		body["details"] = e.Details
	}
	return c.Status(fiber.StatusBadRequest).JSON(body)
}

// GetCandidateByID retrieves a candidate with their applications
// GET /candidates/:id
func (h *Handlers) GetCandidateByID(c *fiber.Ctx) error {
	candidateID, err := kernel.ParseCandidateID(c.Params("id"))
	if err != nil {
		return candidate.ErrInvalidID().WithDetail("id", c.Params("id"))
	}

	details, err := h.service.FindCandidateByID(c.UserContext(), candidateID)
	if err != nil {
		return err
	}
	if details == nil {
		return candidate.ErrCandidateNotFound().WithDetail("candidate_id", candidateID.String())
	}

	return c.JSON(fiber.Map{"data": details})
}

// UpdateCandidateStage moves a candidate's application to another interview step
// PUT /candidates/:id/stage
func (h *Handlers) UpdateCandidateStage(c *fiber.Ctx) error {
	candidateID, err := kernel.ParseCandidateID(c.Params("id"))
	if err != nil {
		return candidate.ErrInvalidStageUpdate().WithDetail("id", c.Params("id"))
	}

	if err := httpx.ValidateBody(updateStageSchema, c.Body()); err != nil {
		invalid := candidate.ErrInvalidStageUpdate()
		if e, ok := errx.As(err); ok {
			invalid = invalid.WithDetails(e.Details)
		}
		return invalid
	}

	var req candidate.UpdateStageRequest
	if err := c.BodyParser(&req); err != nil {
		return candidate.ErrInvalidStageUpdate().WithDetail("parse_error", err.Error())
	}
	req.CandidateID = candidateID

	updated, err := h.service.UpdateCandidateStage(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Candidate stage updated successfully",
		"data":    updated,
	})
}

// RegisterRoutes registers all candidate routes
func RegisterRoutes(router fiber.Router, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := router.Group("/candidates")

	api.Post("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCandidatesWrite),
		handlers.AddCandidate,
	)

	api.Get("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCandidatesRead),
		handlers.GetCandidateByID,
	)

	api.Put("/:id/stage",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCandidatesWrite),
		handlers.UpdateCandidateStage,
	)

	api.Patch("/:id/stage",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCandidatesWrite),
		handlers.UpdateCandidateStage,
	)

	// Legacy clients update the stage on the candidate resource itself
	api.Put("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCandidatesWrite),
		handlers.UpdateCandidateStage,
	)
}
