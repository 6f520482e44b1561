package positionapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/iam/auth"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/kernel"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/candidate/candidatesrv"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/position"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/position/positionsrv"
)

// Handlers provides HTTP handlers for position operations
type Handlers struct {
	positions  *positionsrv.PositionService
	candidates *candidatesrv.CandidateService
}

// NewHandlers creates a new position handlers instance
func NewHandlers(positions *positionsrv.PositionService, candidates *candidatesrv.CandidateService) *Handlers {
	return &Handlers{
		positions:  positions,
		candidates: candidates,
	}
}

// GetCandidatesByPosition lists the candidates in a position's pipeline
// GET /positions/:id/candidates
func (h *Handlers) GetCandidatesByPosition(c *fiber.Ctx) error {
	positionID, err := kernel.ParsePositionID(c.Params("id"))
	if err != nil {
		return position.ErrInvalidID().WithDetail("id", c.Params("id"))
	}

	candidates, err := h.candidates.GetCandidatesByPosition(c.UserContext(), positionID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": candidates})
}

// GetInterviewFlow returns a position's ordered interview steps
// GET /positions/:id/interviewFlow
func (h *Handlers) GetInterviewFlow(c *fiber.Ctx) error {
	positionID, err := kernel.ParsePositionID(c.Params("id"))
	if err != nil {
		return position.ErrInvalidID().WithDetail("id", c.Params("id"))
	}

	flow, err := h.positions.GetInterviewFlow(c.UserContext(), positionID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": flow})
}

// RegisterRoutes registers all position routes
func RegisterRoutes(router fiber.Router, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := router.Group("/positions")

	api.Get("/:id/candidates",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopePositionsRead),
		handlers.GetCandidatesByPosition,
	)

	api.Get("/:id/interviewFlow",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopePositionsRead),
		handlers.GetInterviewFlow,
	)
}
