package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/visitor-service/internal/api/dto"
	"github.com/spec-kit/visitor-service/internal/auth"
	"github.com/spec-kit/visitor-service/internal/domain"
	"github.com/spec-kit/visitor-service/internal/service"
	apperrors "github.com/spec-kit/visitor-service/pkg/util"
)

// PassesHandler manages visitor-pass endpoints.
type PassesHandler struct {
	passes *service.PassService
}

// NewPassesHandler constructs handler.
func NewPassesHandler(passService *service.PassService) *PassesHandler {
	return &PassesHandler{passes: passService}
}

// Issue handles POST /passes. Any token holder may issue a pass for a
// visitor; the issuer is taken from the principal.
func (h *PassesHandler) Issue(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.IssuePassRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.VisitorID == "" || req.ValidUntil.IsZero() {
		return apperrors.NewValidationError("visitor_id and valid_until required", nil)
	}

	pass, err := h.passes.Issue(c.Context(), principal.Account.ID, req.VisitorID, req.ValidUntil)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": passResponse(pass)})
}

// Retrieve handles GET /passes/:visitorID. Public read for visitors.
func (h *PassesHandler) Retrieve(c *fiber.Ctx) error {
	visitorID := c.Params("visitorID")
	if visitorID == "" {
		return apperrors.NewValidationError("visitor id required", nil)
	}

	pass, err := h.passes.Retrieve(c.Context(), visitorID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": passResponse(pass)})
}

// HostContact handles GET /passes/:passID/host-contact. Security only.
func (h *PassesHandler) HostContact(c *fiber.Ctx) error {
	passID := c.Params("passID")
	if passID == "" {
		return apperrors.NewValidationError("pass id required", nil)
	}

	contact, err := h.passes.ResolveHostContact(c.Context(), passID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.HostContactResponse{Name: contact.Name, Phone: contact.Phone}})
}

func passResponse(pass *domain.VisitorPass) dto.PassResponse {
	return dto.PassResponse{
		ID:         pass.ID,
		VisitorID:  pass.VisitorID,
		IssuedBy:   pass.IssuedBy,
		ValidUntil: pass.ValidUntil,
		IssuedAt:   pass.IssuedAt,
	}
}
