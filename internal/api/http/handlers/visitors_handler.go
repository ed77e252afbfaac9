package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/visitor-service/internal/api/dto"
	"github.com/spec-kit/visitor-service/internal/auth"
	"github.com/spec-kit/visitor-service/internal/domain"
	"github.com/spec-kit/visitor-service/internal/service"
	apperrors "github.com/spec-kit/visitor-service/pkg/util"
)

const stampLayout = "2006-01-02 15:04:05"

// VisitorsHandler manages visitor lifecycle endpoints.
type VisitorsHandler struct {
	visitors *service.VisitorService
}

// NewVisitorsHandler constructs handler.
func NewVisitorsHandler(visitorService *service.VisitorService) *VisitorsHandler {
	return &VisitorsHandler{visitors: visitorService}
}

// Register handles POST /visitors. Any token holder; the visitor is
// linked to the requester's unit when the requester is a known resident.
func (h *VisitorsHandler) Register(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	req, err := parseRegisterVisitor(c)
	if err != nil {
		return err
	}

	visitor, err := h.visitors.Register(c.Context(), principal.Account.Name, service.VisitorCreateInput{
		Name:    req.Name,
		Contact: req.Contact,
		Gender:  req.Gender,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": visitorResponse(visitor)})
}

// RegisterWalkIn handles POST /visitors/security. Security only; the
// walk-in form carries the host name and extra identity fields.
func (h *VisitorsHandler) RegisterWalkIn(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	req, err := parseRegisterVisitor(c)
	if err != nil {
		return err
	}

	visitor, err := h.visitors.Register(c.Context(), principal.Account.Name, service.VisitorCreateInput{
		Name:        req.Name,
		Contact:     req.Contact,
		Gender:      req.Gender,
		WhomToVisit: req.WhomToVisit,
		Age:         req.Age,
		Address:     req.Address,
		Zipcode:     req.Zipcode,
		Relation:    req.Relation,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": visitorResponse(visitor)})
}

// List handles GET /visitors. Admins see everything, everyone else
// only their own visitors.
func (h *VisitorsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	visitors, err := h.visitors.List(c.Context(), principal.Account.Name, principal.Role)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": visitorResponses(visitors)})
}

// Access handles GET /visitors/access. Public gate lookup by contact.
func (h *VisitorsHandler) Access(c *fiber.Ctx) error {
	contact := c.Query("contact")
	if contact == "" {
		return apperrors.NewValidationError("contact required", nil)
	}

	visitors, err := h.visitors.FindByContact(c.Context(), contact)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": visitorResponses(visitors)})
}

// UpdateContact handles PATCH /visitors/contact.
func (h *VisitorsHandler) UpdateContact(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateVisitorContactRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Contact == "" || req.NewContact == "" {
		return apperrors.NewValidationError("contact and new_contact required", nil)
	}

	if err := h.visitors.UpdateContact(c.Context(), principal.Account.Name, req.Contact, req.NewContact); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"contact": req.NewContact}})
}

// CheckIn handles PATCH /visitors/checkin.
func (h *VisitorsHandler) CheckIn(c *fiber.Ctx) error {
	accessPass, err := parseAccessPass(c)
	if err != nil {
		return err
	}
	visitor, err := h.visitors.CheckIn(c.Context(), accessPass)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": visitorResponse(visitor)})
}

// CheckOut handles PATCH /visitors/checkout.
func (h *VisitorsHandler) CheckOut(c *fiber.Ctx) error {
	accessPass, err := parseAccessPass(c)
	if err != nil {
		return err
	}
	visitor, err := h.visitors.CheckOut(c.Context(), accessPass)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": visitorResponse(visitor)})
}

// Delete handles DELETE /visitors/:accessPass.
func (h *VisitorsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	accessPass := c.Params("accessPass")
	if accessPass == "" {
		return apperrors.NewValidationError("access pass required", nil)
	}

	if err := h.visitors.Delete(c.Context(), principal.Account.Name, principal.Role, accessPass); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": accessPass}})
}

func parseRegisterVisitor(c *fiber.Ctx) (*dto.RegisterVisitorRequest, error) {
	var req dto.RegisterVisitorRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Contact == "" {
		return nil, apperrors.NewValidationError("name and contact required", nil)
	}
	return &req, nil
}

func parseAccessPass(c *fiber.Ctx) (string, error) {
	var req dto.AccessPassRequest
	if err := c.BodyParser(&req); err != nil {
		return "", apperrors.NewValidationError("invalid payload", nil)
	}
	if req.AccessPass == "" {
		return "", apperrors.NewValidationError("access_pass required", nil)
	}
	return req.AccessPass, nil
}

func visitorResponses(visitors []domain.Visitor) []dto.VisitorResponse {
	items := make([]dto.VisitorResponse, 0, len(visitors))
	for i := range visitors {
		items = append(items, visitorResponse(&visitors[i]))
	}
	return items
}

func visitorResponse(v *domain.Visitor) dto.VisitorResponse {
	return dto.VisitorResponse{
		ID:           v.ID,
		AccessPass:   v.AccessPass,
		Name:         v.Name,
		Contact:      v.Contact,
		Gender:       v.Gender,
		Building:     v.Building,
		Apartment:    v.Apartment,
		WhomToVisit:  v.WhomToVisit,
		EntryTime:    stamp(v.EntryTime),
		CheckoutTime: stamp(v.CheckoutTime),
		Age:          v.Age,
		Address:      v.Address,
		Zipcode:      v.Zipcode,
		Relation:     v.Relation,
	}
}

func stamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(stampLayout)
	return &formatted
}
