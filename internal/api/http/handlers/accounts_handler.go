package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/visitor-service/internal/api/dto"
	"github.com/spec-kit/visitor-service/internal/domain"
	"github.com/spec-kit/visitor-service/internal/service"
	apperrors "github.com/spec-kit/visitor-service/pkg/util"
)

// AccountsHandler exposes registration, login, and account admin endpoints.
type AccountsHandler struct {
	accounts *service.AccountService
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(accountService *service.AccountService) *AccountsHandler {
	return &AccountsHandler{accounts: accountService}
}

// Register handles POST /auth/accounts/register. Admin only; the role
// comes from the payload and residents get a linked unit record.
func (h *AccountsHandler) Register(c *fiber.Ctx) error {
	req, err := parseRegister(c)
	if err != nil {
		return err
	}

	account, err := h.accounts.Register(c.Context(), service.RegisterAccountInput{
		Username:  req.Username,
		Password:  req.Password,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Role:      domain.Role(req.Role),
		Building:  req.Building,
		Apartment: req.Apartment,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": accountSummary(account)})
}

// RegisterHost handles POST /auth/hosts/register. Security only.
func (h *AccountsHandler) RegisterHost(c *fiber.Ctx) error {
	return h.registerWithRole(c, domain.RoleHost)
}

// RegisterSecurity handles POST /auth/security/register.
func (h *AccountsHandler) RegisterSecurity(c *fiber.Ctx) error {
	return h.registerWithRole(c, domain.RoleSecurity)
}

func (h *AccountsHandler) registerWithRole(c *fiber.Ctx, role domain.Role) error {
	req, err := parseRegister(c)
	if err != nil {
		return err
	}

	account, err := h.accounts.Register(c.Context(), service.RegisterAccountInput{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     role,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": accountSummary(account)})
}

// Login handles the login routes for every role.
func (h *AccountsHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	account, token, exp, err := h.accounts.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"account": accountSummary(account),
			"auth":    dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// UpdateHostContact handles PUT /auth/hosts/contact. Security only.
func (h *AccountsHandler) UpdateHostContact(c *fiber.Ctx) error {
	var req dto.UpdateHostContactRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Phone == "" {
		return apperrors.NewValidationError("username and phone required", nil)
	}

	if err := h.accounts.UpdateHostContact(c.Context(), req.Username, req.Phone); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"username": req.Username, "phone": req.Phone}})
}

// Delete handles DELETE /auth/accounts/:username. Admin only.
func (h *AccountsHandler) Delete(c *fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return apperrors.NewValidationError("username required", nil)
	}
	if err := h.accounts.DeleteAccount(c.Context(), username); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": username}})
}

func parseRegister(c *fiber.Ctx) (*dto.RegisterRequest, error) {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" || req.Name == "" {
		return nil, apperrors.NewValidationError("username, password, name required", nil)
	}
	return &req, nil
}

func accountSummary(account *domain.Account) dto.AccountSummary {
	return dto.AccountSummary{
		ID:       account.ID,
		Username: account.Username,
		Name:     account.Name,
		Role:     string(account.Role),
		Email:    account.Email,
		Phone:    account.Phone,
	}
}
