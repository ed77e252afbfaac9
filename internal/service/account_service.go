package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/visitor-service/internal/auth"
	"github.com/spec-kit/visitor-service/internal/config"
	"github.com/spec-kit/visitor-service/internal/domain"
	"github.com/spec-kit/visitor-service/internal/repository"
	apperrors "github.com/spec-kit/visitor-service/pkg/util"
)

// AccountService coordinates registration, login, and account
// administration flows.
type AccountService struct {
	accounts   repository.AccountRepository
	residents  repository.ResidentRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AccountDependencies encapsulates repo requirements for account service.
type AccountDependencies struct {
	AccountRepo  repository.AccountRepository
	ResidentRepo repository.ResidentRepository
}

// NewAccountService builds the service.
func NewAccountService(cfg config.Config, deps AccountDependencies) *AccountService {
	return &AccountService{
		accounts:   deps.AccountRepo,
		residents:  deps.ResidentRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// RegisterAccountInput describes a registration payload.
type RegisterAccountInput struct {
	Username  string
	Password  string
	Name      string
	Email     *string
	Phone     *string
	Role      domain.Role
	Building  string
	Apartment string
}

// Register creates an account. Accounts of role resident also get a
// linked resident record; a failure on that second insert leaves the
// account in place, matching the store's non-transactional contract.
func (s *AccountService) Register(ctx context.Context, input RegisterAccountInput) (*domain.Account, error) {
	if !input.Role.Valid() {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": input.Role})
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	account := &domain.Account{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
		Name:         input.Name,
		Phone:        input.Phone,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("username or email already registered", nil)
		}
		return nil, apperrors.NewInternalError(err)
	}

	if input.Role == domain.RoleResident {
		resident := &domain.Resident{
			Name:      input.Name,
			Building:  input.Building,
			Apartment: input.Apartment,
		}
		if input.Phone != nil {
			resident.Phone = *input.Phone
		}
		if err := s.residents.Create(ctx, resident); err != nil {
			return nil, apperrors.NewInternalError(err)
		}
	}

	return account, nil
}

// Login authenticates by username and issues a role-bearing token.
func (s *AccountService) Login(ctx context.Context, username, password string) (*domain.Account, string, time.Time, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, exp, err := s.tokenMgr.GenerateToken(account)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return account, token, exp, nil
}

// UpdateHostContact updates the phone number of a host account.
func (s *AccountService) UpdateHostContact(ctx context.Context, username, phone string) error {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("host", map[string]any{"username": username})
		}
		return apperrors.NewInternalError(err)
	}
	if account.Role != domain.RoleHost {
		return apperrors.NewNotFound("host", map[string]any{"username": username})
	}
	if err := s.accounts.UpdatePhone(ctx, username, phone); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

// DeleteAccount removes an account and, for residents, the linked
// resident record.
func (s *AccountService) DeleteAccount(ctx context.Context, username string) error {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("account", map[string]any{"username": username})
		}
		return apperrors.NewInternalError(err)
	}

	if err := s.accounts.Delete(ctx, username); err != nil {
		return apperrors.NewInternalError(err)
	}

	if account.Role == domain.RoleResident {
		if err := s.residents.DeleteByName(ctx, account.Name); err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewInternalError(err)
		}
	}
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AccountService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
