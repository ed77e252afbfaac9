package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/visitor-service/internal/domain"
	"github.com/spec-kit/visitor-service/internal/events"
	"github.com/spec-kit/visitor-service/internal/repository"
	apperrors "github.com/spec-kit/visitor-service/pkg/util"
)

const passCacheTTL = 5 * time.Minute

// PassService issues and resolves visitor passes.
type PassService struct {
	passes     repository.PassRepository
	accounts   repository.AccountRepository
	cache      *redis.Client
	dispatcher events.Dispatcher
	now        func() time.Time
}

// PassDependencies bundles requirements for pass service. Cache is
// optional; lookups fall through to the store when it is nil or down.
type PassDependencies struct {
	PassRepo    repository.PassRepository
	AccountRepo repository.AccountRepository
	Cache       *redis.Client
	Dispatcher  events.Dispatcher
}

// NewPassService builds the service.
func NewPassService(deps PassDependencies) *PassService {
	return &PassService{
		passes:     deps.PassRepo,
		accounts:   deps.AccountRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		now:        time.Now,
	}
}

// Issue persists a new pass for the visitor. Passes are immutable once
// issued; the issue timestamp is server-assigned.
func (s *PassService) Issue(ctx context.Context, issuerID, visitorID string, validUntil time.Time) (*domain.VisitorPass, error) {
	if validUntil.Before(s.now()) {
		return nil, apperrors.NewValidationError("valid_until must be in the future", nil)
	}

	pass := &domain.VisitorPass{
		VisitorID:  visitorID,
		IssuedBy:   issuerID,
		ValidUntil: validUntil,
	}
	if err := s.passes.Create(ctx, pass); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.invalidate(ctx, visitorID)

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventPassIssued,
			VisitorID: visitorID,
			Actor:     events.Actor{AccountID: &pass.IssuedBy},
			Timestamp: s.now(),
			Payload: events.PassIssuedPayload{
				PassID:     pass.ID,
				IssuedBy:   pass.IssuedBy,
				ValidUntil: pass.ValidUntil,
			},
		})
	}
	return pass, nil
}

// Retrieve returns the latest pass issued for a visitor. Public read;
// results are cached briefly.
func (s *PassService) Retrieve(ctx context.Context, visitorID string) (*domain.VisitorPass, error) {
	if cached := s.fromCache(ctx, visitorID); cached != nil {
		return cached, nil
	}

	pass, err := s.passes.GetLatestByVisitor(ctx, visitorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("visitor pass", map[string]any{"visitor_id": visitorID})
		}
		return nil, apperrors.NewInternalError(err)
	}

	s.toCache(ctx, visitorID, pass)
	return pass, nil
}

// HostContact holds the contact details resolved from a pass.
type HostContact struct {
	Name  string
	Phone string
}

// ResolveHostContact maps a pass id to the issuing host's phone number.
func (s *PassService) ResolveHostContact(ctx context.Context, passID string) (*HostContact, error) {
	pass, err := s.passes.GetByID(ctx, passID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("visitor pass", map[string]any{"pass_id": passID})
		}
		return nil, apperrors.NewInternalError(err)
	}

	host, err := s.accounts.GetByID(ctx, pass.IssuedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("host", map[string]any{"account_id": pass.IssuedBy})
		}
		return nil, apperrors.NewInternalError(err)
	}

	contact := &HostContact{Name: host.Name}
	if host.Phone != nil {
		contact.Phone = *host.Phone
	}
	return contact, nil
}

func passCacheKey(visitorID string) string {
	return "visitorpass:" + visitorID
}

func (s *PassService) fromCache(ctx context.Context, visitorID string) *domain.VisitorPass {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, passCacheKey(visitorID)).Bytes()
	if err != nil {
		return nil
	}
	var pass domain.VisitorPass
	if err := json.Unmarshal(raw, &pass); err != nil {
		return nil
	}
	return &pass
}

func (s *PassService) toCache(ctx context.Context, visitorID string, pass *domain.VisitorPass) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(pass)
	if err != nil {
		return
	}
	_ = s.cache.Set(ctx, passCacheKey(visitorID), raw, passCacheTTL).Err()
}

func (s *PassService) invalidate(ctx context.Context, visitorID string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, passCacheKey(visitorID)).Err()
}
