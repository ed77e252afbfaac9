package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/visitor-service/internal/domain"
	"github.com/spec-kit/visitor-service/internal/events"
	"github.com/spec-kit/visitor-service/internal/repository"
	apperrors "github.com/spec-kit/visitor-service/pkg/util"
)

// checkClock is the fixed zone entry and checkout stamps are taken in.
var checkClock = time.FixedZone("UTC+8", 8*60*60)

const accessPassAttempts = 5

// VisitorService coordinates the visitor lifecycle.
type VisitorService struct {
	visitors   repository.VisitorRepository
	residents  repository.ResidentRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// VisitorDependencies bundles repositories for visitor service.
type VisitorDependencies struct {
	VisitorRepo  repository.VisitorRepository
	ResidentRepo repository.ResidentRepository
	Dispatcher   events.Dispatcher
}

// NewVisitorService builds the service.
func NewVisitorService(deps VisitorDependencies) *VisitorService {
	return &VisitorService{
		visitors:   deps.VisitorRepo,
		residents:  deps.ResidentRepo,
		dispatcher: deps.Dispatcher,
		now:        time.Now,
	}
}

// VisitorCreateInput describes visitor registration payload.
type VisitorCreateInput struct {
	Name    string
	Contact string
	Gender  string

	// Walk-in fields, set on the security registration path.
	WhomToVisit *string
	Age         *int
	Address     *string
	Zipcode     *string
	Relation    *string
}

// Register creates a visitor for the given requester. When the
// requester (or, for walk-ins, the named host) matches a known
// resident, building, apartment, and whom-to-visit are filled from the
// resident record; otherwise they stay empty.
func (s *VisitorService) Register(ctx context.Context, requesterName string, input VisitorCreateInput) (*domain.Visitor, error) {
	visitor := &domain.Visitor{
		Name:        input.Name,
		Contact:     input.Contact,
		Gender:      input.Gender,
		WhomToVisit: input.WhomToVisit,
		Age:         input.Age,
		Address:     input.Address,
		Zipcode:     input.Zipcode,
		Relation:    input.Relation,
	}

	hostName := requesterName
	if input.WhomToVisit != nil {
		hostName = *input.WhomToVisit
	}
	resident, err := s.residents.GetByName(ctx, hostName)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewInternalError(err)
	}
	if resident != nil {
		visitor.Building = &resident.Building
		visitor.Apartment = &resident.Apartment
		visitor.WhomToVisit = &resident.Name
	}

	// Access passes are unique; regenerate on the rare collision.
	for attempt := 0; attempt < accessPassAttempts; attempt++ {
		pass, err := generateAccessPass()
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		visitor.AccessPass = pass

		err = s.visitors.Create(ctx, visitor)
		if err == nil {
			s.publish(ctx, events.EventVisitorRegistered, visitor.ID, events.Actor{Name: requesterName}, events.VisitorRegisteredPayload{
				AccessPass:  visitor.AccessPass,
				VisitorName: visitor.Name,
				WhomToVisit: visitor.WhomToVisit,
				Building:    visitor.Building,
				Apartment:   visitor.Apartment,
			})
			return visitor, nil
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewInternalError(err)
		}
	}
	return nil, apperrors.NewInternalError(errors.New("could not allocate a unique access pass"))
}

// List returns all visitors for admins and only the requester's own
// visitors for every other role.
func (s *VisitorService) List(ctx context.Context, requesterName string, role domain.Role) ([]domain.Visitor, error) {
	var (
		visitors []domain.Visitor
		err      error
	)
	if role == domain.RoleAdmin {
		visitors, err = s.visitors.ListAll(ctx)
	} else {
		visitors, err = s.visitors.ListByHost(ctx, requesterName)
	}
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return visitors, nil
}

// FindByContact returns visitor records matching a contact number.
// Public lookup used at the gate.
func (s *VisitorService) FindByContact(ctx context.Context, contact string) ([]domain.Visitor, error) {
	visitors, err := s.visitors.ListByContact(ctx, contact)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return visitors, nil
}

// UpdateContact changes a visitor's contact number. Only the visited
// party may update.
func (s *VisitorService) UpdateContact(ctx context.Context, requesterName, contact, newContact string) error {
	visitor, err := s.visitors.GetByContact(ctx, contact)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("visitor", map[string]any{"contact": contact})
		}
		return apperrors.NewInternalError(err)
	}
	if !visitor.VisitedBy(requesterName) {
		return apperrors.NewForbidden("you do not have a visitor with that contact number")
	}
	if err := s.visitors.UpdateContact(ctx, contact, newContact); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

// Delete removes a visitor. Allowed for the visited party and for
// admin/security roles.
func (s *VisitorService) Delete(ctx context.Context, requesterName string, role domain.Role, accessPass string) error {
	visitor, err := s.visitors.GetByAccessPass(ctx, accessPass)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("visitor", map[string]any{"access_pass": accessPass})
		}
		return apperrors.NewInternalError(err)
	}
	if !visitor.VisitedBy(requesterName) && !role.Elevated() {
		return apperrors.NewForbidden("you do not have permission to delete this visitor")
	}
	if err := s.visitors.Delete(ctx, accessPass); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

// CheckIn stamps the entry time for the visitor holding the access
// pass. Repeated calls overwrite the stamp.
func (s *VisitorService) CheckIn(ctx context.Context, accessPass string) (*domain.Visitor, error) {
	visitor, err := s.visitors.GetByAccessPass(ctx, accessPass)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("visitor", map[string]any{"access_pass": accessPass})
		}
		return nil, apperrors.NewInternalError(err)
	}

	at := s.now().In(checkClock)
	if err := s.visitors.SetEntryTime(ctx, accessPass, at); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	visitor.EntryTime = &at

	s.publish(ctx, events.EventVisitorCheckedIn, visitor.ID, events.Actor{}, events.VisitorCheckedInPayload{
		AccessPass: accessPass,
		EntryTime:  at,
	})
	return visitor, nil
}

// CheckOut stamps the checkout time for the visitor holding the access
// pass. Repeated calls overwrite the stamp.
func (s *VisitorService) CheckOut(ctx context.Context, accessPass string) (*domain.Visitor, error) {
	visitor, err := s.visitors.GetByAccessPass(ctx, accessPass)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("visitor", map[string]any{"access_pass": accessPass})
		}
		return nil, apperrors.NewInternalError(err)
	}

	at := s.now().In(checkClock)
	if err := s.visitors.SetCheckoutTime(ctx, accessPass, at); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	visitor.CheckoutTime = &at

	s.publish(ctx, events.EventVisitorCheckedOut, visitor.ID, events.Actor{}, events.VisitorCheckedOutPayload{
		AccessPass:   accessPass,
		CheckoutTime: at,
	})
	return visitor, nil
}

func (s *VisitorService) publish(ctx context.Context, eventType events.EventType, visitorID string, actor events.Actor, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		VisitorID: visitorID,
		Actor:     actor,
		Timestamp: s.now(),
		Payload:   payload,
	})
}

// generateAccessPass produces an 8-digit numeric credential from a
// crypto-random source.
func generateAccessPass() (string, error) {
	var n uint32
	if err := binary.Read(rand.Reader, binary.BigEndian, &n); err != nil {
		return "", err
	}
	return fmt.Sprintf("%08d", 10000000+n%90000000), nil
}
