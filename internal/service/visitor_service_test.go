package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/visitor-service/internal/domain"
	"github.com/spec-kit/visitor-service/internal/events"
	"github.com/spec-kit/visitor-service/internal/repository"
	apperrors "github.com/spec-kit/visitor-service/pkg/util"
)

var accessPassPattern = regexp.MustCompile(`^\d{8}$`)

func newVisitorFixture(t *testing.T) (*VisitorService, *mockVisitorRepo, *mockResidentRepo) {
	t.Helper()
	visitors := newMockVisitorRepo()
	residents := newMockResidentRepo()
	svc := NewVisitorService(VisitorDependencies{
		VisitorRepo:  visitors,
		ResidentRepo: residents,
		Dispatcher:   events.NewInMemoryDispatcher(),
	})
	return svc, visitors, residents
}

func TestRegisterVisitorAsResidentFillsUnit(t *testing.T) {
	svc, _, residents := newVisitorFixture(t)
	ctx := context.Background()

	require.NoError(t, residents.Create(ctx, &domain.Resident{
		Name:      "Bob",
		Building:  "B",
		Apartment: "12A",
	}))

	visitor, err := svc.Register(ctx, "Bob", VisitorCreateInput{
		Name:    "Carol",
		Contact: "011-111",
		Gender:  "female",
	})
	require.NoError(t, err)

	assert.Regexp(t, accessPassPattern, visitor.AccessPass)
	require.NotNil(t, visitor.Building)
	assert.Equal(t, "B", *visitor.Building)
	require.NotNil(t, visitor.Apartment)
	assert.Equal(t, "12A", *visitor.Apartment)
	require.NotNil(t, visitor.WhomToVisit)
	assert.Equal(t, "Bob", *visitor.WhomToVisit)
}

func TestRegisterVisitorUnknownRequesterLeavesUnitEmpty(t *testing.T) {
	svc, _, _ := newVisitorFixture(t)

	visitor, err := svc.Register(context.Background(), "Stranger", VisitorCreateInput{
		Name:    "Carol",
		Contact: "011-111",
	})
	require.NoError(t, err)

	assert.Nil(t, visitor.Building)
	assert.Nil(t, visitor.Apartment)
	assert.Nil(t, visitor.WhomToVisit)
}

func TestRegisterVisitorRetriesOnAccessPassCollision(t *testing.T) {
	svc, visitors, _ := newVisitorFixture(t)
	visitors.createErrs = []error{repository.ErrDuplicate, repository.ErrDuplicate}

	visitor, err := svc.Register(context.Background(), "Bob", VisitorCreateInput{
		Name:    "Carol",
		Contact: "011-111",
	})
	require.NoError(t, err)
	assert.Regexp(t, accessPassPattern, visitor.AccessPass)
}

func TestRegisterWalkInResolvesNamedHost(t *testing.T) {
	svc, _, residents := newVisitorFixture(t)
	ctx := context.Background()

	require.NoError(t, residents.Create(ctx, &domain.Resident{
		Name:      "Bob",
		Building:  "B",
		Apartment: "12A",
	}))

	host := "Bob"
	age := 41
	visitor, err := svc.Register(ctx, "guard", VisitorCreateInput{
		Name:        "Dave",
		Contact:     "022-222",
		WhomToVisit: &host,
		Age:         &age,
	})
	require.NoError(t, err)

	require.NotNil(t, visitor.WhomToVisit)
	assert.Equal(t, "Bob", *visitor.WhomToVisit)
	require.NotNil(t, visitor.Building)
	assert.Equal(t, "B", *visitor.Building)
	require.NotNil(t, visitor.Age)
	assert.Equal(t, 41, *visitor.Age)
}

func TestListVisitors(t *testing.T) {
	svc, _, residents := newVisitorFixture(t)
	ctx := context.Background()

	require.NoError(t, residents.Create(ctx, &domain.Resident{Name: "Bob"}))
	require.NoError(t, residents.Create(ctx, &domain.Resident{Name: "Jane"}))

	_, err := svc.Register(ctx, "Bob", VisitorCreateInput{Name: "V1", Contact: "1"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, "Jane", VisitorCreateInput{Name: "V2", Contact: "2"})
	require.NoError(t, err)

	all, err := svc.List(ctx, "Admin", domain.RoleAdmin)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := svc.List(ctx, "Bob", domain.RoleResident)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "V1", own[0].Name)

	none, err := svc.List(ctx, "Nobody", domain.RoleHost)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdateContactOwnership(t *testing.T) {
	svc, _, residents := newVisitorFixture(t)
	ctx := context.Background()

	require.NoError(t, residents.Create(ctx, &domain.Resident{Name: "Bob"}))
	_, err := svc.Register(ctx, "Bob", VisitorCreateInput{Name: "Carol", Contact: "011-111"})
	require.NoError(t, err)

	t.Run("unknown contact is not found", func(t *testing.T) {
		err := svc.UpdateContact(ctx, "Bob", "000-000", "099-999")
		assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		err := svc.UpdateContact(ctx, "Jane", "011-111", "099-999")
		assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)
	})

	t.Run("owner updates", func(t *testing.T) {
		require.NoError(t, svc.UpdateContact(ctx, "Bob", "011-111", "099-999"))
		found, err := svc.FindByContact(ctx, "099-999")
		require.NoError(t, err)
		assert.Len(t, found, 1)
	})
}

func TestDeleteVisitorAuthorization(t *testing.T) {
	svc, _, residents := newVisitorFixture(t)
	ctx := context.Background()

	require.NoError(t, residents.Create(ctx, &domain.Resident{Name: "Bob"}))
	visitor, err := svc.Register(ctx, "Bob", VisitorCreateInput{Name: "Carol", Contact: "011-111"})
	require.NoError(t, err)

	t.Run("unknown pass is not found", func(t *testing.T) {
		err := svc.Delete(ctx, "Bob", domain.RoleResident, "00000000")
		assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
	})

	t.Run("non-owner without elevated role is forbidden", func(t *testing.T) {
		err := svc.Delete(ctx, "Jane", domain.RoleHost, visitor.AccessPass)
		assert.Equal(t, 403, apperrors.ToDomainError(err).HTTPStatus)
	})

	t.Run("security may delete", func(t *testing.T) {
		err := svc.Delete(ctx, "Guard", domain.RoleSecurity, visitor.AccessPass)
		require.NoError(t, err)
	})

	t.Run("lookup after delete is not found", func(t *testing.T) {
		err := svc.Delete(ctx, "Bob", domain.RoleResident, visitor.AccessPass)
		assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
	})
}

func TestCheckInThenCheckOut(t *testing.T) {
	svc, visitors, _ := newVisitorFixture(t)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	clock := base
	svc.now = func() time.Time { return clock }

	visitor, err := svc.Register(ctx, "Bob", VisitorCreateInput{Name: "Carol", Contact: "011-111"})
	require.NoError(t, err)

	checkedIn, err := svc.CheckIn(ctx, visitor.AccessPass)
	require.NoError(t, err)
	require.NotNil(t, checkedIn.EntryTime)

	// Entry stamps are taken on a UTC+8 clock.
	_, offset := checkedIn.EntryTime.Zone()
	assert.Equal(t, 8*60*60, offset)

	clock = base.Add(2 * time.Hour)
	checkedOut, err := svc.CheckOut(ctx, visitor.AccessPass)
	require.NoError(t, err)
	require.NotNil(t, checkedOut.CheckoutTime)

	stored, err := visitors.GetByAccessPass(ctx, visitor.AccessPass)
	require.NoError(t, err)
	require.NotNil(t, stored.EntryTime)
	require.NotNil(t, stored.CheckoutTime)
	assert.False(t, stored.CheckoutTime.Before(*stored.EntryTime))

	t.Run("unknown pass is not found", func(t *testing.T) {
		_, err := svc.CheckIn(ctx, "00000000")
		assert.Equal(t, 404, apperrors.ToDomainError(err).HTTPStatus)
	})

	t.Run("repeat check-in overwrites the stamp", func(t *testing.T) {
		clock = base.Add(3 * time.Hour)
		again, err := svc.CheckIn(ctx, visitor.AccessPass)
		require.NoError(t, err)
		assert.True(t, again.EntryTime.After(*checkedIn.EntryTime))
	})
}
