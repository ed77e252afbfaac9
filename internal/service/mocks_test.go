package service

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/visitor-service/internal/domain"
	"github.com/spec-kit/visitor-service/internal/repository"
)

// ---------- in-memory repositories ----------

type mockAccountRepo struct {
	nextID   int
	accounts map[string]*domain.Account // keyed by username
}

func newMockAccountRepo() *mockAccountRepo {
	return &mockAccountRepo{nextID: 1, accounts: make(map[string]*domain.Account)}
}

func (m *mockAccountRepo) Create(_ context.Context, account *domain.Account) error {
	if _, exists := m.accounts[account.Username]; exists {
		return repository.ErrDuplicate
	}
	if account.Email != nil {
		for _, existing := range m.accounts {
			if existing.Email != nil && *existing.Email == *account.Email {
				return repository.ErrDuplicate
			}
		}
	}
	account.ID = "acc-" + strconv.Itoa(m.nextID)
	m.nextID++
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	copied := *account
	m.accounts[account.Username] = &copied
	return nil
}

func (m *mockAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	for _, account := range m.accounts {
		if account.ID == id {
			copied := *account
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockAccountRepo) GetByUsername(_ context.Context, username string) (*domain.Account, error) {
	account, exists := m.accounts[username]
	if !exists {
		return nil, pgx.ErrNoRows
	}
	copied := *account
	return &copied, nil
}

func (m *mockAccountRepo) UpdatePhone(_ context.Context, username, phone string) error {
	account, exists := m.accounts[username]
	if !exists {
		return pgx.ErrNoRows
	}
	account.Phone = &phone
	return nil
}

func (m *mockAccountRepo) Delete(_ context.Context, username string) error {
	if _, exists := m.accounts[username]; !exists {
		return pgx.ErrNoRows
	}
	delete(m.accounts, username)
	return nil
}

type mockResidentRepo struct {
	residents map[string]*domain.Resident // keyed by name
}

func newMockResidentRepo() *mockResidentRepo {
	return &mockResidentRepo{residents: make(map[string]*domain.Resident)}
}

func (m *mockResidentRepo) Create(_ context.Context, resident *domain.Resident) error {
	resident.ID = "res-" + resident.Name
	resident.CreatedAt = time.Now()
	copied := *resident
	m.residents[resident.Name] = &copied
	return nil
}

func (m *mockResidentRepo) GetByName(_ context.Context, name string) (*domain.Resident, error) {
	resident, exists := m.residents[name]
	if !exists {
		return nil, pgx.ErrNoRows
	}
	copied := *resident
	return &copied, nil
}

func (m *mockResidentRepo) DeleteByName(_ context.Context, name string) error {
	if _, exists := m.residents[name]; !exists {
		return pgx.ErrNoRows
	}
	delete(m.residents, name)
	return nil
}

type mockVisitorRepo struct {
	nextID   int
	visitors map[string]*domain.Visitor // keyed by access pass

	// createErrs is drained one per Create call before the real insert,
	// to simulate access-pass collisions.
	createErrs []error
}

func newMockVisitorRepo() *mockVisitorRepo {
	return &mockVisitorRepo{nextID: 1, visitors: make(map[string]*domain.Visitor)}
}

func (m *mockVisitorRepo) Create(_ context.Context, visitor *domain.Visitor) error {
	if len(m.createErrs) > 0 {
		err := m.createErrs[0]
		m.createErrs = m.createErrs[1:]
		if err != nil {
			return err
		}
	}
	if _, exists := m.visitors[visitor.AccessPass]; exists {
		return repository.ErrDuplicate
	}
	visitor.ID = "vis-" + strconv.Itoa(m.nextID)
	m.nextID++
	visitor.CreatedAt = time.Now()
	visitor.UpdatedAt = visitor.CreatedAt
	copied := *visitor
	m.visitors[visitor.AccessPass] = &copied
	return nil
}

func (m *mockVisitorRepo) GetByAccessPass(_ context.Context, accessPass string) (*domain.Visitor, error) {
	visitor, exists := m.visitors[accessPass]
	if !exists {
		return nil, pgx.ErrNoRows
	}
	copied := *visitor
	return &copied, nil
}

func (m *mockVisitorRepo) GetByContact(_ context.Context, contact string) (*domain.Visitor, error) {
	for _, visitor := range m.visitors {
		if visitor.Contact == contact {
			copied := *visitor
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockVisitorRepo) ListAll(_ context.Context) ([]domain.Visitor, error) {
	var result []domain.Visitor
	for _, visitor := range m.visitors {
		result = append(result, *visitor)
	}
	return result, nil
}

func (m *mockVisitorRepo) ListByHost(_ context.Context, hostName string) ([]domain.Visitor, error) {
	var result []domain.Visitor
	for _, visitor := range m.visitors {
		if visitor.VisitedBy(hostName) {
			result = append(result, *visitor)
		}
	}
	return result, nil
}

func (m *mockVisitorRepo) ListByContact(_ context.Context, contact string) ([]domain.Visitor, error) {
	var result []domain.Visitor
	for _, visitor := range m.visitors {
		if visitor.Contact == contact {
			result = append(result, *visitor)
		}
	}
	return result, nil
}

func (m *mockVisitorRepo) UpdateContact(_ context.Context, contact, newContact string) error {
	for _, visitor := range m.visitors {
		if visitor.Contact == contact {
			visitor.Contact = newContact
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *mockVisitorRepo) SetEntryTime(_ context.Context, accessPass string, at time.Time) error {
	visitor, exists := m.visitors[accessPass]
	if !exists {
		return pgx.ErrNoRows
	}
	visitor.EntryTime = &at
	return nil
}

func (m *mockVisitorRepo) SetCheckoutTime(_ context.Context, accessPass string, at time.Time) error {
	visitor, exists := m.visitors[accessPass]
	if !exists {
		return pgx.ErrNoRows
	}
	visitor.CheckoutTime = &at
	return nil
}

func (m *mockVisitorRepo) Delete(_ context.Context, accessPass string) error {
	if _, exists := m.visitors[accessPass]; !exists {
		return pgx.ErrNoRows
	}
	delete(m.visitors, accessPass)
	return nil
}

type mockPassRepo struct {
	nextID int
	passes []*domain.VisitorPass
}

func newMockPassRepo() *mockPassRepo {
	return &mockPassRepo{nextID: 1}
}

func (m *mockPassRepo) Create(_ context.Context, pass *domain.VisitorPass) error {
	pass.ID = "pass-" + strconv.Itoa(m.nextID)
	m.nextID++
	pass.IssuedAt = time.Now()
	copied := *pass
	m.passes = append(m.passes, &copied)
	return nil
}

func (m *mockPassRepo) GetByID(_ context.Context, id string) (*domain.VisitorPass, error) {
	for _, pass := range m.passes {
		if pass.ID == id {
			copied := *pass
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockPassRepo) GetLatestByVisitor(_ context.Context, visitorID string) (*domain.VisitorPass, error) {
	var latest *domain.VisitorPass
	for _, pass := range m.passes {
		if pass.VisitorID != visitorID {
			continue
		}
		if latest == nil || pass.IssuedAt.After(latest.IssuedAt) {
			latest = pass
		}
	}
	if latest == nil {
		return nil, pgx.ErrNoRows
	}
	copied := *latest
	return &copied, nil
}
