package crm

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/namap/backend/internal/domain/crm"
	"github.com/namap/backend/internal/domain/shared"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockCustomerRepository is a mock implementation of crm.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*crm.Customer, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Customer), args.Error(1)
}

func (m *MockCustomerRepository) SearchForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]crm.Customer, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).([]crm.Customer), args.Error(1)
}

func (m *MockCustomerRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *crm.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

// MockActivityRepository is a mock implementation of crm.ActivityRepository
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Create(ctx context.Context, activity *crm.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]crm.Activity, error) {
	args := m.Called(ctx, customerID, filter)
	return args.Get(0).([]crm.Activity), args.Error(1)
}

func (m *MockActivityRepository) CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

// =============================================================================
// Helpers
// =============================================================================

func newTestCustomer(t *testing.T, ownerID uuid.UUID, companyName string) *crm.Customer {
	t.Helper()
	customer, err := crm.NewCustomer(ownerID, crm.Profile{
		CompanyName:    companyName,
		ContactName:    "Contact",
		Email:          "contact@example.com",
		PotentialValue: decimal.NewFromInt(1000),
		Tags:           []string{"vip"},
	})
	require.NoError(t, err)
	return customer
}

// =============================================================================
// CustomerService tests
// =============================================================================

func TestCustomerServiceList(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("lists first page with defaults", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo, zap.NewNop())

		customers := []crm.Customer{*newTestCustomer(t, ownerID, "Acme")}
		expectedFilter := shared.Filter{Page: 1, PageSize: crm.PageSize, Search: ""}
		repo.On("SearchForOwner", mock.Anything, ownerID, expectedFilter).Return(customers, nil)
		repo.On("CountForOwner", mock.Anything, ownerID, expectedFilter).Return(int64(1), nil)

		page, err := service.List(ctx, ownerID, CustomerListFilter{})

		require.NoError(t, err)
		assert.Len(t, page.Items, 1)
		assert.Equal(t, int64(1), page.Total)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, crm.PageSize, page.PageSize)
		assert.Equal(t, 1, page.TotalPages)
		repo.AssertExpectations(t)
	})

	t.Run("passes search term through and echoes it", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo, zap.NewNop())

		expectedFilter := shared.Filter{Page: 2, PageSize: crm.PageSize, Search: "acme"}
		repo.On("SearchForOwner", mock.Anything, ownerID, expectedFilter).Return([]crm.Customer{}, nil)
		repo.On("CountForOwner", mock.Anything, ownerID, expectedFilter).Return(int64(25), nil)

		page, err := service.List(ctx, ownerID, CustomerListFilter{Search: "acme", Page: 2})

		require.NoError(t, err)
		assert.Equal(t, "acme", page.Search)
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, 3, page.TotalPages)
	})

	t.Run("page past the end returns empty items with the real total", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo, zap.NewNop())

		expectedFilter := shared.Filter{Page: 9, PageSize: crm.PageSize, Search: ""}
		repo.On("SearchForOwner", mock.Anything, ownerID, expectedFilter).Return([]crm.Customer{}, nil)
		repo.On("CountForOwner", mock.Anything, ownerID, expectedFilter).Return(int64(12), nil)

		page, err := service.List(ctx, ownerID, CustomerListFilter{Page: 9})

		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.Equal(t, int64(12), page.Total)
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo, zap.NewNop())

		repo.On("SearchForOwner", mock.Anything, ownerID, mock.Anything).Return([]crm.Customer{}, errors.New("db down"))

		_, err := service.List(ctx, ownerID, CustomerListFilter{})
		assert.Error(t, err)
	})
}

func TestCustomerServiceGetByID(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("returns owned customer", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo, zap.NewNop())

		customer := newTestCustomer(t, ownerID, "Acme")
		repo.On("FindByIDForOwner", mock.Anything, ownerID, customer.ID).Return(customer, nil)

		resp, err := service.GetByID(ctx, ownerID, customer.ID)

		require.NoError(t, err)
		assert.Equal(t, "Acme", resp.CompanyName)
		assert.Equal(t, []string{"vip"}, resp.Tags)
	})

	t.Run("another user's customer reads as not found", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo, zap.NewNop())

		customerID := uuid.New()
		repo.On("FindByIDForOwner", mock.Anything, ownerID, customerID).Return(nil, shared.ErrNotFound)

		_, err := service.GetByID(ctx, ownerID, customerID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestCustomerServiceCreate(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("stamps caller as owner", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo, zap.NewNop())

		repo.On("Save", mock.Anything, mock.MatchedBy(func(c *crm.Customer) bool {
			return c.OwnerID == ownerID && c.CompanyName == "Acme"
		})).Return(nil)

		resp, err := service.Create(ctx, ownerID, CreateCustomerRequest{CompanyName: "Acme"})

		require.NoError(t, err)
		assert.Equal(t, "Acme", resp.CompanyName)
		repo.AssertExpectations(t)
	})

	t.Run("rejects invalid profile without saving", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo, zap.NewNop())

		_, err := service.Create(ctx, ownerID, CreateCustomerRequest{CompanyName: "Acme", Email: "bad"})

		var verr *shared.ValidationError
		assert.ErrorAs(t, err, &verr)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestCustomerServiceUpdate(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("applies profile and preserves owner", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo, zap.NewNop())

		customer := newTestCustomer(t, ownerID, "Acme")
		repo.On("FindByIDForOwner", mock.Anything, ownerID, customer.ID).Return(customer, nil)
		repo.On("Save", mock.Anything, mock.MatchedBy(func(c *crm.Customer) bool {
			return c.OwnerID == ownerID && c.CompanyName == "Globex"
		})).Return(nil)

		resp, err := service.Update(ctx, ownerID, customer.ID, UpdateCustomerRequest{CompanyName: "Globex"})

		require.NoError(t, err)
		assert.Equal(t, "Globex", resp.CompanyName)
		repo.AssertExpectations(t)
	})

	t.Run("missing customer reads as not found", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo, zap.NewNop())

		customerID := uuid.New()
		repo.On("FindByIDForOwner", mock.Anything, ownerID, customerID).Return(nil, shared.ErrNotFound)

		_, err := service.Update(ctx, ownerID, customerID, UpdateCustomerRequest{CompanyName: "Globex"})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestCustomerServiceDelete(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("deletes owned customer", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo, zap.NewNop())

		customer := newTestCustomer(t, ownerID, "Acme")
		repo.On("FindByIDForOwner", mock.Anything, ownerID, customer.ID).Return(customer, nil)
		repo.On("DeleteForOwner", mock.Anything, ownerID, customer.ID).Return(nil)

		err := service.Delete(ctx, ownerID, customer.ID)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("missing customer reads as not found", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo, zap.NewNop())

		customerID := uuid.New()
		repo.On("FindByIDForOwner", mock.Anything, ownerID, customerID).Return(nil, shared.ErrNotFound)

		err := service.Delete(ctx, ownerID, customerID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		repo.AssertNotCalled(t, "DeleteForOwner", mock.Anything, mock.Anything, mock.Anything)
	})
}
