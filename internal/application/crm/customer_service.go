package crm

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/namap/backend/internal/domain/crm"
	"github.com/namap/backend/internal/domain/shared"
	"github.com/namap/backend/internal/infrastructure/telemetry"
)

// CustomerService handles customer-related business operations.
// Every operation is scoped to the calling user; customers owned by
// other users are indistinguishable from missing ones.
type CustomerService struct {
	customerRepo crm.CustomerRepository
	logger       *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo crm.CustomerRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// List retrieves one page of the caller's customers. The page size is
// fixed; a page past the end returns an empty item list with the real
// total. The search term is matched case-insensitively against company
// name, contact name, email, and tag names.
func (s *CustomerService) List(ctx context.Context, ownerID uuid.UUID, filter CustomerListFilter) (*CustomerPageResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "customer", "list",
		telemetry.WithAttribute(telemetry.SpanAttrOwnerID, ownerID.String()))
	defer span.End()
	if filter.Search != "" {
		telemetry.SetAttribute(span, telemetry.SpanAttrSearchTerm, filter.Search)
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}

	domainFilter := shared.Filter{
		Page:     page,
		PageSize: crm.PageSize,
		Search:   filter.Search,
	}

	customers, err := s.customerRepo.SearchForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	total, err := s.customerRepo.CountForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	items := make([]CustomerListResponse, len(customers))
	for i := range customers {
		items[i] = ToCustomerListResponse(&customers[i])
	}
	telemetry.SetAttribute(span, telemetry.SpanAttrResultCount, len(items))

	totalPages := int((total + crm.PageSize - 1) / crm.PageSize)

	return &CustomerPageResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   crm.PageSize,
		TotalPages: totalPages,
		Search:     filter.Search,
	}, nil
}

// GetByID retrieves one of the caller's customers by ID
func (s *CustomerService) GetByID(ctx context.Context, ownerID, customerID uuid.UUID) (*CustomerResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "customer", "get",
		telemetry.WithAttribute(telemetry.SpanAttrCustomerID, customerID.String()))
	defer span.End()

	customer, err := s.customerRepo.FindByIDForOwner(ctx, ownerID, customerID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Create creates a new customer owned by the caller
func (s *CustomerService) Create(ctx context.Context, ownerID uuid.UUID, req CreateCustomerRequest) (*CustomerResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "customer", "create",
		telemetry.WithAttribute(telemetry.SpanAttrOwnerID, ownerID.String()))
	defer span.End()

	customer, err := crm.NewCustomer(ownerID, req.ToProfile())
	if err != nil {
		return nil, err
	}
	telemetry.SetAttribute(span, telemetry.SpanAttrCustomerID, customer.ID.String())

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("Customer created",
		zap.String("customer_id", customer.ID.String()),
		zap.String("owner_id", ownerID.String()))

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Update replaces the profile of one of the caller's customers.
// The owner is never changed.
func (s *CustomerService) Update(ctx context.Context, ownerID, customerID uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "customer", "update",
		telemetry.WithAttribute(telemetry.SpanAttrCustomerID, customerID.String()))
	defer span.End()

	customer, err := s.customerRepo.FindByIDForOwner(ctx, ownerID, customerID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := customer.ApplyProfile(req.ToProfile()); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("Customer updated",
		zap.String("customer_id", customer.ID.String()),
		zap.String("owner_id", ownerID.String()))

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Delete removes one of the caller's customers along with its activities
// and tag links
func (s *CustomerService) Delete(ctx context.Context, ownerID, customerID uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "customer", "delete",
		telemetry.WithAttribute(telemetry.SpanAttrCustomerID, customerID.String()))
	defer span.End()

	// Resolve first so a missing customer reports NotFound
	if _, err := s.customerRepo.FindByIDForOwner(ctx, ownerID, customerID); err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	if err := s.customerRepo.DeleteForOwner(ctx, ownerID, customerID); err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	s.logger.Info("Customer deleted",
		zap.String("customer_id", customerID.String()),
		zap.String("owner_id", ownerID.String()))

	return nil
}
