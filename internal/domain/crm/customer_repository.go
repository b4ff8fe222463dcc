package crm

import (
	"context"

	"github.com/google/uuid"
	"github.com/namap/backend/internal/domain/shared"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by its ID regardless of owner.
	// Callers are responsible for enforcing ownership on the result.
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByIDForOwner finds a customer by ID within an owner's scope
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Customer, error)

	// SearchForOwner finds an owner's customers matching the filter,
	// ordered by company name then ID
	SearchForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Customer, error)

	// CountForOwner counts an owner's customers matching the filter
	CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// DeleteForOwner deletes a customer within an owner's scope
	// along with its activities and tag links
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
}
