package crm

import (
	"context"

	"github.com/google/uuid"
	"github.com/namap/backend/internal/domain/shared"
)

// ActivityRepository defines the interface for activity persistence
type ActivityRepository interface {
	// Create persists a new activity
	Create(ctx context.Context, activity *Activity) error

	// FindByCustomer finds a customer's activities, newest first
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Activity, error)

	// CountByCustomer counts a customer's activities
	CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)
}
