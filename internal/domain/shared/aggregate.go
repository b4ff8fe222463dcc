package shared

import (
	"github.com/google/uuid"
)

// OwnedAggregateRoot provides common fields for aggregate roots that belong
// to a single user. The owner is assigned at creation and never changes;
// every repository access to an owned aggregate must carry the owner
// predicate explicitly.
type OwnedAggregateRoot struct {
	BaseEntity
	OwnerID uuid.UUID
}

// NewOwnedAggregateRoot creates a new aggregate root owned by the given user
func NewOwnedAggregateRoot(ownerID uuid.UUID) OwnedAggregateRoot {
	return OwnedAggregateRoot{
		BaseEntity: NewBaseEntity(),
		OwnerID:    ownerID,
	}
}

// GetOwnerID returns the owning user ID
func (a *OwnedAggregateRoot) GetOwnerID() uuid.UUID {
	return a.OwnerID
}

// IsOwnedBy reports whether the aggregate belongs to the given user
func (a *OwnedAggregateRoot) IsOwnedBy(userID uuid.UUID) bool {
	return a.OwnerID == userID
}
