package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity carries the identifier and timestamps every persisted entity
// shares. IDs are assigned in the domain, before the first save, so a new
// aggregate can be referenced immediately.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity assigns a fresh ID and stamps both timestamps with the same
// instant.
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
