// Package models holds the GORM row types and their mappings to and
// from the domain aggregates.
package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/namap/backend/internal/domain/shared"
)

// BaseModel carries the identity and timestamp columns shared by every
// table, mirroring the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// OwnedAggregateModel adds the owning user's column for aggregates that
// are scoped to one account.
type OwnedAggregateModel struct {
	BaseModel
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index"`
}

func (m *OwnedAggregateModel) FromDomainOwnedAggregateRoot(a shared.OwnedAggregateRoot) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.OwnerID = a.OwnerID
}

func (m *OwnedAggregateModel) PopulateOwnedAggregateRoot(a *shared.OwnedAggregateRoot) {
	a.BaseEntity = shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	a.OwnerID = m.OwnerID
}
