package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/namap/backend/internal/domain/crm"
	"github.com/namap/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CustomerModel is the persistence model for the Customer domain entity.
type CustomerModel struct {
	OwnedAggregateModel
	CompanyName    string          `gorm:"type:varchar(200);not null;index"`
	ContactName    string          `gorm:"type:varchar(100)"`
	Email          string          `gorm:"type:varchar(200);index"`
	Phone          string          `gorm:"type:varchar(50)"`
	Address        string          `gorm:"type:text"`
	Notes          string          `gorm:"type:text"`
	PotentialValue decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Tags           []TagModel      `gorm:"many2many:customer_tags;joinForeignKey:CustomerID;joinReferences:TagID"`
}

// TableName pins the table GORM maps this model to
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *crm.Customer {
	tags := make([]crm.Tag, len(m.Tags))
	for i, t := range m.Tags {
		tags[i] = crm.Tag{
			ID:        t.ID,
			Name:      t.Name,
			CreatedAt: t.CreatedAt,
		}
	}
	return &crm.Customer{
		OwnedAggregateRoot: shared.OwnedAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			OwnerID: m.OwnerID,
		},
		CompanyName:    m.CompanyName,
		ContactName:    m.ContactName,
		Email:          m.Email,
		Phone:          m.Phone,
		Address:        m.Address,
		Notes:          m.Notes,
		PotentialValue: m.PotentialValue,
		Tags:           tags,
	}
}

// FromDomain populates the persistence model from a domain Customer entity.
// Tag rows are reconciled separately by the repository, so associations are
// not carried here.
func (m *CustomerModel) FromDomain(c *crm.Customer) {
	m.FromDomainOwnedAggregateRoot(c.OwnedAggregateRoot)
	m.CompanyName = c.CompanyName
	m.ContactName = c.ContactName
	m.Email = c.Email
	m.Phone = c.Phone
	m.Address = c.Address
	m.Notes = c.Notes
	m.PotentialValue = c.PotentialValue
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *crm.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

// TagModel is the persistence model for the Tag value. Tag names are unique
// across the table and shared between customers through the customer_tags
// join table.
type TagModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Name      string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName pins the table GORM maps this model to
func (TagModel) TableName() string {
	return "tags"
}

// ToDomain converts the persistence model to a domain Tag value.
func (m *TagModel) ToDomain() crm.Tag {
	return crm.Tag{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
	}
}

// ActivityModel is the persistence model for the Activity domain entity.
type ActivityModel struct {
	BaseModel
	CustomerID   uuid.UUID          `gorm:"type:uuid;not null;index:idx_activity_customer"`
	ActivityDate time.Time          `gorm:"not null"`
	Status       crm.ActivityStatus `gorm:"type:varchar(20);not null"`
	Note         string             `gorm:"type:text"`
}

// TableName pins the table GORM maps this model to
func (ActivityModel) TableName() string {
	return "activities"
}

// ToDomain converts the persistence model to a domain Activity entity.
func (m *ActivityModel) ToDomain() *crm.Activity {
	return &crm.Activity{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		CustomerID:   m.CustomerID,
		ActivityDate: m.ActivityDate,
		Status:       m.Status,
		Note:         m.Note,
	}
}

// FromDomain populates the persistence model from a domain Activity entity.
func (m *ActivityModel) FromDomain(a *crm.Activity) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.CustomerID = a.CustomerID
	m.ActivityDate = a.ActivityDate
	m.Status = a.Status
	m.Note = a.Note
}

// ActivityModelFromDomain creates a new persistence model from a domain Activity entity.
func ActivityModelFromDomain(a *crm.Activity) *ActivityModel {
	m := &ActivityModel{}
	m.FromDomain(a)
	return m
}
