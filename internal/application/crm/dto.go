package crm

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/namap/backend/internal/domain/crm"
)

// =============================================================================
// Customer DTOs
// =============================================================================

// CreateCustomerRequest represents a request to create a new customer
type CreateCustomerRequest struct {
	CompanyName    string           `json:"company_name" binding:"required,min=1,max=200"`
	ContactName    string           `json:"contact_name" binding:"max=100"`
	Email          string           `json:"email" binding:"omitempty,email,max=200"`
	Phone          string           `json:"phone" binding:"max=50"`
	Address        string           `json:"address" binding:"max=500"`
	Notes          string           `json:"notes"`
	PotentialValue *decimal.Decimal `json:"potential_value"`
	Tags           []string         `json:"tags"`
}

// UpdateCustomerRequest represents a request to update a customer.
// All fields are submitted; the request replaces the customer's profile.
type UpdateCustomerRequest struct {
	CompanyName    string           `json:"company_name" binding:"required,min=1,max=200"`
	ContactName    string           `json:"contact_name" binding:"max=100"`
	Email          string           `json:"email" binding:"omitempty,email,max=200"`
	Phone          string           `json:"phone" binding:"max=50"`
	Address        string           `json:"address" binding:"max=500"`
	Notes          string           `json:"notes"`
	PotentialValue *decimal.Decimal `json:"potential_value"`
	Tags           []string         `json:"tags"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID             uuid.UUID       `json:"id"`
	CompanyName    string          `json:"company_name"`
	ContactName    string          `json:"contact_name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Address        string          `json:"address"`
	Notes          string          `json:"notes"`
	PotentialValue decimal.Decimal `json:"potential_value"`
	Tags           []string        `json:"tags"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CustomerListResponse represents a list item for customers
type CustomerListResponse struct {
	ID          uuid.UUID `json:"id"`
	CompanyName string    `json:"company_name"`
	ContactName string    `json:"contact_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
}

// CustomerListFilter represents filter options for customer list
type CustomerListFilter struct {
	Search string `form:"search"`
	Page   int    `form:"page" binding:"omitempty,min=1"`
}

// CustomerPageResponse is one page of the customer list
type CustomerPageResponse struct {
	Items      []CustomerListResponse `json:"items"`
	Total      int64                  `json:"total"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"page_size"`
	TotalPages int                    `json:"total_pages"`
	Search     string                 `json:"search"`
}

// ToCustomerResponse converts a domain customer to a response DTO
func ToCustomerResponse(customer *crm.Customer) CustomerResponse {
	return CustomerResponse{
		ID:             customer.ID,
		CompanyName:    customer.CompanyName,
		ContactName:    customer.ContactName,
		Email:          customer.Email,
		Phone:          customer.Phone,
		Address:        customer.Address,
		Notes:          customer.Notes,
		PotentialValue: customer.PotentialValue,
		Tags:           customer.TagNames(),
		CreatedAt:      customer.CreatedAt,
		UpdatedAt:      customer.UpdatedAt,
	}
}

// ToCustomerListResponse converts a domain customer to a list item DTO
func ToCustomerListResponse(customer *crm.Customer) CustomerListResponse {
	return CustomerListResponse{
		ID:          customer.ID,
		CompanyName: customer.CompanyName,
		ContactName: customer.ContactName,
		Email:       customer.Email,
		Phone:       customer.Phone,
		Tags:        customer.TagNames(),
		CreatedAt:   customer.CreatedAt,
	}
}

// =============================================================================
// Activity DTOs
// =============================================================================

// SubmitActivityRequest represents a request to log a sales activity.
// No binding tags: the service validates fields itself, after the
// ownership check, so the two failure modes keep their order.
type SubmitActivityRequest struct {
	CustomerID   string `json:"customer_id"`
	ActivityDate string `json:"activity_date"`
	Status       string `json:"status"`
	Note         string `json:"note"`
}

// SubmitActivityResponse is returned after a successful activity submission
type SubmitActivityResponse struct {
	Message      string `json:"message"`
	ActivityDate string `json:"activity_date"`
	Status       string `json:"status"`
	Note         string `json:"note"`
}

// ActivityResponse represents an activity in list responses
type ActivityResponse struct {
	ID           uuid.UUID `json:"id"`
	CustomerID   uuid.UUID `json:"customer_id"`
	ActivityDate string    `json:"activity_date"`
	Status       string    `json:"status"`
	StatusLabel  string    `json:"status_label"`
	Note         string    `json:"note"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToActivityResponse converts a domain activity to a response DTO
func ToActivityResponse(activity *crm.Activity) ActivityResponse {
	return ActivityResponse{
		ID:           activity.ID,
		CustomerID:   activity.CustomerID,
		ActivityDate: activity.ActivityDate.Format(crm.ActivityDateLayout),
		Status:       string(activity.Status),
		StatusLabel:  activity.Status.Display(),
		Note:         activity.Note,
		CreatedAt:    activity.CreatedAt,
	}
}

func toProfile(companyName, contactName, email, phone, address, notes string, potentialValue *decimal.Decimal, tags []string) crm.Profile {
	value := decimal.Zero
	if potentialValue != nil {
		value = *potentialValue
	}
	return crm.Profile{
		CompanyName:    companyName,
		ContactName:    contactName,
		Email:          email,
		Phone:          phone,
		Address:        address,
		Notes:          notes,
		PotentialValue: value,
		Tags:           tags,
	}
}

// ToProfile converts a create request to a domain profile
func (r CreateCustomerRequest) ToProfile() crm.Profile {
	return toProfile(r.CompanyName, r.ContactName, r.Email, r.Phone, r.Address, r.Notes, r.PotentialValue, r.Tags)
}

// ToProfile converts an update request to a domain profile
func (r UpdateCustomerRequest) ToProfile() crm.Profile {
	return toProfile(r.CompanyName, r.ContactName, r.Email, r.Phone, r.Address, r.Notes, r.PotentialValue, r.Tags)
}
