package crm

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/namap/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PageSize is the fixed number of customers per list page
const PageSize = 10

// Customer represents a customer record in the CRM context.
// It is the aggregate root for customer-related operations. Every customer
// belongs to exactly one user; the owner is stamped at creation and can
// never be reassigned.
type Customer struct {
	shared.OwnedAggregateRoot
	CompanyName    string
	ContactName    string
	Email          string
	Phone          string
	Address        string
	Notes          string
	PotentialValue decimal.Decimal // Estimated deal value
	Tags           []Tag
}

// Tag is a free-form label attached to customers. Tag names participate in
// keyword search.
type Tag struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

// Profile carries the mutable customer fields for create and update
// operations. The owning user is never part of the profile; it comes from
// the authenticated caller.
type Profile struct {
	CompanyName    string
	ContactName    string
	Email          string
	Phone          string
	Address        string
	Notes          string
	PotentialValue decimal.Decimal
	Tags           []string
}

// Validate checks all profile fields and collects every problem into a
// single ValidationError so the caller can report them together.
func (p Profile) Validate() error {
	verr := shared.NewValidationError()

	if strings.TrimSpace(p.CompanyName) == "" {
		verr.Add("company_name", "This field is required")
	} else if len(p.CompanyName) > 200 {
		verr.Add("company_name", "Company name cannot exceed 200 characters")
	}
	if len(p.ContactName) > 100 {
		verr.Add("contact_name", "Contact name cannot exceed 100 characters")
	}
	if p.Email != "" {
		if err := validateEmail(p.Email); err != nil {
			verr.Add("email", err.Error())
		}
	}
	if p.Phone != "" {
		if err := validatePhone(p.Phone); err != nil {
			verr.Add("phone", err.Error())
		}
	}
	if len(p.Address) > 500 {
		verr.Add("address", "Address cannot exceed 500 characters")
	}
	if p.PotentialValue.IsNegative() {
		verr.Add("potential_value", "Potential value cannot be negative")
	}
	for _, tag := range p.Tags {
		if strings.TrimSpace(tag) == "" {
			continue
		}
		if err := validateTagName(tag); err != nil {
			verr.Add("tags", err.Error())
		}
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

// NewCustomer creates a new customer owned by the given user. The owner ID
// comes from the authenticated caller, never from submitted fields.
func NewCustomer(ownerID uuid.UUID, profile Profile) (*Customer, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	customer := &Customer{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
	}
	customer.applyProfile(profile)

	return customer, nil
}

// ApplyProfile validates and applies new field values. The owner is left
// untouched.
func (c *Customer) ApplyProfile(profile Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	c.applyProfile(profile)
	return nil
}

func (c *Customer) applyProfile(profile Profile) {
	c.CompanyName = strings.TrimSpace(profile.CompanyName)
	c.ContactName = strings.TrimSpace(profile.ContactName)
	c.Email = strings.ToLower(strings.TrimSpace(profile.Email))
	c.Phone = strings.TrimSpace(profile.Phone)
	c.Address = profile.Address
	c.Notes = profile.Notes
	c.PotentialValue = profile.PotentialValue
	c.Tags = makeTags(profile.Tags)
	c.UpdatedAt = time.Now()
}

// TagNames returns the customer's tag names in attachment order
func (c *Customer) TagNames() []string {
	names := make([]string, len(c.Tags))
	for i, t := range c.Tags {
		names[i] = t.Name
	}
	return names
}

// makeTags builds tag values from names, trimming and dropping duplicates
// and empties. Persistence reconciles them against existing tag rows by
// name.
func makeTags(names []string) []Tag {
	seen := make(map[string]struct{}, len(names))
	tags := make([]Tag, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		tags = append(tags, Tag{Name: name})
	}
	return tags
}

// Validation functions

func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func validatePhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 50 characters")
	}
	validPhone := regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
	if !validPhone.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}
	return nil
}

func validateTagName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_TAG", "Tag name cannot be empty")
	}
	if len(name) > 50 {
		return shared.NewDomainError("INVALID_TAG", "Tag name cannot exceed 50 characters")
	}
	return nil
}
