package crm

import (
	"time"

	"github.com/google/uuid"
	"github.com/namap/backend/internal/domain/shared"
)

// ActivityStatus represents the outcome of a sales contact
type ActivityStatus string

const (
	ActivityStatusPlanned    ActivityStatus = "planned"
	ActivityStatusInProgress ActivityStatus = "in_progress"
	ActivityStatusDone       ActivityStatus = "done"
	ActivityStatusCancelled  ActivityStatus = "cancelled"
)

// ActivityDateLayout is the wire format for activity dates
const ActivityDateLayout = "2006-01-02"

// activityStatusLabels maps each status to its human-readable display form
var activityStatusLabels = map[ActivityStatus]string{
	ActivityStatusPlanned:    "Planned",
	ActivityStatusInProgress: "In Progress",
	ActivityStatusDone:       "Completed",
	ActivityStatusCancelled:  "Cancelled",
}

// Display returns the human-readable label for the status
func (s ActivityStatus) Display() string {
	if label, ok := activityStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

// IsValid reports whether the status is part of the fixed enumeration
func (s ActivityStatus) IsValid() bool {
	_, ok := activityStatusLabels[s]
	return ok
}

// ActivityStatuses returns the fixed set of valid statuses
func ActivityStatuses() []ActivityStatus {
	return []ActivityStatus{
		ActivityStatusPlanned,
		ActivityStatusInProgress,
		ActivityStatusDone,
		ActivityStatusCancelled,
	}
}

// Activity is a sales-contact log entry against a customer. Activities
// belong to exactly one customer and are implicitly owned by that
// customer's owning user; ownership is never stored on the activity
// itself. They are created once and never updated.
type Activity struct {
	shared.BaseEntity
	CustomerID   uuid.UUID
	ActivityDate time.Time
	Status       ActivityStatus
	Note         string
}

// NewActivity creates a new activity for the given customer
func NewActivity(customerID uuid.UUID, activityDate time.Time, status ActivityStatus, note string) (*Activity, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer reference is required")
	}
	if activityDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Activity date is required")
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Invalid activity status")
	}

	return &Activity{
		BaseEntity:   shared.NewBaseEntity(),
		CustomerID:   customerID,
		ActivityDate: activityDate,
		Status:       status,
		Note:         note,
	}, nil
}

// ParseActivityDate parses a wire-format activity date
func ParseActivityDate(value string) (time.Time, error) {
	return time.Parse(ActivityDateLayout, value)
}
