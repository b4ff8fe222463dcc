package crm

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/namap/backend/internal/domain/crm"
	"github.com/namap/backend/internal/domain/shared"
	"github.com/namap/backend/internal/infrastructure/telemetry"
)

// MaxActivityNoteLength bounds the free-form note field
const MaxActivityNoteLength = 2000

// ActivityService handles sales activity submissions and lookups
type ActivityService struct {
	activityRepo crm.ActivityRepository
	customerRepo crm.CustomerRepository
	logger       *zap.Logger
}

// NewActivityService creates a new ActivityService
func NewActivityService(activityRepo crm.ActivityRepository, customerRepo crm.CustomerRepository, logger *zap.Logger) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Submit records a sales activity against a customer. The customer must
// exist and belong to the caller; a customer owned by someone else is
// reported as forbidden, not as missing. Field problems are collected
// into a single validation error.
func (s *ActivityService) Submit(ctx context.Context, userID uuid.UUID, req SubmitActivityRequest) (*SubmitActivityResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "activity", "submit",
		telemetry.WithAttribute(telemetry.SpanAttrUserID, userID.String()))
	defer span.End()

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	telemetry.SetAttribute(span, telemetry.SpanAttrCustomerID, customerID.String())

	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if !customer.IsOwnedBy(userID) {
		s.logger.Warn("Activity submission for another user's customer",
			zap.String("customer_id", customerID.String()),
			zap.String("user_id", userID.String()))
		return nil, shared.ErrForbidden
	}

	activityDate, status, note, err := validateSubmission(req)
	if err != nil {
		return nil, err
	}

	activity, err := crm.NewActivity(customer.ID, activityDate, status, note)
	if err != nil {
		return nil, err
	}

	if err := s.activityRepo.Create(ctx, activity); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttribute(span, telemetry.SpanAttrActivityID, activity.ID.String())

	s.logger.Info("Activity recorded",
		zap.String("activity_id", activity.ID.String()),
		zap.String("customer_id", customer.ID.String()),
		zap.String("status", string(activity.Status)))

	return &SubmitActivityResponse{
		Message:      "success",
		ActivityDate: activity.ActivityDate.Format(crm.ActivityDateLayout),
		Status:       activity.Status.Display(),
		Note:         activity.Note,
	}, nil
}

// ListForCustomer retrieves the activities of one of the caller's
// customers, newest first
func (s *ActivityService) ListForCustomer(ctx context.Context, ownerID, customerID uuid.UUID, filter shared.Filter) ([]ActivityResponse, int64, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "activity", "list",
		telemetry.WithAttribute(telemetry.SpanAttrCustomerID, customerID.String()))
	defer span.End()

	if _, err := s.customerRepo.FindByIDForOwner(ctx, ownerID, customerID); err != nil {
		telemetry.RecordError(span, err)
		return nil, 0, err
	}

	activities, err := s.activityRepo.FindByCustomer(ctx, customerID, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.activityRepo.CountByCustomer(ctx, customerID)
	if err != nil {
		return nil, 0, err
	}

	items := make([]ActivityResponse, len(activities))
	for i := range activities {
		items[i] = ToActivityResponse(&activities[i])
	}

	return items, total, nil
}

func validateSubmission(req SubmitActivityRequest) (time.Time, crm.ActivityStatus, string, error) {
	verr := shared.NewValidationError()

	var activityDate time.Time
	if strings.TrimSpace(req.ActivityDate) == "" {
		verr.Add("activity_date", "This field is required")
	} else {
		parsed, err := crm.ParseActivityDate(strings.TrimSpace(req.ActivityDate))
		if err != nil {
			verr.Add("activity_date", "Enter a valid date in YYYY-MM-DD format")
		} else {
			activityDate = parsed
		}
	}

	status := crm.ActivityStatus(strings.TrimSpace(req.Status))
	if status == "" {
		verr.Add("status", "This field is required")
	} else if !status.IsValid() {
		verr.Add("status", "Select a valid choice")
	}

	note := strings.TrimSpace(req.Note)
	if len(note) > MaxActivityNoteLength {
		verr.Add("note", "Note cannot exceed 2000 characters")
	}

	if verr.HasErrors() {
		return time.Time{}, "", "", verr
	}

	return activityDate, status, note, nil
}
