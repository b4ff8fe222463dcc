package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/namap/backend/internal/domain/crm"
	"github.com/namap/backend/internal/domain/shared"
	"github.com/namap/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormActivityRepository implements ActivityRepository using GORM
type GormActivityRepository struct {
	db *gorm.DB
}

// NewGormActivityRepository creates a new GormActivityRepository
func NewGormActivityRepository(db *gorm.DB) *GormActivityRepository {
	return &GormActivityRepository{db: db}
}

// Create persists a new activity
func (r *GormActivityRepository) Create(ctx context.Context, activity *crm.Activity) error {
	model := models.ActivityModelFromDomain(activity)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByCustomer finds a customer's activities, newest first
func (r *GormActivityRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]crm.Activity, error) {
	var activityModels []models.ActivityModel
	query := r.db.WithContext(ctx).
		Model(&models.ActivityModel{}).
		Where("customer_id = ?", customerID).
		Order("activity_date DESC, created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	if err := query.Find(&activityModels).Error; err != nil {
		return nil, err
	}

	activities := make([]crm.Activity, len(activityModels))
	for i, model := range activityModels {
		activities[i] = *model.ToDomain()
	}
	return activities, nil
}

// CountByCustomer counts a customer's activities
func (r *GormActivityRepository) CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ActivityModel{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormActivityRepository implements ActivityRepository
var _ crm.ActivityRepository = (*GormActivityRepository)(nil)
