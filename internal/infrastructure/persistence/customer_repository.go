package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/namap/backend/internal/domain/crm"
	"github.com/namap/backend/internal/domain/shared"
	"github.com/namap/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by its ID regardless of owner
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Customer, error) {
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).Preload("Tags").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForOwner finds a customer by ID within an owner's scope
func (r *GormCustomerRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*crm.Customer, error) {
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).
		Preload("Tags").
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// SearchForOwner finds an owner's customers matching the filter. The keyword
// matches company name, contact name, email, or any tag name, case
// insensitively; tag matches pull in the whole customer, so the result set is
// deduplicated. Ordering is by company name, then ID for a stable page
// sequence.
func (r *GormCustomerRepository) SearchForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]crm.Customer, error) {
	var customerModels []models.CustomerModel

	query := r.db.WithContext(ctx).
		Model(&models.CustomerModel{}).
		Where("customers.owner_id = ?", ownerID)
	if filter.Search != "" {
		query = r.applySearch(query, filter.Search).Distinct("customers.*")
	}
	query = query.Order("customers.company_name ASC, customers.id ASC")
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	if err := query.Preload("Tags").Find(&customerModels).Error; err != nil {
		return nil, err
	}

	customers := make([]crm.Customer, len(customerModels))
	for i, model := range customerModels {
		customers[i] = *model.ToDomain()
	}
	return customers, nil
}

// CountForOwner counts an owner's customers matching the filter
func (r *GormCustomerRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&models.CustomerModel{}).
		Where("customers.owner_id = ?", ownerID)
	if filter.Search != "" {
		query = r.applySearch(query, filter.Search).Distinct("customers.id")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a customer and reconciles its tag links. Tags are
// matched against existing rows by name, case insensitively, and created
// when missing.
func (r *GormCustomerRepository) Save(ctx context.Context, customer *crm.Customer) error {
	model := models.CustomerModelFromDomain(customer)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(model).Error; err != nil {
			return err
		}

		tagModels, err := r.resolveTags(tx, customer.Tags)
		if err != nil {
			return err
		}
		if len(tagModels) == 0 {
			if err := tx.Model(model).Association("Tags").Clear(); err != nil {
				return err
			}
		} else if err := tx.Model(model).Association("Tags").Replace(tagModels); err != nil {
			return err
		}

		for i, tagModel := range tagModels {
			customer.Tags[i] = tagModel.ToDomain()
		}
		return nil
	})
}

// resolveTags finds or creates a tag row per domain tag, preserving order
func (r *GormCustomerRepository) resolveTags(tx *gorm.DB, tags []crm.Tag) ([]models.TagModel, error) {
	tagModels := make([]models.TagModel, 0, len(tags))
	for _, tag := range tags {
		var model models.TagModel
		err := tx.Where("LOWER(name) = ?", strings.ToLower(tag.Name)).First(&model).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			model = models.TagModel{
				ID:        uuid.New(),
				Name:      tag.Name,
				CreatedAt: time.Now(),
			}
			if err := tx.Create(&model).Error; err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, err
		}
		tagModels = append(tagModels, model)
	}
	return tagModels, nil
}

// DeleteForOwner deletes a customer within an owner's scope along with its
// activities and tag links. The tag rows themselves stay; other customers
// may share them.
func (r *GormCustomerRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.CustomerModel{}, "owner_id = ? AND id = ?", ownerID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		if err := tx.Exec("DELETE FROM customer_tags WHERE customer_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ActivityModel{}, "customer_id = ?", id).Error
	})
}

// applySearch joins tag links and applies the keyword predicate. LOWER with
// LIKE keeps the match case insensitive on any backend.
func (r *GormCustomerRepository) applySearch(query *gorm.DB, search string) *gorm.DB {
	pattern := "%" + strings.ToLower(search) + "%"
	return query.
		Joins("LEFT JOIN customer_tags ON customer_tags.customer_id = customers.id").
		Joins("LEFT JOIN tags ON tags.id = customer_tags.tag_id").
		Where("LOWER(customers.company_name) LIKE ? OR LOWER(customers.contact_name) LIKE ? OR LOWER(customers.email) LIKE ? OR LOWER(tags.name) LIKE ?",
			pattern, pattern, pattern, pattern)
}

// Ensure GormCustomerRepository implements CustomerRepository
var _ crm.CustomerRepository = (*GormCustomerRepository)(nil)
