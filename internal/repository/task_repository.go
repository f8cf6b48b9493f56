package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/yukikurage/freelance-marketplace-api/internal/database"
	"github.com/yukikurage/freelance-marketplace-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

func (r *GormTaskRepository) IsValidID(id string) bool {
	return isCanonicalUUID(id)
}

// Create creates a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	if !r.IsValidID(id) {
		return nil, ErrInvalidID
	}

	var task models.Task
	if err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks with filtering, soonest deadline first
func (r *GormTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	tasks := []models.Task{}

	query := r.db.WithContext(ctx).Model(&models.Task{})
	if filter.UserEmail != "" {
		query = query.Where("user_email = ?", filter.UserEmail)
	}

	if err := query.
		Order("deadline ASC").
		Order("id ASC").
		Scopes(database.Limit(filter.Limit)).
		Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

// UpdateDetails updates the editable fields of a task
func (r *GormTaskRepository) UpdateDetails(ctx context.Context, id string, details TaskDetails) error {
	if !r.IsValidID(id) {
		return ErrInvalidID
	}

	result := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"title":       details.Title,
			"category":    details.Category,
			"description": details.Description,
			"deadline":    details.Deadline,
			"budget":      details.Budget,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete deletes a task together with its bids
func (r *GormTaskRepository) Delete(ctx context.Context, id string) (bool, error) {
	if !r.IsValidID(id) {
		return false, ErrInvalidID
	}

	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.Bid{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&models.Task{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}

	return deleted, nil
}

// DeleteAll deletes every task and bid
func (r *GormTaskRepository) DeleteAll(ctx context.Context) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Bid{}).Error; err != nil {
			return err
		}

		result := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Task{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}

	return deleted, nil
}

// IncrementBidsCount adds delta to bids_count in a single UPDATE statement.
// Negative deltas never take the counter below zero; such a miss reports ErrNotFound.
func (r *GormTaskRepository) IncrementBidsCount(ctx context.Context, id string, delta int) error {
	if !r.IsValidID(id) {
		return ErrInvalidID
	}

	query := r.db.WithContext(ctx).Model(&models.Task{}).Where("id = ?", id)
	if delta < 0 {
		query = query.Where("bids_count >= ?", -delta)
	}

	result := query.UpdateColumn("bids_count", gorm.Expr("bids_count + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func isCanonicalUUID(id string) bool {
	parsed, err := uuid.Parse(id)
	return err == nil && parsed.String() == id
}
