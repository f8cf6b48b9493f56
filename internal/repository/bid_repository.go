package repository

import (
	"context"
	"errors"

	"github.com/yukikurage/freelance-marketplace-api/internal/models"
	"gorm.io/gorm"
)

// GormBidRepository is a GORM implementation of BidRepository
type GormBidRepository struct {
	db *gorm.DB
}

// NewBidRepository creates a new BidRepository
func NewBidRepository(db *gorm.DB) BidRepository {
	return &GormBidRepository{db: db}
}

func (r *GormBidRepository) IsValidID(id string) bool {
	return isCanonicalUUID(id)
}

func (r *GormBidRepository) Create(ctx context.Context, bid *models.Bid) error {
	return r.db.WithContext(ctx).Create(bid).Error
}

func (r *GormBidRepository) FindByID(ctx context.Context, id string) (*models.Bid, error) {
	if !r.IsValidID(id) {
		return nil, ErrInvalidID
	}

	var bid models.Bid
	if err := r.db.WithContext(ctx).First(&bid, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &bid, nil
}

func (r *GormBidRepository) ListByTask(ctx context.Context, taskID string) ([]models.Bid, error) {
	if !r.IsValidID(taskID) {
		return nil, ErrInvalidID
	}

	bids := []models.Bid{}
	if err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("date DESC").
		Order("id DESC").
		Find(&bids).Error; err != nil {
		return nil, err
	}
	return bids, nil
}

func (r *GormBidRepository) List(ctx context.Context) ([]models.Bid, error) {
	bids := []models.Bid{}
	if err := r.db.WithContext(ctx).
		Order("date DESC").
		Order("id DESC").
		Find(&bids).Error; err != nil {
		return nil, err
	}
	return bids, nil
}

func (r *GormBidRepository) Delete(ctx context.Context, id string) (bool, error) {
	if !r.IsValidID(id) {
		return false, ErrInvalidID
	}

	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Bid{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
