package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/freelance-marketplace-api/internal/database"
	"github.com/yukikurage/freelance-marketplace-api/internal/models"
	"github.com/yukikurage/freelance-marketplace-api/internal/repository"
	"gorm.io/gorm"
)

var errStoreDown = errors.New("store unavailable")

func openTestDB(t testing.TB) *gorm.DB {
	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func validTaskInput() CreateTaskInput {
	return CreateTaskInput{
		Title:       "Fix bug",
		Category:    "dev",
		Description: "Crash on login",
		Deadline:    "2030-01-01",
		Budget:      100,
		UserEmail:   "a@x.com",
		UserName:    "A",
	}
}

// fixedClock returns successive instants one second apart.
func fixedClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		now := current
		current = current.Add(time.Second)
		return now
	}
}

// flakyTaskRepo overrides IncrementBidsCount on top of a real repository.
type flakyTaskRepo struct {
	repository.TaskRepository
	incrementErr error
	beforeInc    func()
}

func (r *flakyTaskRepo) IncrementBidsCount(ctx context.Context, id string, delta int) error {
	if r.beforeInc != nil {
		r.beforeInc()
	}
	if r.incrementErr != nil {
		return r.incrementErr
	}
	return r.TaskRepository.IncrementBidsCount(ctx, id, delta)
}

// failingBidRepo fails every read and write.
type failingBidRepo struct {
	repository.BidRepository
}

func (failingBidRepo) List(context.Context) ([]models.Bid, error) {
	return nil, errStoreDown
}

func (failingBidRepo) ListByTask(context.Context, string) ([]models.Bid, error) {
	return nil, errStoreDown
}

func (failingBidRepo) Create(context.Context, *models.Bid) error {
	return errStoreDown
}
