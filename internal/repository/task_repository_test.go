package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/freelance-marketplace-api/internal/database"
	"github.com/yukikurage/freelance-marketplace-api/internal/models"
	"gorm.io/gorm"
)

type GormRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	tasks TaskRepository
	bids  BidRepository
	ctx   context.Context
}

func (suite *GormRepositoryTestSuite) SetupTest() {
	var err error
	suite.db, err = database.OpenSQLite(":memory:")
	suite.Require().NoError(err)
	suite.Require().NoError(database.AutoMigrate(suite.db))

	suite.tasks = NewTaskRepository(suite.db)
	suite.bids = NewBidRepository(suite.db)
	suite.ctx = context.Background()
}

func (suite *GormRepositoryTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *GormRepositoryTestSuite) createTask(title, owner string, deadline time.Time) *models.Task {
	task := &models.Task{
		Title:       title,
		Category:    "dev",
		Description: "Test Description",
		Deadline:    deadline,
		Budget:      100,
		UserEmail:   owner,
		UserName:    "Owner",
	}
	suite.Require().NoError(suite.tasks.Create(suite.ctx, task))
	return task
}

func (suite *GormRepositoryTestSuite) createBid(taskID, bidder string, date time.Time) *models.Bid {
	bid := &models.Bid{TaskID: taskID, UserEmail: bidder, Amount: 50, Date: date}
	suite.Require().NoError(suite.bids.Create(suite.ctx, bid))
	return bid
}

func (suite *GormRepositoryTestSuite) TestCreate_AssignsUUID() {
	task := suite.createTask("Fix bug", "a@x.com", time.Now())

	assert.True(suite.T(), suite.tasks.IsValidID(task.ID))
	assert.Equal(suite.T(), int64(0), task.BidsCount)
}

func (suite *GormRepositoryTestSuite) TestIsValidID() {
	assert.True(suite.T(), suite.tasks.IsValidID(uuid.NewString()))
	assert.False(suite.T(), suite.tasks.IsValidID("not-an-id"))
	assert.False(suite.T(), suite.tasks.IsValidID(""))
	assert.False(suite.T(), suite.tasks.IsValidID("{"+uuid.NewString()+"}"))
}

func (suite *GormRepositoryTestSuite) TestFindByID() {
	task := suite.createTask("Fix bug", "a@x.com", time.Now())

	found, err := suite.tasks.FindByID(suite.ctx, task.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "Fix bug", found.Title)

	_, err = suite.tasks.FindByID(suite.ctx, uuid.NewString())
	assert.ErrorIs(suite.T(), err, ErrNotFound)

	_, err = suite.tasks.FindByID(suite.ctx, "bogus")
	assert.ErrorIs(suite.T(), err, ErrInvalidID)
}

func (suite *GormRepositoryTestSuite) TestList_OrderedByDeadlineWithLimit() {
	base := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.createTask("third", "a@x.com", base.Add(72*time.Hour))
	suite.createTask("first", "a@x.com", base)
	suite.createTask("fifth", "b@x.com", base.Add(120*time.Hour))
	suite.createTask("second", "b@x.com", base.Add(24*time.Hour))
	suite.createTask("fourth", "a@x.com", base.Add(96*time.Hour))

	limited, err := suite.tasks.List(suite.ctx, TaskFilter{Limit: 2})
	suite.Require().NoError(err)
	suite.Require().Len(limited, 2)
	assert.Equal(suite.T(), "first", limited[0].Title)
	assert.Equal(suite.T(), "second", limited[1].Title)

	all, err := suite.tasks.List(suite.ctx, TaskFilter{})
	suite.Require().NoError(err)
	assert.Len(suite.T(), all, 5)

	owned, err := suite.tasks.List(suite.ctx, TaskFilter{UserEmail: "b@x.com"})
	suite.Require().NoError(err)
	suite.Require().Len(owned, 2)
	for _, task := range owned {
		assert.Equal(suite.T(), "b@x.com", task.UserEmail)
	}
}

func (suite *GormRepositoryTestSuite) TestUpdateDetails() {
	task := suite.createTask("Old Title", "a@x.com", time.Now())
	deadline := time.Date(2031, 6, 1, 0, 0, 0, 0, time.UTC)

	err := suite.tasks.UpdateDetails(suite.ctx, task.ID, TaskDetails{
		Title:       "New Title",
		Category:    "design",
		Description: "updated",
		Deadline:    deadline,
		Budget:      250,
	})
	suite.Require().NoError(err)

	updated, err := suite.tasks.FindByID(suite.ctx, task.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "New Title", updated.Title)
	assert.Equal(suite.T(), "design", updated.Category)
	assert.Equal(suite.T(), 250.0, updated.Budget)
	assert.True(suite.T(), deadline.Equal(updated.Deadline))
	assert.Equal(suite.T(), "a@x.com", updated.UserEmail)

	err = suite.tasks.UpdateDetails(suite.ctx, uuid.NewString(), TaskDetails{Title: "x"})
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *GormRepositoryTestSuite) TestIncrementBidsCount() {
	task := suite.createTask("Counted", "a@x.com", time.Now())

	suite.Require().NoError(suite.tasks.IncrementBidsCount(suite.ctx, task.ID, 1))
	suite.Require().NoError(suite.tasks.IncrementBidsCount(suite.ctx, task.ID, 1))
	suite.Require().NoError(suite.tasks.IncrementBidsCount(suite.ctx, task.ID, -1))

	found, err := suite.tasks.FindByID(suite.ctx, task.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(1), found.BidsCount)

	err = suite.tasks.IncrementBidsCount(suite.ctx, uuid.NewString(), 1)
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *GormRepositoryTestSuite) TestIncrementBidsCount_NeverNegative() {
	task := suite.createTask("Empty", "a@x.com", time.Now())

	err := suite.tasks.IncrementBidsCount(suite.ctx, task.ID, -1)
	assert.ErrorIs(suite.T(), err, ErrNotFound)

	found, err := suite.tasks.FindByID(suite.ctx, task.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(0), found.BidsCount)
}

func (suite *GormRepositoryTestSuite) TestDelete_CascadesBids() {
	task := suite.createTask("Doomed", "a@x.com", time.Now())
	other := suite.createTask("Survivor", "a@x.com", time.Now())
	suite.createBid(task.ID, "b@x.com", time.Now())
	kept := suite.createBid(other.ID, "b@x.com", time.Now())

	deleted, err := suite.tasks.Delete(suite.ctx, task.ID)
	suite.Require().NoError(err)
	assert.True(suite.T(), deleted)

	remaining, err := suite.bids.List(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(remaining, 1)
	assert.Equal(suite.T(), kept.ID, remaining[0].ID)

	deleted, err = suite.tasks.Delete(suite.ctx, task.ID)
	suite.Require().NoError(err)
	assert.False(suite.T(), deleted)
}

func (suite *GormRepositoryTestSuite) TestDeleteAll() {
	first := suite.createTask("one", "a@x.com", time.Now())
	suite.createTask("two", "b@x.com", time.Now())
	suite.createBid(first.ID, "c@x.com", time.Now())

	count, err := suite.tasks.DeleteAll(suite.ctx)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(2), count)

	tasks, err := suite.tasks.List(suite.ctx, TaskFilter{})
	suite.Require().NoError(err)
	assert.Empty(suite.T(), tasks)

	bids, err := suite.bids.List(suite.ctx)
	suite.Require().NoError(err)
	assert.Empty(suite.T(), bids)
}

func (suite *GormRepositoryTestSuite) TestBids_ListByTaskMostRecentFirst() {
	task := suite.createTask("Bidding", "a@x.com", time.Now())
	t1 := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	b1 := suite.createBid(task.ID, "b@x.com", t1)
	b2 := suite.createBid(task.ID, "c@x.com", t1.Add(time.Minute))
	b3 := suite.createBid(task.ID, "d@x.com", t1.Add(2*time.Minute))

	bids, err := suite.bids.ListByTask(suite.ctx, task.ID)
	suite.Require().NoError(err)
	suite.Require().Len(bids, 3)
	assert.Equal(suite.T(), []string{b3.ID, b2.ID, b1.ID}, []string{bids[0].ID, bids[1].ID, bids[2].ID})

	_, err = suite.bids.ListByTask(suite.ctx, "bogus")
	assert.ErrorIs(suite.T(), err, ErrInvalidID)
}

func (suite *GormRepositoryTestSuite) TestBids_FindAndDelete() {
	task := suite.createTask("Bidding", "a@x.com", time.Now())
	bid := suite.createBid(task.ID, "b@x.com", time.Now())

	found, err := suite.bids.FindByID(suite.ctx, bid.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "b@x.com", found.UserEmail)

	removed, err := suite.bids.Delete(suite.ctx, bid.ID)
	suite.Require().NoError(err)
	assert.True(suite.T(), removed)

	removed, err = suite.bids.Delete(suite.ctx, bid.ID)
	suite.Require().NoError(err)
	assert.False(suite.T(), removed)

	_, err = suite.bids.FindByID(suite.ctx, bid.ID)
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func TestGormRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(GormRepositoryTestSuite))
}
