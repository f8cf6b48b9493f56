package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/yukikurage/freelance-marketplace-api/internal/models"
	"github.com/yukikurage/freelance-marketplace-api/internal/repository"
)

// BidService keeps bids and the bidsCount of their task in step
type BidService struct {
	taskRepo repository.TaskRepository
	bidRepo  repository.BidRepository
	now      func() time.Time
}

// NewBidService creates a new BidService
func NewBidService(taskRepo repository.TaskRepository, bidRepo repository.BidRepository) *BidService {
	return &BidService{
		taskRepo: taskRepo,
		bidRepo:  bidRepo,
		now:      time.Now,
	}
}

// SubmitBidInput represents input for placing a bid
type SubmitBidInput struct {
	TaskID    string
	UserEmail string
	UserName  string
	Amount    float64
	Message   string
}

// SubmitBid stores a bid and increments the task's bidsCount.
//
// The insert and the increment are separate writes. If the task disappears
// in between, the bid is deleted again and ErrTaskNotFound is returned. Any
// other increment failure leaves the bid in place and is logged.
func (s *BidService) SubmitBid(ctx context.Context, input SubmitBidInput) (*models.Bid, error) {
	if !s.taskRepo.IsValidID(input.TaskID) {
		return nil, ErrInvalidTaskID
	}
	if !(input.Amount > 0) {
		return nil, ErrInvalidAmount
	}
	if strings.TrimSpace(input.UserEmail) == "" {
		return nil, ErrBidderRequired
	}

	ctx = context.WithoutCancel(ctx)

	if _, err := s.taskRepo.FindByID(ctx, input.TaskID); err != nil {
		return nil, taskLookupError(err)
	}

	bid := &models.Bid{
		TaskID:    input.TaskID,
		UserEmail: input.UserEmail,
		UserName:  input.UserName,
		Amount:    input.Amount,
		Message:   input.Message,
		Date:      s.now().UTC(),
	}
	if err := s.bidRepo.Create(ctx, bid); err != nil {
		return nil, storeError("insert bid", err)
	}

	if err := s.taskRepo.IncrementBidsCount(ctx, input.TaskID, 1); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			if _, delErr := s.bidRepo.Delete(ctx, bid.ID); delErr != nil {
				log.Printf("bid %s orphaned: task %s vanished and rollback failed: %v", bid.ID, input.TaskID, delErr)
			}
			return nil, ErrTaskNotFound
		}
		log.Printf("bid %s inserted but bidsCount of task %s not incremented: %v", bid.ID, input.TaskID, err)
		return nil, storeError("increment bids count", err)
	}

	return bid, nil
}

// RemoveBid deletes a bid on behalf of its bidder or the task owner and
// decrements the task's bidsCount. When the task no longer exists only the
// bidder may remove the bid and no decrement happens.
func (s *BidService) RemoveBid(ctx context.Context, bidID, requesterEmail string) error {
	if !s.bidRepo.IsValidID(bidID) {
		return ErrInvalidBidID
	}

	ctx = context.WithoutCancel(ctx)

	bid, err := s.bidRepo.FindByID(ctx, bidID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrBidNotFound
		case errors.Is(err, repository.ErrInvalidID):
			return ErrInvalidBidID
		default:
			return storeError("find bid", err)
		}
	}

	task, err := s.taskRepo.FindByID(ctx, bid.TaskID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) && !errors.Is(err, repository.ErrInvalidID) {
			return storeError("find task", err)
		}
		task = nil
	}

	if !bid.IsPlacedBy(requesterEmail) && (task == nil || !task.IsOwnedBy(requesterEmail)) {
		return ErrNotBidParticipant
	}

	removed, err := s.bidRepo.Delete(ctx, bidID)
	if err != nil {
		return storeError("delete bid", err)
	}
	if !removed {
		return ErrBidNotFound
	}

	if task == nil {
		return nil
	}

	if err := s.taskRepo.IncrementBidsCount(ctx, bid.TaskID, -1); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Printf("bid %s removed; task %s gone or already at zero, decrement skipped", bidID, bid.TaskID)
			return nil
		}
		log.Printf("bid %s removed but bidsCount of task %s not decremented: %v", bidID, bid.TaskID, err)
		return storeError("decrement bids count", err)
	}

	return nil
}

// RecordBid increments bidsCount without storing bid details. It returns
// ErrTaskNotFound when the task is absent and ErrBidNotRecorded when the
// increment matched nothing although the task can still be read.
func (s *BidService) RecordBid(ctx context.Context, taskID string) error {
	if !s.taskRepo.IsValidID(taskID) {
		return ErrInvalidTaskID
	}

	err := s.taskRepo.IncrementBidsCount(ctx, taskID, 1)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return storeError("increment bids count", err)
	}

	if _, findErr := s.taskRepo.FindByID(ctx, taskID); findErr != nil {
		return taskLookupError(findErr)
	}
	return ErrBidNotRecorded
}

// ListBids returns the bids on a task, most recent first
func (s *BidService) ListBids(ctx context.Context, taskID string) ([]models.Bid, error) {
	if !s.taskRepo.IsValidID(taskID) {
		return nil, ErrInvalidTaskID
	}

	bids, err := s.bidRepo.ListByTask(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidID) {
			return nil, ErrInvalidTaskID
		}
		return nil, storeError("list bids", err)
	}
	return bids, nil
}

// ListAllBids returns every bid, most recent first
func (s *BidService) ListAllBids(ctx context.Context) ([]models.Bid, error) {
	bids, err := s.bidRepo.List(ctx)
	if err != nil {
		return nil, storeError("list all bids", err)
	}
	return bids, nil
}
