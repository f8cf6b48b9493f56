package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yukikurage/freelance-marketplace-api/internal/models"
	"github.com/yukikurage/freelance-marketplace-api/internal/repository"
)

var deadlineLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04",
	"2006-01-02",
}

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Category    string
	Description string
	Deadline    string
	Budget      float64
	UserEmail   string
	UserName    string
}

// UpdateTaskInput represents the owner-editable fields of a task
type UpdateTaskInput struct {
	Title       string
	Category    string
	Description string
	Deadline    string
	Budget      float64
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	Limit     int
	UserEmail string
}

// CreateTask validates and stores a new task with no bids
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	details, err := validateDetails(input.Title, input.Category, input.Description, input.Deadline, input.Budget)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.UserEmail) == "" {
		return nil, ErrOwnerRequired
	}
	if strings.TrimSpace(input.UserName) == "" {
		return nil, missingField("userName")
	}

	task := &models.Task{
		Title:       details.Title,
		Category:    details.Category,
		Description: details.Description,
		Deadline:    details.Deadline,
		Budget:      details.Budget,
		UserEmail:   input.UserEmail,
		UserName:    input.UserName,
		BidsCount:   0,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, storeError("create task", err)
	}

	return task, nil
}

// GetTask returns a single task
func (s *TaskService) GetTask(ctx context.Context, taskID string) (*models.Task, error) {
	if !s.taskRepo.IsValidID(taskID) {
		return nil, ErrInvalidTaskID
	}

	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, taskLookupError(err)
	}
	return task, nil
}

// ListTasks returns tasks soonest deadline first. A non-positive limit means
// no limit; a user email narrows the listing to that owner.
func (s *TaskService) ListTasks(ctx context.Context, input ListTasksInput) ([]models.Task, error) {
	if input.UserEmail != "" {
		return s.ListTasksByOwner(ctx, input.UserEmail)
	}

	tasks, err := s.taskRepo.List(ctx, repository.TaskFilter{Limit: input.Limit})
	if err != nil {
		return nil, storeError("list tasks", err)
	}
	return tasks, nil
}

// ListTasksByOwner returns every task posted by email
func (s *TaskService) ListTasksByOwner(ctx context.Context, email string) ([]models.Task, error) {
	if strings.TrimSpace(email) == "" {
		return nil, ErrOwnerRequired
	}

	tasks, err := s.taskRepo.List(ctx, repository.TaskFilter{UserEmail: email})
	if err != nil {
		return nil, storeError("list tasks by owner", err)
	}
	return tasks, nil
}

// UpdateTask replaces the editable fields of a task owned by requesterEmail
func (s *TaskService) UpdateTask(ctx context.Context, taskID string, input UpdateTaskInput, requesterEmail string) (*models.Task, error) {
	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !task.IsOwnedBy(requesterEmail) {
		return nil, ErrNotTaskOwner
	}

	details, err := validateDetails(input.Title, input.Category, input.Description, input.Deadline, input.Budget)
	if err != nil {
		return nil, err
	}

	if err := s.taskRepo.UpdateDetails(ctx, taskID, details); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, storeError("update task", err)
	}

	return s.GetTask(ctx, taskID)
}

// DeleteTask removes a task and its bids. An empty requesterEmail skips the
// ownership check and is reserved for administrative callers.
func (s *TaskService) DeleteTask(ctx context.Context, taskID, requesterEmail string) error {
	ctx = context.WithoutCancel(ctx)

	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return err
	}

	if requesterEmail != "" && !task.IsOwnedBy(requesterEmail) {
		return ErrNotTaskOwner
	}

	deleted, err := s.taskRepo.Delete(ctx, taskID)
	if err != nil {
		if deleted {
			log.Printf("task %s deleted, bid cascade failed: %v", taskID, err)
			return nil
		}
		return storeError("delete task", err)
	}
	if !deleted {
		return ErrTaskNotFound
	}
	return nil
}

// DeleteAllTasks removes every task and bid, returning the number of tasks removed
func (s *TaskService) DeleteAllTasks(ctx context.Context) (int64, error) {
	count, err := s.taskRepo.DeleteAll(context.WithoutCancel(ctx))
	if err != nil {
		if count > 0 {
			log.Printf("%d tasks deleted, bid cascade failed: %v", count, err)
			return count, nil
		}
		return 0, storeError("delete all tasks", err)
	}
	return count, nil
}

func validateDetails(title, category, description, deadline string, budget float64) (repository.TaskDetails, error) {
	required := []struct {
		name  string
		value string
	}{
		{"title", title},
		{"category", category},
		{"description", description},
		{"deadline", deadline},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return repository.TaskDetails{}, missingField(field.name)
		}
	}

	parsed, err := ParseDeadline(deadline)
	if err != nil {
		return repository.TaskDetails{}, err
	}

	// NaN fails this comparison too.
	if !(budget > 0) {
		return repository.TaskDetails{}, ErrInvalidBudget
	}

	return repository.TaskDetails{
		Title:       title,
		Category:    category,
		Description: description,
		Deadline:    parsed,
		Budget:      budget,
	}, nil
}

// ParseDeadline accepts RFC 3339 timestamps, HTML datetime-local values and
// plain dates. Values without a zone are read as UTC.
func ParseDeadline(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDeadline, value)
}

func taskLookupError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrTaskNotFound
	case errors.Is(err, repository.ErrInvalidID):
		return ErrInvalidTaskID
	default:
		return storeError("find task", err)
	}
}
