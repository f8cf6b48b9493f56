package dto

import (
	"time"

	"github.com/yukikurage/freelance-marketplace-api/internal/models"
	"github.com/yukikurage/freelance-marketplace-api/internal/services"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline"`
	Budget      float64   `json:"budget"`
	UserEmail   string    `json:"userEmail"`
	UserName    string    `json:"userName"`
	BidsCount   int64     `json:"bidsCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BidDTO represents a bid in API responses
type BidDTO struct {
	ID        string    `json:"_id"`
	TaskID    string    `json:"taskId"`
	UserEmail string    `json:"userEmail"`
	UserName  string    `json:"userName,omitempty"`
	Amount    float64   `json:"amount"`
	Message   string    `json:"message,omitempty"`
	Date      time.Time `json:"date"`
}

// PrincipalDTO represents the authenticated caller
type PrincipalDTO struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// CreateTaskRequest is the body of POST /tasks
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Deadline    string  `json:"deadline"`
	Budget      float64 `json:"budget"`
	UserEmail   string  `json:"userEmail"`
	UserName    string  `json:"userName"`
}

// UpdateTaskRequest is the body of PUT /tasks/:id
type UpdateTaskRequest struct {
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Deadline    string  `json:"deadline"`
	Budget      float64 `json:"budget"`
}

// BidRequest is the body of POST and PATCH /tasks/:id/bids
type BidRequest struct {
	Amount    float64 `json:"amount"`
	Message   string  `json:"message"`
	UserEmail string  `json:"userEmail"`
	UserName  string  `json:"userName"`
}

// InsertedResponse reports the identifier of a created record
type InsertedResponse struct {
	InsertedID string `json:"insertedId"`
}

// MessageResponse is a plain confirmation
type MessageResponse struct {
	Message string `json:"message"`
}

// UpdatedTaskResponse is returned by PUT /tasks/:id
type UpdatedTaskResponse struct {
	Message     string  `json:"message"`
	UpdatedTask TaskDTO `json:"updatedTask"`
}

// DeletedCountResponse is returned by DELETE /tasks
type DeletedCountResponse struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deletedCount"`
}

// SuccessResponse is returned when a bid is only counted
type SuccessResponse struct {
	Success bool `json:"success"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Conversion functions

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Category:    task.Category,
		Description: task.Description,
		Deadline:    task.Deadline,
		Budget:      task.Budget,
		UserEmail:   task.UserEmail,
		UserName:    task.UserName,
		BidsCount:   task.BidsCount,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// ToTaskDTOs converts a slice of Task models, never returning nil
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}

// ToBidDTO converts a Bid model to BidDTO
func ToBidDTO(bid models.Bid) BidDTO {
	return BidDTO{
		ID:        bid.ID,
		TaskID:    bid.TaskID,
		UserEmail: bid.UserEmail,
		UserName:  bid.UserName,
		Amount:    bid.Amount,
		Message:   bid.Message,
		Date:      bid.Date,
	}
}

// ToBidDTOs converts a slice of Bid models, never returning nil
func ToBidDTOs(bids []models.Bid) []BidDTO {
	dtos := make([]BidDTO, len(bids))
	for i, bid := range bids {
		dtos[i] = ToBidDTO(bid)
	}
	return dtos
}

// ToPrincipalDTO converts a verified principal
func ToPrincipalDTO(p services.Principal) PrincipalDTO {
	return PrincipalDTO{Email: p.Email, Name: p.Name}
}
