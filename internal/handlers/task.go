package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/freelance-marketplace-api/internal/dto"
	apierrors "github.com/yukikurage/freelance-marketplace-api/internal/errors"
	"github.com/yukikurage/freelance-marketplace-api/internal/middleware"
	"github.com/yukikurage/freelance-marketplace-api/internal/services"
	"github.com/yukikurage/freelance-marketplace-api/internal/utils"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask posts a new task. An authenticated caller becomes the owner
// regardless of the userEmail in the body.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.CreateTaskInput{
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		Deadline:    req.Deadline,
		Budget:      req.Budget,
		UserEmail:   req.UserEmail,
		UserName:    req.UserName,
	}
	if principal, ok := middleware.GetPrincipal(c); ok {
		input.UserEmail = principal.Email
		input.UserName = principal.Name
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.InsertedResponse{InsertedID: task.ID})
}

// ListTasks returns tasks soonest deadline first, optionally limited or
// narrowed to one owner with ?userEmail=
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks(c.Request.Context(), services.ListTasksInput{
		Limit:     utils.ParseLimit(c),
		UserEmail: c.Query("userEmail"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// ListMyTasks returns the tasks owned by the authenticated caller
func (h *TaskHandler) ListMyTasks(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	tasks, err := h.taskService.ListTasksByOwner(c.Request.Context(), principal.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, err := h.taskService.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateTask replaces the editable fields of a task (owner only)
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), c.Param("id"), services.UpdateTaskInput{
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		Deadline:    req.Deadline,
		Budget:      req.Budget,
	}, principal.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UpdatedTaskResponse{
		Message:     "Task updated successfully",
		UpdatedTask: dto.ToTaskDTO(*task),
	})
}

// DeleteTask deletes a task and its bids (owner only)
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), c.Param("id"), principal.Email); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Task deleted successfully"})
}

// DeleteAllTasks removes every task and bid
func (h *TaskHandler) DeleteAllTasks(c *gin.Context) {
	count, err := h.taskService.DeleteAllTasks(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DeletedCountResponse{
		Message:      "All tasks deleted",
		DeletedCount: count,
	})
}
