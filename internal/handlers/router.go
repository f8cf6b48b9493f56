package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/freelance-marketplace-api/internal/dto"
	"github.com/yukikurage/freelance-marketplace-api/internal/middleware"
	"github.com/yukikurage/freelance-marketplace-api/internal/services"
)

// Dependencies are the services the HTTP layer is built on.
type Dependencies struct {
	Tasks    *services.TaskService
	Bids     *services.BidService
	Verifier services.IdentityVerifier
}

// NewRouter builds the gin engine with logging, recovery and request IDs.
func NewRouter(deps Dependencies) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestID())
	RegisterRoutes(r, deps)
	return r
}

// RegisterRoutes mounts every endpoint on r.
func RegisterRoutes(r *gin.Engine, deps Dependencies) {
	authHandler := NewAuthHandler()
	taskHandler := NewTaskHandler(deps.Tasks)
	bidHandler := NewBidHandler(deps.Bids)

	requireAuth := middleware.RequireAuth(deps.Verifier)
	optionalAuth := middleware.OptionalAuth(deps.Verifier)

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Freelance Marketplace API is running")
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.HealthResponse{
			Status:  "ok",
			Message: "Freelance Marketplace API is running",
		})
	})

	r.GET("/me", requireAuth, authHandler.GetCurrentUser)
	r.GET("/my-tasks", requireAuth, taskHandler.ListMyTasks)

	tasks := r.Group("/tasks")
	{
		tasks.GET("", taskHandler.ListTasks)
		tasks.POST("", optionalAuth, taskHandler.CreateTask)
		tasks.DELETE("", taskHandler.DeleteAllTasks)
		tasks.GET("/:id", taskHandler.GetTask)
		tasks.PUT("/:id", requireAuth, taskHandler.UpdateTask)
		tasks.DELETE("/:id", requireAuth, taskHandler.DeleteTask)
		tasks.GET("/:id/bids", bidHandler.ListBids)
		tasks.POST("/:id/bids", optionalAuth, bidHandler.SubmitBid)
		tasks.PATCH("/:id/bids", optionalAuth, bidHandler.PatchBids)
	}

	bids := r.Group("/bids")
	{
		bids.GET("", bidHandler.ListAllBids)
		bids.DELETE("/:bidId", requireAuth, bidHandler.RemoveBid)
	}
}
