package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/freelance-marketplace-api/internal/dto"
	apierrors "github.com/yukikurage/freelance-marketplace-api/internal/errors"
	"github.com/yukikurage/freelance-marketplace-api/internal/middleware"
	"github.com/yukikurage/freelance-marketplace-api/internal/services"
)

type BidHandler struct {
	bidService *services.BidService
}

func NewBidHandler(bidService *services.BidService) *BidHandler {
	return &BidHandler{
		bidService: bidService,
	}
}

// ListBids returns the bids on a task, most recent first
func (h *BidHandler) ListBids(c *gin.Context) {
	bids, err := h.bidService.ListBids(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBidDTOs(bids))
}

// ListAllBids returns every bid, most recent first
func (h *BidHandler) ListAllBids(c *gin.Context) {
	bids, err := h.bidService.ListAllBids(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBidDTOs(bids))
}

// SubmitBid places a bid. An authenticated caller is the bidder regardless
// of the body.
func (h *BidHandler) SubmitBid(c *gin.Context) {
	bid, ok := h.submit(c)
	if !ok {
		return
	}

	c.JSON(http.StatusCreated, dto.InsertedResponse{InsertedID: bid.ID})
}

// PatchBids places a full bid for authenticated callers and answers with the
// task's bid list. Anonymous callers only bump the task's bid counter.
func (h *BidHandler) PatchBids(c *gin.Context) {
	if _, ok := middleware.GetPrincipal(c); !ok {
		if err := h.bidService.RecordBid(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
		return
	}

	if _, ok := h.submit(c); !ok {
		return
	}

	bids, err := h.bidService.ListBids(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBidDTOs(bids))
}

// RemoveBid deletes a bid on behalf of its bidder or the task owner
func (h *BidHandler) RemoveBid(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.bidService.RemoveBid(c.Request.Context(), c.Param("bidId"), principal.Email); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Bid deleted successfully"})
}

func (h *BidHandler) submit(c *gin.Context) (*dto.BidDTO, bool) {
	var req dto.BidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return nil, false
	}

	input := services.SubmitBidInput{
		TaskID:    c.Param("id"),
		UserEmail: req.UserEmail,
		UserName:  req.UserName,
		Amount:    req.Amount,
		Message:   req.Message,
	}
	if principal, ok := middleware.GetPrincipal(c); ok {
		input.UserEmail = principal.Email
		input.UserName = principal.Name
	}

	bid, err := h.bidService.SubmitBid(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return nil, false
	}

	result := dto.ToBidDTO(*bid)
	return &result, true
}
