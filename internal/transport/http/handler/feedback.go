package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ammarraza1199/Mock-interview-Backend/internal/app"
	"github.com/ammarraza1199/Mock-interview-Backend/internal/transport/http/middleware"
	"github.com/ammarraza1199/Mock-interview-Backend/internal/transport/http/response"
)

type FeedbackHandler struct {
	feedbackService *app.FeedbackService
}

type SubmitFeedbackRequest struct {
	Feedback string `json:"feedback" binding:"required,max=4000"`
}

type SendDigestRequest struct {
	Email string `json:"email" binding:"required,email,max=128"`
}

func NewFeedbackHandler(feedbackService *app.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// Submit enqueues one product feedback entry.
func (h *FeedbackHandler) Submit(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in token")
		return
	}

	var req SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	if err := h.feedbackService.Submit(c.Request.Context(), userID, req.Feedback); err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "submit feedback failed")
		}
		return
	}

	response.OK(c, gin.H{"status": "accepted"})
}

// ListAnalysis returns every stored answer evaluation for the user.
func (h *FeedbackHandler) ListAnalysis(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in token")
		return
	}

	items, err := h.feedbackService.ListAnalysis(userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "fetch feedback failed")
		return
	}

	response.OK(c, gin.H{"items": items, "count": len(items)})
}

// SendDigest emails the user's stored answer evaluations to the address in
// the request body.
func (h *FeedbackHandler) SendDigest(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in token")
		return
	}

	var req SendDigestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	if err := h.feedbackService.SendDigest(c.Request.Context(), userID, req.Email); err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrFeedbackNotFound):
			response.Error(c, http.StatusNotFound, response.CodeFeedbackNotFound, err.Error())
		case errors.Is(err, app.ErrMailDelivery):
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "send feedback email failed")
		}
		return
	}

	response.OK(c, gin.H{"status": "sent"})
}
