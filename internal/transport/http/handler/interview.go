package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ammarraza1199/Mock-interview-Backend/internal/app"
	"github.com/ammarraza1199/Mock-interview-Backend/internal/pkg/filecrypt"
	"github.com/ammarraza1199/Mock-interview-Backend/internal/transport/http/middleware"
	"github.com/ammarraza1199/Mock-interview-Backend/internal/transport/http/response"
)

type InterviewHandler struct {
	interviewService *app.InterviewService
}

type AnalyzeAnswerRequest struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
}

func NewInterviewHandler(interviewService *app.InterviewService) *InterviewHandler {
	return &InterviewHandler{interviewService: interviewService}
}

// Questions returns the interview question list for the user's active upload,
// generating it on first request.
func (h *InterviewHandler) Questions(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in token")
		return
	}

	result, err := h.interviewService.Questions(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrUploadNotFound):
			response.Error(c, http.StatusNotFound, response.CodeUploadNotFound, err.Error())
		case errors.Is(err, filecrypt.ErrDecrypt):
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "stored document could not be decrypted")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "generate questions failed")
		}
		return
	}

	response.OK(c, result)
}

// AnalyzeAnswer scores one interview answer and returns the written feedback.
func (h *InterviewHandler) AnalyzeAnswer(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in token")
		return
	}

	var req AnalyzeAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	feedback, err := h.interviewService.AnalyzeAnswer(c.Request.Context(), userID, req.Question, req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrUploadNotFound):
			response.Error(c, http.StatusNotFound, response.CodeUploadNotFound, err.Error())
		case errors.Is(err, filecrypt.ErrDecrypt):
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "stored document could not be decrypted")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "analyze answer failed")
		}
		return
	}

	response.OK(c, gin.H{"feedback": feedback})
}

// Transcribe accepts a multipart "audio" file and returns its transcript.
func (h *InterviewHandler) Transcribe(c *gin.Context) {
	if _, ok := middleware.UserID(c); !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in token")
		return
	}

	header, err := c.FormFile("audio")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing audio file")
		return
	}

	file, err := header.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "read audio file failed")
		return
	}
	defer file.Close()

	text, err := h.interviewService.Transcribe(c.Request.Context(), file)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "transcription failed")
		return
	}

	response.OK(c, gin.H{"transcript": text})
}
