package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ammarraza1199/Mock-interview-Backend/internal/app"
	"github.com/ammarraza1199/Mock-interview-Backend/internal/pkg/extract"
	"github.com/ammarraza1199/Mock-interview-Backend/internal/pkg/filecrypt"
	"github.com/ammarraza1199/Mock-interview-Backend/internal/transport/http/middleware"
	"github.com/ammarraza1199/Mock-interview-Backend/internal/transport/http/response"
)

// maxUploadBytes bounds a single document. Resumes and job descriptions are
// small; anything larger is almost certainly a mistake.
const maxUploadBytes = 10 << 20

type UploadHandler struct {
	uploadService *app.UploadService
}

func NewUploadHandler(uploadService *app.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// Ingest accepts a multipart form with two files, "resume" and
// "job_description", plus "name", "experience" and "years_of_experience"
// fields.
func (h *UploadHandler) Ingest(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in token")
		return
	}

	resume, err := readFormFile(c, "resume")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		return
	}
	jobDescription, err := readFormFile(c, "job_description")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		return
	}

	uploadID, err := h.uploadService.Ingest(app.IngestUploadInput{
		UserID:            userID,
		Name:              c.PostForm("name"),
		Experience:        c.PostForm("experience"),
		YearsOfExperience: c.PostForm("years_of_experience"),
		Resume:            resume,
		JobDescription:    jobDescription,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, extract.ErrExtraction):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "document could not be read")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "upload failed")
		}
		return
	}

	response.OK(c, gin.H{"upload_id": uploadID})
}

// JobDescription returns the active upload's job description as plain text.
func (h *UploadHandler) JobDescription(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "user not found in token")
		return
	}

	text, err := h.uploadService.JobDescriptionText(userID)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrUploadNotFound):
			response.Error(c, http.StatusNotFound, response.CodeUploadNotFound, err.Error())
		case errors.Is(err, filecrypt.ErrDecrypt):
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "stored document could not be decrypted")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "fetch job description failed")
		}
		return
	}

	response.OK(c, gin.H{"job_description": text})
}

func readFormFile(c *gin.Context, field string) (app.FilePayload, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return app.FilePayload{}, fmt.Errorf("missing %s file", field)
	}
	if header.Size > maxUploadBytes {
		return app.FilePayload{}, fmt.Errorf("%s file too large", field)
	}

	data, err := readAll(header)
	if err != nil {
		return app.FilePayload{}, fmt.Errorf("read %s file failed", field)
	}

	return app.FilePayload{
		Filename:  header.Filename,
		MediaType: header.Header.Get("Content-Type"),
		Data:      data,
	}, nil
}

func readAll(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
}
