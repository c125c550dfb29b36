package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ammarraza1199/Mock-interview-Backend/internal/model"
)

type UploadRepository struct {
	db *gorm.DB
}

func NewUploadRepository(db *gorm.DB) *UploadRepository {
	return &UploadRepository{db: db}
}

// Create always appends a new row: uploads are versioned by recency, an
// existing upload is never overwritten.
func (r *UploadRepository) Create(upload *model.Upload) error {
	if err := r.db.Create(upload).Error; err != nil {
		return fmt.Errorf("create upload failed: %w", err)
	}
	return nil
}

// LatestByUserID returns the most recently created upload for the user, or
// nil when the user has never uploaded.
func (r *UploadRepository) LatestByUserID(userID uint) (*model.Upload, error) {
	var upload model.Upload
	err := r.db.Where("user_id = ?", userID).Order("id DESC").First(&upload).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query latest upload failed: %w", err)
	}
	return &upload, nil
}

// UpdateGeneratedQuestions overwrites the cached question list
// unconditionally. Last writer wins; concurrent regenerations for the same
// upload are an accepted race.
func (r *UploadRepository) UpdateGeneratedQuestions(uploadID uint, questions []string) error {
	err := r.db.Model(&model.Upload{}).
		Where("id = ?", uploadID).
		Update("generated_questions", questions).Error
	if err != nil {
		return fmt.Errorf("update generated questions failed: %w", err)
	}
	return nil
}
