package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/ammarraza1199/Mock-interview-Backend/internal/model"
)

type AnalysisFeedbackRepository struct {
	db *gorm.DB
}

func NewAnalysisFeedbackRepository(db *gorm.DB) *AnalysisFeedbackRepository {
	return &AnalysisFeedbackRepository{db: db}
}

func (r *AnalysisFeedbackRepository) Create(feedback *model.AnalysisFeedback) error {
	if err := r.db.Create(feedback).Error; err != nil {
		return fmt.Errorf("create analysis feedback failed: %w", err)
	}
	return nil
}

// ListByUserID returns the user's feedback records in insertion order.
func (r *AnalysisFeedbackRepository) ListByUserID(userID uint) ([]model.AnalysisFeedback, error) {
	var records []model.AnalysisFeedback
	if err := r.db.Where("user_id = ?", userID).Order("id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("query analysis feedback failed: %w", err)
	}
	return records, nil
}
