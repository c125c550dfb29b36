package model

import "time"

// AnalysisFeedback records one scored interview answer. Append-only; rows are
// never updated or deleted.
type AnalysisFeedback struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Question  string    `gorm:"type:text;not null" json:"question"`
	Answer    string    `gorm:"type:text;not null" json:"answer"`
	Feedback  string    `gorm:"type:text;not null" json:"feedback"`
	CreatedAt time.Time `json:"created_at"`
}
