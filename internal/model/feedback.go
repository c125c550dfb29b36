package model

import "time"

// Feedback is free-form product feedback left by a user. Append-only.
type Feedback struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Feedback  string    `gorm:"type:text;not null" json:"feedback"`
	CreatedAt time.Time `json:"created_at"`
}
