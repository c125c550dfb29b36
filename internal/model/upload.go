package model

import "time"

// ExperienceLevelExperienced marks an upload whose candidate declared prior
// work experience; any other value is treated as a fresher.
const ExperienceLevelExperienced = "experienced"

// Upload is one ingestion session. Resume and JobDescription always hold
// ciphertext; plaintext never reaches the database. The most recently created
// row per user is the active one.
type Upload struct {
	ID                     uint      `gorm:"primaryKey" json:"id"`
	UserID                 uint      `gorm:"not null;index" json:"user_id"`
	Resume                 []byte    `gorm:"type:mediumblob;not null" json:"-"`
	JobDescription         []byte    `gorm:"type:mediumblob;not null" json:"-"`
	FilenameResume         string    `gorm:"size:256;not null" json:"filename_resume"`
	FilenameJobDescription string    `gorm:"size:256;not null" json:"filename_job_description"`
	Experience             string    `gorm:"size:32;not null" json:"experience"`
	YearsOfExperience      string    `gorm:"size:16" json:"years_of_experience"`
	GeneratedQuestions     []string  `gorm:"serializer:json;type:text" json:"generated_questions"`
	CreatedAt              time.Time `json:"created_at"`
}

func (u *Upload) IsExperienced() bool {
	return u.Experience == ExperienceLevelExperienced
}
