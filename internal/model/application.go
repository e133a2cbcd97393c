package model

import "time"

// Application is one saved bundle: the job snapshot, the résumé snapshot and
// the letter written for them.
type Application struct {
	ID          string      `gorm:"primaryKey" json:"id"`
	UserID      string      `gorm:"index;not null" json:"user_id"`
	JobURL      string      `gorm:"not null" json:"job_url"`
	JobAnalysis JobAnalysis `gorm:"type:text" json:"job_analysis"`
	ResumeData  ResumeData  `gorm:"type:text" json:"resume_data"`
	CoverLetter string      `gorm:"not null" json:"cover_letter"`
	CompanyName *string     `json:"company_name"`
	JobTitle    *string     `json:"job_title"`
	CreatedAt   time.Time   `gorm:"index" json:"created_at"`
}

func (Application) TableName() string { return "applications" }
