package models

import (
	"time"
)

// CareerReview is a first-hand review from someone working in a job.
type CareerReview struct {
	ID       string           `json:"id" gorm:"primaryKey"`
	AuthorID string           `json:"author_id" gorm:"index;not null"`
	Author   *MechanicProfile `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	JobID    string           `json:"job_id" gorm:"index;not null"`
	Job      *Job             `json:"job,omitempty" gorm:"foreignKey:JobID"`

	Title        string `json:"title" gorm:"not null"`
	Content      string `json:"content"`
	Rating       int    `json:"rating" gorm:"default:4"` // 1-5
	YearsInRole  int    `json:"years_in_role" gorm:"default:1"`
	PreviousJob  string `json:"previous_job,omitempty"`
	SalaryGrowth string `json:"salary_growth,omitempty"` // e.g., "+50%", "2배"

	Pros   []string `json:"pros" gorm:"serializer:json"`
	Cons   []string `json:"cons" gorm:"serializer:json"`
	Advice string   `json:"advice,omitempty"`

	HelpfulCount int        `json:"helpful_count" gorm:"default:0"`
	IsVerified   bool       `json:"is_verified" gorm:"default:false"`
	VerifiedAt   *time.Time `json:"verified_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReviewHelpful tracks helpful votes, unique per (review, profile).
type ReviewHelpful struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	ReviewID  string    `json:"review_id" gorm:"uniqueIndex:idx_review_helpful;not null"`
	ProfileID string    `json:"profile_id" gorm:"uniqueIndex:idx_review_helpful;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
