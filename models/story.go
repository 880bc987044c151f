package models

import (
	"time"
)

// SuccessStory documents a career transition, step by step.
type SuccessStory struct {
	ID          string           `json:"id" gorm:"primaryKey"`
	AuthorID    string           `json:"author_id" gorm:"index;not null"`
	Author      *MechanicProfile `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	TargetJobID string           `json:"target_job_id" gorm:"index;not null"`
	TargetJob   *Job             `json:"target_job,omitempty" gorm:"foreignKey:TargetJobID"`

	Title         string   `json:"title" gorm:"not null"`
	Summary       string   `json:"summary"`
	TotalDuration string   `json:"total_duration"` // e.g., "5년"
	SalaryChange  string   `json:"salary_change"`  // e.g., "2,800 → 6,500만원 (+132%)"
	KeyLessons    []string `json:"key_lessons" gorm:"serializer:json"`

	IsVerified bool      `json:"is_verified" gorm:"default:false"`
	CreatedAt  time.Time `json:"created_at"`

	JourneySteps []StoryJourneyStep `json:"journey_steps,omitempty" gorm:"foreignKey:StoryID"`
}

// StoryJourneyStep is one stop on a success story's path.
type StoryJourneyStep struct {
	ID       string `json:"id" gorm:"primaryKey"`
	StoryID  string `json:"story_id" gorm:"index;not null"`
	JobID    string `json:"job_id" gorm:"not null"`
	Job      *Job   `json:"job,omitempty" gorm:"foreignKey:JobID"`
	Order    int    `json:"order" gorm:"default:0"`
	Duration string `json:"duration"` // e.g., "2년", "현재"
	Salary   string `json:"salary,omitempty"`
}
