package models

import (
	"time"
)

// SalaryReport is a self-reported salary data point with an admin
// verification workflow.
type SalaryReport struct {
	ID          string           `json:"id" gorm:"primaryKey"`
	ProfileID   string           `json:"profile_id" gorm:"index;not null"`
	Profile     *MechanicProfile `json:"profile,omitempty" gorm:"foreignKey:ProfileID"`
	TargetJobID string           `json:"target_job_id" gorm:"index;not null"`
	TargetJob   *Job             `json:"target_job,omitempty" gorm:"foreignKey:TargetJobID"`

	CurrentSalary   int `json:"current_salary" gorm:"not null"`   // actual, 10k KRW
	EstimatedSalary int `json:"estimated_salary" gorm:"not null"` // market value
	YearsExperience int `json:"years_experience"`
	Percentile      int `json:"percentile" gorm:"default:50"` // 0-100

	UserStats map[string]int `json:"user_stats" gorm:"serializer:json"` // stats snapshot at report time

	ProofURL        string             `json:"proof_url,omitempty"`
	Status          VerificationStatus `json:"status" gorm:"default:'None';index"`
	VerifiedAt      *time.Time         `json:"verified_at,omitempty"`
	RejectionReason string             `json:"rejection_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SalaryGap is the difference between market value and actual salary.
func (r *SalaryReport) SalaryGap() int {
	return r.EstimatedSalary - r.CurrentSalary
}
