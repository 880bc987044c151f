package models

import (
	"time"

	"gorm.io/gorm"
)

// JobGroup is one of the major job categories.
type JobGroup struct {
	ID          string `json:"id" gorm:"primaryKey"`
	Code        string `json:"code" gorm:"uniqueIndex;not null"` // e.g., "Maintenance", "EV_Future"
	Name        string `json:"name" gorm:"not null"`
	Color       string `json:"color" gorm:"default:'#3b82f6'"`
	Icon        string `json:"icon"` // emoji
	Description string `json:"description"`
	Order       int    `json:"order" gorm:"default:0"`

	Jobs []Job `json:"jobs,omitempty" gorm:"foreignKey:GroupID"`
}

// Job is an entry in the career knowledge base.
type Job struct {
	ID          string `json:"id" gorm:"primaryKey"`
	Code        string `json:"code" gorm:"uniqueIndex;not null"` // e.g., "maint_01", "ev_03"
	Title       string `json:"title" gorm:"not null"`
	GroupID     string `json:"group_id" gorm:"index;not null"`
	Group       *JobGroup `json:"group,omitempty" gorm:"foreignKey:GroupID"`
	Description string `json:"description"`

	// Salary range in units of 10k KRW
	SalaryMin    int    `json:"salary_min"`
	SalaryMax    int    `json:"salary_max"`
	MarketDemand string `json:"market_demand" gorm:"default:'Stable'"`

	// Required stats (0-100)
	ReqTech  int `json:"req_tech" gorm:"default:30"`
	ReqHand  int `json:"req_hand" gorm:"default:30"`
	ReqSpeed int `json:"req_speed" gorm:"default:30"`
	ReqArt   int `json:"req_art" gorm:"default:30"`
	ReqBiz   int `json:"req_biz" gorm:"default:30"`

	HiringCompanies string `json:"hiring_companies,omitempty"` // comma-separated
	Source          string `json:"source,omitempty"`

	IsStarter      bool `json:"is_starter" gorm:"default:false"`
	IsBlueOcean    bool `json:"is_blue_ocean" gorm:"default:false"`
	IsEVTransition bool `json:"is_ev_transition" gorm:"default:false"`

	Order     int            `json:"order" gorm:"default:0"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// JobPrerequisite links a job to a job that must come before it on the
// career path (self-referencing many-to-many).
type JobPrerequisite struct {
	ID             string `json:"id" gorm:"primaryKey"`
	JobID          string `json:"job_id" gorm:"uniqueIndex:idx_job_prereq;not null"`
	PrerequisiteID string `json:"prerequisite_id" gorm:"uniqueIndex:idx_job_prereq;not null"`
}

// JobTag is a label like 입문추천 or 블루오션.
type JobTag struct {
	ID    string `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"uniqueIndex;not null"`
	Color string `json:"color" gorm:"default:'#6b7280'"`
}

type JobTagRelation struct {
	ID    string `json:"id" gorm:"primaryKey"`
	JobID string `json:"job_id" gorm:"uniqueIndex:idx_job_tag;not null"`
	TagID string `json:"tag_id" gorm:"uniqueIndex:idx_job_tag;not null"`
}
