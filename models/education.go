package models

import (
	"time"

	"gorm.io/gorm"
)

// Academy is a training institution.
type Academy struct {
	ID          string `json:"id" gorm:"primaryKey"`
	Code        string `json:"code" gorm:"uniqueIndex;not null"`
	Name        string `json:"name" gorm:"not null"`
	Logo        string `json:"logo"` // emoji
	Description string `json:"description"`
	Location    string `json:"location"`
	IsPartner   bool   `json:"is_partner" gorm:"default:false"`
	Website     string `json:"website,omitempty"`

	Order     int       `json:"order" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`

	Courses []Course `json:"courses,omitempty" gorm:"foreignKey:AcademyID"`
}

// Course is a training program offered by an academy.
type Course struct {
	ID          string   `json:"id" gorm:"primaryKey"`
	Code        string   `json:"code" gorm:"uniqueIndex;not null"`
	AcademyID   string   `json:"academy_id" gorm:"index;not null"`
	Academy     *Academy `json:"academy,omitempty" gorm:"foreignKey:AcademyID"`
	Title       string   `json:"title" gorm:"not null"`
	Description string   `json:"description"`

	Category   string `json:"category"`    // Maintenance | Body | Tuning | EV_Future | Management
	CourseType string `json:"course_type"` // Online | Offline | Hybrid
	Duration   string `json:"duration"`    // e.g., "4주", "2일 (16시간)"
	Price      int    `json:"price" gorm:"default:0"` // 0 = free
	PriceNote  string `json:"price_note,omitempty"`   // e.g., "국비지원 100%"

	URL         string   `json:"url,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	EnrollCount int      `json:"enroll_count" gorm:"default:0"`

	Order     int            `json:"order" gorm:"default:0"`
	IsActive  bool           `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// CourseTargetJob links a course to the jobs it prepares for.
type CourseTargetJob struct {
	ID       string `json:"id" gorm:"primaryKey"`
	CourseID string `json:"course_id" gorm:"uniqueIndex:idx_course_job;not null"`
	JobID    string `json:"job_id" gorm:"uniqueIndex:idx_course_job;not null"`
}

type CourseTag struct {
	ID   string `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

type CourseTagRelation struct {
	ID       string `json:"id" gorm:"primaryKey"`
	CourseID string `json:"course_id" gorm:"uniqueIndex:idx_course_tag;not null"`
	TagID    string `json:"tag_id" gorm:"uniqueIndex:idx_course_tag;not null"`
}

// Certification obtainable from a course.
type Certification struct {
	ID          string `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"uniqueIndex;not null"`
	Description string `json:"description,omitempty"`
	IssuingOrg  string `json:"issuing_org,omitempty"`
}

type CourseCertification struct {
	ID              string `json:"id" gorm:"primaryKey"`
	CourseID        string `json:"course_id" gorm:"uniqueIndex:idx_course_cert;not null"`
	CertificationID string `json:"certification_id" gorm:"uniqueIndex:idx_course_cert;not null"`
}
