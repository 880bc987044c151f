package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is a community board entry. Likes, views and comment_count are
// denormalized counters advanced with SQL expressions; the reconcile sweep
// in services corrects any drift from the underlying rows.
type Post struct {
	ID        string           `json:"id" gorm:"primaryKey"`
	AuthorID  string           `json:"author_id" gorm:"index;not null"`
	Author    *MechanicProfile `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Category  string           `json:"category" gorm:"default:'Free';index"` // Free | Tech | Salary | Career
	Title     string           `json:"title" gorm:"not null"`
	Slug      string           `json:"slug" gorm:"index"`
	Content   string           `json:"content"`

	RelatedJobID *string `json:"related_job,omitempty" gorm:"column:related_job_id"`

	Likes        int `json:"likes" gorm:"default:0"`
	Views        int `json:"views" gorm:"default:0"`
	CommentCount int `json:"comment_count" gorm:"default:0"`

	ShowVerifiedSalary bool `json:"show_verified_salary" gorm:"default:false"`
	IsPinned           bool `json:"is_pinned" gorm:"default:false"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:PostID"`
}

type Comment struct {
	ID        string           `json:"id" gorm:"primaryKey"`
	PostID    string           `json:"post_id" gorm:"index;not null"`
	AuthorID  string           `json:"author_id" gorm:"index;not null"`
	Author    *MechanicProfile `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Content   string           `json:"content" gorm:"not null"`
	Likes     int              `json:"likes" gorm:"default:0"`
	CreatedAt time.Time        `json:"created_at"`
}

// PostLike tracks who liked what; unique per (post, profile) so the like
// toggle is an insert-or-delete, never a duplicate row.
type PostLike struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"uniqueIndex:idx_post_like;not null"`
	ProfileID string    `json:"profile_id" gorm:"uniqueIndex:idx_post_like;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
