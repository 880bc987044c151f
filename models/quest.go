package models

import (
	"time"
)

// Task is a simple daily activity awarding stat points and XP.
type Task struct {
	ID          string   `json:"id" gorm:"primaryKey"`
	Title       string   `json:"title" gorm:"not null"`
	Description string   `json:"description"`
	StatType    StatType `json:"stat_type" gorm:"type:varchar(10);not null"`
	StatReward  int      `json:"stat_reward" gorm:"default:2"`
	XPReward    int      `json:"xp_reward" gorm:"default:20"`
	Icon        string   `json:"icon" gorm:"default:'Wrench'"`

	IsDaily       bool `json:"is_daily" gorm:"default:true"` // once per calendar day
	RequiresPhoto bool `json:"requires_photo" gorm:"default:true"`

	IsActive  bool      `json:"is_active" gorm:"default:true"`
	Order     int       `json:"order" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
}

// Quest is a mission with a cooldown-based repetition policy: at most
// MaxDailyCompletions completions per calendar day.
type Quest struct {
	ID          string   `json:"id" gorm:"primaryKey"`
	Title       string   `json:"title" gorm:"not null"`
	Description string   `json:"description"`
	TargetStat  StatType `json:"target_stat" gorm:"type:varchar(10);not null"`
	StatReward  int      `json:"stat_reward" gorm:"default:2"`
	XPReward    int      `json:"xp_reward" gorm:"default:20"`
	Icon        string   `json:"icon" gorm:"default:'Wrench'"`
	Category    string   `json:"category" gorm:"default:'Daily'"` // Daily | Weekly | Challenge | Special

	RequiresPhoto       bool `json:"requires_photo" gorm:"default:true"`
	CooldownHours       int  `json:"cooldown_hours" gorm:"default:24"`
	MaxDailyCompletions int  `json:"max_daily_completions" gorm:"default:1"`
	Difficulty          int  `json:"difficulty" gorm:"default:1"` // 1-5

	IsActive  bool      `json:"is_active" gorm:"default:true"`
	Order     int       `json:"order" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskCompletion is an append-only ledger row for a performed task.
//
// PeriodKey makes the once-per-day rule a storage-level guarantee: for daily
// tasks it is the server-local date, so the composite unique index turns a
// duplicate same-day submission into a conflict instead of a double grant.
// Non-daily tasks use the completion ID so the index never collides.
type TaskCompletion struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	ProfileID   string    `json:"profile_id" gorm:"uniqueIndex:idx_task_period;index;not null"`
	TaskID      string    `json:"task_id" gorm:"uniqueIndex:idx_task_period;not null"`
	Task        *Task     `json:"task,omitempty" gorm:"foreignKey:TaskID"`
	PeriodKey   string    `json:"-" gorm:"uniqueIndex:idx_task_period;not null"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	IsVerified  bool      `json:"is_verified" gorm:"default:true"`
	VerifiedAt  *time.Time `json:"verified_at,omitempty"`
	CompletedAt time.Time `json:"completed_at" gorm:"autoCreateTime;index"`
}

// QuestCompletion is the ledger row for quests. PeriodKey is the local date
// plus a slot index below the quest's daily cap, so the cap is enforced by
// the same conflict mechanism.
type QuestCompletion struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	ProfileID   string     `json:"profile_id" gorm:"uniqueIndex:idx_quest_period;index;not null"`
	QuestID     string     `json:"quest_id" gorm:"uniqueIndex:idx_quest_period;not null"`
	Quest       *Quest     `json:"quest,omitempty" gorm:"foreignKey:QuestID"`
	PeriodKey   string     `json:"-" gorm:"uniqueIndex:idx_quest_period;not null"`
	ProofURL    string     `json:"proof_url,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	IsVerified  bool       `json:"is_verified" gorm:"default:true"`
	VerifiedAt  *time.Time `json:"verified_at,omitempty"`
	CompletedAt time.Time  `json:"completed_at" gorm:"autoCreateTime;index"`
}
