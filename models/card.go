package models

import (
	"time"
)

// JobCard is an unlockable collectible. Each stat threshold is optional; a
// nil requirement means the stat is not checked. A card with no thresholds at
// all is trivially eligible and unlocks on the first scan.
type JobCard struct {
	ID          string `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"not null"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	Rarity      string `json:"rarity" gorm:"type:varchar(16);default:'common'"` // common | rare | epic | legendary
	ImageURL    string `json:"image_url,omitempty"`

	ReqTech  *int `json:"req_tech,omitempty"`
	ReqHand  *int `json:"req_hand,omitempty"`
	ReqSpeed *int `json:"req_speed,omitempty"`
	ReqArt   *int `json:"req_art,omitempty"`
	ReqBiz   *int `json:"req_biz,omitempty"`

	IsActive  bool      `json:"is_active" gorm:"default:true"`
	Order     int       `json:"order" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at"`
}

// Requirements returns the card's present thresholds keyed by stat kind.
func (c *JobCard) Requirements() map[StatType]int {
	req := make(map[StatType]int)
	if c.ReqTech != nil {
		req[StatTech] = *c.ReqTech
	}
	if c.ReqHand != nil {
		req[StatHand] = *c.ReqHand
	}
	if c.ReqSpeed != nil {
		req[StatSpeed] = *c.ReqSpeed
	}
	if c.ReqArt != nil {
		req[StatArt] = *c.ReqArt
	}
	if c.ReqBiz != nil {
		req[StatBiz] = *c.ReqBiz
	}
	return req
}

// UnlockedCard is a permanent grant of a card to a profile. The composite
// unique index enforces at most one grant per (profile, card).
type UnlockedCard struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	ProfileID  string    `json:"profile_id" gorm:"uniqueIndex:idx_profile_card;not null"`
	CardID     string    `json:"card_id" gorm:"uniqueIndex:idx_profile_card;not null"`
	Card       *JobCard  `json:"card,omitempty" gorm:"foreignKey:CardID"`
	UnlockedAt time.Time `json:"unlocked_at" gorm:"autoCreateTime"`
}
