package services

import (
	"log"

	"unsan-academy/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UnlockService struct {
	DB *gorm.DB
}

func NewUnlockService(db *gorm.DB) *UnlockService {
	return &UnlockService{DB: db}
}

// CardEligible reports whether the profile's stats satisfy every threshold
// the card defines. A card with no thresholds is trivially eligible.
func CardEligible(card *models.JobCard, stats map[models.StatType]int) bool {
	for stat, required := range card.Requirements() {
		if stats[stat] < required {
			return false
		}
	}
	return true
}

// ScanAndUnlock walks the whole card catalog and grants every eligible card
// not yet held by the profile. The insert goes through the (profile, card)
// unique index with ON CONFLICT DO NOTHING, so a concurrent scan can never
// double-grant: only rows actually written are reported as newly unlocked,
// which also makes a back-to-back rescan a no-op.
//
// Linear scan over the catalog on every completion; fine while the catalog
// stays in the tens of cards.
func (s *UnlockService) ScanAndUnlock(tx *gorm.DB, profile *models.MechanicProfile) ([]models.JobCard, error) {
	var cards []models.JobCard
	if err := tx.Where("is_active = ?", true).Order("\"order\", created_at").Find(&cards).Error; err != nil {
		return nil, err
	}

	stats := profile.Stats()
	var unlocked []models.JobCard

	for i := range cards {
		card := &cards[i]
		if !CardEligible(card, stats) {
			continue
		}

		grant := models.UnlockedCard{
			ID:        uuid.NewString(),
			ProfileID: profile.ID,
			CardID:    card.ID,
		}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "profile_id"}, {Name: "card_id"}},
			DoNothing: true,
		}).Create(&grant)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected > 0 {
			unlocked = append(unlocked, *card)
			log.Printf("🃏 Card unlocked: %s → %s", card.Title, profile.ID)
		}
	}

	return unlocked, nil
}

// UnlockedCardIDs returns the set of card IDs the profile already holds.
func (s *UnlockService) UnlockedCardIDs(profileID string) (map[string]bool, error) {
	var rows []models.UnlockedCard
	if err := s.DB.Where("profile_id = ?", profileID).Find(&rows).Error; err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(rows))
	for _, r := range rows {
		ids[r.CardID] = true
	}
	return ids, nil
}
