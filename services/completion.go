package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"unsan-academy/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrProfileNotFound  = errors.New("Profile not found")
	ErrTaskNotFound     = errors.New("Task not found")
	ErrQuestNotFound    = errors.New("Quest not found")
	ErrAlreadyCompleted = errors.New("Task already completed today")
	ErrLimitReached     = errors.New("Quest completion limit reached")
)

// RewardResult is the payload returned after a successful completion.
type RewardResult struct {
	Success            bool            `json:"success"`
	StatUpdated        models.StatType `json:"stat_updated"`
	StatChange         int             `json:"stat_change"`
	NewValue           int             `json:"new_value"`
	XPGained           int             `json:"xp_gained"`
	TotalXP            int             `json:"total_xp"`
	Tier               string          `json:"tier"`
	NewlyUnlockedCards []string        `json:"newly_unlocked_cards"`
}

type CompletionService struct {
	DB     *gorm.DB
	Unlock *UnlockService
}

func NewCompletionService(db *gorm.DB, unlock *UnlockService) *CompletionService {
	return &CompletionService{DB: db, Unlock: unlock}
}

// localDate is the server-local calendar day used for all "today" checks.
func localDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// CompleteTask records a task completion for the profile and applies its
// rewards. The ledger insert, stat/XP update, tier recompute and card scan
// run in one transaction, and the ledger insert is a conditional write
// against the period-key unique index, so two racing submissions cannot
// both be granted.
func (s *CompletionService) CompleteTask(profileID, taskID, photoURL string) (*RewardResult, error) {
	var task models.Task
	if err := s.DB.Where("id = ? AND is_active = ?", taskID, true).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	var result *RewardResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var profile models.MechanicProfile
		if err := tx.First(&profile, "id = ?", profileID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProfileNotFound
			}
			return err
		}

		completion := models.TaskCompletion{
			ID:        uuid.NewString(),
			ProfileID: profile.ID,
			TaskID:    task.ID,
			PhotoURL:  photoURL,
		}
		if task.IsDaily {
			completion.PeriodKey = localDate(time.Now())
		} else {
			// non-daily tasks repeat freely; key by the completion itself
			completion.PeriodKey = completion.ID
		}

		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "profile_id"}, {Name: "task_id"}, {Name: "period_key"}},
			DoNothing: true,
		}).Create(&completion)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyCompleted
		}

		r, err := s.applyReward(tx, &profile, task.StatType, task.StatReward, task.XPReward)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Task completed: %s by %s (+%d %s, +%d XP)",
		task.Title, profileID, task.StatReward, task.StatType, task.XPReward)
	return result, nil
}

// CompleteQuest is the quest counterpart: quests allow up to
// MaxDailyCompletions per calendar day. The period key encodes the slot
// index below the cap, so a racer that grabs the last slot surfaces as
// ErrLimitReached to the loser instead of a double grant.
func (s *CompletionService) CompleteQuest(profileID, questID, notes, proofURL string) (*RewardResult, error) {
	var quest models.Quest
	if err := s.DB.Where("id = ? AND is_active = ?", questID, true).First(&quest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestNotFound
		}
		return nil, err
	}

	var result *RewardResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var profile models.MechanicProfile
		if err := tx.First(&profile, "id = ?", profileID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProfileNotFound
			}
			return err
		}

		today := localDate(time.Now())
		limit := quest.MaxDailyCompletions
		if limit < 1 {
			limit = 1
		}

		// Slot keys are assigned from the current count upward. Losing a slot
		// to a concurrent submission is not a failure while capacity remains:
		// recount and take the next one. The recount sees the winner's row, so
		// each retry advances and the loop ends at the cap.
		for attempt := 0; ; attempt++ {
			var doneToday int64
			if err := tx.Model(&models.QuestCompletion{}).
				Where("profile_id = ? AND quest_id = ? AND period_key LIKE ?", profile.ID, quest.ID, today+"%").
				Count(&doneToday).Error; err != nil {
				return err
			}
			if doneToday >= int64(limit) || attempt > limit {
				return ErrLimitReached
			}

			completion := models.QuestCompletion{
				ID:        uuid.NewString(),
				ProfileID: profile.ID,
				QuestID:   quest.ID,
				PeriodKey: fmt.Sprintf("%s#%02d", today, doneToday),
				Notes:     notes,
				ProofURL:  proofURL,
			}
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "profile_id"}, {Name: "quest_id"}, {Name: "period_key"}},
				DoNothing: true,
			}).Create(&completion)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				break
			}
		}

		r, err := s.applyReward(tx, &profile, quest.TargetStat, quest.StatReward, quest.XPReward)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Quest completed: %s by %s (+%d %s, +%d XP)",
		quest.Title, profileID, quest.StatReward, quest.TargetStat, quest.XPReward)
	return result, nil
}

// applyReward bumps the target stat (clamped to 100), accumulates XP,
// recomputes the tier and runs the unlock scan, all on the caller's tx.
func (s *CompletionService) applyReward(tx *gorm.DB, profile *models.MechanicProfile, stat models.StatType, statReward, xpReward int) (*RewardResult, error) {
	newValue, err := profile.AddStat(stat, statReward)
	if err != nil {
		return nil, err
	}
	profile.XP += xpReward
	profile.Tier = TierForXP(profile.XP)

	if err := tx.Save(profile).Error; err != nil {
		return nil, err
	}

	unlocked, err := s.Unlock.ScanAndUnlock(tx, profile)
	if err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(unlocked))
	for _, c := range unlocked {
		titles = append(titles, c.Title)
	}

	return &RewardResult{
		Success:            true,
		StatUpdated:        stat,
		StatChange:         statReward,
		NewValue:           newValue,
		XPGained:           xpReward,
		TotalXP:            profile.XP,
		Tier:               profile.Tier,
		NewlyUnlockedCards: titles,
	}, nil
}

// TodayCompletions returns the profile's task and quest completions for the
// current local day, newest first.
func (s *CompletionService) TodayCompletions(profileID string) ([]models.TaskCompletion, []models.QuestCompletion, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var tasks []models.TaskCompletion
	if err := s.DB.Where("profile_id = ? AND completed_at >= ?", profileID, start).
		Preload("Task").
		Order("completed_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, nil, err
	}

	var quests []models.QuestCompletion
	if err := s.DB.Where("profile_id = ? AND completed_at >= ?", profileID, start).
		Preload("Quest").
		Order("completed_at DESC").
		Find(&quests).Error; err != nil {
		return nil, nil, err
	}
	return tasks, quests, nil
}

// CompletedTodayTaskIDs returns the IDs of daily tasks the profile already
// completed today (dashboard and task-list annotations).
func (s *CompletionService) CompletedTodayTaskIDs(profileID string) (map[string]bool, error) {
	var rows []models.TaskCompletion
	if err := s.DB.Where("profile_id = ? AND period_key = ?", profileID, localDate(time.Now())).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(rows))
	for _, r := range rows {
		ids[r.TaskID] = true
	}
	return ids, nil
}

// CompletedTodayQuestCounts returns per-quest completion counts for today.
func (s *CompletionService) CompletedTodayQuestCounts(profileID string) (map[string]int, error) {
	var rows []models.QuestCompletion
	if err := s.DB.Where("profile_id = ? AND period_key LIKE ?", profileID, localDate(time.Now())+"%").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, r := range rows {
		counts[r.QuestID]++
	}
	return counts, nil
}
