package services

import (
	"errors"

	"unsan-academy/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DashboardService composes the profile, the card catalog with unlock
// status, the daily reward catalog with completion status and today's
// ledger rows into one payload.
type DashboardService struct {
	DB         *gorm.DB
	Unlock     *UnlockService
	Completion *CompletionService
}

func NewDashboardService(db *gorm.DB, unlock *UnlockService, completion *CompletionService) *DashboardService {
	return &DashboardService{DB: db, Unlock: unlock, Completion: completion}
}

// GetDashboard handles GET /dashboard/:profile_id.
func (s *DashboardService) GetDashboard(c *fiber.Ctx) error {
	profileID := c.Params("profile_id")

	var profile models.MechanicProfile
	if err := s.DB.First(&profile, "id = ?", profileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	held, err := s.Unlock.UnlockedCardIDs(profileID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	var cards []models.JobCard
	if err := s.DB.Where("is_active = ?", true).Order("\"order\", created_at").Find(&cards).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	cardViews := make([]fiber.Map, 0, len(cards))
	for _, card := range cards {
		cardViews = append(cardViews, fiber.Map{
			"id":       card.ID,
			"title":    card.Title,
			"subtitle": card.Subtitle,
			"rarity":   card.Rarity,
			"unlocked": held[card.ID],
		})
	}

	doneTasks, err := s.Completion.CompletedTodayTaskIDs(profileID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	var tasks []models.Task
	if err := s.DB.Where("is_active = ? AND is_daily = ?", true, true).
		Order("\"order\", title").Find(&tasks).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	taskViews := make([]fiber.Map, 0, len(tasks))
	for _, t := range tasks {
		taskViews = append(taskViews, fiber.Map{
			"id":                 t.ID,
			"title":              t.Title,
			"stat_type":          t.StatType,
			"stat_reward":        t.StatReward,
			"xp_reward":          t.XPReward,
			"icon":               t.Icon,
			"requires_photo":     t.RequiresPhoto,
			"is_completed_today": doneTasks[t.ID],
		})
	}

	questCounts, err := s.Completion.CompletedTodayQuestCounts(profileID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	var quests []models.Quest
	if err := s.DB.Where("is_active = ? AND category = ?", true, models.QuestCategoryDaily).
		Order("\"order\", title").Find(&quests).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	questViews := make([]fiber.Map, 0, len(quests))
	for _, q := range quests {
		questViews = append(questViews, fiber.Map{
			"id":                    q.ID,
			"title":                 q.Title,
			"target_stat":           q.TargetStat,
			"stat_reward":           q.StatReward,
			"xp_reward":             q.XPReward,
			"icon":                  q.Icon,
			"max_daily_completions": q.MaxDailyCompletions,
			"completed_today":       questCounts[q.ID],
			"is_completed_today":    questCounts[q.ID] >= q.MaxDailyCompletions,
		})
	}

	taskCompletions, questCompletions, err := s.Completion.TodayCompletions(profileID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	return c.JSON(fiber.Map{
		"profile":      profileView(&profile),
		"job_cards":    cardViews,
		"daily_tasks":  taskViews,
		"daily_quests": questViews,
		"today_completions": fiber.Map{
			"tasks":  taskCompletions,
			"quests": questCompletions,
		},
	})
}
