package services

import (
	"errors"
	"log"
	"strings"

	"unsan-academy/models"
	"unsan-academy/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogService serves the read-mostly knowledge base (jobs, education)
// and the admin-curated reward catalog (tasks, quests, cards).
type CatalogService struct {
	DB         *gorm.DB
	Unlock     *UnlockService
	Completion *CompletionService
}

func NewCatalogService(db *gorm.DB, unlock *UnlockService, completion *CompletionService) *CatalogService {
	return &CatalogService{DB: db, Unlock: unlock, Completion: completion}
}

// --- Job database ---

func (s *CatalogService) GetJobGroups(c *fiber.Ctx) error {
	var groups []models.JobGroup
	if err := s.DB.Order("\"order\", name").Find(&groups).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	out := make([]fiber.Map, 0, len(groups))
	for _, g := range groups {
		var jobCount int64
		s.DB.Model(&models.Job{}).Where("group_id = ?", g.ID).Count(&jobCount)
		out = append(out, fiber.Map{
			"id":          g.ID,
			"code":        g.Code,
			"name":        g.Name,
			"color":       g.Color,
			"icon":        g.Icon,
			"description": g.Description,
			"order":       g.Order,
			"job_count":   jobCount,
		})
	}
	return c.JSON(out)
}

// GetJobs lists jobs with query-parameter filters.
func (s *CatalogService) GetJobs(c *fiber.Ctx) error {
	q := s.DB.Model(&models.Job{}).Preload("Group")

	if group := c.Query("group"); group != "" {
		q = q.Joins("JOIN job_groups ON job_groups.id = jobs.group_id").
			Where("job_groups.code = ?", group)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(jobs.title) LIKE ? OR LOWER(jobs.description) LIKE ?", like, like)
	}
	if c.Query("starter") == "true" {
		q = q.Where("jobs.is_starter = ?", true)
	}
	if c.Query("blue_ocean") == "true" {
		q = q.Where("jobs.is_blue_ocean = ?", true)
	}

	var jobs []models.Job
	if err := q.Order("jobs.\"order\", jobs.title").Find(&jobs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(jobs)
}

// GetJobByID returns a job with its prerequisite and unlocked-by neighbours.
func (s *CatalogService) GetJobByID(c *fiber.Ctx) error {
	var job models.Job
	if err := s.DB.Preload("Group").First(&job, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Job not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	var prereqs []models.Job
	s.DB.Joins("JOIN job_prerequisites ON job_prerequisites.prerequisite_id = jobs.id").
		Where("job_prerequisites.job_id = ?", job.ID).
		Find(&prereqs)

	var unlocks []models.Job
	s.DB.Joins("JOIN job_prerequisites ON job_prerequisites.job_id = jobs.id").
		Where("job_prerequisites.prerequisite_id = ?", job.ID).
		Find(&unlocks)

	return c.JSON(fiber.Map{
		"job":           job,
		"prerequisites": prereqs,
		"unlocks":       unlocks,
	})
}

// --- Education catalog ---

func (s *CatalogService) GetAcademies(c *fiber.Ctx) error {
	var academies []models.Academy
	if err := s.DB.Order("is_partner DESC, \"order\", name").Find(&academies).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(academies)
}

func (s *CatalogService) GetAcademyByID(c *fiber.Ctx) error {
	var academy models.Academy
	if err := s.DB.Preload("Courses", "is_active = ?", true).
		First(&academy, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Academy not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(academy)
}

func (s *CatalogService) GetCourses(c *fiber.Ctx) error {
	q := s.DB.Model(&models.Course{}).Preload("Academy")

	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}
	if academyID := c.Query("academy_id"); academyID != "" {
		q = q.Where("academy_id = ?", academyID)
	}
	if c.Query("active", "true") == "true" {
		q = q.Where("is_active = ?", true)
	}

	var courses []models.Course
	if err := q.Order("\"order\", title").Find(&courses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(courses)
}

func (s *CatalogService) GetCourseByID(c *fiber.Ctx) error {
	var course models.Course
	if err := s.DB.Preload("Academy").First(&course, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(course)
}

// --- Reward catalog ---

// GetCards lists the card catalog; with ?profile_id= each card carries its
// unlock status for that profile.
func (s *CatalogService) GetCards(c *fiber.Ctx) error {
	var cards []models.JobCard
	if err := s.DB.Where("is_active = ?", true).Order("\"order\", created_at").Find(&cards).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	profileID := c.Query("profile_id")
	var held map[string]bool
	if profileID != "" {
		var err error
		held, err = s.Unlock.UnlockedCardIDs(profileID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
		}
	}

	out := make([]fiber.Map, 0, len(cards))
	for _, card := range cards {
		m := fiber.Map{
			"id":          card.ID,
			"title":       card.Title,
			"subtitle":    card.Subtitle,
			"description": card.Description,
			"rarity":      card.Rarity,
			"image_url":   card.ImageURL,
			"req_tech":    card.ReqTech,
			"req_hand":    card.ReqHand,
			"req_speed":   card.ReqSpeed,
			"req_art":     card.ReqArt,
			"req_biz":     card.ReqBiz,
			"order":       card.Order,
		}
		if profileID != "" {
			m["unlocked"] = held[card.ID]
		}
		out = append(out, m)
	}
	return c.JSON(out)
}

// GetTasks lists active tasks; with ?profile_id= each daily task carries
// whether it was already completed today.
func (s *CatalogService) GetTasks(c *fiber.Ctx) error {
	var tasks []models.Task
	if err := s.DB.Where("is_active = ?", true).Order("\"order\", title").Find(&tasks).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	profileID := c.Query("profile_id")
	var done map[string]bool
	if profileID != "" {
		var err error
		done, err = s.Completion.CompletedTodayTaskIDs(profileID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
		}
	}

	out := make([]fiber.Map, 0, len(tasks))
	for _, t := range tasks {
		m := fiber.Map{
			"id":             t.ID,
			"title":          t.Title,
			"description":    t.Description,
			"stat_type":      t.StatType,
			"stat_reward":    t.StatReward,
			"xp_reward":      t.XPReward,
			"icon":           t.Icon,
			"is_daily":       t.IsDaily,
			"requires_photo": t.RequiresPhoto,
		}
		if profileID != "" {
			m["is_completed_today"] = done[t.ID]
		}
		out = append(out, m)
	}
	return c.JSON(out)
}

// GetQuests lists active quests; with ?profile_id= each quest carries its
// completed-today count against the daily cap.
func (s *CatalogService) GetQuests(c *fiber.Ctx) error {
	q := s.DB.Where("is_active = ?", true)
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}

	var quests []models.Quest
	if err := q.Order("\"order\", category").Find(&quests).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	profileID := c.Query("profile_id")
	var counts map[string]int
	if profileID != "" {
		var err error
		counts, err = s.Completion.CompletedTodayQuestCounts(profileID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
		}
	}

	out := make([]fiber.Map, 0, len(quests))
	for _, quest := range quests {
		m := fiber.Map{
			"id":                    quest.ID,
			"title":                 quest.Title,
			"description":           quest.Description,
			"target_stat":           quest.TargetStat,
			"stat_reward":           quest.StatReward,
			"xp_reward":             quest.XPReward,
			"icon":                  quest.Icon,
			"category":              quest.Category,
			"requires_photo":        quest.RequiresPhoto,
			"cooldown_hours":        quest.CooldownHours,
			"max_daily_completions": quest.MaxDailyCompletions,
			"difficulty":            quest.Difficulty,
		}
		if profileID != "" {
			m["completed_today"] = counts[quest.ID]
			m["is_completed_today"] = counts[quest.ID] >= quest.MaxDailyCompletions
		}
		out = append(out, m)
	}
	return c.JSON(out)
}

// --- Admin catalog management ---

// CreateTask creates a task definition (admin only).
func (s *CatalogService) CreateTask(c *fiber.Ctx) error {
	var req struct {
		Title         string          `json:"title" validate:"required"`
		Description   string          `json:"description"`
		StatType      models.StatType `json:"stat_type" validate:"required,oneof=Tech Hand Speed Art Biz"`
		StatReward    int             `json:"stat_reward" validate:"min=1"`
		XPReward      int             `json:"xp_reward" validate:"min=0"`
		Icon          string          `json:"icon"`
		IsDaily       *bool           `json:"is_daily"`
		RequiresPhoto *bool           `json:"requires_photo"`
		Order         int             `json:"order"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	task := models.Task{
		ID:            uuid.NewString(),
		Title:         req.Title,
		Description:   req.Description,
		StatType:      req.StatType,
		StatReward:    req.StatReward,
		XPReward:      req.XPReward,
		Icon:          req.Icon,
		IsDaily:       true,
		RequiresPhoto: true,
		IsActive:      true,
		Order:         req.Order,
	}
	if req.IsDaily != nil {
		task.IsDaily = *req.IsDaily
	}
	if req.RequiresPhoto != nil {
		task.RequiresPhoto = *req.RequiresPhoto
	}
	if task.Icon == "" {
		task.Icon = "Wrench"
	}

	if err := s.DB.Create(&task).Error; err != nil {
		log.Printf("DB Error creating task: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create task"})
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

// CreateQuest creates a quest definition (admin only).
func (s *CatalogService) CreateQuest(c *fiber.Ctx) error {
	var req struct {
		Title               string          `json:"title" validate:"required"`
		Description         string          `json:"description"`
		TargetStat          models.StatType `json:"target_stat" validate:"required,oneof=Tech Hand Speed Art Biz"`
		StatReward          int             `json:"stat_reward" validate:"min=1"`
		XPReward            int             `json:"xp_reward" validate:"min=0"`
		Icon                string          `json:"icon"`
		Category            string          `json:"category" validate:"omitempty,oneof=Daily Weekly Challenge Special"`
		RequiresPhoto       *bool           `json:"requires_photo"`
		CooldownHours       int             `json:"cooldown_hours"`
		MaxDailyCompletions int             `json:"max_daily_completions" validate:"min=0"`
		Difficulty          int             `json:"difficulty" validate:"omitempty,min=1,max=5"`
		Order               int             `json:"order"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	quest := models.Quest{
		ID:                  uuid.NewString(),
		Title:               req.Title,
		Description:         req.Description,
		TargetStat:          req.TargetStat,
		StatReward:          req.StatReward,
		XPReward:            req.XPReward,
		Icon:                req.Icon,
		Category:            req.Category,
		RequiresPhoto:       true,
		CooldownHours:       req.CooldownHours,
		MaxDailyCompletions: req.MaxDailyCompletions,
		Difficulty:          req.Difficulty,
		IsActive:            true,
		Order:               req.Order,
	}
	if req.RequiresPhoto != nil {
		quest.RequiresPhoto = *req.RequiresPhoto
	}
	if quest.Category == "" {
		quest.Category = models.QuestCategoryDaily
	}
	if quest.MaxDailyCompletions == 0 {
		quest.MaxDailyCompletions = 1
	}
	if quest.CooldownHours == 0 {
		quest.CooldownHours = 24
	}
	if quest.Difficulty == 0 {
		quest.Difficulty = 1
	}
	if quest.Icon == "" {
		quest.Icon = "Wrench"
	}

	if err := s.DB.Create(&quest).Error; err != nil {
		log.Printf("DB Error creating quest: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create quest"})
	}
	return c.Status(fiber.StatusCreated).JSON(quest)
}

// CreateCard creates a card definition (admin only). Omitted thresholds mean
// "no requirement" for that stat.
func (s *CatalogService) CreateCard(c *fiber.Ctx) error {
	var req struct {
		Title       string `json:"title" validate:"required"`
		Subtitle    string `json:"subtitle"`
		Description string `json:"description"`
		Rarity      string `json:"rarity" validate:"omitempty,oneof=common rare epic legendary"`
		ImageURL    string `json:"image_url"`
		ReqTech     *int   `json:"req_tech" validate:"omitempty,min=0,max=100"`
		ReqHand     *int   `json:"req_hand" validate:"omitempty,min=0,max=100"`
		ReqSpeed    *int   `json:"req_speed" validate:"omitempty,min=0,max=100"`
		ReqArt      *int   `json:"req_art" validate:"omitempty,min=0,max=100"`
		ReqBiz      *int   `json:"req_biz" validate:"omitempty,min=0,max=100"`
		Order       int    `json:"order"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	card := models.JobCard{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Description: req.Description,
		Rarity:      req.Rarity,
		ImageURL:    req.ImageURL,
		ReqTech:     req.ReqTech,
		ReqHand:     req.ReqHand,
		ReqSpeed:    req.ReqSpeed,
		ReqArt:      req.ReqArt,
		ReqBiz:      req.ReqBiz,
		IsActive:    true,
		Order:       req.Order,
	}
	if card.Rarity == "" {
		card.Rarity = "common"
	}

	if err := s.DB.Create(&card).Error; err != nil {
		log.Printf("DB Error creating card: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create card"})
	}
	return c.Status(fiber.StatusCreated).JSON(card)
}

// UpdateTask applies partial edits to a task definition (admin only).
func (s *CatalogService) UpdateTask(c *fiber.Ctx) error {
	var task models.Task
	if err := s.DB.First(&task, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Task not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	var req struct {
		Title         *string          `json:"title"`
		Description   *string          `json:"description"`
		StatType      *models.StatType `json:"stat_type" validate:"omitempty,oneof=Tech Hand Speed Art Biz"`
		StatReward    *int             `json:"stat_reward" validate:"omitempty,min=1"`
		XPReward      *int             `json:"xp_reward" validate:"omitempty,min=0"`
		Icon          *string          `json:"icon"`
		IsDaily       *bool            `json:"is_daily"`
		RequiresPhoto *bool            `json:"requires_photo"`
		IsActive      *bool            `json:"is_active"`
		Order         *int             `json:"order"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.StatType != nil {
		task.StatType = *req.StatType
	}
	if req.StatReward != nil {
		task.StatReward = *req.StatReward
	}
	if req.XPReward != nil {
		task.XPReward = *req.XPReward
	}
	if req.Icon != nil {
		task.Icon = *req.Icon
	}
	if req.IsDaily != nil {
		task.IsDaily = *req.IsDaily
	}
	if req.RequiresPhoto != nil {
		task.RequiresPhoto = *req.RequiresPhoto
	}
	if req.IsActive != nil {
		task.IsActive = *req.IsActive
	}
	if req.Order != nil {
		task.Order = *req.Order
	}

	if err := s.DB.Save(&task).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update task"})
	}
	return c.JSON(task)
}

// UpdateQuest applies partial edits to a quest definition (admin only).
func (s *CatalogService) UpdateQuest(c *fiber.Ctx) error {
	var quest models.Quest
	if err := s.DB.First(&quest, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quest not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	var req struct {
		Title               *string          `json:"title"`
		Description         *string          `json:"description"`
		TargetStat          *models.StatType `json:"target_stat" validate:"omitempty,oneof=Tech Hand Speed Art Biz"`
		StatReward          *int             `json:"stat_reward" validate:"omitempty,min=1"`
		XPReward            *int             `json:"xp_reward" validate:"omitempty,min=0"`
		Icon                *string          `json:"icon"`
		Category            *string          `json:"category" validate:"omitempty,oneof=Daily Weekly Challenge Special"`
		RequiresPhoto       *bool            `json:"requires_photo"`
		CooldownHours       *int             `json:"cooldown_hours" validate:"omitempty,min=0"`
		MaxDailyCompletions *int             `json:"max_daily_completions" validate:"omitempty,min=1"`
		Difficulty          *int             `json:"difficulty" validate:"omitempty,min=1,max=5"`
		IsActive            *bool            `json:"is_active"`
		Order               *int             `json:"order"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Title != nil {
		quest.Title = *req.Title
	}
	if req.Description != nil {
		quest.Description = *req.Description
	}
	if req.TargetStat != nil {
		quest.TargetStat = *req.TargetStat
	}
	if req.StatReward != nil {
		quest.StatReward = *req.StatReward
	}
	if req.XPReward != nil {
		quest.XPReward = *req.XPReward
	}
	if req.Icon != nil {
		quest.Icon = *req.Icon
	}
	if req.Category != nil {
		quest.Category = *req.Category
	}
	if req.RequiresPhoto != nil {
		quest.RequiresPhoto = *req.RequiresPhoto
	}
	if req.CooldownHours != nil {
		quest.CooldownHours = *req.CooldownHours
	}
	if req.MaxDailyCompletions != nil {
		quest.MaxDailyCompletions = *req.MaxDailyCompletions
	}
	if req.Difficulty != nil {
		quest.Difficulty = *req.Difficulty
	}
	if req.IsActive != nil {
		quest.IsActive = *req.IsActive
	}
	if req.Order != nil {
		quest.Order = *req.Order
	}

	if err := s.DB.Save(&quest).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update quest"})
	}
	return c.JSON(quest)
}

// UpdateCard applies partial edits to a card definition (admin only).
// Thresholds can be tightened or loosened; omitted fields stay as they are.
func (s *CatalogService) UpdateCard(c *fiber.Ctx) error {
	var card models.JobCard
	if err := s.DB.First(&card, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Card not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	var req struct {
		Title       *string `json:"title"`
		Subtitle    *string `json:"subtitle"`
		Description *string `json:"description"`
		Rarity      *string `json:"rarity" validate:"omitempty,oneof=common rare epic legendary"`
		ImageURL    *string `json:"image_url"`
		ReqTech     *int    `json:"req_tech" validate:"omitempty,min=0,max=100"`
		ReqHand     *int    `json:"req_hand" validate:"omitempty,min=0,max=100"`
		ReqSpeed    *int    `json:"req_speed" validate:"omitempty,min=0,max=100"`
		ReqArt      *int    `json:"req_art" validate:"omitempty,min=0,max=100"`
		ReqBiz      *int    `json:"req_biz" validate:"omitempty,min=0,max=100"`
		IsActive    *bool   `json:"is_active"`
		Order       *int    `json:"order"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.Title != nil {
		card.Title = *req.Title
	}
	if req.Subtitle != nil {
		card.Subtitle = *req.Subtitle
	}
	if req.Description != nil {
		card.Description = *req.Description
	}
	if req.Rarity != nil {
		card.Rarity = *req.Rarity
	}
	if req.ImageURL != nil {
		card.ImageURL = *req.ImageURL
	}
	if req.ReqTech != nil {
		card.ReqTech = req.ReqTech
	}
	if req.ReqHand != nil {
		card.ReqHand = req.ReqHand
	}
	if req.ReqSpeed != nil {
		card.ReqSpeed = req.ReqSpeed
	}
	if req.ReqArt != nil {
		card.ReqArt = req.ReqArt
	}
	if req.ReqBiz != nil {
		card.ReqBiz = req.ReqBiz
	}
	if req.IsActive != nil {
		card.IsActive = *req.IsActive
	}
	if req.Order != nil {
		card.Order = *req.Order
	}

	if err := s.DB.Save(&card).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update card"})
	}
	return c.JSON(card)
}

// DeactivateTask / DeactivateQuest / DeactivateCard retire reward definitions
// without losing the ledger history or grants that reference them.
func (s *CatalogService) DeactivateTask(c *fiber.Ctx) error {
	return s.deactivate(c, &models.Task{}, "Task not found")
}

func (s *CatalogService) DeactivateQuest(c *fiber.Ctx) error {
	return s.deactivate(c, &models.Quest{}, "Quest not found")
}

func (s *CatalogService) DeactivateCard(c *fiber.Ctx) error {
	return s.deactivate(c, &models.JobCard{}, "Card not found")
}

func (s *CatalogService) deactivate(c *fiber.Ctx, model interface{}, notFoundMsg string) error {
	res := s.DB.Model(model).Where("id = ?", c.Params("id")).Update("is_active", false)
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": notFoundMsg})
	}
	return c.JSON(fiber.Map{"id": c.Params("id"), "is_active": false})
}
