package services

import (
	"errors"
	"log"

	"unsan-academy/models"
	"unsan-academy/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StoryService struct {
	DB *gorm.DB
}

func NewStoryService(db *gorm.DB) *StoryService {
	return &StoryService{DB: db}
}

// GetStories lists success stories, newest first.
func (s *StoryService) GetStories(c *fiber.Ctx) error {
	q := s.DB.Model(&models.SuccessStory{}).
		Preload("Author").
		Preload("TargetJob").
		Preload("JourneySteps", func(db *gorm.DB) *gorm.DB {
			return db.Order("\"order\"").Preload("Job")
		})
	if jobID := c.Query("target_job_id"); jobID != "" {
		q = q.Where("target_job_id = ?", jobID)
	}

	var stories []models.SuccessStory
	if err := q.Order("created_at DESC").Find(&stories).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(stories)
}

func (s *StoryService) GetStoryByID(c *fiber.Ctx) error {
	var story models.SuccessStory
	err := s.DB.Preload("Author").Preload("TargetJob").
		Preload("JourneySteps", func(db *gorm.DB) *gorm.DB {
			return db.Order("\"order\"").Preload("Job")
		}).
		First(&story, "id = ?", c.Params("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Story not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(story)
}

// CreateStory records a career transition story together with its journey
// steps in a single transaction.
func (s *StoryService) CreateStory(c *fiber.Ctx) error {
	var req struct {
		ProfileID     string   `json:"profile_id" validate:"required"`
		TargetJobID   string   `json:"target_job_id" validate:"required"`
		Title         string   `json:"title" validate:"required,max=200"`
		Summary       string   `json:"summary"`
		TotalDuration string   `json:"total_duration"`
		SalaryChange  string   `json:"salary_change"`
		KeyLessons    []string `json:"key_lessons"`
		JourneySteps  []struct {
			JobID    string `json:"job_id" validate:"required"`
			Duration string `json:"duration"`
			Salary   string `json:"salary"`
		} `json:"journey_steps" validate:"dive"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var author models.MechanicProfile
	if err := s.DB.First(&author, "id = ?", req.ProfileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	var targetJob models.Job
	if err := s.DB.First(&targetJob, "id = ?", req.TargetJobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Job not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	story := models.SuccessStory{
		ID:            uuid.NewString(),
		AuthorID:      req.ProfileID,
		TargetJobID:   req.TargetJobID,
		Title:         req.Title,
		Summary:       req.Summary,
		TotalDuration: req.TotalDuration,
		SalaryChange:  req.SalaryChange,
		KeyLessons:    req.KeyLessons,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&story).Error; err != nil {
			return err
		}
		for i, step := range req.JourneySteps {
			js := models.StoryJourneyStep{
				ID:       uuid.NewString(),
				StoryID:  story.ID,
				JobID:    step.JobID,
				Order:    i,
				Duration: step.Duration,
				Salary:   step.Salary,
			}
			if err := tx.Create(&js).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("DB Error creating story: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create story"})
	}
	return c.Status(fiber.StatusCreated).JSON(story)
}
