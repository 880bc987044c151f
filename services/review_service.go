package services

import (
	"errors"
	"log"

	"unsan-academy/models"
	"unsan-academy/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrReviewNotFound = errors.New("Review not found")

type ReviewService struct {
	DB *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{DB: db}
}

// ToggleHelpful flips the helpful vote for (review, profile), mirroring the
// post like toggle: delete-first, insert through the unique index, counter
// advanced with a SQL expression.
func (s *ReviewService) ToggleHelpful(reviewID, profileID string) (bool, int, error) {
	var voted bool
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var review models.CareerReview
		if err := tx.First(&review, "id = ?", reviewID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReviewNotFound
			}
			return err
		}

		res := tx.Where("review_id = ? AND profile_id = ?", reviewID, profileID).
			Delete(&models.ReviewHelpful{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			voted = false
			return tx.Model(&models.CareerReview{}).Where("id = ?", reviewID).
				Update("helpful_count", gorm.Expr("helpful_count - ?", 1)).Error
		}

		vote := models.ReviewHelpful{
			ID:        uuid.NewString(),
			ReviewID:  reviewID,
			ProfileID: profileID,
		}
		ins := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "review_id"}, {Name: "profile_id"}},
			DoNothing: true,
		}).Create(&vote)
		if ins.Error != nil {
			return ins.Error
		}
		voted = true
		if ins.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&models.CareerReview{}).Where("id = ?", reviewID).
			Update("helpful_count", gorm.Expr("helpful_count + ?", 1)).Error
	})
	if err != nil {
		return false, 0, err
	}

	var review models.CareerReview
	if err := s.DB.Select("helpful_count").First(&review, "id = ?", reviewID).Error; err != nil {
		return voted, 0, err
	}
	return voted, review.HelpfulCount, nil
}

// GetReviews lists reviews, most-helpful first; ?job_id= filters.
func (s *ReviewService) GetReviews(c *fiber.Ctx) error {
	q := s.DB.Model(&models.CareerReview{}).Preload("Author").Preload("Job")
	if jobID := c.Query("job_id"); jobID != "" {
		q = q.Where("job_id = ?", jobID)
	}

	var reviews []models.CareerReview
	if err := q.Order("helpful_count DESC, created_at DESC").Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(reviews)
}

// CreateReview posts a first-hand career review.
func (s *ReviewService) CreateReview(c *fiber.Ctx) error {
	var req struct {
		ProfileID    string   `json:"profile_id" validate:"required"`
		JobID        string   `json:"job_id" validate:"required"`
		Title        string   `json:"title" validate:"required,max=200"`
		Content      string   `json:"content" validate:"required"`
		Rating       int      `json:"rating" validate:"omitempty,min=1,max=5"`
		YearsInRole  int      `json:"years_in_role"`
		PreviousJob  string   `json:"previous_job"`
		SalaryGrowth string   `json:"salary_growth"`
		Pros         []string `json:"pros"`
		Cons         []string `json:"cons"`
		Advice       string   `json:"advice"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var job models.Job
	if err := s.DB.First(&job, "id = ?", req.JobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Job not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	review := models.CareerReview{
		ID:           uuid.NewString(),
		AuthorID:     req.ProfileID,
		JobID:        req.JobID,
		Title:        req.Title,
		Content:      req.Content,
		Rating:       req.Rating,
		YearsInRole:  req.YearsInRole,
		PreviousJob:  req.PreviousJob,
		SalaryGrowth: req.SalaryGrowth,
		Pros:         req.Pros,
		Cons:         req.Cons,
		Advice:       req.Advice,
	}
	if review.Rating == 0 {
		review.Rating = 4
	}
	if review.YearsInRole == 0 {
		review.YearsInRole = 1
	}

	if err := s.DB.Create(&review).Error; err != nil {
		log.Printf("DB Error creating review: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create review"})
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// MarkHelpful handles the helpful-vote toggle endpoint.
func (s *ReviewService) MarkHelpful(c *fiber.Ctx) error {
	var req struct {
		ProfileID string `json:"profile_id" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	voted, count, err := s.ToggleHelpful(c.Params("id"), req.ProfileID)
	if err != nil {
		if errors.Is(err, ErrReviewNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Review not found"})
		}
		log.Printf("DB Error toggling helpful: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to toggle helpful"})
	}
	return c.JSON(fiber.Map{"helpful": voted, "helpful_count": count})
}
