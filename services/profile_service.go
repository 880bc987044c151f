package services

import (
	"errors"
	"log"
	"path/filepath"
	"time"

	"unsan-academy/models"
	"unsan-academy/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileService struct {
	DB         *gorm.DB
	Completion *CompletionService
}

func NewProfileService(db *gorm.DB, completion *CompletionService) *ProfileService {
	return &ProfileService{DB: db, Completion: completion}
}

// profileView is the profile snapshot with the computed stats map attached.
func profileView(p *models.MechanicProfile) fiber.Map {
	return fiber.Map{
		"id":                         p.ID,
		"name":                       p.Name,
		"tier":                       p.Tier,
		"xp":                         p.XP,
		"avatar_url":                 p.AvatarURL,
		"current_job":                p.CurrentJobID,
		"target_job":                 p.TargetJobID,
		"years_experience":           p.YearsExperience,
		"stat_tech":                  p.StatTech,
		"stat_hand":                  p.StatHand,
		"stat_speed":                 p.StatSpeed,
		"stat_art":                   p.StatArt,
		"stat_biz":                   p.StatBiz,
		"stats":                      p.Stats(),
		"current_salary":             p.CurrentSalary,
		"salary_verification_status": p.SalaryVerificationStatus,
		"salary_verified_at":         p.SalaryVerifiedAt,
		"created_at":                 p.CreatedAt,
		"updated_at":                 p.UpdatedAt,
	}
}

// GetProfile returns a profile snapshot including the computed stats map.
func (s *ProfileService) GetProfile(c *fiber.Ctx) error {
	var profile models.MechanicProfile
	if err := s.DB.First(&profile, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(profileView(&profile))
}

// CreateProfile registers a new profile. Stats start at their defaults and
// the tier is derived, never supplied by the caller.
func (s *ProfileService) CreateProfile(c *fiber.Ctx) error {
	var req struct {
		Name            string `json:"name" validate:"required,max=100"`
		ExternalUserID  string `json:"external_user_id"`
		AvatarURL       string `json:"avatar_url"`
		CurrentJobID    *string `json:"current_job"`
		TargetJobID     *string `json:"target_job"`
		YearsExperience int    `json:"years_experience"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	profile := models.MechanicProfile{
		ID:              uuid.NewString(),
		ExternalUserID:  req.ExternalUserID,
		Name:            req.Name,
		Tier:            TierForXP(0),
		AvatarURL:       req.AvatarURL,
		CurrentJobID:    req.CurrentJobID,
		TargetJobID:     req.TargetJobID,
		YearsExperience: req.YearsExperience,
		StatTech:        10,
		StatHand:        10,
		StatSpeed:       10,
		StatArt:         10,
		StatBiz:         10,
		SalaryVerificationStatus: models.VerificationNone,
	}
	if err := s.DB.Create(&profile).Error; err != nil {
		log.Printf("DB Error creating profile: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create profile"})
	}
	return c.Status(fiber.StatusCreated).JSON(profileView(&profile))
}

// UpdateProfile applies partial edits to the identity fields. Stats, XP and
// tier are only ever mutated by completion events.
func (s *ProfileService) UpdateProfile(c *fiber.Ctx) error {
	var profile models.MechanicProfile
	if err := s.DB.First(&profile, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	var req struct {
		Name            *string `json:"name"`
		AvatarURL       *string `json:"avatar_url"`
		CurrentJobID    *string `json:"current_job"`
		TargetJobID     *string `json:"target_job"`
		YearsExperience *int    `json:"years_experience"`
		CurrentSalary   *int    `json:"current_salary"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = *req.AvatarURL
	}
	if req.CurrentJobID != nil {
		profile.CurrentJobID = req.CurrentJobID
	}
	if req.TargetJobID != nil {
		profile.TargetJobID = req.TargetJobID
	}
	if req.YearsExperience != nil {
		profile.YearsExperience = *req.YearsExperience
	}
	if req.CurrentSalary != nil {
		// a fresh salary figure resets verification
		profile.CurrentSalary = req.CurrentSalary
		profile.SalaryVerificationStatus = models.VerificationNone
		profile.SalaryVerifiedAt = nil
	}

	if err := s.DB.Save(&profile).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}
	return c.JSON(profileView(&profile))
}

// CompleteTask handles POST /profiles/:id/complete_task.
func (s *ProfileService) CompleteTask(c *fiber.Ctx) error {
	var req struct {
		TaskID   string `json:"task_id" validate:"required"`
		PhotoURL string `json:"photo_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := s.Completion.CompleteTask(c.Params("id"), req.TaskID, req.PhotoURL)
	if err != nil {
		return completionErrorResponse(c, err)
	}
	return c.JSON(result)
}

// CompleteQuest handles POST /profiles/:id/complete_quest.
func (s *ProfileService) CompleteQuest(c *fiber.Ctx) error {
	var req struct {
		QuestID  string `json:"quest_id" validate:"required"`
		Notes    string `json:"notes"`
		ProofURL string `json:"proof_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := s.Completion.CompleteQuest(c.Params("id"), req.QuestID, req.Notes, req.ProofURL)
	if err != nil {
		return completionErrorResponse(c, err)
	}
	return c.JSON(result)
}

// completionErrorResponse maps the completion sentinels onto HTTP statuses.
func completionErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrProfileNotFound), errors.Is(err, ErrTaskNotFound), errors.Is(err, ErrQuestNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrAlreadyCompleted), errors.Is(err, ErrLimitReached):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		log.Printf("DB Error completing reward: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Completion failed"})
	}
}

// GetCompletions returns today's ledger rows for the profile.
func (s *ProfileService) GetCompletions(c *fiber.Ctx) error {
	profileID := c.Params("id")
	tasks, quests, err := s.Completion.TodayCompletions(profileID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load completions"})
	}
	return c.JSON(fiber.Map{
		"task_completions":  tasks,
		"quest_completions": quests,
	})
}

// UploadSalaryProof accepts a multipart proof image, stores it in R2 (local
// uploads dir as fallback) and moves the profile's salary verification into
// Pending for admin review.
func (s *ProfileService) UploadSalaryProof(c *fiber.Ctx) error {
	var profile models.MechanicProfile
	if err := s.DB.First(&profile, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	proofFile, err := c.FormFile("proof_image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "proof_image is required"})
	}
	if proofFile.Size > 10*1024*1024 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file too large (max 10MB)"})
	}

	ext := filepath.Ext(proofFile.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	key := "salary_proofs/" + uuid.NewString() + ext
	proofURL, err := utils.UploadFileToR2(proofFile, key)
	if err != nil {
		log.Printf("⚠️ R2 upload failed, saving proof locally: %v", err)
		localPath := utils.GetUploadPath(key)
		if err := utils.SaveFile(proofFile, localPath); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to store proof image"})
		}
		proofURL = "/" + localPath
	}

	profile.SalaryProofURL = proofURL
	profile.SalaryVerificationStatus = models.VerificationPending
	profile.SalaryVerifiedAt = nil
	if err := s.DB.Save(&profile).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(fiber.Map{
		"proof_url": proofURL,
		"status":    profile.SalaryVerificationStatus,
	})
}

// VerifySalary is the admin action confirming a profile's salary proof.
func (s *ProfileService) VerifySalary(c *fiber.Ctx) error {
	return s.setSalaryVerification(c, models.VerificationVerified)
}

// RejectSalary is the admin action rejecting a profile's salary proof.
func (s *ProfileService) RejectSalary(c *fiber.Ctx) error {
	return s.setSalaryVerification(c, models.VerificationRejected)
}

func (s *ProfileService) setSalaryVerification(c *fiber.Ctx, status models.VerificationStatus) error {
	var profile models.MechanicProfile
	if err := s.DB.First(&profile, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	profile.SalaryVerificationStatus = status
	if status == models.VerificationVerified {
		now := time.Now()
		profile.SalaryVerifiedAt = &now
	} else {
		profile.SalaryVerifiedAt = nil
	}
	if err := s.DB.Save(&profile).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	log.Printf("💼 Salary verification for %s → %s", profile.ID, status)
	return c.JSON(fiber.Map{
		"id":                         profile.ID,
		"salary_verification_status": profile.SalaryVerificationStatus,
		"salary_verified_at":         profile.SalaryVerifiedAt,
	})
}
