package services

import (
	"errors"
	"log"
	"time"

	"unsan-academy/models"
	"unsan-academy/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrReportNotFound = errors.New("Report not found")

type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

// SetStatus moves a report through the verification workflow. Verified
// reports get a timestamp; rejected ones keep the reviewer's reason.
func (s *ReportService) SetStatus(reportID string, status models.VerificationStatus, reason string) (*models.SalaryReport, error) {
	var report models.SalaryReport
	if err := s.DB.First(&report, "id = ?", reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	report.Status = status
	switch status {
	case models.VerificationVerified:
		now := time.Now()
		report.VerifiedAt = &now
		report.RejectionReason = ""
	case models.VerificationRejected:
		report.VerifiedAt = nil
		report.RejectionReason = reason
	default:
		report.VerifiedAt = nil
		report.RejectionReason = ""
	}

	if err := s.DB.Save(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// BulkSetStatus applies one status to many reports, returning how many rows
// actually changed. Missing IDs are skipped, not errors.
func (s *ReportService) BulkSetStatus(reportIDs []string, status models.VerificationStatus) (int64, error) {
	if len(reportIDs) == 0 {
		return 0, nil
	}
	updates := map[string]interface{}{"status": status}
	if status == models.VerificationVerified {
		updates["verified_at"] = time.Now()
		updates["rejection_reason"] = ""
	} else {
		updates["verified_at"] = nil
	}
	res := s.DB.Model(&models.SalaryReport{}).
		Where("id IN ?", reportIDs).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// --- Fiber handlers ---

// GetReports lists salary reports; ?profile_id= and ?status= filter.
func (s *ReportService) GetReports(c *fiber.Ctx) error {
	q := s.DB.Model(&models.SalaryReport{}).Preload("TargetJob").Preload("Profile")
	if profileID := c.Query("profile_id"); profileID != "" {
		q = q.Where("profile_id = ?", profileID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var reports []models.SalaryReport
	if err := q.Order("created_at DESC").Find(&reports).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	out := make([]fiber.Map, 0, len(reports))
	for _, r := range reports {
		out = append(out, reportView(&r))
	}
	return c.JSON(out)
}

func reportView(r *models.SalaryReport) fiber.Map {
	return fiber.Map{
		"id":               r.ID,
		"profile_id":       r.ProfileID,
		"target_job_id":    r.TargetJobID,
		"target_job":       r.TargetJob,
		"current_salary":   r.CurrentSalary,
		"estimated_salary": r.EstimatedSalary,
		"salary_gap":       r.SalaryGap(),
		"years_experience": r.YearsExperience,
		"percentile":       r.Percentile,
		"user_stats":       r.UserStats,
		"proof_url":        r.ProofURL,
		"status":           r.Status,
		"verified_at":      r.VerifiedAt,
		"rejection_reason": r.RejectionReason,
		"created_at":       r.CreatedAt,
	}
}

// CreateReport files a salary report, snapshotting the profile's stats.
func (s *ReportService) CreateReport(c *fiber.Ctx) error {
	var req struct {
		ProfileID       string `json:"profile_id" validate:"required"`
		TargetJobID     string `json:"target_job_id" validate:"required"`
		CurrentSalary   int    `json:"current_salary" validate:"required,min=0"`
		EstimatedSalary int    `json:"estimated_salary" validate:"required,min=0"`
		YearsExperience int    `json:"years_experience" validate:"min=0"`
		Percentile      int    `json:"percentile" validate:"omitempty,min=0,max=100"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var profile models.MechanicProfile
	if err := s.DB.First(&profile, "id = ?", req.ProfileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Profile not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	statsSnapshot := make(map[string]int, 5)
	for stat, value := range profile.Stats() {
		statsSnapshot[string(stat)] = value
	}

	report := models.SalaryReport{
		ID:              uuid.NewString(),
		ProfileID:       profile.ID,
		TargetJobID:     req.TargetJobID,
		CurrentSalary:   req.CurrentSalary,
		EstimatedSalary: req.EstimatedSalary,
		YearsExperience: req.YearsExperience,
		Percentile:      req.Percentile,
		UserStats:       statsSnapshot,
		Status:          models.VerificationNone,
	}
	if report.Percentile == 0 {
		report.Percentile = 50
	}

	if err := s.DB.Create(&report).Error; err != nil {
		log.Printf("DB Error creating report: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create report"})
	}
	return c.Status(fiber.StatusCreated).JSON(reportView(&report))
}

// UploadProof attaches a proof image to a report and marks it Pending.
// Only the report's owner may upload.
func (s *ReportService) UploadProof(c *fiber.Ctx) error {
	var report models.SalaryReport
	if err := s.DB.First(&report, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Report not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	if profileID := c.FormValue("profile_id"); profileID == "" || profileID != report.ProfileID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not your report"})
	}

	proofFile, err := c.FormFile("proof_image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "proof_image is required"})
	}

	key := "salary_proofs/" + uuid.NewString() + utils.FileExtOr(proofFile.Filename, ".jpg")
	proofURL, err := utils.UploadFileToR2(proofFile, key)
	if err != nil {
		log.Printf("⚠️ R2 upload failed, saving proof locally: %v", err)
		localPath := utils.GetUploadPath(key)
		if err := utils.SaveFile(proofFile, localPath); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to store proof image"})
		}
		proofURL = "/" + localPath
	}

	report.ProofURL = proofURL
	report.Status = models.VerificationPending
	report.VerifiedAt = nil
	if err := s.DB.Save(&report).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update report"})
	}
	return c.JSON(reportView(&report))
}

// VerifyReport is the admin action approving a report.
func (s *ReportService) VerifyReport(c *fiber.Ctx) error {
	report, err := s.SetStatus(c.Params("id"), models.VerificationVerified, "")
	if err != nil {
		return reportErrorResponse(c, err)
	}
	log.Printf("📊 Report verified: %s", report.ID)
	return c.JSON(reportView(report))
}

// RejectReport is the admin action rejecting a report with a reason.
func (s *ReportService) RejectReport(c *fiber.Ctx) error {
	var req struct {
		Reason string `json:"reason" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	report, err := s.SetStatus(c.Params("id"), models.VerificationRejected, req.Reason)
	if err != nil {
		return reportErrorResponse(c, err)
	}
	return c.JSON(reportView(report))
}

// BulkVerify applies a status to many reports at once (admin only).
func (s *ReportService) BulkVerify(c *fiber.Ctx) error {
	var req struct {
		ReportIDs []string `json:"report_ids" validate:"required,min=1"`
		Status    string   `json:"status" validate:"required,oneof=Verified Rejected Pending"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updated, err := s.BulkSetStatus(req.ReportIDs, models.VerificationStatus(req.Status))
	if err != nil {
		log.Printf("DB Error bulk verifying reports: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Bulk update failed"})
	}
	return c.JSON(fiber.Map{"updated": updated, "status": req.Status})
}

func reportErrorResponse(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrReportNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Report not found"})
	}
	log.Printf("DB Error updating report: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update report"})
}
