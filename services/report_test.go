package services

import (
	"errors"
	"testing"

	"unsan-academy/models"

	"gorm.io/gorm"
)

func createTestReport(t *testing.T, db *gorm.DB, id, profileID string) *models.SalaryReport {
	t.Helper()
	report := &models.SalaryReport{
		ID:              id,
		ProfileID:       profileID,
		TargetJobID:     "job-1",
		CurrentSalary:   3200,
		EstimatedSalary: 4000,
		YearsExperience: 3,
		Percentile:      50,
		Status:          models.VerificationPending,
	}
	if err := db.Create(report).Error; err != nil {
		t.Fatalf("create report: %v", err)
	}
	return report
}

func TestSetStatus_Verify(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db)
	profile := createTestProfile(t, db, nil)
	report := createTestReport(t, db, "report-1", profile.ID)

	updated, err := svc.SetStatus(report.ID, models.VerificationVerified, "")
	if err != nil {
		t.Fatalf("SetStatus() error: %v", err)
	}
	if updated.Status != models.VerificationVerified {
		t.Errorf("status = %q, want Verified", updated.Status)
	}
	if updated.VerifiedAt == nil {
		t.Error("VerifiedAt = nil, want timestamp")
	}
	if updated.RejectionReason != "" {
		t.Errorf("rejection reason = %q, want empty", updated.RejectionReason)
	}
}

func TestSetStatus_RejectKeepsReason(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db)
	profile := createTestProfile(t, db, nil)
	report := createTestReport(t, db, "report-1", profile.ID)

	updated, err := svc.SetStatus(report.ID, models.VerificationRejected, "proof image unreadable")
	if err != nil {
		t.Fatalf("SetStatus() error: %v", err)
	}
	if updated.Status != models.VerificationRejected {
		t.Errorf("status = %q, want Rejected", updated.Status)
	}
	if updated.VerifiedAt != nil {
		t.Error("VerifiedAt set on rejected report")
	}
	if updated.RejectionReason != "proof image unreadable" {
		t.Errorf("rejection reason = %q", updated.RejectionReason)
	}
}

func TestSetStatus_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db)

	if _, err := svc.SetStatus("no-such-report", models.VerificationVerified, ""); !errors.Is(err, ErrReportNotFound) {
		t.Fatalf("error = %v, want ErrReportNotFound", err)
	}
}

func TestBulkSetStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewReportService(db)
	profile := createTestProfile(t, db, nil)
	createTestReport(t, db, "report-1", profile.ID)
	createTestReport(t, db, "report-2", profile.ID)

	updated, err := svc.BulkSetStatus([]string{"report-1", "report-2", "missing"}, models.VerificationVerified)
	if err != nil {
		t.Fatalf("BulkSetStatus() error: %v", err)
	}
	if updated != 2 {
		t.Errorf("updated = %d, want 2 (missing IDs skipped)", updated)
	}

	var verified int64
	db.Model(&models.SalaryReport{}).Where("status = ?", models.VerificationVerified).Count(&verified)
	if verified != 2 {
		t.Errorf("verified rows = %d, want 2", verified)
	}

	updated, err = svc.BulkSetStatus(nil, models.VerificationVerified)
	if err != nil || updated != 0 {
		t.Errorf("empty bulk = (%d, %v), want (0, nil)", updated, err)
	}
}

func TestSalaryGap(t *testing.T) {
	r := models.SalaryReport{CurrentSalary: 3200, EstimatedSalary: 4000}
	if got := r.SalaryGap(); got != 800 {
		t.Errorf("SalaryGap() = %d, want 800", got)
	}
}
