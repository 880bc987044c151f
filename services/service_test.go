package services

import (
	"path/filepath"
	"testing"

	"unsan-academy/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dir := t.TempDir()
	db, err := gorm.Open(sqlite.Open(filepath.Join(dir, "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.MechanicProfile{},
		&models.Job{},
		&models.SuccessStory{},
		&models.StoryJourneyStep{},
		&models.JobCard{},
		&models.UnlockedCard{},
		&models.Task{},
		&models.TaskCompletion{},
		&models.Quest{},
		&models.QuestCompletion{},
		&models.Post{},
		&models.Comment{},
		&models.PostLike{},
		&models.CareerReview{},
		&models.ReviewHelpful{},
		&models.SalaryReport{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func createTestProfile(t *testing.T, db *gorm.DB, mutate func(*models.MechanicProfile)) *models.MechanicProfile {
	t.Helper()
	profile := &models.MechanicProfile{
		ID:        "profile-1",
		Name:      "Test Mechanic",
		Tier:      models.TierUnranked,
		StatTech:  10,
		StatHand:  10,
		StatSpeed: 10,
		StatArt:   10,
		StatBiz:   10,
	}
	if mutate != nil {
		mutate(profile)
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("create profile: %v", err)
	}
	return profile
}
