package services

import (
	"errors"
	"testing"

	"unsan-academy/models"

	"gorm.io/gorm"
)

func newCompletionService(db *gorm.DB) *CompletionService {
	return NewCompletionService(db, NewUnlockService(db))
}

func createDailyTask(t *testing.T, db *gorm.DB, stat models.StatType, statReward, xpReward int) *models.Task {
	t.Helper()
	task := &models.Task{
		ID:         "task-" + string(stat),
		Title:      "Practice " + string(stat),
		StatType:   stat,
		StatReward: statReward,
		XPReward:   xpReward,
		IsDaily:    true,
		IsActive:   true,
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

func TestCompleteTask_AwardsStatAndXP(t *testing.T) {
	db := newTestDB(t)
	svc := newCompletionService(db)
	profile := createTestProfile(t, db, nil)
	task := createDailyTask(t, db, models.StatTech, 5, 20)

	result, err := svc.CompleteTask(profile.ID, task.ID, "")
	if err != nil {
		t.Fatalf("CompleteTask() error: %v", err)
	}
	if !result.Success {
		t.Error("result.Success = false, want true")
	}
	if result.StatUpdated != models.StatTech {
		t.Errorf("StatUpdated = %q, want Tech", result.StatUpdated)
	}
	if result.NewValue != 15 {
		t.Errorf("NewValue = %d, want 15", result.NewValue)
	}
	if result.TotalXP != 20 {
		t.Errorf("TotalXP = %d, want 20", result.TotalXP)
	}

	var saved models.MechanicProfile
	if err := db.First(&saved, "id = ?", profile.ID).Error; err != nil {
		t.Fatalf("reload profile: %v", err)
	}
	if saved.StatTech != 15 || saved.XP != 20 {
		t.Errorf("persisted stat/xp = %d/%d, want 15/20", saved.StatTech, saved.XP)
	}
}

func TestCompleteTask_ClampsStatAt100(t *testing.T) {
	db := newTestDB(t)
	svc := newCompletionService(db)
	profile := createTestProfile(t, db, func(p *models.MechanicProfile) {
		p.StatHand = 98
	})
	task := createDailyTask(t, db, models.StatHand, 5, 10)

	result, err := svc.CompleteTask(profile.ID, task.ID, "")
	if err != nil {
		t.Fatalf("CompleteTask() error: %v", err)
	}
	if result.NewValue != 100 {
		t.Errorf("NewValue = %d, want 100 (clamped)", result.NewValue)
	}
}

func TestCompleteTask_DailyDuplicateRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newCompletionService(db)
	profile := createTestProfile(t, db, nil)
	task := createDailyTask(t, db, models.StatSpeed, 2, 10)

	if _, err := svc.CompleteTask(profile.ID, task.ID, ""); err != nil {
		t.Fatalf("first completion error: %v", err)
	}
	_, err := svc.CompleteTask(profile.ID, task.ID, "")
	if !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("second completion error = %v, want ErrAlreadyCompleted", err)
	}

	// the duplicate must not have granted anything
	var saved models.MechanicProfile
	db.First(&saved, "id = ?", profile.ID)
	if saved.StatSpeed != 12 || saved.XP != 10 {
		t.Errorf("stat/xp after duplicate = %d/%d, want 12/10", saved.StatSpeed, saved.XP)
	}

	var ledger int64
	db.Model(&models.TaskCompletion{}).Where("profile_id = ?", profile.ID).Count(&ledger)
	if ledger != 1 {
		t.Errorf("ledger rows = %d, want 1", ledger)
	}
}

func TestCompleteTask_NonDailyRepeats(t *testing.T) {
	db := newTestDB(t)
	svc := newCompletionService(db)
	profile := createTestProfile(t, db, nil)
	task := &models.Task{
		ID:         "task-free",
		Title:      "Free practice",
		StatType:   models.StatArt,
		StatReward: 1,
		XPReward:   5,
		IsDaily:    false,
		IsActive:   true,
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("create task: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := svc.CompleteTask(profile.ID, task.ID, ""); err != nil {
			t.Fatalf("completion %d error: %v", i+1, err)
		}
	}

	var ledger int64
	db.Model(&models.TaskCompletion{}).Where("profile_id = ?", profile.ID).Count(&ledger)
	if ledger != 3 {
		t.Errorf("ledger rows = %d, want 3", ledger)
	}
}

func TestCompleteTask_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newCompletionService(db)
	profile := createTestProfile(t, db, nil)

	if _, err := svc.CompleteTask(profile.ID, "no-such-task", ""); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("error = %v, want ErrTaskNotFound", err)
	}

	inactive := &models.Task{
		ID:       "task-retired",
		Title:    "Retired",
		StatType: models.StatBiz,
		IsActive: false,
	}
	if err := db.Create(inactive).Error; err != nil {
		t.Fatalf("create task: %v", err)
	}
	if _, err := svc.CompleteTask(profile.ID, inactive.ID, ""); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("inactive task error = %v, want ErrTaskNotFound", err)
	}
}

func TestCompleteTask_ProfileNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newCompletionService(db)
	task := createDailyTask(t, db, models.StatTech, 2, 10)

	if _, err := svc.CompleteTask("no-such-profile", task.ID, ""); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("error = %v, want ErrProfileNotFound", err)
	}
}

func TestCompleteQuest_CrossesTierThreshold(t *testing.T) {
	db := newTestDB(t)
	svc := newCompletionService(db)
	profile := createTestProfile(t, db, func(p *models.MechanicProfile) {
		p.XP = 95
		p.Tier = models.TierUnranked
	})
	quest := &models.Quest{
		ID:                  "quest-1",
		Title:               "Daily drill",
		TargetStat:          models.StatTech,
		StatReward:          2,
		XPReward:            10,
		MaxDailyCompletions: 1,
		IsActive:            true,
	}
	if err := db.Create(quest).Error; err != nil {
		t.Fatalf("create quest: %v", err)
	}

	result, err := svc.CompleteQuest(profile.ID, quest.ID, "", "")
	if err != nil {
		t.Fatalf("CompleteQuest() error: %v", err)
	}
	if result.TotalXP != 105 {
		t.Errorf("TotalXP = %d, want 105", result.TotalXP)
	}
	if result.Tier != models.TierBronze {
		t.Errorf("Tier = %q, want Bronze", result.Tier)
	}
}

func TestCompleteQuest_DailyCap(t *testing.T) {
	db := newTestDB(t)
	svc := newCompletionService(db)
	profile := createTestProfile(t, db, nil)
	quest := &models.Quest{
		ID:                  "quest-capped",
		Title:               "Capped quest",
		TargetStat:          models.StatHand,
		StatReward:          1,
		XPReward:            5,
		MaxDailyCompletions: 2,
		IsActive:            true,
	}
	if err := db.Create(quest).Error; err != nil {
		t.Fatalf("create quest: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := svc.CompleteQuest(profile.ID, quest.ID, "", ""); err != nil {
			t.Fatalf("completion %d error: %v", i+1, err)
		}
	}
	if _, err := svc.CompleteQuest(profile.ID, quest.ID, "", ""); !errors.Is(err, ErrLimitReached) {
		t.Fatalf("third completion error = %v, want ErrLimitReached", err)
	}

	var ledger int64
	db.Model(&models.QuestCompletion{}).Where("profile_id = ?", profile.ID).Count(&ledger)
	if ledger != 2 {
		t.Errorf("ledger rows = %d, want 2", ledger)
	}
}

func TestCompleteQuest_DistinctSlotKeys(t *testing.T) {
	db := newTestDB(t)
	svc := newCompletionService(db)
	profile := createTestProfile(t, db, nil)
	quest := &models.Quest{
		ID:                  "quest-slots",
		Title:               "Slot quest",
		TargetStat:          models.StatArt,
		StatReward:          1,
		XPReward:            5,
		MaxDailyCompletions: 3,
		IsActive:            true,
	}
	if err := db.Create(quest).Error; err != nil {
		t.Fatalf("create quest: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := svc.CompleteQuest(profile.ID, quest.ID, "", ""); err != nil {
			t.Fatalf("completion %d error: %v", i+1, err)
		}
	}
	if _, err := svc.CompleteQuest(profile.ID, quest.ID, "", ""); !errors.Is(err, ErrLimitReached) {
		t.Fatalf("over-cap error = %v, want ErrLimitReached", err)
	}

	var rows []models.QuestCompletion
	if err := db.Where("profile_id = ?", profile.ID).Find(&rows).Error; err != nil {
		t.Fatalf("load ledger: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("ledger rows = %d, want 3", len(rows))
	}
	keys := make(map[string]bool, len(rows))
	for _, r := range rows {
		if keys[r.PeriodKey] {
			t.Errorf("duplicate slot key %q", r.PeriodKey)
		}
		keys[r.PeriodKey] = true
	}
}

func TestCompleteQuest_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newCompletionService(db)
	profile := createTestProfile(t, db, nil)

	if _, err := svc.CompleteQuest(profile.ID, "no-such-quest", "", ""); !errors.Is(err, ErrQuestNotFound) {
		t.Fatalf("error = %v, want ErrQuestNotFound", err)
	}
}

func TestTodayCompletions(t *testing.T) {
	db := newTestDB(t)
	svc := newCompletionService(db)
	profile := createTestProfile(t, db, nil)
	task := createDailyTask(t, db, models.StatTech, 2, 10)

	if _, err := svc.CompleteTask(profile.ID, task.ID, ""); err != nil {
		t.Fatalf("CompleteTask() error: %v", err)
	}

	tasks, quests, err := svc.TodayCompletions(profile.ID)
	if err != nil {
		t.Fatalf("TodayCompletions() error: %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("task completions = %d, want 1", len(tasks))
	}
	if len(quests) != 0 {
		t.Errorf("quest completions = %d, want 0", len(quests))
	}
}
