package services

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"unsan-academy/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func newCatalogApp(db *gorm.DB) (*fiber.App, *CatalogService) {
	unlock := NewUnlockService(db)
	svc := NewCatalogService(db, unlock, NewCompletionService(db, unlock))
	app := fiber.New()
	app.Patch("/admin/tasks/:id", svc.UpdateTask)
	app.Patch("/admin/quests/:id", svc.UpdateQuest)
	app.Patch("/admin/cards/:id", svc.UpdateCard)
	app.Delete("/admin/cards/:id", svc.DeactivateCard)
	return app, svc
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	return resp
}

func TestUpdateTask_PartialEdit(t *testing.T) {
	db := newTestDB(t)
	app, _ := newCatalogApp(db)
	task := createDailyTask(t, db, models.StatTech, 5, 20)

	resp := doJSON(t, app, fiber.MethodPatch, "/admin/tasks/"+task.ID, fiber.Map{
		"title":     "Polish the welds",
		"xp_reward": 50,
	})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var saved models.Task
	if err := db.First(&saved, "id = ?", task.ID).Error; err != nil {
		t.Fatalf("reload task: %v", err)
	}
	if saved.Title != "Polish the welds" || saved.XPReward != 50 {
		t.Errorf("title/xp = %q/%d, want updated values", saved.Title, saved.XPReward)
	}
	if saved.StatReward != 5 || !saved.IsDaily {
		t.Errorf("untouched fields changed: stat_reward=%d is_daily=%v", saved.StatReward, saved.IsDaily)
	}
}

func TestUpdateTask_RejectsUnknownStat(t *testing.T) {
	db := newTestDB(t)
	app, _ := newCatalogApp(db)
	task := createDailyTask(t, db, models.StatTech, 5, 20)

	resp := doJSON(t, app, fiber.MethodPatch, "/admin/tasks/"+task.ID, fiber.Map{
		"stat_type": "Luck",
	})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestUpdateTask_NotFound(t *testing.T) {
	db := newTestDB(t)
	app, _ := newCatalogApp(db)

	resp := doJSON(t, app, fiber.MethodPatch, "/admin/tasks/no-such-task", fiber.Map{"title": "x"})
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestUpdateQuest_RetunesCap(t *testing.T) {
	db := newTestDB(t)
	app, _ := newCatalogApp(db)
	quest := &models.Quest{
		ID:                  "quest-tune",
		Title:               "Tune-up drill",
		TargetStat:          models.StatSpeed,
		StatReward:          2,
		XPReward:            10,
		MaxDailyCompletions: 1,
		Difficulty:          1,
		IsActive:            true,
	}
	if err := db.Create(quest).Error; err != nil {
		t.Fatalf("create quest: %v", err)
	}

	resp := doJSON(t, app, fiber.MethodPatch, "/admin/quests/"+quest.ID, fiber.Map{
		"max_daily_completions": 3,
		"difficulty":            4,
	})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var saved models.Quest
	db.First(&saved, "id = ?", quest.ID)
	if saved.MaxDailyCompletions != 3 || saved.Difficulty != 4 {
		t.Errorf("cap/difficulty = %d/%d, want 3/4", saved.MaxDailyCompletions, saved.Difficulty)
	}
	if saved.Title != "Tune-up drill" {
		t.Errorf("title changed to %q", saved.Title)
	}
}

func TestUpdateCard_ThresholdEdit(t *testing.T) {
	db := newTestDB(t)
	app, _ := newCatalogApp(db)
	if err := db.Create(&models.JobCard{
		ID:       "card-edit",
		Title:    "Line Boss",
		ReqTech:  intPtr(70),
		IsActive: true,
	}).Error; err != nil {
		t.Fatalf("create card: %v", err)
	}

	resp := doJSON(t, app, fiber.MethodPatch, "/admin/cards/card-edit", fiber.Map{
		"req_tech": 40,
		"rarity":   "rare",
	})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var saved models.JobCard
	db.First(&saved, "id = ?", "card-edit")
	if saved.ReqTech == nil || *saved.ReqTech != 40 {
		t.Errorf("req_tech = %v, want 40", saved.ReqTech)
	}
	if saved.Rarity != "rare" {
		t.Errorf("rarity = %q, want rare", saved.Rarity)
	}
}

func TestDeactivateCard_StopsGrants(t *testing.T) {
	db := newTestDB(t)
	app, svc := newCatalogApp(db)
	profile := createTestProfile(t, db, func(p *models.MechanicProfile) {
		p.StatTech = 90
	})
	if err := db.Create(&models.JobCard{
		ID:       "card-sunset",
		Title:    "Sunset Card",
		ReqTech:  intPtr(50),
		IsActive: true,
	}).Error; err != nil {
		t.Fatalf("create card: %v", err)
	}

	resp := doJSON(t, app, fiber.MethodDelete, "/admin/cards/card-sunset", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var saved models.JobCard
	db.First(&saved, "id = ?", "card-sunset")
	if saved.IsActive {
		t.Error("card still active after deactivate")
	}

	unlocked, err := svc.Unlock.ScanAndUnlock(db, profile)
	if err != nil {
		t.Fatalf("ScanAndUnlock() error: %v", err)
	}
	if len(unlocked) != 0 {
		t.Errorf("deactivated card granted: %v", unlocked)
	}
}
