package services

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"unsan-academy/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func createTestPost(t *testing.T, db *gorm.DB, authorID string) *models.Post {
	t.Helper()
	post := &models.Post{
		ID:       "post-1",
		AuthorID: authorID,
		Category: models.PostCategoryFree,
		Title:    "First wrench day",
		Slug:     "first-wrench-day",
		Content:  "Got my hands dirty today.",
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	return post
}

func TestToggleLike_SelfInverse(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommunityService(db)
	profile := createTestProfile(t, db, nil)
	post := createTestPost(t, db, profile.ID)

	liked, likes, err := svc.ToggleLike(post.ID, profile.ID)
	if err != nil {
		t.Fatalf("first toggle error: %v", err)
	}
	if !liked || likes != 1 {
		t.Errorf("after like: liked=%v likes=%d, want true/1", liked, likes)
	}

	liked, likes, err = svc.ToggleLike(post.ID, profile.ID)
	if err != nil {
		t.Fatalf("second toggle error: %v", err)
	}
	if liked || likes != 0 {
		t.Errorf("after unlike: liked=%v likes=%d, want false/0", liked, likes)
	}

	var rows int64
	db.Model(&models.PostLike{}).Where("post_id = ?", post.ID).Count(&rows)
	if rows != 0 {
		t.Errorf("like rows = %d, want 0", rows)
	}
}

func TestToggleLike_TwoProfiles(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommunityService(db)
	author := createTestProfile(t, db, nil)
	other := createTestProfile(t, db, func(p *models.MechanicProfile) {
		p.ID = "profile-2"
		p.ExternalUserID = "ext-2"
	})
	post := createTestPost(t, db, author.ID)

	if _, _, err := svc.ToggleLike(post.ID, author.ID); err != nil {
		t.Fatalf("author toggle error: %v", err)
	}
	_, likes, err := svc.ToggleLike(post.ID, other.ID)
	if err != nil {
		t.Fatalf("other toggle error: %v", err)
	}
	if likes != 2 {
		t.Errorf("likes = %d, want 2", likes)
	}
}

func TestToggleLike_PostNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommunityService(db)
	profile := createTestProfile(t, db, nil)

	if _, _, err := svc.ToggleLike("no-such-post", profile.ID); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("error = %v, want ErrPostNotFound", err)
	}
}

func TestAddComment_BumpsCount(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommunityService(db)
	profile := createTestProfile(t, db, nil)
	post := createTestPost(t, db, profile.ID)

	comment, err := svc.AddComment(post.ID, profile.ID, "Nice work")
	if err != nil {
		t.Fatalf("AddComment() error: %v", err)
	}
	if comment.Content != "Nice work" {
		t.Errorf("comment content = %q", comment.Content)
	}

	var saved models.Post
	db.First(&saved, "id = ?", post.ID)
	if saved.CommentCount != 1 {
		t.Errorf("comment_count = %d, want 1", saved.CommentCount)
	}

	if _, err := svc.AddComment("no-such-post", profile.ID, "hello"); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("missing post error = %v, want ErrPostNotFound", err)
	}
}

func TestReconcileCounters_FixesDrift(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommunityService(db)
	profile := createTestProfile(t, db, nil)
	post := createTestPost(t, db, profile.ID)

	if _, _, err := svc.ToggleLike(post.ID, profile.ID); err != nil {
		t.Fatalf("toggle error: %v", err)
	}
	if _, err := svc.AddComment(post.ID, profile.ID, "drifting"); err != nil {
		t.Fatalf("comment error: %v", err)
	}

	// corrupt the denormalized counters
	if err := db.Model(&models.Post{}).Where("id = ?", post.ID).Updates(map[string]interface{}{
		"likes":         42,
		"comment_count": 0,
	}).Error; err != nil {
		t.Fatalf("corrupt counters: %v", err)
	}

	if err := svc.ReconcileCounters(); err != nil {
		t.Fatalf("ReconcileCounters() error: %v", err)
	}

	var fixed models.Post
	db.First(&fixed, "id = ?", post.ID)
	if fixed.Likes != 1 || fixed.CommentCount != 1 {
		t.Errorf("after reconcile likes/comments = %d/%d, want 1/1", fixed.Likes, fixed.CommentCount)
	}
}

func TestLikePost_ProfileIDFromBodyOrQuery(t *testing.T) {
	db := newTestDB(t)
	svc := NewCommunityService(db)
	profile := createTestProfile(t, db, nil)
	post := createTestPost(t, db, profile.ID)

	app := fiber.New()
	app.Post("/posts/:id/like", svc.LikePost)

	// query parameter, no body
	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/posts/"+post.ID+"/like?profile_id="+profile.ID, nil))
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("query variant status = %d, want 200", resp.StatusCode)
	}
	var out struct {
		Liked bool `json:"liked"`
		Likes int  `json:"likes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !out.Liked || out.Likes != 1 {
		t.Errorf("liked=%v likes=%d, want true/1", out.Liked, out.Likes)
	}

	// JSON body still works (this one unlikes)
	resp = doJSON(t, app, fiber.MethodPost, "/posts/"+post.ID+"/like", fiber.Map{"profile_id": profile.ID})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("body variant status = %d, want 200", resp.StatusCode)
	}

	// neither body nor query
	resp, err = app.Test(httptest.NewRequest(fiber.MethodPost, "/posts/"+post.ID+"/like", nil))
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("missing profile_id status = %d, want 400", resp.StatusCode)
	}
}

func TestToggleHelpful_SelfInverse(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db)
	profile := createTestProfile(t, db, nil)
	review := &models.CareerReview{
		ID:       "review-1",
		AuthorID: profile.ID,
		JobID:    "job-1",
		Title:    "Two years in EV repair",
		Rating:   5,
	}
	if err := db.Create(review).Error; err != nil {
		t.Fatalf("create review: %v", err)
	}

	voted, count, err := svc.ToggleHelpful(review.ID, profile.ID)
	if err != nil {
		t.Fatalf("first toggle error: %v", err)
	}
	if !voted || count != 1 {
		t.Errorf("after vote: voted=%v count=%d, want true/1", voted, count)
	}

	voted, count, err = svc.ToggleHelpful(review.ID, profile.ID)
	if err != nil {
		t.Fatalf("second toggle error: %v", err)
	}
	if voted || count != 0 {
		t.Errorf("after unvote: voted=%v count=%d, want false/0", voted, count)
	}

	if _, _, err := svc.ToggleHelpful("no-such-review", profile.ID); !errors.Is(err, ErrReviewNotFound) {
		t.Fatalf("missing review error = %v, want ErrReviewNotFound", err)
	}
}
