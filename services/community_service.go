package services

import (
	"errors"
	"log"

	"unsan-academy/models"
	"unsan-academy/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrPostNotFound = errors.New("Post not found")

type CommunityService struct {
	DB *gorm.DB
}

func NewCommunityService(db *gorm.DB) *CommunityService {
	return &CommunityService{DB: db}
}

// ToggleLike flips the like state for (post, profile) and returns the new
// state plus the fresh counter. Delete-first: if a row went away the toggle
// was "unlike", otherwise insert through the unique index. The denormalized
// counter is advanced with a SQL expression, never read-modify-write.
func (s *CommunityService) ToggleLike(postID, profileID string) (bool, int, error) {
	var liked bool
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, "id = ?", postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}

		res := tx.Where("post_id = ? AND profile_id = ?", postID, profileID).
			Delete(&models.PostLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = false
			return tx.Model(&models.Post{}).Where("id = ?", postID).
				Update("likes", gorm.Expr("likes - ?", 1)).Error
		}

		like := models.PostLike{
			ID:        uuid.NewString(),
			PostID:    postID,
			ProfileID: profileID,
		}
		ins := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}, {Name: "profile_id"}},
			DoNothing: true,
		}).Create(&like)
		if ins.Error != nil {
			return ins.Error
		}
		if ins.RowsAffected == 0 {
			// concurrent like beat us; state is already "liked"
			liked = true
			return nil
		}
		liked = true
		return tx.Model(&models.Post{}).Where("id = ?", postID).
			Update("likes", gorm.Expr("likes + ?", 1)).Error
	})
	if err != nil {
		return false, 0, err
	}

	var post models.Post
	if err := s.DB.Select("likes").First(&post, "id = ?", postID).Error; err != nil {
		return liked, 0, err
	}
	return liked, post.Likes, nil
}

// AddComment appends a comment and bumps the post's denormalized count.
func (s *CommunityService) AddComment(postID, profileID, content string) (*models.Comment, error) {
	comment := &models.Comment{
		ID:       uuid.NewString(),
		PostID:   postID,
		AuthorID: profileID,
		Content:  content,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, "id = ?", postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).Where("id = ?", postID).
			Update("comment_count", gorm.Expr("comment_count + ?", 1)).Error
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// --- Fiber handlers ---

// GetPosts lists posts, pinned first; ?category= filters, ?profile_id= adds
// is_liked / is_mine annotations.
func (s *CommunityService) GetPosts(c *fiber.Ctx) error {
	q := s.DB.Model(&models.Post{}).Preload("Author")
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}

	var posts []models.Post
	if err := q.Order("is_pinned DESC, created_at DESC").Find(&posts).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	profileID := c.Query("profile_id")
	likedSet := map[string]bool{}
	if profileID != "" {
		var likes []models.PostLike
		if err := s.DB.Where("profile_id = ?", profileID).Find(&likes).Error; err == nil {
			for _, l := range likes {
				likedSet[l.PostID] = true
			}
		}
	}

	out := make([]fiber.Map, 0, len(posts))
	for _, p := range posts {
		m := postView(&p)
		if profileID != "" {
			m["is_liked"] = likedSet[p.ID]
			m["is_mine"] = p.AuthorID == profileID
		}
		out = append(out, m)
	}
	return c.JSON(out)
}

func postView(p *models.Post) fiber.Map {
	return fiber.Map{
		"id":                   p.ID,
		"author":               p.Author,
		"category":             p.Category,
		"title":                p.Title,
		"slug":                 p.Slug,
		"content":              p.Content,
		"related_job":          p.RelatedJobID,
		"likes":                p.Likes,
		"views":                p.Views,
		"comment_count":        p.CommentCount,
		"show_verified_salary": p.ShowVerifiedSalary,
		"is_pinned":            p.IsPinned,
		"created_at":           p.CreatedAt,
		"updated_at":           p.UpdatedAt,
	}
}

// GetPostByID returns a post with comments and bumps the view counter.
func (s *CommunityService) GetPostByID(c *fiber.Ctx) error {
	var post models.Post
	if err := s.DB.Preload("Author").Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at").Preload("Author")
	}).First(&post, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	s.DB.Model(&models.Post{}).Where("id = ?", post.ID).
		Update("views", gorm.Expr("views + ?", 1))
	post.Views++

	m := postView(&post)
	m["comments"] = post.Comments
	if profileID := c.Query("profile_id"); profileID != "" {
		var count int64
		s.DB.Model(&models.PostLike{}).
			Where("post_id = ? AND profile_id = ?", post.ID, profileID).
			Count(&count)
		m["is_liked"] = count > 0
		m["is_mine"] = post.AuthorID == profileID
	}
	return c.JSON(m)
}

// CreatePost creates a community post, slugging the title for listing URLs.
func (s *CommunityService) CreatePost(c *fiber.Ctx) error {
	var req struct {
		ProfileID          string  `json:"profile_id" validate:"required"`
		Category           string  `json:"category" validate:"omitempty,oneof=Free Tech Salary Career"`
		Title              string  `json:"title" validate:"required,max=200"`
		Content            string  `json:"content" validate:"required"`
		RelatedJobID       *string `json:"related_job"`
		ShowVerifiedSalary bool    `json:"show_verified_salary"`
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

	post := models.Post{
		ID:                 uuid.NewString(),
		AuthorID:           author.ID,
		Category:           req.Category,
		Title:              req.Title,
		Slug:               slug.Make(req.Title),
		Content:            req.Content,
		RelatedJobID:       req.RelatedJobID,
		ShowVerifiedSalary: req.ShowVerifiedSalary,
	}
	if post.Category == "" {
		post.Category = models.PostCategoryFree
	}

	if err := s.DB.Create(&post).Error; err != nil {
		log.Printf("DB Error creating post: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create post"})
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// DeletePost removes a post; only the author may delete it.
func (s *CommunityService) DeletePost(c *fiber.Ctx) error {
	var req struct {
		ProfileID string `json:"profile_id" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var post models.Post
	if err := s.DB.First(&post, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	if post.AuthorID != req.ProfileID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not your post"})
	}

	if err := s.DB.Delete(&post).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete post"})
	}
	return c.JSON(fiber.Map{"deleted": true})
}

// LikePost handles the like toggle endpoint. The caller identity comes from
// the JSON body or, for body-less clients, the profile_id query parameter.
func (s *CommunityService) LikePost(c *fiber.Ctx) error {
	var req struct {
		ProfileID string `json:"profile_id"`
	}
	_ = c.BodyParser(&req)

	profileID := req.ProfileID
	if profileID == "" {
		profileID = c.Query("profile_id")
	}
	if profileID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "profile_id is required"})
	}

	liked, likes, err := s.ToggleLike(c.Params("id"), profileID)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
		}
		log.Printf("DB Error toggling like: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to toggle like"})
	}
	return c.JSON(fiber.Map{"liked": liked, "likes": likes})
}

// CommentOnPost handles the comment endpoint.
func (s *CommunityService) CommentOnPost(c *fiber.Ctx) error {
	var req struct {
		ProfileID string `json:"profile_id" validate:"required"`
		Content   string `json:"content" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	comment, err := s.AddComment(c.Params("id"), req.ProfileID, req.Content)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
		}
		log.Printf("DB Error creating comment: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create comment"})
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}
