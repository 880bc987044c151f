package services

import (
	"log"
	"time"

	"unsan-academy/models"

	"github.com/go-co-op/gocron/v2"
)

// StartReconcileScheduler periodically recomputes the denormalized post
// counters (likes, comment_count) from their backing rows. The hot-path
// increments use SQL expressions so drift should be rare; the sweep corrects
// whatever slips through.
func (s *CommunityService) StartReconcileScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(15*time.Minute),
		gocron.NewTask(func() {
			if err := s.ReconcileCounters(); err != nil {
				log.Printf("[Reconcile] sweep failed: %v", err)
			}
		}),
	)
}

// ReconcileCounters rewrites likes and comment_count for every post whose
// cached value disagrees with a count of the underlying rows.
func (s *CommunityService) ReconcileCounters() error {
	var posts []models.Post
	if err := s.DB.Find(&posts).Error; err != nil {
		return err
	}

	fixed := 0
	for _, p := range posts {
		var likeCount, commentCount int64
		if err := s.DB.Model(&models.PostLike{}).Where("post_id = ?", p.ID).Count(&likeCount).Error; err != nil {
			return err
		}
		if err := s.DB.Model(&models.Comment{}).Where("post_id = ?", p.ID).Count(&commentCount).Error; err != nil {
			return err
		}
		if int(likeCount) == p.Likes && int(commentCount) == p.CommentCount {
			continue
		}
		if err := s.DB.Model(&models.Post{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
			"likes":         likeCount,
			"comment_count": commentCount,
		}).Error; err != nil {
			return err
		}
		fixed++
	}
	if fixed > 0 {
		log.Printf("🧮 Reconciled counters on %d posts", fixed)
	}
	return nil
}
