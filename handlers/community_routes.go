// handlers/community_routes.go
package handlers

import (
	"unsan-academy/services"

	"github.com/gofiber/fiber/v2"
)

func SetupCommunityRoutes(app *fiber.App, communityService *services.CommunityService, reviewService *services.ReviewService, storyService *services.StoryService) {
	// Posts
	app.Get("/posts", communityService.GetPosts)
	app.Get("/posts/:id", communityService.GetPostByID)
	app.Post("/posts", communityService.CreatePost)
	app.Delete("/posts/:id", communityService.DeletePost)
	app.Post("/posts/:id/like", communityService.LikePost)
	app.Post("/posts/:id/comment", communityService.CommentOnPost)

	// Career reviews
	app.Get("/reviews", reviewService.GetReviews)
	app.Post("/reviews", reviewService.CreateReview)
	app.Post("/reviews/:id/helpful", reviewService.MarkHelpful)

	// Success stories
	app.Get("/stories", storyService.GetStories)
	app.Get("/stories/:id", storyService.GetStoryByID)
	app.Post("/stories", storyService.CreateStory)
}
