// handlers/catalog_routes.go
package handlers

import (
	"unsan-academy/middleware"
	"unsan-academy/services"

	"github.com/gofiber/fiber/v2"
)

func SetupCatalogRoutes(app *fiber.App, catalogService *services.CatalogService) {
	// Job database
	app.Get("/job-groups", catalogService.GetJobGroups)
	app.Get("/jobs", catalogService.GetJobs)
	app.Get("/jobs/:id", catalogService.GetJobByID)

	// Education
	app.Get("/academies", catalogService.GetAcademies)
	app.Get("/academies/:id", catalogService.GetAcademyByID)
	app.Get("/courses", catalogService.GetCourses)
	app.Get("/courses/:id", catalogService.GetCourseByID)

	// Reward catalog
	app.Get("/cards", catalogService.GetCards)
	app.Get("/tasks", catalogService.GetTasks)
	app.Get("/quests", catalogService.GetQuests)

	// Admin catalog management
	admin := app.Group("/admin", middleware.UserContextMiddleware(), middleware.AdminOnlyMiddleware())
	admin.Post("/tasks", catalogService.CreateTask)
	admin.Patch("/tasks/:id", catalogService.UpdateTask)
	admin.Delete("/tasks/:id", catalogService.DeactivateTask)
	admin.Post("/quests", catalogService.CreateQuest)
	admin.Patch("/quests/:id", catalogService.UpdateQuest)
	admin.Delete("/quests/:id", catalogService.DeactivateQuest)
	admin.Post("/cards", catalogService.CreateCard)
	admin.Patch("/cards/:id", catalogService.UpdateCard)
	admin.Delete("/cards/:id", catalogService.DeactivateCard)
}
