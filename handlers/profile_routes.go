// handlers/profile_routes.go
package handlers

import (
	"unsan-academy/middleware"
	"unsan-academy/services"

	"github.com/gofiber/fiber/v2"
)

func SetupProfileRoutes(app *fiber.App, profileService *services.ProfileService, dashboardService *services.DashboardService) {
	app.Get("/profiles/:id", profileService.GetProfile)
	app.Post("/profiles", profileService.CreateProfile)
	app.Patch("/profiles/:id", profileService.UpdateProfile)

	app.Post("/profiles/:id/complete_task", profileService.CompleteTask)
	app.Post("/profiles/:id/complete_quest", profileService.CompleteQuest)
	app.Get("/profiles/:id/completions", profileService.GetCompletions)
	app.Post("/profiles/:id/salary_proof", profileService.UploadSalaryProof)

	app.Get("/dashboard/:profile_id", dashboardService.GetDashboard)

	admin := app.Group("/admin", middleware.UserContextMiddleware(), middleware.AdminOnlyMiddleware())
	admin.Post("/profiles/:id/verify_salary", profileService.VerifySalary)
	admin.Post("/profiles/:id/reject_salary", profileService.RejectSalary)
}
