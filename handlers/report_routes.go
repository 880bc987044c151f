// handlers/report_routes.go
package handlers

import (
	"unsan-academy/middleware"
	"unsan-academy/services"

	"github.com/gofiber/fiber/v2"
)

func SetupReportRoutes(app *fiber.App, reportService *services.ReportService) {
	app.Get("/reports", reportService.GetReports)
	app.Post("/reports", reportService.CreateReport)
	app.Post("/reports/:id/proof", reportService.UploadProof)

	admin := app.Group("/admin", middleware.UserContextMiddleware(), middleware.AdminOnlyMiddleware())
	admin.Post("/reports/:id/verify", reportService.VerifyReport)
	admin.Post("/reports/:id/reject", reportService.RejectReport)
	admin.Post("/reports/bulk_verify", reportService.BulkVerify)
}
