package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"unsan-academy/handlers"
	"unsan-academy/middleware"
	"unsan-academy/models"
	"unsan-academy/services"
	"unsan-academy/utils"
	"unsan-academy/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	if err := models.ValidateStatAccessors(); err != nil {
		log.Fatal("stat accessor table invalid:", err)
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // proof images only
	})

	// Only Gateway requests allowed, no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, X-Profile-ID, X-User-Roles",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitR2(); err != nil {
		log.Printf("⚠️  R2 not configured (%v), proof images fall back to local uploads dir", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.JobGroup{},
		&models.Job{},
		&models.JobPrerequisite{},
		&models.JobTag{},
		&models.JobTagRelation{},
		&models.Academy{},
		&models.Course{},
		&models.CourseTargetJob{},
		&models.CourseTag{},
		&models.CourseTagRelation{},
		&models.Certification{},
		&models.CourseCertification{},
		&models.MechanicProfile{},
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
		&models.SuccessStory{},
		&models.StoryJourneyStep{},
		&models.SalaryReport{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if err := utils.EnsureUploadDir(); err != nil {
		log.Fatal("failed to ensure upload dir:", err)
	}

	unlockService := services.NewUnlockService(db)
	completionService := services.NewCompletionService(db, unlockService)
	profileService := services.NewProfileService(db, completionService)
	catalogService := services.NewCatalogService(db, unlockService, completionService)
	dashboardService := services.NewDashboardService(db, unlockService, completionService)
	communityService := services.NewCommunityService(db)
	reviewService := services.NewReviewService(db)
	storyService := services.NewStoryService(db)
	reportService := services.NewReportService(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Mirror account identities (names, avatars) from the account service
	if accountServiceURL := os.Getenv("ACCOUNT_SERVICE_URL"); accountServiceURL != "" {
		serviceToken := os.Getenv("ACADEMY_SERVICE_TOKEN")
		syncWorker := workers.NewAccountSyncWorker(db, accountServiceURL, "/api/v1/public/accounts", serviceToken)
		syncWorker.Start(ctx)
	} else {
		log.Println("⚠️  ACCOUNT_SERVICE_URL not set, account sync worker disabled")
	}

	communityService.StartReconcileScheduler()

	handlers.SetupProfileRoutes(app, profileService, dashboardService)
	handlers.SetupCatalogRoutes(app, catalogService)
	handlers.SetupCommunityRoutes(app, communityService, reviewService, storyService)
	handlers.SetupReportRoutes(app, reportService)

	app.Static("/uploads", "./uploads")

	listenAddr := os.Getenv("LISTEN_ADDR")
	if listenAddr == "" {
		listenAddr = ":5300"
	}

	go func() {
		if err := app.Listen(listenAddr); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on %s", listenAddr)
	log.Println("✅ Counter reconcile scheduler running (every 15m)")
	log.Println("✅ GatewayAuthMiddleware enforced globally, all requests must come from Gateway")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
}
