package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	config "github.com/maheshrc27/contentpilot/configs"
	"github.com/maheshrc27/contentpilot/internal/api/handlers"
	"github.com/maheshrc27/contentpilot/internal/api/middleware"
	job "github.com/maheshrc27/contentpilot/internal/jobs"
	"github.com/maheshrc27/contentpilot/internal/queue"
	"github.com/maheshrc27/contentpilot/internal/repository"
	"github.com/maheshrc27/contentpilot/internal/service"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Api-Key",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	creditRepo := repository.NewCreditRepository(db)
	planRepo := repository.NewPlanRepository(db)
	socialAccountRepo := repository.NewSocialAccountRepository(db)
	apiKeyRepository := repository.NewApiKeyRepository(db)

	creditService := service.NewCreditService(creditRepo)
	authService := service.NewAuthService(*cfg, userRepo, creditService)
	userService := service.NewUserService(userRepo)
	storageService := service.NewStorageService(*cfg)
	aiService := service.NewAIService(*cfg, storageService)
	apiKeyService := service.NewApiKeyService(apiKeyRepository)
	platformService := service.NewPlatformService(*cfg, socialAccountRepo, userRepo, planRepo)
	subscriptionService := service.NewSubscriptionService(userRepo, planRepo, creditService)
	analyticsService := service.NewAnalyticsService(postRepo)
	adminService := service.NewAdminService(userRepo, creditService)

	queueW := queue.NewQueue(client, postRepo, campaignRepo, aiService, creditService)

	postService := service.NewPostService(postRepo, creditService, queueW)
	campaignService := service.NewCampaignService(campaignRepo, postRepo, creditService, queueW)

	authMiddleware := middleware.NewAuthMiddleware(*cfg, apiKeyService)

	auth := handlers.NewAuthHandler(*cfg, authService)
	app.Get("/login", auth.Login)
	app.Get("/login/callback", auth.LoginCallbackHandler)
	app.Post("/admin/login", auth.AdminLoginHandler)
	app.Post("/logout", auth.Logout)

	payment := handlers.NewPaymentHandler(subscriptionService)
	app.Post("/payment/webhook", payment.Webhook)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	user := handlers.NewUserHandler(userService)
	api.Get("/user/info", user.GetUserInfo)
	api.Post("/user/business", user.UpdateBusinessName)

	credit := handlers.NewCreditHandler(creditService)
	api.Get("/credits/history", credit.History)

	api.Get("/plans", payment.ListPlans)
	api.Post("/subscription/cancel", payment.CancelSubscription)

	apiKeys := handlers.NewApiKeyHandler(apiKeyService)
	api.Post("/api_key/new", apiKeys.CreateApiKey)
	api.Get("/api_key/list", apiKeys.ListKeys)
	api.Post("/api_key/remove", apiKeys.RemoveAPIKey)

	platform := handlers.NewPlatformHandler(platformService)
	api.Get("/accounts", platform.ListSocialAccounts)
	api.Post("/accounts", platform.ConnectAccount)
	api.Post("/accounts/remove", platform.DeleteSocialAccount)

	post := handlers.NewPostHandler(postService)
	api.Post("/posts/create", post.CreatePost)
	api.Get("/posts", post.ListPosts)
	api.Post("/posts/approve", post.ApprovePost)
	api.Post("/posts/reject", post.RejectPost)
	api.Post("/posts/remove", post.RemovePost)

	ai := handlers.NewAIHandler(aiService, creditService)
	api.Post("/ai/generate", ai.Generate)
	api.Post("/ai/suggestions", ai.Suggestions)

	analytics := handlers.NewAnalyticsHandler(analyticsService)
	api.Get("/analytics/dashboard", analytics.Dashboard)

	campaign := handlers.NewCampaignHandler(campaignService)
	api.Post("/campaigns/create", campaign.CreateCampaign)
	api.Get("/campaigns", campaign.ListCampaigns)
	api.Get("/campaigns/posts", campaign.CampaignPosts)
	api.Post("/campaigns/generate", campaign.GenerateCampaign)
	api.Post("/campaigns/remove", campaign.RemoveCampaign)

	admin := handlers.NewAdminHandler(adminService)
	adminAPI := api.Group("/admin", authMiddleware.AdminMiddleware())
	adminAPI.Get("/users", admin.ListUsers)
	adminAPI.Post("/users/credits", admin.GrantCredits)
	adminAPI.Post("/users/remove", admin.RemoveUser)

	// cron jobs
	reclaimJob := job.NewCampaignReclaimJob(campaignRepo, creditService)

	c := cron.New()
	c.AddFunc("@every 00h10m00s", reclaimJob.ReclaimStuckCampaigns)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypeGenerateCampaign, queueW.HandleGenerateCampaignTask)
		mux.HandleFunc(queue.TaskTypePublishPost, queueW.HandlePublishPostTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
