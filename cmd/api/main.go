package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"finlearn/internal/config"
	"finlearn/internal/database"
	_ "finlearn/internal/docs" // Import swagger docs
	"finlearn/internal/handlers"
	"finlearn/internal/logger"
	"finlearn/internal/market"
	"finlearn/internal/middleware"
	"finlearn/internal/progression"
	"finlearn/internal/quiz"
	"finlearn/internal/services"
	"finlearn/internal/store"
	"finlearn/internal/validator"
)

// @title           FinLearn API
// @version         1.0
// @description     FinLearn is a gamified personal-finance learning app. Budgets, savings goals, SIP investments and quizzes earn experience, levels and achievements.

// @host      localhost:8080
// @BasePath  /api/v1

const shutdownTimeout = 10 * time.Second

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnw("Failed to close database", "error", err)
		}
	}()
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Services
	db := dbManager.DB()
	activityService := services.NewActivityService(db)
	engine := progression.New(
		store.NewGormStore(db, appConfig.StateKey),
		progression.WithLocation(appConfig.Location),
		progression.WithRecorder(activityService),
	)

	var source market.Source
	if appConfig.MarketAPIURL != "" {
		source = market.NewClient(appConfig.MarketAPIURL, &http.Client{Timeout: appConfig.MarketTimeout})
	} else {
		log.Info("MARKET_API_URL not set, serving built-in market data")
	}
	marketService := market.NewService(source, market.WithCacheTTL(appConfig.MarketCacheTTL))
	if source != nil {
		refresher := market.NewRefresher(marketService, appConfig.MarketTimeout)
		if err := refresher.Register(appConfig.MarketRefreshCron); err != nil {
			return err
		}
		refresher.Start()
		defer refresher.Stop()
		go refresher.RunNow()
	}

	// Handlers
	validator.Register()
	progressHandler := handlers.NewProgressHandler(engine)
	financeHandler := handlers.NewFinanceHandler(engine, appConfig.Currency)
	quizHandler := handlers.NewQuizHandler(engine, quiz.Default())
	marketHandler := handlers.NewMarketHandler(marketService, engine)
	activityHandler := handlers.NewActivityHandler(activityService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(appConfig.CORSOrigin))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "level": engine.Profile().Level})
	})

	v1 := router.Group("/api/v1")

	v1.GET("/profile", progressHandler.GetProfile)

	progress := v1.Group("/progress")
	progress.GET("", progressHandler.GetProgress)
	progress.POST("/xp", progressHandler.GrantExperience)
	progress.POST("/activity", progressHandler.RecordActivity)
	progress.POST("/reset", progressHandler.ResetProgress)

	v1.GET("/achievements", progressHandler.GetAchievements)
	v1.POST("/achievements/:id/unlock", progressHandler.UnlockAchievement)
	v1.GET("/challenges", progressHandler.GetChallenges)
	v1.POST("/challenges/:id/complete", progressHandler.CompleteChallenge)

	budget := v1.Group("/budget")
	budget.GET("/entries", financeHandler.GetBudgetEntries)
	budget.POST("/entries", financeHandler.CreateBudgetEntry)
	budget.GET("/entries/count", financeHandler.CountBudgetEntries)
	budget.POST("/split", financeHandler.SplitBudget)

	goals := v1.Group("/goals")
	goals.GET("", financeHandler.GetGoals)
	goals.POST("", financeHandler.CreateGoal)
	goals.POST("/timeline", financeHandler.GoalTimeline)
	goals.GET("/:id", financeHandler.GetGoal)
	goals.POST("/:id/deposits", financeHandler.DepositToGoal)

	v1.GET("/investments", financeHandler.GetInvestments)
	v1.POST("/investments", financeHandler.CreateInvestment)
	v1.POST("/sip/calculate", financeHandler.CalculateSIP)
	v1.GET("/summary", financeHandler.GetSummary)

	quizRoutes := v1.Group("/quiz")
	quizRoutes.GET("/questions", quizHandler.GetQuestions)
	quizRoutes.POST("/start", quizHandler.StartQuiz)
	quizRoutes.POST("/submit", quizHandler.SubmitQuiz)

	v1.GET("/activity", activityHandler.GetActivity)
	v1.GET("/market/funds", marketHandler.GetFunds)
	v1.GET("/leaderboard", marketHandler.GetLeaderboard)

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting FinLearn server on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutdown signal received, stopping server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info("Server stopped")
	return nil
}
