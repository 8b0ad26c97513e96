package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/nazhanhafiz/psikometrik/config"
	"github.com/nazhanhafiz/psikometrik/database"
	_ "github.com/nazhanhafiz/psikometrik/docs" // Swagger docs - auto-generated
	adminctrl "github.com/nazhanhafiz/psikometrik/internal/controller/admin"
	userctrl "github.com/nazhanhafiz/psikometrik/internal/controller/user"
	"github.com/nazhanhafiz/psikometrik/internal/logger"
	"github.com/nazhanhafiz/psikometrik/internal/middleware"
	"github.com/nazhanhafiz/psikometrik/internal/model"
	"github.com/nazhanhafiz/psikometrik/internal/repository"
	"github.com/nazhanhafiz/psikometrik/internal/service"
	"github.com/nazhanhafiz/psikometrik/internal/session"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Psikometrik Prep API
// @version 1.0
// @description Psychometric test preparation platform: document-parsed question banks, timed sessions, Teras scoring and AI feedback.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
			func() session.Store { return session.NewMemoryStore() },
		),

		// Repositories layer
		fx.Provide(
			repository.NewQuizRepository,
			repository.NewQuestionRepository,
			repository.NewAttemptRepository,
			repository.NewUserRepository,
			repository.NewTransactionRepository,
			repository.NewTicketRepository,
		),

		// Services layer
		fx.Provide(
			service.NewAdminQuizService,
			service.NewQuizService,
			service.NewSessionService,
			service.NewGeminiFeedbackService,
			service.NewBillplzService,
			service.NewSubscriptionService,
			service.NewTicketService,
			service.NewAccountService,
			func(
				quizRepo repository.QuizRepository,
				attemptRepo repository.AttemptRepository,
				sessions session.Store,
				feedback service.FeedbackService,
				db *gorm.DB,
			) service.SubmissionService {
				return service.NewSubmissionService(quizRepo, attemptRepo, sessions, feedback, db)
			},
		),

		// API controllers layer
		fx.Provide(
			adminctrl.NewAdminController,
			userctrl.NewUserController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	adminCtrl *adminctrl.AdminController,
	userCtrl *userctrl.UserController,
) {
	// Admin routes, JWT-gated with the admin role
	adminGroup := router.Group("/api/v1/admin")
	adminGroup.Use(middleware.Auth(cfg.Auth.JWTSecret), middleware.RequireAdmin())
	{
		quizzes := adminGroup.Group("/quizzes")
		quizzes.POST("/upload", adminCtrl.UploadQuizDocument)
		quizzes.POST("", adminCtrl.CreateQuiz)
		quizzes.GET("", adminCtrl.ListQuizzes)
		quizzes.GET("/:id", adminCtrl.GetQuiz)
		quizzes.PUT("/:id", adminCtrl.UpdateQuiz)
		quizzes.PATCH("/:id/active", adminCtrl.SetQuizActive)
		quizzes.DELETE("/:id", adminCtrl.DeleteQuiz)

		questions := adminGroup.Group("/questions")
		questions.PUT("/:id", adminCtrl.UpdateQuestion)
		questions.DELETE("/:id", adminCtrl.DeleteQuestion)

		adminGroup.GET("/users", adminCtrl.ListUsers)
		adminGroup.PUT("/users/:id", adminCtrl.UpdateUser)
		adminGroup.GET("/transactions", adminCtrl.ListTransactions)

		tickets := adminGroup.Group("/tickets")
		tickets.GET("", adminCtrl.ListTickets)
		tickets.POST("/:id/reply", adminCtrl.ReplyTicket)
		tickets.POST("/:id/close", adminCtrl.CloseTicket)
	}

	// Candidate routes
	userGroup := router.Group("/api/v1")
	{
		userGroup.GET("/quizzes", userCtrl.GetQuizzes)
		userGroup.GET("/quizzes/:quiz_id", userCtrl.GetQuizDetails)

		userGroup.POST("/quizzes/:quiz_id/sessions", userCtrl.StartSession)
		userGroup.GET("/sessions/:session_id", userCtrl.GetSession)
		userGroup.PUT("/sessions/:session_id/answers", userCtrl.RecordAnswers)

		userGroup.POST("/quizzes/:quiz_id/attempts", userCtrl.SubmitAttempt)
		userGroup.GET("/quizzes/:quiz_id/my-attempts", userCtrl.GetMyQuizAttempts)
		userGroup.GET("/attempts", userCtrl.GetMyAttempts)
		userGroup.GET("/attempts/:attempt_id", userCtrl.GetAttempt)
		userGroup.DELETE("/attempts", userCtrl.ClearMyAttempts)

		userGroup.POST("/payments/checkout", userCtrl.Checkout)
		userGroup.GET("/payments/redirect", userCtrl.PaymentRedirect)
		userGroup.GET("/payments/transactions", userCtrl.GetMyTransactions)

		userGroup.POST("/tickets", userCtrl.OpenTicket)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Psikometrik API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Quiz{},
		&model.Question{},
		&model.Option{},
		&model.Attempt{},
		&model.AttemptAnswer{},
		&model.AttemptTeras{},
		&model.Transaction{},
		&model.SupportTicket{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
