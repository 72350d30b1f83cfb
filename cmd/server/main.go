package main

import (
	"log"

	"github.com/WildHonestFur/Quantix-Arena/internal/config"
	"github.com/WildHonestFur/Quantix-Arena/internal/database"
	"github.com/WildHonestFur/Quantix-Arena/internal/handlers"
	"github.com/WildHonestFur/Quantix-Arena/internal/middleware"
	"github.com/WildHonestFur/Quantix-Arena/internal/services"
	"github.com/WildHonestFur/Quantix-Arena/internal/session"
	"github.com/WildHonestFur/Quantix-Arena/internal/ws"

	_ "github.com/WildHonestFur/Quantix-Arena/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Quantix Arena API
// @version         1.0
// @description     Timed knowledge competitions: anonymous participant identity, deadline gating, integrity monitoring and at-most-once submission
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	hub := ws.NewHub()
	sessions := session.NewManager(cfg.CookieSecret)

	authService := services.NewAuthService(db, cfg.JWTSecret)
	identityService := services.NewIdentityService(db)
	competitionService := services.NewCompetitionService(db)
	clockService := services.NewClockService(db)
	integrityService := services.NewIntegrityService(db)
	submissionService := services.NewSubmissionService(db)
	scoringService := services.NewScoringService(db)
	reviewService := services.NewReviewService(db, scoringService)

	authHandler := handlers.NewAuthHandler(authService)
	competitionHandler := handlers.NewCompetitionHandler(competitionService, clockService, sessions)
	identityHandler := handlers.NewIdentityHandler(identityService, competitionService, sessions)
	examHandler := handlers.NewExamHandler(competitionService, clockService, integrityService, submissionService, hub)
	resultsHandler := handlers.NewResultsHandler(identityService, competitionService, scoringService, sessions)
	hostHandler := handlers.NewHostHandler(reviewService, scoringService)
	monitorHandler := handlers.NewMonitorHandler(hub, authService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/competitions/:id/monitor", monitorHandler.HandleMonitor)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		competitions := api.Group("/competitions")
		{
			competitions.POST("/validate", competitionHandler.ValidateCode)
			competitions.GET("/:id/fields", competitionHandler.Fields)
			competitions.GET("/:id/window", competitionHandler.Window)
			competitions.POST("/:id/verify", identityHandler.Verify)
			competitions.POST("/:id/register", identityHandler.Register)
		}

		exam := api.Group("/exam")
		exam.Use(middleware.ParticipantSession(sessions))
		{
			exam.GET("/content", examHandler.Content)
			exam.POST("/submit", examHandler.Submit)
			exam.POST("/strike", examHandler.Strike)
			exam.POST("/leave", examHandler.Leave)
		}

		results := api.Group("/results")
		results.Use(middleware.CompetitionSession(sessions))
		{
			results.POST("/verify", resultsHandler.Verify)

			verified := results.Group("")
			verified.Use(middleware.ParticipantSession(sessions))
			{
				verified.GET("/score", resultsHandler.Score)
				verified.GET("/answers", resultsHandler.Answers)
			}
		}

		host := api.Group("/host")
		host.Use(middleware.HostAuth(authService))
		{
			host.GET("/competitions/:id/participants", hostHandler.Participants)
			host.GET("/competitions/:id/participants/:pid/answers", hostHandler.ParticipantAnswers)
		}
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
