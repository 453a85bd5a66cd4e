package main

import (
	"fmt"
	"math/rand"
	"time"

	"quizarena/config"
	"quizarena/handlers"
	"quizarena/middleware"
	"quizarena/models"
	"quizarena/pkg/logger"
	"quizarena/routes"
	"quizarena/services"
	"quizarena/sessions"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	logger.Init(cfg.LogLevel)
	defer logger.Sync()

	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.QuizQuestion{},
		&models.Answer{},
		&models.GameSession{},
		&models.PlayerScore{},
		&models.PlayerAnswer{},
	); err != nil {
		logger.Fatal("Failed to migrate database", err)
	}

	redisClient := config.InitRedis(cfg)
	sessionStore := sessions.NewRedisStore(redisClient, cfg.SessionTTL())

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	questionService := services.NewQuestionService(db)
	generator := services.NewGenerator(cfg.GeneratorURL, db)
	progressService := services.NewProgressService(questionService, generator, rng)
	matchService := services.NewMatchService(questionService, rng, cfg.MaxPlayers)
	authService := services.NewAuthService(services.NewGormUserStore(db), cfg.JWTSecret)
	recordService := services.NewRecordService(db)

	webHandler := handlers.NewWebHandler(questionService, progressService, matchService, authService, recordService)
	authHandler := handlers.NewAuthHandler(authService)
	questionHandler := handlers.NewQuestionHandler(questionService)
	recordHandler := handlers.NewRecordHandler(recordService)

	r := gin.Default()
	r.LoadHTMLGlob("templates/*.html")
	r.Use(middleware.CORS())
	r.Use(middleware.Session(sessionStore))

	routes.SetupRoutes(r, webHandler, authHandler, questionHandler, recordHandler, cfg.JWTSecret)

	addr := fmt.Sprintf("%s:%s", cfg.BindAddress, cfg.Port)
	logger.Info("Starting server", "address", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatal("Failed to start server", err)
	}
}
