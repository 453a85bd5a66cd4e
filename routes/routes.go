package routes

import (
	"quizarena/handlers"
	"quizarena/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the HTML pages and the JSON API.
func SetupRoutes(
	r *gin.Engine,
	web *handlers.WebHandler,
	auth *handlers.AuthHandler,
	questions *handlers.QuestionHandler,
	records *handlers.RecordHandler,
	jwtSecret string,
) {
	// HTML pages
	r.GET("/", web.Home)

	r.GET("/register/", web.RegisterPage)
	r.POST("/register/", web.RegisterSubmit)
	r.GET("/login/", web.LoginPage)
	r.POST("/login/", web.LoginSubmit)
	r.GET("/logout/", web.Logout)

	r.GET("/offline/", web.OfflineCategories)
	r.POST("/offline/", web.OfflineCategories)
	r.GET("/offline/play/:category_id/", web.OfflinePlay)
	r.POST("/offline/play/:category_id/", web.OfflineSubmit)

	protectedPages := r.Group("/")
	protectedPages.Use(middleware.RequireUser())
	{
		protectedPages.GET("/multiplayer/setup/", web.MultiplayerSetup)
		protectedPages.POST("/multiplayer/setup/", web.MultiplayerSetupSubmit)
		protectedPages.GET("/multiplayer/", web.MultiplayerLobby)
		protectedPages.POST("/multiplayer/", web.MultiplayerLobbySubmit)
		protectedPages.GET("/multiplayer/play/", web.MultiplayerPlay)
		protectedPages.POST("/multiplayer/play/", web.MultiplayerPlaySubmit)

		protectedPages.GET("/classements/", web.Classements)
		protectedPages.GET("/profile/", web.Profile)
	}

	// JSON API
	api := r.Group("/api")
	{
		api.POST("/auth/login", auth.Login)
		api.POST("/users", auth.CreateUser)

		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(jwtSecret))
		{
			protected.GET("/auth/me", auth.Me)
			protected.POST("/auth/logout", auth.Logout)

			protected.GET("/users", auth.ListUsers)
			protected.GET("/users/:id", auth.GetUser)
			protected.PUT("/users/:id", auth.UpdateUser)
			protected.DELETE("/users/:id", auth.DeleteUser)

			protected.GET("/quiz-questions", questions.ListQuestions)
			protected.GET("/quiz-questions/:id", questions.GetQuestion)
			protected.POST("/quiz-questions", questions.CreateQuestion)
			protected.PUT("/quiz-questions/:id", questions.UpdateQuestion)
			protected.DELETE("/quiz-questions/:id", questions.DeleteQuestion)

			protected.GET("/player-scores", records.ListScores)
			protected.GET("/player-scores/:id", records.GetScore)
			protected.POST("/player-scores", records.CreateScore)
			protected.PUT("/player-scores/:id", records.UpdateScore)
			protected.DELETE("/player-scores/:id", records.DeleteScore)

			protected.GET("/player-answers", records.ListPlayerAnswers)
			protected.GET("/player-answers/:id", records.GetPlayerAnswer)
			protected.POST("/player-answers", records.CreatePlayerAnswer)
			protected.PUT("/player-answers/:id", records.UpdatePlayerAnswer)
			protected.DELETE("/player-answers/:id", records.DeletePlayerAnswer)

			protected.GET("/game-sessions", records.ListGameSessions)
			protected.GET("/game-sessions/:id", records.GetGameSession)
			protected.POST("/game-sessions", records.CreateGameSession)
			protected.PUT("/game-sessions/:id", records.UpdateGameSession)
			protected.DELETE("/game-sessions/:id", records.DeleteGameSession)
		}
	}
}
