package router

import (
	"time"

	"github.com/duet-dev/duet/internal/handlers"
	"github.com/duet-dev/duet/internal/middleware"
	"github.com/duet-dev/duet/internal/types"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws", middleware.AuthMiddleware(), handlers.WebSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.CreateUser)
			auth.POST("/login", handlers.LoginUser)
			auth.POST("/logout", handlers.LogoutUser)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.DELETE("/me", middleware.AuthMiddleware(), handlers.DeleteUser)
		}

		profile := api.Group("/profile", middleware.AuthMiddleware())
		{
			profile.GET("", handlers.GetProfile)
			profile.PUT("/theme", handlers.UpdateTheme)
		}

		pairing := api.Group("/pairing", middleware.AuthMiddleware())
		{
			pairing.POST("/invite-code", handlers.GenerateInviteCode)
			pairing.POST("/join", handlers.JoinRelationship)
		}

		entries := api.Group("/entries", middleware.AuthMiddleware())
		{
			entries.POST("", handlers.CreateEntry)
			entries.GET("", handlers.ListEntries)
			entries.GET("/:entry_id", handlers.GetEntry)
			entries.PATCH("/:entry_id", handlers.UpdateEntry)
			entries.DELETE("/:entry_id", handlers.DeleteEntry)
		}
	}

	return r
}
