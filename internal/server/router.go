package server

import (
  "os"
  "strings"

  "github.com/gin-gonic/gin"
  "github.com/gin-contrib/cors"
  "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
  "github.com/soulsetjourneys/soulset-backend/internal/handlers"
  "github.com/soulsetjourneys/soulset-backend/internal/middleware"
)

type RouterConfig struct {
  AuthHandler       *handlers.AuthHandler
  AuthMiddleware    *middleware.AuthMiddleware
  DualityHandler    *handlers.DualityHandler
  SoulsetHandler    *handlers.SoulsetHandler
  AvatarHandler     *handlers.AvatarHandler
  TraitsHandler     *handlers.TraitsHandler
  MoodHandler       *handlers.MoodHandler
  SSEHandler        *handlers.SSEHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  allowOrigins := []string{
    "http://localhost:80",
    "http://localhost:3000",
  }
  if extra := strings.TrimSpace(os.Getenv("CORS_ALLOW_ORIGINS")); extra != "" {
    allowOrigins = append(allowOrigins, strings.Split(extra, ",")...)
  }

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins:     allowOrigins,
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-Client-ID"},
    AllowCredentials: true,
  }))

  router.Use(otelgin.Middleware("soulset-backend"))
  router.Use(middleware.AttachClientID())

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", handlers.HealthCheck)

  api := router.Group("/api")
  api.Use(cfg.AuthMiddleware.OptionalAuth())
  {
    // Auth
    api.POST("/register", cfg.AuthHandler.Register)
    api.POST("/login", cfg.AuthHandler.Login)

    // Reflection
    api.POST("/duality", cfg.DualityHandler.Analyze)
    api.POST("/soulset", cfg.SoulsetHandler.Reflect)
    api.POST("/avatar", cfg.AvatarHandler.Generate)

    // Traits + personality card
    api.GET("/traits", cfg.TraitsHandler.List)
    api.POST("/traits/toggle", cfg.TraitsHandler.Toggle)
    api.GET("/personality-card", cfg.TraitsHandler.Card)

    // Mood
    api.POST("/mood", cfg.MoodHandler.Save)
    api.GET("/moods", cfg.MoodHandler.Window)
    api.POST("/mood-summary", cfg.MoodHandler.Summary)
    api.GET("/mood-chart.png", cfg.MoodHandler.Chart)

    // SSE
    api.GET("/sse/stream", cfg.SSEHandler.Stream)
  }

// ===============
// || Protected ||
// ===============
  protected := router.Group("/api")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  protected.POST("/refresh", cfg.AuthHandler.Refresh)
  protected.POST("/logout", cfg.AuthHandler.Logout)

  return router
}
