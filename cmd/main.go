package main

import (
  "context"
  "fmt"
  "os"
  "time"
  "github.com/soulsetjourneys/soulset-backend/internal/logger"
  "github.com/soulsetjourneys/soulset-backend/internal/utils"
  "github.com/soulsetjourneys/soulset-backend/internal/clientstate"
  "github.com/soulsetjourneys/soulset-backend/internal/db"
  "github.com/soulsetjourneys/soulset-backend/internal/observability"
  "github.com/soulsetjourneys/soulset-backend/internal/reflection"
  "github.com/soulsetjourneys/soulset-backend/internal/repos"
  "github.com/soulsetjourneys/soulset-backend/internal/services"
  "github.com/soulsetjourneys/soulset-backend/internal/handlers"
  "github.com/soulsetjourneys/soulset-backend/internal/middleware"
  "github.com/soulsetjourneys/soulset-backend/internal/server"
  "github.com/soulsetjourneys/soulset-backend/internal/sse"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
  refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)

  // Tracing
  otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
    ServiceName: "soulset-backend",
    Environment: utils.GetEnv("APP_ENV", "development", log),
    Version:     utils.GetEnv("APP_VERSION", "dev", log),
  })
  if otelShutdown != nil {
    defer func() {
      ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
      defer cancel()
      _ = otelShutdown(ctx)
    }()
  }

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Error("Postgres auto migration failed", "error", err)
    os.Exit(1)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  userTokenRepo := repos.NewUserTokenRepo(thePG, log)
  sessionRepo := repos.NewSoulsetSessionRepo(thePG, log)
  moodLogRepo := repos.NewMoodLogRepo(thePG, log)

  // Client state (Redis when configured, in-process otherwise)
  store, err := clientstate.NewRedisStore(log)
  if err != nil {
    log.Warn("Redis unavailable; using in-memory client state", "error", err)
    store = clientstate.NewMemoryStore()
  }
  state := clientstate.NewState(store)

  // Trait catalog
  catalog := reflection.DefaultTraitCatalog()
  if path := os.Getenv("TRAIT_CATALOG_PATH"); path != "" {
    loaded, cErr := reflection.LoadTraitCatalog(path)
    if cErr != nil {
      log.Error("Could not load trait catalog", "path", path, "error", cErr)
      os.Exit(1)
    }
    catalog = loaded
  }

  // SSE
  log.Info("Setting up SSE hub now...")
  sseHub := sse.NewSSEHub(log)

  // Services
  log.Info("Setting up Services from main...")
  groqClient := services.NewGroqClient(log)
  falClient := services.NewFalClient(log)
  reflectionService := services.NewReflectionService(log, groqClient, reflection.NewGenerator(nil))
  avatarService := services.NewAvatarService(log, falClient)
  personalityService := services.NewPersonalityService(log, state, catalog, sseHub)
  recorder := services.NewSessionRecorder(log, sessionRepo)
  moodService := services.NewMoodService(log, state, moodLogRepo, sessionRepo, sseHub)
  chartService, err := services.NewChartService(log)
  if err != nil {
    log.Error("Could not init ChartService", "error", err)
    os.Exit(1)
  }
  authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)

  // Handlers
  log.Info("Setting up handlers from main...")
  guard := handlers.NewInflightGuard()
  authHandler := handlers.NewAuthHandler(authService)
  dualityHandler := handlers.NewDualityHandler(log, reflectionService, avatarService, personalityService, recorder, guard)
  soulsetHandler := handlers.NewSoulsetHandler(log, reflectionService, moodService, recorder, guard)
  avatarHandler := handlers.NewAvatarHandler(log, avatarService)
  traitsHandler := handlers.NewTraitsHandler(log, personalityService)
  moodHandler := handlers.NewMoodHandler(log, moodService, chartService)
  sseHandler := handlers.NewSSEHandler(log, sseHub)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:    authHandler,
    AuthMiddleware: authMiddleware,
    DualityHandler: dualityHandler,
    SoulsetHandler: soulsetHandler,
    AvatarHandler:  avatarHandler,
    TraitsHandler:  traitsHandler,
    MoodHandler:    moodHandler,
    SSEHandler:     sseHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Warn("Server failed", "error", err)
  }
}
