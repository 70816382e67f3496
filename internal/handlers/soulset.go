package handlers

import (
  "math/rand"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/soulsetjourneys/soulset-backend/internal/logger"
  "github.com/soulsetjourneys/soulset-backend/internal/moodlog"
  "github.com/soulsetjourneys/soulset-backend/internal/normalization"
  "github.com/soulsetjourneys/soulset-backend/internal/services"
)

var sunsetVideos = []string{
  "/sunset/Sunset-1V.mp4",
  "/sunset/Sunset-2V.mp4",
  "/sunset/Sunset-3V.mp4",
  "/sunset/Sunset-4V.mp4",
}

type SoulsetHandler struct {
  logger            *logger.Logger
  reflectionService services.ReflectionService
  moodService       services.MoodService
  recorder          services.SessionRecorder
  guard             *InflightGuard
}

func NewSoulsetHandler(
  log *logger.Logger,
  reflectionService services.ReflectionService,
  moodService services.MoodService,
  recorder services.SessionRecorder,
  guard *InflightGuard,
) *SoulsetHandler {
  return &SoulsetHandler{
    logger:            log.With("handler", "SoulsetHandler"),
    reflectionService: reflectionService,
    moodService:       moodService,
    recorder:          recorder,
    guard:             guard,
  }
}

func (sh *SoulsetHandler) Reflect(c *gin.Context) {
  var req struct {
    Text     string `json:"text"`
    Mood     int    `json:"mood"`
    Lang     string `json:"lang"`
    ClientID string `json:"clientId"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }

  text := normalization.ClampRunes(normalization.ParseFreeText(req.Text), maxInputRunes)
  if text == "" {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Missing 'text' in body."})
    return
  }
  clientID := clientIDFrom(c, req.ClientID)
  if clientID == "" {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Missing clientId"})
    return
  }
  mood := req.Mood
  if mood == 0 {
    mood = 3
  }
  mood = moodlog.ClampLevel(mood)

  if !sh.guard.TryAcquire(clientID) {
    c.JSON(http.StatusTooManyRequests, gin.H{"error": "reflection already in progress"})
    return
  }
  defer sh.guard.Release(clientID)

  ctx := c.Request.Context()

  res, err := sh.reflectionService.RequestMirrorQuote(ctx, services.MirrorInput{
    ClientID: clientID,
    Text:     text,
    Mood:     mood,
    Lang:     req.Lang,
  })
  if err != nil {
    sh.logger.Error("soulset reflection failed", "clientID", clientID, "error", err)
    c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error in /api/soulset."})
    return
  }

  userID := userIDFrom(c)

  if _, mErr := sh.moodService.SaveMood(ctx, clientID, userID, mood, text); mErr != nil {
    sh.logger.Warn("mood save failed", "clientID", clientID, "error", mErr)
  }

  moodVal := mood
  go sh.recorder.Record(services.SessionRecord{
    ClientID:  clientID,
    UserID:    userID,
    Lang:      string(res.Locale),
    InputText: text,
    Mood:      &moodVal,
    Quote:     res.Quote,
  })

  c.JSON(http.StatusOK, gin.H{
    "quote":    res.Quote,
    "video":    sunsetVideos[rand.Intn(len(sunsetVideos))],
    "category": res.Category,
    "source":   res.Source,
  })
}
