package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "golang.org/x/sync/errgroup"
  "github.com/soulsetjourneys/soulset-backend/internal/logger"
  "github.com/soulsetjourneys/soulset-backend/internal/normalization"
  "github.com/soulsetjourneys/soulset-backend/internal/services"
)

const maxInputRunes = 4000

type DualityHandler struct {
  logger             *logger.Logger
  reflectionService  services.ReflectionService
  avatarService      services.AvatarService
  personalityService services.PersonalityService
  recorder           services.SessionRecorder
  guard              *InflightGuard
}

func NewDualityHandler(
  log *logger.Logger,
  reflectionService services.ReflectionService,
  avatarService services.AvatarService,
  personalityService services.PersonalityService,
  recorder services.SessionRecorder,
  guard *InflightGuard,
) *DualityHandler {
  return &DualityHandler{
    logger:             log.With("handler", "DualityHandler"),
    reflectionService:  reflectionService,
    avatarService:      avatarService,
    personalityService: personalityService,
    recorder:           recorder,
    guard:              guard,
  }
}

func (dh *DualityHandler) Analyze(c *gin.Context) {
  var req struct {
    Text          string    `json:"text"`
    Traits        []string  `json:"traits"`
    Lang          string    `json:"lang"`
    ClientID      string    `json:"clientId"`
    IncludeAvatar bool      `json:"includeAvatar"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }

  text := normalization.ClampRunes(normalization.ParseFreeText(req.Text), maxInputRunes)
  if text == "" {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Texte manquant pour l'analyse."})
    return
  }
  clientID := clientIDFrom(c, req.ClientID)
  if clientID == "" {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Missing clientId"})
    return
  }

  if !dh.guard.TryAcquire(clientID) {
    c.JSON(http.StatusTooManyRequests, gin.H{"error": "analysis already in progress"})
    return
  }
  defer dh.guard.Release(clientID)

  ctx := c.Request.Context()

  var reflRes services.ReflectionResult
  var avatarRes services.AvatarResult

  g, gctx := errgroup.WithContext(ctx)
  g.Go(func() error {
    var err error
    reflRes, err = dh.reflectionService.RequestReflection(gctx, services.ReflectionInput{
      ClientID: clientID,
      Text:     text,
      Traits:   req.Traits,
      Lang:     req.Lang,
    })
    return err
  })
  if req.IncludeAvatar {
    g.Go(func() error {
      var err error
      avatarRes, err = dh.avatarService.RequestAvatar(gctx, services.AvatarInput{
        ClientID: clientID,
        Text:     text,
        Traits:   req.Traits,
        Lang:     req.Lang,
      })
      return err
    })
  }
  if err := g.Wait(); err != nil {
    dh.logger.Error("duality analysis failed", "clientID", clientID, "error", err)
    c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error in /api/duality."})
    return
  }

  sessionCount, card, err := dh.personalityService.CompleteSession(ctx, clientID, reflRes.Category, reflRes.Locale)
  if err != nil {
    dh.logger.Warn("session completion bookkeeping failed", "clientID", clientID, "error", err)
  }

  userID := userIDFrom(c)
  go dh.recorder.Record(services.SessionRecord{
    ClientID:  clientID,
    UserID:    userID,
    Lang:      string(reflRes.Locale),
    InputText: text,
    Traits:    req.Traits,
    Future:    reflRes.Future,
    Shadow:    reflRes.Shadow,
    AvatarURL: avatarRes.URL,
  })

  resp := gin.H{
    "future":       reflRes.Future,
    "shadow":       reflRes.Shadow,
    "category":     reflRes.Category,
    "source":       reflRes.Source,
    "sessionCount": sessionCount,
  }
  if req.IncludeAvatar {
    resp["avatarUrl"] = avatarRes.URL
  } else {
    resp["avatarUrl"] = nil
  }
  if card != "" {
    resp["personalityCard"] = card
  }
  c.JSON(http.StatusOK, resp)
}
