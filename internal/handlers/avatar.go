package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/soulsetjourneys/soulset-backend/internal/logger"
  "github.com/soulsetjourneys/soulset-backend/internal/normalization"
  "github.com/soulsetjourneys/soulset-backend/internal/services"
)

type AvatarHandler struct {
  logger        *logger.Logger
  avatarService services.AvatarService
}

func NewAvatarHandler(log *logger.Logger, avatarService services.AvatarService) *AvatarHandler {
  return &AvatarHandler{
    logger:        log.With("handler", "AvatarHandler"),
    avatarService: avatarService,
  }
}

func (ah *AvatarHandler) Generate(c *gin.Context) {
  var req struct {
    Text     string   `json:"text"`
    Traits   []string `json:"traits"`
    Lang     string   `json:"lang"`
    ClientID string   `json:"clientId"`
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

  res, err := ah.avatarService.RequestAvatar(c.Request.Context(), services.AvatarInput{
    ClientID: clientIDFrom(c, req.ClientID),
    Text:     text,
    Traits:   req.Traits,
    Lang:     req.Lang,
  })
  if err != nil {
    ah.logger.Error("avatar generation failed", "error", err)
    c.JSON(http.StatusInternalServerError, gin.H{"error": "Avatar generation failed."})
    return
  }
  c.JSON(http.StatusOK, gin.H{"avatarUrl": res.URL, "source": res.Source})
}
