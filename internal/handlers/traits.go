package handlers

import (
  "errors"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/soulsetjourneys/soulset-backend/internal/logger"
  "github.com/soulsetjourneys/soulset-backend/internal/reflection"
  "github.com/soulsetjourneys/soulset-backend/internal/services"
)

type TraitsHandler struct {
  logger             *logger.Logger
  personalityService services.PersonalityService
}

func NewTraitsHandler(log *logger.Logger, personalityService services.PersonalityService) *TraitsHandler {
  return &TraitsHandler{
    logger:             log.With("handler", "TraitsHandler"),
    personalityService: personalityService,
  }
}

// List returns the trait catalog with localized labels plus the
// client's current selection. The lang query carries an explicit
// locale value, not a browser preference tag.
func (th *TraitsHandler) List(c *gin.Context) {
  loc := reflection.ParseLocale(c.Query("lang"))

  catalog := th.personalityService.Catalog()
  traits := make([]gin.H, 0, len(catalog.Traits()))
  for _, tr := range catalog.Traits() {
    traits = append(traits, gin.H{"id": tr.ID, "label": tr.Label(loc)})
  }

  selected := []string{}
  if clientID := clientIDFrom(c, c.Query("clientId")); clientID != "" {
    sel, err := th.personalityService.SelectedTraits(c.Request.Context(), clientID)
    if err != nil {
      th.logger.Warn("failed to load trait selection", "clientID", clientID, "error", err)
    } else if sel != nil {
      selected = sel
    }
  }

  c.JSON(http.StatusOK, gin.H{
    "traits":    traits,
    "selected":  selected,
    "maxTraits": reflection.MaxTraits,
  })
}

func (th *TraitsHandler) Toggle(c *gin.Context) {
  var req struct {
    ID       string `json:"id"`
    ClientID string `json:"clientId"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  clientID := clientIDFrom(c, req.ClientID)
  if clientID == "" {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Missing clientId"})
    return
  }
  if req.ID == "" {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Missing trait id"})
    return
  }

  selected, err := th.personalityService.ToggleTrait(c.Request.Context(), clientID, req.ID)
  if err != nil {
    if errors.Is(err, services.ErrUnknownTrait) {
      c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
      return
    }
    th.logger.Error("trait toggle failed", "clientID", clientID, "error", err)
    c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to toggle trait"})
    return
  }
  c.JSON(http.StatusOK, gin.H{"selected": selected, "maxTraits": reflection.MaxTraits})
}

// Card returns the cached personality card for the client, if one has
// been earned.
func (th *TraitsHandler) Card(c *gin.Context) {
  clientID := clientIDFrom(c, c.Query("clientId"))
  if clientID == "" {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Missing clientId"})
    return
  }
  card, err := th.personalityService.Card(c.Request.Context(), clientID)
  if err != nil {
    th.logger.Error("failed to load personality card", "clientID", clientID, "error", err)
    c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load personality card"})
    return
  }
  c.JSON(http.StatusOK, gin.H{"card": card, "hasCard": card != ""})
}
