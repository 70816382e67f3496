package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/soulsetjourneys/soulset-backend/internal/logger"
  "github.com/soulsetjourneys/soulset-backend/internal/normalization"
  "github.com/soulsetjourneys/soulset-backend/internal/services"
)

type MoodHandler struct {
  logger       *logger.Logger
  moodService  services.MoodService
  chartService services.ChartService
}

func NewMoodHandler(log *logger.Logger, moodService services.MoodService, chartService services.ChartService) *MoodHandler {
  return &MoodHandler{
    logger:       log.With("handler", "MoodHandler"),
    moodService:  moodService,
    chartService: chartService,
  }
}

func (mh *MoodHandler) Save(c *gin.Context) {
  var req struct {
    Level    int    `json:"level"`
    Note     string `json:"note"`
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
  if req.Level == 0 {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Missing mood level"})
    return
  }

  userID := userIDFrom(c)

  note := normalization.ClampRunes(normalization.ParseFreeText(req.Note), 255)
  entry, err := mh.moodService.SaveMood(c.Request.Context(), clientID, userID, req.Level, note)
  if err != nil {
    mh.logger.Error("mood save failed", "clientID", clientID, "error", err)
    c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save mood"})
    return
  }
  c.JSON(http.StatusOK, gin.H{"entry": entry})
}

func (mh *MoodHandler) Window(c *gin.Context) {
  clientID := clientIDFrom(c, c.Query("clientId"))
  if clientID == "" {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Missing clientId"})
    return
  }
  entries, stats, err := mh.moodService.Window(c.Request.Context(), clientID, userIDFrom(c))
  if err != nil {
    mh.logger.Error("mood window load failed", "clientID", clientID, "error", err)
    c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load moods"})
    return
  }
  c.JSON(http.StatusOK, gin.H{"moods": entries, "stats": stats})
}

func (mh *MoodHandler) Summary(c *gin.Context) {
  var req struct {
    ClientID string `json:"clientId"`
  }
  // Body is optional when the header carries the client id.
  _ = c.ShouldBindJSON(&req)

  clientID := clientIDFrom(c, req.ClientID)
  if clientID == "" {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Missing clientId"})
    return
  }
  sum, err := mh.moodService.Summary(c.Request.Context(), clientID, userIDFrom(c))
  if err != nil {
    mh.logger.Error("mood summary failed", "clientID", clientID, "error", err)
    c.JSON(http.StatusInternalServerError, gin.H{"error": "mood summary query error"})
    return
  }
  c.JSON(http.StatusOK, sum)
}

// Chart renders the trend as a PNG, like the dashboard's export.
func (mh *MoodHandler) Chart(c *gin.Context) {
  clientID := clientIDFrom(c, c.Query("clientId"))
  if clientID == "" {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Missing clientId"})
    return
  }
  sum, err := mh.moodService.Summary(c.Request.Context(), clientID, userIDFrom(c))
  if err != nil {
    mh.logger.Error("mood summary failed", "clientID", clientID, "error", err)
    c.JSON(http.StatusInternalServerError, gin.H{"error": "mood summary query error"})
    return
  }
  buf, err := mh.chartService.RenderTrend(sum)
  if err != nil {
    mh.logger.Error("chart render failed", "clientID", clientID, "error", err)
    c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render chart"})
    return
  }
  c.Data(http.StatusOK, "image/png", buf.Bytes())
}
