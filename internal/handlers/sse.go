package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/soulsetjourneys/soulset-backend/internal/logger"
  "github.com/soulsetjourneys/soulset-backend/internal/requestdata"
  "github.com/soulsetjourneys/soulset-backend/internal/sse"
)

type SSEHandler struct {
  logger *logger.Logger
  hub    *sse.SSEHub
}

func NewSSEHandler(log *logger.Logger, hub *sse.SSEHub) *SSEHandler {
  return &SSEHandler{
    logger: log.With("handler", "SSEHandler"),
    hub:    hub,
  }
}

// Stream subscribes the caller to its mood and session channels and
// holds the connection open. Signed-in callers additionally join the
// account-wide channels so saves from their other devices arrive too.
func (sh *SSEHandler) Stream(c *gin.Context) {
  clientID := clientIDFrom(c, c.Query("clientId"))
  if clientID == "" {
    c.JSON(http.StatusBadRequest, gin.H{"error": "Missing clientId"})
    return
  }

  client := sh.hub.NewSSEClient(clientID)
  sh.hub.AddChannel(client, sse.MoodChannel(clientID))
  sh.hub.AddChannel(client, sse.SessionChannel(clientID))
  if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil && rd.UserID != uuid.Nil {
    key := rd.UserID.String()
    sh.hub.AddChannel(client, sse.MoodChannel(key))
    sh.hub.AddChannel(client, sse.SessionChannel(key))
  }
  defer sh.hub.CloseClient(client)

  sh.hub.ServeHTTP(c.Writer, c.Request, client)
}
