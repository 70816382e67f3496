package handlers

import (
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/soulsetjourneys/soulset-backend/internal/requestdata"
)

const clientIDHeader = "X-Client-ID"

const maxClientIDLen = 255

// clientIDFrom resolves the device identity for a request: the request
// context first (set by middleware), then the header, then the body
// field the caller may have decoded. Returns "" when absent.
func clientIDFrom(c *gin.Context, bodyClientID string) string {
  if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil && rd.ClientID != "" {
    return clampClientID(rd.ClientID)
  }
  if h := c.GetHeader(clientIDHeader); h != "" {
    return clampClientID(h)
  }
  return clampClientID(bodyClientID)
}

// userIDFrom returns the authenticated user's id, or nil for anonymous
// requests.
func userIDFrom(c *gin.Context) *uuid.UUID {
  if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil && rd.UserID != uuid.Nil {
    id := rd.UserID
    return &id
  }
  return nil
}

func clampClientID(id string) string {
  if len(id) > maxClientIDLen {
    return id[:maxClientIDLen]
  }
  return id
}
