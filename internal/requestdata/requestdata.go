package requestdata

import (
  "context"
  "github.com/google/uuid"
)

var requestDataKey = struct{}{}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
  return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
  val := ctx.Value(requestDataKey)
  if rd, ok := val.(*RequestData); ok {
    return rd
  }
  return nil
}

// UserID is set only for authenticated requests. ClientID identifies
// the device and is present on every request that sends the header, so
// anonymous reflection sessions still have a stable identity.
type RequestData struct {
  TokenString       string
  RefreshToken      string
  UserID            uuid.UUID
  ClientID          string
}
