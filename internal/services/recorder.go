package services

import (
  "context"
  "encoding/json"
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"

  "github.com/soulsetjourneys/soulset-backend/internal/logger"
  "github.com/soulsetjourneys/soulset-backend/internal/repos"
  "github.com/soulsetjourneys/soulset-backend/internal/types"
)

type SessionRecord struct {
  ClientID  string
  UserID    *uuid.UUID
  Lang      string
  InputText string
  Traits    []string
  Mood      *int
  Future    string
  Shadow    string
  Quote     string
  AvatarURL string
}

// SessionRecorder persists completed sessions. Recording is best
// effort: the user already has their reflection on screen, so a failed
// insert is logged and dropped rather than turned into a response
// error. Handlers call Record from a goroutine to keep it off the
// request path.
type SessionRecorder interface {
  Record(rec SessionRecord)
  History(ctx context.Context, clientID string, limit int) ([]*types.SoulsetSession, error)
}

type sessionRecorder struct {
  log         *logger.Logger
  sessionRepo repos.SoulsetSessionRepo
  timeout     time.Duration
}

// NewSessionRecorder builds a recorder over the session repo. A nil
// repo disables persistence entirely, which is the mode used when no
// database is configured.
func NewSessionRecorder(log *logger.Logger, sessionRepo repos.SoulsetSessionRepo) SessionRecorder {
  return &sessionRecorder{
    log:         log.With("service", "SessionRecorder"),
    sessionRepo: sessionRepo,
    timeout:     10 * time.Second,
  }
}

func (s *sessionRecorder) Record(rec SessionRecord) {
  if s.sessionRepo == nil {
    return
  }

  traits := rec.Traits
  if traits == nil {
    traits = []string{}
  }
  traitsJSON, err := json.Marshal(traits)
  if err != nil {
    s.log.Warn("session record dropped: traits encode", "clientID", rec.ClientID, "error", err)
    return
  }

  row := &types.SoulsetSession{
    ClientID:  rec.ClientID,
    UserID:    rec.UserID,
    Lang:      rec.Lang,
    InputText: rec.InputText,
    Traits:    datatypes.JSON(traitsJSON),
    Mood:      rec.Mood,
    Future:    rec.Future,
    Shadow:    rec.Shadow,
    Quote:     rec.Quote,
    AvatarURL: rec.AvatarURL,
  }

  ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
  defer cancel()
  if _, err := s.sessionRepo.Create(ctx, nil, []*types.SoulsetSession{row}); err != nil {
    s.log.Warn("session record dropped", "clientID", rec.ClientID, "error", err)
  }
}

func (s *sessionRecorder) History(ctx context.Context, clientID string, limit int) ([]*types.SoulsetSession, error) {
  if s.sessionRepo == nil {
    return []*types.SoulsetSession{}, nil
  }
  return s.sessionRepo.GetRecentByClientID(ctx, nil, clientID, limit)
}
