package services

import (
  "context"
  "time"

  "github.com/google/uuid"

  "github.com/soulsetjourneys/soulset-backend/internal/clientstate"
  "github.com/soulsetjourneys/soulset-backend/internal/logger"
  "github.com/soulsetjourneys/soulset-backend/internal/moodlog"
  "github.com/soulsetjourneys/soulset-backend/internal/normalization"
  "github.com/soulsetjourneys/soulset-backend/internal/repos"
  "github.com/soulsetjourneys/soulset-backend/internal/sse"
  "github.com/soulsetjourneys/soulset-backend/internal/types"
)

const moodSummaryLimit = 30

// Notes are capped at the mood_log column width no matter which
// endpoint the entry came in through.
const maxMoodNoteRunes = 255

type MoodPoint struct {
  Date time.Time `json:"date"`
  Mood int       `json:"mood"`
}

type MoodSummary struct {
  HasData     bool        `json:"hasData"`
  Points      []MoodPoint `json:"points"`
  LastMood    int         `json:"lastMood,omitempty"`
  AverageMood float64     `json:"averageMood,omitempty"`
  Trend       string      `json:"trend,omitempty"`
}

type MoodService interface {
  SaveMood(ctx context.Context, clientID string, userID *uuid.UUID, level int, note string) (moodlog.Entry, error)
  Window(ctx context.Context, clientID string, userID *uuid.UUID) ([]moodlog.Entry, moodlog.Stats, error)
  Summary(ctx context.Context, clientID string, userID *uuid.UUID) (MoodSummary, error)
}

type moodService struct {
  log         *logger.Logger
  state       *clientstate.State
  moodRepo    repos.MoodLogRepo
  sessionRepo repos.SoulsetSessionRepo
  hub         *sse.SSEHub
}

func NewMoodService(log *logger.Logger, state *clientstate.State, moodRepo repos.MoodLogRepo, sessionRepo repos.SoulsetSessionRepo, hub *sse.SSEHub) MoodService {
  return &moodService{
    log:         log.With("service", "MoodService"),
    state:       state,
    moodRepo:    moodRepo,
    sessionRepo: sessionRepo,
    hub:         hub,
  }
}

func (s *moodService) loadWindow(ctx context.Context, clientID string) (*moodlog.Window, error) {
  var entries []moodlog.Entry
  if err := s.state.Moods(ctx, clientID, &entries); err != nil {
    return nil, err
  }
  w := moodlog.NewWindow(moodlog.DefaultCap)
  w.Replace(entries)
  return w, nil
}

// moodKey picks the broadcast identity: signed-in traffic converges on
// the user id so every device of the same account shares one channel,
// anonymous traffic stays on the device's client id.
func moodKey(clientID string, userID *uuid.UUID) string {
  if userID != nil {
    return userID.String()
  }
  return clientID
}

// SaveMood clamps the level, truncates the note, prepends the entry to
// the client's bounded window, and for signed-in users also persists a
// durable row under the same entry id. The durable insert is best
// effort.
func (s *moodService) SaveMood(ctx context.Context, clientID string, userID *uuid.UUID, level int, note string) (moodlog.Entry, error) {
  note = normalization.ClampRunes(note, maxMoodNoteRunes)
  entryID := uuid.New()
  entry := moodlog.Entry{
    ID:        entryID.String(),
    CreatedAt: time.Now().UTC(),
    Level:     moodlog.ClampLevel(level),
    Note:      note,
  }

  w, err := s.loadWindow(ctx, clientID)
  if err != nil {
    return moodlog.Entry{}, err
  }
  w.Append(entry)
  if err := s.state.SaveMoods(ctx, clientID, w.List()); err != nil {
    return moodlog.Entry{}, err
  }

  if s.moodRepo != nil && userID != nil {
    // The row shares the window entry's id so cross-device merges can
    // recognize entries this device already has.
    row := &types.MoodLog{
      ID:       entryID,
      UserID:   *userID,
      ClientID: clientID,
      Level:    entry.Level,
      Note:     note,
    }
    if _, err := s.moodRepo.Create(ctx, nil, []*types.MoodLog{row}); err != nil {
      s.log.Warn("mood log insert dropped", "clientID", clientID, "error", err)
    }
  }

  if s.hub != nil {
    s.hub.Broadcast(sse.SSEMessage{
      Channel: sse.MoodChannel(moodKey(clientID, userID)),
      Event:   sse.SSEEventMoodSaved,
      Data:    entry,
    })
  }
  return entry, nil
}

// Window returns the device's rolling window. For signed-in users the
// durable rows written by the account's other devices are folded in
// first, deduped by entry id, and the merged window is written back so
// later reads see it.
func (s *moodService) Window(ctx context.Context, clientID string, userID *uuid.UUID) ([]moodlog.Entry, moodlog.Stats, error) {
  w, err := s.loadWindow(ctx, clientID)
  if err != nil {
    return nil, moodlog.Stats{}, err
  }

  if s.moodRepo != nil && userID != nil {
    rows, err := s.moodRepo.GetRecentByUserID(ctx, nil, *userID, moodlog.DefaultCap)
    if err != nil {
      s.log.Warn("cross-device mood merge skipped", "clientID", clientID, "error", err)
    } else {
      merged := false
      // Rows arrive newest first; inserting oldest first keeps the
      // window ordered.
      for i := len(rows) - 1; i >= 0; i-- {
        e := moodlog.Entry{
          ID:        rows[i].ID.String(),
          CreatedAt: rows[i].CreatedAt,
          Level:     rows[i].Level,
          Note:      rows[i].Note,
        }
        if w.MergeInsert(e) {
          merged = true
        }
      }
      if merged {
        if err := s.state.SaveMoods(ctx, clientID, w.List()); err != nil {
          s.log.Warn("merged mood window not persisted", "clientID", clientID, "error", err)
        }
      }
    }
  }

  return w.List(), w.ComputeStats(), nil
}

// Summary aggregates recent sessions into chart points, oldest first.
// Signed-in users aggregate across all their devices; anonymous clients
// see only their own. Sessions without a recorded mood count as the
// neutral midpoint.
func (s *moodService) Summary(ctx context.Context, clientID string, userID *uuid.UUID) (MoodSummary, error) {
  if s.sessionRepo == nil {
    return MoodSummary{HasData: false, Points: []MoodPoint{}}, nil
  }
  var rows []*types.SoulsetSession
  var err error
  if userID != nil {
    rows, err = s.sessionRepo.GetRecentByUserID(ctx, nil, *userID, moodSummaryLimit)
  } else {
    rows, err = s.sessionRepo.GetRecentByClientID(ctx, nil, clientID, moodSummaryLimit)
  }
  if err != nil {
    return MoodSummary{}, err
  }
  if len(rows) == 0 {
    return MoodSummary{HasData: false, Points: []MoodPoint{}}, nil
  }

  // Rows arrive newest first; the chart wants oldest first.
  points := make([]MoodPoint, 0, len(rows))
  for i := len(rows) - 1; i >= 0; i-- {
    mood := 3
    if rows[i].Mood != nil {
      mood = *rows[i].Mood
    }
    points = append(points, MoodPoint{Date: rows[i].CreatedAt, Mood: mood})
  }

  sum := 0
  for _, p := range points {
    sum += p.Mood
  }
  first := points[0]
  last := points[len(points)-1]
  trend := "stable"
  if last.Mood > first.Mood {
    trend = "up"
  } else if last.Mood < first.Mood {
    trend = "down"
  }

  return MoodSummary{
    HasData:     true,
    Points:      points,
    LastMood:    last.Mood,
    AverageMood: float64(sum) / float64(len(points)),
    Trend:       trend,
  }, nil
}
