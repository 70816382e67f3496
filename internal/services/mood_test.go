package services

import (
  "context"
  "strings"
  "sync"
  "testing"
  "time"
  "unicode/utf8"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/soulsetjourneys/soulset-backend/internal/clientstate"
  "github.com/soulsetjourneys/soulset-backend/internal/logger"
  "github.com/soulsetjourneys/soulset-backend/internal/moodlog"
  "github.com/soulsetjourneys/soulset-backend/internal/repos"
  "github.com/soulsetjourneys/soulset-backend/internal/sse"
  "github.com/soulsetjourneys/soulset-backend/internal/types"
)

type fakeMoodLogRepo struct {
  mu   sync.Mutex
  rows []*types.MoodLog
}

func (f *fakeMoodLogRepo) Create(ctx context.Context, tx *gorm.DB, logs []*types.MoodLog) ([]*types.MoodLog, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  for _, l := range logs {
    if l.CreatedAt.IsZero() {
      l.CreatedAt = time.Now().UTC()
    }
  }
  f.rows = append(f.rows, logs...)
  return logs, nil
}

func (f *fakeMoodLogRepo) GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.MoodLog, error) {
  f.mu.Lock()
  defer f.mu.Unlock()
  var out []*types.MoodLog
  for i := len(f.rows) - 1; i >= 0; i-- {
    if f.rows[i].UserID != userID {
      continue
    }
    out = append(out, f.rows[i])
    if limit > 0 && len(out) >= limit {
      break
    }
  }
  return out, nil
}

func newTestMoodService(moods repos.MoodLogRepo, sessions repos.SoulsetSessionRepo, hub *sse.SSEHub) MoodService {
  state := clientstate.NewState(clientstate.NewMemoryStore())
  return NewMoodService(logger.NewNop(), state, moods, sessions, hub)
}

func TestSaveMoodClampsAndCaps(t *testing.T) {
  ctx := context.Background()
  svc := newTestMoodService(nil, nil, nil)

  entry, err := svc.SaveMood(ctx, "c1", nil, 9, "great")
  if err != nil {
    t.Fatalf("SaveMood: %v", err)
  }
  if entry.Level != 5 {
    t.Fatalf("Level = %d, want clamped 5", entry.Level)
  }

  for i := 0; i < moodlog.DefaultCap+3; i++ {
    if _, err := svc.SaveMood(ctx, "c1", nil, 3, ""); err != nil {
      t.Fatalf("SaveMood #%d: %v", i, err)
    }
  }
  entries, stats, err := svc.Window(ctx, "c1", nil)
  if err != nil {
    t.Fatalf("Window: %v", err)
  }
  if len(entries) != moodlog.DefaultCap {
    t.Fatalf("window len = %d, want %d", len(entries), moodlog.DefaultCap)
  }
  if stats.Last != 3 {
    t.Fatalf("stats.Last = %d, want 3", stats.Last)
  }
}

func TestSaveMoodTruncatesNote(t *testing.T) {
  moodRepo := &fakeMoodLogRepo{}
  svc := newTestMoodService(moodRepo, nil, nil)
  userID := uuid.New()

  long := strings.Repeat("é", 4000)
  entry, err := svc.SaveMood(context.Background(), "c1", &userID, 3, long)
  if err != nil {
    t.Fatalf("SaveMood: %v", err)
  }
  if n := utf8.RuneCountInString(entry.Note); n != 255 {
    t.Fatalf("note stored with %d runes, want 255", n)
  }
  if len(moodRepo.rows) != 1 {
    t.Fatalf("rows = %d, want 1", len(moodRepo.rows))
  }
  if n := utf8.RuneCountInString(moodRepo.rows[0].Note); n != 255 {
    t.Fatalf("durable note has %d runes, want 255", n)
  }
}

func TestWindowEmpty(t *testing.T) {
  svc := newTestMoodService(nil, nil, nil)
  entries, stats, err := svc.Window(context.Background(), "nobody", nil)
  if err != nil {
    t.Fatalf("Window: %v", err)
  }
  if len(entries) != 0 {
    t.Fatalf("entries = %v, want empty", entries)
  }
  if stats.Trend != moodlog.TrendStable {
    t.Fatalf("empty window trend = %q, want stable", stats.Trend)
  }
}

func TestWindowMergesOtherDevices(t *testing.T) {
  ctx := context.Background()
  moodRepo := &fakeMoodLogRepo{}
  svc := newTestMoodService(moodRepo, nil, nil)
  userID := uuid.New()

  // Device A saves while signed in; the durable row carries the entry id.
  saved, err := svc.SaveMood(ctx, "device-a", &userID, 4, "from a")
  if err != nil {
    t.Fatalf("SaveMood: %v", err)
  }

  // Device B of the same account starts with an empty window and pulls
  // the account's rows in on read.
  entries, _, err := svc.Window(ctx, "device-b", &userID)
  if err != nil {
    t.Fatalf("Window: %v", err)
  }
  if len(entries) != 1 {
    t.Fatalf("device-b window = %d entries, want 1", len(entries))
  }
  if entries[0].ID != saved.ID || entries[0].Note != "from a" {
    t.Fatalf("merged entry = %+v, want the one saved on device-a", entries[0])
  }

  // Device A already holds the entry; merging again must not duplicate.
  entries, _, err = svc.Window(ctx, "device-a", &userID)
  if err != nil {
    t.Fatalf("Window: %v", err)
  }
  if len(entries) != 1 {
    t.Fatalf("device-a window = %d entries, want 1 (no duplicate)", len(entries))
  }
}

func TestSaveMoodBroadcastsOnUserChannel(t *testing.T) {
  hub := sse.NewSSEHub(logger.NewNop())
  svc := newTestMoodService(nil, nil, hub)
  userID := uuid.New()

  // A second device of the same account listens on the user channel.
  listener := hub.NewSSEClient("device-b")
  hub.AddChannel(listener, sse.MoodChannel(userID.String()))

  if _, err := svc.SaveMood(context.Background(), "device-a", &userID, 4, "hi"); err != nil {
    t.Fatalf("SaveMood: %v", err)
  }

  select {
  case msg := <-listener.Outbound:
    if msg.Event != sse.SSEEventMoodSaved {
      t.Fatalf("event = %q, want %q", msg.Event, sse.SSEEventMoodSaved)
    }
  default:
    t.Fatal("no event on the user channel; devices cannot converge")
  }
}

func TestSummaryNoData(t *testing.T) {
  svc := newTestMoodService(nil, &fakeSessionRepo{}, nil)
  sum, err := svc.Summary(context.Background(), "c1", nil)
  if err != nil {
    t.Fatalf("Summary: %v", err)
  }
  if sum.HasData {
    t.Fatal("HasData = true for empty history")
  }
  if sum.Points == nil || len(sum.Points) != 0 {
    t.Fatalf("Points = %v, want empty slice", sum.Points)
  }
}

func TestSummaryAggregates(t *testing.T) {
  repo := &fakeSessionRepo{}
  base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
  moods := []int{2, 3, 4}
  for i, m := range moods {
    mood := m
    repo.rows = append(repo.rows, &types.SoulsetSession{
      ClientID:  "c1",
      Mood:      &mood,
      CreatedAt: base.Add(time.Duration(i) * time.Hour),
    })
  }
  // One session without a recorded mood counts as the midpoint.
  repo.rows = append(repo.rows, &types.SoulsetSession{
    ClientID:  "c1",
    CreatedAt: base.Add(3 * time.Hour),
  })

  svc := newTestMoodService(nil, repo, nil)
  sum, err := svc.Summary(context.Background(), "c1", nil)
  if err != nil {
    t.Fatalf("Summary: %v", err)
  }
  if !sum.HasData {
    t.Fatal("HasData = false")
  }
  if len(sum.Points) != 4 {
    t.Fatalf("points = %d, want 4", len(sum.Points))
  }
  // Oldest first.
  if !sum.Points[0].Date.Equal(base) {
    t.Fatalf("first point at %v, want %v", sum.Points[0].Date, base)
  }
  if sum.Points[3].Mood != 3 {
    t.Fatalf("missing mood defaulted to %d, want 3", sum.Points[3].Mood)
  }
  if sum.LastMood != 3 {
    t.Fatalf("LastMood = %d, want 3", sum.LastMood)
  }
  if sum.Trend != "up" {
    t.Fatalf("Trend = %q, want up (first 2, last 3)", sum.Trend)
  }
  wantAvg := float64(2+3+4+3) / 4
  if sum.AverageMood != wantAvg {
    t.Fatalf("AverageMood = %v, want %v", sum.AverageMood, wantAvg)
  }
}

func TestSummaryAcrossDevices(t *testing.T) {
  repo := &fakeSessionRepo{}
  userID := uuid.New()
  base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
  for i, device := range []string{"device-a", "device-b"} {
    mood := i + 2
    repo.rows = append(repo.rows, &types.SoulsetSession{
      ClientID:  device,
      UserID:    &userID,
      Mood:      &mood,
      CreatedAt: base.Add(time.Duration(i) * time.Hour),
    })
  }

  svc := newTestMoodService(nil, repo, nil)
  sum, err := svc.Summary(context.Background(), "device-a", &userID)
  if err != nil {
    t.Fatalf("Summary: %v", err)
  }
  if len(sum.Points) != 2 {
    t.Fatalf("points = %d, want both devices' sessions", len(sum.Points))
  }
}

func TestSummaryNilRepo(t *testing.T) {
  svc := newTestMoodService(nil, nil, nil)
  sum, err := svc.Summary(context.Background(), "c1", nil)
  if err != nil {
    t.Fatalf("Summary: %v", err)
  }
  if sum.HasData {
    t.Fatal("HasData must be false without a database")
  }
}
