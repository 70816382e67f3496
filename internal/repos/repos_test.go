package repos

import (
  "context"
  "errors"
  "fmt"
  "testing"
  "time"

  "github.com/google/uuid"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  gormlogger "gorm.io/gorm/logger"

  "github.com/soulsetjourneys/soulset-backend/internal/logger"
  "github.com/soulsetjourneys/soulset-backend/internal/types"
)

var testDBSeq int

// newTestDB opens a private in-memory database. The schema is created
// by hand because the gorm tags carry postgres defaults (uuid_generate_v4,
// jsonb) that sqlite cannot evaluate; tests always set IDs explicitly.
func newTestDB(t *testing.T) *gorm.DB {
  t.Helper()
  testDBSeq++
  dsn := fmt.Sprintf("file:repos_test_%d?mode=memory&cache=shared", testDBSeq)
  db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
    Logger: gormlogger.Default.LogMode(gormlogger.Silent),
  })
  if err != nil {
    t.Fatalf("open sqlite: %v", err)
  }
  stmts := []string{
    `CREATE TABLE "user" (
      id TEXT PRIMARY KEY,
      email TEXT NOT NULL UNIQUE,
      password TEXT NOT NULL,
      created_at DATETIME,
      updated_at DATETIME
    )`,
    `CREATE TABLE user_token (
      id TEXT PRIMARY KEY,
      user_id TEXT NOT NULL,
      access_token TEXT NOT NULL UNIQUE,
      refresh_token TEXT NOT NULL UNIQUE,
      expires_at DATETIME,
      created_at DATETIME,
      updated_at DATETIME
    )`,
    `CREATE TABLE soulset_session (
      id TEXT PRIMARY KEY,
      client_id TEXT,
      user_id TEXT,
      lang TEXT NOT NULL,
      input_text TEXT NOT NULL,
      traits TEXT,
      mood INTEGER,
      future TEXT,
      shadow TEXT,
      quote TEXT,
      avatar_url TEXT,
      created_at DATETIME
    )`,
    `CREATE TABLE mood_log (
      id TEXT PRIMARY KEY,
      user_id TEXT NOT NULL,
      client_id TEXT,
      level INTEGER NOT NULL,
      note TEXT,
      created_at DATETIME
    )`,
  }
  for _, s := range stmts {
    if err := db.Exec(s).Error; err != nil {
      t.Fatalf("create schema: %v", err)
    }
  }
  return db
}

func TestUserRepoCreateAndLookup(t *testing.T) {
  ctx := context.Background()
  db := newTestDB(t)
  repo := NewUserRepo(db, logger.NewNop())

  u := &types.User{ID: uuid.New(), Email: "ana@example.com", Password: "hashed"}
  if _, err := repo.Create(ctx, nil, []*types.User{u}); err != nil {
    t.Fatalf("Create: %v", err)
  }

  got, err := repo.GetByEmails(ctx, nil, []string{"ana@example.com"})
  if err != nil {
    t.Fatalf("GetByEmails: %v", err)
  }
  if len(got) != 1 || got[0].ID != u.ID {
    t.Fatalf("GetByEmails = %+v", got)
  }

  exists, err := repo.EmailExists(ctx, nil, "ana@example.com")
  if err != nil || !exists {
    t.Fatalf("EmailExists = %v, %v; want true, nil", exists, err)
  }
  exists, err = repo.EmailExists(ctx, nil, "nobody@example.com")
  if err != nil || exists {
    t.Fatalf("EmailExists for unknown = %v, %v; want false, nil", exists, err)
  }
}

func TestUserTokenRepoRoundTrip(t *testing.T) {
  ctx := context.Background()
  db := newTestDB(t)
  repo := NewUserTokenRepo(db, logger.NewNop())

  userID := uuid.New()
  tok := &types.UserToken{
    ID:           uuid.New(),
    UserID:       userID,
    AccessToken:  "access-1",
    RefreshToken: "refresh-1",
    ExpiresAt:    time.Now().Add(time.Hour),
  }
  if _, err := repo.Create(ctx, nil, []*types.UserToken{tok}); err != nil {
    t.Fatalf("Create: %v", err)
  }

  byAccess, err := repo.GetByAccessToken(ctx, nil, "access-1")
  if err != nil {
    t.Fatalf("GetByAccessToken: %v", err)
  }
  if byAccess.UserID != userID {
    t.Fatalf("GetByAccessToken userID = %v", byAccess.UserID)
  }

  byRefresh, err := repo.GetByRefreshToken(ctx, nil, "refresh-1")
  if err != nil {
    t.Fatalf("GetByRefreshToken: %v", err)
  }
  if byRefresh.ID != tok.ID {
    t.Fatalf("GetByRefreshToken id = %v", byRefresh.ID)
  }

  if _, err := repo.GetByRefreshToken(ctx, nil, "missing"); !errors.Is(err, ErrNotFound) {
    t.Fatalf("missing token err = %v, want ErrNotFound", err)
  }

  if err := repo.DeleteByUserIDs(ctx, nil, []uuid.UUID{userID}); err != nil {
    t.Fatalf("DeleteByUserIDs: %v", err)
  }
  if _, err := repo.GetByAccessToken(ctx, nil, "access-1"); !errors.Is(err, ErrNotFound) {
    t.Fatalf("token survived delete: %v", err)
  }
}

func TestSoulsetSessionRepoRecent(t *testing.T) {
  ctx := context.Background()
  db := newTestDB(t)
  repo := NewSoulsetSessionRepo(db, logger.NewNop())

  base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
  for i := 0; i < 3; i++ {
    row := &types.SoulsetSession{
      ID:        uuid.New(),
      ClientID:  "c1",
      Lang:      "fr",
      InputText: fmt.Sprintf("entry %d", i),
      CreatedAt: base.Add(time.Duration(i) * time.Hour),
    }
    if _, err := repo.Create(ctx, nil, []*types.SoulsetSession{row}); err != nil {
      t.Fatalf("Create #%d: %v", i, err)
    }
  }
  other := &types.SoulsetSession{ID: uuid.New(), ClientID: "c2", Lang: "en", InputText: "other", CreatedAt: base}
  if _, err := repo.Create(ctx, nil, []*types.SoulsetSession{other}); err != nil {
    t.Fatalf("Create other: %v", err)
  }

  got, err := repo.GetRecentByClientID(ctx, nil, "c1", 2)
  if err != nil {
    t.Fatalf("GetRecentByClientID: %v", err)
  }
  if len(got) != 2 {
    t.Fatalf("len = %d, want 2", len(got))
  }
  if got[0].InputText != "entry 2" || got[1].InputText != "entry 1" {
    t.Fatalf("order wrong: %q, %q", got[0].InputText, got[1].InputText)
  }

  count, err := repo.CountByClientID(ctx, nil, "c1")
  if err != nil || count != 3 {
    t.Fatalf("CountByClientID = %d, %v; want 3, nil", count, err)
  }
}

func TestMoodLogRepoRecent(t *testing.T) {
  ctx := context.Background()
  db := newTestDB(t)
  repo := NewMoodLogRepo(db, logger.NewNop())

  userID := uuid.New()
  base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
  for i, level := range []int{2, 4, 5} {
    row := &types.MoodLog{
      ID:        uuid.New(),
      UserID:    userID,
      ClientID:  "c1",
      Level:     level,
      CreatedAt: base.Add(time.Duration(i) * time.Minute),
    }
    if _, err := repo.Create(ctx, nil, []*types.MoodLog{row}); err != nil {
      t.Fatalf("Create: %v", err)
    }
  }

  got, err := repo.GetRecentByUserID(ctx, nil, userID, 2)
  if err != nil {
    t.Fatalf("GetRecentByUserID: %v", err)
  }
  if len(got) != 2 {
    t.Fatalf("len = %d, want 2", len(got))
  }
  if got[0].Level != 5 || got[1].Level != 4 {
    t.Fatalf("order wrong: %d, %d", got[0].Level, got[1].Level)
  }
}
