package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/soulsetjourneys/soulset-backend/internal/logger"
  "github.com/soulsetjourneys/soulset-backend/internal/types"
)

type MoodLogRepo interface {
  Create(ctx context.Context, tx *gorm.DB, logs []*types.MoodLog) ([]*types.MoodLog, error)
  GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.MoodLog, error)
}

type moodLogRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewMoodLogRepo(db *gorm.DB, baseLog *logger.Logger) MoodLogRepo {
  repoLog := baseLog.With("repo", "MoodLogRepo")
  return &moodLogRepo{db: db, log: repoLog}
}

func (mr *moodLogRepo) Create(ctx context.Context, tx *gorm.DB, logs []*types.MoodLog) ([]*types.MoodLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }

  if len(logs) == 0 {
    return []*types.MoodLog{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&logs).Error; err != nil {
    return nil, classify(err)
  }
  return logs, nil
}

func (mr *moodLogRepo) GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.MoodLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = mr.db
  }
  if limit <= 0 {
    limit = 30
  }

  var results []*types.MoodLog
  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("created_at DESC").
    Limit(limit).
    Find(&results).Error; err != nil {
    return nil, classify(err)
  }
  return results, nil
}
