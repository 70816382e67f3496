package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/soulsetjourneys/soulset-backend/internal/logger"
  "github.com/soulsetjourneys/soulset-backend/internal/types"
)

type SoulsetSessionRepo interface {
  Create(ctx context.Context, tx *gorm.DB, sessions []*types.SoulsetSession) ([]*types.SoulsetSession, error)
  GetRecentByClientID(ctx context.Context, tx *gorm.DB, clientID string, limit int) ([]*types.SoulsetSession, error)
  GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.SoulsetSession, error)
  CountByClientID(ctx context.Context, tx *gorm.DB, clientID string) (int64, error)
}

type soulsetSessionRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewSoulsetSessionRepo(db *gorm.DB, baseLog *logger.Logger) SoulsetSessionRepo {
  repoLog := baseLog.With("repo", "SoulsetSessionRepo")
  return &soulsetSessionRepo{db: db, log: repoLog}
}

func (sr *soulsetSessionRepo) Create(ctx context.Context, tx *gorm.DB, sessions []*types.SoulsetSession) ([]*types.SoulsetSession, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }

  if len(sessions) == 0 {
    return []*types.SoulsetSession{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&sessions).Error; err != nil {
    return nil, classify(err)
  }
  return sessions, nil
}

func (sr *soulsetSessionRepo) GetRecentByClientID(ctx context.Context, tx *gorm.DB, clientID string, limit int) ([]*types.SoulsetSession, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }
  if limit <= 0 {
    limit = 30
  }

  var results []*types.SoulsetSession
  if err := transaction.WithContext(ctx).
    Where("client_id = ?", clientID).
    Order("created_at DESC").
    Limit(limit).
    Find(&results).Error; err != nil {
    return nil, classify(err)
  }
  return results, nil
}

func (sr *soulsetSessionRepo) GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.SoulsetSession, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }
  if limit <= 0 {
    limit = 30
  }

  var results []*types.SoulsetSession
  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("created_at DESC").
    Limit(limit).
    Find(&results).Error; err != nil {
    return nil, classify(err)
  }
  return results, nil
}

func (sr *soulsetSessionRepo) CountByClientID(ctx context.Context, tx *gorm.DB, clientID string) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.SoulsetSession{}).
    Where("client_id = ?", clientID).
    Count(&count).Error; err != nil {
    return 0, classify(err)
  }
  return count, nil
}
