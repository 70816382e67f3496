package types

import (
  "time"
  "github.com/google/uuid"
)

// MoodLog is one self-reported mood entry. Immutable once created.
type MoodLog struct {
  ID          uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID      uuid.UUID   `gorm:"type:uuid;index;not null" json:"user_id"`
  User        *User       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
  ClientID    string      `gorm:"column:client_id;index" json:"client_id"`
  Level       int         `gorm:"column:level;not null" json:"level"`
  Note        string      `gorm:"column:note" json:"note"`
  CreatedAt   time.Time   `gorm:"not null;default:now();index" json:"created_at"`
}

func (MoodLog) TableName() string {
  return "mood_log"
}
