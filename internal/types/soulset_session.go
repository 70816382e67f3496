package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
)

// SoulsetSession is one completed analysis submission (Duality reflection
// or Soulset mirror quote). Rows are append-only: the application never
// updates or deletes them.
type SoulsetSession struct {
  ID          uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  ClientID    string          `gorm:"column:client_id;index" json:"client_id"`
  UserID      *uuid.UUID      `gorm:"type:uuid;index" json:"user_id,omitempty"`
  User        *User           `gorm:"constraint:OnDelete:SET NULL;foreignKey:UserID;references:ID" json:"user,omitempty"`
  Lang        string          `gorm:"column:lang;not null" json:"lang"`
  InputText   string          `gorm:"column:input_text;not null" json:"input_text"`
  Traits      datatypes.JSON  `gorm:"type:jsonb;column:traits" json:"traits,omitempty"`
  Mood        *int            `gorm:"column:mood" json:"mood,omitempty"`
  Future      string          `gorm:"column:future" json:"future,omitempty"`
  Shadow      string          `gorm:"column:shadow" json:"shadow,omitempty"`
  Quote       string          `gorm:"column:quote" json:"quote,omitempty"`
  AvatarURL   string          `gorm:"column:avatar_url" json:"avatar_url,omitempty"`
  CreatedAt   time.Time       `gorm:"not null;default:now();index" json:"created_at"`
}

func (SoulsetSession) TableName() string {
  return "soulset_session"
}
