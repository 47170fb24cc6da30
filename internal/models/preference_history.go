package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PreferenceChange records one field of a stored preference update.
type PreferenceChange struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);index;not null" json:"user_id"`
	Field     string    `gorm:"size:50;not null" json:"field"`
	OldValue  string    `gorm:"type:text" json:"old_value"`
	NewValue  string    `gorm:"type:text" json:"new_value"`
	ChangedAt time.Time `gorm:"not null" json:"changed_at"`
}

func (PreferenceChange) TableName() string {
	return "preference_history"
}

func (c *PreferenceChange) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.ChangedAt.IsZero() {
		c.ChangedAt = time.Now().UTC()
	}
	return nil
}
